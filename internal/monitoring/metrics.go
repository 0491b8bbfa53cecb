// Package monitoring provides the Prometheus metrics collector for the
// matching engine, adapted from tradSys's internal/monitoring/metrics.go
// (MetricsCollector) down to the counters/histograms this engine's
// domain actually exercises.
package monitoring

import (
	"time"

	"github.com/abdoElHodaky/matchcore/internal/matching"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/fx"
	"go.uber.org/zap"
)

// Collector implements matching.Metrics with Prometheus counters and a
// match-latency histogram. It exports no gauges.
type Collector struct {
	logger *zap.Logger

	ordersAccepted  *prometheus.CounterVec
	ordersRejected  *prometheus.CounterVec
	ordersCancelled *prometheus.CounterVec
	tradesExecuted  *prometheus.CounterVec
	tradeVolume     *prometheus.CounterVec
	matchLatency    *prometheus.HistogramVec
}

var _ matching.Metrics = (*Collector)(nil)

// NewCollector registers and returns a new metrics collector, grounded
// in MetricsCollector.initializeMetrics from the teacher.
func NewCollector(logger *zap.Logger) *Collector {
	return &Collector{
		logger: logger,
		ordersAccepted: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "matchengine_orders_accepted_total",
				Help: "Total number of orders accepted by the engine.",
			},
			[]string{"symbol", "side"},
		),
		ordersRejected: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "matchengine_orders_rejected_total",
				Help: "Total number of orders rejected, by reason.",
			},
			[]string{"symbol", "reason"},
		),
		ordersCancelled: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "matchengine_orders_cancelled_total",
				Help: "Total number of orders cancelled.",
			},
			[]string{"symbol", "side"},
		),
		tradesExecuted: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "matchengine_trades_executed_total",
				Help: "Total number of trades executed.",
			},
			[]string{"symbol"},
		),
		tradeVolume: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "matchengine_trade_volume_total",
				Help: "Total filled volume across all trades.",
			},
			[]string{"symbol"},
		),
		matchLatency: promauto.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "matchengine_match_latency_seconds",
				Help:    "Latency of the match loop per accepted order.",
				Buckets: prometheus.ExponentialBuckets(0.0000001, 2, 20),
			},
			[]string{"symbol"},
		),
	}
}

// OrderAccepted implements matching.Metrics.
func (c *Collector) OrderAccepted(symbol string, side matching.Side) {
	c.ordersAccepted.WithLabelValues(symbol, side.String()).Inc()
}

// OrderRejected implements matching.Metrics.
func (c *Collector) OrderRejected(symbol string, reason string) {
	c.ordersRejected.WithLabelValues(symbol, reason).Inc()
}

// OrderCancelled implements matching.Metrics.
func (c *Collector) OrderCancelled(symbol string, side matching.Side) {
	c.ordersCancelled.WithLabelValues(symbol, side.String()).Inc()
}

// TradeExecuted implements matching.Metrics.
func (c *Collector) TradeExecuted(symbol string, volume uint64) {
	c.tradesExecuted.WithLabelValues(symbol).Inc()
	c.tradeVolume.WithLabelValues(symbol).Add(float64(volume))
}

// MatchLatency implements matching.Metrics.
func (c *Collector) MatchLatency(symbol string, d time.Duration) {
	c.matchLatency.WithLabelValues(symbol).Observe(d.Seconds())
}

// RegisterRoute exposes the collector on gin's /metrics path using the
// default Prometheus registry, grounded in tradSys's gin-based route
// registration pattern (internal/common/health.go RegisterRoutes).
func (c *Collector) RegisterRoute(router gin.IRouter) {
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))
}

// asEngineMetrics exposes *Collector as matching.Metrics for Engine's
// optional dependency, alongside the concrete *Collector itself for
// callers (route registration) that need the Prometheus-specific type.
func asEngineMetrics(c *Collector) matching.Metrics { return c }

// Module provides the metrics collector for the fx application, both as
// its concrete type and as the matching.Metrics interface.
var Module = fx.Options(
	fx.Provide(
		NewCollector,
		asEngineMetrics,
	),
)
