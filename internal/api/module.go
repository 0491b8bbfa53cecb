package api

import (
	"time"

	"github.com/abdoElHodaky/matchcore/internal/common"
	"github.com/abdoElHodaky/matchcore/internal/monitoring"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"go.uber.org/fx"
	"go.uber.org/zap"
)

const (
	serviceName    = "matchcore"
	serviceVersion = "1.0.0"
)

func newHealthHandler(logger *zap.Logger) *common.HealthHandler {
	return common.NewHealthHandler(serviceName, serviceVersion, logger)
}

// routeParams collects everything needed to assemble the HTTP surface,
// following the teacher's fx.In params-struct pattern for multi-dependency
// invoke functions.
type routeParams struct {
	fx.In

	Router      *gin.Engine
	Handler     *Handler
	Health      *common.HealthHandler
	Correlation *common.CorrelationMiddleware
	Metrics     *monitoring.Collector
}

// corsConfig mirrors tradSys's gateway.NewServer CORS policy.
func corsConfig() cors.Config {
	return cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}
}

func mountRoutes(p routeParams) {
	p.Router.Use(gin.Recovery())
	p.Router.Use(cors.New(corsConfig()))
	p.Router.Use(p.Correlation.Handler())
	registerAmbientRoutes(p.Router, p.Health)
	p.Metrics.RegisterRoute(p.Router)
	RegisterRoutes(p.Router, p.Handler)
}

// Module provides the HTTP layer: handler, health and correlation
// middleware, and route registration.
var Module = fx.Options(
	fx.Provide(
		NewHandler,
		newHealthHandler,
		common.NewCorrelationMiddleware,
	),
	fx.Invoke(mountRoutes),
)
