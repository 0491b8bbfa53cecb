package api

import (
	"github.com/abdoElHodaky/matchcore/internal/common"
	"github.com/gin-gonic/gin"
)

// RegisterRoutes wires the v1 order book routes onto router, grounded in
// tradSys's internal/api/routes.go route-table style.
func RegisterRoutes(router gin.IRouter, h *Handler) {
	v1 := router.Group("/v1")
	{
		v1.POST("/orders", h.SubmitOrder)
		v1.DELETE("/orders/:id", h.CancelOrder)
		v1.GET("/books/:symbol", h.ViewBook)
		v1.GET("/trades", h.ViewHistory)
	}
}

// registerAmbientRoutes wires in the ambient HTTP surface (health
// probes). Metrics are registered separately by
// monitoring.Collector.RegisterRoute.
func registerAmbientRoutes(router gin.IRouter, health *common.HealthHandler) {
	health.RegisterRoutes(router)
}
