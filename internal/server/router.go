// Package server exposes the ledger over a JSON HTTP API: one route per
// user action, from adding people and food items through assignment to
// rendering shareable receipts.
package server

import (
	"log/slog"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// NewRouter wires the Gin engine with routes and middleware.
func NewRouter(h *Handler) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(slogMiddleware())
	r.Use(metricsMiddleware())

	api := r.Group("/api")
	{
		api.POST("/people", h.AddPerson)
		api.GET("/people", h.ListPeople)
		api.DELETE("/people/:id", h.DeletePerson)
		api.GET("/people/:id/receipt", h.PersonReceipt)
		api.DELETE("/people/:id/items/:itemID", h.DeleteFoodItemFromPerson)

		api.POST("/items", h.AddFoodItem)
		api.GET("/items", h.ListFoodItems)
		api.PUT("/items/:id", h.UpdateFoodItem)
		api.DELETE("/items/:id", h.DeleteFoodItem)

		api.POST("/assignments", h.Assign)

		api.GET("/bill", h.GetBill)
		api.PUT("/settings", h.UpdateSettings)
		api.GET("/receipt", h.LedgerReceipt)
		api.POST("/receipt-image", h.UploadReceiptImage)
	}

	r.GET("/healthz", h.Healthz)
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	return r
}

// slogMiddleware logs every completed request with the default slog
// logger.
func slogMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		slog.Info("request completed",
			"method", c.Request.Method,
			"path", c.Request.URL.Path,
			"status", c.Writer.Status(),
			"duration_ms", time.Since(start).Milliseconds(),
			"client_ip", c.ClientIP(),
		)
	}
}
