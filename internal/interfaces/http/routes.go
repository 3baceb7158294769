package http

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/birikimapp/birikim/internal/metrics"
)

func SetupRoutes(router *gin.Engine, handler *Handler) {
	router.Use(metricsMiddleware())

	api := router.Group("/api/v1")
	{
		api.POST("/investments", handler.AddInvestment)
		api.GET("/investments", handler.ListInvestments)
		api.GET("/investments/:id", handler.GetInvestment)
		api.PUT("/investments/:id", handler.UpdateInvestment)
		api.DELETE("/investments/:id", handler.DeleteInvestment)

		api.GET("/portfolio/stats", handler.GetPortfolioStats)
		api.GET("/portfolio/distribution", handler.GetAssetDistribution)

		api.GET("/history", handler.ListHistory)
	}

	router.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))
}

func metricsMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		path := c.FullPath()
		if path == "" {
			path = "unmatched"
		}
		metrics.HTTPRequestsTotal.WithLabelValues(c.Request.Method, path, strconv.Itoa(c.Writer.Status())).Inc()
		metrics.HTTPRequestDuration.WithLabelValues(c.Request.Method, path).Observe(time.Since(start).Seconds())
	}
}
