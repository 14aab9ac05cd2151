package routes

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/insightpulse/service-analytics/internal/handlers"
)

// RouteConfig holds configuration for routes. AuthMiddleware is selected
// once at startup (bearer validation or pass-through), so there is a single
// code path downstream regardless of the auth mode.
type RouteConfig struct {
	AuthHandler     *handlers.AuthHandler
	MetricsHandler  *handlers.MetricsHandler
	ForecastHandler *handlers.ForecastHandler
	ExportHandler   *handlers.ExportHandler
	AuthMiddleware  gin.HandlerFunc
}

// SetupRoutes configures all API routes. Paths are a compatibility surface
// shared with the dashboard frontend; only / , /health and /api/auth/login
// are open.
func SetupRoutes(router *gin.Engine, cfg *RouteConfig) {
	router.GET("/", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":  "healthy",
			"message": "Analytics Dashboard API",
			"version": "1.0.0",
			"endpoints": []string{
				"/api/metrics/daily",
				"/api/metrics/weekly",
				"/api/metrics/kpis",
				"/api/forecast/all",
			},
		})
	})
	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":  "healthy",
			"service": "analytics",
			"time":    time.Now().UTC(),
		})
	})

	api := router.Group("/api")
	api.POST("/auth/login", cfg.AuthHandler.Login)

	protected := api.Group("")
	protected.Use(cfg.AuthMiddleware)
	{
		protected.GET("/auth/me", cfg.AuthHandler.Me)

		metrics := protected.Group("/metrics")
		{
			metrics.GET("/daily", cfg.MetricsHandler.Daily)
			metrics.GET("/weekly", cfg.MetricsHandler.Weekly)
			metrics.GET("/kpis", cfg.MetricsHandler.KPIs)
			metrics.GET("/summary", cfg.MetricsHandler.Summary)
		}

		fc := protected.Group("/forecast")
		{
			fc.GET("/revenue", cfg.ForecastHandler.Revenue)
			fc.GET("/orders", cfg.ForecastHandler.Orders)
			fc.GET("/customers", cfg.ForecastHandler.Customers)
			fc.GET("/churn", cfg.ForecastHandler.Churn)
			fc.GET("/all", cfg.ForecastHandler.All)
			fc.GET("/accuracy", cfg.ForecastHandler.Accuracy)
		}

		exp := protected.Group("/export")
		{
			exp.GET("/pdf", cfg.ExportHandler.PDF)
			exp.GET("/csv", cfg.ExportHandler.CSV)
		}
	}
}
