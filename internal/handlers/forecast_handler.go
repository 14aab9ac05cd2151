package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/insightpulse/service-analytics/internal/events"
	"github.com/insightpulse/service-analytics/internal/forecast"
	"github.com/insightpulse/service-analytics/internal/models"
	"github.com/insightpulse/service-analytics/internal/services"
	"github.com/insightpulse/service-analytics/internal/store"
)

// ForecastHandler serves per-metric forecasts, the combined summary and the
// accuracy backtest.
type ForecastHandler struct {
	store     *store.Store
	service   *forecast.Service
	cache     *services.ForecastCacheService
	publisher *events.Publisher
	logger    *zap.Logger
}

// NewForecastHandler creates a new ForecastHandler. Cache and publisher are
// optional.
func NewForecastHandler(
	st *store.Store,
	service *forecast.Service,
	cache *services.ForecastCacheService,
	publisher *events.Publisher,
	logger *zap.Logger,
) *ForecastHandler {
	return &ForecastHandler{
		store:     st,
		service:   service,
		cache:     cache,
		publisher: publisher,
		logger:    logger,
	}
}

// Revenue forecasts daily revenue.
// GET /api/forecast/revenue?periods
func (h *ForecastHandler) Revenue(c *gin.Context) {
	h.serveMetric(c, "daily_revenue", h.service.Revenue)
}

// Orders forecasts daily orders.
// GET /api/forecast/orders?periods
func (h *ForecastHandler) Orders(c *gin.Context) {
	h.serveMetric(c, "orders", h.service.Orders)
}

// Customers forecasts active customers.
// GET /api/forecast/customers?periods
func (h *ForecastHandler) Customers(c *gin.Context) {
	h.serveMetric(c, "active_customers", h.service.Customers)
}

// Churn forecasts the churn rate.
// GET /api/forecast/churn?periods
func (h *ForecastHandler) Churn(c *gin.Context) {
	h.serveMetric(c, "churn_rate", h.service.ChurnRate)
}

func (h *ForecastHandler) serveMetric(c *gin.Context, metric string, fn func(int) (*models.ForecastSeries, error)) {
	periods, err := intQuery(c, "periods", forecast.DefaultPeriods)
	if err != nil {
		respondError(c, err)
		return
	}

	series, err := fn(periods)
	if err != nil {
		h.logger.Error("Forecast failed", zap.String("metric", metric), zap.Error(err))
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success":  true,
		"metric":   metric,
		"forecast": series,
	})
}

// All returns the combined forecast summary for all four metrics, cached
// when Redis is available.
// GET /api/forecast/all?periods
func (h *ForecastHandler) All(c *gin.Context) {
	periods, err := intQuery(c, "periods", forecast.DefaultPeriods)
	if err != nil {
		respondError(c, err)
		return
	}
	daily, err := h.store.Daily()
	if err != nil {
		respondError(c, err)
		return
	}
	lastDate := daily[len(daily)-1].Date.String()

	fromCache := false
	var summary *models.ForecastSummary
	if h.cache != nil {
		summary, _ = h.cache.Get(c.Request.Context(), periods, lastDate)
		fromCache = summary != nil
	}

	if summary == nil {
		summary, err = h.service.Summary(periods)
		if err != nil {
			h.logger.Error("Forecast summary failed", zap.Error(err))
			respondError(c, err)
			return
		}
		if h.cache != nil {
			_ = h.cache.Set(c.Request.Context(), periods, lastDate, summary)
		}
	}

	if h.publisher != nil {
		_ = h.publisher.PublishForecastCompleted(&events.ForecastCompletedEvent{
			EventID:      uuid.New(),
			Periods:      periods,
			TotalRevenue: summary.Summary.TotalRevenue,
			TotalOrders:  summary.Summary.TotalOrders,
			FromCache:    fromCache,
			Timestamp:    time.Now().UTC(),
		})
	}

	c.JSON(http.StatusOK, gin.H{
		"success":   true,
		"forecasts": summary,
	})
}

// Accuracy runs a hold-out backtest for one metric.
// GET /api/forecast/accuracy?metric&test_days
func (h *ForecastHandler) Accuracy(c *gin.Context) {
	metric := c.DefaultQuery("metric", "daily_revenue")
	testDays, err := intQuery(c, "test_days", forecast.DefaultBacktestDays)
	if err != nil {
		respondError(c, err)
		return
	}

	report, err := h.service.Backtest(metric, testDays)
	if err != nil {
		h.logger.Error("Backtest failed", zap.String("metric", metric), zap.Error(err))
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success":  true,
		"metric":   metric,
		"accuracy": report,
	})
}
