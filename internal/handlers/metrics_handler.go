package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/insightpulse/service-analytics/internal/analytics"
	"github.com/insightpulse/service-analytics/internal/models"
	"github.com/insightpulse/service-analytics/internal/store"
)

// MetricsHandler serves the daily/weekly tables, KPIs and the whole-table
// summary.
type MetricsHandler struct {
	store  *store.Store
	logger *zap.Logger
}

// NewMetricsHandler creates a new MetricsHandler.
func NewMetricsHandler(st *store.Store, logger *zap.Logger) *MetricsHandler {
	return &MetricsHandler{store: st, logger: logger}
}

// Daily returns daily records, optionally filtered by an inclusive date
// range and limited to the most recent rows.
// GET /api/metrics/daily?start_date&end_date&limit
func (h *MetricsHandler) Daily(c *gin.Context) {
	daily, err := h.store.Daily()
	if err != nil {
		respondError(c, err)
		return
	}

	var start, end *models.Date
	if raw := c.Query("start_date"); raw != "" {
		d, err := models.ParseDate(raw)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"detail": "Invalid start_date format, use YYYY-MM-DD"})
			return
		}
		start = &d
	}
	if raw := c.Query("end_date"); raw != "" {
		d, err := models.ParseDate(raw)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"detail": "Invalid end_date format, use YYYY-MM-DD"})
			return
		}
		end = &d
	}
	limit, err := intQuery(c, "limit", 30)
	if err != nil {
		respondError(c, err)
		return
	}

	rows := store.Tail(store.FilterRange(daily, start, end), limit)
	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"count":   len(rows),
		"data":    rows,
	})
}

// Weekly returns the most recent weekly aggregates.
// GET /api/metrics/weekly?limit
func (h *MetricsHandler) Weekly(c *gin.Context) {
	weekly, err := h.store.Weekly()
	if err != nil {
		respondError(c, err)
		return
	}
	limit, err := intQuery(c, "limit", 12)
	if err != nil {
		respondError(c, err)
		return
	}

	rows := store.Tail(weekly, limit)
	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"count":   len(rows),
		"data":    rows,
	})
}

// KPIs returns the five tracked KPIs with period-over-period comparison.
// GET /api/metrics/kpis?days
func (h *MetricsHandler) KPIs(c *gin.Context) {
	daily, err := h.store.Daily()
	if err != nil {
		respondError(c, err)
		return
	}
	days, err := intQuery(c, "days", analytics.DefaultKPIDays)
	if err != nil {
		respondError(c, err)
		return
	}

	kpis, err := analytics.ComputeKPIs(daily, days)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success":     true,
		"period_days": days,
		"kpis":        kpis,
	})
}

// Summary returns totals and averages over the whole table.
// GET /api/metrics/summary
func (h *MetricsHandler) Summary(c *gin.Context) {
	daily, err := h.store.Daily()
	if err != nil {
		respondError(c, err)
		return
	}

	report := analytics.ComputeSummary(daily)
	c.JSON(http.StatusOK, gin.H{
		"success":    true,
		"date_range": report.DateRange,
		"totals":     report.Totals,
		"averages":   report.Averages,
	})
}
