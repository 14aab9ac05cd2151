package handlers

import (
	"bytes"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/insightpulse/service-analytics/internal/analytics"
	"github.com/insightpulse/service-analytics/internal/domain/dashboard"
	"github.com/insightpulse/service-analytics/internal/events"
	"github.com/insightpulse/service-analytics/internal/export"
	"github.com/insightpulse/service-analytics/internal/forecast"
	"github.com/insightpulse/service-analytics/internal/models"
	"github.com/insightpulse/service-analytics/internal/store"
)

// ExportHandler renders the PDF report and the CSV dump as downloads.
type ExportHandler struct {
	store     *store.Store
	forecasts *forecast.Service
	pdf       *export.PDFGenerator
	publisher *events.Publisher
	logger    *zap.Logger
}

// NewExportHandler creates a new ExportHandler. Publisher is optional.
func NewExportHandler(
	st *store.Store,
	forecasts *forecast.Service,
	pdf *export.PDFGenerator,
	publisher *events.Publisher,
	logger *zap.Logger,
) *ExportHandler {
	return &ExportHandler{
		store:     st,
		forecasts: forecasts,
		pdf:       pdf,
		publisher: publisher,
		logger:    logger,
	}
}

// PDF renders the analytics report for the requested window.
// GET /api/export/pdf?days
func (h *ExportHandler) PDF(c *gin.Context) {
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

	// The forecast table is optional: a model failure degrades the report
	// rather than failing the download.
	var totals *models.ForecastTotals
	if summary, err := h.forecasts.Summary(forecast.DefaultPeriods); err != nil {
		h.logger.Warn("Report rendered without forecast section", zap.Error(err))
	} else {
		totals = &summary.Summary
	}

	data, err := h.pdf.Generate(kpis, store.Tail(daily, days), totals, days)
	if err != nil {
		h.logger.Error("PDF generation failed", zap.Error(err))
		respondError(c, err)
		return
	}

	h.publishExport("pdf", days, len(data))

	filename := fmt.Sprintf("analytics_report_%s.pdf", time.Now().Format("20060102"))
	c.Header("Content-Disposition", `attachment; filename="`+filename+`"`)
	c.Data(http.StatusOK, "application/pdf", data)
}

// CSV dumps the trailing daily window as a flat file.
// GET /api/export/csv?days
func (h *ExportHandler) CSV(c *gin.Context) {
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
	if days <= 0 {
		respondError(c, fmt.Errorf("%w: days must be positive, got %d", dashboard.ErrValidation, days))
		return
	}

	var buf bytes.Buffer
	if err := export.WriteDailyCSV(&buf, store.Tail(daily, days)); err != nil {
		h.logger.Error("CSV export failed", zap.Error(err))
		respondError(c, err)
		return
	}

	h.publishExport("csv", days, buf.Len())

	filename := fmt.Sprintf("daily_metrics_%s.csv", time.Now().Format("20060102"))
	c.Header("Content-Disposition", `attachment; filename="`+filename+`"`)
	c.Data(http.StatusOK, "text/csv", buf.Bytes())
}

func (h *ExportHandler) publishExport(format string, days, size int) {
	if h.publisher == nil {
		return
	}
	_ = h.publisher.PublishExportGenerated(&events.ExportGeneratedEvent{
		EventID:    uuid.New(),
		Format:     format,
		PeriodDays: days,
		SizeBytes:  size,
		Timestamp:  time.Now().UTC(),
	})
}
