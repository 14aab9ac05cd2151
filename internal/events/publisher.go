// Package events publishes dashboard lifecycle events to NATS. Publishing is
// optional: the service runs fully without a broker.
package events

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"github.com/nats-io/nats.go"
	"go.uber.org/zap"
)

// Event subjects
const (
	SubjectDataLoaded        = "analytics.data.loaded"
	SubjectForecastCompleted = "analytics.forecast.completed"
	SubjectExportGenerated   = "analytics.export.generated"
)

// DataLoadedEvent is emitted once after the metrics tables are loaded.
type DataLoadedEvent struct {
	EventID    uuid.UUID `json:"event_id"`
	DailyRows  int       `json:"daily_rows"`
	WeeklyRows int       `json:"weekly_rows"`
	Timestamp  time.Time `json:"timestamp"`
}

// ForecastCompletedEvent is emitted after a full forecast summary is built.
type ForecastCompletedEvent struct {
	EventID      uuid.UUID `json:"event_id"`
	Periods      int       `json:"periods"`
	TotalRevenue float64   `json:"total_revenue"`
	TotalOrders  int       `json:"total_orders"`
	FromCache    bool      `json:"from_cache"`
	Timestamp    time.Time `json:"timestamp"`
}

// ExportGeneratedEvent is emitted after a PDF or CSV export is rendered.
type ExportGeneratedEvent struct {
	EventID    uuid.UUID `json:"event_id"`
	Format     string    `json:"format"` // pdf, csv
	PeriodDays int       `json:"period_days"`
	SizeBytes  int       `json:"size_bytes"`
	Timestamp  time.Time `json:"timestamp"`
}

// Publisher handles publishing events to NATS.
type Publisher struct {
	nc     *nats.Conn
	logger *zap.Logger
}

// NewPublisher creates a new NATS publisher.
func NewPublisher(nc *nats.Conn, logger *zap.Logger) *Publisher {
	return &Publisher{nc: nc, logger: logger}
}

// PublishDataLoaded publishes a data loaded event.
func (p *Publisher) PublishDataLoaded(event *DataLoadedEvent) error {
	return p.publish(SubjectDataLoaded, event)
}

// PublishForecastCompleted publishes a forecast completed event.
func (p *Publisher) PublishForecastCompleted(event *ForecastCompletedEvent) error {
	return p.publish(SubjectForecastCompleted, event)
}

// PublishExportGenerated publishes an export generated event.
func (p *Publisher) PublishExportGenerated(event *ExportGeneratedEvent) error {
	return p.publish(SubjectExportGenerated, event)
}

func (p *Publisher) publish(subject string, event interface{}) error {
	data, err := json.Marshal(event)
	if err != nil {
		return err
	}
	if err := p.nc.Publish(subject, data); err != nil {
		p.logger.Warn("Failed to publish event", zap.String("subject", subject), zap.Error(err))
		return err
	}
	p.logger.Debug("Published event", zap.String("subject", subject))
	return nil
}
