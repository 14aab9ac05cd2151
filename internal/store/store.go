// Package store holds the in-memory metrics tables. Tables are loaded once at
// process start and are immutable afterwards, so they are safe for unlimited
// concurrent readers without locking.
package store

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/insightpulse/service-analytics/internal/domain/dashboard"
	"github.com/insightpulse/service-analytics/internal/models"
)

// Store owns the daily and weekly metrics tables for the process lifetime.
// All readers receive sub-slices of the backing arrays and must not mutate
// them.
type Store struct {
	daily  []models.DailyRecord
	weekly []models.WeeklyRecord
	logger *zap.Logger
}

// New creates an empty store. Queries fail with ErrDataUnavailable until the
// corresponding Load succeeds.
func New(logger *zap.Logger) *Store {
	return &Store{logger: logger}
}

// Daily returns the full daily table in date order.
func (s *Store) Daily() ([]models.DailyRecord, error) {
	if len(s.daily) == 0 {
		return nil, dashboard.ErrDataUnavailable
	}
	return s.daily, nil
}

// Weekly returns the full weekly table in week order.
func (s *Store) Weekly() ([]models.WeeklyRecord, error) {
	if len(s.weekly) == 0 {
		return nil, dashboard.ErrDataUnavailable
	}
	return s.weekly, nil
}

// SetDaily installs a pre-built daily table. Used by tests to avoid file I/O;
// the table must already be sorted by date.
func (s *Store) SetDaily(rows []models.DailyRecord) {
	s.daily = rows
}

// SetWeekly installs a pre-built weekly table.
func (s *Store) SetWeekly(rows []models.WeeklyRecord) {
	s.weekly = rows
}

// Tail returns the last n rows. n >= len returns the whole slice, n <= 0
// returns an empty one.
func Tail[T any](rows []T, n int) []T {
	if n <= 0 {
		return rows[:0]
	}
	if n >= len(rows) {
		return rows
	}
	return rows[len(rows)-n:]
}

// Head returns the first n rows, with the same bounds behavior as Tail.
func Head[T any](rows []T, n int) []T {
	if n <= 0 {
		return rows[:0]
	}
	if n >= len(rows) {
		return rows
	}
	return rows[:n]
}

// FilterRange returns rows with start <= date <= end. Either bound may be nil.
func FilterRange(rows []models.DailyRecord, start, end *models.Date) []models.DailyRecord {
	lo := 0
	hi := len(rows)
	if start != nil {
		for lo < hi && rows[lo].Date.Before(start.Time) {
			lo++
		}
	}
	if end != nil {
		for hi > lo && rows[hi-1].Date.After(end.Time) {
			hi--
		}
	}
	return rows[lo:hi]
}

// validateDaily checks the date-order invariant: ascending, no duplicates.
func validateDaily(rows []models.DailyRecord) error {
	for i := 1; i < len(rows); i++ {
		if !rows[i].Date.After(rows[i-1].Date.Time) {
			return fmt.Errorf("row %d: date %s is not after %s", i, rows[i].Date, rows[i-1].Date)
		}
	}
	return nil
}
