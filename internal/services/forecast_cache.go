// Package services holds cross-cutting application services for the
// dashboard API.
package services

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/insightpulse/service-analytics/internal/models"
)

// ForecastCacheService caches full forecast summaries in Redis. Model fits
// are CPU-bound and the underlying table only changes on restart, so cached
// summaries stay valid for their whole TTL.
type ForecastCacheService struct {
	redis  *redis.Client
	ttl    time.Duration
	logger *zap.Logger
}

// NewForecastCacheService creates the cache service. A nil client disables
// caching entirely; cache failures are never surfaced to callers.
func NewForecastCacheService(redisClient *redis.Client, ttl time.Duration, logger *zap.Logger) *ForecastCacheService {
	if ttl == 0 {
		ttl = 10 * time.Minute
	}
	return &ForecastCacheService{
		redis:  redisClient,
		ttl:    ttl,
		logger: logger,
	}
}

// cacheKey includes the last observed date so a restart with fresh data
// never serves forecasts computed from the old table.
func (s *ForecastCacheService) cacheKey(periods int, lastDate string) string {
	return fmt.Sprintf("analytics:forecast:%d:%s", periods, lastDate)
}

// Get retrieves a cached forecast summary, or nil on miss.
func (s *ForecastCacheService) Get(ctx context.Context, periods int, lastDate string) (*models.ForecastSummary, error) {
	if s.redis == nil {
		return nil, nil
	}

	key := s.cacheKey(periods, lastDate)
	data, err := s.redis.Get(ctx, key).Bytes()
	if err != nil {
		if err == redis.Nil {
			return nil, nil
		}
		s.logger.Warn("failed to get forecast from cache", zap.Error(err), zap.String("key", key))
		return nil, nil
	}

	var summary models.ForecastSummary
	if err := json.Unmarshal(data, &summary); err != nil {
		s.logger.Warn("failed to unmarshal cached forecast", zap.Error(err))
		return nil, nil
	}

	s.logger.Debug("cache hit for forecast", zap.Int("periods", periods))
	return &summary, nil
}

// Set stores a forecast summary in cache.
func (s *ForecastCacheService) Set(ctx context.Context, periods int, lastDate string, summary *models.ForecastSummary) error {
	if s.redis == nil {
		return nil
	}

	key := s.cacheKey(periods, lastDate)
	data, err := json.Marshal(summary)
	if err != nil {
		s.logger.Warn("failed to marshal forecast for cache", zap.Error(err))
		return err
	}

	if err := s.redis.Set(ctx, key, data, s.ttl).Err(); err != nil {
		s.logger.Warn("failed to set forecast in cache", zap.Error(err), zap.String("key", key))
		return err
	}

	s.logger.Debug("cached forecast", zap.Int("periods", periods), zap.Duration("ttl", s.ttl))
	return nil
}
