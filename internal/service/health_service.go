package service

import (
	"context"
	"time"

	"interview-agent/internal/domain"
	"interview-agent/internal/logger"

	"go.uber.org/zap"
)

const (
	StatusOK       = "ok"
	StatusDegraded = "degraded"

	ComponentUp       = "up"
	ComponentDown     = "down"
	ComponentDisabled = "disabled"
)

const healthCheckTimeout = 2 * time.Second

// HealthReport summarizes dependency state for GET /api/health.
type HealthReport struct {
	Status              string
	Database            string
	Cache               string
	GenerationAvailable bool
}

type HealthService interface {
	Check(ctx context.Context) HealthReport
}

type healthService struct {
	repo      domain.InterviewRepository
	cache     domain.Cache
	generator domain.QAGenerator
}

// NewHealthService creates a health checker. cache may be nil.
func NewHealthService(repo domain.InterviewRepository, cache domain.Cache, generator domain.QAGenerator) HealthService {
	return &healthService{repo: repo, cache: cache, generator: generator}
}

// Check pings the database and cache. Only the database affects Status; the
// service still answers history requests without a cache or a generator.
func (s *healthService) Check(ctx context.Context) HealthReport {
	ctx, cancel := context.WithTimeout(ctx, healthCheckTimeout)
	defer cancel()

	report := HealthReport{
		Status:              StatusOK,
		Database:            ComponentUp,
		Cache:               ComponentDisabled,
		GenerationAvailable: s.generator != nil && s.generator.Available(),
	}

	if err := s.repo.Ping(ctx); err != nil {
		logger.Get().Warn("Database health check failed", zap.Error(err))
		report.Database = ComponentDown
		report.Status = StatusDegraded
	}

	if s.cache != nil {
		report.Cache = ComponentUp
		if err := s.cache.Ping(ctx); err != nil {
			logger.Get().Warn("Cache health check failed", zap.Error(err))
			report.Cache = ComponentDown
		}
	}

	return report
}
