package service

import (
	"context"
	"encoding/json"
	"errors"
	"strconv"
	"strings"
	"time"

	"interview-agent/internal/cache"
	"interview-agent/internal/domain"
	"interview-agent/internal/logger"

	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"
)

const (
	DefaultRecordTTL = 24 * time.Hour

	// sharedFetchTimeout bounds a record lookup shared by concurrent callers.
	sharedFetchTimeout = 10 * time.Second
)

// HistoryService reads stored interview records.
type HistoryService interface {
	ListHistory(ctx context.Context, filter domain.HistoryFilter) ([]*domain.InterviewRecord, error)
	GetRecord(ctx context.Context, id int64) (*domain.InterviewRecord, error)
}

type historyService struct {
	repo    domain.InterviewRepository
	cache   domain.Cache
	ttl     time.Duration
	sfGroup singleflight.Group
}

// NewHistoryService creates a history service. cache may be nil, in which case
// every lookup goes to the repository.
func NewHistoryService(repo domain.InterviewRepository, cache domain.Cache, ttl time.Duration) HistoryService {
	if ttl <= 0 {
		ttl = DefaultRecordTTL
	}
	return &historyService{
		repo:  repo,
		cache: cache,
		ttl:   ttl,
	}
}

// ListHistory returns records newest first. A blank title means no filter.
func (s *historyService) ListHistory(ctx context.Context, filter domain.HistoryFilter) ([]*domain.InterviewRecord, error) {
	filter.JobTitle = strings.TrimSpace(filter.JobTitle)

	records, err := s.repo.List(ctx, filter)
	if err != nil {
		logger.Get().Error("Failed to list interview history",
			zap.String("job_title", filter.JobTitle),
			zap.Int("limit", filter.Limit),
			zap.Error(err))
		return nil, domain.NewRetrievalError(err)
	}
	if records == nil {
		records = []*domain.InterviewRecord{}
	}
	return records, nil
}

// GetRecord is a read-through cache over the repository. Records never change
// after creation, so cached entries are only dropped by expiry.
func (s *historyService) GetRecord(ctx context.Context, id int64) (*domain.InterviewRecord, error) {
	l := logger.Get()
	key := cache.InterviewRecordKey(id)

	if rec, ok := s.fromCache(ctx, key); ok {
		return rec, nil
	}

	v, err, shared := s.sfGroup.Do(strconv.FormatInt(id, 10), func() (interface{}, error) {
		// Not tied to the first caller's request.
		fetchCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), sharedFetchTimeout)
		defer cancel()

		rec, err := s.repo.GetByID(fetchCtx, id)
		if err != nil {
			return nil, err
		}
		s.toCache(fetchCtx, key, rec)
		return rec, nil
	})
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, err
		}
		l.Error("Failed to get interview record", zap.Int64("id", id), zap.Error(err))
		return nil, domain.NewRetrievalError(err)
	}
	if shared {
		l.Debug("Interview record lookup shared with a concurrent request", zap.Int64("id", id))
	}
	return v.(*domain.InterviewRecord), nil
}

func (s *historyService) fromCache(ctx context.Context, key string) (*domain.InterviewRecord, bool) {
	if s.cache == nil {
		return nil, false
	}
	l := logger.Get()

	cached, err := s.cache.Get(ctx, key)
	if err != nil {
		if !errors.Is(err, domain.ErrCacheMiss) {
			l.Warn("Cache read failed, falling back to database", zap.String("key", key), zap.Error(err))
		}
		return nil, false
	}

	var rec domain.InterviewRecord
	if err := json.Unmarshal([]byte(cached), &rec); err != nil {
		l.Warn("Discarding undecodable cache entry", zap.String("key", key), zap.Error(err))
		if delErr := s.cache.Delete(ctx, key); delErr != nil {
			l.Warn("Failed to delete cache entry", zap.String("key", key), zap.Error(delErr))
		}
		return nil, false
	}
	l.Debug("Cache hit", zap.String("key", key))
	return &rec, true
}

func (s *historyService) toCache(ctx context.Context, key string, rec *domain.InterviewRecord) {
	if s.cache == nil {
		return
	}
	data, err := json.Marshal(rec)
	if err != nil {
		logger.Get().Warn("Failed to encode record for cache", zap.String("key", key), zap.Error(err))
		return
	}
	if err := s.cache.Set(ctx, key, string(data), s.ttl); err != nil {
		logger.Get().Warn("Cache write failed", zap.String("key", key), zap.Error(err))
	}
}
