package cache

import (
	"context"
	"sync"
	"time"

	"github.com/xxxsen/common/logutil"
	"go.uber.org/zap"

	"github.com/bredeby/chunkview/internal/repo"
)

const DefaultTTL = time.Hour

// PersistStore is a TTL cache that survives restarts. An entry is valid
// iff now - ts < ttl; expired entries are treated as absent and purged
// on read. Storage failures degrade to cache misses and are logged, not
// surfaced.
type PersistStore struct {
	mu   sync.Mutex
	repo *repo.CacheRepo
	ttl  time.Duration
	now  func() time.Time
}

func NewPersistStore(cacheRepo *repo.CacheRepo, ttl time.Duration) *PersistStore {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &PersistStore{
		repo: cacheRepo,
		ttl:  ttl,
		now:  time.Now,
	}
}

func (s *PersistStore) TTL() time.Duration {
	return s.ttl
}

func (s *PersistStore) Get(ctx context.Context, key string) ([]byte, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	payload, ts, ok, err := s.repo.Get(ctx, key)
	if err != nil {
		logutil.GetLogger(ctx).Warn("persist cache read failed", zap.String("key", key), zap.Error(err))
		return nil, false
	}
	if !ok {
		return nil, false
	}
	age := s.now().Sub(time.UnixMilli(ts))
	if age >= s.ttl {
		if err := s.repo.Delete(ctx, key); err != nil {
			logutil.GetLogger(ctx).Warn("purge expired cache entry failed", zap.String("key", key), zap.Error(err))
		}
		return nil, false
	}
	return payload, true
}

func (s *PersistStore) Set(ctx context.Context, key string, payload []byte) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.repo.Put(ctx, key, payload, s.now().UnixMilli()); err != nil {
		logutil.GetLogger(ctx).Warn("persist cache write failed", zap.String("key", key), zap.Error(err))
	}
}

func (s *PersistStore) Delete(ctx context.Context, key string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.repo.Delete(ctx, key); err != nil {
		logutil.GetLogger(ctx).Warn("persist cache delete failed", zap.String("key", key), zap.Error(err))
	}
}

func (s *PersistStore) DeletePrefix(ctx context.Context, prefix string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.repo.DeletePrefix(ctx, prefix); err != nil {
		logutil.GetLogger(ctx).Warn("persist cache prefix delete failed", zap.String("prefix", prefix), zap.Error(err))
	}
}

func (s *PersistStore) Clear(ctx context.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.repo.DeleteAll(ctx); err != nil {
		logutil.GetLogger(ctx).Warn("persist cache clear failed", zap.Error(err))
	}
}

// SetNowFunc overrides the clock, for expiry tests.
func (s *PersistStore) SetNowFunc(now func() time.Time) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.now = now
}
