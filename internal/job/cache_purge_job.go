package job

import (
	"context"
	"time"

	"github.com/xxxsen/common/logutil"
	"go.uber.org/zap"

	"github.com/bredeby/chunkview/internal/repo"
)

// CachePurgeJob deletes persisted cache rows past their TTL. Expired
// rows are also purged lazily on read; this job keeps the cache file
// from accumulating rows nobody reads again.
type CachePurgeJob struct {
	repo *repo.CacheRepo
	ttl  time.Duration
}

func NewCachePurgeJob(cacheRepo *repo.CacheRepo, ttl time.Duration) *CachePurgeJob {
	return &CachePurgeJob{repo: cacheRepo, ttl: ttl}
}

func (j *CachePurgeJob) Name() string {
	return "cache_purge"
}

func (j *CachePurgeJob) Run(ctx context.Context) error {
	if j.repo == nil {
		return nil
	}
	ttl := j.ttl
	if ttl <= 0 {
		ttl = time.Hour
	}
	cutoff := time.Now().Add(-ttl).UnixMilli()
	purged, err := j.repo.DeleteBefore(ctx, cutoff)
	if err != nil {
		return err
	}
	if purged > 0 {
		logutil.GetLogger(ctx).Info("purged expired cache entries", zap.Int64("count", purged))
	}
	return nil
}
