package corpus

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/hashicorp/golang-lru/v2/expirable"
	"github.com/xxxsen/common/logutil"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/bredeby/chunkview/internal/cache"
	"github.com/bredeby/chunkview/internal/model"
)

const (
	corpusKey      = "chunks:all"
	chunkKeyPrefix = "chunk:"

	defaultPageSize = 200
	maxPageFetchers = 4
)

// Backend is the slice of the search service the loader consumes.
type Backend interface {
	GetChunks(ctx context.Context, skip, limit int) (*model.ChunkList, error)
	GetChunk(ctx context.Context, id string) (*model.Chunk, error)
}

// Loader fetches the chunk corpus and keeps the full fetch in the
// persistent store so a restarted process can serve it without a
// network round trip. Partial windows are never cached; a cached
// partial window could be mistaken for the full corpus.
type Loader struct {
	backend Backend
	persist *cache.PersistStore
	hot     *expirable.LRU[string, *model.Chunk]
}

// NewLoader wires the loader over the persistent store. ttl bounds the
// in-process hot cache; it should match the persistent store's TTL so
// the hot layer never outlives what the store considers expired.
func NewLoader(backend Backend, persist *cache.PersistStore, ttl time.Duration) *Loader {
	if ttl <= 0 {
		ttl = cache.DefaultTTL
	}
	return &Loader{
		backend: backend,
		persist: persist,
		hot:     expirable.NewLRU[string, *model.Chunk](2048, nil, ttl),
	}
}

// Load returns one corpus window. Only a skip == 0 call participates in
// the persistent cache, and only when the window actually covers the
// whole corpus: a truncated first page stored under the corpus key
// would later be served as the full corpus.
func (l *Loader) Load(ctx context.Context, skip, limit int) (*model.ChunkList, error) {
	if skip == 0 {
		if list, ok := l.cachedCorpus(ctx); ok {
			logutil.GetLogger(ctx).Debug("corpus cache hit", zap.Int("chunks", len(list.Chunks)))
			return list, nil
		}
	}
	list, err := l.backend.GetChunks(ctx, skip, limit)
	if err != nil {
		return nil, fmt.Errorf("load chunks: %w", err)
	}
	if skip == 0 && len(list.Chunks) >= list.Total {
		l.storeCorpus(ctx, list)
	}
	return list, nil
}

// LoadAll pulls the whole corpus, paging the backend in parallel. Page
// order is preserved in the assembled list.
func (l *Loader) LoadAll(ctx context.Context, pageSize int) (*model.ChunkList, error) {
	if pageSize <= 0 {
		pageSize = defaultPageSize
	}
	if list, ok := l.cachedCorpus(ctx); ok {
		logutil.GetLogger(ctx).Debug("corpus cache hit", zap.Int("chunks", len(list.Chunks)))
		return list, nil
	}

	first, err := l.backend.GetChunks(ctx, 0, pageSize)
	if err != nil {
		return nil, fmt.Errorf("load chunks: %w", err)
	}
	total := first.Total
	if total <= len(first.Chunks) {
		l.storeCorpus(ctx, first)
		return first, nil
	}

	pageCount := (total + pageSize - 1) / pageSize
	pages := make([][]model.Chunk, pageCount)
	pages[0] = first.Chunks

	group, groupCtx := errgroup.WithContext(ctx)
	group.SetLimit(maxPageFetchers)
	for page := 1; page < pageCount; page++ {
		group.Go(func() error {
			list, err := l.backend.GetChunks(groupCtx, page*pageSize, pageSize)
			if err != nil {
				return fmt.Errorf("load chunks page %d: %w", page, err)
			}
			pages[page] = list.Chunks
			return nil
		})
	}
	if err := group.Wait(); err != nil {
		return nil, err
	}

	all := &model.ChunkList{Total: total}
	for _, page := range pages {
		all.Chunks = append(all.Chunks, page...)
	}
	l.storeCorpus(ctx, all)
	return all, nil
}

// GetChunk serves a single chunk from the hot LRU, then the persistent
// per-item entries, then the backend.
func (l *Loader) GetChunk(ctx context.Context, id string) (*model.Chunk, error) {
	if chunk, ok := l.hot.Get(id); ok {
		return chunk, nil
	}
	if payload, ok := l.persist.Get(ctx, chunkKeyPrefix+id); ok {
		var chunk model.Chunk
		if err := json.Unmarshal(payload, &chunk); err == nil {
			l.hot.Add(id, &chunk)
			return &chunk, nil
		}
		l.persist.Delete(ctx, chunkKeyPrefix+id)
	}
	chunk, err := l.backend.GetChunk(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("load chunk %s: %w", id, err)
	}
	l.hot.Add(id, chunk)
	if payload, err := json.Marshal(chunk); err == nil {
		l.persist.Set(ctx, chunkKeyPrefix+chunk.ID, payload)
	}
	return chunk, nil
}

// ClearCache removes the aggregate corpus entry and every per-item
// entry derived from it, so nothing derived outlives an explicit clear.
func (l *Loader) ClearCache(ctx context.Context) {
	l.persist.Delete(ctx, corpusKey)
	l.persist.DeletePrefix(ctx, chunkKeyPrefix)
	l.hot.Purge()
}

func (l *Loader) cachedCorpus(ctx context.Context) (*model.ChunkList, bool) {
	payload, ok := l.persist.Get(ctx, corpusKey)
	if !ok {
		return nil, false
	}
	var list model.ChunkList
	if err := json.Unmarshal(payload, &list); err != nil {
		logutil.GetLogger(ctx).Warn("dropping corrupt corpus cache entry", zap.Error(err))
		l.persist.Delete(ctx, corpusKey)
		return nil, false
	}
	return &list, true
}

func (l *Loader) storeCorpus(ctx context.Context, list *model.ChunkList) {
	payload, err := json.Marshal(list)
	if err != nil {
		return
	}
	l.persist.Set(ctx, corpusKey, payload)
	for i := range list.Chunks {
		chunk := &list.Chunks[i]
		if chunk.ID == "" {
			continue
		}
		if itemPayload, err := json.Marshal(chunk); err == nil {
			l.persist.Set(ctx, chunkKeyPrefix+chunk.ID, itemPayload)
		}
	}
}
