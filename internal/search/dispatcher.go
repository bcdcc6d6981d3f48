package search

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"sync"

	"github.com/xxxsen/common/logutil"
	"go.uber.org/zap"

	"github.com/bredeby/chunkview/internal/cache"
	"github.com/bredeby/chunkview/internal/model"
	appErr "github.com/bredeby/chunkview/internal/pkg/errors"
)

// Backend is the slice of the search service the dispatcher consumes.
type Backend interface {
	VectorSearch(ctx context.Context, query string, limit int) (*model.SearchResponse, error)
	TextSearch(ctx context.Context, query string, limit int) (*model.SearchResponse, error)
	HybridSearch(ctx context.Context, query string, limit int, opts model.HybridOptions) (*model.SearchResponse, error)
}

// Dispatcher maps a (method, query, limit, options) tuple onto one
// backend operation and caches completed responses, so repeating a
// request never issues a second network call. It is the only reader and
// writer of its store. Concurrent calls for the same key may both reach
// the backend; whichever completes second overwrites the cache with an
// equivalent payload.
type Dispatcher struct {
	backend Backend
	store   cache.Store

	mu       sync.Mutex
	seq      uint64
	current  *model.SearchResponse
	restored bool
}

func NewDispatcher(backend Backend, store cache.Store) *Dispatcher {
	return &Dispatcher{backend: backend, store: store}
}

// Search returns the cached response for the request tuple, fetching
// from the backend at most once per unique tuple. Hybrid requests
// without fusion options fail before any network call.
func (d *Dispatcher) Search(ctx context.Context, method model.SearchMethod, query string, limit int, opts *model.HybridOptions) (*model.SearchResponse, error) {
	if method == model.MethodHybrid && opts == nil {
		return nil, fmt.Errorf("%w: hybrid search requires fusion options", appErr.ErrInvalid)
	}
	key := requestKey(method, query, limit, opts)
	seq := d.nextSeq()

	if resp, ok := d.lookup(ctx, key); ok {
		logutil.GetLogger(ctx).Debug("search cache hit", zap.String("key", key))
		d.commit(resp, seq)
		return resp, nil
	}

	resp, err := d.dispatch(ctx, method, query, limit, opts)
	if err != nil {
		// Failed calls are never cached and never disturb the
		// current result.
		logutil.GetLogger(ctx).Error("search failed",
			zap.String("method", string(method)),
			zap.String("query", query),
			zap.Error(err),
		)
		return nil, fmt.Errorf("%s search: %w", method, err)
	}

	resp = stripCrossMethodScores(method, resp)
	resp = Normalize(resp)

	if payload, err := json.Marshal(resp); err == nil {
		d.store.Set(key, payload)
	}
	d.commit(resp, seq)
	return resp, nil
}

// Current returns the most recently committed response, or nil if no
// search has completed yet.
func (d *Dispatcher) Current() *model.SearchResponse {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.current
}

// Restore seeds the current result from a previously cached response,
// without touching the backend. It is meant for re-entry with a query
// encoded in the page location and runs at most once per dispatcher;
// later calls are no-ops.
func (d *Dispatcher) Restore(ctx context.Context, method model.SearchMethod, query string, limit int, opts *model.HybridOptions) (*model.SearchResponse, bool) {
	d.mu.Lock()
	if d.restored {
		d.mu.Unlock()
		return nil, false
	}
	d.restored = true
	d.mu.Unlock()

	key := requestKey(method, query, limit, opts)
	resp, ok := d.lookup(ctx, key)
	if !ok {
		return nil, false
	}
	logutil.GetLogger(ctx).Info("restored search from cache", zap.String("key", key))
	d.commit(resp, d.nextSeq())
	return resp, true
}

// ClearCache drops every cached response. The current result is kept;
// it is still valid, just no longer backed by a cache entry.
func (d *Dispatcher) ClearCache() {
	d.store.Clear()
}

func (d *Dispatcher) dispatch(ctx context.Context, method model.SearchMethod, query string, limit int, opts *model.HybridOptions) (*model.SearchResponse, error) {
	switch method {
	case model.MethodVector:
		return d.backend.VectorSearch(ctx, query, limit)
	case model.MethodText:
		return d.backend.TextSearch(ctx, query, limit)
	case model.MethodHybrid:
		return d.backend.HybridSearch(ctx, query, limit, *opts)
	}
	return nil, fmt.Errorf("%w: unknown search method %q", appErr.ErrInvalid, method)
}

func (d *Dispatcher) lookup(ctx context.Context, key string) (*model.SearchResponse, bool) {
	payload, ok := d.store.Get(key)
	if !ok {
		return nil, false
	}
	var resp model.SearchResponse
	if err := json.Unmarshal(payload, &resp); err != nil {
		// Corrupt entry: purge and treat as a miss.
		logutil.GetLogger(ctx).Warn("dropping corrupt cache entry", zap.String("key", key), zap.Error(err))
		d.store.Delete(key)
		return nil, false
	}
	return &resp, true
}

func (d *Dispatcher) nextSeq() uint64 {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.seq++
	return d.seq
}

// commit installs resp as the current result unless a newer request has
// been issued since seq. A superseded response stays cached under its
// own key but never clobbers what the newer request shows.
func (d *Dispatcher) commit(resp *model.SearchResponse, seq uint64) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if seq != d.seq {
		return
	}
	d.current = resp
}

// stripCrossMethodScores removes score fields that have no meaning for
// the method that produced the response: a vector-only query carries no
// usable text score and vice versa. Hybrid keeps both.
func stripCrossMethodScores(method model.SearchMethod, resp *model.SearchResponse) *model.SearchResponse {
	if resp == nil {
		return nil
	}
	for i := range resp.Results {
		switch method {
		case model.MethodVector:
			resp.Results[i].TextScore = nil
		case model.MethodText:
			resp.Results[i].VectorScore = nil
		}
	}
	return resp
}

func requestKey(method model.SearchMethod, query string, limit int, opts *model.HybridOptions) string {
	key := "search:" + string(method) + ":" + strconv.Itoa(limit) + ":" + query
	if method == model.MethodHybrid && opts != nil {
		key += ":rrf_k=" + strconv.Itoa(opts.RRFK)
	}
	return key
}
