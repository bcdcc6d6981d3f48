package search

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/bredeby/chunkview/internal/cache"
	"github.com/bredeby/chunkview/internal/model"
	appErr "github.com/bredeby/chunkview/internal/pkg/errors"
)

type fakeBackend struct {
	vectorCalls int
	textCalls   int
	hybridCalls int
	fail        bool
}

func (f *fakeBackend) respond(query, method string) (*model.SearchResponse, error) {
	if f.fail {
		return nil, fmt.Errorf("%w: boom", appErr.ErrBackend)
	}
	score := 0.9
	vectorScore := 0.8
	textScore := 0.7
	return &model.SearchResponse{
		Query:  query,
		Method: method,
		Total:  1,
		Results: []model.SearchResult{
			{
				Score:       &score,
				VectorScore: &vectorScore,
				TextScore:   &textScore,
				ChunkID:     "chunk-1",
				Text:        "result for " + query,
			},
		},
	}, nil
}

func (f *fakeBackend) VectorSearch(_ context.Context, query string, _ int) (*model.SearchResponse, error) {
	f.vectorCalls++
	return f.respond(query, "vector")
}

func (f *fakeBackend) TextSearch(_ context.Context, query string, _ int) (*model.SearchResponse, error) {
	f.textCalls++
	return f.respond(query, "text")
}

func (f *fakeBackend) HybridSearch(_ context.Context, query string, _ int, _ model.HybridOptions) (*model.SearchResponse, error) {
	f.hybridCalls++
	return f.respond(query, "hybrid")
}

func newTestDispatcher() (*Dispatcher, *fakeBackend, *cache.MemoryStore) {
	fake := &fakeBackend{}
	store := cache.NewMemoryStore()
	return NewDispatcher(fake, store), fake, store
}

func TestSearchCachesPerRequestTuple(t *testing.T) {
	d, fake, _ := newTestDispatcher()
	ctx := context.Background()

	first, err := d.Search(ctx, model.MethodVector, "brakes", 10, nil)
	require.NoError(t, err)
	second, err := d.Search(ctx, model.MethodVector, "brakes", 10, nil)
	require.NoError(t, err)

	require.Equal(t, 1, fake.vectorCalls)
	require.Equal(t, first, second)

	// A different tuple is a different request.
	_, err = d.Search(ctx, model.MethodVector, "brakes", 20, nil)
	require.NoError(t, err)
	require.Equal(t, 2, fake.vectorCalls)
}

func TestSearchHybridFusionParamKeysCache(t *testing.T) {
	d, fake, _ := newTestDispatcher()
	ctx := context.Background()

	_, err := d.Search(ctx, model.MethodHybrid, "oil change", 10, &model.HybridOptions{RRFK: 60})
	require.NoError(t, err)
	_, err = d.Search(ctx, model.MethodHybrid, "oil change", 10, &model.HybridOptions{RRFK: 20})
	require.NoError(t, err)
	require.Equal(t, 2, fake.hybridCalls)

	_, err = d.Search(ctx, model.MethodHybrid, "oil change", 10, &model.HybridOptions{RRFK: 60})
	require.NoError(t, err)
	require.Equal(t, 2, fake.hybridCalls)
}

func TestSearchHybridWithoutOptionsFailsFast(t *testing.T) {
	d, fake, _ := newTestDispatcher()

	_, err := d.Search(context.Background(), model.MethodHybrid, "q", 10, nil)
	require.ErrorIs(t, err, appErr.ErrInvalid)
	require.Equal(t, 0, fake.hybridCalls)
}

func TestSearchStripsCrossMethodScores(t *testing.T) {
	d, _, _ := newTestDispatcher()
	ctx := context.Background()

	vector, err := d.Search(ctx, model.MethodVector, "q", 10, nil)
	require.NoError(t, err)
	require.Nil(t, vector.Results[0].TextScore)
	require.NotNil(t, vector.Results[0].VectorScore)

	text, err := d.Search(ctx, model.MethodText, "q", 10, nil)
	require.NoError(t, err)
	require.Nil(t, text.Results[0].VectorScore)
	require.NotNil(t, text.Results[0].TextScore)

	hybrid, err := d.Search(ctx, model.MethodHybrid, "q", 10, &model.HybridOptions{RRFK: 60})
	require.NoError(t, err)
	require.NotNil(t, hybrid.Results[0].VectorScore)
	require.NotNil(t, hybrid.Results[0].TextScore)
}

func TestSearchNormalizesResults(t *testing.T) {
	d, _, _ := newTestDispatcher()

	resp, err := d.Search(context.Background(), model.MethodText, "q", 10, nil)
	require.NoError(t, err)
	require.NotNil(t, resp.Results[0].Chunk)
	require.Equal(t, "chunk-1", resp.Results[0].Chunk.ID)
}

func TestSearchFailureKeepsCurrentAndCache(t *testing.T) {
	d, fake, store := newTestDispatcher()
	ctx := context.Background()

	good, err := d.Search(ctx, model.MethodText, "good", 10, nil)
	require.NoError(t, err)
	require.Equal(t, good, d.Current())

	fake.fail = true
	_, err = d.Search(ctx, model.MethodText, "bad", 10, nil)
	require.ErrorIs(t, err, appErr.ErrBackend)
	require.Equal(t, good, d.Current())
	require.Equal(t, 1, store.Len())

	// The failed tuple retries once the backend recovers.
	fake.fail = false
	_, err = d.Search(ctx, model.MethodText, "bad", 10, nil)
	require.NoError(t, err)
	require.Equal(t, 3, fake.textCalls)
}

func TestSearchCorruptCacheEntryPurged(t *testing.T) {
	d, fake, store := newTestDispatcher()
	ctx := context.Background()

	_, err := d.Search(ctx, model.MethodText, "q", 10, nil)
	require.NoError(t, err)
	store.Set("search:text:10:q", []byte("{not json"))

	_, err = d.Search(ctx, model.MethodText, "q", 10, nil)
	require.NoError(t, err)
	require.Equal(t, 2, fake.textCalls)
}

func TestRestoreUsesCacheOnlyAndRunsOnce(t *testing.T) {
	d, fake, _ := newTestDispatcher()
	ctx := context.Background()

	// Nothing cached yet: restore is a silent miss, no network call.
	_, ok := d.Restore(ctx, model.MethodText, "q", 10, nil)
	require.False(t, ok)
	require.Equal(t, 0, fake.textCalls)

	// Restore is one-shot per dispatcher, even after a cache fill.
	_, err := d.Search(ctx, model.MethodText, "q", 10, nil)
	require.NoError(t, err)
	_, ok = d.Restore(ctx, model.MethodText, "q", 10, nil)
	require.False(t, ok)
}

func TestRestoreSeedsCurrentFromCache(t *testing.T) {
	fake := &fakeBackend{}
	store := cache.NewMemoryStore()
	warm := NewDispatcher(fake, store)
	resp, err := warm.Search(context.Background(), model.MethodText, "q", 10, nil)
	require.NoError(t, err)

	// A fresh dispatcher over the same store: re-entry after navigation.
	d := NewDispatcher(fake, store)
	require.Nil(t, d.Current())
	restored, ok := d.Restore(context.Background(), model.MethodText, "q", 10, nil)
	require.True(t, ok)
	require.Equal(t, resp, restored)
	require.Equal(t, resp, d.Current())
	require.Equal(t, 1, fake.textCalls)
}

func TestCurrentCommitIgnoresSupersededResponses(t *testing.T) {
	d, _, _ := newTestDispatcher()

	stale := &model.SearchResponse{Query: "stale"}
	fresh := &model.SearchResponse{Query: "fresh"}

	staleSeq := d.nextSeq()
	freshSeq := d.nextSeq()

	// The newer request completes first; the older one must not win.
	d.commit(fresh, freshSeq)
	d.commit(stale, staleSeq)
	require.Equal(t, "fresh", d.Current().Query)
}
