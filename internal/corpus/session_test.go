package corpus

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/bredeby/chunkview/internal/model"
)

func TestSessionFilterMutationResetsPagination(t *testing.T) {
	session := NewSession(&model.ChunkList{Total: 45, Chunks: makeChunks(45)}, 0)

	session.LoadMore()
	_, state, total := session.Results()
	require.Equal(t, 40, state.DisplayLimit)
	require.Equal(t, 45, total)

	// Any filter mutation discards the old window.
	session.SetTextFilter("t")
	_, state, _ = session.Results()
	require.Equal(t, 20, state.DisplayLimit)
	require.True(t, state.HasMore)

	session.LoadMore()
	session.LoadMore()
	_, state, _ = session.Results()
	require.False(t, state.HasMore)

	session.SetSafetyOnly(true)
	_, state, _ = session.Results()
	require.Equal(t, 20, state.DisplayLimit)
	require.True(t, state.HasMore)
}

func TestSessionResultsAnnotateClassifications(t *testing.T) {
	chunks := []model.Chunk{
		{ID: "a", Text: "WARNING hot", SafetyNotices: []model.SafetyNotice{{}, {}, {}}},
		{ID: "b", Text: "1. Remove the cover"},
		{ID: "c", Text: "plain"},
	}
	session := NewSession(&model.ChunkList{Total: 3, Chunks: chunks}, 0)

	views, _, total := session.Results()
	require.Equal(t, 3, total)
	require.Len(t, views, 3)

	require.True(t, views[0].IsSafetyRelevant)
	require.NotNil(t, views[0].SafetyNoticeCount)
	require.Equal(t, 3, *views[0].SafetyNoticeCount)

	require.True(t, views[1].IsProcedural)
	require.False(t, views[1].IsSafetyRelevant)
	require.Nil(t, views[1].SafetyNoticeCount)

	require.False(t, views[2].IsSafetyRelevant)
	require.False(t, views[2].IsProcedural)
}

func TestSessionSetFiltersReplacesState(t *testing.T) {
	chunks := []model.Chunk{
		{ID: "a", Text: "x", VehicleSystems: []string{"brakes"}},
		{ID: "b", Text: "x", Metadata: &model.ChunkMetadata{Systems: []string{"brakes"}}},
		{ID: "c", Text: "x", VehicleSystems: []string{"engine"}},
	}
	session := NewSession(&model.ChunkList{Total: 3, Chunks: chunks}, 0)

	session.SetFilters(FilterInput{VehicleSystems: []string{"brakes"}})
	views, _, total := session.Results()
	require.Equal(t, 2, total)
	require.Equal(t, "a", views[0].ID)
	require.Equal(t, "b", views[1].ID)

	// Replacing with an empty state admits everything again.
	session.SetFilters(FilterInput{})
	_, _, total = session.Results()
	require.Equal(t, 3, total)
}

func TestSessionFacetsCoverWholeCorpusRegardlessOfFilters(t *testing.T) {
	chunks := []model.Chunk{
		{ID: "a", Text: "x", ContentType: []string{"procedure"}},
		{ID: "b", Text: "x", ContentType: []string{"safety"}},
	}
	session := NewSession(&model.ChunkList{Total: 2, Chunks: chunks}, 0)

	session.SetFilters(FilterInput{ContentTypes: []string{"safety"}})
	facets := session.Facets()
	require.Equal(t, []string{"procedure", "safety"}, facets.ContentTypes)
}
