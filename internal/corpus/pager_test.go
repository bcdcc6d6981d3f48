package corpus

import (
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/bredeby/chunkview/internal/model"
)

func makeChunks(n int) []model.Chunk {
	chunks := make([]model.Chunk, n)
	for i := range chunks {
		chunks[i] = model.Chunk{ID: fmt.Sprintf("c%d", i), Text: "t"}
	}
	return chunks
}

func TestPagerWindowsThroughCorpus(t *testing.T) {
	chunks := makeChunks(45)
	pager := NewPager(0)

	state := pager.State()
	require.Equal(t, 20, state.DisplayLimit)
	require.True(t, state.HasMore)
	require.Len(t, pager.Window(chunks), 20)

	require.True(t, pager.LoadMore(len(chunks)))
	state = pager.State()
	require.Equal(t, 40, state.DisplayLimit)
	require.True(t, state.HasMore)
	require.Len(t, pager.Window(chunks), 40)

	require.True(t, pager.LoadMore(len(chunks)))
	state = pager.State()
	require.Equal(t, 60, state.DisplayLimit)
	require.False(t, state.HasMore)
	require.Len(t, pager.Window(chunks), 45)
}

func TestPagerTerminalStateStops(t *testing.T) {
	chunks := makeChunks(5)
	pager := NewPager(0)

	require.True(t, pager.LoadMore(len(chunks)))
	require.False(t, pager.State().HasMore)

	// Terminal: further load-more calls do nothing.
	require.False(t, pager.LoadMore(len(chunks)))
	require.Equal(t, 40, pager.State().DisplayLimit)
}

func TestPagerResetDuringDelayDropsIncrement(t *testing.T) {
	pager := NewPager(50 * time.Millisecond)

	grew := make(chan bool, 1)
	go func() { grew <- pager.LoadMore(100) }()

	// A filter change lands while the load-more is sleeping; the
	// window grown under the old predicate must be discarded.
	time.Sleep(10 * time.Millisecond)
	pager.Reset()

	require.False(t, <-grew)
	state := pager.State()
	require.Equal(t, 20, state.DisplayLimit)
	require.True(t, state.HasMore)
	require.False(t, state.IsLoadingMore)

	// The pager is not stuck: the next load-more still works.
	require.True(t, pager.LoadMore(100))
	require.Equal(t, 40, pager.State().DisplayLimit)
}

func TestPagerResetFromAnyState(t *testing.T) {
	pager := NewPager(0)
	pager.LoadMore(100)
	pager.LoadMore(30)
	require.False(t, pager.State().HasMore)

	pager.Reset()
	state := pager.State()
	require.Equal(t, 20, state.DisplayLimit)
	require.True(t, state.HasMore)
	require.False(t, state.IsLoadingMore)
}
