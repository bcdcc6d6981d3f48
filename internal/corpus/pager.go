package corpus

import (
	"sync"
	"time"

	"github.com/bredeby/chunkview/internal/model"
)

const pageStep = 20

// PagerState is the externally visible pagination state.
type PagerState struct {
	DisplayLimit  int  `json:"display_limit"`
	HasMore       bool `json:"has_more"`
	IsLoadingMore bool `json:"is_loading_more"`
}

// Pager reveals a filtered result set in growing windows. Any filter
// change must go through Reset; a window computed under a different
// predicate is meaningless.
type Pager struct {
	mu           sync.Mutex
	displayLimit int
	hasMore      bool
	loadingMore  bool
	gen          uint64
	delay        time.Duration
}

func NewPager(delay time.Duration) *Pager {
	return &Pager{
		displayLimit: pageStep,
		hasMore:      true,
		delay:        delay,
	}
}

// Reset returns the pager to its initial state unconditionally,
// including from the terminal no-more state. It also invalidates any
// LoadMore currently sleeping through its delay.
func (p *Pager) Reset() {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.displayLimit = pageStep
	p.hasMore = true
	p.loadingMore = false
	p.gen++
}

// LoadMore grows the window by one step after the configured delay.
// It is a no-op while a prior LoadMore is in flight or once the window
// covers the whole filtered set. A Reset arriving during the delay
// discards the increment: that window would belong to the old
// predicate. Returns whether the window grew.
func (p *Pager) LoadMore(filteredLen int) bool {
	p.mu.Lock()
	if p.loadingMore || !p.hasMore {
		p.mu.Unlock()
		return false
	}
	p.loadingMore = true
	gen := p.gen
	p.mu.Unlock()

	if p.delay > 0 {
		time.Sleep(p.delay)
	}

	p.mu.Lock()
	defer p.mu.Unlock()
	if gen != p.gen {
		return false
	}
	p.displayLimit += pageStep
	if p.displayLimit >= filteredLen {
		p.hasMore = false
	}
	p.loadingMore = false
	return true
}

// Window returns the visible slice: filtered[0:min(displayLimit, len)].
func (p *Pager) Window(filtered []model.Chunk) []model.Chunk {
	p.mu.Lock()
	limit := p.displayLimit
	p.mu.Unlock()
	if limit > len(filtered) {
		limit = len(filtered)
	}
	return filtered[:limit]
}

func (p *Pager) State() PagerState {
	p.mu.Lock()
	defer p.mu.Unlock()
	return PagerState{
		DisplayLimit:  p.displayLimit,
		HasMore:       p.hasMore,
		IsLoadingMore: p.loadingMore,
	}
}
