package corpus

import (
	"sync"
	"time"

	"github.com/bredeby/chunkview/internal/model"
)

// ChunkView is a corpus chunk annotated with its derived
// classifications, ready for a rendering layer to consume.
type ChunkView struct {
	model.Chunk
	IsSafetyRelevant  bool `json:"is_safety_relevant"`
	IsProcedural      bool `json:"is_procedural"`
	SafetyNoticeCount *int `json:"safety_notice_count,omitempty"`
}

// FilterInput is a full replacement filter state as submitted over the
// API.
type FilterInput struct {
	ContentTypes     []string `json:"content_types"`
	VehicleSystems   []string `json:"vehicle_systems"`
	HasSafetyNotices bool     `json:"has_safety_notices"`
	HasProcedures    bool     `json:"has_procedures"`
	TextFilter       string   `json:"text_filter"`
}

// Session holds one browse session: the loaded corpus, its facet
// vocabulary, the active filter state, and the pagination window.
// Every filter mutation resets pagination; the old window belongs to a
// different predicate.
type Session struct {
	mu       sync.Mutex
	chunks   []model.Chunk
	filtered []model.Chunk
	facets   Facets
	filter   *FilterState
	pager    *Pager
}

func NewSession(list *model.ChunkList, loadMoreDelay time.Duration) *Session {
	s := &Session{
		filter: NewFilterState(),
		pager:  NewPager(loadMoreDelay),
	}
	s.ReplaceCorpus(list)
	return s
}

// ReplaceCorpus swaps in a newly loaded corpus, recomputing facets and
// the filtered set. Facets always reflect the whole corpus.
func (s *Session) ReplaceCorpus(list *model.ChunkList) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if list != nil {
		s.chunks = list.Chunks
	} else {
		s.chunks = nil
	}
	s.facets = ExtractFacets(s.chunks)
	s.filtered = s.filter.Apply(s.chunks)
	s.pager.Reset()
}

func (s *Session) Facets() Facets {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.facets
}

// SetFilters replaces the filter state and resets pagination.
func (s *Session) SetFilters(input FilterInput) {
	s.mu.Lock()
	defer s.mu.Unlock()
	filter := NewFilterState()
	for _, ct := range input.ContentTypes {
		filter.ContentTypes[ct] = struct{}{}
	}
	for _, system := range input.VehicleSystems {
		filter.VehicleSystems[system] = struct{}{}
	}
	filter.HasSafetyNotices = input.HasSafetyNotices
	filter.HasProcedures = input.HasProcedures
	filter.TextFilter = input.TextFilter
	s.filter = filter
	s.refilterLocked()
}

func (s *Session) SetTextFilter(value string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.filter.TextFilter = value
	s.refilterLocked()
}

func (s *Session) ToggleContentType(value string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.filter.ToggleContentType(value)
	s.refilterLocked()
}

func (s *Session) ToggleVehicleSystem(value string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.filter.ToggleVehicleSystem(value)
	s.refilterLocked()
}

func (s *Session) SetSafetyOnly(enabled bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.filter.HasSafetyNotices = enabled
	s.refilterLocked()
}

func (s *Session) SetProceduralOnly(enabled bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.filter.HasProcedures = enabled
	s.refilterLocked()
}

func (s *Session) refilterLocked() {
	s.filtered = s.filter.Apply(s.chunks)
	s.pager.Reset()
}

// Results returns the visible window with classification annotations,
// plus the pagination state and the size of the full filtered set.
func (s *Session) Results() ([]ChunkView, PagerState, int) {
	s.mu.Lock()
	filtered := s.filtered
	s.mu.Unlock()
	window := s.pager.Window(filtered)
	views := make([]ChunkView, len(window))
	for i := range window {
		views[i] = annotate(&window[i])
	}
	return views, s.pager.State(), len(filtered)
}

// LoadMore advances the pagination window.
func (s *Session) LoadMore() PagerState {
	s.mu.Lock()
	filteredLen := len(s.filtered)
	s.mu.Unlock()
	s.pager.LoadMore(filteredLen)
	return s.pager.State()
}

func annotate(c *model.Chunk) ChunkView {
	view := ChunkView{
		Chunk:            *c,
		IsSafetyRelevant: IsSafetyRelevant(c),
		IsProcedural:     IsProcedural(c),
	}
	if count, ok := SafetyNoticeCount(c); ok {
		view.SafetyNoticeCount = &count
	}
	return view
}
