package corpus

import (
	"strings"

	"github.com/bredeby/chunkview/internal/model"
)

// FilterState is the set of active filters. The zero state admits every
// chunk.
type FilterState struct {
	ContentTypes     map[string]struct{}
	VehicleSystems   map[string]struct{}
	HasSafetyNotices bool
	HasProcedures    bool
	TextFilter       string
}

func NewFilterState() *FilterState {
	return &FilterState{
		ContentTypes:   make(map[string]struct{}),
		VehicleSystems: make(map[string]struct{}),
	}
}

func (f *FilterState) ToggleContentType(value string) {
	toggle(f.ContentTypes, value)
}

func (f *FilterState) ToggleVehicleSystem(value string) {
	toggle(f.VehicleSystems, value)
}

func toggle(set map[string]struct{}, value string) {
	if _, ok := set[value]; ok {
		delete(set, value)
		return
	}
	set[value] = struct{}{}
}

// Matches evaluates the conjunction of filter clauses for one chunk.
// Every clause treats a missing field as an absent signal, so the
// predicate is total over any chunk shape the backend produces.
func (f *FilterState) Matches(c *model.Chunk) bool {
	if c == nil {
		return false
	}
	return f.matchesText(c) &&
		f.matchesContentType(c) &&
		f.matchesVehicleSystem(c) &&
		f.matchesSafety(c) &&
		f.matchesProcedural(c)
}

func (f *FilterState) matchesText(c *model.Chunk) bool {
	needle := strings.TrimSpace(f.TextFilter)
	if needle == "" {
		return true
	}
	needle = strings.ToLower(needle)
	for _, field := range []string{c.Text, c.Heading1, c.Heading2, c.Heading3} {
		if strings.Contains(strings.ToLower(field), needle) {
			return true
		}
	}
	return false
}

func (f *FilterState) matchesContentType(c *model.Chunk) bool {
	if len(f.ContentTypes) == 0 {
		return true
	}
	for _, ct := range c.ContentType {
		if _, ok := f.ContentTypes[ct]; ok {
			return true
		}
	}
	return false
}

func (f *FilterState) matchesVehicleSystem(c *model.Chunk) bool {
	if len(f.VehicleSystems) == 0 {
		return true
	}
	for _, system := range c.VehicleSystems {
		if _, ok := f.VehicleSystems[system]; ok {
			return true
		}
	}
	if c.Metadata != nil {
		for _, system := range c.Metadata.Systems {
			if _, ok := f.VehicleSystems[system]; ok {
				return true
			}
		}
	}
	return false
}

func (f *FilterState) matchesSafety(c *model.Chunk) bool {
	if !f.HasSafetyNotices {
		return true
	}
	return IsSafetyRelevant(c)
}

func (f *FilterState) matchesProcedural(c *model.Chunk) bool {
	if !f.HasProcedures {
		return true
	}
	return IsProcedural(c)
}

// Apply filters the corpus, preserving corpus order.
func (f *FilterState) Apply(chunks []model.Chunk) []model.Chunk {
	filtered := make([]model.Chunk, 0, len(chunks))
	for i := range chunks {
		if f.Matches(&chunks[i]) {
			filtered = append(filtered, chunks[i])
		}
	}
	return filtered
}
