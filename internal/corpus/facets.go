package corpus

import (
	"sort"

	"github.com/bredeby/chunkview/internal/model"
)

// Facets is the filterable vocabulary derived from a loaded corpus. It
// always covers the whole corpus, never just what the current filters
// leave visible, so a user can broaden a narrowed view again.
type Facets struct {
	ContentTypes   []string `json:"content_types"`
	VehicleSystems []string `json:"vehicle_systems"`
}

// ExtractFacets collects the distinct content types and the distinct
// vehicle systems. Either vehicle_systems or metadata.systems may carry
// a system value, so the vocabulary is the union of both sources.
func ExtractFacets(chunks []model.Chunk) Facets {
	contentTypes := make(map[string]struct{})
	systems := make(map[string]struct{})
	for i := range chunks {
		chunk := &chunks[i]
		for _, ct := range chunk.ContentType {
			if ct != "" {
				contentTypes[ct] = struct{}{}
			}
		}
		for _, system := range chunk.VehicleSystems {
			if system != "" {
				systems[system] = struct{}{}
			}
		}
		if chunk.Metadata != nil {
			for _, system := range chunk.Metadata.Systems {
				if system != "" {
					systems[system] = struct{}{}
				}
			}
		}
	}
	return Facets{
		ContentTypes:   sortedKeys(contentTypes),
		VehicleSystems: sortedKeys(systems),
	}
}

func sortedKeys(set map[string]struct{}) []string {
	keys := make([]string, 0, len(set))
	for key := range set {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	return keys
}
