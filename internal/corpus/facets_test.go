package corpus

import (
	"reflect"
	"testing"

	"github.com/bredeby/chunkview/internal/model"
)

func TestExtractFacets(t *testing.T) {
	chunks := []model.Chunk{
		{ID: "1", ContentType: []string{"procedure", "table"}, VehicleSystems: []string{"brakes"}},
		{ID: "2", ContentType: []string{"procedure"}, Metadata: &model.ChunkMetadata{Systems: []string{"engine", "brakes"}}},
		{ID: "3", ContentType: []string{"safety", ""}},
		{ID: "4"},
	}

	facets := ExtractFacets(chunks)

	wantTypes := []string{"procedure", "safety", "table"}
	if !reflect.DeepEqual(facets.ContentTypes, wantTypes) {
		t.Errorf("ContentTypes = %v, want %v", facets.ContentTypes, wantTypes)
	}
	wantSystems := []string{"brakes", "engine"}
	if !reflect.DeepEqual(facets.VehicleSystems, wantSystems) {
		t.Errorf("VehicleSystems = %v, want %v", facets.VehicleSystems, wantSystems)
	}
}

func TestExtractFacetsEmptyCorpus(t *testing.T) {
	facets := ExtractFacets(nil)
	if len(facets.ContentTypes) != 0 || len(facets.VehicleSystems) != 0 {
		t.Errorf("expected empty facets, got %+v", facets)
	}
}
