package model

import "fmt"

type SearchMethod string

const (
	MethodVector SearchMethod = "vector"
	MethodText   SearchMethod = "text"
	MethodHybrid SearchMethod = "hybrid"
)

func ParseSearchMethod(value string) (SearchMethod, error) {
	switch SearchMethod(value) {
	case MethodVector, MethodText, MethodHybrid:
		return SearchMethod(value), nil
	}
	return "", fmt.Errorf("unknown search method: %q", value)
}

// HybridOptions carries the rank-fusion parameters a hybrid search
// requires. Two hybrid requests with different fusion constants are
// different requests.
type HybridOptions struct {
	RRFK int `json:"rrf_k"`
}

// SearchResult is one ranked hit. The backend has returned two shapes
// over time: a flattened one with content fields at the top level, and
// a legacy one with an embedded chunk object. After normalization the
// Chunk field is always populated and is the source of truth.
type SearchResult struct {
	Score       *float64 `json:"score,omitempty"`
	VectorScore *float64 `json:"vector_score,omitempty"`
	TextScore   *float64 `json:"text_score,omitempty"`

	ChunkID         string         `json:"chunk_id,omitempty"`
	Text            string         `json:"text,omitempty"`
	Context         string         `json:"context,omitempty"`
	BreadcrumbTrail string         `json:"breadcrumb_trail,omitempty"`
	PageNumbers     []int          `json:"page_numbers,omitempty"`
	ContentType     []string       `json:"content_type,omitempty"`
	VehicleSystems  []string       `json:"vehicle_systems,omitempty"`
	Metadata        *ChunkMetadata `json:"metadata,omitempty"`

	Chunk *Chunk `json:"chunk,omitempty"`
}

type SearchResponse struct {
	Query   string         `json:"query"`
	Method  string         `json:"method"`
	Results []SearchResult `json:"results"`
	Total   int            `json:"total"`
}
