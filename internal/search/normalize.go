package search

import "github.com/bredeby/chunkview/internal/model"

// Normalize converts the two backend result shapes into one canonical
// form: every result that carries a top-level chunk identifier but no
// nested chunk gets one synthesized from the flattened fields. Entries
// that already carry a chunk are left as they are. The input is not
// mutated; Normalize(Normalize(x)) == Normalize(x).
func Normalize(resp *model.SearchResponse) *model.SearchResponse {
	if resp == nil {
		return nil
	}
	out := &model.SearchResponse{
		Query:  resp.Query,
		Method: resp.Method,
		Total:  resp.Total,
	}
	if resp.Results == nil {
		return out
	}
	out.Results = make([]model.SearchResult, len(resp.Results))
	for i, result := range resp.Results {
		out.Results[i] = normalizeResult(result)
	}
	return out
}

func normalizeResult(result model.SearchResult) model.SearchResult {
	if result.Chunk != nil || result.ChunkID == "" {
		return result
	}
	result.Chunk = &model.Chunk{
		ID:              result.ChunkID,
		Text:            result.Text,
		Context:         result.Context,
		BreadcrumbTrail: result.BreadcrumbTrail,
		PageNumbers:     cloneInts(result.PageNumbers),
		ContentType:     cloneStrings(result.ContentType),
		VehicleSystems:  cloneStrings(result.VehicleSystems),
		Metadata:        cloneMetadata(result.Metadata),
	}
	return result
}

func cloneStrings(values []string) []string {
	if len(values) == 0 {
		return nil
	}
	clone := make([]string, len(values))
	copy(clone, values)
	return clone
}

func cloneInts(values []int) []int {
	if len(values) == 0 {
		return nil
	}
	clone := make([]int, len(values))
	copy(clone, values)
	return clone
}

func cloneMetadata(meta *model.ChunkMetadata) *model.ChunkMetadata {
	if meta == nil {
		return nil
	}
	clone := *meta
	clone.Systems = cloneStrings(meta.Systems)
	return &clone
}
