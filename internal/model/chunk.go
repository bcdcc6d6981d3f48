package model

import "encoding/json"

// Chunk is one retrievable segment of manual content. Upstream export
// shapes are inconsistent: most fields are optional and the identifier
// arrives in several legacy encodings, so decoding is tolerant by
// design of the data, not of bugs.
type Chunk struct {
	ID              string         `json:"id"`
	Text            string         `json:"text"`
	Context         string         `json:"context,omitempty"`
	Heading1        string         `json:"heading_1,omitempty"`
	Heading2        string         `json:"heading_2,omitempty"`
	Heading3        string         `json:"heading_3,omitempty"`
	BreadcrumbTrail string         `json:"breadcrumb_trail,omitempty"`
	ContentType     []string       `json:"content_type,omitempty"`
	VehicleSystems  []string       `json:"vehicle_systems,omitempty"`
	PageNumbers     []int          `json:"page_numbers,omitempty"`
	Metadata        *ChunkMetadata `json:"metadata,omitempty"`
	SafetyNotices   []SafetyNotice `json:"safety_notices,omitempty"`
	ProceduralSteps []Step         `json:"procedural_steps,omitempty"`
	NextChunkID     string         `json:"next_chunk_id,omitempty"`
	RelatedChunks   []string       `json:"related_chunks,omitempty"`
}

type ChunkMetadata struct {
	Systems     []string `json:"systems,omitempty"`
	HasSafety   bool     `json:"has_safety,omitempty"`
	PageCount   int      `json:"page_count,omitempty"`
	ChunkLength int      `json:"chunk_length,omitempty"`
}

type SafetyNotice struct {
	Type string `json:"type,omitempty"`
	Text string `json:"text,omitempty"`
}

type Step struct {
	Number int    `json:"number,omitempty"`
	Text   string `json:"text,omitempty"`
}

type ChunkList struct {
	Total  int     `json:"total"`
	Chunks []Chunk `json:"chunks"`
}

// UnmarshalJSON resolves the legacy identifier encodings (plain string,
// mongo-style {"$oid": ...} wrapper, or a legacy "_id" field) into the
// canonical ID. The wrapper is never carried forward.
func (c *Chunk) UnmarshalJSON(data []byte) error {
	type alias Chunk
	aux := struct {
		*alias
		RawID       json.RawMessage `json:"id"`
		RawLegacyID json.RawMessage `json:"_id"`
	}{alias: (*alias)(c)}
	if err := json.Unmarshal(data, &aux); err != nil {
		return err
	}
	c.ID = resolveIdentifier(aux.RawID)
	if c.ID == "" {
		c.ID = resolveIdentifier(aux.RawLegacyID)
	}
	return nil
}

func resolveIdentifier(raw json.RawMessage) string {
	if len(raw) == 0 {
		return ""
	}
	var plain string
	if err := json.Unmarshal(raw, &plain); err == nil {
		return plain
	}
	var wrapped struct {
		OID string `json:"$oid"`
	}
	if err := json.Unmarshal(raw, &wrapped); err == nil {
		return wrapped.OID
	}
	return ""
}
