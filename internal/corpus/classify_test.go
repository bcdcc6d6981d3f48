package corpus

import (
	"testing"

	"github.com/bredeby/chunkview/internal/model"
)

func TestIsSafetyRelevant(t *testing.T) {
	tests := []struct {
		name  string
		chunk model.Chunk
		want  bool
	}{
		{
			name:  "no signals",
			chunk: model.Chunk{ID: "1", Text: "Rotate the tires."},
			want:  false,
		},
		{
			name:  "explicit notices",
			chunk: model.Chunk{ID: "1", Text: "x", SafetyNotices: []model.SafetyNotice{{Type: "warning"}}},
			want:  true,
		},
		{
			name:  "metadata flag only",
			chunk: model.Chunk{ID: "1", Text: "x", Metadata: &model.ChunkMetadata{HasSafety: true}},
			want:  true,
		},
		{
			name:  "content type",
			chunk: model.Chunk{ID: "1", Text: "x", ContentType: []string{"safety"}},
			want:  true,
		},
		{
			name:  "warning marker in text",
			chunk: model.Chunk{ID: "1", Text: "WARNING: hot surfaces"},
			want:  true,
		},
		{
			name:  "caution marker case insensitive",
			chunk: model.Chunk{ID: "1", Text: "Use Caution when lifting"},
			want:  true,
		},
		{
			name:  "hazard emoji",
			chunk: model.Chunk{ID: "1", Text: "⚠️ risk of injury"},
			want:  true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := IsSafetyRelevant(&tt.chunk); got != tt.want {
				t.Errorf("IsSafetyRelevant() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestIsProcedural(t *testing.T) {
	tests := []struct {
		name  string
		chunk model.Chunk
		want  bool
	}{
		{
			name:  "no signals",
			chunk: model.Chunk{ID: "1", Text: "General description of the cooling system."},
			want:  false,
		},
		{
			name:  "explicit steps",
			chunk: model.Chunk{ID: "1", Text: "x", ProceduralSteps: []model.Step{{Number: 1, Text: "do"}}},
			want:  true,
		},
		{
			name:  "content type procedure",
			chunk: model.Chunk{ID: "1", Text: "x", ContentType: []string{"procedure"}},
			want:  true,
		},
		{
			name:  "content type containing step",
			chunk: model.Chunk{ID: "1", Text: "x", ContentType: []string{"step_by_step"}},
			want:  true,
		},
		{
			name:  "numbered step text",
			chunk: model.Chunk{ID: "1", Text: "1. Remove the cover"},
			want:  true,
		},
		{
			name:  "step word text",
			chunk: model.Chunk{ID: "1", Text: "Continue with Step 3 once drained"},
			want:  true,
		},
		{
			name:  "numbers without step shape",
			chunk: model.Chunk{ID: "1", Text: "Torque to 12.5 nm"},
			want:  false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := IsProcedural(&tt.chunk); got != tt.want {
				t.Errorf("IsProcedural() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestSafetyNoticeCount(t *testing.T) {
	withNotices := model.Chunk{SafetyNotices: []model.SafetyNotice{{}, {}}}
	count, ok := SafetyNoticeCount(&withNotices)
	if !ok || count != 2 {
		t.Errorf("count = %d, ok = %v, want 2, true", count, ok)
	}

	// Safety-relevant through another signal: classified true, but there
	// is no count to display.
	flagOnly := model.Chunk{Metadata: &model.ChunkMetadata{HasSafety: true}}
	if !IsSafetyRelevant(&flagOnly) {
		t.Error("expected metadata flag to classify as safety relevant")
	}
	if _, ok := SafetyNoticeCount(&flagOnly); ok {
		t.Error("expected no displayable count without explicit notices")
	}
}
