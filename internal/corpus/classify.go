package corpus

import (
	"regexp"
	"strings"

	"github.com/bredeby/chunkview/internal/model"
)

// Classification works over untrusted, inconsistently populated
// upstream data. Each classification is an OR over independent named
// signals; a missing field is an absent signal, never an error, and the
// signals are not required to agree with each other.

type signal struct {
	name  string
	match func(*model.Chunk) bool
}

var safetySignals = []signal{
	{name: "explicit_notices", match: func(c *model.Chunk) bool {
		return len(c.SafetyNotices) > 0
	}},
	{name: "metadata_flag", match: func(c *model.Chunk) bool {
		return c.Metadata != nil && c.Metadata.HasSafety
	}},
	{name: "content_type", match: func(c *model.Chunk) bool {
		for _, ct := range c.ContentType {
			if ct == "safety" {
				return true
			}
		}
		return false
	}},
	{name: "text_markers", match: func(c *model.Chunk) bool {
		if strings.Contains(c.Text, "⚠️") {
			return true
		}
		lower := strings.ToLower(c.Text)
		return strings.Contains(lower, "warning") || strings.Contains(lower, "caution")
	}},
}

var (
	numberedStepPattern = regexp.MustCompile(`\d+\.\s+[A-Z]`)
	stepWordPattern     = regexp.MustCompile(`(?i)step\s+\d+`)
)

var proceduralSignals = []signal{
	{name: "explicit_steps", match: func(c *model.Chunk) bool {
		return len(c.ProceduralSteps) > 0
	}},
	{name: "content_type", match: func(c *model.Chunk) bool {
		for _, ct := range c.ContentType {
			if ct == "procedure" || ct == "procedural" || strings.Contains(ct, "step") {
				return true
			}
		}
		return false
	}},
	{name: "text_patterns", match: func(c *model.Chunk) bool {
		return numberedStepPattern.MatchString(c.Text) || stepWordPattern.MatchString(c.Text)
	}},
}

func anySignal(signals []signal, c *model.Chunk) bool {
	if c == nil {
		return false
	}
	for _, s := range signals {
		if s.match(c) {
			return true
		}
	}
	return false
}

// IsSafetyRelevant reports whether any safety signal fires for the
// chunk.
func IsSafetyRelevant(c *model.Chunk) bool {
	return anySignal(safetySignals, c)
}

// IsProcedural reports whether any procedural signal fires for the
// chunk.
func IsProcedural(c *model.Chunk) bool {
	return anySignal(proceduralSignals, c)
}

// SafetyNoticeCount returns the displayable notice count. Only the
// explicit safety_notices field yields a count; a chunk classified as
// safety-relevant through the other signals has none to show.
func SafetyNoticeCount(c *model.Chunk) (int, bool) {
	if c == nil || len(c.SafetyNotices) == 0 {
		return 0, false
	}
	return len(c.SafetyNotices), true
}
