// Package captions implements the subtitle parsing and transcript
// analytics core: parsing VTT/JSON3 caption payloads into timed
// segments, merging rolling auto-caption duplicates, slicing by time
// range, substring search with context, and descriptive analytics.
//
// Everything in this package is a pure function over in-memory data.
// No I/O, no shared state — callers own retrieval and caching.
package captions

import "strings"

// Segment is a single timed caption entry after parsing.
// Immutable once created; ordered by Start within a transcript.
type Segment struct {
	Start float64 `json:"start"`
	End   float64 `json:"end"`
	Text  string  `json:"text"`
}

// Transcript is the assembled view over a normalized segment sequence.
type Transcript struct {
	Segments    []Segment `json:"segments"`
	FullText    string    `json:"full_text"`
	WordCount   int       `json:"word_count"`
	Duration    float64   `json:"duration"`
	Language    string    `json:"language,omitempty"`
	IsGenerated bool      `json:"is_generated"`
}

// Assemble builds a Transcript from normalized segments. Pure and
// total: an empty segment list yields a zero-valued transcript.
func Assemble(segs []Segment, language string, isGenerated bool) Transcript {
	t := Transcript{
		Segments:    segs,
		Language:    language,
		IsGenerated: isGenerated,
	}
	if len(segs) == 0 {
		return t
	}

	parts := make([]string, 0, len(segs))
	for _, s := range segs {
		parts = append(parts, collapseSpace(s.Text))
	}
	t.FullText = strings.Join(parts, " ")
	t.WordCount = len(strings.Fields(t.FullText))
	t.Duration = segs[len(segs)-1].End
	return t
}

// collapseSpace normalizes all runs of whitespace to single spaces and
// trims the ends. Search offset mapping relies on segment texts being
// collapsed the same way FullText is.
func collapseSpace(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
