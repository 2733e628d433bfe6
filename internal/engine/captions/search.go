package captions

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

// Match is a single search hit mapped back to its owning segment.
type Match struct {
	SegmentIndex  int     `json:"segment_index"`
	StartTime     float64 `json:"start_time"`
	ContextBefore string  `json:"context_before"`
	MatchedText   string  `json:"matched_text"`
	ContextAfter  string  `json:"context_after"`
}

// Search finds every occurrence of query in the transcript's full text.
// Matching is plain substring matching; when caseSensitive is false the
// comparison runs on lowercased copies while MatchedText keeps the
// original casing. Overlapping occurrences are all reported — the scan
// resumes one character past each match start. contextWords bounds the
// whitespace tokens returned on each side of a match; zero disables
// context. Zero matches is an empty result, not an error.
func Search(t Transcript, query string, caseSensitive bool, contextWords int) ([]Match, error) {
	if strings.TrimSpace(query) == "" {
		return nil, &ValidationError{Field: "query", Reason: "must not be empty"}
	}
	if contextWords < 0 {
		return nil, &ValidationError{Field: "context_words", Reason: "must not be negative"}
	}

	haystack := t.FullText
	needle := query
	var starts, ends []int
	if !caseSensitive {
		haystack, starts, ends = foldOffsets(t.FullText)
		needle = strings.ToLower(needle)
	}

	spans := segmentSpans(t.Segments)

	var matches []Match
	pos := 0
	for {
		idx := strings.Index(haystack[pos:], needle)
		if idx < 0 {
			break
		}
		off := pos + idx

		// Map the match span back into the original text. Identity for
		// the case-sensitive scan; the folded scan goes through the
		// per-byte offset tables, since lowercasing can change a rune's
		// UTF-8 width.
		oStart, oEnd := off, off+len(needle)
		if starts != nil {
			oStart = starts[off]
			oEnd = ends[off+len(needle)-1]
		}

		m := Match{
			SegmentIndex: ownerSegment(spans, oStart),
			MatchedText:  t.FullText[oStart:oEnd],
		}
		if m.SegmentIndex >= 0 {
			m.StartTime = t.Segments[m.SegmentIndex].Start
		}
		if contextWords > 0 {
			m.ContextBefore = lastWords(t.FullText[:oStart], contextWords)
			m.ContextAfter = firstWords(t.FullText[oEnd:], contextWords)
		}
		matches = append(matches, m)

		pos = off + 1
	}
	return matches, nil
}

// foldOffsets lowercases text rune by rune while recording, for every
// byte of the folded copy, the byte range of the originating rune in
// text. İ (U+0130) folds to a shorter sequence and Ⱥ (U+023A) to a
// longer one, so offsets into the folded copy cannot index text
// directly.
func foldOffsets(text string) (lower string, starts, ends []int) {
	var b strings.Builder
	b.Grow(len(text))
	starts = make([]int, 0, len(text))
	ends = make([]int, 0, len(text))
	for i := 0; i < len(text); {
		r, w := utf8.DecodeRuneInString(text[i:])
		l := unicode.ToLower(r)
		b.WriteRune(l)
		for n := utf8.RuneLen(l); n > 0; n-- {
			starts = append(starts, i)
			ends = append(ends, i+w)
		}
		i += w
	}
	return b.String(), starts, ends
}

// span is a segment's character range [start, end) within FullText.
type span struct {
	start, end int
}

// segmentSpans mirrors Assemble's join: collapsed texts separated by a
// single space.
func segmentSpans(segs []Segment) []span {
	spans := make([]span, len(segs))
	off := 0
	for i, s := range segs {
		n := len(collapseSpace(s.Text))
		spans[i] = span{start: off, end: off + n}
		off += n + 1
	}
	return spans
}

// ownerSegment returns the index of the segment containing the match
// offset. An offset landing on a joining space resolves to the earlier
// segment. Returns -1 for a transcript with no segments.
func ownerSegment(spans []span, off int) int {
	for i, sp := range spans {
		if off <= sp.end {
			return i
		}
	}
	return len(spans) - 1
}

func lastWords(s string, n int) string {
	words := strings.Fields(s)
	if len(words) > n {
		words = words[len(words)-n:]
	}
	return strings.Join(words, " ")
}

func firstWords(s string, n int) string {
	words := strings.Fields(s)
	if len(words) > n {
		words = words[:n]
	}
	return strings.Join(words, " ")
}
