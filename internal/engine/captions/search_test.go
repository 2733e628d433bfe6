package captions

import (
	"errors"
	"testing"
)

func searchFixture() Transcript {
	return Assemble([]Segment{
		{Start: 0, End: 2, Text: "a cat sat"},
		{Start: 2, End: 4, Text: "on a cat mat"},
	}, "en", false)
}

func TestSearch_AllOccurrencesWithAttribution(t *testing.T) {
	tr := searchFixture()
	matches, err := Search(tr, "cat", false, 5)
	if err != nil {
		t.Fatalf("Search error: %v", err)
	}
	if len(matches) != 2 {
		t.Fatalf("got %d matches, want 2: %+v", len(matches), matches)
	}
	if matches[0].SegmentIndex != 0 || matches[0].StartTime != 0 {
		t.Errorf("first match attribution: %+v", matches[0])
	}
	if matches[1].SegmentIndex != 1 || matches[1].StartTime != 2 {
		t.Errorf("second match attribution: %+v", matches[1])
	}
	if matches[0].ContextBefore != "a" || matches[0].ContextAfter != "sat on a cat mat" {
		t.Errorf("first match context: %+v", matches[0])
	}
	if matches[1].ContextBefore != "a cat sat on a" || matches[1].ContextAfter != "mat" {
		t.Errorf("second match context: %+v", matches[1])
	}
}

func TestSearch_CaseInsensitivePreservesCasing(t *testing.T) {
	tr := Assemble([]Segment{{Start: 0, End: 1, Text: "Hello World"}}, "", false)
	matches, err := Search(tr, "hello", false, 2)
	if err != nil {
		t.Fatalf("Search error: %v", err)
	}
	if len(matches) != 1 || matches[0].MatchedText != "Hello" {
		t.Fatalf("got %+v", matches)
	}
}

func TestSearch_CaseSensitive(t *testing.T) {
	tr := Assemble([]Segment{{Start: 0, End: 1, Text: "Hello hello"}}, "", false)
	matches, err := Search(tr, "Hello", true, 0)
	if err != nil {
		t.Fatalf("Search error: %v", err)
	}
	if len(matches) != 1 {
		t.Fatalf("case-sensitive search matched %d times: %+v", len(matches), matches)
	}
}

// Overlapping occurrences are reported: the scan resumes one character
// past each match start, so "aa" hits twice inside "aaa".
func TestSearch_OverlappingMatches(t *testing.T) {
	tr := Assemble([]Segment{{Start: 0, End: 1, Text: "aaa"}}, "", false)
	matches, err := Search(tr, "aa", false, 0)
	if err != nil {
		t.Fatalf("Search error: %v", err)
	}
	if len(matches) != 2 {
		t.Fatalf("got %d matches, want 2", len(matches))
	}
}

func TestSearch_CaseFoldingChangesByteWidth(t *testing.T) {
	// İ (U+0130) lowercases to fewer UTF-8 bytes and Ⱥ (U+023A) to
	// more; matches after such runes must still slice the original
	// text at rune boundaries.
	tr := Assemble([]Segment{{Start: 0, End: 2, Text: "İİİİ cat sat"}}, "tr", false)
	matches, err := Search(tr, "cat", false, 2)
	if err != nil {
		t.Fatalf("Search error: %v", err)
	}
	if len(matches) != 1 || matches[0].MatchedText != "cat" {
		t.Fatalf("got %+v", matches)
	}
	if matches[0].ContextBefore != "İİİİ" || matches[0].ContextAfter != "sat" {
		t.Errorf("context: %+v", matches[0])
	}

	tr = Assemble([]Segment{{Start: 0, End: 1, Text: "Ⱥ Ⱥ cat"}}, "", false)
	matches, err = Search(tr, "CAT", false, 1)
	if err != nil {
		t.Fatalf("Search error: %v", err)
	}
	if len(matches) != 1 || matches[0].MatchedText != "cat" {
		t.Fatalf("got %+v", matches)
	}
}

func TestSearch_FoldedMatchKeepsOriginalSpan(t *testing.T) {
	tr := Assemble([]Segment{{Start: 0, End: 1, Text: "İstanbul today"}}, "tr", false)
	matches, err := Search(tr, "istanbul", false, 1)
	if err != nil {
		t.Fatalf("Search error: %v", err)
	}
	if len(matches) != 1 || matches[0].MatchedText != "İstanbul" {
		t.Fatalf("got %+v", matches)
	}
	if matches[0].ContextAfter != "today" {
		t.Errorf("context: %+v", matches[0])
	}
}

func TestSearch_ContextTruncatedAtBoundaries(t *testing.T) {
	tr := Assemble([]Segment{{Start: 0, End: 1, Text: "only two words"}}, "", false)
	matches, err := Search(tr, "two", false, 10)
	if err != nil {
		t.Fatalf("Search error: %v", err)
	}
	if len(matches) != 1 {
		t.Fatalf("got %+v", matches)
	}
	if matches[0].ContextBefore != "only" || matches[0].ContextAfter != "words" {
		t.Errorf("context not truncated cleanly: %+v", matches[0])
	}
}

func TestSearch_MatchSpanningJoin(t *testing.T) {
	// A query spanning the join between two segments attributes to the
	// segment containing the match start.
	tr := searchFixture()
	matches, err := Search(tr, "sat on", false, 0)
	if err != nil {
		t.Fatalf("Search error: %v", err)
	}
	if len(matches) != 1 || matches[0].SegmentIndex != 0 {
		t.Fatalf("got %+v", matches)
	}
}

func TestSearch_EmptyQuery(t *testing.T) {
	var ve *ValidationError
	if _, err := Search(searchFixture(), "   ", false, 5); !errors.As(err, &ve) {
		t.Fatalf("expected ValidationError, got %v", err)
	}
}

func TestSearch_NegativeContext(t *testing.T) {
	var ve *ValidationError
	if _, err := Search(searchFixture(), "cat", false, -1); !errors.As(err, &ve) {
		t.Fatalf("expected ValidationError, got %v", err)
	}
}

func TestSearch_NoMatches(t *testing.T) {
	matches, err := Search(searchFixture(), "dog", false, 5)
	if err != nil {
		t.Fatalf("Search error: %v", err)
	}
	if len(matches) != 0 {
		t.Fatalf("got %+v", matches)
	}
}

func TestSearch_EmptyTranscript(t *testing.T) {
	matches, err := Search(Assemble(nil, "", false), "cat", false, 5)
	if err != nil {
		t.Fatalf("Search error: %v", err)
	}
	if len(matches) != 0 {
		t.Fatalf("got %+v", matches)
	}
}
