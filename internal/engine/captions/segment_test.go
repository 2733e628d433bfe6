package captions

import (
	"strings"
	"testing"
)

func TestAssemble_Basic(t *testing.T) {
	segs := []Segment{
		{Start: 0, End: 2, Text: "hello  world"},
		{Start: 2, End: 4, Text: " how are you "},
	}
	tr := Assemble(segs, "en", true)

	if tr.FullText != "hello world how are you" {
		t.Errorf("FullText = %q", tr.FullText)
	}
	if tr.WordCount != 5 {
		t.Errorf("WordCount = %d, want 5", tr.WordCount)
	}
	if tr.Duration != 4 {
		t.Errorf("Duration = %g, want 4", tr.Duration)
	}
	if tr.Language != "en" || !tr.IsGenerated {
		t.Errorf("metadata not carried: %+v", tr)
	}
}

func TestAssemble_WordCountMatchesFields(t *testing.T) {
	segs := []Segment{
		{Start: 0, End: 1, Text: "one"},
		{Start: 1, End: 2, Text: "two three\tfour"},
		{Start: 2, End: 3, Text: "five"},
	}
	tr := Assemble(segs, "", false)
	if got := len(strings.Fields(tr.FullText)); tr.WordCount != got {
		t.Fatalf("WordCount = %d, len(Fields(FullText)) = %d", tr.WordCount, got)
	}
}

func TestAssemble_Empty(t *testing.T) {
	tr := Assemble(nil, "en", false)
	if tr.WordCount != 0 || tr.Duration != 0 || tr.FullText != "" {
		t.Fatalf("empty assemble not zeroed: %+v", tr)
	}
}
