package captions

import (
	"sort"
	"strings"
)

// Normalize repairs and deduplicates a parsed segment sequence.
// Auto-generated captions roll a window over the speech, so cue N+1
// frequently restates cue N's text plus a continuation; those pairs
// are merged into one segment covering the union time range.
//
// Never fails, and is idempotent: Normalize(Normalize(s)) == Normalize(s).
func Normalize(segs []Segment) []Segment {
	out := make([]Segment, 0, len(segs))
	for _, s := range segs {
		if strings.TrimSpace(s.Text) != "" {
			out = append(out, s)
		}
	}

	// Parsers keep source order; degrade gracefully when it lies.
	sort.SliceStable(out, func(i, j int) bool { return out[i].Start < out[j].Start })

	// Pairwise merges strictly shrink the slice, so this terminates.
	for {
		merged := mergePass(out)
		if len(merged) == len(out) {
			out = merged
			break
		}
		out = merged
	}

	return dropEqualSpans(out)
}

// mergePass performs one left-to-right pass of rolling-caption merges.
func mergePass(segs []Segment) []Segment {
	if len(segs) < 2 {
		return segs
	}
	out := make([]Segment, 0, len(segs))
	cur := segs[0]
	for _, next := range segs[1:] {
		if overlaps(cur, next) && strings.HasPrefix(strings.TrimSpace(next.Text), strings.TrimSpace(cur.Text)) {
			cur = Segment{
				Start: minF(cur.Start, next.Start),
				End:   maxF(cur.End, next.End),
				Text:  next.Text,
			}
			continue
		}
		out = append(out, cur)
		cur = next
	}
	return append(out, cur)
}

// dropEqualSpans keeps the longer text when two segments share the
// exact same (start, end) — a state merges can leave behind. The input
// is sorted by Start only, so an equal pair may be separated by
// same-start segments with a different end; the backward scan covers
// the whole equal-start run.
func dropEqualSpans(segs []Segment) []Segment {
	if len(segs) < 2 {
		return segs
	}
	out := segs[:1]
	for _, next := range segs[1:] {
		dup := false
		for k := len(out) - 1; k >= 0 && out[k].Start == next.Start; k-- {
			if out[k].End == next.End {
				if len(next.Text) > len(out[k].Text) {
					out[k].Text = next.Text
				}
				dup = true
				break
			}
		}
		if !dup {
			out = append(out, next)
		}
	}
	return out
}

// overlaps reports whether two segments share any time, treating a
// shared boundary instant as overlap so back-to-back rolling cues merge.
func overlaps(a, b Segment) bool {
	return a.Start <= b.End && b.Start <= a.End
}

func minF(a, b float64) float64 {
	if a < b {
		return a
	}
	return b
}

func maxF(a, b float64) float64 {
	if a > b {
		return a
	}
	return b
}
