package captions

// FilterRange selects the sub-transcript overlapping the half-open
// window [start, end). A nil start defaults to 0, a nil end to the
// transcript duration. Boundary segments are included whole — this is
// an overlap test, not containment, so no text is ever truncated.
func FilterRange(t Transcript, start, end *float64) (Transcript, error) {
	from := 0.0
	if start != nil {
		from = *start
	}
	to := t.Duration
	if end != nil {
		to = *end
	}

	if from < 0 || to < 0 {
		return Transcript{}, &InvalidRangeError{Start: from, End: to, Reason: "bounds must be non-negative"}
	}
	if start != nil && end != nil && from >= to {
		return Transcript{}, &InvalidRangeError{Start: from, End: to, Reason: "start must be before end"}
	}

	var selected []Segment
	for _, s := range t.Segments {
		if s.Start < to && s.End > from {
			selected = append(selected, s)
		}
	}
	return Assemble(selected, t.Language, t.IsGenerated), nil
}
