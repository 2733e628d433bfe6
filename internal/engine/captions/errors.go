package captions

import "fmt"

// MalformedCaptionError reports raw caption text that cannot be parsed
// for the declared format. Never retried here — the same bytes parse to
// the same failure; retry belongs to the retrieval layer.
type MalformedCaptionError struct {
	Format Format
	Reason string
}

func (e *MalformedCaptionError) Error() string {
	return fmt.Sprintf("malformed %s captions: %s", e.Format, e.Reason)
}

// InvalidRangeError reports time-range parameters that violate ordering
// or non-negativity constraints. Carries the offending values.
type InvalidRangeError struct {
	Start  float64
	End    float64
	Reason string
}

func (e *InvalidRangeError) Error() string {
	return fmt.Sprintf("invalid time range [%g, %g): %s", e.Start, e.End, e.Reason)
}

// ValidationError reports a parameter-shape violation (empty query,
// negative context window).
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
}
