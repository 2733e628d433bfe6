package captions

import (
	"encoding/json"
	"regexp"
	"strconv"
	"strings"
)

// Format identifies a caption file dialect.
type Format string

const (
	FormatVTT   Format = "vtt"
	FormatJSON3 Format = "json3"
)

// tagRe matches VTT/HTML inline markup (<c>, <i>, timing tags like
// <00:00:01.500>) which carries no transcript text.
var tagRe = regexp.MustCompile(`<[^>]*>`)

// Parse converts raw caption text in the given format into an ordered
// segment sequence. Segments come out in source order; well-formed
// inputs are non-decreasing in start, anything else is repaired by
// Normalize. Returns *MalformedCaptionError when the payload cannot be
// tokenized for the declared format.
func Parse(raw string, format Format) ([]Segment, error) {
	switch format {
	case FormatVTT:
		return parseVTT(raw)
	case FormatJSON3:
		return parseJSON3(raw)
	default:
		return nil, &MalformedCaptionError{Format: format, Reason: "unsupported format"}
	}
}

func parseVTT(raw string) ([]Segment, error) {
	// WebVTT permits a leading BOM before the signature.
	raw = strings.TrimPrefix(raw, "\uFEFF")
	lines := strings.Split(raw, "\n")

	// Header: first non-blank line must be a WEBVTT signature.
	i := 0
	for i < len(lines) && strings.TrimSpace(lines[i]) == "" {
		i++
	}
	if i >= len(lines) || !strings.HasPrefix(strings.TrimSpace(lines[i]), "WEBVTT") {
		return nil, &MalformedCaptionError{Format: FormatVTT, Reason: "missing WEBVTT header"}
	}
	i++

	var segs []Segment
	for i < len(lines) {
		line := strings.TrimSpace(strings.TrimRight(lines[i], "\r"))

		if !strings.Contains(line, "-->") {
			// Blank lines, NOTE/STYLE blocks, Kind:/Language: metadata
			// and bare cue identifiers all sit between cue blocks.
			i++
			continue
		}

		start, end, err := parseCueTiming(line)
		if err != nil {
			return nil, &MalformedCaptionError{Format: FormatVTT, Reason: err.Error()}
		}

		// Text lines run until the next blank line.
		i++
		var textLines []string
		for i < len(lines) {
			tl := strings.TrimSpace(strings.TrimRight(lines[i], "\r"))
			if tl == "" {
				break
			}
			tl = strings.TrimSpace(tagRe.ReplaceAllString(tl, ""))
			if tl != "" {
				textLines = append(textLines, tl)
			}
			i++
		}

		if len(textLines) == 0 {
			continue
		}
		seg := Segment{Start: start, End: end, Text: strings.Join(textLines, " ")}

		// Rolling auto-captions commonly emit the exact same cue twice
		// in a row; collapse at the source.
		if n := len(segs); n > 0 && segs[n-1] == seg {
			continue
		}
		segs = append(segs, seg)
	}
	return segs, nil
}

// parseCueTiming parses a "start --> end [settings]" line. Cue settings
// after the end timestamp are ignored.
func parseCueTiming(line string) (start, end float64, err error) {
	parts := strings.SplitN(line, "-->", 2)
	start, err = parseTimestamp(strings.TrimSpace(parts[0]))
	if err != nil {
		return 0, 0, err
	}
	endFields := strings.Fields(strings.TrimSpace(parts[1]))
	if len(endFields) == 0 {
		return 0, 0, strconv.ErrSyntax
	}
	end, err = parseTimestamp(endFields[0])
	if err != nil {
		return 0, 0, err
	}
	return start, end, nil
}

// parseTimestamp converts "HH:MM:SS.mmm" (or "MM:SS.mmm") to seconds.
func parseTimestamp(ts string) (float64, error) {
	ms := 0.0
	if dot := strings.LastIndex(ts, "."); dot >= 0 {
		frac, err := strconv.ParseFloat("0"+ts[dot:], 64)
		if err != nil {
			return 0, err
		}
		ms = frac
		ts = ts[:dot]
	}

	var secs float64
	parts := strings.Split(ts, ":")
	for _, p := range parts {
		n, err := strconv.Atoi(p)
		if err != nil || n < 0 {
			return 0, strconv.ErrSyntax
		}
		secs = secs*60 + float64(n)
	}
	if len(parts) > 3 {
		return 0, strconv.ErrSyntax
	}
	return secs + ms, nil
}

// --- JSON3 ---

type json3Payload struct {
	Events []json3Event `json:"events"`
}

type json3Event struct {
	StartMs    float64    `json:"tStartMs"`
	DurationMs *float64   `json:"dDurationMs"`
	Segs       []json3Seg `json:"segs"`
}

type json3Seg struct {
	UTF8 string `json:"utf8"`
}

func parseJSON3(raw string) ([]Segment, error) {
	var payload json3Payload
	if err := json.Unmarshal([]byte(raw), &payload); err != nil {
		return nil, &MalformedCaptionError{Format: FormatJSON3, Reason: err.Error()}
	}

	var segs []Segment
	for _, ev := range payload.Events {
		var sb strings.Builder
		for _, s := range ev.Segs {
			sb.WriteString(s.UTF8)
		}
		text := strings.TrimSpace(sb.String())
		if text == "" {
			continue
		}

		start := ev.StartMs / 1000
		dur := 0.0
		if ev.DurationMs != nil {
			dur = *ev.DurationMs / 1000
		}
		segs = append(segs, Segment{Start: start, End: start + dur, Text: text})
	}
	return segs, nil
}
