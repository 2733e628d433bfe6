package transcriptserver

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
)

// ParseOptionalSeconds decodes a start_time/end_time parameter. MCP
// clients send these as numbers, numeric strings, "null", "none", or
// omit them entirely; all of the absent spellings map to nil.
func ParseOptionalSeconds(raw json.RawMessage, field string) (*float64, error) {
	if len(raw) == 0 {
		return nil, nil
	}
	s := strings.TrimSpace(string(raw))
	if s == "" || s == "null" {
		return nil, nil
	}
	if strings.HasPrefix(s, `"`) {
		var inner string
		if err := json.Unmarshal(raw, &inner); err != nil {
			return nil, fmt.Errorf("%s: %w", field, err)
		}
		inner = strings.TrimSpace(inner)
		if inner == "" || strings.EqualFold(inner, "null") || strings.EqualFold(inner, "none") {
			return nil, nil
		}
		v, err := strconv.ParseFloat(inner, 64)
		if err != nil {
			return nil, fmt.Errorf("%s: invalid number %q", field, inner)
		}
		return &v, nil
	}
	var v float64
	if err := json.Unmarshal(raw, &v); err != nil {
		return nil, fmt.Errorf("%s: invalid number %q", field, s)
	}
	return &v, nil
}
