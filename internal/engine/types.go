package engine

import (
	"encoding/json"

	"github.com/anatolykoptev/go_transcript/internal/engine/captions"
)

// --- Tool inputs ---

type TranscriptInput struct {
	Video      string          `json:"video" jsonschema:"YouTube video ID or URL"`
	Language   string          `json:"language,omitempty" jsonschema:"Caption language code, e.g. en, es (default: best available)"`
	StartTime  json.RawMessage `json:"start_time,omitempty" jsonschema:"Optional window start in seconds (number or numeric string)"`
	EndTime    json.RawMessage `json:"end_time,omitempty" jsonschema:"Optional window end in seconds (number or numeric string)"`
	Timestamps bool            `json:"timestamps,omitempty" jsonschema:"Prefix each plain_text line with its [MM:SS] timestamp"`
}

type SearchInput struct {
	Video         string `json:"video" jsonschema:"YouTube video ID or URL"`
	Query         string `json:"query" jsonschema:"Text to search for (plain substring, not regex)"`
	Language      string `json:"language,omitempty" jsonschema:"Caption language code (default: best available)"`
	CaseSensitive bool   `json:"case_sensitive,omitempty" jsonschema:"Match case exactly"`
	ContextWords  *int   `json:"context_words,omitempty" jsonschema:"Words of context around each match, 0 for none (default: 5)"`
}

type LanguagesInput struct {
	Video string `json:"video" jsonschema:"YouTube video ID or URL"`
}

type SummaryInput struct {
	Video        string          `json:"video" jsonschema:"YouTube video ID or URL"`
	Language     string          `json:"language,omitempty" jsonschema:"Caption language code (default: best available)"`
	StartTime    json.RawMessage `json:"start_time,omitempty" jsonschema:"Optional window start in seconds (number or numeric string)"`
	EndTime      json.RawMessage `json:"end_time,omitempty" jsonschema:"Optional window end in seconds (number or numeric string)"`
	SampleLength int             `json:"sample_length,omitempty" jsonschema:"Max characters of sample text (default: 500)"`
}

// --- Tool outputs (JSON responses) ---

// TranscriptEntry is one timed line in a transcript response.
type TranscriptEntry struct {
	Start     float64 `json:"start"`
	End       float64 `json:"end"`
	Timestamp string  `json:"timestamp"`
	Text      string  `json:"text"`
}

type TranscriptOutput struct {
	VideoID      string            `json:"video_id"`
	Language     string            `json:"language"`
	LanguageName string            `json:"language_name,omitempty"`
	IsGenerated  bool              `json:"is_generated"`
	Title        string            `json:"title,omitempty"`
	Channel      string            `json:"channel,omitempty"`
	Entries      []TranscriptEntry `json:"entries"`
	PlainText    string            `json:"plain_text"`
	Duration     float64           `json:"duration"`
	WordCount    int               `json:"word_count"`
}

// SearchMatch is one search hit with its timestamp and context.
type SearchMatch struct {
	SegmentIndex  int     `json:"segment_index"`
	StartTime     float64 `json:"start_time"`
	Timestamp     string  `json:"timestamp"`
	ContextBefore string  `json:"context_before"`
	MatchedText   string  `json:"matched_text"`
	ContextAfter  string  `json:"context_after"`
}

type SearchOutput struct {
	VideoID      string        `json:"video_id"`
	Query        string        `json:"query"`
	Language     string        `json:"language"`
	TotalMatches int           `json:"total_matches"`
	Matches      []SearchMatch `json:"matches"`
}

type LanguagesOutput struct {
	VideoID   string         `json:"video_id"`
	Languages []LanguageInfo `json:"languages"`
}

// SummaryStatistics extends the analytics report with display fields.
type SummaryStatistics struct {
	captions.Report
	DurationFormatted  string  `json:"duration_formatted"`
	SegmentCount       int     `json:"segment_count"`
	AvgWordsPerSegment float64 `json:"average_words_per_segment"`
}

type SummaryOutput struct {
	VideoID     string            `json:"video_id"`
	Language    string            `json:"language"`
	IsGenerated bool              `json:"is_generated"`
	Title       string            `json:"title,omitempty"`
	Statistics  SummaryStatistics `json:"statistics"`
	SampleText  string            `json:"sample_text"`
}
