package engine

import (
	"context"

	"github.com/anatolykoptev/go_transcript/internal/engine/captions"
)

// RawCaptions is an unparsed caption payload plus the track metadata
// the retrieval layer learned while selecting it.
type RawCaptions struct {
	Text         string
	Format       captions.Format
	Language     string
	LanguageName string
	IsGenerated  bool
	Title        string
	Channel      string
}

// LanguageInfo describes one available caption track.
type LanguageInfo struct {
	Code        string `json:"language_code"`
	Name        string `json:"language_name"`
	IsGenerated bool   `json:"is_generated"`
}

// CaptionFetcher retrieves raw caption payloads for a video. The
// production implementation lives in sources; tests inject fixtures so
// the whole pipeline runs offline.
type CaptionFetcher interface {
	// FetchCaptions returns the best caption track for the video.
	// language may be empty, meaning "use the configured preference".
	FetchCaptions(ctx context.Context, videoID, language string) (RawCaptions, error)

	// ListLanguages returns every available caption track.
	ListLanguages(ctx context.Context, videoID string) ([]LanguageInfo, error)
}
