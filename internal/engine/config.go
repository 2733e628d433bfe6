package engine

import (
	"net/http"
	"time"

	"github.com/anatolykoptev/go_transcript/internal/engine/captions"
	"github.com/anatolykoptev/go_transcript/internal/store"
)

// Config holds all engine configuration, injected from main.
type Config struct {
	Languages            []string // preferred caption languages, in order
	TopWords             int      // max entries in the analytics top-word ranking
	ContextWords         int      // default search context window, in words
	SampleLength         int      // default summary sample size, in runes
	FillerWords          []string // override for the analytics filler list
	CaptionTTL           time.Duration
	CacheMaxEntries      int
	CacheCleanupInterval time.Duration

	HTTPClient *http.Client
	Fetcher    CaptionFetcher // nil = remote retrieval disabled
	Store      store.Store    // nil = no raw-caption persistence
}

var (
	cfg      Config
	analyzer *captions.Analyzer
)

// Cfg exposes the engine configuration for sub-packages (sources).
// Always points to the current cfg value.
var Cfg = &cfg

// Init initializes the engine with the given configuration.
func Init(c Config) {
	cfg = c
	Cfg = &cfg
	analyzer = captions.NewAnalyzer(captions.AnalyzerConfig{
		FillerWords: c.FillerWords,
		TopWords:    c.TopWords,
	})
}

// Analyzer returns the engine-wide transcript analyzer built by Init.
func Analyzer() *captions.Analyzer {
	if analyzer == nil {
		analyzer = captions.NewAnalyzer(captions.AnalyzerConfig{})
	}
	return analyzer
}
