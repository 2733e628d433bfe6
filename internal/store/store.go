// Package store persists raw caption payloads keyed by video and
// requested language, so repeat tool calls skip the YouTube round-trip.
// Payloads are stored unparsed; parsing always happens in the engine.
package store

import (
	"context"
	"time"
)

// Entry is one stored caption payload.
type Entry struct {
	VideoID       string
	RequestedLang string // language the caller asked for, "" = auto
	Language      string // language actually selected
	LanguageName  string
	Format        string // "vtt" or "json3"
	IsGenerated   bool
	Title         string
	Channel       string
	Raw           string
	FetchedAt     time.Time
}

// Store is a raw-caption cache. Implementations must be safe for
// concurrent use.
type Store interface {
	// Get returns the entry for (videoID, requestedLang), ok=false on miss.
	Get(ctx context.Context, videoID, requestedLang string) (Entry, bool, error)

	// Put inserts or replaces the entry for (VideoID, RequestedLang).
	Put(ctx context.Context, e Entry) error

	Close() error
}
