package engine

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/anatolykoptev/go_transcript/internal/engine/captions"
	"github.com/anatolykoptev/go_transcript/internal/store"
)

// TranscriptMeta carries track and video metadata alongside a parsed
// transcript.
type TranscriptMeta struct {
	VideoID      string
	Language     string
	LanguageName string
	IsGenerated  bool
	Title        string
	Channel      string
}

// ErrNoFetcher is returned when remote retrieval is not configured.
var ErrNoFetcher = errors.New("caption fetcher not configured")

// LoadTranscript produces a normalized, assembled transcript for the
// video: raw-caption store first, remote fetch on miss, parse →
// normalize → assemble on whatever payload turns up. The store only
// ever holds raw payloads, so parser fixes apply to cached entries too.
func LoadTranscript(ctx context.Context, videoID, language string) (captions.Transcript, TranscriptMeta, error) {
	raw, err := loadRawCaptions(ctx, videoID, language)
	if err != nil {
		return captions.Transcript{}, TranscriptMeta{}, err
	}

	segs, err := captions.Parse(raw.Text, raw.Format)
	if err != nil {
		return captions.Transcript{}, TranscriptMeta{}, fmt.Errorf("parse captions for %s: %w", videoID, err)
	}

	t := captions.Assemble(captions.Normalize(segs), raw.Language, raw.IsGenerated)
	meta := TranscriptMeta{
		VideoID:      videoID,
		Language:     raw.Language,
		LanguageName: raw.LanguageName,
		IsGenerated:  raw.IsGenerated,
		Title:        raw.Title,
		Channel:      raw.Channel,
	}
	return t, meta, nil
}

func loadRawCaptions(ctx context.Context, videoID, language string) (RawCaptions, error) {
	if entry, ok := storeGet(ctx, videoID, language); ok {
		return RawCaptions{
			Text:         entry.Raw,
			Format:       captions.Format(entry.Format),
			Language:     entry.Language,
			LanguageName: entry.LanguageName,
			IsGenerated:  entry.IsGenerated,
			Title:        entry.Title,
			Channel:      entry.Channel,
		}, nil
	}

	if cfg.Fetcher == nil {
		return RawCaptions{}, ErrNoFetcher
	}

	IncrFetchRequests()
	raw, err := cfg.Fetcher.FetchCaptions(ctx, videoID, language)
	if err != nil {
		IncrFetchErrors()
		return RawCaptions{}, fmt.Errorf("fetch captions for %s: %w", videoID, err)
	}

	storePut(ctx, videoID, language, raw)
	return raw, nil
}

// storeGet consults the raw-caption store, honoring the caption TTL.
func storeGet(ctx context.Context, videoID, language string) (store.Entry, bool) {
	if cfg.Store == nil {
		return store.Entry{}, false
	}
	entry, ok, err := cfg.Store.Get(ctx, videoID, language)
	if err != nil {
		slog.Warn("caption store read failed", slog.String("video", videoID), slog.Any("error", err))
		return store.Entry{}, false
	}
	if !ok || (cfg.CaptionTTL > 0 && time.Since(entry.FetchedAt) > cfg.CaptionTTL) {
		IncrStoreMisses()
		return store.Entry{}, false
	}
	IncrStoreHits()
	return entry, true
}

func storePut(ctx context.Context, videoID, language string, raw RawCaptions) {
	if cfg.Store == nil {
		return
	}
	err := cfg.Store.Put(ctx, store.Entry{
		VideoID:       videoID,
		RequestedLang: language,
		Language:      raw.Language,
		LanguageName:  raw.LanguageName,
		Format:        string(raw.Format),
		IsGenerated:   raw.IsGenerated,
		Title:         raw.Title,
		Channel:       raw.Channel,
		Raw:           raw.Text,
		FetchedAt:     time.Now(),
	})
	if err != nil {
		slog.Warn("caption store write failed", slog.String("video", videoID), slog.Any("error", err))
	}
}
