package engine

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/anatolykoptev/go_transcript/internal/engine/captions"
	"github.com/anatolykoptev/go_transcript/internal/store"
)

const fixtureVTT = `WEBVTT

00:00:00.000 --> 00:00:02.000
hello world

00:00:02.000 --> 00:00:04.000
from the pipeline
`

// fixtureFetcher implements CaptionFetcher with canned data so the
// pipeline runs offline.
type fixtureFetcher struct {
	mu      sync.Mutex
	fetches int
	err     error
}

func (f *fixtureFetcher) FetchCaptions(_ context.Context, _, _ string) (RawCaptions, error) {
	f.mu.Lock()
	f.fetches++
	f.mu.Unlock()
	if f.err != nil {
		return RawCaptions{}, f.err
	}
	return RawCaptions{
		Text:         fixtureVTT,
		Format:       captions.FormatVTT,
		Language:     "en",
		LanguageName: "English",
		Title:        "Fixture Video",
		Channel:      "Fixture Channel",
	}, nil
}

func (f *fixtureFetcher) ListLanguages(_ context.Context, _ string) ([]LanguageInfo, error) {
	return []LanguageInfo{{Code: "en", Name: "English"}}, nil
}

// memStore is an in-memory store.Store for pipeline tests.
type memStore struct {
	mu      sync.Mutex
	entries map[string]store.Entry
}

func newMemStore() *memStore {
	return &memStore{entries: make(map[string]store.Entry)}
}

func (m *memStore) Get(_ context.Context, videoID, requestedLang string) (store.Entry, bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	e, ok := m.entries[videoID+"|"+requestedLang]
	return e, ok, nil
}

func (m *memStore) Put(_ context.Context, e store.Entry) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.entries[e.VideoID+"|"+e.RequestedLang] = e
	return nil
}

func (m *memStore) Close() error { return nil }

func TestLoadTranscript_FetchParseAssemble(t *testing.T) {
	fetcher := &fixtureFetcher{}
	Init(Config{Fetcher: fetcher})

	tr, meta, err := LoadTranscript(context.Background(), "vid00000001", "")
	if err != nil {
		t.Fatal(err)
	}
	if tr.FullText != "hello world from the pipeline" {
		t.Errorf("FullText = %q", tr.FullText)
	}
	if tr.WordCount != 5 || tr.Duration != 4 {
		t.Errorf("WordCount = %d, Duration = %v", tr.WordCount, tr.Duration)
	}
	if meta.Language != "en" || meta.Title != "Fixture Video" || meta.Channel != "Fixture Channel" {
		t.Errorf("meta = %+v", meta)
	}
}

func TestLoadTranscript_SecondCallServedFromStore(t *testing.T) {
	fetcher := &fixtureFetcher{}
	Init(Config{Fetcher: fetcher, Store: newMemStore(), CaptionTTL: time.Hour})

	ctx := context.Background()
	if _, _, err := LoadTranscript(ctx, "vid00000002", "en"); err != nil {
		t.Fatal(err)
	}
	if _, _, err := LoadTranscript(ctx, "vid00000002", "en"); err != nil {
		t.Fatal(err)
	}
	if fetcher.fetches != 1 {
		t.Errorf("fetches = %d, want 1", fetcher.fetches)
	}
}

func TestLoadTranscript_ExpiredEntryRefetched(t *testing.T) {
	fetcher := &fixtureFetcher{}
	st := newMemStore()
	Init(Config{Fetcher: fetcher, Store: st, CaptionTTL: time.Hour})

	ctx := context.Background()
	if _, _, err := LoadTranscript(ctx, "vid00000003", "en"); err != nil {
		t.Fatal(err)
	}

	st.mu.Lock()
	e := st.entries["vid00000003|en"]
	e.FetchedAt = time.Now().Add(-2 * time.Hour)
	st.entries["vid00000003|en"] = e
	st.mu.Unlock()

	if _, _, err := LoadTranscript(ctx, "vid00000003", "en"); err != nil {
		t.Fatal(err)
	}
	if fetcher.fetches != 2 {
		t.Errorf("fetches = %d, want 2", fetcher.fetches)
	}
}

func TestLoadTranscript_DifferentLanguagesCachedSeparately(t *testing.T) {
	fetcher := &fixtureFetcher{}
	Init(Config{Fetcher: fetcher, Store: newMemStore(), CaptionTTL: time.Hour})

	ctx := context.Background()
	if _, _, err := LoadTranscript(ctx, "vid00000004", "en"); err != nil {
		t.Fatal(err)
	}
	if _, _, err := LoadTranscript(ctx, "vid00000004", "es"); err != nil {
		t.Fatal(err)
	}
	if fetcher.fetches != 2 {
		t.Errorf("fetches = %d, want 2", fetcher.fetches)
	}
}

func TestLoadTranscript_NoFetcher(t *testing.T) {
	Init(Config{})
	_, _, err := LoadTranscript(context.Background(), "vid00000005", "")
	if !errors.Is(err, ErrNoFetcher) {
		t.Errorf("err = %v, want ErrNoFetcher", err)
	}
}

func TestLoadTranscript_FetchErrorPropagates(t *testing.T) {
	wantErr := errors.New("video unavailable")
	Init(Config{Fetcher: &fixtureFetcher{err: wantErr}})
	_, _, err := LoadTranscript(context.Background(), "vid00000006", "")
	if !errors.Is(err, wantErr) {
		t.Errorf("err = %v, want wrapped %v", err, wantErr)
	}
}

func TestLoadTranscript_MalformedStoredPayload(t *testing.T) {
	st := newMemStore()
	st.entries["vid00000007|"] = store.Entry{
		VideoID:   "vid00000007",
		Format:    string(captions.FormatVTT),
		Raw:       "not a vtt file",
		FetchedAt: time.Now(),
	}
	Init(Config{Store: st, CaptionTTL: time.Hour})

	_, _, err := LoadTranscript(context.Background(), "vid00000007", "")
	var malformed *captions.MalformedCaptionError
	if !errors.As(err, &malformed) {
		t.Errorf("err = %v, want MalformedCaptionError", err)
	}
}
