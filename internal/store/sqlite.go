package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite"
)

const sqliteSchema = `
CREATE TABLE IF NOT EXISTS captions (
	video_id       TEXT NOT NULL,
	requested_lang TEXT NOT NULL,
	language       TEXT NOT NULL,
	language_name  TEXT NOT NULL DEFAULT '',
	format         TEXT NOT NULL,
	is_generated   INTEGER NOT NULL DEFAULT 0,
	title          TEXT NOT NULL DEFAULT '',
	channel        TEXT NOT NULL DEFAULT '',
	raw            TEXT NOT NULL,
	fetched_at     INTEGER NOT NULL,
	PRIMARY KEY (video_id, requested_lang)
);
`

// SQLiteStore keeps captions in a local SQLite database, the default
// for single-instance deployments.
type SQLiteStore struct {
	db *sql.DB
}

// OpenSQLite opens (or creates) the caption database at path. An empty
// path defaults to ~/.go_transcript/captions.db.
func OpenSQLite(path string) (*SQLiteStore, error) {
	if path == "" {
		dir := filepath.Join(os.Getenv("HOME"), ".go_transcript")
		if err := os.MkdirAll(dir, 0750); err != nil {
			return nil, fmt.Errorf("store: mkdir %s: %w", dir, err)
		}
		path = filepath.Join(dir, "captions.db")
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("store: open %s: %w", path, err)
	}
	if _, err := db.Exec(sqliteSchema); err != nil {
		db.Close()
		return nil, fmt.Errorf("store: init schema: %w", err)
	}
	return &SQLiteStore{db: db}, nil
}

func (s *SQLiteStore) Get(ctx context.Context, videoID, requestedLang string) (Entry, bool, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT video_id, requested_lang, language, language_name, format,
		       is_generated, title, channel, raw, fetched_at
		FROM captions WHERE video_id = ? AND requested_lang = ?`,
		videoID, requestedLang)

	var e Entry
	var generated int
	var fetchedAt int64
	err := row.Scan(&e.VideoID, &e.RequestedLang, &e.Language, &e.LanguageName,
		&e.Format, &generated, &e.Title, &e.Channel, &e.Raw, &fetchedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return Entry{}, false, nil
	}
	if err != nil {
		return Entry{}, false, fmt.Errorf("store: get %s/%s: %w", videoID, requestedLang, err)
	}
	e.IsGenerated = generated != 0
	e.FetchedAt = time.Unix(fetchedAt, 0)
	return e, true, nil
}

func (s *SQLiteStore) Put(ctx context.Context, e Entry) error {
	generated := 0
	if e.IsGenerated {
		generated = 1
	}
	_, err := s.db.ExecContext(ctx, `
		INSERT OR REPLACE INTO captions
		(video_id, requested_lang, language, language_name, format,
		 is_generated, title, channel, raw, fetched_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		e.VideoID, e.RequestedLang, e.Language, e.LanguageName, e.Format,
		generated, e.Title, e.Channel, e.Raw, e.FetchedAt.Unix())
	if err != nil {
		return fmt.Errorf("store: put %s/%s: %w", e.VideoID, e.RequestedLang, err)
	}
	return nil
}

func (s *SQLiteStore) Close() error {
	return s.db.Close()
}
