package store

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

const postgresSchema = `
CREATE TABLE IF NOT EXISTS captions (
	video_id       TEXT NOT NULL,
	requested_lang TEXT NOT NULL,
	language       TEXT NOT NULL,
	language_name  TEXT NOT NULL DEFAULT '',
	format         TEXT NOT NULL,
	is_generated   BOOLEAN NOT NULL DEFAULT FALSE,
	title          TEXT NOT NULL DEFAULT '',
	channel        TEXT NOT NULL DEFAULT '',
	raw            TEXT NOT NULL,
	fetched_at     TIMESTAMPTZ NOT NULL,
	PRIMARY KEY (video_id, requested_lang)
)`

// PostgresStore keeps captions in a shared PostgreSQL database for
// multi-replica deployments.
type PostgresStore struct {
	pool *pgxpool.Pool
}

// ConnectPostgres creates a pgx pool against databaseURL and ensures
// the captions table exists.
func ConnectPostgres(ctx context.Context, databaseURL string) (*PostgresStore, error) {
	if databaseURL == "" {
		return nil, errors.New("store: DATABASE_URL is required")
	}

	config, err := pgxpool.ParseConfig(databaseURL)
	if err != nil {
		return nil, fmt.Errorf("store: parse DATABASE_URL: %w", err)
	}
	config.MaxConns = 10
	config.MinConns = 1

	pool, err := pgxpool.NewWithConfig(ctx, config)
	if err != nil {
		return nil, fmt.Errorf("store: create pgx pool: %w", err)
	}
	if _, err := pool.Exec(ctx, postgresSchema); err != nil {
		pool.Close()
		return nil, fmt.Errorf("store: init schema: %w", err)
	}
	return &PostgresStore{pool: pool}, nil
}

func (s *PostgresStore) Get(ctx context.Context, videoID, requestedLang string) (Entry, bool, error) {
	row := s.pool.QueryRow(ctx, `
		SELECT video_id, requested_lang, language, language_name, format,
		       is_generated, title, channel, raw, fetched_at
		FROM captions WHERE video_id = $1 AND requested_lang = $2`,
		videoID, requestedLang)

	var e Entry
	var fetchedAt time.Time
	err := row.Scan(&e.VideoID, &e.RequestedLang, &e.Language, &e.LanguageName,
		&e.Format, &e.IsGenerated, &e.Title, &e.Channel, &e.Raw, &fetchedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return Entry{}, false, nil
	}
	if err != nil {
		return Entry{}, false, fmt.Errorf("store: get %s/%s: %w", videoID, requestedLang, err)
	}
	e.FetchedAt = fetchedAt
	return e, true, nil
}

func (s *PostgresStore) Put(ctx context.Context, e Entry) error {
	_, err := s.pool.Exec(ctx, `
		INSERT INTO captions
		(video_id, requested_lang, language, language_name, format,
		 is_generated, title, channel, raw, fetched_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		ON CONFLICT (video_id, requested_lang) DO UPDATE SET
			language = EXCLUDED.language,
			language_name = EXCLUDED.language_name,
			format = EXCLUDED.format,
			is_generated = EXCLUDED.is_generated,
			title = EXCLUDED.title,
			channel = EXCLUDED.channel,
			raw = EXCLUDED.raw,
			fetched_at = EXCLUDED.fetched_at`,
		e.VideoID, e.RequestedLang, e.Language, e.LanguageName, e.Format,
		e.IsGenerated, e.Title, e.Channel, e.Raw, e.FetchedAt)
	if err != nil {
		return fmt.Errorf("store: put %s/%s: %w", e.VideoID, e.RequestedLang, err)
	}
	return nil
}

func (s *PostgresStore) Close() error {
	s.pool.Close()
	return nil
}
