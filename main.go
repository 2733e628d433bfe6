// go_transcript — YouTube transcript MCP server.
//
// Exposes four MCP tools: get_transcript, search_transcript,
// list_transcript_languages, transcript_summary. Runs as HTTP MCP
// server or stdio transport.
//
// Raw caption payloads persist in SQLite (or PostgreSQL when
// DATABASE_URL is set); tool outputs cache in memory with optional
// Redis L2.
package main

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/anatolykoptev/go-kit/env"
	"github.com/anatolykoptev/go-mcpserver"
	"github.com/anatolykoptev/go_transcript/internal/engine"
	"github.com/anatolykoptev/go_transcript/internal/engine/sources"
	"github.com/anatolykoptev/go_transcript/internal/store"
	"github.com/anatolykoptev/go_transcript/internal/transcriptserver"
	"github.com/modelcontextprotocol/go-sdk/mcp"
)

var (
	version = "dev"
	mcpPort = env.Str("MCP_PORT", "8893")
)

func main() {
	initEngine()

	slog.Info("starting go_transcript",
		slog.String("port", mcpPort),
	)

	server := mcp.NewServer(&mcp.Implementation{
		Name:    "go_transcript",
		Version: version,
	}, nil)

	transcriptserver.RegisterTools(server)
	slog.Info("tools registered", slog.Int("count", 4))

	if err := mcpserver.Run(server, mcpserver.Config{
		Name:         "go_transcript",
		Version:      version,
		Port:         mcpPort,
		WriteTimeout: 120 * time.Second,
		Metrics:      engine.FormatMetrics,
	}); err != nil {
		slog.Error("server failed", slog.Any("error", err))
	}
}

func initEngine() {
	c := engine.Config{
		Languages:            env.List("CAPTION_LANGS", "en"),
		TopWords:             env.Int("TOP_WORDS", 10),
		ContextWords:         env.Int("CONTEXT_WORDS", 5),
		SampleLength:         env.Int("SAMPLE_LENGTH", 500),
		FillerWords:          env.List("FILLER_WORDS", ""),
		CaptionTTL:           env.Duration("CAPTION_TTL", 24*time.Hour),
		CacheMaxEntries:      env.Int("CACHE_MAX_ENTRIES", 1000),
		CacheCleanupInterval: env.Duration("CACHE_CLEANUP_INTERVAL", 300*time.Second),
		HTTPClient: &http.Client{
			Timeout: 15 * time.Second,
			Transport: &http.Transport{
				MaxIdleConns:        20,
				MaxIdleConnsPerHost: 10,
				IdleConnTimeout:     60 * time.Second,
			},
		},
	}

	c.Fetcher = sources.NewYouTubeFetcher(
		c.Languages,
		env.Float("YT_RPS", 2),
		env.Int("YT_BURST", 2),
	)

	// Caption store: PostgreSQL when DATABASE_URL is set, otherwise
	// a local SQLite file.
	if dbURL := env.Str("DATABASE_URL", ""); dbURL != "" {
		st, err := store.ConnectPostgres(context.Background(), dbURL)
		if err != nil {
			slog.Warn("postgres store init failed, captions will not persist", slog.Any("error", err))
		} else {
			c.Store = st
			slog.Info("caption store ready", slog.String("backend", "postgres"))
		}
	} else {
		st, err := store.OpenSQLite(env.Str("SQLITE_PATH", ""))
		if err != nil {
			slog.Warn("sqlite store init failed, captions will not persist", slog.Any("error", err))
		} else {
			c.Store = st
			slog.Info("caption store ready", slog.String("backend", "sqlite"))
		}
	}

	engine.Init(c)

	cacheTTL := env.Duration("CACHE_TTL", 15*time.Minute)
	engine.InitCache(env.Str("REDIS_URL", ""), cacheTTL, c.CacheMaxEntries, c.CacheCleanupInterval)
}
