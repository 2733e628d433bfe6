package transcriptserver

import (
	"context"

	"github.com/anatolykoptev/go_transcript/internal/engine"
	"github.com/anatolykoptev/go_transcript/internal/engine/sources"
	"github.com/anatolykoptev/go_transcript/internal/toolutil"
	"github.com/modelcontextprotocol/go-sdk/mcp"
)

func registerListLanguages(server *mcp.Server) {
	mcp.AddTool(server, &mcp.Tool{
		Name:        "list_transcript_languages",
		Description: "List the caption languages available for a YouTube video, including whether each track is manually created or auto-generated.",
		Annotations: &mcp.ToolAnnotations{ReadOnlyHint: true},
	}, func(ctx context.Context, _ *mcp.CallToolRequest, input engine.LanguagesInput) (*mcp.CallToolResult, engine.LanguagesOutput, error) {
		engine.IncrLanguageRequests()

		videoID, err := sources.ExtractVideoID(input.Video)
		if err != nil {
			return nil, engine.LanguagesOutput{}, err
		}

		cacheKey := engine.CacheKey("list_transcript_languages", videoID)
		if out, ok := toolutil.CacheLoadJSON[engine.LanguagesOutput](ctx, cacheKey); ok {
			return nil, out, nil
		}

		if engine.Cfg.Fetcher == nil {
			return nil, engine.LanguagesOutput{}, engine.ErrNoFetcher
		}
		engine.IncrFetchRequests()
		langs, err := engine.Cfg.Fetcher.ListLanguages(ctx, videoID)
		if err != nil {
			engine.IncrFetchErrors()
			return nil, engine.LanguagesOutput{}, err
		}

		out := engine.LanguagesOutput{VideoID: videoID, Languages: langs}
		toolutil.CacheStoreJSON(ctx, cacheKey, out)
		return nil, out, nil
	})
}
