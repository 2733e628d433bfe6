package transcriptserver

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	"github.com/anatolykoptev/go_transcript/internal/engine"
	"github.com/anatolykoptev/go_transcript/internal/engine/captions"
	"github.com/anatolykoptev/go_transcript/internal/engine/sources"
	"github.com/anatolykoptev/go_transcript/internal/toolutil"
	"github.com/modelcontextprotocol/go-sdk/mcp"
)

func registerSearchTranscript(server *mcp.Server) {
	mcp.AddTool(server, &mcp.Tool{
		Name:        "search_transcript",
		Description: "Search a YouTube video transcript for a phrase. Returns every occurrence with its timestamp and surrounding words of context. Plain substring matching, optionally case-sensitive.",
		Annotations: &mcp.ToolAnnotations{ReadOnlyHint: true},
	}, func(ctx context.Context, _ *mcp.CallToolRequest, input engine.SearchInput) (*mcp.CallToolResult, engine.SearchOutput, error) {
		engine.IncrSearchRequests()

		if input.Query == "" {
			return nil, engine.SearchOutput{}, errors.New("query is required")
		}
		videoID, err := sources.ExtractVideoID(input.Video)
		if err != nil {
			return nil, engine.SearchOutput{}, err
		}
		contextWords := resolveContextWords(input.ContextWords)

		cacheKey := engine.CacheKey("search_transcript", videoID, toolutil.NormLang(input.Language),
			input.Query, strconv.FormatBool(input.CaseSensitive), strconv.Itoa(contextWords))
		if out, ok := toolutil.CacheLoadJSON[engine.SearchOutput](ctx, cacheKey); ok {
			return nil, out, nil
		}

		t, meta, err := engine.LoadTranscript(ctx, videoID, input.Language)
		if err != nil {
			return nil, engine.SearchOutput{}, err
		}

		matches, err := captions.Search(t, input.Query, input.CaseSensitive, contextWords)
		if err != nil {
			var valErr *captions.ValidationError
			if errors.As(err, &valErr) {
				return nil, engine.SearchOutput{}, fmt.Errorf("invalid %s: %s", valErr.Field, valErr.Reason)
			}
			return nil, engine.SearchOutput{}, err
		}

		out := engine.SearchOutput{
			VideoID:      videoID,
			Query:        input.Query,
			Language:     meta.Language,
			TotalMatches: len(matches),
			Matches:      make([]engine.SearchMatch, 0, len(matches)),
		}
		for _, m := range matches {
			out.Matches = append(out.Matches, engine.SearchMatch{
				SegmentIndex:  m.SegmentIndex,
				StartTime:     m.StartTime,
				Timestamp:     engine.FormatTimestamp(m.StartTime),
				ContextBefore: m.ContextBefore,
				MatchedText:   m.MatchedText,
				ContextAfter:  m.ContextAfter,
			})
		}
		toolutil.CacheStoreJSON(ctx, cacheKey, out)
		return nil, out, nil
	})
}

// resolveContextWords applies the configured default only when the
// parameter is absent; an explicit 0 means no context and is honored.
func resolveContextWords(v *int) int {
	if v != nil {
		return *v
	}
	return engine.Cfg.ContextWords
}
