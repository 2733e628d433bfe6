package transcriptserver

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/anatolykoptev/go_transcript/internal/engine"
	"github.com/anatolykoptev/go_transcript/internal/engine/captions"
	"github.com/anatolykoptev/go_transcript/internal/engine/sources"
	"github.com/anatolykoptev/go_transcript/internal/toolutil"
	"github.com/modelcontextprotocol/go-sdk/mcp"
)

func registerGetTranscript(server *mcp.Server) {
	mcp.AddTool(server, &mcp.Tool{
		Name:        "get_transcript",
		Description: "Get the transcript of a YouTube video as timed entries plus plain text. Accepts a video URL or ID, an optional language code, and an optional start_time/end_time window in seconds. Set timestamps=true to prefix each line with [MM:SS].",
		Annotations: &mcp.ToolAnnotations{ReadOnlyHint: true},
	}, func(ctx context.Context, _ *mcp.CallToolRequest, input engine.TranscriptInput) (*mcp.CallToolResult, engine.TranscriptOutput, error) {
		engine.IncrTranscriptRequests()

		videoID, err := sources.ExtractVideoID(input.Video)
		if err != nil {
			return nil, engine.TranscriptOutput{}, err
		}
		start, err := ParseOptionalSeconds(input.StartTime, "start_time")
		if err != nil {
			return nil, engine.TranscriptOutput{}, err
		}
		end, err := ParseOptionalSeconds(input.EndTime, "end_time")
		if err != nil {
			return nil, engine.TranscriptOutput{}, err
		}

		cacheKey := engine.CacheKey("get_transcript", videoID, toolutil.NormLang(input.Language),
			secondsKey(start), secondsKey(end), strconv.FormatBool(input.Timestamps))
		if out, ok := toolutil.CacheLoadJSON[engine.TranscriptOutput](ctx, cacheKey); ok {
			return nil, out, nil
		}

		t, meta, err := engine.LoadTranscript(ctx, videoID, input.Language)
		if err != nil {
			return nil, engine.TranscriptOutput{}, err
		}
		t, err = captions.FilterRange(t, start, end)
		if err != nil {
			var rangeErr *captions.InvalidRangeError
			if errors.As(err, &rangeErr) {
				return nil, engine.TranscriptOutput{}, fmt.Errorf("invalid time range: %s", rangeErr.Reason)
			}
			return nil, engine.TranscriptOutput{}, err
		}

		out := engine.TranscriptOutput{
			VideoID:      videoID,
			Language:     meta.Language,
			LanguageName: meta.LanguageName,
			IsGenerated:  meta.IsGenerated,
			Title:        meta.Title,
			Channel:      meta.Channel,
			Entries:      transcriptEntries(t),
			PlainText:    plainText(t, input.Timestamps),
			Duration:     t.Duration,
			WordCount:    t.WordCount,
		}
		toolutil.CacheStoreJSON(ctx, cacheKey, out)
		return nil, out, nil
	})
}

func transcriptEntries(t captions.Transcript) []engine.TranscriptEntry {
	entries := make([]engine.TranscriptEntry, 0, len(t.Segments))
	for _, s := range t.Segments {
		entries = append(entries, engine.TranscriptEntry{
			Start:     s.Start,
			End:       s.End,
			Timestamp: engine.FormatTimestamp(s.Start),
			Text:      s.Text,
		})
	}
	return entries
}

// plainText renders the transcript body, one line per segment when
// timestamps are requested, a single flowing paragraph otherwise.
func plainText(t captions.Transcript, timestamps bool) string {
	if !timestamps {
		return t.FullText
	}
	var b strings.Builder
	for i, s := range t.Segments {
		if i > 0 {
			b.WriteByte('\n')
		}
		b.WriteString("[" + engine.FormatTimestamp(s.Start) + "] " + s.Text)
	}
	return b.String()
}

// secondsKey renders an optional seconds value for cache keys.
func secondsKey(v *float64) string {
	if v == nil {
		return "-"
	}
	return strconv.FormatFloat(*v, 'f', -1, 64)
}
