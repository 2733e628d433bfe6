package transcriptserver

import (
	"context"
	"errors"
	"fmt"
	"math"
	"strconv"

	"github.com/anatolykoptev/go_transcript/internal/engine"
	"github.com/anatolykoptev/go_transcript/internal/engine/captions"
	"github.com/anatolykoptev/go_transcript/internal/engine/sources"
	"github.com/anatolykoptev/go_transcript/internal/toolutil"
	"github.com/modelcontextprotocol/go-sdk/mcp"
)

func registerTranscriptSummary(server *mcp.Server) {
	mcp.AddTool(server, &mcp.Tool{
		Name:        "transcript_summary",
		Description: "Compute speaking statistics for a YouTube video transcript: words per minute, pace label, filler-word usage, most frequent words, question/exclamation counts, and estimated reading times. Supports an optional start_time/end_time window.",
		Annotations: &mcp.ToolAnnotations{ReadOnlyHint: true},
	}, func(ctx context.Context, _ *mcp.CallToolRequest, input engine.SummaryInput) (*mcp.CallToolResult, engine.SummaryOutput, error) {
		engine.IncrSummaryRequests()

		videoID, err := sources.ExtractVideoID(input.Video)
		if err != nil {
			return nil, engine.SummaryOutput{}, err
		}
		start, err := ParseOptionalSeconds(input.StartTime, "start_time")
		if err != nil {
			return nil, engine.SummaryOutput{}, err
		}
		end, err := ParseOptionalSeconds(input.EndTime, "end_time")
		if err != nil {
			return nil, engine.SummaryOutput{}, err
		}
		sampleLen := input.SampleLength
		if sampleLen <= 0 {
			sampleLen = engine.Cfg.SampleLength
		}

		cacheKey := engine.CacheKey("transcript_summary", videoID, toolutil.NormLang(input.Language),
			secondsKey(start), secondsKey(end), strconv.Itoa(sampleLen))
		if out, ok := toolutil.CacheLoadJSON[engine.SummaryOutput](ctx, cacheKey); ok {
			return nil, out, nil
		}

		t, meta, err := engine.LoadTranscript(ctx, videoID, input.Language)
		if err != nil {
			return nil, engine.SummaryOutput{}, err
		}
		t, err = captions.FilterRange(t, start, end)
		if err != nil {
			var rangeErr *captions.InvalidRangeError
			if errors.As(err, &rangeErr) {
				return nil, engine.SummaryOutput{}, fmt.Errorf("invalid time range: %s", rangeErr.Reason)
			}
			return nil, engine.SummaryOutput{}, err
		}

		report := engine.Analyzer().Analyze(t)
		stats := engine.SummaryStatistics{
			Report:            report,
			DurationFormatted: engine.FormatTimestamp(t.Duration),
			SegmentCount:      len(t.Segments),
		}
		if len(t.Segments) > 0 {
			avg := float64(t.WordCount) / float64(len(t.Segments))
			stats.AvgWordsPerSegment = math.Round(avg*10) / 10
		}

		out := engine.SummaryOutput{
			VideoID:     videoID,
			Language:    meta.Language,
			IsGenerated: meta.IsGenerated,
			Title:       meta.Title,
			Statistics:  stats,
			SampleText:  engine.TruncateRunes(t.FullText, sampleLen, "..."),
		}
		toolutil.CacheStoreJSON(ctx, cacheKey, out)
		return nil, out, nil
	})
}
