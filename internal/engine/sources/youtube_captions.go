package sources

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"

	"golang.org/x/time/rate"

	"github.com/anatolykoptev/go_transcript/internal/engine"
	"github.com/anatolykoptev/go_transcript/internal/engine/captions"
)

// ytInitialPlayerResponseMarker marks the start of the player response
// JSON in watch-page HTML.
const ytInitialPlayerResponseMarker = "ytInitialPlayerResponse = "

// YouTubeFetcher retrieves caption payloads from YouTube.
// Primary:  scrape watch page → ytInitialPlayerResponse → captionTracks (works from any IP)
// Fallback: ANDROID Innertube /player → captionTracks
//
// All requests share one rate limiter; YouTube throttles aggressively
// from datacenter addresses.
type YouTubeFetcher struct {
	langs   []string // preferred languages when the caller does not pick one
	limiter *rate.Limiter
}

// NewYouTubeFetcher builds a fetcher preferring the given languages,
// issuing at most rps requests per second.
func NewYouTubeFetcher(langs []string, rps float64, burst int) *YouTubeFetcher {
	if len(langs) == 0 {
		langs = []string{"en"}
	}
	if rps <= 0 {
		rps = 2
	}
	if burst <= 0 {
		burst = 2
	}
	return &YouTubeFetcher{
		langs:   langs,
		limiter: rate.NewLimiter(rate.Limit(rps), burst),
	}
}

// FetchCaptions picks the best caption track for the video and
// downloads it as VTT (JSON3 when the VTT rendition is unavailable).
func (f *YouTubeFetcher) FetchCaptions(ctx context.Context, videoID, language string) (engine.RawCaptions, error) {
	langs := f.langs
	if language != "" {
		langs = []string{language}
	}

	player, meta, err := f.playerResponse(ctx, videoID)
	if err != nil {
		return engine.RawCaptions{}, err
	}
	tracks, err := captionTracks(player)
	if err != nil {
		return engine.RawCaptions{}, fmt.Errorf("video %s: %w", videoID, err)
	}

	track, ok := pickTrack(tracks, langs)
	if !ok {
		return engine.RawCaptions{}, fmt.Errorf("video %s: all caption tracks require a browser session", videoID)
	}
	if language != "" && track.LanguageCode != language {
		return engine.RawCaptions{}, fmt.Errorf("video %s: no captions for language %q", videoID, language)
	}

	text, format, err := f.fetchCaptionFile(ctx, track.BaseURL)
	if err != nil {
		return engine.RawCaptions{}, fmt.Errorf("video %s: %w", videoID, err)
	}

	return engine.RawCaptions{
		Text:         text,
		Format:       format,
		Language:     track.LanguageCode,
		LanguageName: track.displayName(),
		IsGenerated:  track.Kind == "asr",
		Title:        meta.Title,
		Channel:      meta.Channel,
	}, nil
}

// ListLanguages returns every caption track the video offers.
func (f *YouTubeFetcher) ListLanguages(ctx context.Context, videoID string) ([]engine.LanguageInfo, error) {
	player, _, err := f.playerResponse(ctx, videoID)
	if err != nil {
		return nil, err
	}
	tracks, err := captionTracks(player)
	if err != nil {
		return nil, fmt.Errorf("video %s: %w", videoID, err)
	}

	infos := make([]engine.LanguageInfo, 0, len(tracks))
	for _, t := range tracks {
		infos = append(infos, engine.LanguageInfo{
			Code:        t.LanguageCode,
			Name:        t.displayName(),
			IsGenerated: t.Kind == "asr",
		})
	}
	return infos, nil
}

// playerResponse obtains an Innertube player response for the video,
// scraping the watch page first and falling back to the ANDROID client.
func (f *YouTubeFetcher) playerResponse(ctx context.Context, videoID string) (*innertubePlayerResp, videoMeta, error) {
	player, meta, err := f.scrapeWatchPage(ctx, videoID)
	if err == nil {
		return player, meta, nil
	}
	slog.Warn("youtube: page scrape failed, trying player",
		slog.String("id", videoID), slog.Any("err", err))

	if err := f.limiter.Wait(ctx); err != nil {
		return nil, videoMeta{}, err
	}
	player, err = postPlayerAndroid(ctx, videoID)
	if err != nil {
		return nil, videoMeta{}, err
	}
	if player.VideoDetails != nil {
		meta = videoMeta{Title: player.VideoDetails.Title, Channel: player.VideoDetails.Author}
	}
	return player, meta, nil
}

// scrapeWatchPage fetches the watch page and extracts
// ytInitialPlayerResponse plus og: display metadata.
func (f *YouTubeFetcher) scrapeWatchPage(ctx context.Context, videoID string) (*innertubePlayerResp, videoMeta, error) {
	if err := f.limiter.Wait(ctx); err != nil {
		return nil, videoMeta{}, err
	}

	watchURL := "https://www.youtube.com/watch?v=" + videoID
	resp, err := engine.RetryHTTP(ctx, engine.DefaultRetryConfig, func() (*http.Response, error) {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, watchURL, nil)
		if err != nil {
			return nil, err
		}
		req.Header.Set("User-Agent", engine.UserAgentChrome)
		req.Header.Set("Accept-Language", "en-US,en;q=0.9")
		req.Header.Set("Accept", "text/html,application/xhtml+xml,application/xml;q=0.9,*/*;q=0.8")
		return engine.Cfg.HTTPClient.Do(req)
	})
	if err != nil {
		return nil, videoMeta{}, fmt.Errorf("watch page: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, 6*1024*1024))
	if err != nil {
		return nil, videoMeta{}, fmt.Errorf("read watch page: %w", err)
	}

	idx := strings.Index(string(body), ytInitialPlayerResponseMarker)
	if idx < 0 {
		return nil, videoMeta{}, errors.New("ytInitialPlayerResponse not found in watch page")
	}
	jsonData := extractJSON(body[idx+len(ytInitialPlayerResponseMarker):])
	if jsonData == nil {
		return nil, videoMeta{}, errors.New("failed to extract ytInitialPlayerResponse JSON")
	}

	var player innertubePlayerResp
	if err := json.Unmarshal(jsonData, &player); err != nil {
		return nil, videoMeta{}, fmt.Errorf("decode ytInitialPlayerResponse: %w", err)
	}
	return &player, parseWatchMeta(body), nil
}

// captionTracks pulls the track list out of a player response.
func captionTracks(player *innertubePlayerResp) ([]captionTrack, error) {
	if player.Captions == nil {
		reason := ""
		if player.PlayabilityStatus != nil {
			reason = player.PlayabilityStatus.Reason
		}
		if reason != "" {
			return nil, fmt.Errorf("captions unavailable: %s", reason)
		}
		return nil, errors.New("no captions in player response")
	}
	tracks := player.Captions.PlayerCaptionsTracklistRenderer.CaptionTracks
	if len(tracks) == 0 {
		return nil, errors.New("no caption tracks")
	}
	return tracks, nil
}

// needsPoToken reports whether a caption track URL requires a PoToken
// (browser-only). Tracks with &exp=xpe cannot be fetched server-side.
func needsPoToken(baseURL string) bool {
	return strings.Contains(baseURL, "&exp=xpe")
}

// pickTrack selects the best usable caption track for the language
// preferences: manual track in a preferred language, then an
// auto-generated one, then any English track, then anything usable.
func pickTrack(tracks []captionTrack, langs []string) (captionTrack, bool) {
	usable := make([]captionTrack, 0, len(tracks))
	for _, t := range tracks {
		if !needsPoToken(t.BaseURL) {
			usable = append(usable, t)
		}
	}
	if len(usable) == 0 {
		return captionTrack{}, false
	}
	for _, lang := range langs {
		for _, t := range usable {
			if t.LanguageCode == lang && t.Kind != "asr" {
				return t, true
			}
		}
	}
	for _, lang := range langs {
		for _, t := range usable {
			if t.LanguageCode == lang {
				return t, true
			}
		}
	}
	for _, t := range usable {
		if strings.HasPrefix(t.LanguageCode, "en") {
			return t, true
		}
	}
	return usable[0], true
}

// fetchCaptionFile downloads a caption track, asking for the VTT
// rendition first and falling back to JSON3.
func (f *YouTubeFetcher) fetchCaptionFile(ctx context.Context, baseURL string) (string, captions.Format, error) {
	text, err := f.fetchTrackFormat(ctx, baseURL, "vtt")
	if err == nil && strings.HasPrefix(strings.TrimSpace(text), "WEBVTT") {
		return text, captions.FormatVTT, nil
	}
	if err != nil {
		slog.Warn("youtube: vtt rendition failed, trying json3", slog.Any("err", err))
	}

	text, err = f.fetchTrackFormat(ctx, baseURL, "json3")
	if err != nil {
		return "", "", fmt.Errorf("fetch caption track: %w", err)
	}
	return text, captions.FormatJSON3, nil
}

func (f *YouTubeFetcher) fetchTrackFormat(ctx context.Context, baseURL, fmtParam string) (string, error) {
	if err := f.limiter.Wait(ctx); err != nil {
		return "", err
	}

	sep := "&"
	if !strings.Contains(baseURL, "?") {
		sep = "?"
	}
	url := baseURL + sep + "fmt=" + fmtParam

	resp, err := engine.RetryHTTP(ctx, engine.DefaultRetryConfig, func() (*http.Response, error) {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
		if err != nil {
			return nil, err
		}
		req.Header.Set("User-Agent", engine.UserAgentBot)
		return engine.Cfg.HTTPClient.Do(req)
	})
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("HTTP %d fetching caption track", resp.StatusCode)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, 2*1024*1024))
	if err != nil {
		return "", err
	}
	if len(strings.TrimSpace(string(body))) == 0 {
		return "", errors.New("empty caption payload")
	}
	return string(body), nil
}
