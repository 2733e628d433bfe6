package engine

import (
	"fmt"
	"strings"
	"sync/atomic"
)

// Metrics tracks operational counters across the engine.
var metrics struct {
	TranscriptRequests atomic.Int64
	SearchRequests     atomic.Int64
	SummaryRequests    atomic.Int64
	LanguageRequests   atomic.Int64
	FetchRequests      atomic.Int64
	FetchErrors        atomic.Int64
	StoreHits          atomic.Int64
	StoreMisses        atomic.Int64
}

// GetMetrics returns a snapshot of all metrics including cache stats.
func GetMetrics() map[string]int64 {
	hits, misses := CacheStats()
	return map[string]int64{
		"transcript_requests": metrics.TranscriptRequests.Load(),
		"search_requests":     metrics.SearchRequests.Load(),
		"summary_requests":    metrics.SummaryRequests.Load(),
		"language_requests":   metrics.LanguageRequests.Load(),
		"fetch_requests":      metrics.FetchRequests.Load(),
		"fetch_errors":        metrics.FetchErrors.Load(),
		"store_hits":          metrics.StoreHits.Load(),
		"store_misses":        metrics.StoreMisses.Load(),
		"cache_hits":          hits,
		"cache_misses":        misses,
	}
}

// FormatMetrics returns metrics as a simple text format for the HTTP endpoint.
func FormatMetrics() string {
	m := GetMetrics()
	var sb strings.Builder
	keys := []string{
		"transcript_requests", "search_requests", "summary_requests", "language_requests",
		"fetch_requests", "fetch_errors",
		"store_hits", "store_misses",
		"cache_hits", "cache_misses",
	}
	for _, k := range keys {
		fmt.Fprintf(&sb, "%s %d\n", k, m[k])
	}
	return sb.String()
}

// Incrementors for the tool layer.
func IncrTranscriptRequests() { metrics.TranscriptRequests.Add(1) }
func IncrSearchRequests()     { metrics.SearchRequests.Add(1) }
func IncrSummaryRequests()    { metrics.SummaryRequests.Add(1) }
func IncrLanguageRequests()   { metrics.LanguageRequests.Add(1) }

// Incrementors for the retrieval pipeline.
func IncrFetchRequests() { metrics.FetchRequests.Add(1) }
func IncrFetchErrors()   { metrics.FetchErrors.Add(1) }
func IncrStoreHits()     { metrics.StoreHits.Add(1) }
func IncrStoreMisses()   { metrics.StoreMisses.Add(1) }
