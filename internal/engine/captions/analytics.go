package captions

import (
	"math"
	"sort"
	"strings"
	"unicode"
)

// defaultFillerWords are common speech disfluencies tracked for pace
// and delivery analytics. Multi-word entries are matched as token runs.
var defaultFillerWords = []string{
	"um", "uh", "er", "ah", "like", "you know", "sort of", "kind of",
	"actually", "basically", "literally", "right", "okay", "so", "well",
}

// defaultStopWords filters articles, pronouns, conjunctions and common
// auxiliaries out of the top-word ranking.
var defaultStopWords = []string{
	"a", "an", "the", "and", "or", "but", "if", "then", "than", "that",
	"this", "these", "those", "it", "its", "i", "me", "my", "we", "us",
	"our", "you", "your", "he", "him", "his", "she", "her", "they",
	"them", "their", "is", "am", "are", "was", "were", "be", "been",
	"being", "do", "does", "did", "have", "has", "had", "will", "would",
	"can", "could", "shall", "should", "may", "might", "must", "of",
	"to", "in", "on", "at", "by", "for", "with", "from", "as", "into",
	"about", "over", "under", "not", "no", "there", "here", "what",
	"which", "who", "when", "where", "how", "all", "each", "some",
	"more", "most", "other", "just", "also", "very", "too", "out", "up",
	"down", "because", "while", "during", "before", "after", "between",
}

// Speaking-pace bucket boundaries in words per minute. Exact boundary
// values fall into the lower bucket.
const (
	paceSlowMax     = 110
	paceModerateMax = 160
)

// Reading speeds for the two estimate fields, in words per minute.
const (
	readingRateSlow = 200
	readingRateFast = 250
)

// AnalyzerConfig carries the word lists and limits for an Analyzer.
// Injected rather than global so tests can pin custom stoplists.
type AnalyzerConfig struct {
	FillerWords []string // zero-length → defaults
	StopWords   []string // zero-length → defaults
	TopWords    int      // max entries in the top-word ranking, 0 → 10
}

// Analyzer computes descriptive statistics over a transcript.
type Analyzer struct {
	fillerPhrases [][]string      // tokenized filler entries
	fillerTokens  map[string]bool // every word of every filler entry
	stopWords     map[string]bool
	topWords      int
}

// WordFreq is one entry in the top-word ranking.
type WordFreq struct {
	Word  string `json:"word"`
	Count int    `json:"count"`
}

// Report is the full analytics output. Derived on demand, never stored.
type Report struct {
	WordCount        int        `json:"word_count"`
	DurationSeconds  float64    `json:"duration_seconds"`
	WordsPerMinute   float64    `json:"words_per_minute"`
	PaceLabel        string     `json:"pace_label"`
	FillerWordCount  int        `json:"filler_word_count"`
	FillerWordRatio  float64    `json:"filler_word_ratio"`
	TopWords         []WordFreq `json:"top_words"`
	QuestionCount    int        `json:"question_count"`
	ExclamationCount int        `json:"exclamation_count"`
	ReadingTime200   float64    `json:"estimated_reading_time_200wpm_minutes"`
	ReadingTime250   float64    `json:"estimated_reading_time_250wpm_minutes"`
}

// NewAnalyzer builds an Analyzer, filling zero config fields with the
// package defaults.
func NewAnalyzer(cfg AnalyzerConfig) *Analyzer {
	fillers := cfg.FillerWords
	if len(fillers) == 0 {
		fillers = defaultFillerWords
	}
	stops := cfg.StopWords
	if len(stops) == 0 {
		stops = defaultStopWords
	}
	topN := cfg.TopWords
	if topN <= 0 {
		topN = 10
	}

	a := &Analyzer{
		fillerTokens: make(map[string]bool),
		stopWords:    make(map[string]bool, len(stops)),
		topWords:     topN,
	}
	for _, f := range fillers {
		phrase := strings.Fields(strings.ToLower(f))
		if len(phrase) == 0 {
			continue
		}
		a.fillerPhrases = append(a.fillerPhrases, phrase)
		for _, w := range phrase {
			a.fillerTokens[w] = true
		}
	}
	for _, s := range stops {
		a.stopWords[strings.ToLower(s)] = true
	}
	return a
}

// Analyze computes a Report for the transcript. Never fails; an empty
// transcript yields a zeroed report with a neutral "moderate" pace.
func (a *Analyzer) Analyze(t Transcript) Report {
	r := Report{
		WordCount:       t.WordCount,
		DurationSeconds: t.Duration,
		PaceLabel:       "moderate",
	}
	if t.WordCount == 0 {
		r.TopWords = []WordFreq{}
		return r
	}

	if t.Duration > 0 {
		r.WordsPerMinute = round1(float64(t.WordCount) / (t.Duration / 60))
	}
	switch {
	case t.Duration == 0:
		// no timing → keep the neutral label
	case r.WordsPerMinute < paceSlowMax:
		r.PaceLabel = "slow"
	case r.WordsPerMinute <= paceModerateMax:
		r.PaceLabel = "moderate"
	default:
		r.PaceLabel = "fast"
	}

	tokens := tokenize(t.FullText)
	r.FillerWordCount = a.countFillers(tokens)
	r.FillerWordRatio = round3(float64(r.FillerWordCount) / float64(t.WordCount))
	r.TopWords = a.topWordFreqs(tokens)

	r.QuestionCount = strings.Count(t.FullText, "?")
	r.ExclamationCount = strings.Count(t.FullText, "!")

	r.ReadingTime200 = round1(float64(t.WordCount) / readingRateSlow)
	r.ReadingTime250 = round1(float64(t.WordCount) / readingRateFast)
	return r
}

// countFillers counts filler occurrences over the token stream.
// Multi-word fillers are matched as consecutive token runs, longest
// phrase first, and consume their tokens so "you know" does not also
// count an inner "know".
func (a *Analyzer) countFillers(tokens []string) int {
	phrases := make([][]string, len(a.fillerPhrases))
	copy(phrases, a.fillerPhrases)
	sort.SliceStable(phrases, func(i, j int) bool { return len(phrases[i]) > len(phrases[j]) })

	count := 0
	for i := 0; i < len(tokens); {
		matched := 0
		for _, phrase := range phrases {
			if matchesAt(tokens, i, phrase) {
				matched = len(phrase)
				break
			}
		}
		if matched > 0 {
			count++
			i += matched
			continue
		}
		i++
	}
	return count
}

func matchesAt(tokens []string, i int, phrase []string) bool {
	if i+len(phrase) > len(tokens) {
		return false
	}
	for j, w := range phrase {
		if tokens[i+j] != w {
			return false
		}
	}
	return true
}

// topWordFreqs ranks non-stopword, non-filler tokens by frequency.
// Ties keep first-occurrence order.
func (a *Analyzer) topWordFreqs(tokens []string) []WordFreq {
	counts := make(map[string]int)
	firstSeen := make(map[string]int)
	for i, tok := range tokens {
		if tok == "" || a.stopWords[tok] || a.fillerTokens[tok] {
			continue
		}
		if _, ok := counts[tok]; !ok {
			firstSeen[tok] = i
		}
		counts[tok]++
	}

	ranked := make([]WordFreq, 0, len(counts))
	for w, c := range counts {
		ranked = append(ranked, WordFreq{Word: w, Count: c})
	}
	sort.SliceStable(ranked, func(i, j int) bool {
		if ranked[i].Count != ranked[j].Count {
			return ranked[i].Count > ranked[j].Count
		}
		return firstSeen[ranked[i].Word] < firstSeen[ranked[j].Word]
	})
	if len(ranked) > a.topWords {
		ranked = ranked[:a.topWords]
	}
	return ranked
}

// tokenize lowercases and splits text on whitespace, trimming leading
// and trailing punctuation from each token. Inner apostrophes and
// hyphens survive ("don't", "front-end").
func tokenize(text string) []string {
	fields := strings.Fields(strings.ToLower(text))
	tokens := make([]string, 0, len(fields))
	for _, f := range fields {
		tok := strings.TrimFunc(f, func(r rune) bool {
			return !unicode.IsLetter(r) && !unicode.IsDigit(r)
		})
		if tok != "" {
			tokens = append(tokens, tok)
		}
	}
	return tokens
}

func round1(x float64) float64 { return math.Round(x*10) / 10 }

func round3(x float64) float64 { return math.Round(x*1000) / 1000 }
