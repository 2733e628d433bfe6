package captions

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// transcriptWithWords builds a transcript of n words over the given
// duration using non-stopword tokens.
func transcriptWithWords(n int, duration float64) Transcript {
	words := make([]string, n)
	for i := range words {
		words[i] = "transcript"
	}
	return Assemble([]Segment{{Start: 0, End: duration, Text: strings.Join(words, " ")}}, "en", false)
}

func TestAnalyze_PaceModerateAt160(t *testing.T) {
	a := NewAnalyzer(AnalyzerConfig{})
	r := a.Analyze(transcriptWithWords(160, 60))

	assert.Equal(t, 160.0, r.WordsPerMinute)
	assert.Equal(t, "moderate", r.PaceLabel)
}

func TestAnalyze_PaceBuckets(t *testing.T) {
	a := NewAnalyzer(AnalyzerConfig{})
	cases := []struct {
		words int
		want  string
	}{
		{109, "slow"},
		{110, "moderate"},
		{160, "moderate"},
		{161, "fast"},
	}
	for _, tc := range cases {
		r := a.Analyze(transcriptWithWords(tc.words, 60))
		assert.Equal(t, tc.want, r.PaceLabel, "wpm=%d", tc.words)
	}
}

func TestAnalyze_EmptyTranscript(t *testing.T) {
	a := NewAnalyzer(AnalyzerConfig{})
	r := a.Analyze(Assemble(nil, "", false))

	assert.Zero(t, r.WordCount)
	assert.Zero(t, r.WordsPerMinute)
	assert.Zero(t, r.FillerWordRatio)
	assert.Empty(t, r.TopWords)
	assert.Equal(t, "moderate", r.PaceLabel)
}

func TestAnalyze_FillerWords(t *testing.T) {
	a := NewAnalyzer(AnalyzerConfig{FillerWords: []string{"um", "you know"}})
	tr := Assemble([]Segment{
		{Start: 0, End: 10, Text: "um I think, you know, this is um fine you know"},
	}, "en", false)
	r := a.Analyze(tr)

	// "um" twice, "you know" twice.
	require.Equal(t, 4, r.FillerWordCount)
	assert.InDelta(t, 4.0/float64(r.WordCount), r.FillerWordRatio, 0.001)
}

func TestAnalyze_TopWordsExcludeStopAndFiller(t *testing.T) {
	a := NewAnalyzer(AnalyzerConfig{
		FillerWords: []string{"um"},
		StopWords:   []string{"the", "a"},
		TopWords:    2,
	})
	tr := Assemble([]Segment{
		{Start: 0, End: 10, Text: "um the gopher saw a gopher and the turtle saw nothing"},
	}, "en", false)
	r := a.Analyze(tr)

	require.Len(t, r.TopWords, 2)
	assert.Equal(t, WordFreq{Word: "gopher", Count: 2}, r.TopWords[0])
	// "saw" and "turtle"/"and"/"nothing" all count 1; "saw" appears first.
	assert.Equal(t, WordFreq{Word: "saw", Count: 2}, r.TopWords[1])
}

func TestAnalyze_TopWordTiesByFirstOccurrence(t *testing.T) {
	a := NewAnalyzer(AnalyzerConfig{StopWords: []string{"x"}, FillerWords: []string{"y"}, TopWords: 3})
	tr := Assemble([]Segment{{Start: 0, End: 5, Text: "banana apple cherry"}}, "", false)
	r := a.Analyze(tr)

	require.Len(t, r.TopWords, 3)
	assert.Equal(t, "banana", r.TopWords[0].Word)
	assert.Equal(t, "apple", r.TopWords[1].Word)
	assert.Equal(t, "cherry", r.TopWords[2].Word)
}

func TestAnalyze_PunctuationCounts(t *testing.T) {
	a := NewAnalyzer(AnalyzerConfig{})
	tr := Assemble([]Segment{{Start: 0, End: 5, Text: "really? yes! wow!! sure"}}, "", false)
	r := a.Analyze(tr)

	assert.Equal(t, 1, r.QuestionCount)
	assert.Equal(t, 3, r.ExclamationCount)
}

func TestAnalyze_ReadingTimes(t *testing.T) {
	a := NewAnalyzer(AnalyzerConfig{})
	r := a.Analyze(transcriptWithWords(500, 300))

	assert.Equal(t, 2.5, r.ReadingTime200)
	assert.Equal(t, 2.0, r.ReadingTime250)
}

func TestAnalyze_ZeroDurationKeepsNeutralPace(t *testing.T) {
	a := NewAnalyzer(AnalyzerConfig{})
	tr := Assemble([]Segment{{Start: 0, End: 0, Text: "some words here"}}, "", false)
	r := a.Analyze(tr)

	assert.Zero(t, r.WordsPerMinute)
	assert.Equal(t, "moderate", r.PaceLabel)
}
