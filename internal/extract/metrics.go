package extract

import (
	"math"
	"regexp"
	"strings"
	"unicode/utf8"
)

// Metrics are coarse complexity measurements over normalized text.
type Metrics struct {
	WordCount         int     `json:"wordCount"`
	SentenceCount     int     `json:"sentenceCount"`
	ParagraphCount    int     `json:"paragraphCount"`
	AvgWordLength     float64 `json:"avgWordLength"`
	AvgSentenceLength float64 `json:"avgSentenceLength"`
	ComplexityScore   int     `json:"complexityScore"`
}

var sentenceBoundary = regexp.MustCompile(`[.!?]+`)

// Analyze computes complexity metrics for the supplied text. Empty input
// yields nil, not a zeroed result; callers treat "no data" and "all zero"
// differently at the boundary.
func Analyze(text string) *Metrics {
	if text == "" {
		return nil
	}

	words := strings.Fields(text)
	sentences := nonBlank(sentenceBoundary.Split(text, -1))
	paragraphs := nonBlank(strings.Split(text, "\n\n"))

	var totalWordLen int
	for _, word := range words {
		totalWordLen += utf8.RuneCountInString(word)
	}

	var avgWordLength float64
	if len(words) > 0 {
		avgWordLength = float64(totalWordLen) / float64(len(words))
	}
	var avgSentenceLength float64
	if len(sentences) > 0 {
		avgSentenceLength = float64(len(words)) / float64(len(sentences))
	}

	score := int(avgWordLength*10 + avgSentenceLength)
	if score > 100 {
		score = 100
	}
	if score < 0 {
		score = 0
	}

	return &Metrics{
		WordCount:         len(words),
		SentenceCount:     len(sentences),
		ParagraphCount:    len(paragraphs),
		AvgWordLength:     round2(avgWordLength),
		AvgSentenceLength: round2(avgSentenceLength),
		ComplexityScore:   score,
	}
}

func nonBlank(segments []string) []string {
	out := segments[:0]
	for _, segment := range segments {
		if strings.TrimSpace(segment) != "" {
			out = append(out, segment)
		}
	}
	return out
}

func round2(value float64) float64 {
	return math.Round(value*100) / 100
}
