package analysis

import (
	"regexp"
	"strings"
)

var wordRe = regexp.MustCompile(`\b\w+\b`)

// CountWords counts word-boundary tokens in text. Empty text counts zero.
func CountWords(text string) int {
	if text == "" {
		return 0
	}
	return len(wordRe.FindAllString(text, -1))
}

// technicalTerms feed the complexity heuristic: each term found in a
// prompt is worth two points, capped at ten.
var technicalTerms = []string{
	"function", "algorithm", "implementation", "architecture", "design",
	"interface", "module", "class", "inheritance", "polymorphism",
	"database", "query", "optimization", "complexity", "asynchronous",
	"concurrency", "thread", "process", "memory", "cache",
	"framework", "library", "api", "integration", "deployment",
}

// ComplexityScore rates a prompt's sophistication on a 0-100 scale from
// four sub-scores, each capped at 10: character length, vocabulary
// diversity, technical-term hits, and question count. The weights are
// calibration constants, not values learned from data.
func ComplexityScore(text string) float64 {
	if text == "" {
		return 0
	}

	lengthScore := capped(float64(len(text)) / 100)

	lower := strings.ToLower(text)
	words := wordRe.FindAllString(lower, -1)
	var vocabScore float64
	if len(words) > 0 {
		unique := make(map[string]struct{}, len(words))
		for _, w := range words {
			unique[w] = struct{}{}
		}
		diversity := float64(len(unique)) / float64(len(words))
		vocabScore = capped(diversity * 10)
	}

	techHits := 0
	for _, term := range technicalTerms {
		if strings.Contains(lower, term) {
			techHits++
		}
	}
	techScore := capped(float64(techHits) * 2)

	questionScore := capped(float64(strings.Count(text, "?")) * 2)

	return (lengthScore + vocabScore + techScore + questionScore) * 2.5
}

func capped(v float64) float64 {
	if v > 10 {
		return 10
	}
	return v
}
