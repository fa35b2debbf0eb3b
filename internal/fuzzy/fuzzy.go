// Package fuzzy implements the approximate string matching used to resolve
// user-typed names against board entities. Scores are fixed contracts:
// callers decide "found" vs "ask again" on exact thresholds, so the
// constants here must not change.
package fuzzy

import (
	"regexp"
	"strings"
)

var (
	nonWord    = regexp.MustCompile(`[^\w\s]`)
	whitespace = regexp.MustCompile(`\s+`)
)

// Normalize canonicalizes text for comparison: lower-case, punctuation
// replaced by spaces, whitespace collapsed, trimmed. Idempotent.
func Normalize(text string) string {
	t := strings.ToLower(text)
	t = nonWord.ReplaceAllString(t, " ")
	t = whitespace.ReplaceAllString(t, " ")
	return strings.TrimSpace(t)
}

// Similarity scores two strings in [0,1]. Exact match after
// normalization is 1.0, containment either way is 0.8, otherwise the
// share of whitespace-delimited words common to both, over the word
// count of the longer string.
func Similarity(a, b string) float64 {
	s1 := Normalize(a)
	s2 := Normalize(b)

	if s1 == s2 {
		return 1
	}
	if strings.Contains(s1, s2) || strings.Contains(s2, s1) {
		return 0.8
	}

	words1 := strings.Split(s1, " ")
	words2 := strings.Split(s2, " ")
	in2 := make(map[string]bool, len(words2))
	for _, w := range words2 {
		in2[w] = true
	}
	common := 0
	for _, w := range words1 {
		if in2[w] {
			common++
		}
	}

	longer := len(words1)
	if len(words2) > longer {
		longer = len(words2)
	}
	return float64(common) / float64(longer)
}

// Match is a scored candidate returned by BestMatch.
type Match[T any] struct {
	Item  T
	Score float64
}

// BestMatch returns the best-scoring candidate for query, or nil when no
// candidate clears the floor. An exact normalized match short-circuits at
// 1.0; containment either way scores a fixed 0.9; anything else falls back
// to word-overlap Similarity and is kept only above 0.3. Ties keep the
// first candidate encountered.
func BestMatch[T any](query string, items []T, key func(T) string) *Match[T] {
	nq := Normalize(query)

	var best *Match[T]
	bestScore := 0.0

	for _, item := range items {
		name := Normalize(key(item))

		if name == nq {
			return &Match[T]{Item: item, Score: 1}
		}

		if strings.Contains(name, nq) || strings.Contains(nq, name) {
			if 0.9 > bestScore {
				bestScore = 0.9
				best = &Match[T]{Item: item, Score: 0.9}
			}
			continue
		}

		score := Similarity(name, nq)
		if score > bestScore && score > 0.3 {
			bestScore = score
			best = &Match[T]{Item: item, Score: score}
		}
	}

	return best
}
