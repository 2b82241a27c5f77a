// Package fuzzy ranks strings against a loosely typed query. The client uses
// it to suggest commands for a mistyped name.
package fuzzy

import (
	"sort"
	"strings"
)

// DefaultMinScore is the lowest score Rank keeps.
const DefaultMinScore = 0.3

// Result is one ranked candidate.
type Result struct {
	Text  string
	Score float64
	// Matches holds the byte offsets of matched characters in Text.
	Matches []int
}

// Rank scores every candidate against query and returns those scoring at
// least minScore, best first. Ties keep the candidates' order.
func Rank(query string, candidates []string, minScore float64) []Result {
	results := make([]Result, 0, len(candidates))
	for _, c := range candidates {
		score, matches := Match(query, c)
		if score >= minScore {
			results = append(results, Result{Text: c, Score: score, Matches: matches})
		}
	}
	sort.SliceStable(results, func(i, j int) bool {
		return results[i].Score > results[j].Score
	})
	return results
}

// Suggest returns at most max candidates resembling query, best first.
func Suggest(query string, candidates []string, max int) []string {
	results := Rank(query, candidates, DefaultMinScore)
	if len(results) > max {
		results = results[:max]
	}
	out := make([]string, len(results))
	for i, r := range results {
		out[i] = r.Text
	}
	return out
}

// Match scores how well pattern matches text, between 0 and 1. Exact matches
// score 1, prefixes 0.9 and substrings 0.8. Otherwise every pattern
// character must appear in text in order, and the score falls with the gaps
// between them.
func Match(pattern, text string) (float64, []int) {
	if pattern == "" {
		return 1.0, []int{}
	}
	if pattern == text {
		return 1.0, run(0, len(pattern))
	}

	patternLower := strings.ToLower(pattern)
	textLower := strings.ToLower(text)

	if strings.HasPrefix(textLower, patternLower) {
		return 0.9, run(0, len(pattern))
	}
	if index := strings.Index(textLower, patternLower); index >= 0 {
		return 0.8, run(index, len(pattern))
	}

	matches := make([]int, 0, len(pattern))
	var i, j int
	for i < len(patternLower) && j < len(textLower) {
		if patternLower[i] == textLower[j] {
			matches = append(matches, j)
			i++
		}
		j++
	}
	if i < len(patternLower) {
		return 0.0, []int{}
	}

	matchRatio := float64(len(pattern)) / float64(len(text))

	gapPenalty := 0.0
	for k := 1; k < len(matches); k++ {
		if gap := matches[k] - matches[k-1] - 1; gap > 0 {
			gapPenalty += float64(gap) / float64(len(text))
		}
	}

	positionBonus := 0.1 * (1.0 - float64(matches[0])/float64(len(text)))

	// Scaled down so fuzzy hits rank below prefix and substring hits.
	score := (matchRatio - gapPenalty + positionBonus) * 0.7
	if score < 0 {
		score = 0
	} else if score > 1 {
		score = 1
	}
	return score, matches
}

func run(start, n int) []int {
	out := make([]int, n)
	for i := range out {
		out[i] = start + i
	}
	return out
}
