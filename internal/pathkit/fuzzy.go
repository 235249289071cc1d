package pathkit

import (
	"sort"
	"unicode"
)

// Score bonuses applied by FuzzyMatch on top of one point per matched rune.
const (
	consecutiveBonus = 2
	boundaryBonus    = 3
)

// MatchResult is the outcome of FuzzyMatch. Score is only meaningful when
// Match is true.
type MatchResult struct {
	Match bool `json:"match"`
	Score int  `json:"score"`
}

// FuzzyMatch reports whether every rune of query appears in target in the
// same order, ignoring case, and scores the match for ranking:
//
//   - +1 per matched rune
//   - +2 when the match directly follows the previous match
//   - +3 when the match is at index 0 or right after a "/"
//
// An empty query always matches with score 0.
func FuzzyMatch(query, target string) MatchResult {
	q := []rune(query)
	if len(q) == 0 {
		return MatchResult{Match: true}
	}
	t := []rune(target)
	if len(q) > len(t) {
		return MatchResult{}
	}

	qi, score, last := 0, 0, -1
	for ti := 0; ti < len(t) && qi < len(q); ti++ {
		if !foldEqual(t[ti], q[qi]) {
			continue
		}
		score++
		if last >= 0 && ti == last+1 {
			score += consecutiveBonus
		}
		if ti == 0 || t[ti-1] == '/' {
			score += boundaryBonus
		}
		last = ti
		qi++
	}

	if qi < len(q) {
		return MatchResult{}
	}
	return MatchResult{Match: true, Score: score}
}

func foldEqual(a, b rune) bool {
	return a == b || unicode.ToLower(a) == unicode.ToLower(b)
}

// Ranked pairs an item with its FuzzyMatch score.
type Ranked[T any] struct {
	Item  T
	Score int
}

// Rank keeps the items whose key fuzzy-matches query and orders them by
// descending score. Equal scores keep their input order. An empty query
// returns every item in input order with score 0.
func Rank[T any](query string, items []T, key func(T) string) []Ranked[T] {
	ranked := make([]Ranked[T], 0, len(items))
	for _, item := range items {
		res := FuzzyMatch(query, key(item))
		if res.Match {
			ranked = append(ranked, Ranked[T]{Item: item, Score: res.Score})
		}
	}
	if query == "" {
		return ranked
	}
	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].Score > ranked[j].Score
	})
	return ranked
}
