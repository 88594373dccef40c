// Package search holds in-memory filter, sort, page and ranking helpers plus
// the Typesense contact index.
package search

import (
	"cmp"
	"slices"
	"strings"
	"unicode"
)

const (
	DefaultLimit = 50
	MaxLimit     = 200
)

type Page[T any] struct {
	Items   []T  `json:"items"`
	Total   int  `json:"total"`
	Limit   int  `json:"limit"`
	Offset  int  `json:"offset"`
	HasMore bool `json:"has_more"`
}

func Filter[T any](items []T, keep func(T) bool) []T {
	out := make([]T, 0, len(items))
	for _, it := range items {
		if keep(it) {
			out = append(out, it)
		}
	}
	return out
}

// SortBy returns a stably sorted copy of items.
func SortBy[T any, K cmp.Ordered](items []T, key func(T) K, desc bool) []T {
	out := slices.Clone(items)
	slices.SortStableFunc(out, func(a, b T) int {
		c := cmp.Compare(key(a), key(b))
		if desc {
			return -c
		}
		return c
	})
	return out
}

// ClampLimit applies DefaultLimit to non-positive limits and caps at MaxLimit.
func ClampLimit(limit int) int {
	if limit <= 0 {
		return DefaultLimit
	}
	return min(limit, MaxLimit)
}

func Paginate[T any](items []T, limit, offset int) Page[T] {
	limit = ClampLimit(limit)
	offset = max(offset, 0)
	p := Page[T]{Total: len(items), Limit: limit, Offset: offset, Items: []T{}}
	if offset >= len(items) {
		return p
	}
	end := min(offset+limit, len(items))
	p.Items = items[offset:end]
	p.HasMore = end < len(items)
	return p
}

// MatchScore scores how well query matches the given fields, in [0, 1].
// Every query token must match some field token: exact matches score 1,
// prefix matches 0.75 and infix matches 0.25. Earlier fields break ties.
func MatchScore(query string, fields ...string) float64 {
	qTokens := tokenize(query)
	if len(qTokens) == 0 {
		return 0
	}

	var total float64
	for _, q := range qTokens {
		best := 0.0
		for i, f := range fields {
			weight := 1 - float64(i)*0.01
			for _, tok := range tokenize(f) {
				var s float64
				switch {
				case tok == q:
					s = 1
				case strings.HasPrefix(tok, q):
					s = 0.75
				case strings.Contains(tok, q):
					s = 0.25
				}
				best = max(best, s*weight)
			}
		}
		if best == 0 {
			return 0
		}
		total += best
	}
	return total / float64(len(qTokens))
}

// Rank keeps the items matching query, best first. An empty query returns items unchanged.
func Rank[T any](items []T, query string, fields func(T) []string) []T {
	if len(tokenize(query)) == 0 {
		return items
	}
	type scored struct {
		item  T
		score float64
	}
	matched := make([]scored, 0, len(items))
	for _, it := range items {
		if s := MatchScore(query, fields(it)...); s > 0 {
			matched = append(matched, scored{it, s})
		}
	}
	slices.SortStableFunc(matched, func(a, b scored) int {
		return cmp.Compare(b.score, a.score)
	})
	out := make([]T, len(matched))
	for i, m := range matched {
		out[i] = m.item
	}
	return out
}

func tokenize(s string) []string {
	return strings.FieldsFunc(strings.ToLower(s), func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r) && r != '@' && r != '.' && r != '+'
	})
}
