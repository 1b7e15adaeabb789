// Package scoring folds quiz answers into a sparse trait-score map.
package scoring

import (
	"maps"
	"sort"
)

// TraitScores maps a trait dimension to its accumulated signed score.
// Absent dimensions read as 0.
type TraitScores map[string]int

// Get returns the score for dim, or 0 if absent.
func (s TraitScores) Get(dim string) int {
	return s[dim]
}

// Clone returns an independent copy. Cloning nil yields an empty map.
func (s TraitScores) Clone() TraitScores {
	if s == nil {
		return TraitScores{}
	}
	return maps.Clone(s)
}

// Dimensions returns the dimensions present in the map, sorted by name.
func (s TraitScores) Dimensions() []string {
	dims := make([]string, 0, len(s))
	for dim := range s {
		dims = append(dims, dim)
	}
	sort.Strings(dims)
	return dims
}

// Entry is one (dimension, score) pair.
type Entry struct {
	Dimension string `json:"dimension"`
	Score     int    `json:"score"`
}

// Ranked returns all entries ordered by score descending, ties by name.
func (s TraitScores) Ranked() []Entry {
	entries := make([]Entry, 0, len(s))
	for dim, v := range s {
		entries = append(entries, Entry{Dimension: dim, Score: v})
	}
	sort.Slice(entries, func(i, j int) bool {
		if entries[i].Score != entries[j].Score {
			return entries[i].Score > entries[j].Score
		}
		return entries[i].Dimension < entries[j].Dimension
	})
	return entries
}

// Top returns the n highest entries (fewer if the map is smaller).
func (s TraitScores) Top(n int) []Entry {
	ranked := s.Ranked()
	if n < len(ranked) {
		return ranked[:n]
	}
	return ranked
}

// NonZero returns the number of dimensions with a nonzero score.
func (s TraitScores) NonZero() int {
	n := 0
	for _, v := range s {
		if v != 0 {
			n++
		}
	}
	return n
}

// ScoreGap returns the absolute difference between the two highest values
// among nonzero dimensions. ok is false when fewer than two dimensions are
// nonzero.
func (s TraitScores) ScoreGap() (gap int, ok bool) {
	first, second := 0, 0
	seen := 0
	for _, v := range s {
		if v == 0 {
			continue
		}
		switch {
		case seen == 0:
			first = v
		case seen == 1:
			if v > first {
				first, second = v, first
			} else {
				second = v
			}
		case v > first:
			first, second = v, first
		case v > second:
			second = v
		}
		seen++
	}
	if seen < 2 {
		return 0, false
	}
	gap = first - second
	if gap < 0 {
		gap = -gap
	}
	return gap, true
}
