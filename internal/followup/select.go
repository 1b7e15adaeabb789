// Package followup decides which conditional questions unlock given the
// current trait scores.
package followup

import (
	"github.com/abhisek/learntype/internal/questionbank"
	"github.com/abhisek/learntype/internal/scoring"
)

// Select returns, in catalog order, every question whose condition holds
// against scores. The catalog is expected to be sorted by order index, as
// returned by Bank.FollowupQuestions.
func Select(scores scoring.TraitScores, catalog []questionbank.Question) []questionbank.Question {
	var selected []questionbank.Question
	for _, q := range catalog {
		if Satisfied(q.Condition, scores) {
			selected = append(selected, q)
		}
	}
	return selected
}

// Satisfied reports whether every constraint in cond holds. An empty
// condition is never satisfied; banks reject it at build time.
func Satisfied(cond questionbank.Condition, scores scoring.TraitScores) bool {
	if len(cond) == 0 {
		return false
	}
	for dim, c := range cond {
		if !holds(dim, c, scores) {
			return false
		}
	}
	return true
}

func holds(dim string, c questionbank.Constraint, scores scoring.TraitScores) bool {
	if dim != questionbank.ScoreGap {
		return c.Holds(scores.Get(dim))
	}

	gap, ok := scores.ScoreGap()
	if ok {
		return c.Holds(gap)
	}
	// Fewer than two nonzero dimensions: no max can hold, and a min holds
	// only if it asks for nothing.
	if c.Max != nil {
		return false
	}
	return c.Min == nil || *c.Min <= 0
}
