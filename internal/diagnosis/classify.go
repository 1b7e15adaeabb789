// Package diagnosis turns a trait-score map into a learning-type result.
package diagnosis

import (
	"sort"

	"github.com/abhisek/learntype/internal/scoring"
)

// InsufficientDataError is returned when classification is attempted
// before any answer has been applied.
type InsufficientDataError struct{}

func (e *InsufficientDataError) Error() string {
	return "insufficient data to classify: no answers have been scored"
}

// Candidate is one type's raw score.
type Candidate struct {
	Type TypeID `json:"type"`
	// Tenths is the raw score times ten, exact.
	Tenths int `json:"tenths"`
}

// Score returns the raw score as a float.
func (c Candidate) Score() float64 {
	return float64(c.Tenths) / 10
}

// Classification is the output of Classify.
type Classification struct {
	Primary    TypeID      `json:"primary"`
	Secondary  TypeID      `json:"secondary,omitempty"` // empty when absent
	Confidence int         `json:"confidence"`          // 0–100
	Ranking    []Candidate `json:"ranking"`             // descending, ties by id
}

// HasSecondary reports whether a secondary type was selected.
func (c *Classification) HasSecondary() bool {
	return c.Secondary != ""
}

// Classify ranks the default catalog's types against scores.
func Classify(scores scoring.TraitScores) (*Classification, error) {
	return defaultCatalog.Classify(scores)
}

// Classify computes each type's weighted sum over scores and picks the
// primary and secondary types.
//
// Ranking is by raw score descending; equal scores are broken by the
// lexicographically smaller type id. The secondary type is the runner-up
// and is present only if its raw score is strictly positive. Confidence is
// round(100 * top / sum of positive raw scores), or 0 when no raw score is
// positive, clamped to [0, 100].
func (c *Catalog) Classify(scores scoring.TraitScores) (*Classification, error) {
	if len(scores) == 0 {
		return nil, &InsufficientDataError{}
	}

	ranking := make([]Candidate, len(c.types))
	for i, t := range c.types {
		ranking[i] = Candidate{Type: t.ID, Tenths: rawTenths(t.Formula, scores)}
	}
	sort.SliceStable(ranking, func(i, j int) bool {
		if ranking[i].Tenths != ranking[j].Tenths {
			return ranking[i].Tenths > ranking[j].Tenths
		}
		return ranking[i].Type < ranking[j].Type
	})

	result := &Classification{
		Primary:    ranking[0].Type,
		Confidence: confidence(ranking),
		Ranking:    ranking,
	}
	if len(ranking) > 1 && ranking[1].Tenths > 0 {
		result.Secondary = ranking[1].Type
	}
	return result, nil
}

func rawTenths(f Formula, scores scoring.TraitScores) int {
	sum := 0
	for dim, mult := range f {
		sum += mult * scores.Get(dim)
	}
	return sum
}

// confidence rounds half up in integer arithmetic.
func confidence(ranking []Candidate) int {
	positive := 0
	for _, c := range ranking {
		if c.Tenths > 0 {
			positive += c.Tenths
		}
	}
	top := ranking[0].Tenths
	if positive == 0 || top <= 0 {
		return 0
	}
	pct := (200*top + positive) / (2 * positive)
	return min(max(pct, 0), 100)
}
