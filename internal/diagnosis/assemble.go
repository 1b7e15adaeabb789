package diagnosis

import (
	"errors"
	"fmt"
	"time"

	"github.com/abhisek/learntype/internal/scoring"
)

// ErrNegativeElapsed is returned when a result is assembled with a
// negative elapsed time.
var ErrNegativeElapsed = errors.New("elapsed time must not be negative")

// ErrMissingClassification is returned when a result is assembled without
// a classification.
var ErrMissingClassification = errors.New("classification is required")

// IncompleteSessionError is returned when a result is assembled before
// every core question has been answered.
type IncompleteSessionError struct {
	Answered int
	Required int
}

func (e *IncompleteSessionError) Error() string {
	return fmt.Sprintf("session incomplete: %d of %d core questions answered", e.Answered, e.Required)
}

// Result is a completed diagnosis. It is built once by Assemble and is
// not modified afterwards; it owns copies of everything it holds.
type Result struct {
	Primary       TypeID              `json:"primary"`
	PrimaryName   string              `json:"primary_name"`
	Description   string              `json:"description"`
	Secondary     TypeID              `json:"secondary,omitempty"`
	SecondaryName string              `json:"secondary_name,omitempty"`
	Confidence    int                 `json:"confidence"`
	TraitScores   scoring.TraitScores `json:"trait_scores"`
	TypeScores    []Candidate         `json:"type_scores"`
	AnsweredCount int                 `json:"answered_count"`
	Elapsed       time.Duration       `json:"elapsed"`
	CompletedAt   time.Time           `json:"completed_at"`
}

// HasSecondary reports whether the result carries a secondary type.
func (r *Result) HasSecondary() bool {
	return r.Secondary != ""
}

// ElapsedSeconds returns the elapsed response time in seconds.
func (r *Result) ElapsedSeconds() float64 {
	return r.Elapsed.Seconds()
}

// AssembleInput holds everything Assemble packages into a Result.
type AssembleInput struct {
	Classification *Classification
	Scores         scoring.TraitScores
	AnsweredCount  int
	Elapsed        time.Duration
	Now            time.Time
}

// Assembler builds results for a bank with CoreCount core questions.
type Assembler struct {
	CoreCount int
	Catalog   *Catalog // nil means DefaultCatalog
}

// Assemble validates the bookkeeping and packages a Result.
func (a Assembler) Assemble(in AssembleInput) (*Result, error) {
	if in.AnsweredCount < a.CoreCount {
		return nil, &IncompleteSessionError{Answered: in.AnsweredCount, Required: a.CoreCount}
	}
	if in.Elapsed < 0 {
		return nil, ErrNegativeElapsed
	}
	if in.Classification == nil {
		return nil, ErrMissingClassification
	}

	catalog := a.Catalog
	if catalog == nil {
		catalog = defaultCatalog
	}

	cls := in.Classification
	r := &Result{
		Primary:       cls.Primary,
		PrimaryName:   catalog.DisplayName(cls.Primary),
		Secondary:     cls.Secondary,
		Confidence:    cls.Confidence,
		TraitScores:   in.Scores.Clone(),
		TypeScores:    append([]Candidate(nil), cls.Ranking...),
		AnsweredCount: in.AnsweredCount,
		Elapsed:       in.Elapsed,
		CompletedAt:   in.Now.UTC(),
	}
	if t, ok := catalog.Type(cls.Primary); ok {
		r.Description = t.Description
	}
	if cls.HasSecondary() {
		r.SecondaryName = catalog.DisplayName(cls.Secondary)
	}
	return r, nil
}
