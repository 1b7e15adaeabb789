package questionbank

import (
	"fmt"
	"maps"
	"sort"
)

// Bank is an immutable question catalog. Build it once at startup with New
// (or Default/LoadFile) and pass it explicitly to whatever needs it.
type Bank struct {
	version   string
	core      []Question
	followups []Question
	byID      map[string]Question
}

// New validates questions and builds a Bank. All configuration problems are
// reported together in a *ConfigError.
func New(version string, questions []Question) (*Bank, error) {
	if err := validateQuestions(questions); err != nil {
		return nil, err
	}

	b := &Bank{
		version: version,
		byID:    make(map[string]Question, len(questions)),
	}
	for _, q := range questions {
		q = q.clone()
		b.byID[q.ID] = q
		switch q.Kind {
		case KindCore:
			b.core = append(b.core, q)
		case KindFollowup:
			b.followups = append(b.followups, q)
		}
	}
	sortByOrder(b.core)
	sortByOrder(b.followups)
	return b, nil
}

// MustNew is like New but panics on invalid data.
func MustNew(version string, questions []Question) *Bank {
	b, err := New(version, questions)
	if err != nil {
		panic(fmt.Sprintf("questionbank: %v", err))
	}
	return b
}

func sortByOrder(qs []Question) {
	sort.SliceStable(qs, func(i, j int) bool {
		return qs[i].Order < qs[j].Order
	})
}

// Version returns the bank's declared version (empty for unversioned banks).
func (b *Bank) Version() string {
	return b.version
}

// CoreQuestions returns the always-asked questions sorted by order index.
func (b *Bank) CoreQuestions() []Question {
	return cloneAll(b.core)
}

// FollowupQuestions returns the conditional questions sorted by order index.
func (b *Bank) FollowupQuestions() []Question {
	return cloneAll(b.followups)
}

// CoreCount returns the number of core questions.
func (b *Bank) CoreCount() int {
	return len(b.core)
}

// Question returns the question with the given id.
func (b *Bank) Question(id string) (Question, bool) {
	q, ok := b.byID[id]
	if !ok {
		return Question{}, false
	}
	return q.clone(), true
}

// Option returns the option optionID on question questionID.
func (b *Bank) Option(questionID, optionID string) (Option, bool) {
	q, ok := b.byID[questionID]
	if !ok {
		return Option{}, false
	}
	o, ok := q.Option(optionID)
	if !ok {
		return Option{}, false
	}
	o.Weights = maps.Clone(o.Weights)
	return o, true
}

// IsCore reports whether id names a core question.
func (b *Bank) IsCore(id string) bool {
	q, ok := b.byID[id]
	return ok && q.Kind == KindCore
}

// Dimensions returns every trait dimension referenced by an option weight,
// sorted by name.
func (b *Bank) Dimensions() []string {
	seen := make(map[string]bool)
	for _, q := range b.byID {
		for _, o := range q.Options {
			for dim := range o.Weights {
				seen[dim] = true
			}
		}
	}
	dims := make([]string, 0, len(seen))
	for dim := range seen {
		dims = append(dims, dim)
	}
	sort.Strings(dims)
	return dims
}

func cloneAll(qs []Question) []Question {
	out := make([]Question, len(qs))
	for i, q := range qs {
		out[i] = q.clone()
	}
	return out
}
