package questionbank

import "maps"

// Kind distinguishes always-asked questions from conditionally unlocked ones.
type Kind string

const (
	KindCore     Kind = "core"
	KindFollowup Kind = "followup"
)

// ScoreGap is the synthetic condition dimension: the absolute difference
// between the two highest trait scores at evaluation time.
const ScoreGap = "scoreGap"

// Weights maps a trait dimension to a signed contribution.
// Dimensions not listed contribute 0.
type Weights map[string]int

// Get returns the weight for dim, or 0 if absent.
func (w Weights) Get(dim string) int {
	return w[dim]
}

// IsNeutral reports whether the option contributes nothing to any dimension.
func (w Weights) IsNeutral() bool {
	for _, v := range w {
		if v != 0 {
			return false
		}
	}
	return true
}

// Option is a single answer choice on a question.
type Option struct {
	ID      string
	Text    string
	Weights Weights
}

// Constraint is an inclusive threshold on one dimension. A nil bound is open.
type Constraint struct {
	Min *int
	Max *int
}

// AtLeast returns a constraint with only a lower bound.
func AtLeast(n int) Constraint {
	return Constraint{Min: &n}
}

// AtMost returns a constraint with only an upper bound.
func AtMost(n int) Constraint {
	return Constraint{Max: &n}
}

// Between returns a constraint bounded on both sides.
func Between(lo, hi int) Constraint {
	return Constraint{Min: &lo, Max: &hi}
}

// Holds reports whether v satisfies both bounds.
func (c Constraint) Holds(v int) bool {
	if c.Min != nil && v < *c.Min {
		return false
	}
	if c.Max != nil && v > *c.Max {
		return false
	}
	return true
}

// Condition is the unlock rule of a follow-up question. Every listed
// constraint must hold.
type Condition map[string]Constraint

// Question is an immutable quiz question.
type Question struct {
	ID        string
	Text      string
	Kind      Kind
	Order     int
	Options   []Option
	Condition Condition // followup only
}

// Option returns the option with the given id.
func (q Question) Option(id string) (Option, bool) {
	for _, o := range q.Options {
		if o.ID == id {
			return o, true
		}
	}
	return Option{}, false
}

// OptionIDs returns the option ids in display order.
func (q Question) OptionIDs() []string {
	ids := make([]string, len(q.Options))
	for i, o := range q.Options {
		ids[i] = o.ID
	}
	return ids
}

// clone returns a deep copy so callers can never alias bank data.
func (q Question) clone() Question {
	out := q
	out.Options = make([]Option, len(q.Options))
	for i, o := range q.Options {
		o.Weights = maps.Clone(o.Weights)
		out.Options[i] = o
	}
	if q.Condition != nil {
		out.Condition = make(Condition, len(q.Condition))
		for dim, c := range q.Condition {
			out.Condition[dim] = cloneConstraint(c)
		}
	}
	return out
}

func cloneConstraint(c Constraint) Constraint {
	var out Constraint
	if c.Min != nil {
		v := *c.Min
		out.Min = &v
	}
	if c.Max != nil {
		v := *c.Max
		out.Max = &v
	}
	return out
}
