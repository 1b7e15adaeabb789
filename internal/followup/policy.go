package followup

import (
	"fmt"
	"strings"

	"github.com/abhisek/learntype/internal/questionbank"
	"github.com/abhisek/learntype/internal/scoring"
)

// Mode controls how many follow-ups a session asks.
type Mode string

const (
	// ModeProgressive asks, one at a time, the first unanswered follow-up
	// whose condition holds against the current scores, until none remain.
	ModeProgressive Mode = "progressive"
	// ModeFirstMatch asks at most one follow-up.
	ModeFirstMatch Mode = "first-match"
)

// ParseMode parses a mode name. The empty string yields ModeProgressive.
func ParseMode(s string) (Mode, error) {
	switch Mode(strings.ToLower(strings.TrimSpace(s))) {
	case "", ModeProgressive:
		return ModeProgressive, nil
	case ModeFirstMatch, "first_match", "first":
		return ModeFirstMatch, nil
	default:
		return "", fmt.Errorf("unknown follow-up mode %q (want %q or %q)", s, ModeProgressive, ModeFirstMatch)
	}
}

// Policy is the follow-up cardinality policy. The zero value is
// progressive and uncapped.
type Policy struct {
	Mode Mode
	// MaxFollowups caps follow-ups per session. 0 means no cap.
	MaxFollowups int
}

// DefaultPolicy returns the progressive, uncapped policy.
func DefaultPolicy() Policy {
	return Policy{Mode: ModeProgressive}
}

// Limit returns the effective cap on follow-ups, or 0 when uncapped.
func (p Policy) Limit() int {
	limit := p.MaxFollowups
	if p.Mode == ModeFirstMatch && (limit == 0 || limit > 1) {
		limit = 1
	}
	return limit
}

// Next returns the follow-up to ask given the current scores, the catalog,
// and the set of follow-ups already asked. ok is false when the session
// should stop asking follow-ups.
func (p Policy) Next(scores scoring.TraitScores, catalog []questionbank.Question, asked map[string]bool) (questionbank.Question, bool) {
	if limit := p.Limit(); limit > 0 && countAsked(catalog, asked) >= limit {
		return questionbank.Question{}, false
	}
	for _, q := range Select(scores, catalog) {
		if !asked[q.ID] {
			return q, true
		}
	}
	return questionbank.Question{}, false
}

// Remaining returns how many more follow-ups would be eligible right now,
// respecting the cap. It is an estimate: answering one may unlock others.
func (p Policy) Remaining(scores scoring.TraitScores, catalog []questionbank.Question, asked map[string]bool) int {
	n := 0
	for _, q := range Select(scores, catalog) {
		if !asked[q.ID] {
			n++
		}
	}
	if limit := p.Limit(); limit > 0 {
		if left := limit - countAsked(catalog, asked); n > left {
			n = max(left, 0)
		}
	}
	return n
}

func countAsked(catalog []questionbank.Question, asked map[string]bool) int {
	n := 0
	for _, q := range catalog {
		if asked[q.ID] {
			n++
		}
	}
	return n
}
