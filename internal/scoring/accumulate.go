package scoring

import (
	"fmt"
	"maps"
	"strings"
	"time"

	"github.com/abhisek/learntype/internal/questionbank"
)

// InvalidOptionError is returned when an answer names an option that does
// not exist on the question.
type InvalidOptionError struct {
	QuestionID string
	OptionID   string
	Valid      []string
}

func (e *InvalidOptionError) Error() string {
	return fmt.Sprintf("invalid option %q for question %q (valid: %s)",
		e.OptionID, e.QuestionID, strings.Join(e.Valid, ", "))
}

// UnknownQuestionError is returned when replaying a record whose question
// is not in the bank.
type UnknownQuestionError struct {
	QuestionID string
}

func (e *UnknownQuestionError) Error() string {
	return fmt.Sprintf("unknown question %q", e.QuestionID)
}

// ApplyAnswer returns a new map with the chosen option's weights added to
// current. current is never modified, including on error.
func ApplyAnswer(current TraitScores, q questionbank.Question, optionID string) (TraitScores, error) {
	opt, ok := q.Option(optionID)
	if !ok {
		return nil, &InvalidOptionError{QuestionID: q.ID, OptionID: optionID, Valid: q.OptionIDs()}
	}
	return Add(current, opt.Weights), nil
}

// Add returns current plus contributions as a new map.
func Add(current TraitScores, contributions map[string]int) TraitScores {
	next := current.Clone()
	for dim, w := range contributions {
		next[dim] += w
	}
	return next
}

// AnswerRecord is one submitted answer.
type AnswerRecord struct {
	QuestionID    string         `json:"question_id"`
	OptionID      string         `json:"option_id"`
	Contributions map[string]int `json:"contributions,omitempty"`
	Seq           int            `json:"seq"`
	ResponseTime  time.Duration  `json:"response_time"`
}

// Transcript is the ordered, append-only answer history of a session.
type Transcript []AnswerRecord

// Record answers q with optionID and returns the record to append. Seq is
// the next position in t.
func (t Transcript) Record(q questionbank.Question, optionID string, responseTime time.Duration) (AnswerRecord, error) {
	opt, ok := q.Option(optionID)
	if !ok {
		return AnswerRecord{}, &InvalidOptionError{QuestionID: q.ID, OptionID: optionID, Valid: q.OptionIDs()}
	}
	return AnswerRecord{
		QuestionID:    q.ID,
		OptionID:      optionID,
		Contributions: maps.Clone(opt.Weights),
		Seq:           len(t) + 1,
		ResponseTime:  responseTime,
	}, nil
}

// Answered reports whether questionID already has a record.
func (t Transcript) Answered(questionID string) bool {
	for _, r := range t {
		if r.QuestionID == questionID {
			return true
		}
	}
	return false
}

// AnsweredSet returns the set of answered question ids.
func (t Transcript) AnsweredSet() map[string]bool {
	set := make(map[string]bool, len(t))
	for _, r := range t {
		set[r.QuestionID] = true
	}
	return set
}

// TotalResponseTime sums response times over all records.
func (t Transcript) TotalResponseTime() time.Duration {
	var total time.Duration
	for _, r := range t {
		total += r.ResponseTime
	}
	return total
}

// Fold sums the stored contributions of records from an empty map.
func Fold(records []AnswerRecord) TraitScores {
	scores := TraitScores{}
	for _, r := range records {
		for dim, w := range r.Contributions {
			scores[dim] += w
		}
	}
	return scores
}

// Replay rebuilds the trait-score map by re-applying every record against
// bank, in order, from an empty map.
func Replay(bank *questionbank.Bank, records []AnswerRecord) (TraitScores, error) {
	scores := TraitScores{}
	for _, r := range records {
		q, ok := bank.Question(r.QuestionID)
		if !ok {
			return nil, &UnknownQuestionError{QuestionID: r.QuestionID}
		}
		next, err := ApplyAnswer(scores, q, r.OptionID)
		if err != nil {
			return nil, fmt.Errorf("replay record %d: %w", r.Seq, err)
		}
		scores = next
	}
	return scores, nil
}
