package questionbank

import (
	"fmt"
	"sort"
	"strings"
)

// ConfigError reports every structural problem found in a question set.
type ConfigError struct {
	Problems []string
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("question bank validation failed:\n  %s", strings.Join(e.Problems, "\n  "))
}

// validateQuestions performs all structural checks on the given question set.
// Returns a *ConfigError describing all problems found, or nil if valid.
func validateQuestions(questions []Question) error {
	var errs []string

	if len(questions) == 0 {
		errs = append(errs, "bank has no questions")
	}

	ids := make(map[string]bool, len(questions))
	orders := map[Kind]map[int]string{
		KindCore:     {},
		KindFollowup: {},
	}
	coreCount := 0

	for _, q := range questions {
		if q.ID == "" {
			errs = append(errs, "question with empty ID")
			continue
		}
		if ids[q.ID] {
			errs = append(errs, fmt.Sprintf("duplicate question ID: %q", q.ID))
		}
		ids[q.ID] = true

		switch q.Kind {
		case KindCore:
			coreCount++
			if len(q.Condition) > 0 {
				errs = append(errs, fmt.Sprintf("core question %q must not have a condition", q.ID))
			}
		case KindFollowup:
			errs = append(errs, validateCondition(q)...)
		default:
			errs = append(errs, fmt.Sprintf("question %q has unknown kind %q", q.ID, q.Kind))
			continue
		}

		if prev, dup := orders[q.Kind][q.Order]; dup {
			errs = append(errs, fmt.Sprintf("%s questions %q and %q share order %d", q.Kind, prev, q.ID, q.Order))
		} else {
			orders[q.Kind][q.Order] = q.ID
		}

		errs = append(errs, validateOptions(q)...)
	}

	if len(questions) > 0 && coreCount == 0 {
		errs = append(errs, "bank has no core questions")
	}

	if len(errs) > 0 {
		return &ConfigError{Problems: errs}
	}
	return nil
}

func validateOptions(q Question) []string {
	var errs []string
	if len(q.Options) == 0 {
		return []string{fmt.Sprintf("question %q has no options", q.ID)}
	}
	seen := make(map[string]bool, len(q.Options))
	for _, o := range q.Options {
		if o.ID == "" {
			errs = append(errs, fmt.Sprintf("question %q has an option with empty ID", q.ID))
			continue
		}
		if seen[o.ID] {
			errs = append(errs, fmt.Sprintf("question %q has duplicate option ID %q", q.ID, o.ID))
		}
		seen[o.ID] = true
		for dim := range o.Weights {
			if dim == "" {
				errs = append(errs, fmt.Sprintf("question %q option %q weights an empty dimension", q.ID, o.ID))
			}
			if dim == ScoreGap {
				errs = append(errs, fmt.Sprintf("question %q option %q weights the derived dimension %q", q.ID, o.ID, ScoreGap))
			}
		}
	}
	return errs
}

func validateCondition(q Question) []string {
	if len(q.Condition) == 0 {
		return []string{fmt.Sprintf("followup question %q has an empty condition", q.ID)}
	}

	// Sorted for stable error output.
	dims := make([]string, 0, len(q.Condition))
	for dim := range q.Condition {
		dims = append(dims, dim)
	}
	sort.Strings(dims)

	var errs []string
	for _, dim := range dims {
		c := q.Condition[dim]
		prefix := fmt.Sprintf("followup question %q condition on %q", q.ID, dim)
		switch {
		case dim == "":
			errs = append(errs, fmt.Sprintf("followup question %q has a condition on an empty dimension", q.ID))
		case c.Min == nil && c.Max == nil:
			errs = append(errs, prefix+": needs min or max")
		case c.Min != nil && c.Max != nil && *c.Min > *c.Max:
			errs = append(errs, fmt.Sprintf("%s: min %d > max %d", prefix, *c.Min, *c.Max))
		}
	}
	return errs
}
