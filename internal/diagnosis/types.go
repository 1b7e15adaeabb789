package diagnosis

import (
	"fmt"
	"maps"
	"slices"
)

// TypeID identifies one of the six learning types.
type TypeID string

const (
	TypeAchiever   TypeID = "achiever"
	TypeChallenger TypeID = "challenger"
	TypeExplorer   TypeID = "explorer"
	TypePartner    TypeID = "partner"
	TypePragmatist TypeID = "pragmatist"
	TypeStrategist TypeID = "strategist"
)

// AllTypeIDs lists every type id in lexicographic order.
var AllTypeIDs = []TypeID{
	TypeAchiever,
	TypeChallenger,
	TypeExplorer,
	TypePartner,
	TypePragmatist,
	TypeStrategist,
}

// ParseTypeID validates s as a type id.
func ParseTypeID(s string) (TypeID, error) {
	for _, id := range AllTypeIDs {
		if string(id) == s {
			return id, nil
		}
	}
	return "", fmt.Errorf("unknown learning type %q", s)
}

// MotivationApproach names how a type is best motivated.
type MotivationApproach string

const (
	MotivationIntrinsic    MotivationApproach = "intrinsic"
	MotivationGoal         MotivationApproach = "goal-oriented"
	MotivationRecognition  MotivationApproach = "recognition-based"
	MotivationCompetition  MotivationApproach = "competition-based"
	MotivationRelationship MotivationApproach = "relationship-based"
	MotivationResult       MotivationApproach = "result-oriented"
)

// LearningStyle names the learning mode a type prefers.
type LearningStyle string

const (
	StyleDiscovery     LearningStyle = "discovery-based"
	StyleStructured    LearningStyle = "structured"
	StyleCollaborative LearningStyle = "collaborative"
	StyleChallenge     LearningStyle = "challenge-driven"
	StyleSupportive    LearningStyle = "supportive"
	StylePractical     LearningStyle = "practical"
)

// CoachingStyle describes how a coach should talk to a learner of a type.
type CoachingStyle struct {
	CommunicationStyle string             `json:"communication_style"`
	LanguagePatterns   []string           `json:"language_patterns"`
	MotivationApproach MotivationApproach `json:"motivation_approach"`
	LearningStyle      LearningStyle      `json:"learning_style"`
}

// Formula maps a trait dimension to a multiplier in tenths (15 means 1.5).
// Tenths keep ranking and ties in exact integer arithmetic.
type Formula map[string]int

// Type is static reference data for one learning type.
type Type struct {
	ID              TypeID        `json:"id"`
	DisplayName     string        `json:"display_name"`
	ScientificName  string        `json:"scientific_name"`
	Description     string        `json:"description"`
	Characteristics []string      `json:"characteristics"`
	Strengths       []string      `json:"strengths"`
	Weaknesses      []string      `json:"weaknesses"`
	Strategies      []string      `json:"recommended_strategies"`
	Coaching        CoachingStyle `json:"coaching_style"`
	Formula         Formula       `json:"-"`
}

func (t Type) clone() Type {
	out := t
	out.Characteristics = slices.Clone(t.Characteristics)
	out.Strengths = slices.Clone(t.Strengths)
	out.Weaknesses = slices.Clone(t.Weaknesses)
	out.Strategies = slices.Clone(t.Strategies)
	out.Coaching.LanguagePatterns = slices.Clone(t.Coaching.LanguagePatterns)
	out.Formula = maps.Clone(t.Formula)
	return out
}

// Multipliers returns the formula as float multipliers, for display.
func (t Type) Multipliers() map[string]float64 {
	out := make(map[string]float64, len(t.Formula))
	for dim, tenths := range t.Formula {
		out[dim] = float64(tenths) / 10
	}
	return out
}
