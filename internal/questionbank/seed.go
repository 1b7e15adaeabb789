package questionbank

// DefaultVersion is the version reported by the built-in bank.
const DefaultVersion = "v1.0.0"

// Default returns the built-in question bank: 6 core questions and 4
// follow-ups. It panics if the built-in data is invalid.
func Default() *Bank {
	return MustNew(DefaultVersion, seedQuestions())
}

// seedQuestions returns a fresh copy of the built-in question set.
func seedQuestions() []Question {
	return []Question{
		// Core (6)
		{
			ID:    "motivation_source",
			Text:  "What is the main reason you study?",
			Kind:  KindCore,
			Order: 1,
			Options: []Option{
				{ID: "A", Text: "Learning new things is fun", Weights: Weights{"intrinsic_motivation": 3, "openness": 1}},
				{ID: "B", Text: "I need it for my future goals", Weights: Weights{"identified_regulation": 3, "conscientiousness": 1}},
				{ID: "C", Text: "I want good grades so people recognize me", Weights: Weights{"introjected_regulation": 3, "relatedness_need": 1}},
				{ID: "D", Text: "Bad grades get me in trouble", Weights: Weights{"external_regulation": 3, "neuroticism": 1}},
			},
		},
		{
			ID:    "challenge_attitude",
			Text:  "How do you feel when you face a hard problem?",
			Kind:  KindCore,
			Order: 2,
			Options: []Option{
				{ID: "A", Text: "Excited, I want to crack it", Weights: Weights{"openness": 3, "intrinsic_motivation": 2, "competence": 2}},
				{ID: "B", Text: "I make a plan and work through it steadily", Weights: Weights{"conscientiousness": 3, "identified_regulation": 2}},
				{ID: "C", Text: "Anxious, but I have to try", Weights: Weights{"introjected_regulation": 2, "neuroticism": 2}},
				{ID: "D", Text: "I would rather avoid it", Weights: Weights{"neuroticism": 3, "competence": -2}},
			},
		},
		{
			ID:    "learning_environment",
			Text:  "Where do you focus best?",
			Kind:  KindCore,
			Order: 3,
			Options: []Option{
				{ID: "A", Text: "Alone somewhere quiet, like a library", Weights: Weights{"extraversion": -2, "autonomy": 2}},
				{ID: "B", Text: "With friends, teaching each other", Weights: Weights{"extraversion": 3, "agreeableness": 3, "relatedness_need": 3}},
				{ID: "C", Text: "At home with family nearby", Weights: Weights{"relatedness_need": 3, "neuroticism": 1}},
				{ID: "D", Text: "In a cafe with a few people around", Weights: Weights{"extraversion": 1, "openness": 1}},
			},
		},
		{
			ID:    "planning_style",
			Text:  "How do you prepare for a test?",
			Kind:  KindCore,
			Order: 4,
			Options: []Option{
				{ID: "A", Text: "I make a detailed schedule", Weights: Weights{"conscientiousness": 3, "identified_regulation": 2}},
				{ID: "B", Text: "I set rough goals and adjust to my mood", Weights: Weights{"conscientiousness": 1, "openness": 1}},
				{ID: "C", Text: "I just start solving problems", Weights: Weights{"openness": 2, "conscientiousness": -1}},
				{ID: "D", Text: "I cram right before the test", Weights: Weights{"conscientiousness": -2, "external_regulation": 2}},
			},
		},
		{
			ID:    "learning_depth",
			Text:  "What interests you most in class?",
			Kind:  KindCore,
			Order: 5,
			Options: []Option{
				{ID: "A", Text: "Why it works", Weights: Weights{"openness": 3, "intrinsic_motivation": 2}},
				{ID: "B", Text: "How I can use it", Weights: Weights{"identified_regulation": 2, "openness": 1}},
				{ID: "C", Text: "How to memorize it efficiently", Weights: Weights{"conscientiousness": 2, "external_regulation": 1}},
				{ID: "D", Text: "Whether it will be on the test", Weights: Weights{"external_regulation": 3}},
			},
		},
		{
			ID:    "achievement_source",
			Text:  "When are you happiest while studying?",
			Kind:  KindCore,
			Order: 6,
			Options: []Option{
				{ID: "A", Text: "When I understand a new concept", Weights: Weights{"intrinsic_motivation": 3, "openness": 2, "competence": 2}},
				{ID: "B", Text: "When things go according to my plan", Weights: Weights{"conscientiousness": 3, "identified_regulation": 2, "competence": 1}},
				{ID: "C", Text: "When a teacher or parent praises me", Weights: Weights{"introjected_regulation": 3, "relatedness_need": 2}},
				{ID: "D", Text: "When I get a good test score", Weights: Weights{"external_regulation": 3, "competence": 1}},
			},
		},

		// Follow-ups (4)
		{
			ID:        "exploration_depth",
			Text:      "How do you look into something that interests you?",
			Kind:      KindFollowup,
			Order:     1,
			Condition: Condition{"intrinsic_motivation": AtLeast(4), "openness": AtLeast(4)},
			Options: []Option{
				{ID: "A", Text: "I dig deep into one field", Weights: Weights{"deep_exploration": 2, "conscientiousness": 1}},
				{ID: "B", Text: "I look for links across fields", Weights: Weights{"broad_exploration": 2, "openness": 1}},
				{ID: "C", Text: "Big picture first, then the details", Weights: Weights{"deep_exploration": 1, "broad_exploration": 1}},
				{ID: "D", Text: "I learn through real examples", Weights: Weights{"identified_regulation": 2, "openness": 1}},
			},
		},
		{
			ID:        "competition_cooperation",
			Text:      "What matters most with your classmates?",
			Kind:      KindFollowup,
			Order:     2,
			Condition: Condition{"external_regulation": AtLeast(3), "extraversion": AtLeast(2)},
			Options: []Option{
				{ID: "A", Text: "Competing and pushing each other", Weights: Weights{"competitive_orientation": 3, "extraversion": 1}},
				{ID: "B", Text: "Cooperating and growing together", Weights: Weights{"cooperative_orientation": 3, "agreeableness": 1}},
				{ID: "C", Text: "Using each other's strengths", Weights: Weights{"cooperative_orientation": 2, "collaborative_support": 1}},
				{ID: "D", Text: "Sharing information efficiently", Weights: Weights{"efficient_processing": 2, "collaborative_support": 1}},
			},
		},
		{
			ID:        "support_preference",
			Text:      "What kind of support do you want when you get stuck?",
			Kind:      KindFollowup,
			Order:     3,
			Condition: Condition{"neuroticism": AtLeast(2), "relatedness_need": AtLeast(3)},
			Options: []Option{
				{ID: "A", Text: "Someone to think it through with me", Weights: Weights{"collaborative_support": 2, "relatedness_need": 1}},
				{ID: "B", Text: "Concrete steps to follow", Weights: Weights{"directive_support": 2, "external_regulation": 1}},
				{ID: "C", Text: "Encouragement", Weights: Weights{"relatedness_need": 2, "introjected_regulation": 1}},
				{ID: "D", Text: "Quiet space to work it out myself", Weights: Weights{"autonomy": 2, "relatedness_need": 1}},
			},
		},
		{
			ID:        "learning_pace",
			Text:      "What is your study pace?",
			Kind:      KindFollowup,
			Order:     4,
			Condition: Condition{ScoreGap: AtMost(3)},
			Options: []Option{
				{ID: "A", Text: "Slow and steady", Weights: Weights{"deep_processing": 2, "conscientiousness": 1}},
				{ID: "B", Text: "Fast tempo", Weights: Weights{"efficient_processing": 2, "extraversion": 1}},
				{ID: "C", Text: "All at once when I'm focused", Weights: Weights{"competitive_orientation": 1, "efficient_processing": 1}},
				{ID: "D", Text: "A little every day", Weights: Weights{"conscientiousness": 2, "deep_processing": 1}},
			},
		},
	}
}
