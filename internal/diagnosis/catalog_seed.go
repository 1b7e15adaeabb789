package diagnosis

// seedTypes returns the six built-in learning types.
func seedTypes() []Type {
	return []Type{
		{
			ID:             TypeExplorer,
			DisplayName:    "Explorer",
			ScientificName: "Intrinsic Inquirer",
			Description:    "Driven by curiosity, discovery, and the joy of understanding",
			Characteristics: []string{
				"Enjoys learning new things for their own sake",
				"Keeps asking why and how",
				"Prefers creative, original approaches",
				"Values deep understanding",
				"Enjoys the learning process itself",
			},
			Strengths:  []string{"Strong drive to learn", "Creative thinking", "Critical thinking", "Self-study", "Sustained focus"},
			Weaknesses: []string{"Can neglect practicality", "Sometimes lacks planning", "Low motivation outside interests"},
			Strategies: []string{
				"Open with a hook that sparks interest",
				"Show connections and applications",
				"Set aside free exploration time",
				"Create chances to share discoveries",
			},
			Coaching: CoachingStyle{
				CommunicationStyle: "intellectual guide",
				LanguagePatterns: []string{
					"Interesting angle. What if it were different?",
					"Tell me why you think so",
					"Let's dig further into this discovery",
					"Your curiosity is great!",
				},
				MotivationApproach: MotivationIntrinsic,
				LearningStyle:      StyleDiscovery,
			},
			Formula: Formula{"intrinsic_motivation": 15, "openness": 13, "autonomy": 12, "deep_exploration": 11},
		},
		{
			ID:             TypeStrategist,
			DisplayName:    "Strategist",
			ScientificName: "Goal-Oriented Planner",
			Description:    "Values planning, logic, and reaching goals",
			Characteristics: []string{
				"Likes clear goals",
				"Takes a logical, systematic approach",
				"Thinks long term",
				"Looks for efficient study methods",
				"Manages themselves well",
			},
			Strengths:  []string{"Planning", "Goal achievement", "Self-management", "Logical thinking", "Persistence"},
			Weaknesses: []string{"Can be inflexible", "Perfectionism", "Can neglect creativity"},
			Strategies: []string{
				"Set clear learning goals",
				"Break work into milestones",
				"Make progress visible",
				"Favor logical explanations",
			},
			Coaching: CoachingStyle{
				CommunicationStyle: "logical partner",
				LanguagePatterns: []string{
					"Let's lay out the overall structure first",
					"What's the next step toward your goal?",
					"Think about how efficient this method is",
					"You're right on plan!",
				},
				MotivationApproach: MotivationGoal,
				LearningStyle:      StyleStructured,
			},
			Formula: Formula{"identified_regulation": 15, "conscientiousness": 14, "autonomy": 12, "competence": 11},
		},
		{
			ID:             TypeAchiever,
			DisplayName:    "Achiever",
			ScientificName: "Recognition-Seeking Striver",
			Description:    "Values effort, recognition, and growth",
			Characteristics: []string{
				"Cares about how others evaluate them",
				"Values hard work",
				"Wants to feel progress",
				"Likes working with peers",
				"Responds strongly to encouragement",
			},
			Strengths:  []string{"Sustained effort", "Consideration for others", "Teamwork", "Openness to feedback", "Desire to grow"},
			Weaknesses: []string{"Depends on others' approval", "Unstable confidence", "Anxious when comparing"},
			Strategies: []string{
				"Stack up small wins",
				"Recognize the effort, not just the outcome",
				"Create chances to learn with peers",
				"Use specific praise",
			},
			Coaching: CoachingStyle{
				CommunicationStyle: "encouraging coach",
				LanguagePatterns: []string{
					"Amazing, you worked really hard!",
					"Your effort is paying off",
					"Let's keep going together",
					"Everyone is cheering you on",
				},
				MotivationApproach: MotivationRecognition,
				LearningStyle:      StyleCollaborative,
			},
			Formula: Formula{"introjected_regulation": 15, "relatedness_need": 13, "conscientiousness": 12, "collaborative_support": 11},
		},
		{
			ID:             TypeChallenger,
			DisplayName:    "Challenger",
			ScientificName: "Competitive Contender",
			Description:    "Chases competition, speed, and winning",
			Characteristics: []string{
				"Performs better under competition",
				"Likes a fast learning pace",
				"Enjoys contests and challenges",
				"Good at short bursts of focus",
				"Motivated by rivals",
			},
			Strengths:  []string{"Intense focus", "Competitiveness", "Fast learning", "Appetite for challenge", "Short-burst concentration"},
			Weaknesses: []string{"Can lack staying power", "Can skip the fundamentals", "Fears failure"},
			Strategies: []string{
				"Add game elements",
				"Set short-term goals",
				"Create a competitive setting",
				"Offer challenging problems",
			},
			Coaching: CoachingStyle{
				CommunicationStyle: "competitive partner",
				LanguagePatterns: []string{
					"Here's a challenge problem. Want to try?",
					"You can definitely do this!",
					"Let's beat this record",
					"Great speed!",
				},
				MotivationApproach: MotivationCompetition,
				LearningStyle:      StyleChallenge,
			},
			Formula: Formula{"external_regulation": 13, "extraversion": 14, "competitive_orientation": 15, "efficient_processing": 11},
		},
		{
			ID:             TypePartner,
			DisplayName:    "Partner",
			ScientificName: "Relationship-Centered Collaborator",
			Description:    "Values companions, mutual support, and a sense of security",
			Characteristics: []string{
				"Cares about relationships",
				"Cooperative and considerate",
				"Looks for a safe environment",
				"Likes learning with peers",
				"Cares about others' growth too",
			},
			Strengths:  []string{"Cooperation", "Empathy", "Supporting others", "Stability", "Teamwork"},
			Weaknesses: []string{"Can lack independence", "Avoids competition", "Unsure when deciding"},
			Strategies: []string{
				"Build a safe learning environment",
				"Add more learning with peers",
				"Offer support step by step",
				"Recognize the value of cooperation",
			},
			Coaching: CoachingStyle{
				CommunicationStyle: "empathetic mentor",
				LanguagePatterns: []string{
					"It's okay, let's do this together",
					"Let's all support each other",
					"I understand how you feel",
					"One step at a time",
				},
				MotivationApproach: MotivationRelationship,
				LearningStyle:      StyleSupportive,
			},
			Formula: Formula{"relatedness_need": 15, "agreeableness": 13, "cooperative_orientation": 14, "collaborative_support": 12},
		},
		{
			ID:             TypePragmatist,
			DisplayName:    "Pragmatist",
			ScientificName: "Efficiency-Minded Realist",
			Description:    "Pursues practicality, efficiency, and results",
			Characteristics: []string{
				"Values practical use",
				"Looks for efficient methods",
				"Results oriented",
				"Dislikes waste",
				"Prefers hands-on application",
			},
			Strengths:  []string{"Efficiency", "Practical thinking", "Focus on results", "Time management", "Rationality"},
			Weaknesses: []string{"Can neglect creativity", "Can skip the process", "Can lack a long-term view"},
			Strategies: []string{
				"Show practical applications",
				"Offer efficient study methods",
				"Make short-term results visible",
				"Make the return on time explicit",
			},
			Coaching: CoachingStyle{
				CommunicationStyle: "practical consultant",
				LanguagePatterns: []string{
					"Bottom line first:",
					"This is the most efficient way",
					"Where would you use this in real life?",
					"Let's make good use of your time",
				},
				MotivationApproach: MotivationResult,
				LearningStyle:      StylePractical,
			},
			Formula: Formula{"external_regulation": 12, "conscientiousness": 11, "efficient_processing": 14, "directive_support": 13},
		},
	}
}
