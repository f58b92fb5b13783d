package questiongen

import "github.com/abhisek/skilleval/internal/llm"

// QuestionSchema defines the JSON schema for question generation responses.
var QuestionSchema = &llm.Schema{
	Name:        "assessment-question",
	Description: "A single technical assessment question with its expected answer",
	Definition: map[string]any{
		"type": "object",
		"properties": map[string]any{
			"title": map[string]any{
				"type":        "string",
				"description": "One-line summary of the question",
			},
			"body": map[string]any{
				"type":        "string",
				"description": "The full question shown to the candidate, self-contained",
			},
			"options": map[string]any{
				"type":        "array",
				"items":       map[string]any{"type": "string"},
				"description": "Exactly 4 options for mcq questions. Empty array otherwise.",
			},
			"difficulty": map[string]any{
				"type":        "string",
				"enum":        []any{"easy", "medium", "hard"},
				"description": "Difficulty for the requested experience level",
			},
			"expected_answer": map[string]any{
				"type":        "string",
				"description": "For mcq: the text of the correct option. Otherwise: the key points a strong answer covers.",
			},
			"explanation": map[string]any{
				"type":        "string",
				"description": "Short explanation of the correct answer",
			},
		},
		"required":             []any{"title", "body", "options", "difficulty", "expected_answer", "explanation"},
		"additionalProperties": false,
	},
}

// GuidelinesSchema defines the JSON schema for refinement parsing.
var GuidelinesSchema = &llm.Schema{
	Name:        "assessment-guidelines",
	Description: "Structured guidelines derived from free-text assessment requirements",
	Definition: map[string]any{
		"type": "object",
		"properties": map[string]any{
			"difficulty_distribution": map[string]any{"type": "string"},
			"focus_topics": map[string]any{
				"type":  "array",
				"items": map[string]any{"type": "string"},
			},
			"format_preferences": map[string]any{"type": "string"},
			"priorities":         map[string]any{"type": "string"},
		},
		"required":             []any{"difficulty_distribution", "focus_topics", "format_preferences", "priorities"},
		"additionalProperties": false,
	},
}
