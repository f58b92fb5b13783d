package questiongen

import (
	"context"

	"github.com/abhisek/skilleval/internal/assess"
	"github.com/abhisek/skilleval/internal/blueprint"
)

// Generator produces the content of one question slot.
type Generator interface {
	// Generate produces content for a single slot. All configured
	// validators run before returning.
	Generate(ctx context.Context, req SlotRequest) (*Content, error)
}

// SlotRequest holds everything needed to generate one question.
type SlotRequest struct {
	Type       assess.QuestionType
	Skill      string
	Role       string
	Level      blueprint.Level
	Refinement string // structured guidelines or the raw free text
}

// Content is the generated body of a question, before ids and points are
// assigned.
type Content struct {
	// Title is a one-line summary shown in listings.
	Title string

	// Body is the full question text, including any scenario, code or
	// input/output description.
	Body string

	// Options holds exactly 4 choices for mcq questions and is empty
	// otherwise.
	Options []string

	// Difficulty is the generator's self-assessment. It decides points.
	Difficulty assess.Difficulty

	// Explanation is a short worked solution.
	Explanation string

	// ExpectedAnswer is the correct option for mcq questions, or the key
	// points a good answer covers for open questions.
	ExpectedAnswer string
}
