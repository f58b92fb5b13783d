package questiongen

import (
	"fmt"
	"strings"

	"github.com/abhisek/skilleval/internal/assess"
)

const systemPrompt = `You are a senior engineer writing technical assessment questions for hiring and skill reviews.

Rules:
- Generate a single question for the given skill, role, experience level and question type.
- The question must be self-contained: a candidate should be able to answer it without outside context.
- Calibrate difficulty to the experience level. Report the difficulty you actually produced.
- Keep the title to one line. Put all detail in the body.
- Only mcq questions have options. Provide exactly 4 options where exactly one is correct; distractors should reflect common misconceptions.
- expected_answer must let a reviewer grade the answer without solving the question again.
- Follow any additional requirements given, unless they conflict with these rules.`

// typeGuidance describes what each question type should look like.
var typeGuidance = map[assess.QuestionType]string{
	assess.TypeMCQ:      "A multiple choice question with 4 options testing one concept precisely.",
	assess.TypeCoding:   "A coding problem. The body states the problem, the input format, the expected output format and one example.",
	assess.TypeTheory:   "An open-ended conceptual question. expected_answer lists the key points and how to evaluate them.",
	assess.TypeScenario: "A realistic scenario followed by what must be solved or designed. expected_answer lists the key aspects to evaluate.",
}

// buildUserMessage constructs the user message for a slot.
func buildUserMessage(req SlotRequest) string {
	var b strings.Builder

	fmt.Fprintf(&b, "Role: %s\n", req.Role)
	fmt.Fprintf(&b, "Experience level: %s\n", req.Level)
	fmt.Fprintf(&b, "Skill: %s\n", req.Skill)
	fmt.Fprintf(&b, "Question type: %s\n", req.Type)
	if g, ok := typeGuidance[req.Type]; ok {
		fmt.Fprintf(&b, "Format: %s\n", g)
	}

	b.WriteString("\nAdditional requirements:\n")
	if req.Refinement == "" {
		b.WriteString("None")
	} else {
		b.WriteString(req.Refinement)
	}

	return b.String()
}
