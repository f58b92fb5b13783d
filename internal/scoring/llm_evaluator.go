package scoring

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/abhisek/skilleval/internal/assess"
	"github.com/abhisek/skilleval/internal/llm"
)

// EvaluationSchema defines the JSON schema for answer grading responses.
var EvaluationSchema = &llm.Schema{
	Name:        "answer-evaluation",
	Description: "A graded answer to a technical assessment question",
	Definition: map[string]any{
		"type": "object",
		"properties": map[string]any{
			"score": map[string]any{
				"type":        "number",
				"description": "Points awarded, between 0 and the maximum points",
			},
			"feedback": map[string]any{
				"type":        "string",
				"description": "Two or three sentences of feedback addressed to the candidate",
			},
			"strengths": map[string]any{
				"type":        "array",
				"items":       map[string]any{"type": "string"},
				"description": "What the answer did well",
			},
			"improvements": map[string]any{
				"type":        "array",
				"items":       map[string]any{"type": "string"},
				"description": "Concrete areas to improve",
			},
		},
		"required":             []any{"score", "feedback", "strengths", "improvements"},
		"additionalProperties": false,
	},
}

const evaluatorPrompt = `You are a strict but fair technical interviewer grading a candidate's answer.

Rules:
- Award points between 0 and the maximum, proportional to correctness, completeness and technical accuracy.
- Use the reference answer as the grading key when one is given. For multiple choice, award full points only for the correct option.
- An empty, off-topic or copied-question answer earns 0.
- Feedback is addressed to the candidate and must not reveal the reference answer verbatim.`

// LLMEvaluator implements Evaluator using the LLM provider. It makes
// exactly one provider call per answer; pass a provider without retry.
type LLMEvaluator struct {
	provider  llm.Provider
	maxTokens int
}

// NewLLMEvaluator creates an LLMEvaluator.
func NewLLMEvaluator(provider llm.Provider, maxTokens int) *LLMEvaluator {
	if maxTokens <= 0 {
		maxTokens = 768
	}
	return &LLMEvaluator{provider: provider, maxTokens: maxTokens}
}

type evaluationOutput struct {
	Score        float64  `json:"score"`
	Feedback     string   `json:"feedback"`
	Strengths    []string `json:"strengths"`
	Improvements []string `json:"improvements"`
}

// Evaluate grades req.AnswerText.
func (e *LLMEvaluator) Evaluate(ctx context.Context, req EvalRequest) (*EvalResult, error) {
	ctx = llm.WithPurpose(ctx, llm.PurposeAnswerEval)

	resp, err := e.provider.Generate(ctx, llm.Request{
		System:    evaluatorPrompt,
		Messages:  llm.UserMessage(buildEvalMessage(req)),
		Schema:    EvaluationSchema,
		MaxTokens: e.maxTokens,
	})
	if err != nil {
		return nil, &assess.UpstreamError{Op: "answer evaluation", Err: err}
	}

	var out evaluationOutput
	if err := json.Unmarshal(resp.Content, &out); err != nil {
		return nil, &assess.UpstreamError{Op: "answer evaluation", Err: fmt.Errorf("malformed response: %w", err)}
	}
	return &EvalResult{
		Score:        out.Score,
		Feedback:     out.Feedback,
		Strengths:    out.Strengths,
		Improvements: out.Improvements,
	}, nil
}

func buildEvalMessage(req EvalRequest) string {
	q := req.Question
	var b strings.Builder

	fmt.Fprintf(&b, "Question type: %s\n", q.Type)
	fmt.Fprintf(&b, "Skills: %s\n", strings.Join(q.Skills, ", "))
	fmt.Fprintf(&b, "Title: %s\n", q.Title)
	fmt.Fprintf(&b, "Question:\n%s\n", q.Content)
	for i, o := range q.Options {
		fmt.Fprintf(&b, "%c) %s\n", 'A'+i, o)
	}
	if q.ExpectedAnswer != "" {
		fmt.Fprintf(&b, "\nReference answer:\n%s\n", q.ExpectedAnswer)
	}
	fmt.Fprintf(&b, "\nCandidate answer:\n%s\n", req.AnswerText)
	fmt.Fprintf(&b, "\nMaximum points: %d", req.MaxPoints)

	return b.String()
}
