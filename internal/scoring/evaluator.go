// Package scoring grades answers against their questions and normalizes
// evaluator output into bounded per-question evaluations.
package scoring

import (
	"context"

	"github.com/abhisek/skilleval/internal/assess"
)

// Evaluator grades one answer. Implementations must be safe for
// concurrent use.
type Evaluator interface {
	Evaluate(ctx context.Context, req EvalRequest) (*EvalResult, error)
}

// EvalRequest is a single answer to grade.
type EvalRequest struct {
	Question   assess.Question
	AnswerText string
	MaxPoints  int
}

// EvalResult is an evaluator's raw verdict. Score is not yet clamped.
type EvalResult struct {
	Score        float64
	Feedback     string
	Strengths    []string
	Improvements []string
}
