package scoring

import (
	"context"
	"testing"

	"github.com/abhisek/skilleval/internal/assess"
)

func TestRuleEvaluator_MCQ(t *testing.T) {
	tests := []struct {
		answer string
		want   float64
	}{
		{"useEffect", 20},
		{"  USEEFFECT ", 20},
		{"b", 20},
		{"B)", 20},
		{"a", 0},
		{"useRef", 0},
		{"e", 0},
	}
	for _, tt := range tests {
		t.Run(tt.answer, func(t *testing.T) {
			res, err := RuleEvaluator{}.Evaluate(context.Background(), EvalRequest{
				Question: mcqQuestion(), AnswerText: tt.answer, MaxPoints: 20,
			})
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if res.Score != tt.want {
				t.Errorf("score = %v, want %v", res.Score, tt.want)
			}
		})
	}
}

func TestRuleEvaluator_KeywordCoverage(t *testing.T) {
	q := assess.Question{
		ID:             "q1",
		Type:           assess.TypeTheory,
		ExpectedAnswer: "goroutines, channels, select and the context package",
		Points:         20,
	}

	tests := []struct {
		name   string
		answer string
		want   float64
	}{
		{"all terms", "Use goroutines with channels, a select loop and context for cancellation. Package up.", 20},
		{"two of five", "goroutines and channels", 8},
		{"none", "threads", 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res, err := RuleEvaluator{}.Evaluate(context.Background(), EvalRequest{Question: q, AnswerText: tt.answer, MaxPoints: 20})
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if res.Score != tt.want {
				t.Errorf("score = %v, want %v (%s)", res.Score, tt.want, res.Feedback)
			}
		})
	}
}

func TestRuleEvaluator_NoReference(t *testing.T) {
	res, _ := RuleEvaluator{}.Evaluate(context.Background(), EvalRequest{
		Question:   assess.Question{Type: assess.TypeCoding},
		AnswerText: "func main() {}",
		MaxPoints:  20,
	})
	if res.Score != 0 || res.Feedback == "" {
		t.Errorf("result = %+v", res)
	}
}

func TestKeyTerms(t *testing.T) {
	got := keyTerms("The Context package, and the CONTEXT: cancel() it")
	want := []string{"context", "package", "cancel"}
	if len(got) != len(want) {
		t.Fatalf("keyTerms = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("keyTerms[%d] = %q, want %q", i, got[i], want[i])
		}
	}
}
