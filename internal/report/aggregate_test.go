package report

import (
	"errors"
	"reflect"
	"testing"

	"github.com/abhisek/skilleval/internal/assess"
)

func q(id string, points int, skills ...string) assess.Question {
	return assess.Question{ID: id, Points: points, Skills: skills}
}

func ev(id string, score, max int) assess.Evaluation {
	return assess.Evaluation{QuestionID: id, Score: score, MaxScore: max}
}

func TestAggregateBySkill_ReactScenario(t *testing.T) {
	questions := []assess.Question{q("q1", 20, "React"), q("q2", 20, "React")}
	evals := []assess.Evaluation{ev("q1", 18, 20), ev("q2", 10, 20)}

	b, err := AggregateBySkill(questions, evals)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	react, ok := b.Map()["React"]
	if !ok {
		t.Fatal("React aggregate missing")
	}
	if react.TotalScore != 28 || react.TotalMax != 40 {
		t.Errorf("totals = %d/%d, want 28/40", react.TotalScore, react.TotalMax)
	}
	if react.Percentage != 70 {
		t.Errorf("percentage = %d, want 70", react.Percentage)
	}
	if react.Rating != "Good" {
		t.Errorf("rating = %q, want Good", react.Rating)
	}
	if react.Questions != 2 {
		t.Errorf("questions = %d, want 2", react.Questions)
	}
	want := "Good understanding of React concepts and practical application."
	if react.Feedback != want {
		t.Errorf("feedback = %q, want %q", react.Feedback, want)
	}
}

func TestAggregateBySkill_MultiSkillQuestion(t *testing.T) {
	questions := []assess.Question{
		q("q1", 20, "Go", "SQL"),
		q("q2", 10, "Go"),
	}
	evals := []assess.Evaluation{ev("q1", 20, 20), ev("q2", 0, 10)}

	b, err := AggregateBySkill(questions, evals)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	m := b.Map()
	if m["Go"].TotalScore != 20 || m["Go"].TotalMax != 30 || m["Go"].Questions != 2 {
		t.Errorf("Go = %+v", m["Go"])
	}
	if m["SQL"].TotalScore != 20 || m["SQL"].TotalMax != 20 || m["SQL"].Percentage != 100 {
		t.Errorf("SQL = %+v", m["SQL"])
	}
}

func TestAggregateBySkill_FirstEncounteredOrder(t *testing.T) {
	questions := []assess.Question{q("1", 10, "C"), q("2", 10, "A", "C"), q("3", 10, "B")}
	evals := []assess.Evaluation{ev("1", 1, 10), ev("2", 1, 10), ev("3", 1, 10)}

	b, err := AggregateBySkill(questions, evals)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	var order []string
	for _, s := range b.Skills {
		order = append(order, s.Skill)
	}
	if !reflect.DeepEqual(order, []string{"C", "A", "B"}) {
		t.Errorf("order = %v, want [C A B]", order)
	}
}

func TestAggregateBySkill_PermutationInvariant(t *testing.T) {
	questions := []assess.Question{
		q("1", 20, "React"),
		q("2", 30, "Node.js", "React"),
		q("3", 10, "SQL"),
		q("4", 20, "Node.js"),
	}
	evals := []assess.Evaluation{ev("1", 15, 20), ev("2", 21, 30), ev("3", 10, 10), ev("4", 3, 20)}

	base, err := AggregateBySkill(questions, evals)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	perm := []int{3, 1, 0, 2}
	pq := make([]assess.Question, len(perm))
	pe := make([]assess.Evaluation, len(perm))
	for i, j := range perm {
		pq[i] = questions[j]
		pe[i] = evals[j]
	}
	permuted, err := AggregateBySkill(pq, pe)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if !reflect.DeepEqual(base.Map(), permuted.Map()) {
		t.Errorf("aggregates differ after permutation:\n%+v\n%+v", base.Map(), permuted.Map())
	}
}

func TestAggregateBySkill_LengthMismatch(t *testing.T) {
	questions := []assess.Question{q("1", 20, "Go"), q("2", 20, "Go")}
	evals := []assess.Evaluation{ev("1", 10, 20)}

	_, err := AggregateBySkill(questions, evals)
	if !errors.Is(err, assess.ErrLengthMismatch) {
		t.Fatalf("got %v, want ErrLengthMismatch", err)
	}
	var lm *assess.LengthMismatchError
	if !errors.As(err, &lm) || lm.Questions != 2 || lm.Evaluations != 1 {
		t.Errorf("mismatch detail = %+v", lm)
	}
}

func TestAggregateBySkill_ZeroMaxFlagged(t *testing.T) {
	questions := []assess.Question{q("1", 0, "Trivia")}
	evals := []assess.Evaluation{ev("1", 0, 0)}

	b, err := AggregateBySkill(questions, evals)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	agg := b.Map()["Trivia"]
	if !agg.ZeroMax {
		t.Error("expected ZeroMax to be set")
	}
	if agg.Percentage != 0 {
		t.Errorf("percentage = %d, want 0", agg.Percentage)
	}
}

func TestAggregateBySkill_PercentageBounded(t *testing.T) {
	questions := []assess.Question{q("1", 20, "Go"), q("2", 30, "Go"), q("3", 10, "Rust")}
	evals := []assess.Evaluation{ev("1", 20, 20), ev("2", 30, 30), ev("3", 0, 10)}

	b, err := AggregateBySkill(questions, evals)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	for _, s := range b.Skills {
		if s.Percentage < 0 || s.Percentage > 100 {
			t.Errorf("%s percentage %d out of range", s.Skill, s.Percentage)
		}
	}
}
