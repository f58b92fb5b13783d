package report

import (
	"fmt"
	"sort"
	"strings"

	"github.com/abhisek/skilleval/internal/assess"
)

const fallbackStrength = "Shows dedication to completing the assessment thoroughly"

// FallbackRecommendation is emitted when no skill needs improvement.
var FallbackRecommendation = assess.Recommendation{
	Title:       "Advanced Learning Path",
	Description: "Continue building expertise with advanced topics and real-world projects",
}

// Synthesize builds the evaluation result from a skill breakdown and the
// overall totals. It performs no I/O.
func Synthesize(b *Breakdown, totalScore, totalMax int) *assess.EvaluationResult {
	if b == nil {
		b = &Breakdown{}
	}
	overall := Percent(totalScore, totalMax)

	return &assess.EvaluationResult{
		OverallScore:     overall,
		SkillBreakdown:   b.Map(),
		Strengths:        strengths(b),
		Weaknesses:       weaknesses(b),
		Recommendations:  recommendations(b),
		DetailedFeedback: detailedFeedback(overall, b),
	}
}

// Evaluate aggregates evaluations by skill and synthesizes the report.
// The per-question evaluations are attached to the result.
func Evaluate(questions []assess.Question, evals []assess.Evaluation) (*assess.EvaluationResult, error) {
	b, err := AggregateBySkill(questions, evals)
	if err != nil {
		return nil, err
	}
	score, max := Totals(evals)
	res := Synthesize(b, score, max)
	res.Evaluations = append([]assess.Evaluation(nil), evals...)
	return res, nil
}

func strengths(b *Breakdown) []string {
	var out []string
	for _, s := range b.Skills {
		if s.Percentage >= StrengthThreshold {
			out = append(out, fmt.Sprintf("Strong proficiency in %s with %d%% accuracy", s.Skill, s.Percentage))
		}
	}
	if len(out) == 0 {
		out = []string{fallbackStrength}
	}
	return out
}

func weaknesses(b *Breakdown) []string {
	out := []string{}
	for _, s := range b.Skills {
		if s.Percentage < WeaknessThreshold {
			out = append(out, fmt.Sprintf("%s concepts need more practice and understanding", s.Skill))
		}
	}
	return out
}

func recommendations(b *Breakdown) []assess.Recommendation {
	var out []assess.Recommendation
	for _, s := range b.Skills {
		if s.Percentage < RecommendationThreshold {
			out = append(out, assess.Recommendation{
				Title:       fmt.Sprintf("Improve %s Skills", s.Skill),
				Description: fmt.Sprintf("Focus on strengthening %s fundamentals and practical application", s.Skill),
				Resources: []string{
					fmt.Sprintf("%s official documentation", s.Skill),
					fmt.Sprintf("Online courses and tutorials for %s", s.Skill),
					fmt.Sprintf("Practice projects using %s", s.Skill),
				},
			})
		}
	}
	if len(out) == 0 {
		out = []assess.Recommendation{FallbackRecommendation}
	}
	return out
}

func detailedFeedback(overall int, b *Breakdown) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "Overall performance: %s.", Rating(overall))
	if b.Len() == 0 {
		return sb.String()
	}

	top := rankSkills(b.Skills, func(a, c int) bool { return a > c })
	bottom := rankSkills(b.Skills, func(a, c int) bool { return a < c })

	fmt.Fprintf(&sb, " Strong performance in %s.", strings.Join(top, " and "))
	fmt.Fprintf(&sb, " Consider focusing improvement efforts on %s to achieve a more well-rounded skill set.",
		strings.Join(bottom, " and "))
	return sb.String()
}

// rankSkills returns up to two skill names ordered by percentage with
// less, breaking ties by first-encountered order.
func rankSkills(skills []assess.SkillAggregate, less func(a, b int) bool) []string {
	sorted := append([]assess.SkillAggregate(nil), skills...)
	sort.SliceStable(sorted, func(i, j int) bool {
		return less(sorted[i].Percentage, sorted[j].Percentage)
	})
	n := min(2, len(sorted))
	names := make([]string, n)
	for i := range n {
		names[i] = sorted[i].Skill
	}
	return names
}
