// Package report turns per-question evaluations into the skill breakdown and
// qualitative feedback of an evaluation result.
package report

import (
	"fmt"

	"github.com/abhisek/skilleval/internal/assess"
)

// Breakdown is the per-skill aggregate of an attempt. Skills are kept in the
// order they were first encountered while walking the questions.
type Breakdown struct {
	Skills []assess.SkillAggregate
}

// Map returns the aggregates keyed by skill tag.
func (b *Breakdown) Map() map[string]assess.SkillAggregate {
	m := make(map[string]assess.SkillAggregate, len(b.Skills))
	for _, s := range b.Skills {
		m[s.Skill] = s
	}
	return m
}

// Len returns the number of distinct skills.
func (b *Breakdown) Len() int { return len(b.Skills) }

// AggregateBySkill groups evaluations by the skill tags of their questions.
// questions[i] and evals[i] must describe the same question. A question with
// several skill tags contributes its score to each of them.
func AggregateBySkill(questions []assess.Question, evals []assess.Evaluation) (*Breakdown, error) {
	if len(questions) != len(evals) {
		return nil, &assess.LengthMismatchError{Questions: len(questions), Evaluations: len(evals)}
	}

	index := make(map[string]int)
	var skills []assess.SkillAggregate

	for i, q := range questions {
		ev := evals[i]
		for _, skill := range q.Skills {
			idx, ok := index[skill]
			if !ok {
				idx = len(skills)
				index[skill] = idx
				skills = append(skills, assess.SkillAggregate{Skill: skill})
			}
			agg := &skills[idx]
			agg.TotalScore += ev.Score
			agg.TotalMax += ev.MaxScore
			agg.Questions++
		}
	}

	for i := range skills {
		agg := &skills[i]
		if agg.TotalMax <= 0 {
			agg.ZeroMax = true
			agg.Percentage = 0
		} else {
			agg.Percentage = Percent(agg.TotalScore, agg.TotalMax)
		}
		agg.Rating = Rating(agg.Percentage)
		agg.Feedback = skillFeedback(agg.Skill, agg.Rating)
	}

	return &Breakdown{Skills: skills}, nil
}

func skillFeedback(skill, rating string) string {
	return fmt.Sprintf("%s understanding of %s concepts and practical application.", rating, skill)
}

// Totals sums score and max score over all evaluations. Each question is
// counted once regardless of how many skills it declares.
func Totals(evals []assess.Evaluation) (score, max int) {
	for _, ev := range evals {
		score += ev.Score
		max += ev.MaxScore
	}
	return score, max
}
