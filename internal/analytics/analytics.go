// Package analytics summarizes attempt history and exports it.
package analytics

import (
	"encoding/json"
	"fmt"
	"io"
	"sort"
	"time"

	"github.com/abhisek/skilleval/internal/assess"
	"github.com/abhisek/skilleval/internal/blueprint"
)

// ExportVersion is written into every export document.
const ExportVersion = "1.0"

// Summary aggregates a set of attempts.
type Summary struct {
	TotalAssessments     int          `json:"totalAssessments"`
	CompletedAssessments int          `json:"completedAssessments"`
	AverageScore         int          `json:"averageScore"`
	BestScore            int          `json:"bestScore"`
	Skills               []SkillTrend `json:"skillAnalytics"`
}

// SkillTrend tracks one skill across completed attempts.
type SkillTrend struct {
	Skill       string `json:"skill"`
	Average     int    `json:"average"`
	Assessments int    `json:"assessments"`

	// Trend is the last score minus the first, by attempt start time.
	// It is 0 with fewer than two assessments.
	Trend int `json:"trend"`
}

// Summarize computes history statistics. Only completed attempts
// contribute scores. Skills are sorted by name.
func Summarize(attempts []assess.Attempt) Summary {
	completed := make([]assess.Attempt, 0, len(attempts))
	for _, a := range attempts {
		if a.Completed {
			completed = append(completed, a)
		}
	}
	sort.SliceStable(completed, func(i, j int) bool {
		return completed[i].StartTime.Before(completed[j].StartTime)
	})

	s := Summary{
		TotalAssessments:     len(attempts),
		CompletedAssessments: len(completed),
		Skills:               []SkillTrend{},
	}

	var total int
	perSkill := map[string][]int{}
	for _, a := range completed {
		score := 0
		if a.Score != nil {
			score = *a.Score
		}
		total += score
		s.BestScore = max(s.BestScore, score)

		if a.Evaluation == nil {
			continue
		}
		for skill, agg := range a.Evaluation.SkillBreakdown {
			perSkill[skill] = append(perSkill[skill], agg.Percentage)
		}
	}
	s.AverageScore = roundDiv(total, len(completed))

	for skill, scores := range perSkill {
		sum := 0
		for _, v := range scores {
			sum += v
		}
		st := SkillTrend{Skill: skill, Average: roundDiv(sum, len(scores)), Assessments: len(scores)}
		if len(scores) > 1 {
			st.Trend = scores[len(scores)-1] - scores[0]
		}
		s.Skills = append(s.Skills, st)
	}
	sort.Slice(s.Skills, func(i, j int) bool { return s.Skills[i].Skill < s.Skills[j].Skill })

	return s
}

// roundDiv returns sum/n rounded half up, or 0 when n is 0.
func roundDiv(sum, n int) int {
	if n == 0 {
		return 0
	}
	return (2*sum + n) / (2 * n)
}

// Export is the portable dump of a user's data.
type Export struct {
	Blueprints []blueprint.Profile `json:"blueprints"`
	Attempts   []assess.Attempt    `json:"attempts"`
	ExportDate time.Time           `json:"exportDate"`
	Version    string              `json:"version"`
}

// WriteExport writes profiles and attempts as an indented JSON document.
func WriteExport(w io.Writer, profiles []blueprint.Profile, attempts []assess.Attempt, now time.Time) error {
	doc := Export{
		Blueprints: profiles,
		Attempts:   attempts,
		ExportDate: now.UTC(),
		Version:    ExportVersion,
	}
	if doc.Blueprints == nil {
		doc.Blueprints = []blueprint.Profile{}
	}
	if doc.Attempts == nil {
		doc.Attempts = []assess.Attempt{}
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(doc); err != nil {
		return fmt.Errorf("writing export: %w", err)
	}
	return nil
}
