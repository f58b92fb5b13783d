package analytics

import (
	"bytes"
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abhisek/skilleval/internal/assess"
	"github.com/abhisek/skilleval/internal/blueprint"
)

var t0 = time.Date(2026, 1, 1, 9, 0, 0, 0, time.UTC)

func completed(id string, day, score int, skills map[string]int) assess.Attempt {
	breakdown := map[string]assess.SkillAggregate{}
	for s, pct := range skills {
		breakdown[s] = assess.SkillAggregate{Skill: s, Percentage: pct}
	}
	return assess.Attempt{
		ID:         id,
		StartTime:  t0.AddDate(0, 0, day),
		Score:      &score,
		Completed:  true,
		Evaluation: &assess.EvaluationResult{OverallScore: score, SkillBreakdown: breakdown},
	}
}

func TestSummarize(t *testing.T) {
	attempts := []assess.Attempt{
		// Out of order on purpose; trend follows start time.
		completed("a3", 3, 90, map[string]int{"React": 95, "CSS": 80}),
		completed("a1", 1, 60, map[string]int{"React": 55}),
		{ID: "open", StartTime: t0},
		completed("a2", 2, 75, map[string]int{"React": 70, "CSS": 85}),
	}

	s := Summarize(attempts)
	assert.Equal(t, 4, s.TotalAssessments)
	assert.Equal(t, 3, s.CompletedAssessments)
	assert.Equal(t, 75, s.AverageScore)
	assert.Equal(t, 90, s.BestScore)

	require.Len(t, s.Skills, 2)
	assert.Equal(t, SkillTrend{Skill: "CSS", Average: 83, Assessments: 2, Trend: -5}, s.Skills[0])
	assert.Equal(t, SkillTrend{Skill: "React", Average: 73, Assessments: 3, Trend: 40}, s.Skills[1])
}

func TestSummarize_Empty(t *testing.T) {
	s := Summarize(nil)
	assert.Equal(t, Summary{Skills: []SkillTrend{}}, s)
}

func TestSummarize_SingleAssessmentHasNoTrend(t *testing.T) {
	s := Summarize([]assess.Attempt{completed("a1", 1, 40, map[string]int{"Go": 40})})
	require.Len(t, s.Skills, 1)
	assert.Equal(t, 0, s.Skills[0].Trend)
}

func TestRoundDiv(t *testing.T) {
	assert.Equal(t, 0, roundDiv(10, 0))
	assert.Equal(t, 83, roundDiv(165, 2))
	assert.Equal(t, 73, roundDiv(220, 3))
	assert.Equal(t, 3, roundDiv(5, 2))
}

func TestWriteExport(t *testing.T) {
	profiles := []blueprint.Profile{{ID: "p1", Role: "Backend"}}
	attempts := []assess.Attempt{completed("a1", 1, 50, nil)}

	var buf bytes.Buffer
	require.NoError(t, WriteExport(&buf, profiles, attempts, t0))

	var doc map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &doc))
	assert.Equal(t, "1.0", doc["version"])
	assert.Equal(t, "2026-01-01T09:00:00Z", doc["exportDate"])
	assert.Len(t, doc["blueprints"], 1)
	assert.Len(t, doc["attempts"], 1)
}

func TestWriteExport_EmptyListsAreArrays(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteExport(&buf, nil, nil, t0))
	assert.Contains(t, buf.String(), `"blueprints": []`)
	assert.Contains(t, buf.String(), `"attempts": []`)
}
