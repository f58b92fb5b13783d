// Package reportview renders profiles, tests, reports and analytics for
// the terminal.
package reportview

import (
	"fmt"
	"image/color"
	"sort"
	"strings"

	"charm.land/lipgloss/v2"
	"charm.land/lipgloss/v2/table"

	"github.com/abhisek/skilleval/internal/analytics"
	"github.com/abhisek/skilleval/internal/assess"
	"github.com/abhisek/skilleval/internal/blueprint"
	"github.com/abhisek/skilleval/internal/report"
	"github.com/abhisek/skilleval/internal/ui/components"
	"github.com/abhisek/skilleval/internal/ui/theme"
)

// DefaultWidth is used when the caller has no terminal width.
const DefaultWidth = 72

const feedbackWidth = 48

// ratingColor returns the theme color for a report rating label.
func ratingColor(rating string) color.Color {
	switch rating {
	case report.RatingExcellent, report.RatingVeryGood:
		return theme.Success
	case report.RatingGood:
		return theme.Secondary
	case report.RatingAverage:
		return theme.Accent
	default:
		return theme.Error
	}
}

func rule(width int) string {
	return lipgloss.NewStyle().Foreground(theme.Border).Render(strings.Repeat("─", width))
}

func section(b *strings.Builder, title string, width int) {
	b.WriteString("\n")
	b.WriteString(theme.Section.Render(title))
	b.WriteString("\n")
	b.WriteString(rule(width))
	b.WriteString("\n")
}

// Profile renders a requirement profile.
func Profile(p *blueprint.Profile) string {
	types := make([]string, len(p.QuestionTypes))
	for i, t := range p.QuestionTypes {
		types[i] = string(t)
	}

	var b strings.Builder
	b.WriteString(theme.Title.Render(fmt.Sprintf("%s (%s)", p.Role, p.Level)))
	b.WriteString("\n")
	fmt.Fprintf(&b, "ID:         %s\n", p.ID)
	fmt.Fprintf(&b, "Tech stack: %s\n", strings.Join(p.TechStack, ", "))
	fmt.Fprintf(&b, "Types:      %s\n", strings.Join(types, ", "))
	fmt.Fprintf(&b, "Duration:   %d min\n", p.Duration)
	if p.Refinement != "" {
		fmt.Fprintf(&b, "Focus:      %s\n", p.Refinement)
	}
	b.WriteString(theme.Hint.Render("Created " + p.CreatedAt.Local().Format("2006-01-02 15:04")))
	return b.String()
}

// TestOverview renders the overview of a generated test without revealing answers.
func TestOverview(t *assess.Test, width int) string {
	var b strings.Builder
	b.WriteString(theme.Title.Render("Test " + t.ID))
	b.WriteString("\n")
	b.WriteString(theme.Subtitle.Render(fmt.Sprintf("%d questions, about %d min",
		t.Metadata.TotalQuestions, t.Metadata.TotalTime)))
	b.WriteString("\n")

	section(&b, "Questions", width)
	tbl := table.New().
		Border(lipgloss.NormalBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(theme.Border)).
		Headers("#", "Type", "Difficulty", "Points", "Skills", "Title").
		StyleFunc(headerStyle)
	for i, q := range t.Questions {
		tbl.Row(fmt.Sprint(i+1), string(q.Type), string(q.Difficulty),
			fmt.Sprint(q.Points), strings.Join(q.Skills, ", "), truncate(q.Title, feedbackWidth))
	}
	b.WriteString(tbl.String())
	b.WriteString("\n")

	section(&b, "Distribution", width)
	for _, k := range sortedKeys(t.Metadata.DifficultyDistribution) {
		fmt.Fprintf(&b, "%-10s %d\n", k, t.Metadata.DifficultyDistribution[k])
	}
	return b.String()
}

// Question renders question i (zero-based) of n for answering.
func Question(i, n int, q assess.Question) string {
	var b strings.Builder
	b.WriteString(theme.Subtitle.Render(fmt.Sprintf("Question %d of %d · %s · %s · %d pts",
		i+1, n, q.Type, q.Difficulty, q.Points)))
	b.WriteString("\n")
	b.WriteString(theme.Title.Render(q.Title))
	b.WriteString("\n\n")
	b.WriteString(q.Content)
	b.WriteString("\n")
	for j, opt := range q.Options {
		fmt.Fprintf(&b, "  %c) %s\n", 'A'+j, opt)
	}
	return b.String()
}

// Report renders the result of an attempt. Questions from t label the
// per-question evaluations; t may be nil.
func Report(a *assess.Attempt, t *assess.Test, width int) string {
	var b strings.Builder
	b.WriteString(theme.Title.Render("Assessment " + a.ID))
	b.WriteString("\n")
	b.WriteString(theme.Subtitle.Render("Started " + a.StartTime.Local().Format("2006-01-02 15:04")))
	b.WriteString("\n")

	res := a.Evaluation
	if !a.Completed || res == nil {
		b.WriteString("\n")
		b.WriteString(theme.Hint.Render(fmt.Sprintf("In progress: %d answers recorded.", len(a.Answers))))
		b.WriteString("\n")
		return b.String()
	}

	rating := report.Rating(res.OverallScore)
	score := lipgloss.NewStyle().Bold(true).Foreground(ratingColor(rating)).
		Render(fmt.Sprintf("%d%%  %s", res.OverallScore, rating))
	b.WriteString("\n")
	b.WriteString(theme.Card.Render("Overall  " + score))
	b.WriteString("\n")

	if len(res.SkillBreakdown) > 0 {
		section(&b, "Skills", width)
		b.WriteString(skillBars(res.SkillBreakdown, width))
	}

	if len(res.Strengths) > 0 {
		section(&b, "Strengths", width)
		for _, s := range res.Strengths {
			b.WriteString(theme.Correct.Render("+ ") + s + "\n")
		}
	}
	if len(res.Weaknesses) > 0 {
		section(&b, "Needs work", width)
		for _, s := range res.Weaknesses {
			b.WriteString(theme.Incorrect.Render("- ") + s + "\n")
		}
	}

	section(&b, "Recommendations", width)
	for _, r := range res.Recommendations {
		b.WriteString(theme.Body.Bold(true).Render(r.Title))
		b.WriteString("\n")
		b.WriteString("  " + r.Description + "\n")
		for _, link := range r.Resources {
			b.WriteString(theme.Hint.Render("  " + link))
			b.WriteString("\n")
		}
	}

	if res.DetailedFeedback != "" {
		section(&b, "Summary", width)
		b.WriteString(res.DetailedFeedback)
		b.WriteString("\n")
	}

	if len(res.Evaluations) > 0 {
		section(&b, "Answers", width)
		b.WriteString(evaluations(res.Evaluations, t))
		b.WriteString("\n")
	}
	return b.String()
}

func skillBars(breakdown map[string]assess.SkillAggregate, width int) string {
	names := sortedKeys(breakdown)
	labelWidth := 0
	for _, n := range names {
		labelWidth = max(labelWidth, lipgloss.Width(n))
	}

	var b strings.Builder
	for _, n := range names {
		agg := breakdown[n]
		bar := components.ProgressBar{
			Label:       n,
			LabelWidth:  labelWidth,
			Percent:     agg.Percentage,
			ShowPercent: true,
			Width:       width - 22,
		}
		b.WriteString(bar.View())
		b.WriteString("  ")
		b.WriteString(lipgloss.NewStyle().Foreground(ratingColor(agg.Rating)).Render(agg.Rating))
		b.WriteString("\n")
	}
	return b.String()
}

func evaluations(evals []assess.Evaluation, t *assess.Test) string {
	titles := map[string]string{}
	if t != nil {
		for _, q := range t.Questions {
			titles[q.ID] = q.Title
		}
	}

	tbl := table.New().
		Border(lipgloss.NormalBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(theme.Border)).
		Headers("#", "Question", "Score", "Feedback").
		StyleFunc(headerStyle)
	for i, e := range evals {
		title := titles[e.QuestionID]
		if title == "" {
			title = e.QuestionID
		}
		tbl.Row(fmt.Sprint(i+1), truncate(title, 32),
			theme.ScoreStyle(e.Score, e.MaxScore).Render(fmt.Sprintf("%d/%d", e.Score, e.MaxScore)),
			truncate(e.Feedback, feedbackWidth))
	}
	return tbl.String()
}

// Summary renders analytics for a user's history.
func Summary(s analytics.Summary, width int) string {
	var b strings.Builder
	b.WriteString(theme.Title.Render("Assessment history"))
	b.WriteString("\n")
	fmt.Fprintf(&b, "Assessments: %d    Completed: %d    Average: %d%%    Best: %d%%\n",
		s.TotalAssessments, s.CompletedAssessments, s.AverageScore, s.BestScore)

	if len(s.Skills) == 0 {
		b.WriteString("\n")
		b.WriteString(theme.Hint.Render("No completed assessments yet."))
		b.WriteString("\n")
		return b.String()
	}

	section(&b, "Skills", width)
	tbl := table.New().
		Border(lipgloss.NormalBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(theme.Border)).
		Headers("Skill", "Average", "Assessments", "Trend").
		StyleFunc(headerStyle)
	for _, sk := range s.Skills {
		tbl.Row(sk.Skill, fmt.Sprintf("%d%%", sk.Average), fmt.Sprint(sk.Assessments), trend(sk.Trend))
	}
	b.WriteString(tbl.String())
	b.WriteString("\n")
	return b.String()
}

func trend(delta int) string {
	switch {
	case delta > 0:
		return theme.Correct.Render(fmt.Sprintf("▲ %d", delta))
	case delta < 0:
		return theme.Incorrect.Render(fmt.Sprintf("▼ %d", -delta))
	default:
		return theme.Subtitle.Render("0")
	}
}

func headerStyle(row, _ int) lipgloss.Style {
	if row == table.HeaderRow {
		return lipgloss.NewStyle().Bold(true).Foreground(theme.Secondary).Padding(0, 1)
	}
	return lipgloss.NewStyle().Padding(0, 1)
}

func truncate(s string, n int) string {
	s = strings.Join(strings.Fields(s), " ")
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n-1]) + "…"
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
