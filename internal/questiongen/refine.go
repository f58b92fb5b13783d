package questiongen

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/abhisek/skilleval/internal/blueprint"
	"github.com/abhisek/skilleval/internal/llm"
)

const refinerPrompt = `You are an assessment designer. Convert free-text assessment requirements into structured guidelines covering difficulty distribution, topics to focus on, question format preferences and assessment priorities. Be concrete and brief.`

// Refiner turns a profile's free-text refinement into structured
// guidelines for the question generator.
type Refiner struct {
	provider llm.Provider
	config   Config
}

// NewRefiner creates a Refiner backed by provider.
func NewRefiner(provider llm.Provider, cfg Config) *Refiner {
	return &Refiner{provider: provider, config: cfg}
}

type guidelinesOutput struct {
	DifficultyDistribution string   `json:"difficulty_distribution"`
	FocusTopics            []string `json:"focus_topics"`
	FormatPreferences      string   `json:"format_preferences"`
	Priorities             string   `json:"priorities"`
}

// Refine returns guidelines for p. A profile without refinement text
// yields "" without calling the provider.
func (r *Refiner) Refine(ctx context.Context, p *blueprint.Profile) (string, error) {
	if strings.TrimSpace(p.Refinement) == "" {
		return "", nil
	}
	ctx = llm.WithPurpose(ctx, llm.PurposeRefine)

	var b strings.Builder
	fmt.Fprintf(&b, "Role: %s\n", p.Role)
	fmt.Fprintf(&b, "Experience level: %s\n", p.Level)
	fmt.Fprintf(&b, "Tech stack: %s\n", strings.Join(p.TechStack, ", "))
	fmt.Fprintf(&b, "Duration: %d minutes\n", p.Duration)
	fmt.Fprintf(&b, "Requirements: %q\n", p.Refinement)

	resp, err := r.provider.Generate(ctx, llm.Request{
		System:      refinerPrompt,
		Messages:    llm.UserMessage(b.String()),
		Schema:      GuidelinesSchema,
		MaxTokens:   r.config.MaxTokens,
		Temperature: r.config.Temperature,
	})
	if err != nil {
		return "", fmt.Errorf("refining requirements: %w", err)
	}

	var out guidelinesOutput
	if err := json.Unmarshal(resp.Content, &out); err != nil {
		return "", fmt.Errorf("failed to parse guidelines: %w", err)
	}
	return out.format(), nil
}

func (g guidelinesOutput) format() string {
	var b strings.Builder
	fmt.Fprintf(&b, "Difficulty distribution: %s\n", g.DifficultyDistribution)
	if len(g.FocusTopics) > 0 {
		fmt.Fprintf(&b, "Focus topics: %s\n", strings.Join(g.FocusTopics, ", "))
	}
	fmt.Fprintf(&b, "Format preferences: %s\n", g.FormatPreferences)
	fmt.Fprintf(&b, "Priorities: %s", g.Priorities)
	return b.String()
}
