package questiongen

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/abhisek/skilleval/internal/assess"
	"github.com/abhisek/skilleval/internal/llm"
)

// LLMGenerator implements Generator using the LLM provider.
type LLMGenerator struct {
	provider llm.Provider
	config   Config
}

// New creates a new LLMGenerator with the given provider and config.
func New(provider llm.Provider, cfg Config) *LLMGenerator {
	return &LLMGenerator{provider: provider, config: cfg}
}

// questionOutput is the raw LLM response before validation.
type questionOutput struct {
	Title          string   `json:"title"`
	Body           string   `json:"body"`
	Options        []string `json:"options"`
	Difficulty     string   `json:"difficulty"`
	ExpectedAnswer string   `json:"expected_answer"`
	Explanation    string   `json:"explanation"`
}

// Generate produces the content of a single question slot.
func (g *LLMGenerator) Generate(ctx context.Context, req SlotRequest) (*Content, error) {
	ctx = llm.WithPurpose(ctx, llm.PurposeQuestionGen)

	resp, err := g.provider.Generate(ctx, llm.Request{
		System:      systemPrompt,
		Messages:    llm.UserMessage(buildUserMessage(req)),
		Schema:      QuestionSchema,
		MaxTokens:   g.config.MaxTokens,
		Temperature: g.config.Temperature,
	})
	if err != nil {
		return nil, &assess.UpstreamError{Op: "question generation", Err: err}
	}

	var raw questionOutput
	if err := json.Unmarshal(resp.Content, &raw); err != nil {
		return nil, &assess.UpstreamError{Op: "question generation", Err: fmt.Errorf("malformed response: %w", err)}
	}

	c := &Content{
		Title:          strings.TrimSpace(raw.Title),
		Body:           strings.TrimSpace(raw.Body),
		Options:        raw.Options,
		Difficulty:     assess.Difficulty(strings.ToLower(strings.TrimSpace(raw.Difficulty))),
		ExpectedAnswer: strings.TrimSpace(raw.ExpectedAnswer),
		Explanation:    strings.TrimSpace(raw.Explanation),
	}
	if len(c.Options) == 0 {
		c.Options = nil
	}

	for _, v := range g.config.Validators {
		if verr := v.Validate(c, req); verr != nil {
			return nil, verr
		}
	}

	return c, nil
}
