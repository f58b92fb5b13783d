package questiongen

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/abhisek/skilleval/internal/assess"
	"github.com/abhisek/skilleval/internal/blueprint"
	"github.com/abhisek/skilleval/internal/metrics"
	"github.com/abhisek/skilleval/internal/planner"
)

// ErrNoQuestions is returned when every slot of a test failed to generate.
var ErrNoQuestions = errors.New("no questions could be generated")

// DefaultConcurrency bounds parallel generator calls per test.
const DefaultConcurrency = 4

// GuidelineSource turns a profile's refinement text into generator
// guidelines. *Refiner implements it.
type GuidelineSource interface {
	Refine(ctx context.Context, p *blueprint.Profile) (string, error)
}

// Assembler plans a profile into slots, generates each slot and assembles
// the surviving questions into a Test.
type Assembler struct {
	gen         Generator
	refiner     GuidelineSource
	concurrency int
	log         *zap.Logger
	metrics     *metrics.Recorder
	now         func() time.Time
}

// Option configures an Assembler.
type Option func(*Assembler)

// WithRefiner parses refinement text before generation.
func WithRefiner(r GuidelineSource) Option {
	return func(a *Assembler) { a.refiner = r }
}

// WithConcurrency sets the number of slots generated in parallel.
func WithConcurrency(n int) Option {
	return func(a *Assembler) {
		if n > 0 {
			a.concurrency = n
		}
	}
}

// WithLogger sets the logger.
func WithLogger(l *zap.Logger) Option {
	return func(a *Assembler) {
		if l != nil {
			a.log = l
		}
	}
}

// WithMetrics counts generated and dropped slots.
func WithMetrics(m *metrics.Recorder) Option {
	return func(a *Assembler) { a.metrics = m }
}

// WithClock overrides the creation timestamp source.
func WithClock(now func() time.Time) Option {
	return func(a *Assembler) { a.now = now }
}

// NewAssembler creates an Assembler around gen.
func NewAssembler(gen Generator, opts ...Option) *Assembler {
	a := &Assembler{
		gen:         gen,
		concurrency: DefaultConcurrency,
		log:         zap.NewNop(),
		now:         time.Now,
	}
	for _, o := range opts {
		o(a)
	}
	return a
}

// Build generates a Test for p. Slots whose generation fails are dropped
// without retry; the remaining questions keep slot order.
func (a *Assembler) Build(ctx context.Context, p *blueprint.Profile) (*assess.Test, error) {
	slots, err := planner.Plan(p)
	if err != nil {
		return nil, err
	}

	guidelines := a.guidelines(ctx, p)

	results := make([]*assess.Question, len(slots))
	var g errgroup.Group
	g.SetLimit(a.concurrency)
	for i, slot := range slots {
		g.Go(func() error {
			results[i] = a.generateSlot(ctx, p, slot, guidelines)
			return nil
		})
	}
	_ = g.Wait()

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	questions := make([]assess.Question, 0, len(results))
	for _, q := range results {
		if q != nil {
			questions = append(questions, *q)
		}
	}
	if len(questions) == 0 {
		return nil, ErrNoQuestions
	}

	a.log.Info("test assembled",
		zap.String("profile_id", p.ID),
		zap.Int("slots", len(slots)),
		zap.Int("questions", len(questions)))

	return &assess.Test{
		ID:        uuid.NewString(),
		ProfileID: p.ID,
		Questions: questions,
		Metadata:  Metadata(questions),
		CreatedAt: a.now().UTC(),
	}, nil
}

// guidelines returns the refinement text handed to the generator. When
// parsing fails the raw text is used.
func (a *Assembler) guidelines(ctx context.Context, p *blueprint.Profile) string {
	if a.refiner == nil || p.Refinement == "" {
		return p.Refinement
	}
	g, err := a.refiner.Refine(ctx, p)
	if err != nil || g == "" {
		a.log.Warn("refinement parsing failed, using raw text", zap.Error(err))
		return p.Refinement
	}
	return g
}

func (a *Assembler) generateSlot(ctx context.Context, p *blueprint.Profile, slot planner.Slot, guidelines string) *assess.Question {
	c, err := a.gen.Generate(ctx, SlotRequest{
		Type:       slot.Type,
		Skill:      slot.Skill,
		Role:       p.Role,
		Level:      p.Level,
		Refinement: guidelines,
	})
	if err != nil {
		a.log.Warn("dropping question slot",
			zap.Int("slot", slot.Index),
			zap.String("type", string(slot.Type)),
			zap.String("skill", slot.Skill),
			zap.Error(err))
		a.metrics.QuestionGenerated(metrics.OutcomeDropped)
		return nil
	}
	a.metrics.QuestionGenerated(metrics.OutcomeGenerated)

	difficulty := slot.Difficulty
	if c.Difficulty.Valid() {
		difficulty = c.Difficulty
	}
	return &assess.Question{
		ID:             uuid.NewString(),
		Type:           slot.Type,
		Title:          c.Title,
		Content:        c.Body,
		Options:        c.Options,
		ExpectedAnswer: c.ExpectedAnswer,
		Explanation:    c.Explanation,
		Difficulty:     difficulty,
		Skills:         []string{slot.Skill},
		TimeEstimate:   slot.TimeEstimate,
		Points:         difficulty.Points(),
	}
}

// Metadata summarizes questions.
func Metadata(questions []assess.Question) assess.TestMetadata {
	md := assess.TestMetadata{
		TotalQuestions:         len(questions),
		DifficultyDistribution: map[string]int{},
		SkillDistribution:      map[string]int{},
	}
	for _, q := range questions {
		md.TotalTime += q.TimeEstimate
		md.DifficultyDistribution[string(q.Difficulty)]++
		for _, s := range q.Skills {
			md.SkillDistribution[s]++
		}
	}
	return md
}
