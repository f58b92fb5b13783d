// Package attempt runs the assessment lifecycle: profile creation, test
// generation, attempt start and submission.
package attempt

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/abhisek/skilleval/internal/assess"
	"github.com/abhisek/skilleval/internal/blueprint"
	"github.com/abhisek/skilleval/internal/report"
	"github.com/abhisek/skilleval/internal/scoring"
	"github.com/abhisek/skilleval/internal/store"
)

// ErrAttemptCompleted is returned when submitting an attempt twice.
var ErrAttemptCompleted = store.ErrAttemptCompleted

// TestBuilder generates a test for a profile. *questiongen.Assembler
// implements it.
type TestBuilder interface {
	Build(ctx context.Context, p *blueprint.Profile) (*assess.Test, error)
}

// Deps holds the Service collaborators. Logger and Clock are optional.
type Deps struct {
	Profiles store.ProfileRepo
	Tests    store.TestRepo
	Attempts store.AttemptRepo
	Builder  TestBuilder
	Scorer   *scoring.Scorer
	Logger   *zap.Logger
	Clock    func() time.Time
}

// Service coordinates the assessment workflow.
type Service struct {
	profiles store.ProfileRepo
	tests    store.TestRepo
	attempts store.AttemptRepo
	builder  TestBuilder
	scorer   *scoring.Scorer
	log      *zap.Logger
	now      func() time.Time
}

// NewService creates a Service.
func NewService(d Deps) *Service {
	s := &Service{
		profiles: d.Profiles,
		tests:    d.Tests,
		attempts: d.Attempts,
		builder:  d.Builder,
		scorer:   d.Scorer,
		log:      d.Logger,
		now:      d.Clock,
	}
	if s.log == nil {
		s.log = zap.NewNop()
	}
	if s.now == nil {
		s.now = time.Now
	}
	return s
}

// CreateProfile validates p and stores it for userID with a fresh id.
func (s *Service) CreateProfile(ctx context.Context, userID string, p blueprint.Profile) (*blueprint.Profile, error) {
	if err := p.Validate(); err != nil {
		return nil, err
	}
	p.ID = uuid.NewString()
	p.UserID = userID
	p.CreatedAt = s.now().UTC()

	if err := s.profiles.Create(ctx, &p); err != nil {
		return nil, fmt.Errorf("creating profile: %w", err)
	}
	s.log.Info("profile created", zap.String("profile_id", p.ID), zap.String("role", p.Role))
	return &p, nil
}

// GenerateTest returns the test for a profile, generating and storing one
// on first use. The boolean reports whether a new test was generated.
func (s *Service) GenerateTest(ctx context.Context, profileID string) (*assess.Test, bool, error) {
	p, err := s.profiles.Get(ctx, profileID)
	if err != nil {
		return nil, false, err
	}

	existing, err := s.tests.GetByProfile(ctx, profileID)
	if err == nil {
		return existing, false, nil
	}
	if !errors.Is(err, store.ErrNotFound) {
		return nil, false, fmt.Errorf("looking up test: %w", err)
	}

	test, err := s.builder.Build(ctx, p)
	if err != nil {
		return nil, false, fmt.Errorf("generating test: %w", err)
	}
	if err := s.tests.Create(ctx, test); err != nil {
		return nil, false, fmt.Errorf("saving test: %w", err)
	}
	s.log.Info("test generated",
		zap.String("test_id", test.ID),
		zap.String("profile_id", profileID),
		zap.Int("questions", len(test.Questions)))
	return test, true, nil
}

// Start opens a new attempt of testID for userID.
func (s *Service) Start(ctx context.Context, testID, userID string) (*assess.Attempt, error) {
	if _, err := s.tests.Get(ctx, testID); err != nil {
		return nil, err
	}
	a := &assess.Attempt{
		ID:        uuid.NewString(),
		TestID:    testID,
		UserID:    userID,
		Answers:   []assess.Answer{},
		StartTime: s.now().UTC(),
	}
	if err := s.attempts.Create(ctx, a); err != nil {
		return nil, fmt.Errorf("creating attempt: %w", err)
	}
	return a, nil
}

// Submit scores answers for an open attempt and completes it in a single
// update. Individual evaluator failures lower the score but never fail the
// submission.
func (s *Service) Submit(ctx context.Context, attemptID string, answers []assess.Answer) (*assess.Attempt, error) {
	a, err := s.attempts.Get(ctx, attemptID)
	if err != nil {
		return nil, err
	}
	if a.Completed {
		return nil, fmt.Errorf("%w: %s", ErrAttemptCompleted, attemptID)
	}
	test, err := s.tests.Get(ctx, a.TestID)
	if err != nil {
		return nil, err
	}

	evals := s.scorer.EvaluateAll(ctx, test.Questions, answers)
	result, err := report.Evaluate(test.Questions, evals)
	if err != nil {
		return nil, err
	}

	end := s.now().UTC()
	score := result.OverallScore
	if answers == nil {
		answers = []assess.Answer{}
	}
	a.Answers = answers
	a.EndTime = &end
	a.Score = &score
	a.Evaluation = result
	a.Completed = true

	// The update runs even if the caller went away mid-evaluation.
	// A concurrent Submit may have completed the attempt while this one
	// was scoring; the store refuses the second update.
	if err := s.attempts.Update(context.WithoutCancel(ctx), a); err != nil {
		if errors.Is(err, ErrAttemptCompleted) {
			return nil, err
		}
		return nil, fmt.Errorf("saving attempt: %w", err)
	}
	s.log.Info("attempt submitted",
		zap.String("attempt_id", a.ID),
		zap.Int("score", score),
		zap.Int("answers", len(answers)))
	return a, nil
}

// Detail returns an attempt together with its test.
func (s *Service) Detail(ctx context.Context, attemptID string) (*assess.Attempt, *assess.Test, error) {
	a, err := s.attempts.Get(ctx, attemptID)
	if err != nil {
		return nil, nil, err
	}
	t, err := s.tests.Get(ctx, a.TestID)
	if err != nil {
		return nil, nil, err
	}
	return a, t, nil
}
