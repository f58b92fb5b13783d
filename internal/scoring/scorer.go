package scoring

import (
	"context"
	"errors"
	"math"
	"strings"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/abhisek/skilleval/internal/assess"
	"github.com/abhisek/skilleval/internal/metrics"
)

// Feedback used when no evaluator verdict is available.
const (
	FeedbackNoAnswer = "No answer provided"
	FeedbackFailed   = "Evaluation failed"
)

var errNoResult = errors.New("evaluator returned no result")

// DefaultConcurrency bounds parallel evaluator calls per attempt.
const DefaultConcurrency = 4

// Scorer turns answers into bounded evaluations. Evaluator failures are
// absorbed as zero scores and never returned as errors.
type Scorer struct {
	ev          Evaluator
	concurrency int
	log         *zap.Logger
	metrics     *metrics.Recorder
}

// Option configures a Scorer.
type Option func(*Scorer)

// WithConcurrency sets how many answers are evaluated in parallel.
func WithConcurrency(n int) Option {
	return func(s *Scorer) {
		if n > 0 {
			s.concurrency = n
		}
	}
}

// WithLogger sets the logger.
func WithLogger(l *zap.Logger) Option {
	return func(s *Scorer) {
		if l != nil {
			s.log = l
		}
	}
}

// WithMetrics counts answer outcomes and evaluation latency.
func WithMetrics(m *metrics.Recorder) Option {
	return func(s *Scorer) { s.metrics = m }
}

// NewScorer creates a Scorer around ev.
func NewScorer(ev Evaluator, opts ...Option) *Scorer {
	s := &Scorer{ev: ev, concurrency: DefaultConcurrency, log: zap.NewNop()}
	for _, o := range opts {
		o(s)
	}
	return s
}

// ScoreAnswer grades one answer. A nil or blank answer scores 0 without
// calling the evaluator.
func (s *Scorer) ScoreAnswer(ctx context.Context, q assess.Question, a *assess.Answer) assess.Evaluation {
	ev := assess.Evaluation{QuestionID: q.ID, MaxScore: q.Points}

	if a == nil || strings.TrimSpace(a.Answer) == "" {
		ev.Feedback = FeedbackNoAnswer
		s.metrics.AnswerScored(metrics.OutcomeAbsent)
		return ev
	}

	start := time.Now()
	res, err := s.ev.Evaluate(ctx, EvalRequest{
		Question:   q,
		AnswerText: a.Answer,
		MaxPoints:  q.Points,
	})
	s.metrics.ObserveEvaluation(time.Since(start))
	if err == nil && res == nil {
		err = errNoResult
	}
	if err != nil {
		s.log.Warn("answer evaluation failed",
			zap.String("question_id", q.ID),
			zap.Error(err))
		ev.Feedback = FeedbackFailed
		s.metrics.AnswerScored(metrics.OutcomeFailed)
		return ev
	}

	ev.Score = Clamp(res.Score, q.Points)
	ev.Feedback = res.Feedback
	s.metrics.AnswerScored(metrics.OutcomeScored)
	return ev
}

// EvaluateAll grades every question of a test. Answers are matched to
// questions by QuestionID; the result is index-aligned with questions.
// Answers for unknown questions are ignored, and when a question was
// answered more than once the last answer wins.
func (s *Scorer) EvaluateAll(ctx context.Context, questions []assess.Question, answers []assess.Answer) []assess.Evaluation {
	byID := make(map[string]*assess.Answer, len(answers))
	for i := range answers {
		byID[answers[i].QuestionID] = &answers[i]
	}

	results := make([]assess.Evaluation, len(questions))
	var g errgroup.Group
	g.SetLimit(s.concurrency)
	for i, q := range questions {
		g.Go(func() error {
			results[i] = s.ScoreAnswer(ctx, q, byID[q.ID])
			return nil
		})
	}
	_ = g.Wait()

	s.log.Debug("answers evaluated",
		zap.Int("questions", len(questions)),
		zap.Int("answers", len(answers)))
	return results
}

// Clamp bounds an evaluator score to [0, maxScore] and rounds it half up.
// NaN scores 0.
func Clamp(score float64, maxScore int) int {
	if maxScore <= 0 || math.IsNaN(score) || score <= 0 {
		return 0
	}
	if score >= float64(maxScore) {
		return maxScore
	}
	return int(math.Floor(score + 0.5))
}
