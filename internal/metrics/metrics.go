// Package metrics counts generation and scoring outcomes on a private
// Prometheus registry.
package metrics

import (
	"fmt"
	"io"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/common/expfmt"
)

// Answer outcomes.
const (
	OutcomeScored = "scored"
	OutcomeAbsent = "absent"
	OutcomeFailed = "failed"
)

// Question generation outcomes.
const (
	OutcomeGenerated = "generated"
	OutcomeDropped   = "dropped"
)

// Recorder holds the skilleval collectors. A nil *Recorder is valid and
// records nothing.
type Recorder struct {
	registry     *prometheus.Registry
	answers      *prometheus.CounterVec
	questions    *prometheus.CounterVec
	evalDuration prometheus.Histogram
}

// New creates a Recorder with its own registry.
func New() *Recorder {
	r := &Recorder{
		registry: prometheus.NewRegistry(),
		answers: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "skilleval_answers_scored_total",
				Help: "Answers processed by the scorer, by outcome",
			},
			[]string{"outcome"},
		),
		questions: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "skilleval_questions_generated_total",
				Help: "Question slots processed by the generator, by outcome",
			},
			[]string{"outcome"},
		),
		evalDuration: prometheus.NewHistogram(
			prometheus.HistogramOpts{
				Name:    "skilleval_evaluation_duration_seconds",
				Help:    "Duration of single answer evaluations",
				Buckets: []float64{0.1, 0.5, 1, 2, 5, 10, 30},
			},
		),
	}
	r.registry.MustRegister(r.answers, r.questions, r.evalDuration)
	return r
}

// AnswerScored counts one answer with the given outcome.
func (r *Recorder) AnswerScored(outcome string) {
	if r == nil {
		return
	}
	r.answers.WithLabelValues(outcome).Inc()
}

// QuestionGenerated counts one question slot with the given outcome.
func (r *Recorder) QuestionGenerated(outcome string) {
	if r == nil {
		return
	}
	r.questions.WithLabelValues(outcome).Inc()
}

// ObserveEvaluation records the latency of one evaluator call.
func (r *Recorder) ObserveEvaluation(d time.Duration) {
	if r == nil {
		return
	}
	r.evalDuration.Observe(d.Seconds())
}

// Registry exposes the underlying registry, or nil for a nil Recorder.
func (r *Recorder) Registry() *prometheus.Registry {
	if r == nil {
		return nil
	}
	return r.registry
}

// WriteText dumps every collected family in the text exposition format.
// A nil Recorder writes nothing.
func (r *Recorder) WriteText(w io.Writer) error {
	if r == nil {
		return nil
	}
	families, err := r.registry.Gather()
	if err != nil {
		return fmt.Errorf("gathering metrics: %w", err)
	}
	enc := expfmt.NewEncoder(w, expfmt.NewFormat(expfmt.TypeTextPlain))
	for _, mf := range families {
		if err := enc.Encode(mf); err != nil {
			return fmt.Errorf("encoding %s: %w", mf.GetName(), err)
		}
	}
	return nil
}
