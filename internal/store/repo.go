package store

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/abhisek/skilleval/internal/assess"
	"github.com/abhisek/skilleval/internal/blueprint"
)

// ErrNotFound is returned (wrapped in *NotFoundError) when a lookup by id
// matches nothing.
var ErrNotFound = errors.New("not found")

// ErrAttemptCompleted is returned by AttemptRepo.Update when the attempt
// was already completed by an earlier update.
var ErrAttemptCompleted = errors.New("attempt already completed")

// NotFoundError names the kind and id of a missing record.
type NotFoundError struct {
	Kind string
	ID   string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s %q not found", e.Kind, e.ID)
}

func (e *NotFoundError) Unwrap() error { return ErrNotFound }

// ProfileRepo stores requirement profiles.
type ProfileRepo interface {
	// Create stores a new profile. The ID must be set.
	Create(ctx context.Context, p *blueprint.Profile) error

	// Get returns the profile with the given id.
	Get(ctx context.Context, id string) (*blueprint.Profile, error)

	// ListByUser returns a user's profiles, newest first.
	ListByUser(ctx context.Context, userID string) ([]blueprint.Profile, error)

	// List returns all profiles, newest first.
	List(ctx context.Context) ([]blueprint.Profile, error)
}

// TestRepo stores generated tests.
type TestRepo interface {
	Create(ctx context.Context, t *assess.Test) error
	Get(ctx context.Context, id string) (*assess.Test, error)

	// GetByProfile returns the most recent test generated for a profile.
	GetByProfile(ctx context.Context, profileID string) (*assess.Test, error)
}

// AttemptRepo stores attempts.
type AttemptRepo interface {
	Create(ctx context.Context, a *assess.Attempt) error
	Get(ctx context.Context, id string) (*assess.Attempt, error)

	// Update overwrites the mutable fields of an open attempt: answers,
	// end time, score, evaluation and the completion flag. A completed
	// attempt is never modified; Update returns ErrAttemptCompleted.
	Update(ctx context.Context, a *assess.Attempt) error

	// ListByUser returns a user's attempts ordered by start time.
	ListByUser(ctx context.Context, userID string) ([]assess.Attempt, error)

	// List returns all attempts ordered by start time.
	List(ctx context.Context) ([]assess.Attempt, error)
}

// QueryOpts configures event queries with filtering and pagination.
type QueryOpts struct {
	Limit   int       // max results (0 = unlimited)
	Purpose string    // exact purpose match ("" = any)
	From    time.Time // timestamp >= From
	To      time.Time // timestamp <= To
}

// LLMRequestEventData captures the data for a single LLM request event.
type LLMRequestEventData struct {
	Provider     string
	Model        string
	Purpose      string
	InputTokens  int
	OutputTokens int
	LatencyMs    int64
	Success      bool
	ErrorMessage string
	RequestBody  string
	ResponseBody string
}

// LLMRequestEventRecord is a stored LLM request event.
type LLMRequestEventRecord struct {
	ID        int
	Timestamp time.Time
	LLMRequestEventData
}

// LLMUsageStats aggregates LLM calls for one purpose.
type LLMUsageStats struct {
	Purpose      string
	Calls        int
	InputTokens  int
	OutputTokens int
	AvgLatencyMs int64
}

// LLMModelUsage aggregates token counts for one model.
type LLMModelUsage struct {
	Model        string
	Calls        int
	InputTokens  int
	OutputTokens int
}

// EventRepo provides append and query access to LLM request events.
type EventRepo interface {
	// AppendLLMRequest records an LLM API call event.
	AppendLLMRequest(ctx context.Context, data LLMRequestEventData) error

	// QueryLLMEvents returns events newest first.
	QueryLLMEvents(ctx context.Context, opts QueryOpts) ([]LLMRequestEventRecord, error)

	// GetLLMEvent returns a single event by id.
	GetLLMEvent(ctx context.Context, id int) (*LLMRequestEventRecord, error)

	// LLMUsageByPurpose aggregates calls and tokens per purpose.
	LLMUsageByPurpose(ctx context.Context) ([]LLMUsageStats, error)

	// LLMUsageByModel aggregates calls and tokens per model.
	LLMUsageByModel(ctx context.Context) ([]LLMModelUsage, error)
}
