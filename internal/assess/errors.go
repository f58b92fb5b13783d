package assess

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidProfile marks a malformed requirement profile.
	ErrInvalidProfile = errors.New("invalid profile")

	// ErrLengthMismatch marks misaligned question and evaluation slices.
	ErrLengthMismatch = errors.New("length mismatch")

	// ErrUpstreamUnavailable marks a failed generator or evaluator call.
	ErrUpstreamUnavailable = errors.New("upstream unavailable")
)

// ProfileError describes which profile field failed validation.
type ProfileError struct {
	Field  string
	Reason string
}

func (e *ProfileError) Error() string {
	return fmt.Sprintf("invalid profile: %s %s", e.Field, e.Reason)
}

func (e *ProfileError) Unwrap() error { return ErrInvalidProfile }

// LengthMismatchError reports the sizes of the misaligned inputs.
type LengthMismatchError struct {
	Questions   int
	Evaluations int
}

func (e *LengthMismatchError) Error() string {
	return fmt.Sprintf("length mismatch: %d questions, %d evaluations", e.Questions, e.Evaluations)
}

func (e *LengthMismatchError) Unwrap() error { return ErrLengthMismatch }

// UpstreamError wraps a collaborator failure so callers can match it with
// errors.Is(err, ErrUpstreamUnavailable) while keeping the cause.
type UpstreamError struct {
	Op  string
	Err error
}

func (e *UpstreamError) Error() string {
	return fmt.Sprintf("%s: upstream unavailable: %v", e.Op, e.Err)
}

func (e *UpstreamError) Unwrap() []error { return []error{ErrUpstreamUnavailable, e.Err} }
