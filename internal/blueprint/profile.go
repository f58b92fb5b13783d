// Package blueprint defines the requirement profile an assessment is built
// from, its validation rules, and the built-in template catalog.
package blueprint

import (
	"strings"
	"time"

	"github.com/abhisek/skilleval/internal/assess"
)

// Level is the candidate's experience level.
type Level string

const (
	LevelJunior Level = "junior"
	LevelMid    Level = "mid"
	LevelSenior Level = "senior"
)

// Duration bounds in minutes.
const (
	MinDuration = 15
	MaxDuration = 180
)

// Profile describes the desired assessment. Immutable once created.
type Profile struct {
	ID            string                `json:"id" yaml:"-"`
	UserID        string                `json:"userId" yaml:"-"`
	Role          string                `json:"role" yaml:"role"`
	Level         Level                 `json:"experienceLevel" yaml:"experience_level"`
	TechStack     []string              `json:"techStack" yaml:"tech_stack"`
	QuestionTypes []assess.QuestionType `json:"questionTypes" yaml:"question_types"`
	Duration      int                   `json:"duration" yaml:"duration"` // minutes
	Refinement    string                `json:"naturalLanguageRefinement,omitempty" yaml:"refinement"`
	CreatedAt     time.Time             `json:"createdAt" yaml:"-"`
}

// Validate checks every field and returns the first violation as a
// *assess.ProfileError.
func (p *Profile) Validate() error {
	if strings.TrimSpace(p.Role) == "" {
		return &assess.ProfileError{Field: "role", Reason: "is required"}
	}
	switch p.Level {
	case LevelJunior, LevelMid, LevelSenior:
	default:
		return &assess.ProfileError{Field: "experienceLevel", Reason: "must be junior, mid or senior"}
	}
	if len(p.TechStack) == 0 {
		return &assess.ProfileError{Field: "techStack", Reason: "must contain at least one technology"}
	}
	for _, s := range p.TechStack {
		if strings.TrimSpace(s) == "" {
			return &assess.ProfileError{Field: "techStack", Reason: "contains a blank entry"}
		}
	}
	if len(p.QuestionTypes) == 0 {
		return &assess.ProfileError{Field: "questionTypes", Reason: "must contain at least one question type"}
	}
	for _, t := range p.QuestionTypes {
		if !t.Valid() {
			return &assess.ProfileError{Field: "questionTypes", Reason: "contains unknown type " + string(t)}
		}
	}
	if p.Duration < MinDuration || p.Duration > MaxDuration {
		return &assess.ProfileError{Field: "duration", Reason: "must be between 15 and 180 minutes"}
	}
	return nil
}

// ParseQuestionTypes converts raw tags into question types without
// validating them.
func ParseQuestionTypes(raw []string) []assess.QuestionType {
	out := make([]assess.QuestionType, 0, len(raw))
	for _, r := range raw {
		out = append(out, assess.QuestionType(strings.ToLower(strings.TrimSpace(r))))
	}
	return out
}
