// Package assess holds the domain types shared by the planning, generation,
// scoring and reporting packages.
package assess

import "time"

// QuestionType is the answer style of a question.
type QuestionType string

const (
	TypeMCQ      QuestionType = "mcq"
	TypeCoding   QuestionType = "coding"
	TypeTheory   QuestionType = "theory"
	TypeScenario QuestionType = "scenario"
)

// Valid reports whether t is one of the known question types.
func (t QuestionType) Valid() bool {
	switch t {
	case TypeMCQ, TypeCoding, TypeTheory, TypeScenario:
		return true
	}
	return false
}

// Difficulty is the difficulty band of a question. It determines points.
type Difficulty string

const (
	DifficultyEasy   Difficulty = "easy"
	DifficultyMedium Difficulty = "medium"
	DifficultyHard   Difficulty = "hard"
)

// Valid reports whether d is one of the known difficulties.
func (d Difficulty) Valid() bool {
	switch d {
	case DifficultyEasy, DifficultyMedium, DifficultyHard:
		return true
	}
	return false
}

// Points returns the maximum score for a question of difficulty d.
// Unknown difficulties are worth as much as medium.
func (d Difficulty) Points() int {
	switch d {
	case DifficultyEasy:
		return 10
	case DifficultyHard:
		return 30
	default:
		return 20
	}
}

// TimeEstimate returns the expected minutes spent on a question of type t.
func (t QuestionType) TimeEstimate() int {
	switch t {
	case TypeMCQ:
		return 3
	case TypeCoding:
		return 15
	case TypeTheory:
		return 8
	case TypeScenario:
		return 12
	default:
		return 5
	}
}

// Question is a generated question. Immutable after creation.
type Question struct {
	ID             string       `json:"id"`
	Type           QuestionType `json:"type"`
	Title          string       `json:"title"`
	Content        string       `json:"content"`
	Options        []string     `json:"options,omitempty"`
	ExpectedAnswer string       `json:"expectedAnswer,omitempty"`
	Explanation    string       `json:"explanation,omitempty"`
	Difficulty     Difficulty   `json:"difficulty"`
	Skills         []string     `json:"skills"`
	TimeEstimate   int          `json:"timeEstimate"` // minutes
	Points         int          `json:"points"`
}

// TestMetadata summarizes a generated test.
type TestMetadata struct {
	TotalQuestions         int            `json:"totalQuestions"`
	TotalTime              int            `json:"totalTime"` // minutes
	DifficultyDistribution map[string]int `json:"difficultyDistribution"`
	SkillDistribution      map[string]int `json:"skillDistribution"`
}

// Test is the ordered question set generated for a profile.
type Test struct {
	ID        string       `json:"id"`
	ProfileID string       `json:"blueprintId"`
	Questions []Question   `json:"questions"`
	Metadata  TestMetadata `json:"metadata"`
	CreatedAt time.Time    `json:"createdAt"`
}

// Answer is a user's response to one question.
type Answer struct {
	QuestionID string `json:"questionId"`
	Answer     string `json:"answer"`
	TimeSpent  int    `json:"timeSpent"` // seconds
}

// Evaluation is the scored result for one question.
// Invariant: 0 <= Score <= MaxScore.
type Evaluation struct {
	QuestionID string `json:"questionId"`
	Score      int    `json:"score"`
	MaxScore   int    `json:"maxScore"`
	Feedback   string `json:"feedback"`
}

// SkillAggregate is the accumulated score for one skill tag.
type SkillAggregate struct {
	Skill      string `json:"skill"`
	TotalScore int    `json:"totalScore"`
	TotalMax   int    `json:"maxScore"`
	Questions  int    `json:"questions"`
	Percentage int    `json:"score"`
	Rating     string `json:"rating"`
	Feedback   string `json:"feedback"`

	// ZeroMax is set when every question tagged with this skill was worth
	// zero points. Percentage is then 0.
	ZeroMax bool `json:"zeroMax,omitempty"`
}

// Recommendation is a suggested next step for the candidate.
type Recommendation struct {
	Title       string   `json:"title"`
	Description string   `json:"description"`
	Resources   []string `json:"resources,omitempty"`
}

// EvaluationResult is the final report of a completed attempt.
type EvaluationResult struct {
	OverallScore     int                       `json:"overallScore"`
	SkillBreakdown   map[string]SkillAggregate `json:"skillBreakdown"`
	Strengths        []string                  `json:"strengths"`
	Weaknesses       []string                  `json:"weaknesses"`
	Recommendations  []Recommendation          `json:"recommendations"`
	DetailedFeedback string                    `json:"detailedFeedback"`
	Evaluations      []Evaluation              `json:"evaluations,omitempty"`
}

// Attempt is one user's run through a test.
type Attempt struct {
	ID         string            `json:"id"`
	TestID     string            `json:"testId"`
	UserID     string            `json:"userId"`
	Answers    []Answer          `json:"answers"`
	StartTime  time.Time         `json:"startTime"`
	EndTime    *time.Time        `json:"endTime"`
	Score      *int              `json:"score"`
	Evaluation *EvaluationResult `json:"evaluation"`
	Completed  bool              `json:"isCompleted"`
}
