package planner

import "github.com/abhisek/skilleval/internal/assess"

// MinutesPerSlot is the assessment time budgeted per question slot.
const MinutesPerSlot = 10

// DefaultDifficulty is assigned to every slot until generated content
// overrides it.
const DefaultDifficulty = assess.DifficultyMedium

// Slot is a planned placeholder for one question, before content exists.
type Slot struct {
	Index        int
	Type         assess.QuestionType
	Skill        string
	Difficulty   assess.Difficulty
	TimeEstimate int // minutes
	Points       int
}
