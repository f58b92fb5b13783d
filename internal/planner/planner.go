// Package planner maps a requirement profile to a deterministic list of
// question slots.
package planner

import (
	"github.com/abhisek/skilleval/internal/assess"
	"github.com/abhisek/skilleval/internal/blueprint"
)

// SlotCount returns the number of slots for a test of the given length:
// one slot per started block of MinutesPerSlot minutes.
func SlotCount(duration int) int {
	if duration <= 0 {
		return 0
	}
	return (duration + MinutesPerSlot - 1) / MinutesPerSlot
}

// Plan computes the ordered slots for a profile. Types and skills are
// assigned round-robin so every declared type and skill appears once before
// any repeats.
//
// An empty tech stack or type list is a precondition violation and fails
// with assess.ErrInvalidProfile. Other profile fields are not re-validated
// here.
func Plan(p *blueprint.Profile) ([]Slot, error) {
	if len(p.TechStack) == 0 {
		return nil, &assess.ProfileError{Field: "techStack", Reason: "must contain at least one technology"}
	}
	if len(p.QuestionTypes) == 0 {
		return nil, &assess.ProfileError{Field: "questionTypes", Reason: "must contain at least one question type"}
	}

	n := SlotCount(p.Duration)
	slots := make([]Slot, n)
	for i := range n {
		qt := p.QuestionTypes[i%len(p.QuestionTypes)]
		slots[i] = Slot{
			Index:        i,
			Type:         qt,
			Skill:        p.TechStack[i%len(p.TechStack)],
			Difficulty:   DefaultDifficulty,
			TimeEstimate: qt.TimeEstimate(),
			Points:       DefaultDifficulty.Points(),
		}
	}
	return slots, nil
}
