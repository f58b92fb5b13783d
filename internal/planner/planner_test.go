package planner

import (
	"errors"
	"testing"

	"github.com/abhisek/skilleval/internal/assess"
	"github.com/abhisek/skilleval/internal/blueprint"
)

func profile(duration int, stack []string, types ...assess.QuestionType) *blueprint.Profile {
	return &blueprint.Profile{
		Role:          "Backend Developer",
		Level:         blueprint.LevelMid,
		TechStack:     stack,
		QuestionTypes: types,
		Duration:      duration,
	}
}

func TestSlotCount_AllValidDurations(t *testing.T) {
	for d := blueprint.MinDuration; d <= blueprint.MaxDuration; d++ {
		got := SlotCount(d)
		want := (d + 9) / 10
		if got != want {
			t.Fatalf("SlotCount(%d) = %d, want %d", d, got, want)
		}
		if got < 1 {
			t.Fatalf("SlotCount(%d) = %d, want >= 1", d, got)
		}
	}
}

func TestSlotCount_Examples(t *testing.T) {
	tests := []struct {
		duration int
		want     int
	}{
		{15, 2},
		{30, 3},
		{45, 5},
		{60, 6},
		{61, 7},
		{180, 18},
	}
	for _, tt := range tests {
		if got := SlotCount(tt.duration); got != tt.want {
			t.Errorf("SlotCount(%d) = %d, want %d", tt.duration, got, tt.want)
		}
	}
}

func TestPlan_RoundRobinSkills(t *testing.T) {
	slots, err := Plan(profile(30, []string{"A", "B", "C"}, assess.TypeMCQ))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(slots) != 3 {
		t.Fatalf("len = %d, want 3", len(slots))
	}
	for i, want := range []string{"A", "B", "C"} {
		if slots[i].Skill != want {
			t.Errorf("slot %d skill = %q, want %q", i, slots[i].Skill, want)
		}
		if slots[i].Index != i {
			t.Errorf("slot %d index = %d", i, slots[i].Index)
		}
	}
}

func TestPlan_RoundRobinTypes(t *testing.T) {
	slots, err := Plan(profile(50, []string{"Go"}, assess.TypeMCQ, assess.TypeCoding))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := []assess.QuestionType{assess.TypeMCQ, assess.TypeCoding, assess.TypeMCQ, assess.TypeCoding, assess.TypeMCQ}
	if len(slots) != len(want) {
		t.Fatalf("len = %d, want %d", len(slots), len(want))
	}
	for i, qt := range want {
		if slots[i].Type != qt {
			t.Errorf("slot %d type = %q, want %q", i, slots[i].Type, qt)
		}
	}
}

func TestPlan_EveryTypeAndSkillCovered(t *testing.T) {
	stack := []string{"React", "Node.js", "TypeScript", "PostgreSQL"}
	types := []assess.QuestionType{assess.TypeMCQ, assess.TypeCoding, assess.TypeTheory}
	slots, err := Plan(profile(60, stack, types...))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	skills := map[string]bool{}
	seenTypes := map[assess.QuestionType]bool{}
	for _, s := range slots {
		skills[s.Skill] = true
		seenTypes[s.Type] = true
	}
	if len(skills) != len(stack) {
		t.Errorf("covered %d skills, want %d", len(skills), len(stack))
	}
	if len(seenTypes) != len(types) {
		t.Errorf("covered %d types, want %d", len(seenTypes), len(types))
	}
}

func TestPlan_SlotDefaults(t *testing.T) {
	slots, err := Plan(profile(40, []string{"Go"},
		assess.TypeMCQ, assess.TypeCoding, assess.TypeTheory, assess.TypeScenario))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	wantTime := []int{3, 15, 8, 12}
	for i, s := range slots {
		if s.Difficulty != assess.DifficultyMedium {
			t.Errorf("slot %d difficulty = %q, want medium", i, s.Difficulty)
		}
		if s.Points != 20 {
			t.Errorf("slot %d points = %d, want 20", i, s.Points)
		}
		if s.TimeEstimate != wantTime[i] {
			t.Errorf("slot %d time = %d, want %d", i, s.TimeEstimate, wantTime[i])
		}
	}
}

func TestPlan_EmptyListsRejected(t *testing.T) {
	if _, err := Plan(profile(30, nil, assess.TypeMCQ)); !errors.Is(err, assess.ErrInvalidProfile) {
		t.Errorf("empty stack: got %v, want ErrInvalidProfile", err)
	}
	if _, err := Plan(profile(30, []string{"Go"})); !errors.Is(err, assess.ErrInvalidProfile) {
		t.Errorf("empty types: got %v, want ErrInvalidProfile", err)
	}
}

func TestPlan_Deterministic(t *testing.T) {
	p := profile(90, []string{"A", "B"}, assess.TypeTheory, assess.TypeScenario, assess.TypeMCQ)
	a, _ := Plan(p)
	b, _ := Plan(p)
	if len(a) != len(b) {
		t.Fatalf("lengths differ: %d vs %d", len(a), len(b))
	}
	for i := range a {
		if a[i] != b[i] {
			t.Fatalf("slot %d differs: %+v vs %+v", i, a[i], b[i])
		}
	}
}
