package components

import (
	"testing"

	tea "charm.land/bubbletea/v2"
)

func TestChoice_Navigation(t *testing.T) {
	c := NewChoice([]string{"a", "b", "c"})

	c, _ = c.Update(tea.KeyPressMsg{Code: tea.KeyUp})
	if c.Selected != 0 {
		t.Errorf("up at top: Selected = %d, want 0", c.Selected)
	}
	c, _ = c.Update(tea.KeyPressMsg{Code: 'j', Text: "j"})
	c, _ = c.Update(tea.KeyPressMsg{Code: tea.KeyDown})
	c, _ = c.Update(tea.KeyPressMsg{Code: tea.KeyDown})
	if c.Selected != 2 {
		t.Errorf("down past end: Selected = %d, want 2", c.Selected)
	}
	if c.Chosen {
		t.Error("navigation should not choose")
	}

	c, _ = c.Update(tea.KeyPressMsg{Code: tea.KeyEnter})
	if !c.Chosen || c.Value() != "c" {
		t.Errorf("Chosen = %v, Value = %q", c.Chosen, c.Value())
	}

	c, _ = c.Update(tea.KeyPressMsg{Code: tea.KeyUp})
	if c.Selected != 2 {
		t.Error("chosen list should ignore further keys")
	}
}

func TestChoice_Letter(t *testing.T) {
	c := NewChoice([]string{"a", "b", "c", "d"})
	c, _ = c.Update(tea.KeyPressMsg{Code: 'C', Text: "C", Mod: tea.ModShift})
	if c.Selected != 2 {
		t.Errorf("Selected = %d, want 2", c.Selected)
	}
	c, _ = c.Update(tea.KeyPressMsg{Code: 'z', Text: "z"})
	if c.Selected != 2 {
		t.Errorf("out of range letter moved cursor to %d", c.Selected)
	}
}

func TestChoice_Empty(t *testing.T) {
	c := NewChoice(nil)
	c, _ = c.Update(tea.KeyPressMsg{Code: tea.KeyEnter})
	if c.Chosen || c.Value() != "" {
		t.Errorf("empty choice: Chosen = %v, Value = %q", c.Chosen, c.Value())
	}
}
