package components

import (
	"strings"

	"charm.land/bubbles/v2/textarea"
	tea "charm.land/bubbletea/v2"
)

// AnswerBox wraps bubbles/textarea for free-form and code answers.
type AnswerBox struct {
	Model textarea.Model
}

// NewAnswerBox creates a focused multi-line input.
func NewAnswerBox(placeholder string, width, height int) AnswerBox {
	ta := textarea.New()
	ta.Placeholder = placeholder
	ta.ShowLineNumbers = false
	ta.CharLimit = 0
	if width > 0 {
		ta.SetWidth(width)
	}
	if height > 0 {
		ta.SetHeight(height)
	}
	ta.Focus()
	return AnswerBox{Model: ta}
}

// Update forwards msg to the textarea.
func (a AnswerBox) Update(msg tea.Msg) (AnswerBox, tea.Cmd) {
	var cmd tea.Cmd
	a.Model, cmd = a.Model.Update(msg)
	return a, cmd
}

// View renders the textarea.
func (a AnswerBox) View() string {
	return a.Model.View()
}

// Value returns the text with surrounding whitespace trimmed.
func (a AnswerBox) Value() string {
	return strings.TrimSpace(a.Model.Value())
}
