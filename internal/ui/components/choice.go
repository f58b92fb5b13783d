package components

import (
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/skilleval/internal/ui/theme"
)

// Choice is a single-select option list. Unlike a quiz widget it never
// reveals which option is correct.
type Choice struct {
	Options  []string
	Selected int
	Chosen   bool
}

// NewChoice creates a choice list with the cursor on the first option.
func NewChoice(options []string) Choice {
	return Choice{Options: options}
}

// Update moves the cursor with arrows, vim keys or an option letter, and
// marks the selection chosen on enter.
func (c Choice) Update(msg tea.Msg) (Choice, tea.Cmd) {
	if c.Chosen || len(c.Options) == 0 {
		return c, nil
	}
	kmsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return c, nil
	}

	key := kmsg.String()
	switch key {
	case "up", "k":
		if c.Selected > 0 {
			c.Selected--
		}
	case "down", "j":
		if c.Selected < len(c.Options)-1 {
			c.Selected++
		}
	case "enter":
		c.Chosen = true
	default:
		if len(key) == 1 {
			i := int(strings.ToLower(key)[0]) - 'a'
			if i >= 0 && i < len(c.Options) {
				c.Selected = i
			}
		}
	}
	return c, nil
}

// Value returns the selected option text.
func (c Choice) Value() string {
	if c.Selected < 0 || c.Selected >= len(c.Options) {
		return ""
	}
	return c.Options[c.Selected]
}

// View renders the options with the cursor row highlighted.
func (c Choice) View() string {
	var b strings.Builder
	for i, opt := range c.Options {
		prefix := "  "
		style := lipgloss.NewStyle().Foreground(theme.Text)
		if i == c.Selected {
			prefix = "▸ "
			style = style.Foreground(theme.Primary).Bold(true)
		}
		b.WriteString(style.Render(fmt.Sprintf("%s%c)  %s", prefix, 'A'+i, opt)))
		b.WriteString("\n")
	}
	return b.String()
}
