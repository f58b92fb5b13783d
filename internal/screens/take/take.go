// Package take is the interactive screen used by `attempt take`: it shows
// one question at a time and collects the candidate's answers.
package take

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/skilleval/internal/assess"
	"github.com/abhisek/skilleval/internal/reportview"
	"github.com/abhisek/skilleval/internal/ui/components"
	"github.com/abhisek/skilleval/internal/ui/theme"
)

// ErrAborted is returned by Run when the candidate quits before the last
// question.
var ErrAborted = errors.New("attempt aborted")

const (
	maxBoxWidth = 80
	boxHeight   = 8
)

// Model collects answers for a list of questions. Multiple-choice
// questions use a Choice list; everything else uses an AnswerBox.
type Model struct {
	questions []assess.Question
	index     int
	answers   []assess.Answer

	choice components.Choice
	box    components.AnswerBox
	width  int

	now     func() time.Time
	started time.Time

	done    bool
	aborted bool
}

// New creates a screen positioned on the first question. now stamps the
// time spent per question.
func New(questions []assess.Question, now func() time.Time) Model {
	if now == nil {
		now = time.Now
	}
	m := Model{
		questions: questions,
		answers:   make([]assess.Answer, 0, len(questions)),
		width:     maxBoxWidth,
		now:       now,
	}
	if len(questions) == 0 {
		m.done = true
		return m
	}
	m.reset()
	return m
}

func (m *Model) reset() {
	q := m.questions[m.index]
	if q.Type == assess.TypeMCQ {
		m.choice = components.NewChoice(q.Options)
	} else {
		m.box = components.NewAnswerBox(placeholder(q.Type), m.boxWidth(), boxHeight)
	}
	m.started = m.now()
}

func placeholder(t assess.QuestionType) string {
	if t == assess.TypeCoding {
		return "Write your solution..."
	}
	return "Type your answer..."
}

func (m Model) boxWidth() int {
	w := m.width - 4
	if w > maxBoxWidth {
		w = maxBoxWidth
	}
	if w < 20 {
		w = 20
	}
	return w
}

func (m Model) current() assess.Question {
	return m.questions[m.index]
}

func (m Model) Init() tea.Cmd {
	if m.done {
		return tea.Quit
	}
	return nil
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if m.done {
		return m, nil
	}

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		if m.current().Type != assess.TypeMCQ {
			m.box.Model.SetWidth(m.boxWidth())
		}
		return m, nil

	case tea.KeyPressMsg:
		switch msg.String() {
		case "ctrl+c":
			m.aborted = true
			m.done = true
			return m, tea.Quit
		case "tab":
			return m.advance()
		case "ctrl+s":
			if m.current().Type != assess.TypeMCQ {
				m.record(m.box.Value())
				return m.advance()
			}
		}
	}

	var cmd tea.Cmd
	if m.current().Type == assess.TypeMCQ {
		m.choice, cmd = m.choice.Update(msg)
		if m.choice.Chosen {
			m.record(m.choice.Value())
			return m.advance()
		}
		return m, cmd
	}
	m.box, cmd = m.box.Update(msg)
	return m, cmd
}

// record stores text for the current question; blank text is not an answer.
func (m *Model) record(text string) {
	if strings.TrimSpace(text) == "" {
		return
	}
	m.answers = append(m.answers, assess.Answer{
		QuestionID: m.current().ID,
		Answer:     text,
		TimeSpent:  int(m.now().Sub(m.started).Seconds()),
	})
}

func (m Model) advance() (tea.Model, tea.Cmd) {
	m.index++
	if m.index >= len(m.questions) {
		m.done = true
		return m, tea.Quit
	}
	m.reset()
	return m, nil
}

func (m Model) View() tea.View {
	return tea.NewView(m.render())
}

func (m Model) render() string {
	if m.done {
		return ""
	}

	q := m.current()
	header := q
	header.Options = nil

	var b strings.Builder
	b.WriteString(reportview.Question(m.index, len(m.questions), header))
	b.WriteString("\n")
	if q.Type == assess.TypeMCQ {
		b.WriteString(m.choice.View())
		b.WriteString("\n")
		b.WriteString(theme.Hint.Render("↑↓/letter select · enter answer · tab skip · ctrl+c quit"))
	} else {
		b.WriteString(m.box.View())
		b.WriteString("\n\n")
		b.WriteString(theme.Hint.Render("ctrl+s submit · tab skip · ctrl+c quit"))
	}
	b.WriteString("\n")
	return b.String()
}

// Answers returns the answers recorded so far, in question order.
func (m Model) Answers() []assess.Answer {
	return m.answers
}

// Done reports whether every question has been answered or skipped.
func (m Model) Done() bool {
	return m.done && !m.aborted
}

// Aborted reports whether the candidate quit early.
func (m Model) Aborted() bool {
	return m.aborted
}

// Run shows the questions on the terminal and returns the collected answers.
func Run(ctx context.Context, questions []assess.Question) ([]assess.Answer, error) {
	p := tea.NewProgram(New(questions, time.Now), tea.WithContext(ctx))
	final, err := p.Run()
	if err != nil {
		return nil, fmt.Errorf("run question screen: %w", err)
	}
	m, ok := final.(Model)
	if !ok {
		return nil, fmt.Errorf("unexpected model %T", final)
	}
	if m.Aborted() {
		return nil, ErrAborted
	}
	return m.Answers(), nil
}
