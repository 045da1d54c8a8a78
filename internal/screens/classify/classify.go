// Package classify is the popup screen for trying the classifier on a
// title and channel.
package classify

import (
	"context"
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/focusflow/internal/classifier"
	"github.com/abhisek/focusflow/internal/pipeline"
	"github.com/abhisek/focusflow/internal/screen"
	"github.com/abhisek/focusflow/internal/ui/components"
	"github.com/abhisek/focusflow/internal/ui/layout"
	"github.com/abhisek/focusflow/internal/ui/theme"
)

// Decider classifies a request.
type Decider interface {
	Decide(ctx context.Context, req pipeline.Request) pipeline.Decision
}

// DecisionMsg carries a finished classification.
type DecisionMsg struct {
	Decision pipeline.Decision
}

const (
	fieldTitle = iota
	fieldChannel
	fieldCount
)

// ClassifyScreen has a title and a channel input; Enter classifies.
type ClassifyScreen struct {
	decider  Decider
	inputs   [fieldCount]components.TextInput
	focused  int
	decision *pipeline.Decision
}

var _ screen.Screen = (*ClassifyScreen)(nil)

// New creates the screen.
func New(d Decider) *ClassifyScreen {
	c := &ClassifyScreen{decider: d}
	c.inputs[fieldTitle] = components.NewTextInput("Title:  ", "Calculus Part 3: Integration", 0)
	c.inputs[fieldChannel] = components.NewTextInput("Channel:", "MIT OpenCourseWare", 0)
	c.inputs[fieldChannel].Blur()
	return c
}

func (c *ClassifyScreen) Init() tea.Cmd {
	return c.inputs[c.focused].Focus()
}

func (c *ClassifyScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case DecisionMsg:
		c.decision = &msg.Decision
		return c, nil

	case tea.KeyPressMsg:
		switch msg.String() {
		case "tab", "down", "up", "shift+tab":
			c.inputs[c.focused].Blur()
			c.focused = (c.focused + 1) % fieldCount
			return c, c.inputs[c.focused].Focus()
		case "enter":
			req := pipeline.Request{Request: classifier.Request{
				Title:   c.inputs[fieldTitle].Value(),
				Channel: c.inputs[fieldChannel].Value(),
			}}
			return c, func() tea.Msg {
				return DecisionMsg{Decision: c.decider.Decide(context.Background(), req)}
			}
		}
	}

	var cmd tea.Cmd
	c.inputs[c.focused], cmd = c.inputs[c.focused].Update(msg)
	return c, cmd
}

func (c *ClassifyScreen) View(width, height int) string {
	var b strings.Builder
	b.WriteString(theme.Title.Render("Classify a Video") + "\n\n")
	for _, in := range c.inputs {
		b.WriteString(in.View() + "\n")
	}

	if d := c.decision; d != nil {
		b.WriteString("\n")
		if d.Educational {
			b.WriteString(theme.Educational.Render("EDUCATIONAL"))
		} else {
			b.WriteString(theme.Distracting.Render("DISTRACTING"))
		}
		b.WriteString(theme.Hint.Render(fmt.Sprintf("  via %s", d.Source)) + "\n")
		if v := d.Verdict; v != nil {
			b.WriteString(theme.Label.Render("Confidence") + theme.Body.Render(fmt.Sprintf("%.2f", v.Confidence)) + "\n")
			b.WriteString(theme.Label.Render("Scores") +
				theme.Body.Render(fmt.Sprintf("%d educational / %d distracting", v.EducationalScore, v.DistractingScore)) + "\n")
			for _, r := range v.Reasoning {
				b.WriteString(theme.Hint.Render("  • "+r) + "\n")
			}
		}
		if fb := d.Fallback; fb != nil {
			b.WriteString(theme.Label.Render("Keywords") + theme.Body.Render(fmt.Sprintf("score %d", fb.Score)) + "\n")
		}
	}

	card := theme.Card.Width(min(width-4, 72)).Render(b.String())
	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, card)
}

func (c *ClassifyScreen) Title() string {
	return "Classify"
}

func (c *ClassifyScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "Tab", Description: "Switch field"},
		{Key: "Enter", Description: "Classify"},
		{Key: "Esc", Description: "Back"},
	}
}
