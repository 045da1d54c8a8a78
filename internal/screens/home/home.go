// Package home is the popup's main screen: focus status, focus time and
// navigation.
package home

import (
	"context"
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/focusflow/internal/router"
	"github.com/abhisek/focusflow/internal/screen"
	"github.com/abhisek/focusflow/internal/ui/components"
	"github.com/abhisek/focusflow/internal/ui/theme"
)

// Status is the state shown on the home screen.
type Status struct {
	FocusOn      bool
	TodayMinutes int
	WeekMinutes  int
	Sites        int
}

// Backend reads and changes focus state.
type Backend interface {
	Status(ctx context.Context) (Status, error)
	SetFocus(ctx context.Context, on bool) error
}

// StatusMsg carries a freshly loaded status. The app also uses it to update
// the header.
type StatusMsg struct {
	Status Status
	Err    error
}

// Menu positions.
const (
	itemToggle = iota
	itemSites
	itemClassify
	itemQuit
)

// HomeScreen is the popup's main screen.
type HomeScreen struct {
	backend Backend
	menu    components.Menu
	status  Status
	err     error
	loaded  bool
}

var _ screen.Screen = (*HomeScreen)(nil)

// New creates the home screen. sites and classify build the screens behind
// the corresponding menu entries.
func New(backend Backend, sites, classify func() screen.Screen) *HomeScreen {
	h := &HomeScreen{backend: backend}
	push := func(build func() screen.Screen) func() tea.Cmd {
		return func() tea.Cmd {
			return func() tea.Msg { return router.PushScreenMsg{Screen: build()} }
		}
	}
	h.menu = components.NewMenu([]components.MenuItem{
		itemToggle:   {Label: "TURN FOCUS ON", Action: h.toggle},
		itemSites:    {Label: "BLOCKED SITES", Action: push(sites)},
		itemClassify: {Label: "CLASSIFY VIDEO", Action: push(classify)},
		itemQuit:     {Label: "QUIT", Action: func() tea.Cmd { return tea.Quit }},
	})
	return h
}

// Init loads the status; it runs again whenever the screen is revealed.
func (h *HomeScreen) Init() tea.Cmd {
	return h.load
}

func (h *HomeScreen) load() tea.Msg {
	st, err := h.backend.Status(context.Background())
	return StatusMsg{Status: st, Err: err}
}

func (h *HomeScreen) toggle() tea.Cmd {
	prev := h.status
	return func() tea.Msg {
		if err := h.backend.SetFocus(context.Background(), !prev.FocusOn); err != nil {
			return StatusMsg{Status: prev, Err: err}
		}
		return h.load()
	}
}

func (h *HomeScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case StatusMsg:
		h.status, h.err, h.loaded = msg.Status, msg.Err, true
		label := "TURN FOCUS ON"
		if h.status.FocusOn {
			label = "TURN FOCUS OFF"
		}
		h.menu.SetLabel(itemToggle, label)
		return h, nil

	case tea.KeyPressMsg:
		if k := msg.String(); k == "f" || k == "space" {
			return h, h.toggle()
		}
	}

	var cmd tea.Cmd
	h.menu, cmd = h.menu.Update(msg)
	return h, cmd
}

func (h *HomeScreen) View(width, height int) string {
	var b strings.Builder

	status := theme.FocusOff.Render("Off")
	if h.status.FocusOn {
		status = theme.FocusActive.Render("Active")
	}
	if !h.loaded {
		status = theme.Hint.Render("loading...")
	}

	b.WriteString(theme.Title.Render("Focus Mode") + "\n\n")
	b.WriteString(theme.Label.Render("Status") + status + "\n")
	b.WriteString(theme.Label.Render("Today") + theme.Body.Render(fmt.Sprintf("%d min", h.status.TodayMinutes)) + "\n")
	b.WriteString(theme.Label.Render("This week") + theme.Body.Render(fmt.Sprintf("%d min", h.status.WeekMinutes)) + "\n")
	b.WriteString(theme.Label.Render("Blocking") + theme.Body.Render(fmt.Sprintf("%d sites", h.status.Sites)) + "\n")
	if h.err != nil {
		b.WriteString("\n" + theme.ErrorText.Render(h.err.Error()) + "\n")
	}

	card := theme.Card.Render(b.String() + "\n" + h.menu.View())
	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, card)
}

func (h *HomeScreen) Title() string {
	return "Home"
}
