// Package app is the popup: a Bubble Tea program over the screen router.
package app

import (
	"fmt"
	"os"
	"time"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/focusflow/internal/focus"
	"github.com/abhisek/focusflow/internal/pipeline"
	"github.com/abhisek/focusflow/internal/router"
	"github.com/abhisek/focusflow/internal/screen"
	"github.com/abhisek/focusflow/internal/screens/classify"
	"github.com/abhisek/focusflow/internal/screens/home"
	"github.com/abhisek/focusflow/internal/screens/sites"
	"github.com/abhisek/focusflow/internal/store"
	"github.com/abhisek/focusflow/internal/ui/layout"
)

// Options holds dependencies for the popup.
type Options struct {
	Settings  store.SettingsRepo
	Analytics store.AnalyticsRepo
	// Controller applies focus changes. It should not carry an analytics
	// store: accounting belongs to the tracker.
	Controller *focus.Controller
	Pipeline   *pipeline.Pipeline
}

// AppModel is the root Bubble Tea model.
type AppModel struct {
	router *router.Router
	status layout.Status
	width  int
	height int
}

func newAppModel(opts Options) AppModel {
	b := &backend{
		settings:   opts.Settings,
		analytics:  opts.Analytics,
		controller: opts.Controller,
		now:        time.Now,
	}
	homeScreen := home.New(b,
		func() screen.Screen { return sites.New(b) },
		func() screen.Screen { return classify.New(opts.Pipeline) },
	)
	return AppModel{router: router.New(homeScreen)}
}

func (m AppModel) Init() tea.Cmd {
	return m.router.Active().Init()
}

func (m AppModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case home.StatusMsg:
		if msg.Err == nil {
			m.status = layout.Status{FocusOn: msg.Status.FocusOn, TodayMinutes: msg.Status.TodayMinutes}
		}

	case tea.KeyPressMsg:
		switch msg.String() {
		case "ctrl+c":
			return m, tea.Quit
		case "esc":
			if c, ok := m.router.Active().(screen.InputCapturer); ok && c.CapturesInput() {
				break
			}
			if m.router.Depth() > 1 {
				return m, func() tea.Msg { return router.PopScreenMsg{} }
			}
			return m, nil
		}
	}

	cmd := m.router.Update(msg)
	return m, cmd
}

func (m AppModel) View() tea.View {
	v := tea.NewView("")
	v.AltScreen = true

	if m.width == 0 || m.height == 0 {
		return v
	}

	if layout.IsTooSmall(m.width, m.height) {
		v.SetContent(layout.RenderMinSizeMessage(m.width, m.height))
		return v
	}

	active := m.router.Active()
	header := layout.RenderHeader(m.router.Breadcrumb(), m.status, m.width)
	footer := layout.RenderFooter(m.hints(active), m.width)

	contentHeight := max(m.height-lipgloss.Height(header)-lipgloss.Height(footer), 0)
	content := m.router.View(m.width, contentHeight)

	v.SetContent(layout.RenderFrame(header, content, footer, m.width, m.height))
	return v
}

func (m AppModel) hints(active screen.Screen) []layout.KeyHint {
	if p, ok := active.(screen.KeyHintProvider); ok {
		return append(p.KeyHints(), layout.KeyHint{Key: "Ctrl+C", Description: "Quit"})
	}
	if m.router.Depth() > 1 {
		return []layout.KeyHint{
			{Key: "Esc", Description: "Back"},
			{Key: "Ctrl+C", Description: "Quit"},
		}
	}
	return []layout.KeyHint{
		{Key: "↑↓", Description: "Navigate"},
		{Key: "Enter", Description: "Select"},
		{Key: "Ctrl+C", Description: "Quit"},
	}
}

// Run starts the popup.
func Run(opts Options) error {
	p := tea.NewProgram(newAppModel(opts))
	_, err := p.Run()
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error running program:", err)
		return err
	}
	return nil
}
