// Package sites is the popup screen for editing the blocklist.
package sites

import (
	"context"
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/focusflow/internal/screen"
	"github.com/abhisek/focusflow/internal/ui/components"
	"github.com/abhisek/focusflow/internal/ui/layout"
	"github.com/abhisek/focusflow/internal/ui/theme"
)

// Backend edits the stored blocklist. Each call returns the list after
// the change.
type Backend interface {
	Sites(ctx context.Context) ([]string, error)
	AddSite(ctx context.Context, site string) ([]string, error)
	RemoveSite(ctx context.Context, site string) ([]string, error)
}

// SitesMsg carries the blocklist after a load or change.
type SitesMsg struct {
	Sites []string
	Err   error
}

// SitesScreen lists blocked sites. "a" opens the add input, "d" removes
// the selected site.
type SitesScreen struct {
	backend  Backend
	sites    []string
	selected int
	adding   bool
	input    components.TextInput
	err      error
}

var _ screen.Screen = (*SitesScreen)(nil)

// New creates the screen.
func New(backend Backend) *SitesScreen {
	return &SitesScreen{backend: backend}
}

func (s *SitesScreen) Init() tea.Cmd {
	return func() tea.Msg {
		sites, err := s.backend.Sites(context.Background())
		return SitesMsg{Sites: sites, Err: err}
	}
}

func (s *SitesScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case SitesMsg:
		s.err = msg.Err
		if msg.Err == nil {
			s.sites = msg.Sites
		}
		if s.selected >= len(s.sites) {
			s.selected = max(len(s.sites)-1, 0)
		}
		return s, nil

	case tea.KeyPressMsg:
		if s.adding {
			return s.updateAdding(msg)
		}
		switch msg.String() {
		case "up", "k":
			if s.selected > 0 {
				s.selected--
			}
		case "down", "j":
			if s.selected < len(s.sites)-1 {
				s.selected++
			}
		case "a":
			s.adding = true
			s.err = nil
			s.input = components.NewTextInput("Site:", "example.com", 253)
			return s, s.input.Focus()
		case "d", "delete":
			if len(s.sites) == 0 {
				return s, nil
			}
			site := s.sites[s.selected]
			return s, func() tea.Msg {
				sites, err := s.backend.RemoveSite(context.Background(), site)
				return SitesMsg{Sites: sites, Err: err}
			}
		}
		return s, nil
	}

	if s.adding {
		var cmd tea.Cmd
		s.input, cmd = s.input.Update(msg)
		return s, cmd
	}
	return s, nil
}

func (s *SitesScreen) updateAdding(msg tea.KeyPressMsg) (screen.Screen, tea.Cmd) {
	switch msg.String() {
	case "enter":
		site := strings.TrimSpace(s.input.Value())
		s.adding = false
		if site == "" {
			return s, nil
		}
		return s, func() tea.Msg {
			sites, err := s.backend.AddSite(context.Background(), site)
			return SitesMsg{Sites: sites, Err: err}
		}
	case "esc":
		s.adding = false
		return s, nil
	}
	var cmd tea.Cmd
	s.input, cmd = s.input.Update(msg)
	return s, cmd
}

// CapturesInput reports whether the add input is open.
func (s *SitesScreen) CapturesInput() bool {
	return s.adding
}

func (s *SitesScreen) View(width, height int) string {
	var b strings.Builder
	b.WriteString(theme.Title.Render("Blocked Sites") + "\n\n")

	if len(s.sites) == 0 {
		b.WriteString(theme.Hint.Render("No sites blocked.") + "\n")
	}
	for i, site := range s.sites {
		if i == s.selected && !s.adding {
			b.WriteString(theme.Selected.Render(fmt.Sprintf("  ▸ %s", site)))
		} else {
			b.WriteString(theme.Unselected.Render(fmt.Sprintf("    %s", site)))
		}
		b.WriteString("\n")
	}

	if s.adding {
		b.WriteString("\n" + s.input.View() + "\n")
	}
	if s.err != nil {
		b.WriteString("\n" + theme.ErrorText.Render(s.err.Error()) + "\n")
	}

	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, theme.Card.Render(b.String()))
}

func (s *SitesScreen) Title() string {
	return "Blocked Sites"
}

func (s *SitesScreen) KeyHints() []layout.KeyHint {
	if s.adding {
		return []layout.KeyHint{
			{Key: "Enter", Description: "Add"},
			{Key: "Esc", Description: "Cancel"},
		}
	}
	return []layout.KeyHint{
		{Key: "↑↓", Description: "Navigate"},
		{Key: "a", Description: "Add"},
		{Key: "d", Description: "Remove"},
		{Key: "Esc", Description: "Back"},
	}
}
