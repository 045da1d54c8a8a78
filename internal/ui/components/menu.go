// Package components holds small reusable popup widgets.
package components

import (
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/focusflow/internal/ui/theme"
)

// MenuItem is one entry of a Menu.
type MenuItem struct {
	Label  string
	Action func() tea.Cmd
}

// Menu is a vertical list of actions. Navigation wraps around, and the
// digits 1-9 activate the matching entry directly.
type Menu struct {
	Items    []MenuItem
	Selected int
}

func NewMenu(items []MenuItem) Menu {
	return Menu{Items: items}
}

// SetLabel changes the label of item i.
func (m *Menu) SetLabel(i int, label string) {
	if i >= 0 && i < len(m.Items) {
		m.Items[i].Label = label
	}
}

func (m Menu) Update(msg tea.Msg) (Menu, tea.Cmd) {
	kmsg, ok := msg.(tea.KeyPressMsg)
	if !ok || len(m.Items) == 0 {
		return m, nil
	}

	n := len(m.Items)
	switch key := kmsg.String(); key {
	case "up", "k":
		m.Selected = (m.Selected - 1 + n) % n
	case "down", "j":
		m.Selected = (m.Selected + 1) % n
	case "enter":
		return m, m.activate(m.Selected)
	default:
		if len(key) == 1 && key[0] >= '1' && key[0] <= '9' {
			if i := int(key[0] - '1'); i < n {
				m.Selected = i
				return m, m.activate(i)
			}
		}
	}
	return m, nil
}

func (m Menu) activate(i int) tea.Cmd {
	if a := m.Items[i].Action; a != nil {
		return a()
	}
	return nil
}

func (m Menu) View() string {
	var b strings.Builder
	for i, item := range m.Items {
		label := fmt.Sprintf("%d  %s", i+1, item.Label)
		if i == m.Selected {
			b.WriteString(theme.Selected.Render("▸ " + label))
		} else {
			b.WriteString(theme.Unselected.Render("  " + label))
		}
		b.WriteString("\n")
	}
	return b.String()
}
