package components

import (
	"testing"

	tea "charm.land/bubbletea/v2"
)

type pickedMsg int

func testMenu() Menu {
	item := func(label string, n int) MenuItem {
		return MenuItem{Label: label, Action: func() tea.Cmd {
			return func() tea.Msg { return pickedMsg(n) }
		}}
	}
	return NewMenu([]MenuItem{item("ONE", 1), item("TWO", 2), item("THREE", 3)})
}

func TestMenu_Wraps(t *testing.T) {
	m := testMenu()
	m, _ = m.Update(tea.KeyPressMsg{Code: tea.KeyUp})
	if m.Selected != 2 {
		t.Errorf("up from first: selected = %d, want 2", m.Selected)
	}
	m, _ = m.Update(tea.KeyPressMsg{Code: tea.KeyDown})
	if m.Selected != 0 {
		t.Errorf("down from last: selected = %d, want 0", m.Selected)
	}
}

func TestMenu_EnterActivates(t *testing.T) {
	m := testMenu()
	m, _ = m.Update(tea.KeyPressMsg{Code: tea.KeyDown})
	_, cmd := m.Update(tea.KeyPressMsg{Code: tea.KeyEnter})
	if cmd == nil || cmd() != pickedMsg(2) {
		t.Fatal("expected item TWO to fire")
	}
}

func TestMenu_DigitShortcut(t *testing.T) {
	m := testMenu()
	m, cmd := m.Update(tea.KeyPressMsg{Code: '3', Text: "3"})
	if cmd == nil || cmd() != pickedMsg(3) {
		t.Fatal("expected item THREE to fire")
	}
	if m.Selected != 2 {
		t.Errorf("selected = %d, want 2", m.Selected)
	}

	_, cmd = m.Update(tea.KeyPressMsg{Code: '9', Text: "9"})
	if cmd != nil {
		t.Error("out-of-range digit should do nothing")
	}
}
