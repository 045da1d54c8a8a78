// Package router keeps the popup's stack of screens. The home screen sits
// at the bottom and is never popped.
package router

import (
	"strings"

	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/focusflow/internal/screen"
)

// PushScreenMsg opens Screen on top of the current one.
type PushScreenMsg struct {
	Screen screen.Screen
}

// PopScreenMsg goes back one screen.
type PopScreenMsg struct{}

type Router struct {
	stack []screen.Screen
}

func New(home screen.Screen) *Router {
	return &Router{stack: []screen.Screen{home}}
}

// Push opens s and returns its Init command.
func (r *Router) Push(s screen.Screen) tea.Cmd {
	r.stack = append(r.stack, s)
	return s.Init()
}

// Pop closes the top screen. The revealed screen is initialized again so
// it reloads state the closed screen may have changed, e.g. the site count
// after editing the blocklist. Popping home does nothing.
func (r *Router) Pop() tea.Cmd {
	if len(r.stack) <= 1 {
		return nil
	}
	r.stack = r.stack[:len(r.stack)-1]
	return r.Active().Init()
}

func (r *Router) Active() screen.Screen {
	if len(r.stack) == 0 {
		return nil
	}
	return r.stack[len(r.stack)-1]
}

func (r *Router) Depth() int {
	return len(r.stack)
}

// Breadcrumb joins the titles of the screens above home, e.g.
// "Blocked Sites". It is empty on the home screen.
func (r *Router) Breadcrumb() string {
	if len(r.stack) <= 1 {
		return ""
	}
	titles := make([]string, 0, len(r.stack)-1)
	for _, s := range r.stack[1:] {
		titles = append(titles, s.Title())
	}
	return strings.Join(titles, " › ")
}

// Update handles navigation messages and hands everything else to the
// active screen.
func (r *Router) Update(msg tea.Msg) tea.Cmd {
	switch msg := msg.(type) {
	case PushScreenMsg:
		return r.Push(msg.Screen)
	case PopScreenMsg:
		return r.Pop()
	}

	active := r.Active()
	if active == nil {
		return nil
	}
	updated, cmd := active.Update(msg)
	r.stack[len(r.stack)-1] = updated
	return cmd
}

func (r *Router) View(width, height int) string {
	if active := r.Active(); active != nil {
		return active.View(width, height)
	}
	return ""
}
