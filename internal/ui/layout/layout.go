// Package layout renders the popup frame: header, content and footer.
package layout

import (
	"fmt"
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/abhisek/focusflow/internal/ui/theme"
)

const (
	MinWidth  = 60
	MinHeight = 16
)

// KeyHint is one "key description" pair in the footer.
type KeyHint struct {
	Key         string
	Description string
}

func IsTooSmall(width, height int) bool {
	return width < MinWidth || height < MinHeight
}

// RenderMinSizeMessage asks for a larger terminal.
func RenderMinSizeMessage(width, height int) string {
	msg := theme.Title.Render("FocusFlow") + "\n\n" +
		theme.Body.Render(fmt.Sprintf("Needs at least %dx%d", MinWidth, MinHeight)) + "\n" +
		theme.Hint.Render(fmt.Sprintf("now %dx%d", width, height))
	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, msg)
}

// Status is what the header shows on the right.
type Status struct {
	FocusOn      bool
	TodayMinutes int
}

// RenderHeader renders "FocusFlow · title" on the left and the focus badge
// with today's minutes on the right, over a rule line.
func RenderHeader(title string, st Status, width int) string {
	left := lipgloss.NewStyle().Foreground(theme.Primary).Bold(true).Render(" FocusFlow")
	if title != "" {
		left += theme.Hint.Render(" · ") + theme.Body.Render(title)
	}

	badge := theme.FocusOff.Render("○ off")
	if st.FocusOn {
		badge = theme.FocusActive.Render("● focus")
	}
	right := badge + theme.Hint.Render(fmt.Sprintf("  %d min today ", st.TodayMinutes))

	gap := max(width-lipgloss.Width(left)-lipgloss.Width(right), 1)
	line := left + strings.Repeat(" ", gap) + right
	rule := lipgloss.NewStyle().Foreground(theme.Border).Render(strings.Repeat("─", max(width, 0)))
	return line + "\n" + rule
}

// RenderFooter renders the key hints under a rule line.
func RenderFooter(hints []KeyHint, width int) string {
	parts := make([]string, 0, len(hints))
	for _, h := range hints {
		parts = append(parts,
			lipgloss.NewStyle().Foreground(theme.Accent).Bold(true).Render(h.Key)+" "+theme.Hint.Render(h.Description))
	}
	rule := lipgloss.NewStyle().Foreground(theme.Border).Render(strings.Repeat("─", max(width, 0)))
	return rule + "\n " + strings.Join(parts, theme.Hint.Render("  ·  "))
}

// RenderFrame stacks header, content and footer, padding the content to
// fill the remaining height.
func RenderFrame(header, content, footer string, width, height int) string {
	h := max(height-lipgloss.Height(header)-lipgloss.Height(footer), 0)
	body := lipgloss.NewStyle().Width(width).Height(h).Render(content)
	return lipgloss.JoinVertical(lipgloss.Left, header, body, footer)
}
