// Package theme holds the popup's colors and shared styles.
package theme

import (
	"charm.land/lipgloss/v2"
)

// Color palette, calm and low-contrast so the popup does not itself distract.
var (
	Primary = lipgloss.Color("#6366F1") // Indigo
	Accent  = lipgloss.Color("#F59E0B") // Amber
	Success = lipgloss.Color("#22C55E") // Green
	Error   = lipgloss.Color("#F43F5E") // Rose
	Text    = lipgloss.Color("#F8FAFC") // White
	TextDim = lipgloss.Color("#94A3B8") // Slate
	BgCard  = lipgloss.Color("#1E293B") // Dark Slate
	Border  = lipgloss.Color("#334155") // Slate
)

// Typography
var (
	Title = lipgloss.NewStyle().
		Bold(true).
		Foreground(Primary)

	Body = lipgloss.NewStyle().
		Foreground(Text)

	Hint = lipgloss.NewStyle().
		Foreground(TextDim).
		Italic(true)

	Label = lipgloss.NewStyle().
		Foreground(TextDim).
		Width(14)
)

// Layout
var (
	Card = lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(Border).
		Padding(1, 2)
)

// States
var (
	Selected = lipgloss.NewStyle().
			Foreground(Primary).
			Bold(true)

	Unselected = lipgloss.NewStyle().
			Foreground(Text)

	// FocusActive and FocusOff render the focus-mode status.
	FocusActive = lipgloss.NewStyle().
			Foreground(Success).
			Bold(true)

	FocusOff = lipgloss.NewStyle().
			Foreground(TextDim).
			Bold(true)

	Educational = lipgloss.NewStyle().
			Foreground(Success).
			Bold(true)

	Distracting = lipgloss.NewStyle().
			Foreground(Error).
			Bold(true)

	ErrorText = lipgloss.NewStyle().
			Foreground(Error)
)
