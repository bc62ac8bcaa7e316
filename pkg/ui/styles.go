// Package ui renders bridge operations in the terminal: a live progress
// view while a transaction is pending and a styled result block.
package ui

import "github.com/charmbracelet/lipgloss"

// Colors
var (
	ColorPrimary   = lipgloss.Color("#7C3AED") // Purple
	ColorSecondary = lipgloss.Color("#10B981") // Green
	ColorDanger    = lipgloss.Color("#EF4444") // Red
	ColorWarning   = lipgloss.Color("#F59E0B") // Amber
	ColorMuted     = lipgloss.Color("#6B7280") // Gray
	ColorBorder    = lipgloss.Color("#374151") // Dark gray
)

// Styles
var (
	// Box styles
	BoxStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(ColorBorder).
			Padding(0, 1)

	FailureBoxStyle = BoxStyle.
			BorderForeground(ColorDanger)

	// Title style
	TitleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#FFFFFF")).
			Background(ColorPrimary).
			Padding(0, 2)

	// Row styles
	LabelStyle = lipgloss.NewStyle().
			Foreground(ColorMuted).
			Width(18)

	ValueStyle = lipgloss.NewStyle().
			Bold(true)

	// Status styles
	StatusConfirmed = lipgloss.NewStyle().
			Foreground(ColorSecondary).
			Bold(true)

	StatusFailed = lipgloss.NewStyle().
			Foreground(ColorDanger).
			Bold(true)

	StatusPending = lipgloss.NewStyle().
			Foreground(ColorWarning).
			Bold(true)

	MutedValue = lipgloss.NewStyle().
			Foreground(ColorMuted)

	SpinnerStyle = lipgloss.NewStyle().
			Foreground(ColorPrimary)

	// Help style
	HelpStyle = lipgloss.NewStyle().
			Foreground(ColorMuted).
			Padding(0, 1)
)
