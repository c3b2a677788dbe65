package ui

import "github.com/charmbracelet/lipgloss"

// Color palette - Earthy tones (lighter for dark backgrounds)
var (
	primaryColor   = lipgloss.Color("#E8C4A0") // Light warm beige
	secondaryColor = lipgloss.Color("#7EBB81") // Light forest green
	accentColor    = lipgloss.Color("#A8C9A4") // Soft sage green
	successColor   = lipgloss.Color("#B5D99C") // Bright sage
	mutedColor     = lipgloss.Color("#B8A890") // Light taupe
	fgColor        = lipgloss.Color("#F5F3ED") // Warm white
	warningColor   = lipgloss.Color("#F0DEB4") // Cream highlight
	userBgColor    = lipgloss.Color("#3B6E8F") // Muted blue
	botBgColor     = lipgloss.Color("#3A4A3A") // Dark sage
)

// Styles
var (
	titleStyle = lipgloss.NewStyle().
			Foreground(primaryColor).
			Bold(true).
			Padding(0, 1)

	bannerStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(warningColor).
			Foreground(warningColor).
			Padding(0, 1)

	transcriptBoxStyle = lipgloss.NewStyle().
				Border(lipgloss.RoundedBorder()).
				BorderForeground(accentColor).
				Padding(0, 1)

	inputBoxStyle = lipgloss.NewStyle().
			Border(lipgloss.DoubleBorder()).
			BorderForeground(accentColor).
			Padding(0, 1)

	userBubbleStyle = lipgloss.NewStyle().
			Foreground(fgColor).
			Background(userBgColor).
			Padding(0, 1)

	botBubbleStyle = lipgloss.NewStyle().
			Foreground(fgColor).
			Background(botBgColor).
			Padding(0, 1)

	highlightStyle = lipgloss.NewStyle().
			Foreground(successColor).
			Bold(true)

	disabledStyle = lipgloss.NewStyle().
			Foreground(mutedColor).
			Faint(true)

	mutedStyle = lipgloss.NewStyle().
			Foreground(mutedColor)

	thinkingStyle = lipgloss.NewStyle().
			Foreground(mutedColor).
			Italic(true)

	emptyStateStyle = lipgloss.NewStyle().
			Foreground(mutedColor).
			Italic(true).
			Align(lipgloss.Center)

	spinnerStyle = lipgloss.NewStyle().
			Foreground(secondaryColor).
			Bold(true)
)
