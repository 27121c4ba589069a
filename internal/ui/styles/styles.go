// Package styles contains Lip Gloss style definitions for the console.
package styles

import (
	"strconv"

	"github.com/charmbracelet/lipgloss"
)

// Color tokens.
var (
	LampOnColor     = lipgloss.AdaptiveColor{Light: "#CA8A04", Dark: "#FACC15"} // lit indicator
	LampOffColor    = lipgloss.AdaptiveColor{Light: "#9CA3AF", Dark: "#4B5563"}
	BuzzedColor     = lipgloss.AdaptiveColor{Light: "#DC2626", Dark: "#F87171"} // winner spotlight
	LockedColor     = lipgloss.AdaptiveColor{Light: "#6B7280", Dark: "#6B7280"}
	ScoreColor      = lipgloss.AdaptiveColor{Light: "#047857", Dark: "#34D399"}
	ScoreNegColor   = lipgloss.AdaptiveColor{Light: "#B91C1C", Dark: "#F87171"}
	TitleColor      = lipgloss.AdaptiveColor{Light: "#7C3AED", Dark: "#A78BFA"}
	StatusColor     = lipgloss.AdaptiveColor{Light: "#1F2937", Dark: "#E5E7EB"}
	BorderColor     = lipgloss.AdaptiveColor{Light: "#D1D5DB", Dark: "#374151"}
	HelpColor       = lipgloss.AdaptiveColor{Light: "#9CA3AF", Dark: "#6B7280"}
)

// Lamp glyphs.
const (
	LampOn  = "●"
	LampOff = "○"
)

var (
	titleStyle = lipgloss.NewStyle().Bold(true).Foreground(TitleColor)

	panelStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(BorderColor).
			Padding(0, 2).
			Align(lipgloss.Center)

	buzzedPanelStyle = panelStyle.
				BorderForeground(BuzzedColor).
				Bold(true)

	statusStyle = lipgloss.NewStyle().Foreground(StatusColor).MarginTop(1)

	helpStyle = lipgloss.NewStyle().Foreground(HelpColor)

	lockedStyle = lipgloss.NewStyle().Foreground(LockedColor).Italic(true)
)

// Title renders the console header.
func Title(s string) string { return titleStyle.Render(s) }

// Status renders the phase line under the panels.
func Status(s string) string { return statusStyle.Render(s) }

// Help renders the footer help line.
func Help(s string) string { return helpStyle.Render(s) }

// Locked renders the lockout badge.
func Locked() string { return lockedStyle.Render("LOCKED") }

// Lamp renders a player's indicator in its on/off/buzzed color.
func Lamp(lit, buzzed bool) string {
	switch {
	case buzzed:
		return lipgloss.NewStyle().Foreground(BuzzedColor).Render(LampOn)
	case lit:
		return lipgloss.NewStyle().Foreground(LampOnColor).Render(LampOn)
	default:
		return lipgloss.NewStyle().Foreground(LampOffColor).Render(LampOff)
	}
}

// Score renders a score, negative values in the warning color.
func Score(n int) string {
	style := lipgloss.NewStyle().Bold(true).Foreground(ScoreColor)
	if n < 0 {
		style = style.Foreground(ScoreNegColor)
	}
	return style.Render(formatScore(n))
}

func formatScore(n int) string {
	if n > 0 {
		return "+" + strconv.Itoa(n)
	}
	return strconv.Itoa(n)
}

// Panel renders one player panel. buzzed panels get the spotlight
// border.
func Panel(content string, width int, buzzed bool) string {
	style := panelStyle
	if buzzed {
		style = buzzedPanelStyle
	}
	if width > 0 {
		style = style.Width(width)
	}
	return style.Render(content)
}
