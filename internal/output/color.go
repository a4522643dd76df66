// Package output provides styled terminal rendering helpers for devclean.
package output

import "github.com/charmbracelet/lipgloss"

// Palette. Success maps to Burner (safe to delete), Error to Critical,
// Warning to Active.
var (
	ColorPrimary = lipgloss.Color("#64b5f6")
	ColorSuccess = lipgloss.Color("#66bb6a")
	ColorError   = lipgloss.Color("#ef5350")
	ColorWarning = lipgloss.Color("#fff59d")
	ColorMuted   = lipgloss.Color("#888888")
)

// Shared styles. Reassigned wholesale by SetNoColor, so callers must not
// capture them at init time.
var (
	StyleHeader = lipgloss.NewStyle().
			Foreground(ColorPrimary).
			Bold(true)

	StyleSuccess = lipgloss.NewStyle().
			Foreground(ColorSuccess)

	StyleError = lipgloss.NewStyle().
			Foreground(ColorError)

	StyleWarning = lipgloss.NewStyle().
			Foreground(ColorWarning)

	StyleMuted = lipgloss.NewStyle().
			Foreground(ColorMuted)

	StyleBold = lipgloss.NewStyle().
			Bold(true)

	// StyleLabel and StyleValue align the label/value pairs in command
	// summaries.
	StyleLabel = lipgloss.NewStyle().Width(24)
	StyleValue = lipgloss.NewStyle().Bold(true).Width(12)
)

var noColor bool

// SetNoColor swaps every shared style for an unstyled renderer (keeping
// the summary widths) so --no-color output carries no escape sequences.
func SetNoColor(disabled bool) {
	noColor = disabled
	if disabled {
		plain := lipgloss.NewStyle()
		StyleHeader = plain
		StyleSuccess = plain
		StyleError = plain
		StyleWarning = plain
		StyleMuted = plain
		StyleBold = plain
		StyleLabel = plain.Width(24)
		StyleValue = plain.Width(12)
	}
}

// IsNoColor reports whether color output is disabled.
func IsNoColor() bool {
	return noColor
}
