package output

import (
	"fmt"
	"os"
	"strings"

	"github.com/mattn/go-isatty"
)

// RiskBar renders a visual bar for a 0-10 risk score.
// Example: "████████░░ 8/10"
func RiskBar(score int, width int) string {
	if width <= 0 {
		width = 10
	}
	filled := score * width / 10
	if filled > width {
		filled = width
	}
	if filled < 0 {
		filled = 0
	}

	bar := strings.Repeat("█", filled) + strings.Repeat("░", width-filled)

	var style func(string) string
	switch {
	case score >= 8:
		style = func(s string) string { return StyleError.Render(s) }
	case score >= 5:
		style = func(s string) string { return StyleWarning.Render(s) }
	default:
		style = func(s string) string { return StyleSuccess.Render(s) }
	}

	return fmt.Sprintf("%s %s", style(bar), StyleMuted.Render(fmt.Sprintf("%d/10", score)))
}

// HumanBytes formats a byte count as a short decimal size string.
func HumanBytes(n int64) string {
	const unit = 1000
	if n < unit {
		return fmt.Sprintf("%d B", n)
	}
	div, exp := int64(unit), 0
	for m := n / unit; m >= unit; m /= unit {
		div *= unit
		exp++
	}
	return fmt.Sprintf("%.1f %cB", float64(n)/float64(div), "kMGTP"[exp])
}

// Section prints a styled section header with a horizontal rule.
func Section(title string) string {
	header := StyleHeader.Render(title)
	rule := StyleMuted.Render(strings.Repeat("─", 66))
	return fmt.Sprintf("\n %s\n %s", header, rule)
}

// ProgressLine rewrites a single status line on stderr during a long scan.
// It stays silent when stderr is not a terminal so piped output is clean.
type ProgressLine struct {
	enabled bool
	width   int
}

// NewProgressLine creates a progress line bound to stderr.
func NewProgressLine() *ProgressLine {
	return &ProgressLine{
		enabled: isatty.IsTerminal(os.Stderr.Fd()),
		width:   80,
	}
}

// Update rewrites the status line in place.
func (p *ProgressLine) Update(found, scanned, total int, current string) {
	if !p.enabled {
		return
	}
	line := fmt.Sprintf(" scanning  %d projects  %d/%d  %s", found, scanned, total, current)
	fmt.Fprintf(os.Stderr, "\r%s\x1b[K", truncateLine(line, p.width))
}

// truncateLine shortens a line to at most width cells, cutting on a rune
// boundary. The current path is arbitrary UTF-8 and must never be split
// mid-sequence.
func truncateLine(line string, width int) string {
	runes := []rune(line)
	if len(runes) <= width {
		return line
	}
	return string(runes[:width-1]) + "…"
}

// Done clears the status line.
func (p *ProgressLine) Done() {
	if !p.enabled {
		return
	}
	fmt.Fprint(os.Stderr, "\r\x1b[K")
}
