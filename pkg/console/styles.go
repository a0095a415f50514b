// Package console provides terminal output helpers: styled status messages,
// table rendering, struct rendering, and human-readable formatting of sizes
// and durations.
//
// Styling is ANSI-based via lipgloss and degrades to plain text when stderr is
// not a terminal or when NO_COLOR is set, so piped and redirected output stays
// machine-friendly.
package console

import (
	"os"

	"github.com/charmbracelet/lipgloss"

	"github.com/flowlint/flowlint/pkg/tty"
)

// Adaptive colors keep output readable on both light and dark backgrounds.
var (
	colorError   = lipgloss.AdaptiveColor{Light: "1", Dark: "9"}
	colorWarning = lipgloss.AdaptiveColor{Light: "3", Dark: "11"}
	colorSuccess = lipgloss.AdaptiveColor{Light: "2", Dark: "10"}
	colorInfo    = lipgloss.AdaptiveColor{Light: "4", Dark: "12"}
	colorCommand = lipgloss.AdaptiveColor{Light: "6", Dark: "14"}
)

var (
	errorStyle   = lipgloss.NewStyle().Foreground(colorError)
	warningStyle = lipgloss.NewStyle().Foreground(colorWarning)
	successStyle = lipgloss.NewStyle().Foreground(colorSuccess)
	infoStyle    = lipgloss.NewStyle().Foreground(colorInfo)
	commandStyle = lipgloss.NewStyle().Foreground(colorCommand)
	titleStyle   = lipgloss.NewStyle().Bold(true)
	dimStyle     = lipgloss.NewStyle().Faint(true)
)

// colorsEnabled gates all styling. Tests override it for deterministic output.
var colorsEnabled = tty.IsStderrTerminal() && os.Getenv("NO_COLOR") == ""

// render applies style to s when colors are enabled, otherwise returns s
// unchanged.
func render(style lipgloss.Style, s string) string {
	if !colorsEnabled {
		return s
	}
	return style.Render(s)
}
