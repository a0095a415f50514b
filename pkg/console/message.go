package console

import (
	"fmt"
	"strings"
)

// Severity glyphs match the report line format: every status line a user sees
// starts with one of these markers.
const (
	glyphError   = "✗"
	glyphWarning = "⚠"
	glyphSuccess = "✓"
	glyphInfo    = "ℹ"
)

// FormatErrorMessage formats an error message with the ✗ marker.
func FormatErrorMessage(msg string) string {
	return render(errorStyle, glyphError+" "+msg)
}

// FormatWarningMessage formats a warning message with the ⚠ marker.
func FormatWarningMessage(msg string) string {
	return render(warningStyle, glyphWarning+" "+msg)
}

// FormatSuccessMessage formats a success message with the ✓ marker.
func FormatSuccessMessage(msg string) string {
	return render(successStyle, glyphSuccess+" "+msg)
}

// FormatInfoMessage formats an informational message with the ℹ marker.
func FormatInfoMessage(msg string) string {
	return render(infoStyle, glyphInfo+" "+msg)
}

// FormatCommandMessage formats a command invocation for display, prefixed with
// a shell prompt marker.
func FormatCommandMessage(msg string) string {
	return render(commandStyle, "$ "+msg)
}

// FormatTitleMessage formats a section heading.
func FormatTitleMessage(msg string) string {
	return render(titleStyle, msg)
}

// FormatVerboseMessage formats supplementary detail shown only in verbose
// mode.
func FormatVerboseMessage(msg string) string {
	return render(dimStyle, msg)
}

// FormatErrorWithSuggestions formats an error message followed by an indented
// list of remediation suggestions. With no suggestions it is equivalent to
// FormatErrorMessage.
func FormatErrorWithSuggestions(msg string, suggestions []string) string {
	var b strings.Builder
	b.WriteString(FormatErrorMessage(msg))
	for _, suggestion := range suggestions {
		b.WriteString("\n")
		fmt.Fprintf(&b, "  • %s", suggestion)
	}
	return b.String()
}
