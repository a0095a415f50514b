package workflow

import (
	"regexp"
	"strings"

	"github.com/flowlint/flowlint/pkg/logger"
)

var cronLog = logger.New("workflow:cron")

// Cron expression helpers for schedule-kind nodes. These are pure string
// classifiers; they judge shape, not semantics.

var cronFieldPattern = regexp.MustCompile(`^[\d\*\-/,]+$`)

// IsCronExpression checks if the input looks like a valid cron expression:
// exactly 5 fields (minute, hour, day of month, month, day of week), each
// restricted to cron syntax characters.
func IsCronExpression(input string) bool {
	fields := strings.Fields(input)
	if len(fields) != 5 {
		cronLog.Printf("Invalid cron %q: want 5 fields, got %d", input, len(fields))
		return false
	}
	for _, field := range fields {
		if !cronFieldPattern.MatchString(field) {
			cronLog.Printf("Invalid cron field: %s", field)
			return false
		}
	}
	return true
}

// IsEveryMinuteCron checks if a cron expression fires every minute
// ("* * * * *" or "*/1 * * * *"), which is almost always a leftover from
// development.
func IsEveryMinuteCron(cron string) bool {
	fields := strings.Fields(cron)
	if len(fields) != 5 {
		return false
	}
	if fields[0] != "*" && fields[0] != "*/1" {
		return false
	}
	for _, field := range fields[1:] {
		if field != "*" {
			return false
		}
	}
	return true
}
