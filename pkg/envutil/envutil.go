// Package envutil reads tuning knobs from the environment with defaults and
// bounds, so malformed or hostile values can never produce a nonsensical
// configuration.
package envutil

import (
	"os"
	"strconv"

	"github.com/flowlint/flowlint/pkg/logger"
)

var log = logger.New("envutil:envutil")

// GetInt reads an integer from the named environment variable. It returns
// defaultValue when the variable is unset or unparseable, and clamps the
// result into [minValue, maxValue].
func GetInt(name string, defaultValue, minValue, maxValue int) int {
	raw := os.Getenv(name)
	if raw == "" {
		return defaultValue
	}

	value, err := strconv.Atoi(raw)
	if err != nil {
		log.Printf("Ignoring unparseable %s=%q: %v", name, raw, err)
		return defaultValue
	}

	if value < minValue {
		log.Printf("Clamping %s=%d to minimum %d", name, value, minValue)
		return minValue
	}
	if value > maxValue {
		log.Printf("Clamping %s=%d to maximum %d", name, value, maxValue)
		return maxValue
	}
	return value
}

// GetBool reads a boolean from the named environment variable. Empty and
// unparseable values return defaultValue.
func GetBool(name string, defaultValue bool) bool {
	raw := os.Getenv(name)
	if raw == "" {
		return defaultValue
	}
	value, err := strconv.ParseBool(raw)
	if err != nil {
		log.Printf("Ignoring unparseable %s=%q: %v", name, raw, err)
		return defaultValue
	}
	return value
}
