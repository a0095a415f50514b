package validation

import (
	"fmt"
	"os"

	"github.com/goccy/go-yaml"

	"github.com/flowlint/flowlint/pkg/envutil"
	"github.com/flowlint/flowlint/pkg/logger"
)

var limitsLog = logger.New("validation:limits")

// Limits holds the validation thresholds. The defaults are tuned heuristics
// with no deeper meaning; any subset can be overridden from a YAML file.
// All threshold comparisons are strictly greater-than.
type Limits struct {
	// MinNodes is the node count below which the structure validator warns.
	MinNodes int `yaml:"min_nodes"`
	// NodesWarn and NodesFail grade the node count (soft, hard).
	NodesWarn int `yaml:"nodes_warn"`
	NodesFail int `yaml:"nodes_fail"`
	// SizeWarnBytes and SizeFailBytes grade the serialized document size.
	SizeWarnBytes int `yaml:"size_warn_bytes"`
	SizeFailBytes int `yaml:"size_fail_bytes"`
	// EdgesWarn grades the connection-graph edge count.
	EdgesWarn int `yaml:"edges_warn"`
	// Workers bounds the scheduler worker pool.
	Workers int `yaml:"workers"`
	// ParallelThreshold is the enabled-validator count above which parallel
	// dispatch engages.
	ParallelThreshold int `yaml:"parallel_threshold"`
	// Scripts lists companion scripts that must exist, relative to the
	// document directory. Discovery of *.sh files happens regardless.
	Scripts []string `yaml:"scripts"`
}

// DefaultLimits returns the built-in thresholds.
func DefaultLimits() Limits {
	return Limits{
		MinNodes:          3,
		NodesWarn:         50,
		NodesFail:         150,
		SizeWarnBytes:     100 * 1024,
		SizeFailBytes:     500 * 1024,
		EdgesWarn:         100,
		Workers:           4,
		ParallelThreshold: 1,
	}
}

// LoadLimits builds the effective limits: defaults, overlaid with the YAML
// file at path when it exists, then the FLOWLINT_WORKERS environment
// override. Zero values in the file keep the default. An empty path means no
// file was requested and only defaults plus environment apply.
func LoadLimits(path string) (Limits, error) {
	limits := DefaultLimits()

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			if os.IsNotExist(err) {
				return limits, fmt.Errorf("limits file not found: %s", path)
			}
			return limits, fmt.Errorf("failed to read limits file: %w", err)
		}

		var overrides Limits
		if err := yaml.Unmarshal(data, &overrides); err != nil {
			return limits, fmt.Errorf("failed to parse limits file %s: %w", path, err)
		}
		limits = mergeLimits(limits, overrides)
		limitsLog.Printf("Loaded limits overrides from %s", path)
	}

	limits.Workers = envutil.GetInt("FLOWLINT_WORKERS", limits.Workers, 1, 64)
	return limits, nil
}

// mergeLimits overlays non-zero override fields onto base.
func mergeLimits(base, overrides Limits) Limits {
	if overrides.MinNodes > 0 {
		base.MinNodes = overrides.MinNodes
	}
	if overrides.NodesWarn > 0 {
		base.NodesWarn = overrides.NodesWarn
	}
	if overrides.NodesFail > 0 {
		base.NodesFail = overrides.NodesFail
	}
	if overrides.SizeWarnBytes > 0 {
		base.SizeWarnBytes = overrides.SizeWarnBytes
	}
	if overrides.SizeFailBytes > 0 {
		base.SizeFailBytes = overrides.SizeFailBytes
	}
	if overrides.EdgesWarn > 0 {
		base.EdgesWarn = overrides.EdgesWarn
	}
	if overrides.Workers > 0 {
		base.Workers = overrides.Workers
	}
	if overrides.ParallelThreshold > 0 {
		base.ParallelThreshold = overrides.ParallelThreshold
	}
	if len(overrides.Scripts) > 0 {
		base.Scripts = overrides.Scripts
	}
	return base
}
