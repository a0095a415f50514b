package validation

import (
	"context"
	"slices"

	"github.com/flowlint/flowlint/pkg/workflow"
)

// Run carries the shared, read-only inputs every validator evaluates against.
// The cache is the only internally-mutable member and is safe for concurrent
// use.
type Run struct {
	Document *workflow.Document
	Cache    *Cache
	Limits   Limits
	// BaseDir anchors companion-file probes (docs, scripts). It is the
	// directory of the document under validation.
	BaseDir string
}

// Validator is one independent validation unit. Evaluate must be pure over
// the run inputs and must never panic on malformed documents; the scheduler
// converts any panic that slips through into a single error finding.
type Validator interface {
	Name() string
	Category() Category
	Evaluate(ctx context.Context, run *Run) []Finding
}

// registry returns the five validators in fixed registration order. The
// order defines category rank and sequential execution order.
func registry() []Validator {
	return []Validator{
		structureValidator{},
		securityValidator{},
		performanceValidator{},
		documentationValidator{},
		scriptsValidator{},
	}
}

// validatorsFor filters the registry down to the enabled categories,
// preserving registration order. A nil or empty set enables everything.
func validatorsFor(categories []Category) []Validator {
	all := registry()
	if len(categories) == 0 {
		return all
	}
	enabled := make(map[Category]bool, len(categories))
	for _, category := range categories {
		enabled[category] = true
	}
	var selected []Validator
	for _, v := range all {
		if enabled[v.Category()] {
			selected = append(selected, v)
		}
	}
	return selected
}

// sortedKeys returns the keys of m in sorted order. Validators iterate maps
// through this so finding order never depends on map iteration order.
func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	slices.Sort(keys)
	return keys
}

// nodeLabel names a node for report text: name, then id, then type.
func nodeLabel(node workflow.Node) string {
	if node.Name != "" {
		return node.Name
	}
	if node.ID != "" {
		return node.ID
	}
	return node.Type
}
