// Package validation implements the document validation engine: an artifact
// cache with single-flight semantics, a compiled pattern library, five
// independent validators (structure, security, performance, documentation,
// companion scripts), a scheduler that runs them sequentially or on a bounded
// worker pool, and the report that folds their findings into one summary.
//
// # Execution model
//
// Validators are pure over (document, cache, patterns, limits) and share no
// mutable state except the cache, which is internally synchronized. Findings
// are appended to validator-local slices and merged only when the run
// collects, then sorted by a stable key so parallel and sequential runs
// produce identical output.
package validation

// Severity grades a finding. Order matters: reports sort error first.
type Severity string

const (
	SeverityPass    Severity = "pass"
	SeverityInfo    Severity = "info"
	SeverityWarning Severity = "warning"
	SeverityError   Severity = "error"
)

// Rank returns the sort rank of the severity, most severe first.
func (s Severity) Rank() int {
	switch s {
	case SeverityError:
		return 0
	case SeverityWarning:
		return 1
	case SeverityInfo:
		return 2
	case SeverityPass:
		return 3
	default:
		return 4
	}
}

// Category names the concern a finding belongs to. One validator owns each
// category.
type Category string

const (
	CategoryStructure     Category = "structure"
	CategorySecurity      Category = "security"
	CategoryPerformance   Category = "performance"
	CategoryDocumentation Category = "documentation"
	CategoryTests         Category = "tests"
)

// Categories lists all categories in registration order. Report sorting and
// validator dispatch both follow this order.
func Categories() []Category {
	return []Category{
		CategoryStructure,
		CategorySecurity,
		CategoryPerformance,
		CategoryDocumentation,
		CategoryTests,
	}
}

// Rank returns the registration rank of the category.
func (c Category) Rank() int {
	for i, category := range Categories() {
		if c == category {
			return i
		}
	}
	return len(Categories())
}

// Finding is the atomic validator output. Immutable once created.
type Finding struct {
	Category  Category `json:"category"`
	Severity  Severity `json:"severity"`
	Message   string   `json:"message"`
	Detail    string   `json:"detail,omitempty"`
	Validator string   `json:"validator"`
}
