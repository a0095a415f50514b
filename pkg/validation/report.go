package validation

import (
	"sort"
	"time"

	json "github.com/goccy/go-json"
)

// ValidatorTiming records how long a single validator took to evaluate.
type ValidatorTiming struct {
	Name     string
	Duration time.Duration
}

// DocumentOverview is the at-a-glance shape of the validated document.
// Verbose report output renders it as an aligned key-value block; it is not
// part of the JSON summary.
type DocumentOverview struct {
	Name          string `console:"header:Name"`
	Path          string `console:"header:Document"`
	Nodes         int    `console:"header:Nodes,format:number"`
	Edges         int    `console:"header:Edges,format:number"`
	FunctionNodes int    `console:"header:Function nodes,format:number"`
	Size          int64  `console:"header:Size,format:filesize"`
}

// RunSummary is the merged result of one validation run. Findings are held in
// report order: category registration rank first, then severity (errors
// first), with the original emission order breaking ties. The ordering is
// identical for sequential and parallel runs.
type RunSummary struct {
	Findings []Finding
	Timings  []ValidatorTiming
	Overview *DocumentOverview
	Passed   int
	Info     int
	Warnings int
	Errors   int
	Fatal    bool
	Duration time.Duration
}

// NewRunSummary sorts and counts the merged findings of a completed run.
func NewRunSummary(findings []Finding, timings []ValidatorTiming, duration time.Duration) *RunSummary {
	sort.SliceStable(findings, func(i, j int) bool {
		if findings[i].Category.Rank() != findings[j].Category.Rank() {
			return findings[i].Category.Rank() < findings[j].Category.Rank()
		}
		return findings[i].Severity.Rank() < findings[j].Severity.Rank()
	})

	summary := &RunSummary{
		Findings: findings,
		Timings:  timings,
		Duration: duration,
	}
	summary.count()
	return summary
}

// FatalSummary wraps a single operational failure (missing document, broken
// JSON, missing interpreter, timeout) that aborted the run before or during
// validator execution.
func FatalSummary(finding Finding, duration time.Duration) *RunSummary {
	summary := &RunSummary{
		Findings: []Finding{finding},
		Fatal:    true,
		Duration: duration,
	}
	summary.count()
	return summary
}

func (s *RunSummary) count() {
	s.Passed, s.Info, s.Warnings, s.Errors = 0, 0, 0, 0
	for _, finding := range s.Findings {
		switch finding.Severity {
		case SeverityPass:
			s.Passed++
		case SeverityInfo:
			s.Info++
		case SeverityWarning:
			s.Warnings++
		case SeverityError:
			s.Errors++
		}
	}
}

// Succeeded reports whether the run produced zero error findings. Warnings
// and info findings never fail a run.
func (s *RunSummary) Succeeded() bool {
	return s.Errors == 0
}

// ExitCode maps the summary onto the process exit code contract: 0 on
// success, 1 on any error finding or operational failure.
func (s *RunSummary) ExitCode() int {
	if s.Succeeded() {
		return 0
	}
	return 1
}

// MarshalJSON renders the summary for --json output with stable field order
// and durations in milliseconds.
func (s *RunSummary) MarshalJSON() ([]byte, error) {
	type timingJSON struct {
		Name       string  `json:"name"`
		DurationMS float64 `json:"duration_ms"`
	}

	findings := s.Findings
	if findings == nil {
		findings = []Finding{}
	}
	timings := make([]timingJSON, 0, len(s.Timings))
	for _, timing := range s.Timings {
		timings = append(timings, timingJSON{
			Name:       timing.Name,
			DurationMS: float64(timing.Duration.Microseconds()) / 1000.0,
		})
	}

	return json.Marshal(struct {
		Findings   []Finding    `json:"findings"`
		Timings    []timingJSON `json:"timings,omitempty"`
		Passed     int          `json:"passed"`
		Info       int          `json:"info"`
		Warnings   int          `json:"warnings"`
		Errors     int          `json:"errors"`
		Fatal      bool         `json:"fatal"`
		DurationMS float64      `json:"duration_ms"`
	}{
		Findings:   findings,
		Timings:    timings,
		Passed:     s.Passed,
		Info:       s.Info,
		Warnings:   s.Warnings,
		Errors:     s.Errors,
		Fatal:      s.Fatal,
		DurationMS: float64(s.Duration.Microseconds()) / 1000.0,
	})
}
