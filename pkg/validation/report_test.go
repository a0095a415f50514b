//go:build !integration

package validation

import (
	"testing"
	"time"

	json "github.com/goccy/go-json"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func messages(findings []Finding) []string {
	out := make([]string, 0, len(findings))
	for _, f := range findings {
		out = append(out, f.Message)
	}
	return out
}

func TestRunSummaryOrdering(t *testing.T) {
	findings := []Finding{
		{Category: CategoryTests, Severity: SeverityPass, Message: "tests-pass"},
		{Category: CategorySecurity, Severity: SeverityWarning, Message: "security-warning"},
		{Category: CategoryStructure, Severity: SeverityWarning, Message: "structure-warning-1"},
		{Category: CategoryStructure, Severity: SeverityError, Message: "structure-error"},
		{Category: CategoryStructure, Severity: SeverityWarning, Message: "structure-warning-2"},
		{Category: CategorySecurity, Severity: SeverityError, Message: "security-error"},
	}

	summary := NewRunSummary(findings, nil, time.Millisecond)

	assert.Equal(t, []string{
		"structure-error",
		"structure-warning-1",
		"structure-warning-2",
		"security-error",
		"security-warning",
		"tests-pass",
	}, messages(summary.Findings), "category rank first, severity second, emission order breaks ties")
}

func TestRunSummaryCounts(t *testing.T) {
	summary := NewRunSummary([]Finding{
		{Category: CategoryStructure, Severity: SeverityPass},
		{Category: CategoryStructure, Severity: SeverityPass},
		{Category: CategorySecurity, Severity: SeverityInfo},
		{Category: CategorySecurity, Severity: SeverityWarning},
		{Category: CategoryPerformance, Severity: SeverityError},
	}, nil, time.Millisecond)

	assert.Equal(t, 2, summary.Passed)
	assert.Equal(t, 1, summary.Info)
	assert.Equal(t, 1, summary.Warnings)
	assert.Equal(t, 1, summary.Errors)
	assert.False(t, summary.Succeeded())
	assert.Equal(t, 1, summary.ExitCode())
}

func TestRunSummaryWarningsDoNotFail(t *testing.T) {
	summary := NewRunSummary([]Finding{
		{Category: CategoryStructure, Severity: SeverityWarning},
		{Category: CategorySecurity, Severity: SeverityInfo},
	}, nil, time.Millisecond)

	assert.True(t, summary.Succeeded(), "warnings and info never fail a run")
	assert.Equal(t, 0, summary.ExitCode())
}

func TestFatalSummary(t *testing.T) {
	summary := FatalSummary(Finding{
		Category:  CategoryStructure,
		Severity:  SeverityError,
		Message:   "document not found: workflow.json",
		Validator: "scheduler",
	}, time.Millisecond)

	assert.True(t, summary.Fatal)
	assert.Equal(t, 1, summary.Errors)
	assert.Equal(t, 1, summary.ExitCode())
	require.Len(t, summary.Findings, 1)
}

func TestRunSummaryJSON(t *testing.T) {
	summary := NewRunSummary(
		[]Finding{{Category: CategoryStructure, Severity: SeverityError, Message: "boom", Validator: "structure"}},
		[]ValidatorTiming{{Name: "structure", Duration: 1500 * time.Microsecond}},
		2*time.Millisecond,
	)

	data, err := json.Marshal(summary)
	require.NoError(t, err)
	text := string(data)

	assert.Contains(t, text, `"errors":1`)
	assert.Contains(t, text, `"fatal":false`)
	assert.Contains(t, text, `"category":"structure"`)
	assert.Contains(t, text, `"duration_ms":1.5`, "timings render in milliseconds")
	assert.NotContains(t, text, `"detail"`, "empty detail is omitted")
}

func TestRunSummaryJSONEmptyFindings(t *testing.T) {
	data, err := json.Marshal(NewRunSummary(nil, nil, 0))
	require.NoError(t, err)

	assert.Contains(t, string(data), `"findings":[]`, "no findings renders an empty array, not null")
}
