//go:build !integration

package validation

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const minimalDocument = `{"name":"T","nodes":[{"id":"w1","type":"webhook","parameters":{"path":"x"}}]}`

func writeCompanion(t *testing.T, dir, name, content string) {
	t.Helper()
	require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(content), 0o644))
}

func TestDocumentationMissingReadme(t *testing.T) {
	dir := t.TempDir()
	run := buildRun(t, dir, minimalDocument)

	findings := documentationValidator{}.Evaluate(context.Background(), run)

	errorFindings := findingsBySeverity(findings, SeverityError)
	require.Len(t, errorFindings, 1, "only the README is required")
	assert.Contains(t, errorFindings[0].Message, "README.md")
	assert.Equal(t, 3, countSeverity(findings, SeverityWarning), "LICENSE, SECURITY.md and CONTRIBUTING.md downgrade to warnings")
}

func TestDocumentationCompleteReadme(t *testing.T) {
	dir := t.TempDir()
	writeCompanion(t, dir, "README.md",
		"# Flow\n\n## Getting Started\n\nRun it.\n\n## API Reference\n\nPOST /webhook\n")
	run := buildRun(t, dir, minimalDocument)

	findings := documentationValidator{}.Evaluate(context.Background(), run)

	assert.Zero(t, countSeverity(findings, SeverityError))
	assert.True(t, hasFinding(findings, SeverityPass, "README.md present"))
	assert.True(t, hasFinding(findings, SeverityPass, "quickstart section"))
	assert.True(t, hasFinding(findings, SeverityPass, "API reference section"))
}

func TestDocumentationReadmeMissingSections(t *testing.T) {
	dir := t.TempDir()
	writeCompanion(t, dir, "README.md", "# Flow\n\nJust a title.\n")
	run := buildRun(t, dir, minimalDocument)

	findings := documentationValidator{}.Evaluate(context.Background(), run)

	assert.Zero(t, countSeverity(findings, SeverityError), "a thin README is a warning, not a failure")
	assert.True(t, hasFinding(findings, SeverityWarning, "missing the quickstart section"))
	assert.True(t, hasFinding(findings, SeverityWarning, "missing the API reference section"))
}

func TestDocumentationAllCompanionsPresent(t *testing.T) {
	dir := t.TempDir()
	writeCompanion(t, dir, "README.md", "# Flow\n\n## Setup\n\n## Usage\n")
	writeCompanion(t, dir, "LICENSE", "MIT")
	writeCompanion(t, dir, "SECURITY.md", "# Security Policy\n")
	writeCompanion(t, dir, "CONTRIBUTING.md", "# Contributing\n")
	run := buildRun(t, dir, minimalDocument)

	findings := documentationValidator{}.Evaluate(context.Background(), run)

	assert.Zero(t, countSeverity(findings, SeverityError))
	assert.Zero(t, countSeverity(findings, SeverityWarning))
	assert.Equal(t, 6, countSeverity(findings, SeverityPass), "four companions plus two README sections")
}
