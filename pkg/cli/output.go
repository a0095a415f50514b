package cli

import (
	"fmt"
	"io"
	"time"

	json "github.com/goccy/go-json"

	"github.com/flowlint/flowlint/pkg/console"
	"github.com/flowlint/flowlint/pkg/validation"
)

// reportOptions controls the optional sections of the human report.
type reportOptions struct {
	Timing  bool
	Verbose bool
}

// renderReport writes the findings report: a heading, findings grouped under
// category sections in report order, a summary line, and optionally the
// per-validator timing table.
func renderReport(w io.Writer, path string, summary *validation.RunSummary, opts reportOptions) {
	fmt.Fprintln(w, console.FormatTitleMessage("flowlint "+path))

	if opts.Verbose && summary.Overview != nil {
		fmt.Fprintf(w, "\n%s\n%s", console.FormatTitleMessage("document"), console.RenderStruct(*summary.Overview))
	}

	var current validation.Category
	for i, finding := range summary.Findings {
		if i == 0 || finding.Category != current {
			current = finding.Category
			fmt.Fprintf(w, "\n%s\n", console.FormatTitleMessage(string(current)))
		}
		fmt.Fprintf(w, "  %s\n", formatFinding(finding))
		if opts.Verbose && finding.Detail != "" {
			fmt.Fprintf(w, "    %s\n", console.FormatVerboseMessage(finding.Detail))
		}
	}

	fmt.Fprintf(w, "\n%s\n", summaryLine(summary))

	if opts.Timing && len(summary.Timings) > 0 {
		fmt.Fprintf(w, "\n%s", renderTimings(summary))
	}
}

func formatFinding(finding validation.Finding) string {
	switch finding.Severity {
	case validation.SeverityError:
		return console.FormatErrorMessage(finding.Message)
	case validation.SeverityWarning:
		return console.FormatWarningMessage(finding.Message)
	case validation.SeverityInfo:
		return console.FormatInfoMessage(finding.Message)
	default:
		return console.FormatSuccessMessage(finding.Message)
	}
}

func summaryLine(summary *validation.RunSummary) string {
	counts := fmt.Sprintf("%d errors, %d warnings, %d info, %d passed in %s",
		summary.Errors, summary.Warnings, summary.Info, summary.Passed,
		console.FormatDuration(summary.Duration))
	switch {
	case summary.Fatal:
		return console.FormatErrorMessage("aborted: " + counts)
	case summary.Succeeded():
		return console.FormatSuccessMessage(counts)
	default:
		return console.FormatErrorMessage(counts)
	}
}

func renderTimings(summary *validation.RunSummary) string {
	rows := make([][]string, 0, len(summary.Timings))
	var total time.Duration
	for _, timing := range summary.Timings {
		rows = append(rows, []string{timing.Name, console.FormatDuration(timing.Duration)})
		total += timing.Duration
	}
	return console.RenderTable(console.TableConfig{
		Title:     "Validator timings",
		Headers:   []string{"Validator", "Duration"},
		Rows:      rows,
		ShowTotal: true,
		TotalRow:  []string{"TOTAL", console.FormatDuration(total)},
	})
}

// renderJSON writes the machine-readable summary as a single JSON line.
func renderJSON(w io.Writer, summary *validation.RunSummary) error {
	data, err := json.Marshal(summary)
	if err != nil {
		return fmt.Errorf("encoding summary: %w", err)
	}
	_, err = fmt.Fprintln(w, string(data))
	return err
}
