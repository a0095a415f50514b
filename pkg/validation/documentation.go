package validation

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/flowlint/flowlint/pkg/constants"
	"github.com/flowlint/flowlint/pkg/logger"
)

var documentationLog = logger.New("validation:documentation")

// readmeSectionPatterns holds the compiled section probes, index-aligned with
// constants.ReadmeSections.
var readmeSectionPatterns = func() []*regexp.Regexp {
	patterns := make([]*regexp.Regexp, len(constants.ReadmeSections))
	for i, section := range constants.ReadmeSections {
		patterns[i] = regexp.MustCompile(section.Pattern)
	}
	return patterns
}()

// documentationValidator checks for companion documents next to the workflow
// document and probes the README for the sections a usable project carries.
// Companion files are read through the run cache so repeated runs against the
// same directory do not re-read them.
type documentationValidator struct{}

func (documentationValidator) Name() string { return "documentation" }
func (documentationValidator) Category() Category { return CategoryDocumentation }

func (v documentationValidator) Evaluate(ctx context.Context, run *Run) []Finding {
	var findings []Finding
	add := func(severity Severity, message, detail string) {
		findings = append(findings, Finding{
			Category:  CategoryDocumentation,
			Severity:  severity,
			Message:   message,
			Detail:    detail,
			Validator: v.Name(),
		})
	}

	for _, companion := range constants.CompanionDocs {
		path := filepath.Join(run.BaseDir, companion.Name)
		data, err := run.Cache.Load(path)
		switch {
		case errors.Is(err, ErrNotFound):
			if companion.Required {
				add(SeverityError, fmt.Sprintf("required companion document %s is missing", companion.Name), "")
			} else {
				add(SeverityWarning, fmt.Sprintf("companion document %s is missing", companion.Name), "")
			}
			continue
		case err != nil:
			add(SeverityWarning, fmt.Sprintf("companion document %s could not be read", companion.Name), err.Error())
			continue
		}

		add(SeverityPass, fmt.Sprintf("companion document %s present", companion.Name), "")
		if strings.EqualFold(companion.Name, "README.md") {
			findings = append(findings, v.checkReadmeSections(data)...)
		}
	}

	documentationLog.Printf("Documentation findings: %d", len(findings))
	return findings
}

func (v documentationValidator) checkReadmeSections(content []byte) []Finding {
	var findings []Finding
	text := string(content)
	for i, section := range constants.ReadmeSections {
		if readmeSectionPatterns[i].MatchString(text) {
			findings = append(findings, Finding{
				Category:  CategoryDocumentation,
				Severity:  SeverityPass,
				Message:   fmt.Sprintf("README has the %s section", section.Label),
				Validator: v.Name(),
			})
			continue
		}
		findings = append(findings, Finding{
			Category:  CategoryDocumentation,
			Severity:  SeverityWarning,
			Message:   fmt.Sprintf("README is missing the %s section", section.Label),
			Validator: v.Name(),
		})
	}
	return findings
}
