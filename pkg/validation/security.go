package validation

import (
	"context"
	"fmt"

	"github.com/flowlint/flowlint/pkg/logger"
)

var securityLog = logger.New("validation:security")

// securityValidator scans the raw serialized document for credential,
// transport, and placeholder patterns, and the code parameters of
// function-kind nodes for injection patterns. Findings never include the
// matched secret in the message; the excerpt goes into Detail, which only
// verbose output renders.
type securityValidator struct{}

func (securityValidator) Name() string { return "security" }
func (securityValidator) Category() Category { return CategorySecurity }

func (v securityValidator) Evaluate(ctx context.Context, run *Run) []Finding {
	doc := run.Document
	text := string(doc.Raw)
	var findings []Finding

	// Document-wide tiers. Matches dedupe on the captured value so one
	// secret reports once, at the severity of the first matching tier.
	seen := make(map[string]bool)
	credentialIssues := 0
	for _, rule := range rulesByTier(TierHigh, TierMedium, TierPlaceholder) {
		for _, match := range rule.Pattern.FindAllStringSubmatch(text, -1) {
			value := match[0]
			if rule.ValueGroup > 0 && rule.ValueGroup < len(match) {
				value = match[rule.ValueGroup]
			}
			if rule.SkipValues != nil && rule.SkipValues(value) {
				continue
			}
			if seen[value] {
				continue
			}
			seen[value] = true

			finding := Finding{
				Category:  CategorySecurity,
				Severity:  rule.Severity,
				Message:   rule.Description,
				Detail:    excerpt(match[0]),
				Validator: v.Name(),
			}
			if rule.Tier == TierPlaceholder {
				// Placeholders are not secrets; naming them in the message
				// is safe and actionable.
				finding.Message = fmt.Sprintf("%s: %s", rule.Description, excerpt(value))
			} else {
				credentialIssues++
			}
			findings = append(findings, finding)
		}
	}
	if credentialIssues == 0 {
		findings = append(findings, Finding{
			Category:  CategorySecurity,
			Severity:  SeverityPass,
			Message:   "no credential or transport issues in document",
			Validator: v.Name(),
		})
	}

	// Injection patterns, confined to code-bearing fields.
	functionNodes := doc.FunctionNodes()
	injectionIssues := 0
	for _, node := range functionNodes {
		code := node.FunctionCode()
		if code == "" {
			continue
		}
		for _, rule := range rulesByTier(TierInjection) {
			match := rule.Pattern.FindString(code)
			if match == "" {
				continue
			}
			injectionIssues++
			findings = append(findings, Finding{
				Category:  CategorySecurity,
				Severity:  rule.Severity,
				Message:   fmt.Sprintf("%s (node %q)", rule.Description, nodeLabel(node)),
				Detail:    excerpt(match),
				Validator: v.Name(),
			})
		}
	}
	if len(functionNodes) > 0 && injectionIssues == 0 {
		findings = append(findings, Finding{
			Category:  CategorySecurity,
			Severity:  SeverityPass,
			Message:   "function code free of injection patterns",
			Validator: v.Name(),
		})
	}

	// Environment-style references are rewarded, not penalized.
	for _, rule := range rulesByTier(TierGoodPractice) {
		if match := rule.Pattern.FindString(text); match != "" {
			findings = append(findings, Finding{
				Category:  CategorySecurity,
				Severity:  rule.Severity,
				Message:   rule.Description,
				Detail:    excerpt(match),
				Validator: v.Name(),
			})
		}
	}

	securityLog.Printf("Security findings: %d (credential issues=%d, injection issues=%d)", len(findings), credentialIssues, injectionIssues)
	return findings
}
