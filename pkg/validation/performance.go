package validation

import (
	"context"
	"fmt"

	"github.com/flowlint/flowlint/pkg/console"
	"github.com/flowlint/flowlint/pkg/logger"
)

var performanceLog = logger.New("validation:performance")

// performanceValidator grades document size, node count, and connection
// density against soft and hard thresholds, and scans function code for
// blocking constructs. Every threshold comparison is strictly greater-than.
type performanceValidator struct{}

func (performanceValidator) Name() string { return "performance" }
func (performanceValidator) Category() Category { return CategoryPerformance }

func (v performanceValidator) Evaluate(ctx context.Context, run *Run) []Finding {
	doc := run.Document
	limits := run.Limits
	var findings []Finding
	add := func(severity Severity, message, detail string) {
		findings = append(findings, Finding{
			Category:  CategoryPerformance,
			Severity:  severity,
			Message:   message,
			Detail:    detail,
			Validator: v.Name(),
		})
	}

	size := len(doc.Raw)
	switch {
	case size > limits.SizeFailBytes:
		add(SeverityError, fmt.Sprintf("document size %s exceeds hard limit %s",
			console.FormatFileSize(int64(size)), console.FormatFileSize(int64(limits.SizeFailBytes))), "")
	case size > limits.SizeWarnBytes:
		add(SeverityWarning, fmt.Sprintf("document size %s exceeds soft limit %s",
			console.FormatFileSize(int64(size)), console.FormatFileSize(int64(limits.SizeWarnBytes))), "")
	default:
		add(SeverityPass, fmt.Sprintf("document size %s within limits", console.FormatFileSize(int64(size))), "")
	}

	nodes := len(doc.Nodes)
	switch {
	case nodes > limits.NodesFail:
		add(SeverityError, fmt.Sprintf("node count %d exceeds hard limit %d", nodes, limits.NodesFail), "")
	case nodes > limits.NodesWarn:
		add(SeverityWarning, fmt.Sprintf("node count %d exceeds soft limit %d", nodes, limits.NodesWarn), "")
	default:
		add(SeverityPass, fmt.Sprintf("node count %d within limits", nodes), "")
	}

	edges := doc.EdgeCount()
	if edges > limits.EdgesWarn {
		add(SeverityWarning, fmt.Sprintf("dense connection graph: %d edges exceeds limit %d", edges, limits.EdgesWarn), "")
	} else {
		add(SeverityPass, fmt.Sprintf("connection graph has %d edges", edges), "")
	}

	functionNodes := doc.FunctionNodes()
	blockingIssues := 0
	for _, node := range functionNodes {
		code := node.FunctionCode()
		if code == "" {
			continue
		}
		for _, rule := range rulesByTier(TierPerformance) {
			match := rule.Pattern.FindString(code)
			if match == "" {
				continue
			}
			blockingIssues++
			add(rule.Severity, fmt.Sprintf("%s (node %q)", rule.Description, nodeLabel(node)), excerpt(match))
		}
	}
	if len(functionNodes) > 0 && blockingIssues == 0 {
		add(SeverityPass, "function code free of blocking patterns", "")
	}

	performanceLog.Printf("Performance findings: %d (size=%d, nodes=%d, edges=%d)", len(findings), size, nodes, edges)
	return findings
}
