package validation

import (
	"context"
	"fmt"

	"github.com/flowlint/flowlint/pkg/logger"
	"github.com/flowlint/flowlint/pkg/workflow"
)

var structureLog = logger.New("validation:structure")

// structureValidator verifies the document skeleton: envelope shape, required
// fields, node identity, trigger presence, connection integrity, and schedule
// sanity.
type structureValidator struct{}

func (structureValidator) Name() string { return "structure" }
func (structureValidator) Category() Category { return CategoryStructure }

func (v structureValidator) Evaluate(ctx context.Context, run *Run) []Finding {
	doc := run.Document
	var findings []Finding
	add := func(severity Severity, message, detail string) {
		findings = append(findings, Finding{
			Category:  CategoryStructure,
			Severity:  severity,
			Message:   message,
			Detail:    detail,
			Validator: v.Name(),
		})
	}

	// Envelope shape. The schema polices types, not presence, so shape and
	// presence defects report as distinct findings.
	violations, err := Compute(run.Cache, doc.Path, "schema-violations", func() ([]string, error) {
		return workflow.ValidateEnvelope(doc.Value)
	})
	switch {
	case err != nil:
		add(SeverityError, fmt.Sprintf("envelope schema unavailable: %v", err), "")
	case len(violations) > 0:
		for _, violation := range violations {
			add(SeverityError, fmt.Sprintf("document shape: %s", violation), "")
		}
	default:
		add(SeverityPass, "document matches the workflow envelope", "")
	}

	if doc.Name == "" {
		add(SeverityError, "workflow name is missing", "")
	} else {
		add(SeverityPass, "workflow name present", "")
	}

	if len(doc.Nodes) == 0 {
		add(SeverityError, "workflow has no nodes", "")
		structureLog.Printf("Structure findings: %d (empty document)", len(findings))
		return findings
	}
	add(SeverityPass, fmt.Sprintf("workflow has %d nodes", len(doc.Nodes)), "")

	if len(doc.Nodes) < run.Limits.MinNodes {
		add(SeverityWarning, fmt.Sprintf("low node count: %d nodes (minimum %d for a complete workflow)", len(doc.Nodes), run.Limits.MinNodes), "")
	}

	findings = append(findings, v.checkNodeIDs(doc)...)

	if doc.HasTrigger() {
		add(SeverityPass, "trigger node present", "")
	} else {
		add(SeverityWarning, "workflow has no trigger node", "")
	}

	findings = append(findings, v.checkNodeTypes(doc)...)
	findings = append(findings, v.checkConnections(doc)...)
	findings = append(findings, v.checkSchedules(doc)...)

	structureLog.Printf("Structure findings: %d", len(findings))
	return findings
}

func (v structureValidator) checkNodeIDs(doc *workflow.Document) []Finding {
	seen := make(map[string]int)
	var findings []Finding
	for _, node := range doc.Nodes {
		if node.ID == "" {
			continue
		}
		seen[node.ID]++
		if seen[node.ID] == 2 {
			findings = append(findings, Finding{
				Category:  CategoryStructure,
				Severity:  SeverityError,
				Message:   fmt.Sprintf("duplicate node id %q", node.ID),
				Validator: v.Name(),
			})
		}
	}
	if len(findings) == 0 {
		findings = append(findings, Finding{
			Category:  CategoryStructure,
			Severity:  SeverityPass,
			Message:   "node ids are unique",
			Validator: v.Name(),
		})
	}
	return findings
}

func (v structureValidator) checkNodeTypes(doc *workflow.Document) []Finding {
	var findings []Finding
	reported := make(map[string]bool)
	for _, node := range doc.Nodes {
		if node.Type == "" || node.IsKnownType() || reported[node.Type] {
			continue
		}
		reported[node.Type] = true
		findings = append(findings, Finding{
			Category:  CategoryStructure,
			Severity:  SeverityInfo,
			Message:   fmt.Sprintf("unknown node type %q (tolerated)", node.Type),
			Validator: v.Name(),
		})
	}
	if len(findings) == 0 {
		findings = append(findings, Finding{
			Category:  CategoryStructure,
			Severity:  SeverityPass,
			Message:   "all node types recognized",
			Validator: v.Name(),
		})
	}
	return findings
}

// checkConnections verifies referential integrity of the connection graph:
// every source key and every edge target must name an existing node.
func (v structureValidator) checkConnections(doc *workflow.Document) []Finding {
	if len(doc.Connections) == 0 {
		return nil
	}

	names := doc.NodeNames()
	var findings []Finding
	reported := make(map[string]bool)
	report := func(name string) {
		if reported[name] {
			return
		}
		reported[name] = true
		findings = append(findings, Finding{
			Category:  CategoryStructure,
			Severity:  SeverityError,
			Message:   fmt.Sprintf("connection references unknown node %q", name),
			Validator: v.Name(),
		})
	}

	for _, source := range sortedKeys(doc.Connections) {
		if !names[source] {
			report(source)
		}
		outputs := doc.Connections[source]
		for _, kind := range sortedKeys(outputs) {
			for _, slot := range outputs[kind] {
				for _, edge := range slot {
					if edge.Node != "" && !names[edge.Node] {
						report(edge.Node)
					}
				}
			}
		}
	}

	if len(findings) == 0 {
		findings = append(findings, Finding{
			Category:  CategoryStructure,
			Severity:  SeverityPass,
			Message:   "connections resolve to known nodes",
			Validator: v.Name(),
		})
	}
	return findings
}

func (v structureValidator) checkSchedules(doc *workflow.Document) []Finding {
	var findings []Finding
	for _, node := range doc.Nodes {
		for _, expr := range node.CronExpressions() {
			switch {
			case !workflow.IsCronExpression(expr):
				findings = append(findings, Finding{
					Category:  CategoryStructure,
					Severity:  SeverityWarning,
					Message:   fmt.Sprintf("invalid cron expression %q on node %q", expr, nodeLabel(node)),
					Validator: v.Name(),
				})
			case workflow.IsEveryMinuteCron(expr):
				findings = append(findings, Finding{
					Category:  CategoryStructure,
					Severity:  SeverityInfo,
					Message:   fmt.Sprintf("schedule on node %q fires every minute", nodeLabel(node)),
					Validator: v.Name(),
				})
			}
		}
	}
	return findings
}
