// Package constants defines shared flowlint constants: the default document
// name, node-kind classification tables, and the companion artifact names the
// documentation and script validators look for.
package constants

// DefaultDocumentName is the workflow document validated when --file is not given.
const DefaultDocumentName = "workflow.json"

// DefaultLimitsFileName is the optional limits override file looked up next to
// the document when --config is not given.
const DefaultLimitsFileName = ".flowlint.yml"

// ShellInterpreter is the interpreter used for companion-script dry parsing
// (bash -n). Its absence is an operational failure when script checks run.
const ShellInterpreter = "bash"

// TriggerNodeTypes lists node type suffixes that start a workflow. A complete
// workflow needs at least one of these. Matching is done on the last segment
// of namespaced types ("n8n-nodes-base.webhook" -> "webhook").
var TriggerNodeTypes = []string{
	"webhook",
	"cron",
	"scheduleTrigger",
	"manualTrigger",
	"interval",
	"emailReadImap",
	"trigger",
}

// FunctionNodeTypes lists node type suffixes whose parameters carry executable
// code. Only these nodes are scanned for injection and performance patterns.
var FunctionNodeTypes = []string{
	"function",
	"functionItem",
	"code",
}

// ScheduleNodeTypes lists node type suffixes whose parameters may carry cron
// expressions worth a sanity check.
var ScheduleNodeTypes = []string{
	"cron",
	"scheduleTrigger",
}

// KnownNodeTypes lists the node type suffixes the structure validator treats
// as well known. Unknown types are tolerated (forward compatible) and only
// reported at info severity.
var KnownNodeTypes = []string{
	"webhook",
	"cron",
	"scheduleTrigger",
	"manualTrigger",
	"interval",
	"httpRequest",
	"function",
	"functionItem",
	"code",
	"set",
	"if",
	"switch",
	"merge",
	"noOp",
	"emailSend",
	"emailReadImap",
	"spreadsheetFile",
	"readBinaryFile",
	"writeBinaryFile",
	"trigger",
}

// CodeParameterKeys lists parameter names that hold executable code on
// function-kind nodes, in lookup order.
var CodeParameterKeys = []string{
	"functionCode",
	"jsCode",
	"code",
}

// CompanionDoc describes one companion text file the documentation validator
// probes for.
type CompanionDoc struct {
	Name     string
	Required bool
}

// CompanionDocs are the repository documents checked next to the workflow
// document. Only the README is required; the others downgrade to warnings.
var CompanionDocs = []CompanionDoc{
	{Name: "README.md", Required: true},
	{Name: "LICENSE", Required: false},
	{Name: "SECURITY.md", Required: false},
	{Name: "CONTRIBUTING.md", Required: false},
}

// ReadmeSection describes a README section probe: a human label plus the
// markdown-header regex (applied case-insensitively per line) that detects it.
type ReadmeSection struct {
	Label   string
	Pattern string
}

// ReadmeSections are the sections a usable README is expected to carry.
var ReadmeSections = []ReadmeSection{
	{Label: "quickstart", Pattern: `(?im)^#{1,6}\s.*(quick\s*start|getting\s+started|setup|installation)`},
	{Label: "API reference", Pattern: `(?im)^#{1,6}\s.*(api|endpoint|webhook|usage)`},
}
