package workflow

import (
	"fmt"
	"slices"
	"strings"

	"github.com/flowlint/flowlint/pkg/constants"
)

// typeSuffix returns the last dot-separated segment of a node type, the
// vendor-independent node kind ("n8n-nodes-base.webhook" -> "webhook").
func typeSuffix(nodeType string) string {
	if idx := strings.LastIndex(nodeType, "."); idx >= 0 {
		return nodeType[idx+1:]
	}
	return nodeType
}

func matchesKind(nodeType string, kinds []string) bool {
	suffix := strings.ToLower(typeSuffix(nodeType))
	for _, kind := range kinds {
		if suffix == strings.ToLower(kind) {
			return true
		}
	}
	return false
}

// IsTrigger reports whether the node starts a workflow. Any type whose suffix
// ends in "trigger" counts, alongside the known trigger kinds.
func (n *Node) IsTrigger() bool {
	if strings.HasSuffix(strings.ToLower(typeSuffix(n.Type)), "trigger") {
		return true
	}
	return matchesKind(n.Type, constants.TriggerNodeTypes)
}

// IsFunction reports whether the node carries executable user code.
func (n *Node) IsFunction() bool {
	return matchesKind(n.Type, constants.FunctionNodeTypes)
}

// IsSchedule reports whether the node may carry cron expressions.
func (n *Node) IsSchedule() bool {
	return matchesKind(n.Type, constants.ScheduleNodeTypes)
}

// IsKnownType reports whether the node type is one the validators recognize.
// Unknown types are tolerated, this only drives an info-level finding.
func (n *Node) IsKnownType() bool {
	return matchesKind(n.Type, constants.KnownNodeTypes) || n.IsTrigger()
}

// FunctionCode returns the code-bearing parameter of a function-kind node, or
// "" when none is set. Lookup order follows constants.CodeParameterKeys.
func (n *Node) FunctionCode() string {
	for _, key := range constants.CodeParameterKeys {
		if code, ok := n.Parameters[key].(string); ok && code != "" {
			return code
		}
	}
	return ""
}

// Param is one string-valued parameter leaf, addressed by its dotted path
// ("options.url", "headers[0].value").
type Param struct {
	Path  string
	Value string
}

// StringParameters flattens the parameter bag into its string leaves in a
// deterministic order (map keys sorted at every level). Field-scoped scanning
// runs over these leaves instead of the whole document.
func (n *Node) StringParameters() []Param {
	var params []Param
	walkParams("", n.Parameters, &params)
	return params
}

func walkParams(prefix string, value any, out *[]Param) {
	switch v := value.(type) {
	case map[string]any:
		keys := make([]string, 0, len(v))
		for k := range v {
			keys = append(keys, k)
		}
		slices.Sort(keys)
		for _, k := range keys {
			walkParams(joinPath(prefix, k), v[k], out)
		}
	case []any:
		for i, item := range v {
			walkParams(fmt.Sprintf("%s[%d]", prefix, i), item, out)
		}
	case string:
		*out = append(*out, Param{Path: prefix, Value: v})
	}
}

func joinPath(prefix, key string) string {
	if prefix == "" {
		return key
	}
	return prefix + "." + key
}

func lastPathSegment(path string) string {
	if idx := strings.LastIndex(path, "."); idx >= 0 {
		path = path[idx+1:]
	}
	if idx := strings.Index(path, "["); idx >= 0 {
		path = path[:idx]
	}
	return path
}

// CronExpressions returns the cron strings configured on a schedule-kind
// node. Non-schedule nodes return nil.
func (n *Node) CronExpressions() []string {
	if !n.IsSchedule() {
		return nil
	}
	var out []string
	for _, param := range n.StringParameters() {
		switch strings.ToLower(lastPathSegment(param.Path)) {
		case "cronexpression", "cron", "expression":
			out = append(out, param.Value)
		}
	}
	return out
}
