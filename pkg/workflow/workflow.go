// Package workflow models declarative automation-workflow documents: a JSON
// graph of typed nodes plus the connections between them.
//
// # Document shape
//
// A document carries a name, an ordered node list, and a connection map keyed
// by source node name. Everything else (settings, credentials, vendor extras)
// is kept as untyped bags so unknown fields never break loading.
//
// # Loading
//
// Parse is deliberately forgiving: syntactically valid JSON always yields a
// Document, even when field types do not match the expected shape. Shape
// violations are reported by schema validation (see ValidateEnvelope), not by
// the decoder, so a malformed document produces findings instead of aborting
// the run. Only a JSON syntax error is terminal.
package workflow

import (
	"fmt"

	json "github.com/goccy/go-json"

	"github.com/flowlint/flowlint/pkg/logger"
)

var workflowLog = logger.New("workflow:workflow")

// Document is a parsed automation-workflow document.
type Document struct {
	Name        string                     `json:"name"`
	Nodes       []Node                     `json:"nodes"`
	Connections map[string]NodeConnections `json:"connections,omitempty"`
	Settings    map[string]any             `json:"settings,omitempty"`

	// Raw holds the exact bytes the document was loaded from. All text
	// scanning and size checks run over Raw, never over a re-marshal, so
	// results are byte-deterministic across runs.
	Raw []byte `json:"-"`
	// Path is the filesystem location the document was loaded from.
	Path string `json:"-"`
	// Value is the generic JSON decoding of Raw, used for schema validation.
	Value any `json:"-"`
}

// Node is one typed step in the workflow graph.
type Node struct {
	ID          string         `json:"id"`
	Name        string         `json:"name"`
	Type        string         `json:"type"`
	Parameters  map[string]any `json:"parameters,omitempty"`
	Disabled    bool           `json:"disabled,omitempty"`
	Credentials map[string]any `json:"credentials,omitempty"`
}

// NodeConnections maps an output kind (usually "main") to its connection
// slots. Each slot holds the edges leaving that output index.
type NodeConnections map[string][][]Connection

// Connection is one directed edge to a downstream node, addressed by node
// name.
type Connection struct {
	Node  string `json:"node"`
	Type  string `json:"type"`
	Index int    `json:"index"`
}

// Parse decodes raw document bytes. A JSON syntax error is returned as a
// terminal error; any well-formed JSON yields a Document, with fields that
// fail typed decoding recovered best-effort from the generic value.
func Parse(raw []byte, path string) (*Document, error) {
	var value any
	if err := json.Unmarshal(raw, &value); err != nil {
		return nil, fmt.Errorf("invalid JSON syntax: %w", err)
	}

	doc := &Document{}
	if err := json.Unmarshal(raw, doc); err != nil {
		workflowLog.Printf("Typed decode failed, salvaging fields: %v", err)
		doc = &Document{}
		doc.salvage(value)
	}

	doc.Raw = raw
	doc.Path = path
	doc.Value = value
	workflowLog.Printf("Parsed document: name=%q, nodes=%d, connections=%d", doc.Name, len(doc.Nodes), len(doc.Connections))
	return doc, nil
}

// salvage extracts whatever typed fields can be recovered from the generic
// JSON value after a failed struct decode.
func (d *Document) salvage(value any) {
	root, ok := value.(map[string]any)
	if !ok {
		return
	}
	if name, ok := root["name"].(string); ok {
		d.Name = name
	}
	rawNodes, ok := root["nodes"].([]any)
	if !ok {
		return
	}
	for _, rawNode := range rawNodes {
		m, ok := rawNode.(map[string]any)
		if !ok {
			continue
		}
		d.Nodes = append(d.Nodes, salvageNode(m))
	}
}

func salvageNode(m map[string]any) Node {
	var n Node
	if v, ok := m["id"].(string); ok {
		n.ID = v
	}
	if v, ok := m["name"].(string); ok {
		n.Name = v
	}
	if v, ok := m["type"].(string); ok {
		n.Type = v
	}
	if v, ok := m["parameters"].(map[string]any); ok {
		n.Parameters = v
	}
	if v, ok := m["disabled"].(bool); ok {
		n.Disabled = v
	}
	if v, ok := m["credentials"].(map[string]any); ok {
		n.Credentials = v
	}
	return n
}

// NodeNames returns the set of node names present in the document. Connection
// maps address nodes by name, so referential checks key off this set.
func (d *Document) NodeNames() map[string]bool {
	names := make(map[string]bool, len(d.Nodes))
	for _, node := range d.Nodes {
		if node.Name != "" {
			names[node.Name] = true
		}
	}
	return names
}

// EdgeCount returns the total number of directed edges in the connection
// graph.
func (d *Document) EdgeCount() int {
	count := 0
	for _, conns := range d.Connections {
		for _, slots := range conns {
			for _, slot := range slots {
				count += len(slot)
			}
		}
	}
	return count
}

// FunctionNodes returns the enabled nodes that carry user code.
func (d *Document) FunctionNodes() []Node {
	var nodes []Node
	for _, node := range d.Nodes {
		if !node.Disabled && node.IsFunction() {
			nodes = append(nodes, node)
		}
	}
	return nodes
}

// HasTrigger reports whether at least one enabled trigger-class node exists.
func (d *Document) HasTrigger() bool {
	for _, node := range d.Nodes {
		if !node.Disabled && node.IsTrigger() {
			return true
		}
	}
	return false
}
