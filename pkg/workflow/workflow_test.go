//go:build !integration

package workflow

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParse(t *testing.T) {
	raw := []byte(`{
		"name": "deploy-pipeline",
		"nodes": [
			{"id": "w1", "name": "Webhook", "type": "n8n-nodes-base.webhook", "parameters": {"path": "deploy"}},
			{"id": "f1", "name": "Process", "type": "n8n-nodes-base.function", "parameters": {"functionCode": "return items;"}}
		],
		"connections": {
			"Webhook": {"main": [[{"node": "Process", "type": "main", "index": 0}]]}
		},
		"settings": {"timezone": "UTC"}
	}`)

	doc, err := Parse(raw, "workflow.json")
	require.NoError(t, err)

	assert.Equal(t, "deploy-pipeline", doc.Name)
	assert.Len(t, doc.Nodes, 2)
	assert.Equal(t, "w1", doc.Nodes[0].ID)
	assert.Equal(t, "n8n-nodes-base.webhook", doc.Nodes[0].Type)
	assert.Equal(t, "deploy", doc.Nodes[0].Parameters["path"])
	assert.Equal(t, "workflow.json", doc.Path)
	assert.Equal(t, raw, doc.Raw, "raw bytes must be preserved exactly")
	assert.NotNil(t, doc.Value)

	require.Contains(t, doc.Connections, "Webhook")
	edges := doc.Connections["Webhook"]["main"]
	require.Len(t, edges, 1)
	require.Len(t, edges[0], 1)
	assert.Equal(t, "Process", edges[0][0].Node)
	assert.Equal(t, 0, edges[0][0].Index)
}

func TestParseInvalidSyntax(t *testing.T) {
	tests := []struct {
		name string
		raw  string
	}{
		{name: "truncated object", raw: `{"name":"T"`},
		{name: "trailing garbage", raw: `{"name":"T"} extra`},
		{name: "empty input", raw: ``},
		{name: "bare word", raw: `not-json`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			doc, err := Parse([]byte(tt.raw), "workflow.json")
			assert.Error(t, err)
			assert.Nil(t, doc)
			assert.Contains(t, err.Error(), "invalid JSON syntax")
		})
	}
}

func TestParseSalvagesMistypedFields(t *testing.T) {
	// connections has the wrong type, so the typed decode fails. The parser
	// must still recover name and the well-formed nodes.
	raw := []byte(`{
		"name": "partly-broken",
		"nodes": [
			{"id": "w1", "name": "Webhook", "type": "webhook"},
			"not-a-node",
			{"id": "f1", "type": "function", "parameters": {"functionCode": "return [];"}}
		],
		"connections": "oops"
	}`)

	doc, err := Parse(raw, "workflow.json")
	require.NoError(t, err, "well-formed JSON must parse even when shapes are wrong")

	assert.Equal(t, "partly-broken", doc.Name)
	require.Len(t, doc.Nodes, 2, "non-object node entries are dropped")
	assert.Equal(t, "w1", doc.Nodes[0].ID)
	assert.Equal(t, "f1", doc.Nodes[1].ID)
	assert.Empty(t, doc.Connections)
}

func TestParseRootNotObject(t *testing.T) {
	doc, err := Parse([]byte(`[1, 2, 3]`), "workflow.json")
	require.NoError(t, err)
	assert.Empty(t, doc.Name)
	assert.Empty(t, doc.Nodes)
	assert.NotNil(t, doc.Value)
}

func TestNodeNames(t *testing.T) {
	doc := &Document{Nodes: []Node{
		{ID: "a", Name: "First"},
		{ID: "b", Name: "Second"},
		{ID: "c"},
	}}

	names := doc.NodeNames()
	assert.Len(t, names, 2)
	assert.True(t, names["First"])
	assert.True(t, names["Second"])
}

func TestEdgeCount(t *testing.T) {
	tests := []struct {
		name     string
		doc      Document
		expected int
	}{
		{name: "no connections", doc: Document{}, expected: 0},
		{
			name: "single edge",
			doc: Document{Connections: map[string]NodeConnections{
				"A": {"main": [][]Connection{{{Node: "B"}}}},
			}},
			expected: 1,
		},
		{
			name: "fanout and second output",
			doc: Document{Connections: map[string]NodeConnections{
				"A": {"main": [][]Connection{
					{{Node: "B"}, {Node: "C"}},
					{{Node: "D"}},
				}},
				"B": {"main": [][]Connection{{{Node: "C"}}}},
			}},
			expected: 4,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, tt.doc.EdgeCount())
		})
	}
}

func TestFunctionNodes(t *testing.T) {
	doc := &Document{Nodes: []Node{
		{ID: "w", Type: "n8n-nodes-base.webhook"},
		{ID: "f1", Type: "n8n-nodes-base.function"},
		{ID: "f2", Type: "n8n-nodes-base.code", Disabled: true},
		{ID: "f3", Type: "functionItem"},
	}}

	nodes := doc.FunctionNodes()
	require.Len(t, nodes, 2, "disabled function nodes are skipped")
	assert.Equal(t, "f1", nodes[0].ID)
	assert.Equal(t, "f3", nodes[1].ID)
}

func TestHasTrigger(t *testing.T) {
	withTrigger := &Document{Nodes: []Node{
		{ID: "f", Type: "function"},
		{ID: "w", Type: "n8n-nodes-base.webhook"},
	}}
	assert.True(t, withTrigger.HasTrigger())

	disabledTrigger := &Document{Nodes: []Node{
		{ID: "w", Type: "webhook", Disabled: true},
		{ID: "f", Type: "function"},
	}}
	assert.False(t, disabledTrigger.HasTrigger(), "disabled triggers do not count")

	noTrigger := &Document{Nodes: []Node{{ID: "f", Type: "function"}}}
	assert.False(t, noTrigger.HasTrigger())
}
