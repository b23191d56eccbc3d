package graph

import (
	"testing"

	"github.com/teleivo/assertive/assert"
	"github.com/teleivo/assertive/require"
	"github.com/teleivo/mermaidterm/config"
)

func buildModel(t *testing.T, src string, cfg config.Config) *Model {
	t.Helper()
	p, err := parseGraph(src, cfg.StyleType, cfg)
	require.NoErrorf(t, err, "parseGraph")

	m := newModel(p)
	m.setStyleClasses(p)
	m.PaddingX = p.PaddingX
	m.PaddingY = p.PaddingY
	m.BoxBorderPadding = p.BoxBorderPadding
	m.UseASCII = p.UseASCII
	m.GraphDirection = p.GraphDirection
	m.setSubgraphs(p.Subgraphs)
	m.createMapping()
	return m
}

func TestCreateMappingAssignsDistinctGridCoords(t *testing.T) {
	m := buildModel(t, "graph LR\nA-->B\nB-->C", config.Default())
	require.EqualValuesf(t, len(m.Nodes), 3, "expected three nodes")
	for i := range m.Nodes {
		assert.Truef(t, m.Nodes[i].HasGridCoord, "node %d should have a grid coordinate", i)
	}
	assert.Falsef(t, m.Nodes[0].GridCoord == m.Nodes[1].GridCoord, "A and B should not collide")
	assert.Falsef(t, m.Nodes[1].GridCoord == m.Nodes[2].GridCoord, "B and C should not collide")
}

func TestCreateMappingRoutesEveryEdge(t *testing.T) {
	m := buildModel(t, "graph TD\nA-->B", config.Default())
	require.EqualValuesf(t, len(m.Edges), 1, "expected one edge")
	assert.Truef(t, len(m.Edges[0].Path) >= 2, "edge should have a routed path")
}

func TestCreateMappingSelfLoop(t *testing.T) {
	m := buildModel(t, "graph TD\nA-->A", config.Default())
	require.EqualValuesf(t, len(m.Edges), 1, "expected one self edge")
	assert.EqualValuesf(t, m.Edges[0].From, m.Edges[0].To, "self edge should point at itself")
}

func TestCreateMappingSubgraphBoundingBox(t *testing.T) {
	m := buildModel(t, "graph LR\nsubgraph S\nA-->B\nend", config.Default())
	require.EqualValuesf(t, len(m.Subgraphs), 1, "expected one subgraph")
	sg := m.Subgraphs[0]
	assert.Truef(t, sg.MaxX > sg.MinX, "subgraph should have positive width")
	assert.Truef(t, sg.MaxY > sg.MinY, "subgraph should have positive height")
}

func TestCreateMappingDrawsNodeBoxes(t *testing.T) {
	m := buildModel(t, "graph LR\nA-->B", config.Default())
	for i := range m.Nodes {
		assert.Truef(t, m.Nodes[i].Drawing != nil, "node %d should have a rasterized box", i)
	}
}
