package graph

import (
	"testing"

	"github.com/teleivo/assertive/assert"
	"github.com/teleivo/assertive/require"
	"github.com/teleivo/mermaidterm/config"
)

func TestParseGraphDirection(t *testing.T) {
	tests := map[string]struct {
		in   string
		want string
	}{
		"LR":        {"graph LR\nA-->B", "LR"},
		"Flowchart": {"flowchart TD\nA-->B", "TD"},
		"TB":        {"graph TB\nA-->B", "TD"},
	}

	for name, test := range tests {
		t.Run(name, func(t *testing.T) {
			p, err := parseGraph(test.in, config.StyleCLI, config.Default())
			require.NoErrorf(t, err, "parseGraph(%q)", test.in)
			assert.EqualValuesf(t, p.GraphDirection, test.want, "GraphDirection")
		})
	}
}

func TestParseGraphRejectsUnknownType(t *testing.T) {
	_, err := parseGraph("graph XY\nA-->B", config.StyleCLI, config.Default())
	require.NotNil(t, err)
}

func TestParseGraphEdgesAndLabels(t *testing.T) {
	p, err := parseGraph("graph LR\nA -->|go| B", config.StyleCLI, config.Default())
	require.NoErrorf(t, err, "parseGraph")
	require.EqualValuesf(t, len(p.Data["A"]), 1, "A should have one outgoing edge")
	assert.EqualValuesf(t, p.Data["A"][0].Child.Name, "B", "edge target")
	assert.EqualValuesf(t, p.Data["A"][0].Label, "go", "edge label")
}

func TestParseGraphAmpersandFanOut(t *testing.T) {
	p, err := parseGraph("graph LR\nA & B --> C", config.StyleCLI, config.Default())
	require.NoErrorf(t, err, "parseGraph")
	require.EqualValuesf(t, len(p.Data["A"]), 1, "A should connect to C")
	require.EqualValuesf(t, len(p.Data["B"]), 1, "B should connect to C")
	assert.EqualValuesf(t, p.Data["A"][0].Child.Name, "C", "A target")
	assert.EqualValuesf(t, p.Data["B"][0].Child.Name, "C", "B target")
}

func TestParseGraphClassDef(t *testing.T) {
	p, err := parseGraph("graph LR\nclassDef warn fill:red,color:white\nA:::warn-->B", config.StyleCLI, config.Default())
	require.NoErrorf(t, err, "parseGraph")
	class, ok := p.StyleClasses["warn"]
	require.Truef(t, ok, "warn class should be registered")
	assert.EqualValuesf(t, class.Styles["fill"], "red", "fill style")
	assert.EqualValuesf(t, class.Styles["color"], "white", "color style")
}

func TestParseGraphSubgraphMembership(t *testing.T) {
	p, err := parseGraph("graph LR\nsubgraph outer\nA-->B\nend\nC-->A", config.StyleCLI, config.Default())
	require.NoErrorf(t, err, "parseGraph")
	require.EqualValuesf(t, len(p.Subgraphs), 1, "one subgraph")
	sg := p.Subgraphs[0]
	assert.Truef(t, containsStr(sg.Nodes, "A"), "A should belong to outer")
	assert.Truef(t, containsStr(sg.Nodes, "B"), "B should belong to outer")
	assert.Falsef(t, containsStr(sg.Nodes, "C"), "C should not belong to outer")
}

func TestParseGraphPaddingPragma(t *testing.T) {
	p, err := parseGraph("paddingX=10\npaddingY=3\ngraph LR\nA-->B", config.StyleCLI, config.Default())
	require.NoErrorf(t, err, "parseGraph")
	assert.EqualValuesf(t, p.PaddingX, 10, "PaddingX override")
	assert.EqualValuesf(t, p.PaddingY, 3, "PaddingY override")
}
