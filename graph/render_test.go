package graph

import (
	"strings"
	"testing"

	"github.com/teleivo/assertive/assert"
	"github.com/teleivo/assertive/require"
	"github.com/teleivo/mermaidterm/config"
)

func TestRenderContainsNodeLabels(t *testing.T) {
	out, err := Render("graph LR\nAlice-->Bob", config.Default())
	require.NoErrorf(t, err, "Render")
	assert.Truef(t, strings.Contains(out, "Alice"), "output should contain Alice, got:\n%s", out)
	assert.Truef(t, strings.Contains(out, "Bob"), "output should contain Bob, got:\n%s", out)
}

func TestRenderASCIIRestrictsGlyphSet(t *testing.T) {
	out, err := Render("graph LR\nA-->B-->C", config.NewTest(true, config.StyleCLI))
	require.NoErrorf(t, err, "Render")
	for _, r := range out {
		if r > 127 {
			t.Fatalf("ascii output contains non-ascii rune %q:\n%s", r, out)
		}
	}
}

func TestRenderUnicodeUsesBoxDrawing(t *testing.T) {
	out, err := Render("graph LR\nA-->B", config.NewTest(false, config.StyleCLI))
	require.NoErrorf(t, err, "Render")
	assert.Truef(t, strings.ContainsAny(out, "┌┐└┘─│"), "unicode output should contain box-drawing glyphs, got:\n%s", out)
}

func TestRenderEdgeLabel(t *testing.T) {
	out, err := Render("graph LR\nA -->|go now| B", config.Default())
	require.NoErrorf(t, err, "Render")
	assert.Truef(t, strings.Contains(out, "go now"), "output should contain edge label, got:\n%s", out)
}

func TestRenderSubgraphLabel(t *testing.T) {
	out, err := Render("graph TD\nsubgraph Pipeline\nA-->B\nend", config.Default())
	require.NoErrorf(t, err, "Render")
	assert.Truef(t, strings.Contains(out, "Pipeline"), "output should contain subgraph label, got:\n%s", out)
}

func TestRenderNestedSubgraphs(t *testing.T) {
	out, err := Render("graph TD\nsubgraph Outer\nsubgraph Inner\nA-->B\nend\nC-->A\nend", config.Default())
	require.NoErrorf(t, err, "Render")
	assert.Truef(t, strings.Contains(out, "Outer"), "output should contain outer subgraph label, got:\n%s", out)
	assert.Truef(t, strings.Contains(out, "Inner"), "output should contain inner subgraph label, got:\n%s", out)
}

func TestRenderShowCoordsAddsRuler(t *testing.T) {
	cfg := config.Default()
	cfg.ShowCoords = true
	plain, err := Render("graph LR\nA-->B", config.Default())
	require.NoErrorf(t, err, "Render plain")
	withCoords, err := Render("graph LR\nA-->B", cfg)
	require.NoErrorf(t, err, "Render with coords")
	assert.Truef(t, len(withCoords) > len(plain), "coordinate ruler should add characters")
}

func TestRenderRejectsUnsupportedGraphType(t *testing.T) {
	_, err := Render("graph XY\nA-->B", config.Default())
	require.NotNil(t, err)
}
