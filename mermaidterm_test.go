package mermaidterm

import (
	"strings"
	"testing"

	"github.com/teleivo/assertive/assert"
	"github.com/teleivo/assertive/require"
	"github.com/teleivo/mermaidterm/config"
)

func TestRenderDispatchesGraph(t *testing.T) {
	out, err := Render("graph LR\nA-->B", config.Default())
	require.NoErrorf(t, err, "Render")
	assert.Truef(t, strings.Contains(out, "A"), "output should contain node A, got:\n%s", out)
	assert.Truef(t, strings.Contains(out, "B"), "output should contain node B, got:\n%s", out)
}

func TestRenderDispatchesSequence(t *testing.T) {
	out, err := Render("sequenceDiagram\nAlice->>Bob: hi", config.Default())
	require.NoErrorf(t, err, "Render")
	assert.Truef(t, strings.Contains(out, "Alice"), "output should contain participant Alice, got:\n%s", out)
}

func TestRenderRejectsInvalidConfig(t *testing.T) {
	cfg := config.Default()
	cfg.GraphDirection = "BAD"
	_, err := Render("graph LR\nA-->B", cfg)
	require.NotNil(t, err)
}

func TestRenderLeadingCommentStillDetectsGraph(t *testing.T) {
	out, err := Render("%% comment\ngraph TD\nA-->B", config.Default())
	require.NoErrorf(t, err, "Render")
	assert.Truef(t, strings.Contains(out, "A"), "output should contain node A, got:\n%s", out)
}
