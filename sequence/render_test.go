package sequence

import (
	"strings"
	"testing"

	"github.com/teleivo/assertive/assert"
	"github.com/teleivo/assertive/require"
	"github.com/teleivo/mermaidterm/config"
)

func TestRenderBasics(t *testing.T) {
	m, err := Parse("sequenceDiagram\nAlice->>Bob: hello\nBob-->>Alice: ack")
	require.NoErrorf(t, err, "Parse")

	out, err := Render(m, config.NewTest(false, config.StyleCLI))
	require.NoErrorf(t, err, "Render")

	assert.Truef(t, strings.Contains(out, "Alice"), "output should contain participant label Alice, got:\n%s", out)
	assert.Truef(t, strings.Contains(out, "Bob"), "output should contain participant label Bob, got:\n%s", out)
	assert.Truef(t, strings.Contains(out, "hello"), "output should contain message label, got:\n%s", out)
	assert.Truef(t, strings.HasSuffix(out, "\n"), "output should end with a trailing newline")
}

func TestRenderASCIIRestrictsGlyphSet(t *testing.T) {
	m, err := Parse("sequenceDiagram\nA->>B: go\nB-->>A: back")
	require.NoErrorf(t, err, "Parse")

	out, err := Render(m, config.NewTest(true, config.StyleCLI))
	require.NoErrorf(t, err, "Render")

	for _, r := range out {
		if r > 127 {
			t.Fatalf("ascii output contains non-ascii rune %q:\n%s", r, out)
		}
	}
}

func TestRenderUnicodeUsesBoxDrawing(t *testing.T) {
	m, err := Parse("sequenceDiagram\nA->>B: go")
	require.NoErrorf(t, err, "Parse")

	out, err := Render(m, config.NewTest(false, config.StyleCLI))
	require.NoErrorf(t, err, "Render")

	assert.Truef(t, strings.ContainsAny(out, "┌┐└┘─│"), "unicode output should contain box-drawing glyphs, got:\n%s", out)
}

func TestRenderSelfMessage(t *testing.T) {
	m, err := Parse("sequenceDiagram\nA->>A: think it over")
	require.NoErrorf(t, err, "Parse")

	out, err := Render(m, config.NewTest(false, config.StyleCLI))
	require.NoErrorf(t, err, "Render")

	assert.Truef(t, strings.Contains(out, "think it over"), "output should contain self-message label, got:\n%s", out)
}

func TestRenderAutonumberPrefixesMessages(t *testing.T) {
	m, err := Parse("sequenceDiagram\nautonumber\nA->>B: first\nB->>A: second")
	require.NoErrorf(t, err, "Parse")

	out, err := Render(m, config.NewTest(false, config.StyleCLI))
	require.NoErrorf(t, err, "Render")

	assert.Truef(t, strings.Contains(out, "1. first"), "output should contain numbered message, got:\n%s", out)
	assert.Truef(t, strings.Contains(out, "2. second"), "output should contain numbered message, got:\n%s", out)
}

func TestRenderNoParticipants(t *testing.T) {
	_, err := Render(Model{}, config.Default())
	require.NotNil(t, err)
}
