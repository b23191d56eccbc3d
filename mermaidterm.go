// Package mermaidterm renders a Mermaid-subset diagram source into a
// terminal character canvas: flowchart/graph diagrams with routed edges and
// nested subgraphs, and sequence diagrams with lifelines and messages.
package mermaidterm

import (
	"strings"

	"github.com/teleivo/mermaidterm/config"
	"github.com/teleivo/mermaidterm/graph"
	"github.com/teleivo/mermaidterm/sequence"
)

// Render detects the diagram kind from input and dispatches to the matching
// parser and renderer, returning the finished character drawing.
func Render(input string, cfg config.Config) (string, error) {
	if err := cfg.Validate(); err != nil {
		return "", err
	}

	trimmed := strings.TrimSpace(input)
	if sequence.IsSequenceDiagram(trimmed) {
		m, err := sequence.Parse(trimmed)
		if err != nil {
			return "", err
		}
		return sequence.Render(m, cfg)
	}

	return graph.Render(trimmed, cfg)
}
