package graph

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/teleivo/mermaidterm/config"
	"github.com/teleivo/mermaidterm/internal/source"
)

var (
	paddingRe = regexp.MustCompile(`(?i)^padding([xy])\s*=\s*(\d+)$`)
	subgraphRe = regexp.MustCompile(`^\s*subgraph\s+(.+)$`)
	endRe      = regexp.MustCompile(`^\s*end\s*$`)
	arrowRe    = regexp.MustCompile(`^(.+)\s*-->\s*([^|\s].*)$`)
	labelRe    = regexp.MustCompile(`^(.+)\s*-->\|(.+)\|\s*(.+)$`)
	classRe    = regexp.MustCompile(`^classDef\s+(.+)\s+(.+)$`)
	ampRe      = regexp.MustCompile(`^(.+) & (.+)$`)
	nodeClassRe = regexp.MustCompile(`^(.+):::(.+)$`)
)

// ParseError reports a problem found while parsing a graph/flowchart block.
type ParseError struct {
	Msg string
}

func (e *ParseError) Error() string { return e.Msg }

// parseGraph builds properties from a graph/flowchart block, following the
// same line-splitting and comment-stripping rules as the sequence parser,
// plus a "---" terminator line, the paddingX/paddingY header pragmas, and the
// graph-specific subgraph/arrow grammar.
func parseGraph(mermaid string, styleType config.StyleType, cfg config.Config) (*properties, error) {
	raw := source.SplitLines(mermaid)

	var lines []string
	for _, line := range raw {
		if line == "---" {
			break
		}
		trimmed := strings.TrimSpace(line)
		if strings.HasPrefix(trimmed, "%%") {
			continue
		}
		if idx := strings.Index(line, "%%"); idx >= 0 {
			line = strings.TrimSpace(line[:idx])
		}
		if strings.TrimSpace(line) != "" {
			lines = append(lines, line)
		}
	}

	p := newProperties()
	p.StyleType = string(styleType)
	p.PaddingX = cfg.PaddingBetweenX
	p.PaddingY = cfg.PaddingBetweenY
	p.BoxBorderPadding = cfg.BoxBorderPadding
	p.UseASCII = cfg.UseASCII

	for len(lines) > 0 {
		trimmed := strings.TrimSpace(lines[0])
		if trimmed == "" {
			lines = lines[1:]
			continue
		}
		if caps := paddingRe.FindStringSubmatch(trimmed); caps != nil {
			value, err := strconv.Atoi(caps[2])
			if err != nil {
				return nil, err
			}
			if strings.EqualFold(caps[1], "x") {
				p.PaddingX = value
			} else {
				p.PaddingY = value
			}
			lines = lines[1:]
			continue
		}
		break
	}

	if len(lines) == 0 {
		return nil, &ParseError{"missing graph definition"}
	}

	switch lines[0] {
	case "graph LR", "flowchart LR":
		p.GraphDirection = "LR"
	case "graph TD", "flowchart TD", "graph TB", "flowchart TB":
		p.GraphDirection = "TD"
	default:
		return nil, &ParseError{fmt.Sprintf(
			"unsupported graph type %q. Supported types: graph TD, graph TB, graph LR, flowchart TD, flowchart TB, flowchart LR",
			lines[0])}
	}
	lines = lines[1:]

	var subgraphStack []int

	for _, line := range lines {
		trimmed := strings.TrimSpace(line)

		if caps := subgraphRe.FindStringSubmatch(trimmed); caps != nil {
			name := strings.TrimSpace(caps[1])
			var parent *int
			if len(subgraphStack) > 0 {
				v := subgraphStack[len(subgraphStack)-1]
				parent = &v
			}
			idx := len(p.Subgraphs)
			p.Subgraphs = append(p.Subgraphs, textSubgraph{Name: name, Parent: parent})
			if parent != nil {
				p.Subgraphs[*parent].Children = append(p.Subgraphs[*parent].Children, idx)
			}
			subgraphStack = append(subgraphStack, idx)
			continue
		}

		if endRe.MatchString(trimmed) {
			if len(subgraphStack) > 0 {
				subgraphStack = subgraphStack[:len(subgraphStack)-1]
			}
			continue
		}

		existing := map[string]bool{}
		for k := range p.Data {
			existing[k] = true
		}

		nodes, err := p.parseString(line)
		if err != nil {
			p.addNode(parseNode(line))
		} else {
			for _, n := range nodes {
				p.addNode(n)
			}
		}

		if len(subgraphStack) > 0 {
			for _, key := range p.Order {
				if existing[key] {
					continue
				}
				for _, idx := range subgraphStack {
					sg := &p.Subgraphs[idx]
					if !containsStr(sg.Nodes, key) {
						sg.Nodes = append(sg.Nodes, key)
					}
				}
			}
		}
	}

	return p, nil
}

func containsStr(xs []string, x string) bool {
	for _, s := range xs {
		if s == x {
			return true
		}
	}
	return false
}

// parseString recursively decomposes a single line into the TextNodes it
// produces, following the arrow / labeled-arrow / classDef / ampersand
// grammar. It falls back to treating either side of an arrow as a bare node
// when that side doesn't parse as a smaller expression itself.
func (p *properties) parseString(line string) ([]textNode, error) {
	line = strings.TrimSpace(line)
	if line == "" {
		return nil, nil
	}

	if caps := arrowRe.FindStringSubmatch(line); caps != nil {
		lhs, rhs := caps[1], caps[2]
		left := p.sideNodes(lhs)
		right := p.sideNodes(rhs)
		return p.setArrow(left, right, ""), nil
	}

	if caps := labelRe.FindStringSubmatch(line); caps != nil {
		lhs, label, rhs := caps[1], caps[2], caps[3]
		left := p.sideNodes(lhs)
		right := p.sideNodes(rhs)
		return p.setArrow(left, right, label), nil
	}

	if caps := classRe.FindStringSubmatch(line); caps != nil {
		class := parseStyleClass(caps[1], caps[2])
		p.StyleClasses[class.Name] = class
		return nil, nil
	}

	if caps := ampRe.FindStringSubmatch(line); caps != nil {
		lhs, rhs := caps[1], caps[2]
		left := p.sideNodes(lhs)
		right := p.sideNodes(rhs)
		return append(left, right...), nil
	}

	return nil, &ParseError{fmt.Sprintf("could not parse line: %s", line)}
}

func (p *properties) sideNodes(side string) []textNode {
	nodes, err := p.parseString(side)
	if err != nil || nodes == nil {
		return []textNode{parseNode(side)}
	}
	return nodes
}

func (p *properties) setArrow(lhs, rhs []textNode, label string) []textNode {
	for _, l := range lhs {
		for _, r := range rhs {
			p.setData(l, textEdge{Parent: l, Child: r, Label: label})
		}
	}
	return rhs
}

func parseNode(line string) textNode {
	trimmed := strings.TrimSpace(line)
	if caps := nodeClassRe.FindStringSubmatch(trimmed); caps != nil {
		name := strings.TrimSpace(caps[1])
		return textNode{Name: name, Label: name, StyleClass: strings.TrimSpace(caps[2])}
	}
	return textNode{Name: trimmed, Label: trimmed}
}

func parseStyleClass(name, styles string) StyleClass {
	styleMap := map[string]string{}
	for _, style := range strings.Split(styles, ",") {
		parts := strings.SplitN(style, ":", 2)
		key := parts[0]
		value := ""
		if len(parts) > 1 {
			value = parts[1]
		}
		styleMap[key] = value
	}
	return StyleClass{Name: strings.TrimSpace(name), Styles: styleMap}
}
