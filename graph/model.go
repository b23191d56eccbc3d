// Package graph parses, lays out, and renders the graph/flowchart subset:
// nodes connected by routed, orthogonal edges, optionally grouped into
// nested subgraphs.
package graph

import (
	"github.com/teleivo/mermaidterm/internal/canvas"
	"github.com/teleivo/mermaidterm/internal/grid"
)

// StyleClass is a classDef's name and its parsed key:value style
// attributes.
type StyleClass struct {
	Name   string
	Styles map[string]string
}

// textNode is a node as named at the source-text level, before layout
// assigns it a grid position.
type textNode struct {
	Name       string
	Label      string
	StyleClass string
}

// textEdge is a parsed arrow between two textNodes.
type textEdge struct {
	Parent textNode
	Child  textNode
	Label  string
}

// textSubgraph is a parsed subgraph block, referencing member nodes by name
// and other subgraphs by index.
type textSubgraph struct {
	Name     string
	Nodes    []string
	Parent   *int
	Children []int
}

// properties is the full result of parsing a graph/flowchart block: enough
// to build a laid-out Model from, but with nodes still addressed by name.
type properties struct {
	Data             map[string][]textEdge
	Order            []string // insertion order of Data's keys, since map iteration order is not source order
	StyleClasses     map[string]StyleClass
	GraphDirection   string
	StyleType        string
	PaddingX         int
	PaddingY         int
	BoxBorderPadding int
	Subgraphs        []textSubgraph
	UseASCII         bool
}

func newProperties() *properties {
	return &properties{
		Data:         map[string][]textEdge{},
		StyleClasses: map[string]StyleClass{},
	}
}

func (p *properties) addNode(n textNode) {
	if _, ok := p.Data[n.Name]; !ok {
		p.Data[n.Name] = nil
		p.Order = append(p.Order, n.Name)
	}
}

func (p *properties) setData(parent textNode, edge textEdge) {
	if _, ok := p.Data[parent.Name]; ok {
		p.Data[parent.Name] = append(p.Data[parent.Name], edge)
	} else {
		p.Data[parent.Name] = []textEdge{edge}
		p.Order = append(p.Order, parent.Name)
	}
	if _, ok := p.Data[edge.Child.Name]; !ok {
		p.Data[edge.Child.Name] = nil
		p.Order = append(p.Order, edge.Child.Name)
	}
}

// Node is a laid-out graph node: its text, its resolved grid placement, and
// its rendered box.
type Node struct {
	Name           string
	Label          string
	Drawing        *canvas.Canvas
	DrawingCoord   grid.DrawingCoord
	GridCoord      grid.GridCoord
	HasGridCoord   bool
	Drawn          bool
	Index          int
	StyleClassName string
	StyleClass     StyleClass
}

// Edge is a laid-out edge: its endpoints, routed path, and attachment
// directions.
type Edge struct {
	From, To  int
	Text      string
	Path      []grid.GridCoord
	LabelLine []grid.GridCoord
	StartDir  grid.Direction
	EndDir    grid.Direction
}

// Subgraph is a laid-out subgraph: its member nodes, its place in the
// subgraph tree, and its bounding box in drawing coordinates.
type Subgraph struct {
	Name       string
	Nodes      []int
	Parent     *int
	Children   []int
	MinX, MinY int
	MaxX, MaxY int
}

// Model is a fully laid-out graph, ready to render.
type Model struct {
	Nodes            []Node
	Edges            []Edge
	Grid             map[grid.GridCoord]int // node index occupying each reserved grid cell
	ColumnWidth      map[int]int
	RowHeight        map[int]int
	StyleClasses     map[string]StyleClass
	StyleType        string
	PaddingX         int
	PaddingY         int
	BoxBorderPadding int
	Subgraphs        []Subgraph
	OffsetX, OffsetY int
	UseASCII         bool
	GraphDirection   string
	nodeIndexByName  map[string]int
	drawing          *canvas.Canvas
}

// IsFree implements grid.Occupancy.
func (m *Model) IsFree(c grid.GridCoord) bool {
	_, occupied := m.Grid[c]
	return !occupied
}
