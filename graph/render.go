package graph

import (
	"fmt"
	"sort"

	"github.com/teleivo/mermaidterm/config"
	"github.com/teleivo/mermaidterm/internal/canvas"
	"github.com/teleivo/mermaidterm/internal/grid"
)

// Render parses a graph/flowchart block, lays it out on the routing grid,
// and rasterizes it into a character canvas. When cfg.ShowCoords is true,
// the output is wrapped with a row/column coordinate ruler for debugging
// routing issues.
func Render(mermaid string, cfg config.Config) (string, error) {
	p, err := parseGraph(mermaid, cfg.StyleType, cfg)
	if err != nil {
		return "", err
	}

	m := newModel(p)
	m.setStyleClasses(p)
	m.PaddingX = p.PaddingX
	m.PaddingY = p.PaddingY
	m.BoxBorderPadding = p.BoxBorderPadding
	m.UseASCII = p.UseASCII
	m.GraphDirection = p.GraphDirection
	m.setSubgraphs(p.Subgraphs)
	m.createMapping()

	drawing := m.draw()
	if cfg.ShowCoords {
		drawing = debugDrawingWrapper(drawing)
		drawing = debugCoordWrapper(drawing, m)
	}
	return drawing.String() + "\n", nil
}

// draw runs the full rasterization pass over a laid-out model: subgraph
// boxes first (so node boxes draw on top of them), then node boxes, then the
// five edge-drawing layers merged in the same bottom-to-top order the
// original renderer uses: lines, corners, arrow heads, box-start junctions,
// labels.
func (m *Model) draw() *canvas.Canvas {
	m.drawSubgraphs()

	for idx := range m.Nodes {
		if !m.Nodes[idx].Drawn {
			m.drawNode(idx)
		}
	}

	lineDrawings := make([]*canvas.Canvas, len(m.Edges))
	cornerDrawings := make([]*canvas.Canvas, len(m.Edges))
	arrowHeadDrawings := make([]*canvas.Canvas, len(m.Edges))
	boxStartDrawings := make([]*canvas.Canvas, len(m.Edges))
	labelDrawings := make([]*canvas.Canvas, len(m.Edges))

	for edgeIdx := range m.Edges {
		line, boxStart, arrowHead, corners, label := m.drawEdge(edgeIdx)
		lineDrawings[edgeIdx] = line
		cornerDrawings[edgeIdx] = corners
		arrowHeadDrawings[edgeIdx] = arrowHead
		boxStartDrawings[edgeIdx] = boxStart
		labelDrawings[edgeIdx] = label
	}

	m.drawing = canvas.Merge(m.drawing, 0, 0, lineDrawings, m.UseASCII)
	m.drawing = canvas.Merge(m.drawing, 0, 0, cornerDrawings, m.UseASCII)
	m.drawing = canvas.Merge(m.drawing, 0, 0, arrowHeadDrawings, m.UseASCII)
	m.drawing = canvas.Merge(m.drawing, 0, 0, boxStartDrawings, m.UseASCII)
	m.drawing = canvas.Merge(m.drawing, 0, 0, labelDrawings, m.UseASCII)

	m.drawSubgraphLabels()

	return m.drawing
}

func (m *Model) drawNode(idx int) {
	node := &m.Nodes[idx]
	if node.Drawing == nil {
		return
	}
	m.drawing = canvas.Merge(m.drawing, node.DrawingCoord.X, node.DrawingCoord.Y, []*canvas.Canvas{node.Drawing}, m.UseASCII)
	node.Drawn = true
}

func (m *Model) drawEdge(edgeIdx int) (line, boxStart, arrowHead, corners, label *canvas.Canvas) {
	e := &m.Edges[edgeIdx]
	if len(e.Path) == 0 {
		blank := canvas.New(0, 0)
		return blank, blank, blank, blank, blank
	}
	return m.drawArrow(e)
}

func (m *Model) drawArrow(e *Edge) (line, boxStart, arrowHead, corners, label *canvas.Canvas) {
	label = m.drawArrowLabel(e)
	path, linesDrawn := m.drawPath(e.Path)
	boxStart = m.drawBoxStart(e.Path, linesDrawn[0])
	arrowHead = m.drawArrowHead(linesDrawn[len(linesDrawn)-1], e.EndDir.Opposite())
	corners = m.drawCorners(e.Path)
	return path, boxStart, arrowHead, corners, label
}

// drawPath draws every straight segment of path onto a blank overlay the size
// of the current drawing, returning both that overlay and, per segment, the drawing
// coordinates it actually wrote (used afterwards to place the arrow head and
// the box-start junction glyph).
func (m *Model) drawPath(path []grid.GridCoord) (*canvas.Canvas, [][]grid.DrawingCoord) {
	maxX, maxY := m.drawing.Size()
	drawing := canvas.New(maxX, maxY)

	var linesDrawn [][]grid.DrawingCoord
	previous := path[0]
	for _, next := range path[1:] {
		prevDC := m.gridToDrawingCoord(previous, nil)
		nextDC := m.gridToDrawingCoord(next, nil)
		if prevDC == nextDC {
			previous = next
			continue
		}
		line := m.drawLine(drawing, prevDC, nextDC, 1, -1)
		if len(line) == 0 {
			line = []grid.DrawingCoord{prevDC}
		}
		linesDrawn = append(linesDrawn, line)
		previous = next
	}
	return drawing, linesDrawn
}

func (m *Model) drawLine(drawing *canvas.Canvas, from, to grid.DrawingCoord, offsetFrom, offsetTo int) []grid.DrawingCoord {
	dir := grid.DetermineDirection(grid.GenericCoord{X: from.X, Y: from.Y}, grid.GenericCoord{X: to.X, Y: to.Y})

	var drawn []grid.DrawingCoord
	glyph := func(unicode, ascii string) string {
		if m.UseASCII {
			return ascii
		}
		return unicode
	}

	switch dir {
	case grid.Up:
		ch := glyph("│", "|")
		for y := to.Y - offsetTo; y <= from.Y-offsetFrom; y++ {
			drawn = append(drawn, grid.DrawingCoord{X: from.X, Y: y})
			drawing.Set(from.X, y, ch)
		}
	case grid.Down:
		ch := glyph("│", "|")
		for y := from.Y + offsetFrom; y <= to.Y+offsetTo; y++ {
			drawn = append(drawn, grid.DrawingCoord{X: from.X, Y: y})
			drawing.Set(from.X, y, ch)
		}
	case grid.Left:
		ch := glyph("─", "-")
		for x := to.X - offsetTo; x <= from.X-offsetFrom; x++ {
			drawn = append(drawn, grid.DrawingCoord{X: x, Y: from.Y})
			drawing.Set(x, from.Y, ch)
		}
	case grid.Right:
		ch := glyph("─", "-")
		for x := from.X + offsetFrom; x <= to.X+offsetTo; x++ {
			drawn = append(drawn, grid.DrawingCoord{X: x, Y: from.Y})
			drawing.Set(x, from.Y, ch)
		}
	case grid.UpperLeft:
		ch := glyph("╲", "\\")
		x, y := from.X, from.Y-offsetFrom
		for x >= to.X-offsetTo && y >= to.Y-offsetTo {
			drawn = append(drawn, grid.DrawingCoord{X: x, Y: y})
			drawing.Set(x, y, ch)
			x--
			y--
		}
	case grid.UpperRight:
		ch := glyph("╱", "/")
		x, y := from.X, from.Y-offsetFrom
		for x <= to.X+offsetTo && y >= to.Y-offsetTo {
			drawn = append(drawn, grid.DrawingCoord{X: x, Y: y})
			drawing.Set(x, y, ch)
			x++
			y--
		}
	case grid.LowerLeft:
		ch := glyph("╱", "/")
		x, y := from.X, from.Y+offsetFrom
		for x >= to.X-offsetTo && y <= to.Y+offsetTo {
			drawn = append(drawn, grid.DrawingCoord{X: x, Y: y})
			drawing.Set(x, y, ch)
			x--
			y++
		}
	case grid.LowerRight:
		ch := glyph("╲", "\\")
		x, y := from.X, from.Y+offsetFrom
		for x <= to.X+offsetTo && y <= to.Y+offsetTo {
			drawn = append(drawn, grid.DrawingCoord{X: x, Y: y})
			drawing.Set(x, y, ch)
			x++
			y++
		}
	}
	return drawn
}

// drawBoxStart places the junction glyph where a routed edge's first
// segment meets the source node's border, e.g. "┬" when the edge departs
// downward from the node's bottom edge.
func (m *Model) drawBoxStart(path []grid.GridCoord, firstLine []grid.DrawingCoord) *canvas.Canvas {
	maxX, maxY := m.drawing.Size()
	drawing := canvas.New(maxX, maxY)
	if m.UseASCII || len(firstLine) == 0 {
		return drawing
	}
	dir := grid.DetermineDirection(grid.GenericCoord{X: path[0].X, Y: path[0].Y}, grid.GenericCoord{X: path[1].X, Y: path[1].Y})

	var from grid.DrawingCoord
	if dir == grid.Up || dir == grid.Left {
		from = firstLine[len(firstLine)-1]
	} else {
		from = firstLine[0]
	}

	switch dir {
	case grid.Up:
		drawing.Set(from.X, from.Y+1, "┴")
	case grid.Down:
		drawing.Set(from.X, from.Y-1, "┬")
	case grid.Left:
		drawing.Set(from.X+1, from.Y, "┤")
	case grid.Right:
		drawing.Set(from.X-1, from.Y, "├")
	}
	return drawing
}

func (m *Model) drawArrowHead(line []grid.DrawingCoord, arrowDir grid.Direction) *canvas.Canvas {
	maxX, maxY := m.drawing.Size()
	drawing := canvas.New(maxX, maxY)
	if len(line) == 0 {
		return drawing
	}

	var head grid.DrawingCoord
	if arrowDir == grid.Up || arrowDir == grid.Left {
		head = line[0]
	} else {
		head = line[len(line)-1]
	}

	var ch string
	if !m.UseASCII {
		switch arrowDir {
		case grid.Up:
			ch = "▲"
		case grid.Down:
			ch = "▼"
		case grid.Left:
			ch = "◄"
		case grid.Right:
			ch = "►"
		case grid.UpperRight:
			ch = "◥"
		case grid.UpperLeft:
			ch = "◤"
		case grid.LowerRight:
			ch = "◢"
		case grid.LowerLeft:
			ch = "◣"
		default:
			ch = "●"
		}
	} else {
		switch arrowDir {
		case grid.Up:
			ch = "^"
		case grid.Down:
			ch = "v"
		case grid.Left:
			ch = "<"
		case grid.Right:
			ch = ">"
		default:
			ch = "*"
		}
	}

	drawing.Set(head.X, head.Y, ch)
	return drawing
}

func (m *Model) drawCorners(path []grid.GridCoord) *canvas.Canvas {
	maxX, maxY := m.drawing.Size()
	drawing := canvas.New(maxX, maxY)

	for idx := 1; idx < len(path)-1; idx++ {
		coord := path[idx]
		dc := m.gridToDrawingCoord(coord, nil)
		prevDir := grid.DetermineDirection(grid.GenericCoord{X: path[idx-1].X, Y: path[idx-1].Y}, grid.GenericCoord{X: coord.X, Y: coord.Y})
		nextDir := grid.DetermineDirection(grid.GenericCoord{X: coord.X, Y: coord.Y}, grid.GenericCoord{X: path[idx+1].X, Y: path[idx+1].Y})

		var corner string
		if !m.UseASCII {
			switch {
			case (prevDir == grid.Right && nextDir == grid.Down) || (prevDir == grid.Up && nextDir == grid.Left):
				corner = "┐"
			case (prevDir == grid.Right && nextDir == grid.Up) || (prevDir == grid.Down && nextDir == grid.Left):
				corner = "┘"
			case (prevDir == grid.Left && nextDir == grid.Down) || (prevDir == grid.Up && nextDir == grid.Right):
				corner = "┌"
			case (prevDir == grid.Left && nextDir == grid.Up) || (prevDir == grid.Down && nextDir == grid.Right):
				corner = "└"
			default:
				corner = "+"
			}
		} else {
			corner = "+"
		}
		drawing.Set(dc.X, dc.Y, corner)
	}
	return drawing
}

func (m *Model) drawArrowLabel(e *Edge) *canvas.Canvas {
	maxX, maxY := m.drawing.Size()
	drawing := canvas.New(maxX, maxY)
	if e.Text == "" || len(e.LabelLine) < 2 {
		return drawing
	}
	line := m.lineToDrawing(e.LabelLine)
	drawTextOnLine(drawing, line, e.Text)
	return drawing
}

func (m *Model) lineToDrawing(line []grid.GridCoord) []grid.DrawingCoord {
	out := make([]grid.DrawingCoord, len(line))
	for i, c := range line {
		out[i] = m.gridToDrawingCoord(c, nil)
	}
	return out
}

// drawBox rasterizes a single node's box: border, corners, and its label,
// each glyph individually wrapped in an HTML color span when the node's
// style class sets one and the output target is HTML.
func drawBox(node *Node, m *Model) *canvas.Canvas {
	gc := node.GridCoord
	w, h := 0, 0
	for i := 0; i < 2; i++ {
		w += m.ColumnWidth[gc.X+i]
		h += m.RowHeight[gc.Y+i]
	}
	drawing := canvas.New(w, h)

	if !m.UseASCII {
		for x := 1; x < w; x++ {
			drawing.Set(x, 0, "─")
			drawing.Set(x, h, "─")
		}
		for y := 1; y < h; y++ {
			drawing.Set(0, y, "│")
			drawing.Set(w, y, "│")
		}
		drawing.Set(0, 0, "┌")
		drawing.Set(w, 0, "┐")
		drawing.Set(0, h, "└")
		drawing.Set(w, h, "┘")
	} else {
		for x := 1; x < w; x++ {
			drawing.Set(x, 0, "-")
			drawing.Set(x, h, "-")
		}
		for y := 1; y < h; y++ {
			drawing.Set(0, y, "|")
			drawing.Set(w, y, "|")
		}
		drawing.Set(0, 0, "+")
		drawing.Set(w, 0, "+")
		drawing.Set(0, h, "+")
		drawing.Set(w, h, "+")
	}

	textY := h / 2
	label := []rune(node.Label)
	textX := w/2 - grid.CeilDiv(len(label), 2) + 1
	color := node.StyleClass.Styles["color"]
	for i, ch := range label {
		wrapped := wrapTextInColor(string(ch), color, m.StyleType)
		drawing.Set(textX+i, textY, wrapped)
	}
	return drawing
}

func wrapTextInColor(text, color, styleType string) string {
	if color == "" {
		return text
	}
	if styleType == "html" {
		return fmt.Sprintf("<span style='color: %s'>%s</span>", color, text)
	}
	return text
}

func (m *Model) drawSubgraphs() {
	for _, idx := range m.sortSubgraphsByDepth() {
		sg := m.Subgraphs[idx]
		if len(sg.Nodes) == 0 {
			continue
		}
		drawing := drawSubgraph(sg, m.UseASCII)
		m.drawing = canvas.Merge(m.drawing, sg.MinX, sg.MinY, []*canvas.Canvas{drawing}, m.UseASCII)
	}
}

func (m *Model) drawSubgraphLabels() {
	for _, sg := range m.Subgraphs {
		if len(sg.Nodes) == 0 {
			continue
		}
		label, offsetX, offsetY := drawSubgraphLabel(sg)
		m.drawing = canvas.Merge(m.drawing, offsetX, offsetY, []*canvas.Canvas{label}, m.UseASCII)
	}
}

func (m *Model) sortSubgraphsByDepth() []int {
	order := make([]int, len(m.Subgraphs))
	for i := range order {
		order[i] = i
	}
	sort.SliceStable(order, func(i, j int) bool {
		return m.getSubgraphDepth(order[i]) < m.getSubgraphDepth(order[j])
	})
	return order
}

func (m *Model) getSubgraphDepth(idx int) int {
	if m.Subgraphs[idx].Parent == nil {
		return 0
	}
	return 1 + m.getSubgraphDepth(*m.Subgraphs[idx].Parent)
}

func drawSubgraph(sg Subgraph, useASCII bool) *canvas.Canvas {
	width := sg.MaxX - sg.MinX
	height := sg.MaxY - sg.MinY
	if width <= 0 || height <= 0 {
		return canvas.New(0, 0)
	}
	drawing := canvas.New(width, height)
	if !useASCII {
		for x := 1; x < width; x++ {
			drawing.Set(x, 0, "─")
			drawing.Set(x, height, "─")
		}
		for y := 1; y < height; y++ {
			drawing.Set(0, y, "│")
			drawing.Set(width, y, "│")
		}
		drawing.Set(0, 0, "┌")
		drawing.Set(width, 0, "┐")
		drawing.Set(0, height, "└")
		drawing.Set(width, height, "┘")
	} else {
		for x := 1; x < width; x++ {
			drawing.Set(x, 0, "-")
			drawing.Set(x, height, "-")
		}
		for y := 1; y < height; y++ {
			drawing.Set(0, y, "|")
			drawing.Set(width, y, "|")
		}
		drawing.Set(0, 0, "+")
		drawing.Set(width, 0, "+")
		drawing.Set(0, height, "+")
		drawing.Set(width, height, "+")
	}
	return drawing
}

func drawSubgraphLabel(sg Subgraph) (drawing *canvas.Canvas, offsetX, offsetY int) {
	width := sg.MaxX - sg.MinX
	height := sg.MaxY - sg.MinY
	if width <= 0 || height <= 0 {
		return canvas.New(0, 0), 0, 0
	}
	drawing = canvas.New(width, height)
	labelY := 1
	name := []rune(sg.Name)
	labelX := width/2 - len(name)/2
	if labelX < 1 {
		labelX = 1
	}
	for i, ch := range name {
		x := labelX + i
		if x < width {
			drawing.Set(x, labelY, string(ch))
		}
	}
	return drawing, sg.MinX, sg.MinY
}

func drawTextOnLine(drawing *canvas.Canvas, line []grid.DrawingCoord, label string) {
	if len(line) < 2 {
		return
	}
	minX, maxX := line[0].X, line[1].X
	if minX > maxX {
		minX, maxX = maxX, minX
	}
	minY, maxY := line[0].Y, line[1].Y
	if minY > maxY {
		minY, maxY = maxY, minY
	}
	middleX := minX + (maxX-minX)/2
	middleY := minY + (maxY-minY)/2
	startX := middleX - len([]rune(label))/2
	drawText(drawing, grid.DrawingCoord{X: startX, Y: middleY}, label)
}

func drawText(drawing *canvas.Canvas, start grid.DrawingCoord, text string) {
	runes := []rune(text)
	drawing.GrowTo(start.X+len(runes), start.Y)
	for i, ch := range runes {
		drawing.Set(start.X+i, start.Y, string(ch))
	}
}

func debugDrawingWrapper(drawing *canvas.Canvas) *canvas.Canvas {
	maxX, maxY := drawing.Size()
	debug := canvas.New(maxX+2, maxY+1)
	for x := 0; x <= maxX; x++ {
		debug.Set(x+2, 0, fmt.Sprintf("%d", x%10))
	}
	for y := 0; y <= maxY; y++ {
		debug.Set(0, y+1, fmt.Sprintf("%2d", y))
	}
	for x := 0; x <= maxX; x++ {
		for y := 0; y <= maxY; y++ {
			debug.Set(x+2, y+1, drawing.Get(x, y))
		}
	}
	return debug
}

func debugCoordWrapper(drawing *canvas.Canvas, m *Model) *canvas.Canvas {
	maxX, maxY := drawing.Size()
	debug := canvas.New(maxX+2, maxY+1)

	currX := 3
	for x := 0; x < 100; x++ {
		w := m.ColumnWidth[x]
		if currX > maxX+w {
			break
		}
		debug.Set(currX, 0, fmt.Sprintf("%d", x%10))
		currX += w
	}
	currY := 2
	for y := 0; y < 100; y++ {
		h := m.RowHeight[y]
		if currY > maxY+h {
			break
		}
		pos := currY + h/2
		debug.Set(0, pos, fmt.Sprintf("%d", y%10))
		currY += h
	}

	return canvas.Merge(debug, 1, 1, []*canvas.Canvas{drawing}, m.UseASCII)
}
