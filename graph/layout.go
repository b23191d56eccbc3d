package graph

import (
	"github.com/teleivo/mermaidterm/internal/assert"
	"github.com/teleivo/mermaidterm/internal/canvas"
	"github.com/teleivo/mermaidterm/internal/grid"
)

func newModel(p *properties) *Model {
	m := &Model{
		Grid:            map[grid.GridCoord]int{},
		ColumnWidth:     map[int]int{},
		RowHeight:       map[int]int{},
		StyleClasses:    map[string]StyleClass{},
		StyleType:       p.StyleType,
		PaddingX:        p.PaddingX,
		PaddingY:        p.PaddingY,
		BoxBorderPadding: p.BoxBorderPadding,
		UseASCII:        p.UseASCII,
		GraphDirection:  p.GraphDirection,
		nodeIndexByName: map[string]int{},
		drawing:         canvas.New(0, 0),
	}

	for _, nodeName := range p.Order {
		children := p.Data[nodeName]
		parentIdx, _ := m.getOrInsertNode(nodeName, nodeName, "")
		for _, edge := range children {
			childIdx, inserted := m.getOrInsertNode(edge.Child.Name, edge.Child.Label, edge.Child.StyleClass)
			if inserted {
				m.Nodes[parentIdx].StyleClassName = edge.Parent.StyleClass
			}
			m.Edges = append(m.Edges, Edge{
				From:     parentIdx,
				To:       childIdx,
				Text:     edge.Label,
				StartDir: grid.Middle,
				EndDir:   grid.Middle,
			})
		}
	}

	return m
}

func (m *Model) getOrInsertNode(name, label, styleClass string) (int, bool) {
	if idx, ok := m.nodeIndexByName[name]; ok {
		if label != name {
			m.Nodes[idx].Label = label
		}
		return idx, false
	}
	idx := len(m.Nodes)
	m.Nodes = append(m.Nodes, Node{
		Name:           name,
		Label:          label,
		Index:          idx,
		StyleClassName: styleClass,
	})
	m.nodeIndexByName[name] = idx
	return idx, true
}

func (m *Model) setStyleClasses(p *properties) {
	m.StyleClasses = p.StyleClasses
	m.StyleType = p.StyleType
	m.PaddingX = p.PaddingX
	m.PaddingY = p.PaddingY
	for i := range m.Nodes {
		if m.Nodes[i].StyleClassName == "" {
			continue
		}
		if class, ok := m.StyleClasses[m.Nodes[i].StyleClassName]; ok {
			m.Nodes[i].StyleClass = class
		}
	}
}

func (m *Model) setSubgraphs(textSubgraphs []textSubgraph) {
	m.Subgraphs = nil
	for _, tsg := range textSubgraphs {
		var nodes []int
		for _, name := range tsg.Nodes {
			if idx, ok := m.nodeIndexByName[name]; ok {
				nodes = append(nodes, idx)
			}
		}
		m.Subgraphs = append(m.Subgraphs, Subgraph{Name: tsg.Name, Nodes: nodes})
	}
	for idx, tsg := range textSubgraphs {
		if tsg.Parent != nil {
			v := *tsg.Parent
			m.Subgraphs[idx].Parent = &v
		}
		m.Subgraphs[idx].Children = append([]int(nil), tsg.Children...)
	}
}

func (m *Model) getChildren(nodeIdx int) []int {
	var children []int
	for _, e := range m.Edges {
		if e.From == nodeIdx {
			children = append(children, e.To)
		}
	}
	return children
}

// createMapping runs the full five-phase layout: placing roots, placing
// children level by level, sizing columns/rows, routing edges, rasterizing
// node boxes, and finally computing subgraph bounding boxes and the offset
// needed to keep everything non-negative.
func (m *Model) createMapping() {
	const maxLevels = 100
	highestPositionPerLevel := make([]int, maxLevels)

	nodesFound := map[string]bool{}
	var rootNodes []int
	for _, node := range m.Nodes {
		if !nodesFound[node.Name] {
			rootNodes = append(rootNodes, node.Index)
		}
		nodesFound[node.Name] = true
		for _, child := range m.getChildren(node.Index) {
			nodesFound[m.Nodes[child].Name] = true
		}
	}

	hasExternalRoots := false
	hasSubgraphRootsWithEdges := false
	for _, idx := range rootNodes {
		if m.isNodeInAnySubgraph(idx) {
			if len(m.getChildren(idx)) > 0 {
				hasSubgraphRootsWithEdges = true
			}
		} else {
			hasExternalRoots = true
		}
	}

	shouldSeparate := m.GraphDirection == "LR" && hasExternalRoots && hasSubgraphRootsWithEdges
	var externalRootNodes, subgraphRootNodes []int
	if shouldSeparate {
		for _, idx := range rootNodes {
			if m.isNodeInAnySubgraph(idx) {
				subgraphRootNodes = append(subgraphRootNodes, idx)
			} else {
				externalRootNodes = append(externalRootNodes, idx)
			}
		}
	} else {
		externalRootNodes = rootNodes
	}

	for _, idx := range externalRootNodes {
		var coord grid.GridCoord
		if m.GraphDirection == "LR" {
			coord = m.reserveSpotInGrid(idx, grid.GridCoord{X: 0, Y: highestPositionPerLevel[0]})
		} else {
			coord = m.reserveSpotInGrid(idx, grid.GridCoord{X: highestPositionPerLevel[0], Y: 0})
		}
		m.Nodes[idx].GridCoord = coord
		m.Nodes[idx].HasGridCoord = true
		highestPositionPerLevel[0] += 4
	}

	if shouldSeparate && len(subgraphRootNodes) > 0 {
		const subgraphLevel = 4
		for _, idx := range subgraphRootNodes {
			var coord grid.GridCoord
			if m.GraphDirection == "LR" {
				coord = m.reserveSpotInGrid(idx, grid.GridCoord{X: subgraphLevel, Y: highestPositionPerLevel[subgraphLevel]})
			} else {
				coord = m.reserveSpotInGrid(idx, grid.GridCoord{X: highestPositionPerLevel[subgraphLevel], Y: subgraphLevel})
			}
			m.Nodes[idx].GridCoord = coord
			m.Nodes[idx].HasGridCoord = true
			highestPositionPerLevel[subgraphLevel] += 4
		}
	}

	for idx := 0; idx < len(m.Nodes); idx++ {
		assert.That(m.Nodes[idx].HasGridCoord, "node %d has no grid coordinate before child placement", idx)
		gridCoord := m.Nodes[idx].GridCoord
		var childLevel int
		if m.GraphDirection == "LR" {
			childLevel = gridCoord.X + 4
		} else {
			childLevel = gridCoord.Y + 4
		}
		highestPosition := highestPositionPerLevel[childLevel]
		for _, childIdx := range m.getChildren(idx) {
			if m.Nodes[childIdx].HasGridCoord {
				continue
			}
			var coord grid.GridCoord
			if m.GraphDirection == "LR" {
				coord = m.reserveSpotInGrid(childIdx, grid.GridCoord{X: childLevel, Y: highestPosition})
			} else {
				coord = m.reserveSpotInGrid(childIdx, grid.GridCoord{X: highestPosition, Y: childLevel})
			}
			m.Nodes[childIdx].GridCoord = coord
			m.Nodes[childIdx].HasGridCoord = true
			highestPositionPerLevel[childLevel] = highestPosition + 4
			highestPosition = highestPositionPerLevel[childLevel]
		}
	}

	for idx := range m.Nodes {
		m.setColumnWidth(idx)
	}

	for edgeIdx := range m.Edges {
		m.determinePath(edgeIdx)
		m.increaseGridSizeForPath(m.Edges[edgeIdx].Path)
		m.determineLabelLine(edgeIdx)
	}

	for idx := range m.Nodes {
		dc := m.gridToDrawingCoord(m.Nodes[idx].GridCoord, nil)
		m.Nodes[idx].DrawingCoord = dc
		m.Nodes[idx].Drawing = drawBox(&m.Nodes[idx], m)
	}

	m.setDrawingSizeToGridConstraints()
	m.calculateSubgraphBoundingBoxes()
	m.offsetDrawingForSubgraphs()
}

func (m *Model) setColumnWidth(idx int) {
	node := m.Nodes[idx]
	gridCoord := node.GridCoord
	nameLen := len([]rune(node.Label))
	cols := [3]int{1, 2*m.BoxBorderPadding + nameLen, 1}
	rows := [3]int{1, 1 + 2*m.BoxBorderPadding, 1}

	for offset, col := range cols {
		x := gridCoord.X + offset
		m.ColumnWidth[x] = grid.Max(m.ColumnWidth[x], col)
	}
	for offset, row := range rows {
		y := gridCoord.Y + offset
		m.RowHeight[y] = grid.Max(m.RowHeight[y], row)
	}

	if gridCoord.X > 0 {
		m.ColumnWidth[gridCoord.X-1] = m.PaddingX
	}
	if gridCoord.Y > 0 {
		basePadding := m.PaddingY
		if m.hasIncomingEdgeFromOutsideSubgraph(idx) {
			basePadding += 4
		}
		m.RowHeight[gridCoord.Y-1] = grid.Max(m.RowHeight[gridCoord.Y-1], basePadding)
	}
}

func (m *Model) increaseGridSizeForPath(path []grid.GridCoord) {
	for _, coord := range path {
		if _, ok := m.ColumnWidth[coord.X]; !ok {
			m.ColumnWidth[coord.X] = m.PaddingX / 2
		}
		if _, ok := m.RowHeight[coord.Y]; !ok {
			m.RowHeight[coord.Y] = m.PaddingY / 2
		}
	}
}

func (m *Model) reserveSpotInGrid(nodeIdx int, requested grid.GridCoord) grid.GridCoord {
	coord := requested
	for {
		if _, occupied := m.Grid[coord]; !occupied {
			break
		}
		if m.GraphDirection == "LR" {
			coord = grid.GridCoord{X: coord.X, Y: coord.Y + 4}
		} else {
			coord = grid.GridCoord{X: coord.X + 4, Y: coord.Y}
		}
	}
	for x := 0; x < 3; x++ {
		for y := 0; y < 3; y++ {
			m.Grid[grid.GridCoord{X: coord.X + x, Y: coord.Y + y}] = nodeIdx
		}
	}
	return coord
}

// gridToDrawingCoord maps a grid cell, optionally shifted by dir, to the
// drawing coordinate at the center of that cell's column/row.
func (m *Model) gridToDrawingCoord(coord grid.GridCoord, dir *grid.Direction) grid.DrawingCoord {
	target := coord
	if dir != nil {
		target = coord.Add(*dir)
	}
	x, y := 0, 0
	for col := 0; col < target.X; col++ {
		x += m.ColumnWidth[col]
	}
	for row := 0; row < target.Y; row++ {
		y += m.RowHeight[row]
	}
	return grid.DrawingCoord{
		X: x + m.ColumnWidth[target.X]/2 + m.OffsetX,
		Y: y + m.RowHeight[target.Y]/2 + m.OffsetY,
	}
}

func (m *Model) determinePath(edgeIdx int) {
	e := &m.Edges[edgeIdx]
	fromPos := grid.NodePosition{GridCoord: m.Nodes[e.From].GridCoord}
	toPos := grid.NodePosition{GridCoord: m.Nodes[e.To].GridCoord}
	preferredDir, preferredOpp, altDir, altOpp := grid.DetermineStartAndEndDir(m.GraphDirection, e.From == e.To, fromPos, toPos)

	from := m.Nodes[e.From].GridCoord.Add(preferredDir)
	to := m.Nodes[e.To].GridCoord.Add(preferredOpp)

	preferredPath, err := grid.FindPath(m, from, to)
	if err != nil {
		e.StartDir = altDir
		e.EndDir = altOpp
		e.Path = nil
		return
	}
	preferredPath = grid.MergePath(preferredPath)

	fromAlt := m.Nodes[e.From].GridCoord.Add(altDir)
	toAlt := m.Nodes[e.To].GridCoord.Add(altOpp)

	alternativePath, err := grid.FindPath(m, fromAlt, toAlt)
	if err != nil {
		e.StartDir = preferredDir
		e.EndDir = preferredOpp
		e.Path = preferredPath
		return
	}
	alternativePath = grid.MergePath(alternativePath)

	if len(preferredPath) <= len(alternativePath) {
		e.StartDir = preferredDir
		e.EndDir = preferredOpp
		e.Path = preferredPath
	} else {
		e.StartDir = altDir
		e.EndDir = altOpp
		e.Path = alternativePath
	}
}

func (m *Model) determineLabelLine(edgeIdx int) {
	e := &m.Edges[edgeIdx]
	labelLen := len([]rune(e.Text))
	if labelLen == 0 {
		return
	}
	path := e.Path
	if len(path) < 2 {
		return
	}

	prevStep := path[0]
	largestLine := []grid.GridCoord{path[0], path[1]}
	largestLineSize := 0
	for _, step := range path[1:] {
		line := []grid.GridCoord{prevStep, step}
		lineWidth := m.calculateLineWidth(line)
		if lineWidth >= labelLen {
			largestLine = line
			break
		} else if lineWidth > largestLineSize {
			largestLineSize = lineWidth
			largestLine = line
		}
		prevStep = step
	}

	maxX, minX := largestLine[0].X, largestLine[1].X
	if minX > maxX {
		maxX, minX = minX, maxX
	}
	middleX := minX + (maxX-minX)/2
	m.ColumnWidth[middleX] = grid.Max(m.ColumnWidth[middleX], labelLen+2)
	e.LabelLine = largestLine
}

func (m *Model) calculateLineWidth(line []grid.GridCoord) int {
	sum := 0
	for _, c := range line {
		sum += m.ColumnWidth[c.X]
	}
	return sum
}

func (m *Model) calculateSubgraphBoundingBoxes() {
	for idx := range m.Subgraphs {
		m.calculateSubgraphBoundingBox(idx)
	}
	m.ensureSubgraphSpacing()
}

func (m *Model) calculateSubgraphBoundingBox(idx int) {
	if len(m.Subgraphs[idx].Nodes) == 0 {
		return
	}
	minX, minY := 1_000_000, 1_000_000
	maxX, maxY := -1_000_000, -1_000_000

	for _, childIdx := range m.Subgraphs[idx].Children {
		m.calculateSubgraphBoundingBox(childIdx)
		if len(m.Subgraphs[childIdx].Nodes) > 0 {
			minX = grid.Min(minX, m.Subgraphs[childIdx].MinX)
			minY = grid.Min(minY, m.Subgraphs[childIdx].MinY)
			maxX = grid.Max(maxX, m.Subgraphs[childIdx].MaxX)
			maxY = grid.Max(maxY, m.Subgraphs[childIdx].MaxY)
		}
	}

	for _, nodeIdx := range m.Subgraphs[idx].Nodes {
		node := m.Nodes[nodeIdx]
		if node.Drawing == nil {
			continue
		}
		coord := node.DrawingCoord
		dw, dh := node.Drawing.Size()
		nodeMinX, nodeMinY := coord.X, coord.Y
		nodeMaxX, nodeMaxY := nodeMinX+dw, nodeMinY+dh
		minX = grid.Min(minX, nodeMinX)
		minY = grid.Min(minY, nodeMinY)
		maxX = grid.Max(maxX, nodeMaxX)
		maxY = grid.Max(maxY, nodeMaxY)
	}

	const subgraphPadding = 2
	const subgraphLabelSpace = 2
	m.Subgraphs[idx].MinX = minX - subgraphPadding
	m.Subgraphs[idx].MinY = minY - subgraphPadding - subgraphLabelSpace
	m.Subgraphs[idx].MaxX = maxX + subgraphPadding
	m.Subgraphs[idx].MaxY = maxY + subgraphPadding
}

func (m *Model) ensureSubgraphSpacing() {
	const minSpacing = 1
	var rootSubgraphs []int
	for idx, sg := range m.Subgraphs {
		if sg.Parent == nil && len(sg.Nodes) > 0 {
			rootSubgraphs = append(rootSubgraphs, idx)
		}
	}

	for i := 0; i < len(rootSubgraphs); i++ {
		for j := i + 1; j < len(rootSubgraphs); j++ {
			sg1Idx, sg2Idx := rootSubgraphs[i], rootSubgraphs[j]
			sg1, sg2 := &m.Subgraphs[sg1Idx], &m.Subgraphs[sg2Idx]

			if sg1.MinX < sg2.MaxX && sg1.MaxX > sg2.MinX {
				if sg1.MaxY >= sg2.MinY-minSpacing && sg1.MinY < sg2.MinY {
					sg2.MinY = sg1.MaxY + minSpacing + 1
				} else if sg2.MaxY >= sg1.MinY-minSpacing && sg2.MinY < sg1.MinY {
					sg1.MinY = sg2.MaxY + minSpacing + 1
				}
			}

			if sg1.MinY < sg2.MaxY && sg1.MaxY > sg2.MinY {
				if sg1.MaxX >= sg2.MinX-minSpacing && sg1.MinX < sg2.MinX {
					sg2.MinX = sg1.MaxX + minSpacing + 1
				} else if sg2.MaxX >= sg1.MinX-minSpacing && sg2.MinX < sg1.MinX {
					sg1.MinX = sg2.MaxX + minSpacing + 1
				}
			}
		}
	}
}

func (m *Model) offsetDrawingForSubgraphs() {
	if len(m.Subgraphs) == 0 {
		return
	}
	minX, minY := 0, 0
	for _, sg := range m.Subgraphs {
		minX = grid.Min(minX, sg.MinX)
		minY = grid.Min(minY, sg.MinY)
	}

	offsetX, offsetY := -minX, -minY
	if offsetX == 0 && offsetY == 0 {
		return
	}

	m.OffsetX = offsetX
	m.OffsetY = offsetY

	for i := range m.Subgraphs {
		m.Subgraphs[i].MinX += offsetX
		m.Subgraphs[i].MinY += offsetY
		m.Subgraphs[i].MaxX += offsetX
		m.Subgraphs[i].MaxY += offsetY
	}

	for i := range m.Nodes {
		m.Nodes[i].DrawingCoord.X += offsetX
		m.Nodes[i].DrawingCoord.Y += offsetY
	}
}

func (m *Model) isNodeInAnySubgraph(nodeIdx int) bool {
	for _, sg := range m.Subgraphs {
		for _, idx := range sg.Nodes {
			if idx == nodeIdx {
				return true
			}
		}
	}
	return false
}

func (m *Model) getNodeSubgraph(nodeIdx int) (int, bool) {
	for i, sg := range m.Subgraphs {
		for _, idx := range sg.Nodes {
			if idx == nodeIdx {
				return i, true
			}
		}
	}
	return 0, false
}

// hasIncomingEdgeFromOutsideSubgraph reports whether nodeIdx needs extra
// top padding to make room for an edge entering its subgraph from outside:
// true only when nodeIdx is the topmost member of its subgraph that such
// an edge targets, so the padding isn't duplicated on every row.
func (m *Model) hasIncomingEdgeFromOutsideSubgraph(nodeIdx int) bool {
	nodeSubgraph, ok := m.getNodeSubgraph(nodeIdx)
	if !ok {
		return false
	}

	hasExternalEdge := false
	for _, e := range m.Edges {
		if e.To == nodeIdx {
			sourceSubgraph, sourceOk := m.getNodeSubgraph(e.From)
			if !sourceOk || sourceSubgraph != nodeSubgraph {
				hasExternalEdge = true
				break
			}
		}
	}
	if !hasExternalEdge {
		return false
	}

	for _, other := range m.Subgraphs[nodeSubgraph].Nodes {
		if other == nodeIdx {
			continue
		}
		if !m.Nodes[other].HasGridCoord {
			continue
		}
		otherHasExternal := false
		for _, e := range m.Edges {
			if e.To == other {
				sourceSubgraph, sourceOk := m.getNodeSubgraph(e.From)
				if !sourceOk || sourceSubgraph != nodeSubgraph {
					otherHasExternal = true
					break
				}
			}
		}
		if otherHasExternal && m.Nodes[other].GridCoord.Y < m.Nodes[nodeIdx].GridCoord.Y {
			return false
		}
	}

	return true
}

func (m *Model) setDrawingSizeToGridConstraints() {
	maxX, maxY := 0, 0
	for _, w := range m.ColumnWidth {
		maxX += w
	}
	for _, h := range m.RowHeight {
		maxY += h
	}
	m.drawing.GrowTo(maxX-1, maxY-1)
}
