package grid

// GridCoord addresses a cell in the layout grid: one unit per node column
// or row plus the routing lanes between them.
type GridCoord struct {
	X, Y int
}

// Add returns c shifted by dir's (DX, DY). Directions are 3x3 block offsets,
// not unit steps, so for a node's top-left cell c, c.Add(Down) is the
// bottom-middle cell of that node's block.
func (c GridCoord) Add(dir Direction) GridCoord {
	return GridCoord{X: c.X + dir.DX, Y: c.Y + dir.DY}
}

// DrawingCoord addresses a cell in the final rasterized character canvas.
type DrawingCoord struct {
	X, Y int
}

// Heuristic is the A* distance estimate between two grid cells: Manhattan
// distance, plus one when the path must bend at least once.
func Heuristic(a, b GridCoord) int {
	absX := abs(a.X - b.X)
	absY := abs(a.Y - b.Y)
	if absX == 0 || absY == 0 {
		return absX + absY
	}
	return absX + absY + 1
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}

// MergePath collapses consecutive collinear waypoints, keeping only the
// points where the path's direction actually changes.
func MergePath(path []GridCoord) []GridCoord {
	if len(path) <= 2 {
		return path
	}

	remove := make(map[int]bool)
	step0, step1 := path[0], path[1]
	for i := 2; i < len(path); i++ {
		step2 := path[i]
		prevDir := DetermineDirection(GenericCoord{X: step0.X, Y: step0.Y}, GenericCoord{X: step1.X, Y: step1.Y})
		dir := DetermineDirection(GenericCoord{X: step1.X, Y: step1.Y}, GenericCoord{X: step2.X, Y: step2.Y})
		if prevDir == dir {
			remove[i-1] = true
		}
		step0, step1 = step1, step2
	}

	merged := make([]GridCoord, 0, len(path))
	for i, c := range path {
		if !remove[i] {
			merged = append(merged, c)
		}
	}
	return merged
}

func Min(x, y int) int {
	if x < y {
		return x
	}
	return y
}

func Max(x, y int) int {
	if x > y {
		return x
	}
	return y
}

// CeilDiv divides x by y, rounding up.
func CeilDiv(x, y int) int {
	if x%y == 0 {
		return x / y
	}
	return x/y + 1
}
