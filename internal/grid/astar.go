package grid

import (
	"container/heap"
	"fmt"
)

// Occupancy reports whether a grid cell is free to route through. The
// target cell of a search is always treated as reachable even when
// Occupancy reports it occupied, since it is occupied by the destination
// node itself.
type Occupancy interface {
	IsFree(c GridCoord) bool
}

// FindPath runs an A* search from `from` to `to` over the four orthogonal
// neighbors of each cell, stepping around cells Occupancy reports occupied.
func FindPath(occ Occupancy, from, to GridCoord) ([]GridCoord, error) {
	pq := &queue{{coord: from, priority: 0}}
	heap.Init(pq)

	costSoFar := map[GridCoord]int{from: 0}
	cameFrom := map[GridCoord]*GridCoord{from: nil}

	steps := []GridCoord{{1, 0}, {-1, 0}, {0, 1}, {0, -1}}

	for pq.Len() > 0 {
		current := heap.Pop(pq).(item).coord
		if current == to {
			return reconstruct(cameFrom, current), nil
		}

		for _, step := range steps {
			next := GridCoord{X: current.X + step.X, Y: current.Y + step.Y}
			if !isFree(occ, next) && next != to {
				continue
			}
			newCost := costSoFar[current] + 1
			if existing, ok := costSoFar[next]; !ok || newCost < existing {
				costSoFar[next] = newCost
				priority := newCost + Heuristic(next, to)
				heap.Push(pq, item{coord: next, priority: priority})
				c := current
				cameFrom[next] = &c
			}
		}
	}

	return nil, fmt.Errorf("no path found from %v to %v", from, to)
}

func isFree(occ Occupancy, c GridCoord) bool {
	if c.X < 0 || c.Y < 0 {
		return false
	}
	return occ.IsFree(c)
}

func reconstruct(cameFrom map[GridCoord]*GridCoord, end GridCoord) []GridCoord {
	var path []GridCoord
	cur := &end
	for cur != nil {
		path = append([]GridCoord{*cur}, path...)
		cur = cameFrom[*cur]
	}
	return path
}

type item struct {
	coord    GridCoord
	priority int
}

// queue is a min-priority-queue of items, ordered by ascending priority so
// the cheapest frontier node pops first.
type queue []item

func (q queue) Len() int            { return len(q) }
func (q queue) Less(i, j int) bool  { return q[i].priority < q[j].priority }
func (q queue) Swap(i, j int)       { q[i], q[j] = q[j], q[i] }
func (q *queue) Push(x interface{}) { *q = append(*q, x.(item)) }
func (q *queue) Pop() interface{} {
	old := *q
	n := len(old)
	x := old[n-1]
	*q = old[:n-1]
	return x
}
