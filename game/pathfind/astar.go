// Package pathfind computes shortest 4-connected paths over occupancy grids.
package pathfind

import (
	"container/heap"

	"github.com/beka-birhanu/mazechase/game/maze"
)

// Walkable is the read-only view of a grid the planner needs.
type Walkable interface {
	Width() int
	Height() int
	IsOpen(x, z int) bool
}

// Find returns the shortest path from start to goal using A* with the
// Manhattan heuristic and unit step costs.
//
// The path excludes start and includes goal. When start equals goal the path
// is empty and ok is true. When either endpoint is off the grid or on a wall,
// or goal is unreachable, Find returns nil and false.
func Find(g Walkable, start, goal maze.Cell) (path []maze.Cell, ok bool) {
	if !g.IsOpen(start.X, start.Z) || !g.IsOpen(goal.X, goal.Z) {
		return nil, false
	}
	if start == goal {
		return []maze.Cell{}, true
	}

	w, h := g.Width(), g.Height()
	index := func(c maze.Cell) int { return c.Z*w + c.X }

	gScore := make([]int, w*h)
	for i := range gScore {
		gScore[i] = -1
	}
	cameFrom := make([]int, w*h)
	closed := make([]bool, w*h)

	open := &openSet{}
	gScore[index(start)] = 0
	cameFrom[index(start)] = -1
	open.push(start, 0, start.Manhattan(goal))

	for open.Len() > 0 {
		n := heap.Pop(open).(*node)
		cur := n.cell
		if closed[index(cur)] {
			continue
		}
		if cur == goal {
			return reconstruct(cameFrom, index(goal), w), true
		}
		closed[index(cur)] = true

		for _, d := range maze.Steps {
			nb := cur.Add(d)
			if !g.IsOpen(nb.X, nb.Z) || closed[index(nb)] {
				continue
			}
			tentative := gScore[index(cur)] + 1
			if old := gScore[index(nb)]; old >= 0 && tentative >= old {
				continue
			}
			gScore[index(nb)] = tentative
			cameFrom[index(nb)] = index(cur)
			open.push(nb, tentative, nb.Manhattan(goal))
		}
	}
	return nil, false
}

// reconstruct walks predecessor links back from goal and reverses them. The
// start cell, whose predecessor is -1, is left out.
func reconstruct(cameFrom []int, goal, width int) []maze.Cell {
	var path []maze.Cell
	for i := goal; cameFrom[i] >= 0; i = cameFrom[i] {
		path = append(path, maze.Cell{X: i % width, Z: i / width})
	}
	for l, r := 0, len(path)-1; l < r; l, r = l+1, r-1 {
		path[l], path[r] = path[r], path[l]
	}
	return path
}
