package maze

import "sort"

// region is a 4-connected set of open cells.
type region struct {
	cells  []Cell
	member []bool // indexed like Grid.cells
}

// regionFrom flood-fills the open region containing start.
func (g *Grid) regionFrom(start Cell, visited []bool) region {
	r := region{member: make([]bool, len(g.cells))}
	if !g.IsOpen(start.X, start.Z) {
		return r
	}

	stack := []Cell{start}
	visited[g.index(start)] = true
	for len(stack) > 0 {
		cell := pop(&stack)
		r.cells = append(r.cells, cell)
		r.member[g.index(cell)] = true

		for _, d := range Steps {
			nb := cell.Add(d)
			if !g.IsOpen(nb.X, nb.Z) || visited[g.index(nb)] {
				continue
			}
			visited[g.index(nb)] = true
			stack = append(stack, nb)
		}
	}
	return r
}

// regions returns every open region, largest first. Regions of equal size
// keep their row-major discovery order.
func (g *Grid) regions() []region {
	visited := make([]bool, len(g.cells))
	var out []region
	for z := 0; z < g.height; z++ {
		for x := 0; x < g.width; x++ {
			c := Cell{X: x, Z: z}
			if g.At(c) == Open && !visited[g.index(c)] {
				out = append(out, g.regionFrom(c, visited))
			}
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return len(out[i].cells) > len(out[j].cells) })
	return out
}

// closestPair finds the pair (a, b) with a in from and b in target that
// minimises the Manhattan distance. It runs a multi-source breadth-first
// search over interior cells, ignoring walls, so that every step equals one
// unit of Manhattan distance. Border cells never take part, which keeps the
// carved staircase off the border.
func (g *Grid) closestPair(from []Cell, target []bool) (Cell, Cell, bool) {
	origin := make([]int, len(g.cells))
	for i := range origin {
		origin[i] = -1
	}

	queue := make([]Cell, 0, len(from))
	for i, c := range from {
		if !g.interior(c) {
			continue
		}
		origin[g.index(c)] = i
		queue = append(queue, c)
	}

	for head := 0; head < len(queue); head++ {
		cell := queue[head]
		if target[g.index(cell)] {
			return from[origin[g.index(cell)]], cell, true
		}
		for _, d := range Steps {
			nb := cell.Add(d)
			if !g.interior(nb) || origin[g.index(nb)] >= 0 {
				continue
			}
			origin[g.index(nb)] = origin[g.index(cell)]
			queue = append(queue, nb)
		}
	}
	return Cell{}, Cell{}, false
}

// carveLine opens every cell on the orthogonal staircase from a to b,
// moving along x until aligned and then along z.
func (g *Grid) carveLine(a, b Cell) {
	c := a
	g.set(c, Open)
	for c.X != b.X {
		if c.X < b.X {
			c.X++
		} else {
			c.X--
		}
		g.set(c, Open)
	}
	for c.Z != b.Z {
		if c.Z < b.Z {
			c.Z++
		} else {
			c.Z--
		}
		g.set(c, Open)
	}
}

// connect carves the shortest orthogonal staircase between two regions.
func (g *Grid) connect(a, b region) bool {
	from, to, ok := g.closestPair(a.cells, b.member)
	if !ok {
		return false
	}
	g.carveLine(from, to)
	return true
}

func (g *Grid) index(c Cell) int {
	return c.Z*g.width + c.X
}

// pop removes and returns the last element of a stack of cells.
func pop(s *[]Cell) Cell {
	lastIndex := len(*s) - 1
	popped := (*s)[lastIndex]
	*s = (*s)[:lastIndex]
	return popped
}
