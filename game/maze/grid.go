package maze

import (
	"errors"
	"math"
	"strings"
)

const (
	// DefaultCellSize is the world-space edge length of one cell.
	DefaultCellSize = 2.0

	wallRune = '#'
	openRune = '.'
)

var (
	ErrEmptyGrid   = errors.New("grid has no rows")
	ErrRaggedRows  = errors.New("grid rows differ in length")
	ErrInvalidRune = errors.New("grid row contains an unknown cell rune")
)

// Grid is a rectangular wall/open occupancy map.
//
// Landmarks are derived from the dimensions: the player starts at (1,1), the
// exit is the single opening in the bottom border at (width-2, height-1) and
// the pursuer spawns at (1, height-2).
type Grid struct {
	width  int
	height int
	cells  []State // row-major, index z*width + x
}

// newGrid returns a fully walled grid.
func newGrid(width, height int) *Grid {
	return &Grid{
		width:  width,
		height: height,
		cells:  make([]State, width*height),
	}
}

// Parse builds a grid from text rows where '#' is a wall and '.' is open.
func Parse(rows []string) (*Grid, error) {
	if len(rows) == 0 || len(rows[0]) == 0 {
		return nil, ErrEmptyGrid
	}

	g := newGrid(len(rows[0]), len(rows))
	for z, row := range rows {
		if len(row) != g.width {
			return nil, ErrRaggedRows
		}
		for x, r := range row {
			switch r {
			case wallRune:
			case openRune:
				g.set(Cell{X: x, Z: z}, Open)
			default:
				return nil, ErrInvalidRune
			}
		}
	}
	return g, nil
}

// Width returns the number of columns.
func (g *Grid) Width() int { return g.width }

// Height returns the number of rows.
func (g *Grid) Height() int { return g.height }

// Start is where the player spawns.
func (g *Grid) Start() Cell { return Cell{X: 1, Z: 1} }

// Exit is the border opening the player escapes through.
func (g *Grid) Exit() Cell { return Cell{X: g.width - 2, Z: g.height - 1} }

// ExitAnchor is the interior cell directly inside the exit.
func (g *Grid) ExitAnchor() Cell { return Cell{X: g.width - 2, Z: g.height - 2} }

// Spawn is where the pursuer starts, the bottom-left interior cell.
func (g *Grid) Spawn() Cell { return Cell{X: 1, Z: g.height - 2} }

// InBound reports whether (x, z) lies on the grid.
func (g *Grid) InBound(x, z int) bool {
	return x >= 0 && x < g.width && z >= 0 && z < g.height
}

// interior reports whether c lies strictly inside the outer border.
func (g *Grid) interior(c Cell) bool {
	return c.X > 0 && c.X < g.width-1 && c.Z > 0 && c.Z < g.height-1
}

// IsOpen reports whether (x, z) is on the grid and walkable.
func (g *Grid) IsOpen(x, z int) bool {
	return g.InBound(x, z) && g.cells[z*g.width+x] == Open
}

// At returns the state of c. Cells off the grid read as Wall.
func (g *Grid) At(c Cell) State {
	if !g.InBound(c.X, c.Z) {
		return Wall
	}
	return g.cells[c.Z*g.width+c.X]
}

func (g *Grid) set(c Cell, s State) {
	g.cells[c.Z*g.width+c.X] = s
}

// openNeighbors counts the open orthogonal neighbours of c.
func (g *Grid) openNeighbors(c Cell) int {
	n := 0
	for _, d := range Steps {
		nb := c.Add(d)
		if g.IsOpen(nb.X, nb.Z) {
			n++
		}
	}
	return n
}

// CellToWorld maps a cell to the world position of its centre.
func (g *Grid) CellToWorld(c Cell, cellSize float64) (float64, float64) {
	x := (float64(c.X) - float64(g.width)/2) * cellSize
	z := (float64(c.Z) - float64(g.height)/2) * cellSize
	return x, z
}

// WorldToCell maps a world position to the nearest cell. The result may lie
// off the grid.
func (g *Grid) WorldToCell(worldX, worldZ, cellSize float64) Cell {
	return Cell{
		X: roundHalfUp(worldX/cellSize + float64(g.width)/2),
		Z: roundHalfUp(worldZ/cellSize + float64(g.height)/2),
	}
}

// CanOccupy reports whether an entity may stand at the world position. Open
// cells are allowed, and so is the one cell past the exit so that the player
// can walk out of the maze.
func (g *Grid) CanOccupy(worldX, worldZ, cellSize float64) bool {
	c := g.WorldToCell(worldX, worldZ, cellSize)
	if g.IsOpen(c.X, c.Z) {
		return true
	}
	exit := g.Exit()
	return c.X == exit.X && c.Z == exit.Z+1 && g.IsOpen(exit.X, exit.Z)
}

// HasEscaped reports whether the world position is on or beyond the exit.
func (g *Grid) HasEscaped(worldX, worldZ, cellSize float64) bool {
	c := g.WorldToCell(worldX, worldZ, cellSize)
	exit := g.Exit()
	return c.X == exit.X && c.Z >= exit.Z
}

// Rows renders the grid as text rows using the Parse alphabet.
func (g *Grid) Rows() []string {
	rows := make([]string, g.height)
	var b strings.Builder
	for z := 0; z < g.height; z++ {
		b.Reset()
		for x := 0; x < g.width; x++ {
			if g.IsOpen(x, z) {
				b.WriteByte(openRune)
			} else {
				b.WriteByte(wallRune)
			}
		}
		rows[z] = b.String()
	}
	return rows
}

// String provides a textual representation of the grid with the start (S),
// exit (E) and pursuer spawn (P) marked.
func (g *Grid) String() string {
	rows := g.Rows()
	mark := func(c Cell, r byte) {
		if !g.InBound(c.X, c.Z) {
			return
		}
		row := []byte(rows[c.Z])
		row[c.X] = r
		rows[c.Z] = string(row)
	}
	mark(g.Spawn(), 'P')
	mark(g.Start(), 'S')
	mark(g.Exit(), 'E')
	return strings.Join(rows, "\n") + "\n"
}

// roundHalfUp rounds to the nearest integer with halves going up, so that
// -0.5 rounds to 0 rather than -1.
func roundHalfUp(v float64) int {
	return int(math.Floor(v + 0.5))
}
