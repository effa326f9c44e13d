package maze

// State is the occupancy of a single grid cell.
type State uint8

const (
	Wall State = iota // Wall blocks movement.
	Open              // Open is walkable floor.
)

// String returns the state name.
func (s State) String() string {
	if s == Open {
		return "open"
	}
	return "wall"
}

// Cell is a grid position. X is the column index and Z the row index.
type Cell struct {
	X int `json:"x"`
	Z int `json:"z"`
}

// Add returns the cell offset by d.
func (c Cell) Add(d Cell) Cell {
	return Cell{X: c.X + d.X, Z: c.Z + d.Z}
}

// Manhattan returns the 4-connected grid distance between c and o.
func (c Cell) Manhattan(o Cell) int {
	return abs(c.X-o.X) + abs(c.Z-o.Z)
}

// Adjacent reports whether c and o share an edge.
func (c Cell) Adjacent(o Cell) bool {
	return c.Manhattan(o) == 1
}

var (
	// Steps are the four orthogonal unit moves: up, right, down, left.
	Steps = [4]Cell{{X: 0, Z: -1}, {X: 1, Z: 0}, {X: 0, Z: 1}, {X: -1, Z: 0}}

	// jumps are the carve moves used by the backtracker, two cells at a time.
	jumps = [4]Cell{{X: 0, Z: -2}, {X: 2, Z: 0}, {X: 0, Z: 2}, {X: -2, Z: 0}}
)

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
