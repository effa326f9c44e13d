package game

import "github.com/beka-birhanu/mazechase/game/maze"

// Snapshot is a read-only copy of the session state for the renderer.
type Snapshot struct {
	State       State           `json:"state"`
	Outcome     Outcome         `json:"outcome"`
	Difficulty  maze.Difficulty `json:"difficulty"`
	Seed        int64           `json:"seed"`
	Elapsed     float64         `json:"elapsed"`
	Stamina     float64         `json:"stamina"`
	Player      Vec2            `json:"player"`
	PlayerCell  maze.Cell       `json:"player_cell"`
	Pursuer     Vec2            `json:"pursuer"`
	PursuerCell maze.Cell       `json:"pursuer_cell"`
	Path        []maze.Cell     `json:"path"`
	PathIndex   int             `json:"path_index"`
}

// MazeView describes the grid and its world geometry.
type MazeView struct {
	Width    int       `json:"width"`
	Height   int       `json:"height"`
	CellSize float64   `json:"cell_size"`
	Start    maze.Cell `json:"start"`
	Exit     maze.Cell `json:"exit"`
	Spawn    maze.Cell `json:"spawn"`
	Rows     []string  `json:"rows"`
}

// Snapshot copies the current state. Positions are zero until the first
// Start.
func (s *Session) Snapshot() Snapshot {
	snap := Snapshot{
		State:      s.state,
		Outcome:    s.outcome,
		Difficulty: s.difficulty,
		Seed:       s.seed,
		Elapsed:    s.elapsed,
		Stamina:    s.stamina,
		Player:     s.player,
		Pursuer:    s.pursuer,
		PathIndex:  s.pathIdx,
		Path:       append([]maze.Cell(nil), s.path...),
	}
	if s.grid != nil {
		snap.PlayerCell = s.cell(s.player)
		snap.PursuerCell = s.cell(s.pursuer)
	}
	return snap
}

// MazeView returns the grid layout, or false before the first Start.
func (s *Session) MazeView() (MazeView, bool) {
	if s.grid == nil {
		return MazeView{}, false
	}
	return MazeView{
		Width:    s.grid.Width(),
		Height:   s.grid.Height(),
		CellSize: s.cellSize,
		Start:    s.grid.Start(),
		Exit:     s.grid.Exit(),
		Spawn:    s.grid.Spawn(),
		Rows:     s.grid.Rows(),
	}, true
}
