/*
Package game runs a single maze-chase session.

A Session owns the generated maze and the positions of the player and the
pursuer. It is driven by Tick, which the host calls once per simulation
frame with the elapsed time and the player's input. The pursuer replans its
route with A* on a fixed cadence and walks it waypoint by waypoint between
plans.

Sessions are not safe for concurrent use; the owner serialises access.
*/
package game

import (
	"math"
	"math/rand"

	"github.com/beka-birhanu/mazechase/game/maze"
	"github.com/beka-birhanu/mazechase/game/pathfind"
)

// Simulation constants, in world units and seconds.
const (
	playerSpeed    = 4.8
	runMultiplier  = 1.5
	maxStamina     = 100.0
	staminaDrain   = 30.0 // per second while running
	staminaRegen   = 2.0  // per second while not running
	replanInterval = 0.2
	waypointSnap   = 0.05
	catchDistance  = 1.5
	maxTickDelta   = 0.25
)

// Vec2 is a position on the ground plane.
type Vec2 struct {
	X float64 `json:"x"`
	Z float64 `json:"z"`
}

// Dist returns the Euclidean distance between v and o.
func (v Vec2) Dist(o Vec2) float64 {
	return math.Hypot(v.X-o.X, v.Z-o.Z)
}

// Input is the player's intent for one tick. MoveX and MoveZ form a world
// space direction and need not be normalised.
type Input struct {
	MoveX float64 `json:"move_x"`
	MoveZ float64 `json:"move_z"`
	Run   bool    `json:"run"`
}

// Session is one player's game, from menu to game over.
type Session struct {
	state      State
	outcome    Outcome
	difficulty maze.Difficulty
	seed       int64
	grid       *maze.Grid
	cellSize   float64

	player  Vec2
	stamina float64

	pursuer      Vec2
	pursuerSpeed float64
	path         []maze.Cell
	pathIdx      int
	planned      bool
	replanTimer  float64

	elapsed float64
}

// NewSession returns a session waiting in the menu.
func NewSession() *Session {
	return &Session{
		state:    Menu,
		cellSize: maze.DefaultCellSize,
		stamina:  maxStamina,
	}
}

// Start generates a maze for the difficulty from seed and begins play.
func (s *Session) Start(d maze.Difficulty, seed int64) error {
	if !canTransition(s.state, Playing) {
		return ErrInvalidTransition
	}

	profile, err := d.Profile()
	if err != nil {
		return err
	}
	grid, err := maze.New(profile.Width, profile.Height, d, rand.New(rand.NewSource(seed)))
	if err != nil {
		return err
	}

	s.begin(grid, d, seed, profile.PursuerSpeed)
	return nil
}

// begin places both actors on a fresh grid and enters play.
func (s *Session) begin(grid *maze.Grid, d maze.Difficulty, seed int64, pursuerSpeed float64) {
	s.grid = grid
	s.difficulty = d
	s.seed = seed
	s.outcome = NoOutcome
	s.pursuerSpeed = pursuerSpeed
	s.player = s.world(grid.Start())
	s.pursuer = s.world(grid.Spawn())
	s.stamina = maxStamina
	s.path = nil
	s.pathIdx = 0
	s.planned = false
	s.replanTimer = 0
	s.elapsed = 0
	s.state = Playing
}

// Reset returns a finished game to the menu.
func (s *Session) Reset() error {
	if s.state != GameOver {
		return ErrInvalidTransition
	}
	s.state = Menu
	return nil
}

// Abandon leaves a running game for the menu without an outcome.
func (s *Session) Abandon() error {
	if s.state != Playing {
		return ErrInvalidTransition
	}
	s.state = Menu
	s.outcome = NoOutcome
	return nil
}

// Tick advances the simulation by dt seconds. It does nothing outside of
// play. The returned state is the state after the tick.
func (s *Session) Tick(dt float64, in Input) State {
	if s.state != Playing || dt <= 0 {
		return s.state
	}
	dt = math.Min(dt, maxTickDelta)
	s.elapsed += dt

	running := s.updateStamina(dt, in.Run)
	s.movePlayer(dt, in, running)
	s.movePursuer(dt)

	switch {
	case s.grid.HasEscaped(s.player.X, s.player.Z, s.cellSize):
		s.finish(Escaped)
	case s.pursuer.Dist(s.player) < catchDistance:
		s.finish(Caught)
	}
	return s.state
}

func (s *Session) finish(o Outcome) {
	s.outcome = o
	s.state = GameOver
}

// updateStamina drains or regenerates stamina and reports whether the
// player actually runs this tick.
func (s *Session) updateStamina(dt float64, run bool) bool {
	running := run && s.stamina > 0
	switch {
	case running:
		s.stamina = math.Max(0, s.stamina-staminaDrain*dt)
	case !run:
		s.stamina = math.Min(maxStamina, s.stamina+staminaRegen*dt)
	}
	return running
}

// movePlayer applies the input, sliding along walls when the diagonal move
// is blocked.
func (s *Session) movePlayer(dt float64, in Input, running bool) {
	length := math.Hypot(in.MoveX, in.MoveZ)
	if length == 0 {
		return
	}

	speed := playerSpeed
	if running {
		speed *= runMultiplier
	}
	dx := in.MoveX / length * speed * dt
	dz := in.MoveZ / length * speed * dt

	candidates := []Vec2{
		{X: s.player.X + dx, Z: s.player.Z + dz},
		{X: s.player.X + dx, Z: s.player.Z},
		{X: s.player.X, Z: s.player.Z + dz},
	}
	for _, next := range candidates {
		if next != s.player && s.grid.CanOccupy(next.X, next.Z, s.cellSize) {
			s.player = next
			return
		}
	}
}

// movePursuer replans on cadence or once the current path is used up, then
// walks the path.
func (s *Session) movePursuer(dt float64) {
	s.replanTimer += dt
	if !s.planned || s.replanTimer >= replanInterval || s.pathIdx >= len(s.path) {
		s.replan()
	}

	step := s.pursuerSpeed * dt
	for s.pathIdx < len(s.path) {
		target := s.world(s.path[s.pathIdx])
		dist := s.pursuer.Dist(target)
		if dist <= waypointSnap || dist <= step {
			s.pursuer = target
			s.pathIdx++
			step -= dist
			if step <= 0 {
				return
			}
			continue
		}
		s.pursuer.X += (target.X - s.pursuer.X) / dist * step
		s.pursuer.Z += (target.Z - s.pursuer.Z) / dist * step
		return
	}
}

// replan computes a fresh path from the pursuer's cell to the player's. With
// no path the pursuer holds position until the next plan.
func (s *Session) replan() {
	from := s.cell(s.pursuer)
	to := s.cell(s.player)
	path, ok := pathfind.Find(s.grid, from, to)
	if !ok {
		path = nil
	}
	s.path = path
	s.pathIdx = 0
	s.planned = true
	s.replanTimer = 0
}

func (s *Session) world(c maze.Cell) Vec2 {
	x, z := s.grid.CellToWorld(c, s.cellSize)
	return Vec2{X: x, Z: z}
}

func (s *Session) cell(v Vec2) maze.Cell {
	return s.grid.WorldToCell(v.X, v.Z, s.cellSize)
}

// State returns the lifecycle phase.
func (s *Session) State() State { return s.state }

// Outcome returns how the last game ended.
func (s *Session) Outcome() Outcome { return s.outcome }

// Grid returns the current maze, nil before the first Start.
func (s *Session) Grid() *maze.Grid { return s.grid }

// CellSize returns the world size of a grid cell.
func (s *Session) CellSize() float64 { return s.cellSize }
