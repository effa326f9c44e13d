package game

import (
	"testing"

	"github.com/beka-birhanu/mazechase/game/maze"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const frame = 0.05

func sessionOn(t *testing.T, pursuerSpeed float64, rows ...string) *Session {
	t.Helper()
	g, err := maze.Parse(rows)
	require.NoError(t, err)

	s := NewSession()
	s.begin(g, maze.Medium, 0, pursuerSpeed)
	return s
}

func TestSessionLifecycle(t *testing.T) {
	s := NewSession()
	assert.Equal(t, Menu, s.State())

	t.Run("tick in menu is a no-op", func(t *testing.T) {
		assert.Equal(t, Menu, s.Tick(frame, Input{MoveX: 1}))
	})

	t.Run("reset from menu is rejected", func(t *testing.T) {
		assert.ErrorIs(t, s.Reset(), ErrInvalidTransition)
	})

	t.Run("unknown difficulty keeps the menu", func(t *testing.T) {
		assert.ErrorIs(t, s.Start(maze.Difficulty(9), 1), maze.ErrUnknownDifficulty)
		assert.Equal(t, Menu, s.State())
	})

	t.Run("start enters play", func(t *testing.T) {
		require.NoError(t, s.Start(maze.Easy, 1))
		assert.Equal(t, Playing, s.State())
		assert.NotNil(t, s.Grid())
	})

	t.Run("start twice is rejected", func(t *testing.T) {
		assert.ErrorIs(t, s.Start(maze.Easy, 2), ErrInvalidTransition)
	})

	t.Run("reset while playing is rejected", func(t *testing.T) {
		assert.ErrorIs(t, s.Reset(), ErrInvalidTransition)
	})

	t.Run("abandon returns to menu", func(t *testing.T) {
		require.NoError(t, s.Abandon())
		assert.Equal(t, Menu, s.State())
		assert.Equal(t, NoOutcome, s.Outcome())
		assert.ErrorIs(t, s.Abandon(), ErrInvalidTransition)
	})
}

func TestSessionStartPlacesActors(t *testing.T) {
	s := NewSession()
	require.NoError(t, s.Start(maze.Medium, 42))

	snap := s.Snapshot()
	assert.Equal(t, maze.Cell{X: 1, Z: 1}, snap.PlayerCell)
	assert.Equal(t, s.Grid().Spawn(), snap.PursuerCell)
	assert.Equal(t, maxStamina, snap.Stamina)
	assert.Equal(t, int64(42), snap.Seed)
	assert.Equal(t, maze.Medium, snap.Difficulty)

	view, ok := s.MazeView()
	require.True(t, ok)
	assert.Equal(t, 15, view.Width)
	assert.Equal(t, 11, view.Height)
	assert.Equal(t, maze.Cell{X: 13, Z: 10}, view.Exit)
}

func TestSessionSameSeedSameMaze(t *testing.T) {
	a, b := NewSession(), NewSession()
	require.NoError(t, a.Start(maze.Hard, 99))
	require.NoError(t, b.Start(maze.Hard, 99))

	va, _ := a.MazeView()
	vb, _ := b.MazeView()
	assert.Equal(t, va.Rows, vb.Rows)
}

func TestSessionEscape(t *testing.T) {
	s := sessionOn(t, 0,
		"#######",
		"#.....#",
		"#####.#",
		"#####.#",
		"#####.#",
		"#####.#",
		"#####.#",
	)
	exit := s.Grid().Exit()

	for i := 0; i < 1000 && s.State() == Playing; i++ {
		in := Input{MoveZ: 1}
		if s.Snapshot().PlayerCell.X < exit.X {
			in = Input{MoveX: 1}
		}
		s.Tick(frame, in)
	}

	assert.Equal(t, GameOver, s.State())
	assert.Equal(t, Escaped, s.Outcome())
	assert.Greater(t, s.Snapshot().Elapsed, 0.0)

	require.NoError(t, s.Reset())
	assert.Equal(t, Menu, s.State())
}

func TestSessionWallsBlockPlayer(t *testing.T) {
	s := sessionOn(t, 0,
		"#######",
		"#.....#",
		"#####.#",
		"#####.#",
		"#####.#",
		"#####.#",
		"#####.#",
	)
	before := s.Snapshot().Player

	for i := 0; i < 20; i++ {
		s.Tick(frame, Input{MoveX: -1})
	}
	assert.Equal(t, maze.Cell{X: 1, Z: 1}, s.Snapshot().PlayerCell)

	for i := 0; i < 20; i++ {
		s.Tick(frame, Input{MoveZ: 1})
	}
	assert.Equal(t, maze.Cell{X: 1, Z: 1}, s.Snapshot().PlayerCell)
	assert.InDelta(t, before.Z, s.Snapshot().Player.Z, 1.0)
}

func TestSessionCaught(t *testing.T) {
	s := sessionOn(t, 3.6,
		"#######",
		"#.....#",
		"#.###.#",
		"#.###.#",
		"#.###.#",
		"#.###.#",
		"#####.#",
	)

	for i := 0; i < 200 && s.State() == Playing; i++ {
		s.Tick(frame, Input{})
		for _, c := range s.Snapshot().Path {
			assert.Equal(t, 1, c.X, "pursuer path stays in the left corridor")
		}
	}

	assert.Equal(t, GameOver, s.State())
	assert.Equal(t, Caught, s.Outcome())
	assert.Less(t, s.Snapshot().Pursuer.Dist(s.Snapshot().Player), catchDistance)
}

func TestSessionPursuerHoldsWithoutPath(t *testing.T) {
	s := sessionOn(t, 3.6,
		"#######",
		"#.....#",
		"#####.#",
		"#####.#",
		"#####.#",
		"#.###.#",
		"#####.#",
	)
	spawn := s.Snapshot().Pursuer

	for i := 0; i < 40; i++ {
		s.Tick(frame, Input{})
	}

	assert.Equal(t, Playing, s.State())
	assert.Equal(t, spawn, s.Snapshot().Pursuer)
	assert.Empty(t, s.Snapshot().Path)
}

func TestSessionStamina(t *testing.T) {
	room := []string{
		"###########",
		"#.........#",
		"#.........#",
		"#.........#",
		"#########.#",
	}

	t.Run("running drains and moves faster", func(t *testing.T) {
		walker := sessionOn(t, 0, room...)
		runner := sessionOn(t, 0, room...)
		start := walker.Snapshot().Player

		for i := 0; i < 10; i++ {
			walker.Tick(frame, Input{MoveX: 1})
			runner.Tick(frame, Input{MoveX: 1, Run: true})
		}

		assert.InDelta(t, maxStamina-staminaDrain*0.5, runner.Snapshot().Stamina, 1e-6)
		assert.Equal(t, maxStamina, walker.Snapshot().Stamina)
		assert.Greater(t, runner.Snapshot().Player.X-start.X, walker.Snapshot().Player.X-start.X)
	})

	t.Run("stamina regenerates after running", func(t *testing.T) {
		s := sessionOn(t, 0, room...)
		for i := 0; i < 20; i++ {
			s.Tick(frame, Input{Run: true})
		}
		drained := s.Snapshot().Stamina
		for i := 0; i < 20; i++ {
			s.Tick(frame, Input{})
		}
		assert.InDelta(t, drained+staminaRegen*1.0, s.Snapshot().Stamina, 1e-6)
	})

	t.Run("empty stamina falls back to walking", func(t *testing.T) {
		s := sessionOn(t, 0, room...)
		s.stamina = 0
		assert.False(t, s.updateStamina(frame, true))
		assert.Equal(t, 0.0, s.stamina)
	})
}

func TestSessionClampsLargeDelta(t *testing.T) {
	s := sessionOn(t, 0,
		"###########",
		"#.........#",
		"#.........#",
		"#.........#",
		"#########.#",
	)
	start := s.Snapshot().Player

	s.Tick(10, Input{MoveX: 1})

	assert.InDelta(t, playerSpeed*maxTickDelta, s.Snapshot().Player.X-start.X, 1e-9)
	assert.InDelta(t, maxTickDelta, s.Snapshot().Elapsed, 1e-9)
}

func TestSessionReplansExhaustedPath(t *testing.T) {
	s := sessionOn(t, 3.6,
		"###########",
		"#.........#",
		"#.........#",
		"#.........#",
		"#########.#",
	)
	s.Tick(frame, Input{})
	require.NotEmpty(t, s.path)

	s.pathIdx = len(s.path)
	s.replanTimer = 0
	before := s.Snapshot().Pursuer

	s.Tick(frame, Input{})

	assert.Equal(t, Playing, s.State())
	assert.Less(t, s.pathIdx, len(s.path), "a fresh path is planned")
	assert.InDelta(t, 0.0, s.replanTimer, 1e-9)
	assert.NotEqual(t, before, s.Snapshot().Pursuer)
	assert.InDelta(t, 3.6*frame, before.Dist(s.Snapshot().Pursuer), 1e-9)
}
