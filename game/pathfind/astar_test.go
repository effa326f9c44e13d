package pathfind

import (
	"math/rand"
	"testing"

	"github.com/beka-birhanu/mazechase/game/maze"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mustParse(t *testing.T, rows ...string) *maze.Grid {
	t.Helper()
	g, err := maze.Parse(rows)
	require.NoError(t, err)
	return g
}

// bfsDistance is the reference shortest hop count, -1 when unreachable.
func bfsDistance(g *maze.Grid, start, goal maze.Cell) int {
	dist := map[maze.Cell]int{start: 0}
	queue := []maze.Cell{start}
	for len(queue) > 0 {
		cur := queue[0]
		queue = queue[1:]
		if cur == goal {
			return dist[cur]
		}
		for _, d := range maze.Steps {
			nb := cur.Add(d)
			if _, seen := dist[nb]; seen || !g.IsOpen(nb.X, nb.Z) {
				continue
			}
			dist[nb] = dist[cur] + 1
			queue = append(queue, nb)
		}
	}
	return -1
}

func assertValidPath(t *testing.T, g *maze.Grid, start maze.Cell, path []maze.Cell) {
	t.Helper()
	prev := start
	for _, c := range path {
		assert.True(t, g.IsOpen(c.X, c.Z), "waypoint %v must be open", c)
		assert.True(t, prev.Adjacent(c), "%v -> %v must be adjacent", prev, c)
		prev = c
	}
}

func TestFindDetour(t *testing.T) {
	g := mustParse(t,
		"#####",
		"#...#",
		"###.#",
		"#...#",
		"#####",
	)
	start, goal := maze.Cell{X: 1, Z: 1}, maze.Cell{X: 1, Z: 3}

	path, ok := Find(g, start, goal)
	require.True(t, ok)

	assert.Len(t, path, 6)
	assert.Equal(t, goal, path[len(path)-1])
	assert.NotContains(t, path, start)
	assertValidPath(t, g, start, path)
}

func TestFindNoPath(t *testing.T) {
	g := mustParse(t,
		"#####",
		"#.#.#",
		"#.###",
		"#...#",
		"#####",
	)

	t.Run("isolated goal", func(t *testing.T) {
		path, ok := Find(g, maze.Cell{X: 1, Z: 1}, maze.Cell{X: 3, Z: 1})
		assert.False(t, ok)
		assert.Nil(t, path)
	})

	t.Run("goal on wall", func(t *testing.T) {
		_, ok := Find(g, maze.Cell{X: 1, Z: 1}, maze.Cell{X: 2, Z: 2})
		assert.False(t, ok)
	})

	t.Run("start off grid", func(t *testing.T) {
		_, ok := Find(g, maze.Cell{X: 1, Z: 5}, maze.Cell{X: 1, Z: 1})
		assert.False(t, ok)
	})

	t.Run("goal off grid", func(t *testing.T) {
		_, ok := Find(g, maze.Cell{X: 1, Z: 1}, maze.Cell{X: -1, Z: 1})
		assert.False(t, ok)
	})
}

func TestFindSameCell(t *testing.T) {
	g := mustParse(t,
		"###",
		"#.#",
		"###",
	)
	path, ok := Find(g, maze.Cell{X: 1, Z: 1}, maze.Cell{X: 1, Z: 1})
	assert.True(t, ok)
	assert.Empty(t, path)
	assert.NotNil(t, path)
}

func TestFindOpenRoomIsDeterministic(t *testing.T) {
	g := mustParse(t,
		"#######",
		"#.....#",
		"#.....#",
		"#.....#",
		"#######",
	)
	start, goal := maze.Cell{X: 1, Z: 1}, maze.Cell{X: 5, Z: 3}

	first, ok := Find(g, start, goal)
	require.True(t, ok)
	assert.Len(t, first, 6)

	for i := 0; i < 5; i++ {
		again, ok := Find(g, start, goal)
		require.True(t, ok)
		assert.Equal(t, first, again)
	}
}

func TestFindOptimalOnGeneratedMazes(t *testing.T) {
	for _, d := range []maze.Difficulty{maze.Easy, maze.Medium, maze.Hard} {
		for seed := int64(0); seed < 20; seed++ {
			g, err := maze.NewForDifficulty(d, rand.New(rand.NewSource(seed)))
			require.NoError(t, err)

			pairs := [][2]maze.Cell{
				{g.Start(), g.Exit()},
				{g.Spawn(), g.Start()},
				{g.Exit(), g.Spawn()},
			}
			for _, p := range pairs {
				path, ok := Find(g, p[0], p[1])
				require.True(t, ok, "%s seed %d: %v -> %v", d, seed, p[0], p[1])
				assert.Equal(t, bfsDistance(g, p[0], p[1]), len(path))
				assertValidPath(t, g, p[0], path)
			}
		}
	}
}

func TestScenarioMediumSeed42(t *testing.T) {
	g, err := maze.New(15, 11, maze.Medium, rand.New(rand.NewSource(42)))
	require.NoError(t, err)

	path, ok := Find(g, maze.Cell{X: 1, Z: 1}, g.Exit())
	require.True(t, ok)
	assert.NotEmpty(t, path)
	assert.LessOrEqual(t, len(path), g.Width()*g.Height())
	assert.Equal(t, g.Exit(), path[len(path)-1])
}
