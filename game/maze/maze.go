/*
Package maze generates rectangular wall/open mazes for the chase game.

Generation is an iterative depth-first backtracker that carves a perfect maze
from the start cell. The exit is then forced open and connected, extra
passages are opened according to the difficulty profile, and the easy profile
gets a smoothing pass (open areas, de-clustering, connectivity repair and
dead-end pruning).

The package also owns the cell/world geometry shared with the renderer:
CellToWorld, WorldToCell, CanOccupy and HasEscaped.
*/
package maze

import (
	"math/rand"
)

const (
	minDimension = 7
	maxDimension = 201

	declusterWalls = 7   // walls out of 9 that mark a cluster
	declusterProb  = 0.3 // chance to open a clustered wall
	maxOpenAreas   = 3
	openAreaMargin = 3 // minimum Manhattan distance of an open area to the landmarks
	pruningPasses  = 3
)

// New generates a maze for the given dimensions and difficulty using rng.
//
// Dimensions are clamped to [7, 201] and rounded down to odd numbers so that
// the backtracker lattice reaches the exit anchor. Use the difficulty's
// Profile for its default dimensions.
func New(width, height int, d Difficulty, rng *rand.Rand) (*Grid, error) {
	profile, err := d.Profile()
	if err != nil {
		return nil, err
	}

	g := newGrid(normalizeDimension(width), normalizeDimension(height))
	g.carve(rng)
	g.openExit()
	g.addPassages(profile, rng)
	if profile.Smooth {
		g.openAreas(rng)
		g.decluster(rng)
		g.repairConnectivity()
		g.pruneDeadEnds(rng)
	}
	return g, nil
}

// NewForDifficulty generates a maze with the difficulty's default dimensions.
func NewForDifficulty(d Difficulty, rng *rand.Rand) (*Grid, error) {
	profile, err := d.Profile()
	if err != nil {
		return nil, err
	}
	return New(profile.Width, profile.Height, d, rng)
}

func normalizeDimension(n int) int {
	n = max(minDimension, min(n, maxDimension))
	if n%2 == 0 {
		n--
	}
	return n
}

// carve runs the iterative recursive-backtracker from the start cell.
func (g *Grid) carve(rng *rand.Rand) {
	visited := make([]bool, len(g.cells))
	start := g.Start()
	g.set(start, Open)
	visited[g.index(start)] = true

	stack := []Cell{start}
	dirs := jumps
	for len(stack) > 0 {
		top := stack[len(stack)-1]
		rng.Shuffle(len(dirs), func(i, j int) { dirs[i], dirs[j] = dirs[j], dirs[i] })

		moved := false
		for _, d := range dirs {
			next := top.Add(d)
			if !g.interior(next) || visited[g.index(next)] {
				continue
			}
			g.set(Cell{X: top.X + d.X/2, Z: top.Z + d.Z/2}, Open)
			g.set(next, Open)
			visited[g.index(next)] = true
			stack = append(stack, next)
			moved = true
			break
		}

		if !moved {
			stack = stack[:len(stack)-1]
		}
	}
}

// openExit forces the exit and its anchor open and, if the anchor is cut off
// from the start, carves a staircase from the closest cell of the start's
// region.
func (g *Grid) openExit() {
	anchor := g.ExitAnchor()
	g.set(anchor, Open)
	g.set(g.Exit(), Open)

	startRegion := g.regionFrom(g.Start(), make([]bool, len(g.cells)))
	if startRegion.member[g.index(anchor)] {
		return
	}
	if _, to, ok := g.closestPair([]Cell{anchor}, startRegion.member); ok {
		g.carveLine(to, anchor)
	}
}

// protected reports whether c lies within radius of the start or exit anchor.
func (g *Grid) protected(c Cell, radius int) bool {
	return c.Manhattan(g.Start()) <= radius || c.Manhattan(g.ExitAnchor()) <= radius
}

// addPassages opens interior walls to create loops. A wall qualifies when it
// already touches between 1 and p.MaxConnections open cells.
func (g *Grid) addPassages(p Profile, rng *rand.Rand) {
	for z := 1; z < g.height-1; z++ {
		for x := 1; x < g.width-1; x++ {
			c := Cell{X: x, Z: z}
			if g.At(c) == Open || g.protected(c, p.ProtectRadius) {
				continue
			}
			if rng.Float64() >= p.ExtraPassageProb {
				continue
			}
			if n := g.openNeighbors(c); n >= 1 && n <= p.MaxConnections {
				g.set(c, Open)
			}
		}
	}
}

// openAreas carves up to maxOpenAreas small rooms of 2x2 to 3x3 cells away
// from the start and exit.
func (g *Grid) openAreas(rng *rand.Rand) {
	count := 1 + rng.Intn(maxOpenAreas)
	for i := 0; i < count; i++ {
		w, h := 2+rng.Intn(2), 2+rng.Intn(2)
		if g.width-2-w <= 0 || g.height-2-h <= 0 {
			continue
		}
		origin := Cell{X: 1 + rng.Intn(g.width-1-w), Z: 1 + rng.Intn(g.height-1-h)}

		near := false
		for dz := 0; dz < h && !near; dz++ {
			for dx := 0; dx < w; dx++ {
				if g.protected(origin.Add(Cell{X: dx, Z: dz}), openAreaMargin) {
					near = true
					break
				}
			}
		}
		if near {
			continue
		}

		for dz := 0; dz < h; dz++ {
			for dx := 0; dx < w; dx++ {
				g.set(origin.Add(Cell{X: dx, Z: dz}), Open)
			}
		}
	}
}

// decluster opens walls that sit inside dense wall blocks.
func (g *Grid) decluster(rng *rand.Rand) {
	var candidates []Cell
	for z := 1; z < g.height-1; z++ {
		for x := 1; x < g.width-1; x++ {
			c := Cell{X: x, Z: z}
			if g.At(c) == Wall && g.wallsAround(c) >= declusterWalls {
				candidates = append(candidates, c)
			}
		}
	}

	// Decide on the snapshot so that opening one cell does not change the
	// density seen by its neighbours.
	for _, c := range candidates {
		if rng.Float64() < declusterProb {
			g.set(c, Open)
		}
	}
}

// wallsAround counts walls in the 3x3 block centred on c, c included.
func (g *Grid) wallsAround(c Cell) int {
	n := 0
	for dz := -1; dz <= 1; dz++ {
		for dx := -1; dx <= 1; dx++ {
			if g.At(Cell{X: c.X + dx, Z: c.Z + dz}) == Wall {
				n++
			}
		}
	}
	return n
}

// repairConnectivity joins the two largest open regions until one remains.
func (g *Grid) repairConnectivity() {
	for {
		regions := g.regions()
		if len(regions) < 2 || !g.connect(regions[0], regions[1]) {
			return
		}
	}
}

// pruneDeadEnds re-walls a random half of the dead ends on each pass. The
// landmarks are never pruned.
func (g *Grid) pruneDeadEnds(rng *rand.Rand) {
	keep := map[Cell]struct{}{
		g.Start():      {},
		g.Exit():       {},
		g.ExitAnchor(): {},
		g.Spawn():      {},
	}

	for pass := 0; pass < pruningPasses; pass++ {
		var deadEnds []Cell
		for z := 1; z < g.height-1; z++ {
			for x := 1; x < g.width-1; x++ {
				c := Cell{X: x, Z: z}
				if _, ok := keep[c]; ok {
					continue
				}
				if g.At(c) == Open && g.openNeighbors(c) == 1 {
					deadEnds = append(deadEnds, c)
				}
			}
		}
		if len(deadEnds) == 0 {
			return
		}

		rng.Shuffle(len(deadEnds), func(i, j int) { deadEnds[i], deadEnds[j] = deadEnds[j], deadEnds[i] })
		for _, c := range deadEnds[:len(deadEnds)/2] {
			g.set(c, Wall)
		}
	}
}
