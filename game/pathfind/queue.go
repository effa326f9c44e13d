package pathfind

import (
	"container/heap"

	"github.com/beka-birhanu/mazechase/game/maze"
)

// node is an open-set entry. Stale entries left behind by a cheaper push are
// skipped when popped.
type node struct {
	cell maze.Cell
	g    int
	h    int
	seq  int // insertion order, last tie-breaker
}

func (n *node) f() int { return n.g + n.h }

// openSet is a binary min-heap ordered by f, then h, then insertion order,
// which keeps expansion order deterministic.
type openSet struct {
	nodes []*node
	seq   int
}

func (s *openSet) push(c maze.Cell, g, h int) {
	heap.Push(s, &node{cell: c, g: g, h: h, seq: s.seq})
	s.seq++
}

func (s *openSet) Len() int { return len(s.nodes) }

func (s *openSet) Less(i, j int) bool {
	a, b := s.nodes[i], s.nodes[j]
	if a.f() != b.f() {
		return a.f() < b.f()
	}
	if a.h != b.h {
		return a.h < b.h
	}
	return a.seq < b.seq
}

func (s *openSet) Swap(i, j int) { s.nodes[i], s.nodes[j] = s.nodes[j], s.nodes[i] }

func (s *openSet) Push(x any) { s.nodes = append(s.nodes, x.(*node)) }

func (s *openSet) Pop() any {
	old := s.nodes
	n := len(old)
	item := old[n-1]
	old[n-1] = nil
	s.nodes = old[:n-1]
	return item
}
