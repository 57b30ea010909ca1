package maze

import (
	"fmt"
	"time"
)

// Node is one frontier entry. Parent indexes the visited list of the search
// that produced it, or is -1 for the entry node.
type Node struct {
	Pos    Coordinate
	Steps  int
	Parent int
}

// Result contains the outcome of a successful search.
type Result struct {
	// Path runs from the first cell after the entry up to and including the exit.
	Path []Coordinate

	// Expanded counts the cells pushed onto the frontier, entry excluded.
	Expanded int

	// Explored lists the cells in the order they were dequeued.
	Explored []Coordinate

	// Elapsed is the wall-clock time spent searching.
	Elapsed time.Duration
}

// Steps returns the number of moves in the path.
func (r Result) Steps() int {
	return len(r.Path)
}

// Search finds a shortest route from g's entry to its exit.
//
// It returns an error wrapping ErrNotFound when the exit is unreachable. The
// returned Result still carries Expanded, Explored and Elapsed in that case so
// callers can report how much of the maze was covered.
func Search(g *Grid) (Result, error) {
	start := time.Now()

	n := g.width * g.height
	reached := make([]bool, n)
	visited := make([]Node, 0, n)
	frontier := make([]Node, 0, n)

	frontier = append(frontier, Node{Pos: g.entry, Steps: 1, Parent: -1})
	reached[g.index(g.entry)] = true
	expanded := 0

	for head := 0; head < len(frontier); head++ {
		node := frontier[head]
		visited = append(visited, node)
		current := len(visited) - 1

		if node.Pos == g.exit {
			return Result{
				Path:     Reconstruct(node, visited),
				Expanded: expanded,
				Explored: positions(visited),
				Elapsed:  time.Since(start),
			}, nil
		}

		for _, move := range Moves {
			next := node.Pos.Add(move)
			if !g.InBounds(next) || g.At(next) == Wall {
				continue
			}
			idx := g.index(next)
			if reached[idx] {
				continue
			}
			reached[idx] = true
			expanded++
			frontier = append(frontier, Node{Pos: next, Steps: node.Steps + 1, Parent: current})
		}
	}

	return Result{
		Expanded: expanded,
		Explored: positions(visited),
		Elapsed:  time.Since(start),
	}, fmt.Errorf("exit (%d,%d) unreachable from entry (%d,%d): %w",
		g.exit.X, g.exit.Y, g.entry.X, g.entry.Y, ErrNotFound)
}

func positions(nodes []Node) []Coordinate {
	out := make([]Coordinate, len(nodes))
	for i, n := range nodes {
		out[i] = n.Pos
	}
	return out
}
