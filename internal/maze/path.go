package maze

// Reconstruct walks the predecessor chain of terminal through visited and
// returns the route in entry-to-exit order, entry excluded.
//
// terminal must come from the same search that filled visited; the chain is
// trusted to end at a node with Parent == -1. Steps is only a capacity
// hint, so an entry counted as step 0 works too.
func Reconstruct(terminal Node, visited []Node) []Coordinate {
	path := make([]Coordinate, 0, max(terminal.Steps-1, 0))
	for node := terminal; node.Parent != -1; node = visited[node.Parent] {
		path = append(path, node.Pos)
	}
	// reverse path
	for i, j := 0, len(path)-1; i < j; i, j = i+1, j-1 {
		path[i], path[j] = path[j], path[i]
	}
	return path
}
