// Package maze holds the grid model and the breadth-first solver for raster mazes.
//
// A Grid is a rectangular table of Open and Wall cells with a designated entry
// and exit. Search explores the grid breadth-first over 4-connected moves and
// returns the fewest-step route from entry to exit.
//
// # Coordinate System
//
// Coordinates follow the image convention used by the imaging package:
//   - X: column, 0 = leftmost cell
//   - Y: row, 0 = topmost cell
//
// # Path Convention
//
// A returned path lists every cell stepped on after leaving the entry, ending
// with the exit. The entry itself is not included, so len(Path) is the number
// of moves. When entry and exit coincide the path is empty.
//
// # Thread Safety
//
// A Grid is read-only after New returns. Search keeps all of its bookkeeping
// local to the call, so concurrent searches over the same Grid are safe.
package maze
