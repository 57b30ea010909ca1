package maze

import "fmt"

// Coordinate identifies a cell. X is the column and Y is the row.
type Coordinate struct {
	X int `json:"x"`
	Y int `json:"y"`
}

// Add returns c shifted by the given offset.
func (c Coordinate) Add(o Offset) Coordinate {
	return Coordinate{X: c.X + o.DX, Y: c.Y + o.DY}
}

// Offset is a single-cell move.
type Offset struct {
	DX, DY int
}

// Moves lists the four permitted moves in expansion order. The order is fixed
// so that ties between equally short routes always resolve the same way.
var Moves = [4]Offset{
	{DX: 1, DY: 0},
	{DX: -1, DY: 0},
	{DX: 0, DY: 1},
	{DX: 0, DY: -1},
}

// Cell is the classification of one grid cell.
type Cell uint8

const (
	// Open cells are traversable.
	Open Cell = iota
	// Wall cells are impassable.
	Wall
)

func (c Cell) String() string {
	switch c {
	case Open:
		return "open"
	case Wall:
		return "wall"
	default:
		return fmt.Sprintf("cell(%d)", uint8(c))
	}
}

// Grid is an immutable maze surface with entry and exit markers.
type Grid struct {
	width  int
	height int
	cells  []Cell // row-major, len == width*height
	entry  Coordinate
	exit   Coordinate
}

// New builds a Grid from a row-major cell table.
//
// The table is copied, so the caller may reuse it. New returns an error
// wrapping ErrInvalidGrid when the dimensions are not positive, the table
// size does not match them, or entry/exit are out of bounds or walls.
func New(width, height int, cells []Cell, entry, exit Coordinate) (*Grid, error) {
	if width < 1 || height < 1 {
		return nil, fmt.Errorf("%w: dimensions %dx%d must be at least 1x1", ErrInvalidGrid, width, height)
	}
	if len(cells) != width*height {
		return nil, fmt.Errorf("%w: got %d cells for %dx%d grid", ErrInvalidGrid, len(cells), width, height)
	}

	g := &Grid{
		width:  width,
		height: height,
		cells:  append([]Cell(nil), cells...),
		entry:  entry,
		exit:   exit,
	}
	if err := g.checkMarker("entry", entry); err != nil {
		return nil, err
	}
	if err := g.checkMarker("exit", exit); err != nil {
		return nil, err
	}
	return g, nil
}

func (g *Grid) checkMarker(name string, c Coordinate) error {
	if !g.InBounds(c) {
		return fmt.Errorf("%w: %s (%d,%d) outside %dx%d grid", ErrInvalidGrid, name, c.X, c.Y, g.width, g.height)
	}
	if g.At(c) == Wall {
		return fmt.Errorf("%w: %s (%d,%d) is a wall", ErrInvalidGrid, name, c.X, c.Y)
	}
	return nil
}

// Width returns the number of columns.
func (g *Grid) Width() int { return g.width }

// Height returns the number of rows.
func (g *Grid) Height() int { return g.height }

// Entry returns the entry coordinate.
func (g *Grid) Entry() Coordinate { return g.entry }

// Exit returns the exit coordinate.
func (g *Grid) Exit() Coordinate { return g.exit }

// InBounds reports whether c lies inside the grid.
func (g *Grid) InBounds(c Coordinate) bool {
	return c.X >= 0 && c.X < g.width && c.Y >= 0 && c.Y < g.height
}

// At returns the classification of c. It panics if c is out of bounds;
// callers are expected to check InBounds first.
func (g *Grid) At(c Coordinate) Cell {
	if !g.InBounds(c) {
		panic(fmt.Sprintf("maze: coordinate (%d,%d) out of bounds for %dx%d grid", c.X, c.Y, g.width, g.height))
	}
	return g.cells[g.index(c)]
}

// Count returns how many cells carry the given classification.
func (g *Grid) Count(kind Cell) int {
	n := 0
	for _, c := range g.cells {
		if c == kind {
			n++
		}
	}
	return n
}

func (g *Grid) index(c Coordinate) int {
	return c.Y*g.width + c.X
}
