package maze

import "errors"

var (
	// ErrInvalidGrid reports a grid that cannot be searched: bad dimensions,
	// a missing marker, or an entry/exit that is out of bounds or a wall.
	ErrInvalidGrid = errors.New("invalid grid")

	// ErrNotFound reports that the exit cannot be reached from the entry.
	// It is a normal outcome, not a defect.
	ErrNotFound = errors.New("no path found")
)
