package imaging

import (
	"errors"
	"image"

	"github.com/ironsheep/maze-tools-mcp/internal/config"
	"github.com/ironsheep/maze-tools-mcp/internal/maze"
)

// Solution is a solved (or unsolvable) maze image.
type Solution struct {
	Grid   *maze.Grid
	Scan   *MarkerScan
	Result maze.Result
	Found  bool
}

// SolveImage classifies img and searches it.
//
// An unreachable exit is not an error: the returned Solution has Found set
// to false and an empty path. Invalid images return an error wrapping
// maze.ErrInvalidGrid and are never searched.
func SolveImage(img image.Image, palette config.Palette) (*Solution, error) {
	g, scan, err := GridFromImage(img, palette)
	if err != nil {
		return nil, err
	}
	res, err := maze.Search(g)
	switch {
	case err == nil:
		return &Solution{Grid: g, Scan: scan, Result: res, Found: true}, nil
	case errors.Is(err, maze.ErrNotFound):
		return &Solution{Grid: g, Scan: scan, Result: res, Found: false}, nil
	default:
		return nil, err
	}
}

// SolveSummary is the JSON view of a Solution.
type SolveSummary struct {
	Found     bool              `json:"found"`
	Width     int               `json:"width"`
	Height    int               `json:"height"`
	Entry     maze.Coordinate   `json:"entry"`
	Exit      maze.Coordinate   `json:"exit"`
	Steps     int               `json:"steps"`
	Expanded  int               `json:"expanded"`
	ElapsedUS int64             `json:"elapsed_us"`
	Path      []maze.Coordinate `json:"path"`
}

// Summary returns the JSON view of s. Path is empty, not null, when no
// route exists.
func (s *Solution) Summary() *SolveSummary {
	path := s.Result.Path
	if path == nil {
		path = []maze.Coordinate{}
	}
	return &SolveSummary{
		Found:     s.Found,
		Width:     s.Grid.Width(),
		Height:    s.Grid.Height(),
		Entry:     s.Grid.Entry(),
		Exit:      s.Grid.Exit(),
		Steps:     s.Result.Steps(),
		Expanded:  s.Result.Expanded,
		ElapsedUS: s.Result.Elapsed.Microseconds(),
		Path:      path,
	}
}

// GridSummary describes a classified maze without solving it.
type GridSummary struct {
	Image        *ImageInfo      `json:"image,omitempty"`
	Width        int             `json:"width"`
	Height       int             `json:"height"`
	Entry        maze.Coordinate `json:"entry"`
	Exit         maze.Coordinate `json:"exit"`
	EntryMatches int             `json:"entry_matches"`
	ExitMatches  int             `json:"exit_matches"`
	OpenCells    int             `json:"open_cells"`
	WallCells    int             `json:"wall_cells"`
}

// SummarizeGrid classifies img and reports cell counts and marker positions.
func SummarizeGrid(img image.Image, palette config.Palette) (*GridSummary, error) {
	g, scan, err := GridFromImage(img, palette)
	if err != nil {
		return nil, err
	}
	return &GridSummary{
		Width:        g.Width(),
		Height:       g.Height(),
		Entry:        g.Entry(),
		Exit:         g.Exit(),
		EntryMatches: scan.EntryMatches,
		ExitMatches:  scan.ExitMatches,
		OpenCells:    g.Count(maze.Open),
		WallCells:    g.Count(maze.Wall),
	}, nil
}
