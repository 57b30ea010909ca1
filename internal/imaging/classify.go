package imaging

import (
	"fmt"
	"image"
	"image/color"

	"github.com/disintegration/imaging"
	"github.com/lucasb-eyer/go-colorful"

	"github.com/ironsheep/maze-tools-mcp/internal/config"
	"github.com/ironsheep/maze-tools-mcp/internal/maze"
)

// MarkerScan reports where the entry and exit markers were found.
type MarkerScan struct {
	Entry        maze.Coordinate `json:"entry"`
	Exit         maze.Coordinate `json:"exit"`
	EntryMatches int             `json:"entry_matches"`
	ExitMatches  int             `json:"exit_matches"`
}

// markerMatcher decides whether a pixel carries a marker color.
type markerMatcher struct {
	target    color.NRGBA
	lab       colorful.Color
	tolerance float64
}

func newMarkerMatcher(hex string, tolerance float64) (markerMatcher, error) {
	target, err := config.ParseColor(hex)
	if err != nil {
		return markerMatcher{}, fmt.Errorf("invalid marker color %q: %w", hex, err)
	}
	lab, _ := colorful.MakeColor(target)
	return markerMatcher{target: target, lab: lab, tolerance: tolerance}, nil
}

func (m markerMatcher) match(r, g, b uint8) bool {
	if r == m.target.R && g == m.target.G && b == m.target.B {
		return true
	}
	if m.tolerance <= 0 {
		return false
	}
	c := colorful.Color{R: float64(r) / 255, G: float64(g) / 255, B: float64(b) / 255}
	return c.DistanceCIEDE2000(m.lab) <= m.tolerance
}

// LocateMarkers scans img once and returns the entry and exit coordinates.
//
// When a marker color appears on several pixels the last one in row-major
// scan order wins, unless the palette sets StrictMarkers, in which case the
// image is rejected. A missing marker is always an error. Errors wrap
// maze.ErrInvalidGrid.
func LocateMarkers(img image.Image, palette config.Palette) (*MarkerScan, error) {
	_, scan, err := scanImage(imaging.Clone(img), palette)
	if err != nil {
		return nil, err
	}
	return scan, nil
}

// GridFromImage classifies every pixel of img into a maze grid.
//
// Each pixel becomes one cell. Marker pixels are located before
// classification and are always open, whatever Classify says about their
// color.
func GridFromImage(img image.Image, palette config.Palette) (*maze.Grid, *MarkerScan, error) {
	src := imaging.Clone(img)
	cells, scan, err := scanImage(src, palette)
	if err != nil {
		return nil, nil, err
	}
	b := src.Bounds()
	g, err := maze.New(b.Dx(), b.Dy(), cells, scan.Entry, scan.Exit)
	if err != nil {
		return nil, nil, err
	}
	return g, scan, nil
}

func scanImage(src *image.NRGBA, palette config.Palette) ([]maze.Cell, *MarkerScan, error) {
	if err := palette.Validate(); err != nil {
		return nil, nil, fmt.Errorf("%w: %v", maze.ErrInvalidGrid, err)
	}
	entryM, err := newMarkerMatcher(palette.Entry, palette.Tolerance)
	if err != nil {
		return nil, nil, err
	}
	exitM, err := newMarkerMatcher(palette.Exit, palette.Tolerance)
	if err != nil {
		return nil, nil, err
	}

	b := src.Bounds()
	width, height := b.Dx(), b.Dy()
	cells := make([]maze.Cell, width*height)
	scan := &MarkerScan{}

	for y := 0; y < height; y++ {
		row := src.Pix[y*src.Stride:]
		for x := 0; x < width; x++ {
			r, g, bl := row[x*4], row[x*4+1], row[x*4+2]
			i := y*width + x
			cells[i] = classifyRGB(r, g, bl)
			switch {
			case entryM.match(r, g, bl):
				scan.Entry = maze.Coordinate{X: x, Y: y}
				scan.EntryMatches++
				cells[i] = maze.Open
			case exitM.match(r, g, bl):
				scan.Exit = maze.Coordinate{X: x, Y: y}
				scan.ExitMatches++
				cells[i] = maze.Open
			}
		}
	}

	if scan.EntryMatches == 0 {
		return nil, nil, fmt.Errorf("%w: entry marker %s not found", maze.ErrInvalidGrid, palette.Entry)
	}
	if scan.ExitMatches == 0 {
		return nil, nil, fmt.Errorf("%w: exit marker %s not found", maze.ErrInvalidGrid, palette.Exit)
	}
	if palette.StrictMarkers {
		if scan.EntryMatches > 1 {
			return nil, nil, fmt.Errorf("%w: entry marker found on %d pixels", maze.ErrInvalidGrid, scan.EntryMatches)
		}
		if scan.ExitMatches > 1 {
			return nil, nil, fmt.Errorf("%w: exit marker found on %d pixels", maze.ErrInvalidGrid, scan.ExitMatches)
		}
	}
	return cells, scan, nil
}
