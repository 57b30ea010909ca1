package detection

import (
	"image"

	"github.com/disintegration/imaging"

	mazeimg "github.com/ironsheep/maze-tools-mcp/internal/imaging"
	"github.com/ironsheep/maze-tools-mcp/internal/maze"
)

// CellSizeResult describes the block size a maze image was drawn with.
type CellSizeResult struct {
	// CellSize is the side of one maze cell in pixels. 1 means the image is
	// already one pixel per cell, or has no consistent block structure.
	CellSize int `json:"cell_size"`

	// Columns and Rows give the maze size in cells.
	Columns int `json:"columns"`
	Rows    int `json:"rows"`

	// Runs is the number of wall/open runs measured.
	Runs int `json:"runs"`
}

// DetectCellSize measures the cell size of img.
func DetectCellSize(img image.Image) *CellSizeResult {
	src := imaging.Clone(img)
	width, height := src.Bounds().Dx(), src.Bounds().Dy()

	classes := make([]maze.Cell, width*height)
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			classes[y*width+x] = mazeimg.Classify(src.NRGBAAt(x, y))
		}
	}

	size := gcd(width, height)
	if size == 0 {
		return &CellSizeResult{CellSize: 1}
	}
	runs := 0
	measure := func(n int) {
		runs++
		size = gcd(size, n)
	}

	for y := 0; y < height && size > 1; y++ {
		row := classes[y*width : (y+1)*width]
		eachRun(len(row), func(i int) maze.Cell { return row[i] }, measure)
	}
	for x := 0; x < width && size > 1; x++ {
		eachRun(height, func(i int) maze.Cell { return classes[i*width+x] }, measure)
	}

	return &CellSizeResult{
		CellSize: size,
		Columns:  width / size,
		Rows:     height / size,
		Runs:     runs,
	}
}

// eachRun calls fn with the length of every maximal run of equal cells in
// a line of n cells.
func eachRun(n int, at func(int) maze.Cell, fn func(int)) {
	start := 0
	for i := 1; i <= n; i++ {
		if i == n || at(i) != at(start) {
			fn(i - start)
			start = i
		}
	}
}

func gcd(a, b int) int {
	for b != 0 {
		a, b = b, a%b
	}
	return a
}
