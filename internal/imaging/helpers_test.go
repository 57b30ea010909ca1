package imaging

import (
	"image"
	"image/color"
	"image/png"
	"os"
	"testing"
)

var (
	wallColor  = color.RGBA{0, 0, 0, 255}
	openColor  = color.RGBA{255, 255, 255, 255}
	entryColor = color.RGBA{0, 255, 0, 255}
	exitColor  = color.RGBA{255, 0, 0, 255}
)

// mazeImage draws one pixel per character: '#' wall, '.' open, 'S' entry, 'E' exit.
func mazeImage(rows ...string) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, len(rows[0]), len(rows)))
	for y, row := range rows {
		for x, ch := range row {
			var c color.Color
			switch ch {
			case '#':
				c = wallColor
			case 'S':
				c = entryColor
			case 'E':
				c = exitColor
			default:
				c = openColor
			}
			img.Set(x, y, c)
		}
	}
	return img
}

// writeTestPNG encodes img into a temp file that is removed when the test ends.
func writeTestPNG(t *testing.T, img image.Image) string {
	t.Helper()
	tmpFile, err := os.CreateTemp(t.TempDir(), "maze-*.png")
	if err != nil {
		t.Fatalf("failed to create temp file: %v", err)
	}
	defer tmpFile.Close()

	if err := png.Encode(tmpFile, img); err != nil {
		t.Fatalf("failed to encode image: %v", err)
	}
	return tmpFile.Name()
}
