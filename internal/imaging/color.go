package imaging

import (
	"fmt"
	"image"
	"image/color"
	"sort"

	"github.com/lucasb-eyer/go-colorful"

	"github.com/ironsheep/maze-tools-mcp/internal/maze"
)

// RGBColor represents an RGB color with 8-bit components.
type RGBColor struct {
	R uint8 `json:"r"`
	G uint8 `json:"g"`
	B uint8 `json:"b"`
}

// HSLColor represents a color in HSL space.
type HSLColor struct {
	H int `json:"h"` // Hue: 0-360 degrees
	S int `json:"s"` // Saturation: 0-100 percent
	L int `json:"l"` // Lightness: 0-100 percent
}

// ColorResult describes one pixel and how the maze reader sees it.
type ColorResult struct {
	Hex  string   `json:"hex"`
	RGB  RGBColor `json:"rgb"`
	HSL  HSLColor `json:"hsl"`
	Cell string   `json:"cell"` // "open" or "wall" per Classify
}

// SampleColor returns the color at (x, y) along with its cell classification.
//
// Use it to find out why a maze is rejected: a marker that is one unit off
// pure green or red is not recognized unless the palette sets a tolerance.
func SampleColor(img image.Image, x, y int) (*ColorResult, error) {
	bounds := img.Bounds()
	if x < 0 || x >= bounds.Dx() || y < 0 || y >= bounds.Dy() {
		return nil, fmt.Errorf("coordinates (%d,%d) outside image bounds", x, y)
	}
	r8, g8, b8 := rgb8(img.At(bounds.Min.X+x, bounds.Min.Y+y))
	return describe(r8, g8, b8), nil
}

func describe(r, g, b uint8) *ColorResult {
	c := colorful.Color{R: float64(r) / 255, G: float64(g) / 255, B: float64(b) / 255}
	h, s, l := c.Hsl()
	return &ColorResult{
		Hex:  fmt.Sprintf("#%02X%02X%02X", r, g, b),
		RGB:  RGBColor{R: r, G: g, B: b},
		HSL:  HSLColor{H: int(h), S: int(s * 100), L: int(l * 100)},
		Cell: classifyRGB(r, g, b).String(),
	}
}

// ColorFrequency represents an exact color and its share of the image.
type ColorFrequency struct {
	Hex        string   `json:"hex"`
	Percentage float64  `json:"percentage"`
	Pixels     int      `json:"pixels"`
	RGB        RGBColor `json:"rgb"`
	Cell       string   `json:"cell"`
}

// DominantColorsResult lists colors sorted by frequency, most common first.
type DominantColorsResult struct {
	Colors []ColorFrequency `json:"colors"`
}

// DominantColors returns the count most common exact colors in img.
//
// Unlike photo palette extraction no quantization is applied: maze markers
// are single pixels and only exact colors tell whether they are present.
func DominantColors(img image.Image, count int) (*DominantColorsResult, error) {
	if count < 1 {
		return nil, fmt.Errorf("count must be >= 1, got %d", count)
	}
	bounds := img.Bounds()

	counts := make(map[RGBColor]int)
	for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
		for x := bounds.Min.X; x < bounds.Max.X; x++ {
			r, g, b := rgb8(img.At(x, y))
			counts[RGBColor{R: r, G: g, B: b}]++
		}
	}
	total := bounds.Dx() * bounds.Dy()

	colors := make([]ColorFrequency, 0, len(counts))
	for rgb, n := range counts {
		desc := describe(rgb.R, rgb.G, rgb.B)
		colors = append(colors, ColorFrequency{
			Hex:        desc.Hex,
			Percentage: float64(n) / float64(total) * 100,
			Pixels:     n,
			RGB:        rgb,
			Cell:       desc.Cell,
		})
	}

	sort.Slice(colors, func(i, j int) bool {
		if colors[i].Pixels != colors[j].Pixels {
			return colors[i].Pixels > colors[j].Pixels
		}
		return colors[i].Hex < colors[j].Hex
	})

	if len(colors) > count {
		colors = colors[:count]
	}
	return &DominantColorsResult{Colors: colors}, nil
}

// Classify maps a pixel color to a cell. A pixel whose green and blue
// channels are both zero is a wall; everything else is open.
func Classify(c color.Color) maze.Cell {
	return classifyRGB(rgb8(c))
}

func classifyRGB(_, g, b uint8) maze.Cell {
	if g == 0 && b == 0 {
		return maze.Wall
	}
	return maze.Open
}

// rgb8 converts a color to non-premultiplied 8-bit channels, the same
// bytes GridFromImage reads from its NRGBA copy, so alpha never changes
// the classification.
func rgb8(c color.Color) (uint8, uint8, uint8) {
	n := color.NRGBAModel.Convert(c).(color.NRGBA)
	return n.R, n.G, n.B
}
