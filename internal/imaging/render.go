package imaging

import (
	"bytes"
	"encoding/base64"
	"errors"
	"fmt"
	"image"
	"image/color"
	"image/png"
	"path/filepath"
	"strings"

	"github.com/anthonynsimon/bild/imgio"
	"github.com/disintegration/imaging"

	"github.com/ironsheep/maze-tools-mcp/internal/config"
	"github.com/ironsheep/maze-tools-mcp/internal/maze"
)

// Output limits shared by RenderSolution and Animate.
const (
	// MaxScale is the largest accepted Scale.
	MaxScale = 32

	// MaxOutputPixels caps the size of one rendered frame.
	MaxOutputPixels = 16 << 20
)

// ErrOutputTooLarge reports a Scale or frame count outside the output limits.
var ErrOutputTooLarge = errors.New("output too large")

// RenderOptions controls how a solution is drawn over the maze image.
type RenderOptions struct {
	Palette config.Palette

	// Scale enlarges every cell to Scale x Scale pixels. Values below 1 mean 1;
	// values above MaxScale are rejected.
	Scale int

	// ShowExplored paints every cell the search dequeued, except the entry,
	// underneath the path.
	ShowExplored bool

	// Caption is drawn in the top-left corner when non-empty.
	Caption string
}

// RenderResult contains a rendered image encoded as base64 PNG.
type RenderResult struct {
	Width       int    `json:"width"`
	Height      int    `json:"height"`
	ImageBase64 string `json:"image_base64"`
	MimeType    string `json:"mime_type"`
}

// RenderSolution returns a copy of img with the search result painted on it.
// The source image is not modified.
func RenderSolution(img image.Image, res maze.Result, opts RenderOptions) (*image.NRGBA, error) {
	if err := opts.Palette.Validate(); err != nil {
		return nil, err
	}
	if _, err := scaledPixels(img.Bounds(), opts.Scale); err != nil {
		return nil, err
	}
	canvas := imaging.Clone(img)
	if opts.ShowExplored {
		paintCells(canvas, exploredAfterEntry(res), config.MustColor(opts.Palette.Explored))
	}
	paintCells(canvas, res.Path, config.MustColor(opts.Palette.Path))

	out := scaleNearest(canvas, opts.Scale)
	if opts.Caption != "" {
		drawCaption(out, opts.Caption)
	}
	return out, nil
}

func paintCells(dst *image.NRGBA, cells []maze.Coordinate, c color.NRGBA) {
	for _, p := range cells {
		dst.SetNRGBA(p.X, p.Y, c)
	}
}

// exploredAfterEntry drops the entry cell so its marker stays visible.
func exploredAfterEntry(res maze.Result) []maze.Coordinate {
	if len(res.Explored) == 0 {
		return nil
	}
	return res.Explored[1:]
}

// scaledPixels returns the pixel count of b enlarged by scale, or
// ErrOutputTooLarge when it exceeds the output limits.
func scaledPixels(b image.Rectangle, scale int) (int, error) {
	if scale > MaxScale {
		return 0, fmt.Errorf("%w: scale %d exceeds %d", ErrOutputTooLarge, scale, MaxScale)
	}
	if scale < 1 {
		scale = 1
	}
	pixels := b.Dx() * scale * b.Dy() * scale
	if pixels > MaxOutputPixels {
		return 0, fmt.Errorf("%w: %dx%d at scale %d is %d pixels, limit %d",
			ErrOutputTooLarge, b.Dx(), b.Dy(), scale, pixels, MaxOutputPixels)
	}
	return pixels, nil
}

func scaleNearest(img *image.NRGBA, scale int) *image.NRGBA {
	if scale <= 1 {
		return img
	}
	b := img.Bounds()
	return imaging.Resize(img, b.Dx()*scale, b.Dy()*scale, imaging.NearestNeighbor)
}

// EncodePNG encodes img as a base64 PNG result.
func EncodePNG(img image.Image) (*RenderResult, error) {
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return nil, fmt.Errorf("failed to encode image: %w", err)
	}
	b := img.Bounds()
	return &RenderResult{
		Width:       b.Dx(),
		Height:      b.Dy(),
		ImageBase64: base64.StdEncoding.EncodeToString(buf.Bytes()),
		MimeType:    "image/png",
	}, nil
}

// SaveImage writes img to path. The encoder is chosen from the extension:
// .jpg and .jpeg produce JPEG, anything else PNG.
func SaveImage(path string, img image.Image) error {
	encoder := imgio.PNGEncoder()
	switch strings.ToLower(filepath.Ext(path)) {
	case ".jpg", ".jpeg":
		encoder = imgio.JPEGEncoder(95)
	}
	if err := imgio.Save(path, img, encoder); err != nil {
		return fmt.Errorf("failed to save image: %w", err)
	}
	return nil
}
