package imaging

import (
	"bytes"
	"encoding/base64"
	"fmt"
	"image"
	"image/color"
	"image/color/palette"
	"image/draw"
	"image/gif"
	"io"
	"os"

	"github.com/disintegration/imaging"

	"github.com/ironsheep/maze-tools-mcp/internal/config"
	"github.com/ironsheep/maze-tools-mcp/internal/maze"
)

// Animation modes.
const (
	// ModePath replays the solution one cell at a time, entry to exit.
	ModePath = "path"
	// ModeSearch replays the breadth-first expansion, then draws the path.
	ModeSearch = "search"
)

// Animation limits.
const (
	// MaxFrames is the largest accepted AnimateOptions.MaxFrames.
	MaxFrames = 500

	// MaxAnimationPixels caps the pixel count summed over every frame.
	MaxAnimationPixels = 128 << 20
)

// AnimateOptions controls frame generation.
type AnimateOptions struct {
	Palette config.Palette
	Mode    string
	Scale   int

	// MaxFrames caps the number of frames; cells are batched to fit.
	// Zero means 100; values above MaxFrames are rejected.
	MaxFrames int

	// Delay is the per-frame delay in hundredths of a second. Zero means 2.
	Delay int

	// HoldLast is the delay of the final frame. Zero means 200 (two seconds).
	HoldLast int
}

func (o *AnimateOptions) defaults() {
	if o.Mode == "" {
		o.Mode = ModePath
	}
	if o.MaxFrames <= 0 {
		o.MaxFrames = 100
	}
	if o.MaxFrames < 2 {
		o.MaxFrames = 2
	}
	if o.Delay <= 0 {
		o.Delay = 2
	}
	if o.HoldLast <= 0 {
		o.HoldLast = 200
	}
}

// AnimateResult contains an animated GIF encoded as base64.
type AnimateResult struct {
	Width       int    `json:"width"`
	Height      int    `json:"height"`
	Frames      int    `json:"frames"`
	ImageBase64 string `json:"image_base64"`
	MimeType    string `json:"mime_type"`
}

// Animate builds a GIF that replays res over img.
//
// The first frame is the untouched maze. Each following frame paints the next
// batch of cells, so a long path over a large maze still fits in MaxFrames.
func Animate(img image.Image, res maze.Result, opts AnimateOptions) (*gif.GIF, error) {
	if opts.MaxFrames > MaxFrames {
		return nil, fmt.Errorf("%w: max_frames %d exceeds %d", ErrOutputTooLarge, opts.MaxFrames, MaxFrames)
	}
	opts.defaults()
	if err := opts.Palette.Validate(); err != nil {
		return nil, err
	}
	framePixels, err := scaledPixels(img.Bounds(), opts.Scale)
	if err != nil {
		return nil, err
	}
	pathColor := config.MustColor(opts.Palette.Path)
	exploredColor := config.MustColor(opts.Palette.Explored)

	type stroke struct {
		cells []maze.Coordinate
		color color.NRGBA
	}
	var strokes []stroke
	switch opts.Mode {
	case ModePath:
		strokes = []stroke{{res.Path, pathColor}}
	case ModeSearch:
		strokes = []stroke{{exploredAfterEntry(res), exploredColor}, {res.Path, pathColor}}
	default:
		return nil, fmt.Errorf("unknown animation mode: %s", opts.Mode)
	}

	total := 0
	for _, s := range strokes {
		total += len(s.cells)
	}
	batch := 1
	if total > opts.MaxFrames-1 {
		batch = (total + opts.MaxFrames - 2) / (opts.MaxFrames - 1)
	}
	frames := 1 + (total+batch-1)/batch
	if framePixels*frames > MaxAnimationPixels {
		return nil, fmt.Errorf("%w: %d frames of %d pixels, limit %d pixels",
			ErrOutputTooLarge, frames, framePixels, MaxAnimationPixels)
	}

	canvas := imaging.Clone(img)
	anim := &gif.GIF{}
	addFrame := func() {
		anim.Image = append(anim.Image, toPaletted(scaleNearest(canvas, opts.Scale)))
		anim.Delay = append(anim.Delay, opts.Delay)
	}

	addFrame()
	pending := 0
	for _, s := range strokes {
		for _, p := range s.cells {
			canvas.SetNRGBA(p.X, p.Y, s.color)
			pending++
			if pending == batch {
				addFrame()
				pending = 0
			}
		}
	}
	if pending > 0 {
		addFrame()
	}
	anim.Delay[len(anim.Delay)-1] = opts.HoldLast
	return anim, nil
}

// toPaletted maps img onto the Plan 9 palette, which holds pure black, white
// and the primaries exactly, so maze and marker colors come through unchanged.
func toPaletted(img image.Image) *image.Paletted {
	b := img.Bounds()
	dst := image.NewPaletted(b, palette.Plan9)
	draw.Draw(dst, b, img, b.Min, draw.Src)
	return dst
}

// EncodeGIF encodes anim as a base64 GIF result.
func EncodeGIF(anim *gif.GIF) (*AnimateResult, error) {
	var buf bytes.Buffer
	if err := WriteGIF(&buf, anim); err != nil {
		return nil, err
	}
	b := anim.Image[0].Bounds()
	return &AnimateResult{
		Width:       b.Dx(),
		Height:      b.Dy(),
		Frames:      len(anim.Image),
		ImageBase64: base64.StdEncoding.EncodeToString(buf.Bytes()),
		MimeType:    "image/gif",
	}, nil
}

// SaveGIF writes anim to path.
func SaveGIF(path string, anim *gif.GIF) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create animation file: %w", err)
	}
	if err := WriteGIF(f, anim); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

// WriteGIF encodes anim to w.
func WriteGIF(w io.Writer, anim *gif.GIF) error {
	if err := gif.EncodeAll(w, anim); err != nil {
		return fmt.Errorf("failed to encode animation: %w", err)
	}
	return nil
}
