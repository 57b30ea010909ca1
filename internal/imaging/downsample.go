package imaging

import (
	"fmt"
	"image"

	"github.com/disintegration/imaging"
)

// Downsample reduces a maze drawn with cell x cell pixel blocks to one pixel
// per cell by sampling the center of each block. Trailing pixels that do not
// fill a whole block are dropped.
func Downsample(img image.Image, cell int) (*image.NRGBA, error) {
	if cell < 1 {
		return nil, fmt.Errorf("cell size must be >= 1, got %d", cell)
	}
	src := imaging.Clone(img)
	if cell == 1 {
		return src, nil
	}
	b := src.Bounds()
	w, h := b.Dx()/cell, b.Dy()/cell
	if w < 1 || h < 1 {
		return nil, fmt.Errorf("cell size %d larger than image (%dx%d)", cell, b.Dx(), b.Dy())
	}
	dst := image.NewNRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			dst.SetNRGBA(x, y, src.NRGBAAt(x*cell+cell/2, y*cell+cell/2))
		}
	}
	return dst, nil
}
