package imaging

import (
	"image"
	"image/color"
	"image/draw"

	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"
)

var (
	captionFG = color.NRGBA{255, 255, 255, 255}
	captionBG = color.NRGBA{0, 0, 0, 180}
)

// drawCaption writes text on a dark box in the top-left corner of img,
// clipped to the image bounds.
func drawCaption(img *image.NRGBA, text string) {
	face := basicfont.Face7x13
	d := &font.Drawer{
		Dst:  img,
		Src:  image.NewUniform(captionFG),
		Face: face,
	}

	const pad = 2
	w := d.MeasureString(text).Ceil()
	h := face.Metrics().Height.Ceil()
	box := image.Rect(0, 0, w+2*pad, h+2*pad).Add(img.Bounds().Min).Intersect(img.Bounds())
	draw.Draw(img, box, image.NewUniform(captionBG), image.Point{}, draw.Over)

	d.Dot = fixed.P(img.Bounds().Min.X+pad, img.Bounds().Min.Y+pad+face.Metrics().Ascent.Ceil())
	d.DrawString(text)
}
