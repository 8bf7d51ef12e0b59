package render

import (
	"image"
	"image/color"
	"image/draw"

	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"
)

// stackVertical draws imgs top to bottom on a white canvas of the given width.
func stackVertical(width int, imgs []image.Image) *image.RGBA {
	h := 0
	for _, img := range imgs {
		h += img.Bounds().Dy()
	}
	dst := image.NewRGBA(image.Rect(0, 0, width, h))
	draw.Draw(dst, dst.Bounds(), image.White, image.Point{}, draw.Src)
	y := 0
	for _, img := range imgs {
		b := img.Bounds()
		r := image.Rect(0, y, b.Dx(), y+b.Dy())
		draw.Draw(dst, r, img, b.Min, draw.Src)
		y += b.Dy()
	}
	return dst
}

// appendCaption returns img extended by a light strip of height h holding text,
// drawn with the 7x13 bitmap face near the bottom-left.
func appendCaption(img image.Image, text string, h int) *image.RGBA {
	b := img.Bounds()
	dst := image.NewRGBA(image.Rect(0, 0, b.Dx(), b.Dy()+h))
	draw.Draw(dst, b.Sub(b.Min), img, b.Min, draw.Src)
	strip := image.Rect(0, b.Dy(), b.Dx(), b.Dy()+h)
	draw.Draw(dst, strip, image.NewUniform(color.RGBA{R: 0xf2, G: 0xf2, B: 0xf2, A: 0xff}), image.Point{}, draw.Src)

	face := basicfont.Face7x13
	textCol := image.NewUniform(color.RGBA{R: 0x33, G: 0x33, B: 0x33, A: 0xff})
	// Baseline centred in the strip.
	asc := face.Metrics().Ascent.Ceil()
	y := strip.Min.Y + (h+asc)/2
	dr := &font.Drawer{Dst: dst, Src: textCol, Face: face, Dot: fixed.Point26_6{X: fixed.I(8), Y: fixed.I(y)}}
	dr.DrawString(text)
	return dst
}
