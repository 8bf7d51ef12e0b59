//go:build !nodisplay

package display

import (
	"fmt"
	"image"

	fyne "fyne.io/fyne/v2"
	"fyne.io/fyne/v2/app"
	"fyne.io/fyne/v2/canvas"
)

const compiledIn = true

// maxWindowHeight keeps a tall figure on screen; the image scales to fit.
const maxWindowHeight = 900

// Show opens a window holding img and blocks until the user closes it.
func Show(img image.Image, title string) (err error) {
	if img == nil {
		return fmt.Errorf("display: nil image")
	}
	if !Available() {
		return ErrUnavailable
	}
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("display: %v", r)
		}
	}()
	a := app.NewWithID("com.benchplot.viewer")
	w := a.NewWindow(title)
	ci := canvas.NewImageFromImage(img)
	ci.FillMode = canvas.ImageFillContain
	w.SetContent(ci)
	w.Resize(windowSize(img.Bounds()))
	w.ShowAndRun()
	return nil
}

func windowSize(b image.Rectangle) fyne.Size {
	wd, ht := float32(b.Dx()), float32(b.Dy())
	if ht > maxWindowHeight {
		wd = wd * maxWindowHeight / ht
		ht = maxWindowHeight
	}
	return fyne.NewSize(wd, ht)
}
