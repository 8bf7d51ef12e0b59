//go:build nodisplay

package display

import "image"

const compiledIn = false

// Show is unavailable in nodisplay builds.
func Show(img image.Image, title string) error { return ErrUnavailable }
