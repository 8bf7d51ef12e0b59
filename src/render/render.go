// Package render draws a figure.Figure with a chart library and encodes it.
package render

import (
	"fmt"
	"image/color"
	"io"
	"path/filepath"
	"sort"
	"strings"

	"github.com/iafilius/benchplot/src/figure"
)

// Format is an output encoding, named by file extension without the dot.
type Format string

const (
	PNG Format = "png"
	SVG Format = "svg"
)

// FormatFromPath derives the output format from a file extension.
func FormatFromPath(path string) Format {
	return Format(strings.ToLower(strings.TrimPrefix(filepath.Ext(path), ".")))
}

// FormatError reports an output format the selected backend cannot produce.
type FormatError struct {
	Backend string
	Format  Format
}

func (e *FormatError) Error() string {
	if e.Format == "" {
		return fmt.Sprintf("backend %s: output path has no extension", e.Backend)
	}
	return fmt.Sprintf("backend %s cannot write %q files", e.Backend, string(e.Format))
}

// Backend renders a figure into an encoded image.
type Backend interface {
	Name() string
	Formats() []Format
	Render(fig figure.Figure, format Format, w io.Writer) error
}

const DefaultBackend = "gochart"

var backends = map[string]func() Backend{
	"gochart": func() Backend { return &GoChart{} },
	"gonum":   func() Backend { return &Gonum{} },
}

// New returns the backend registered under name.
func New(name string) (Backend, error) {
	mk, ok := backends[strings.ToLower(strings.TrimSpace(name))]
	if !ok {
		return nil, fmt.Errorf("unknown render backend %q (known: %s)", name, strings.Join(Names(), ", "))
	}
	return mk(), nil
}

// Names lists the registered backends.
func Names() []string {
	out := make([]string, 0, len(backends))
	for k := range backends {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}

// CheckFormat returns a *FormatError unless b can encode f.
func CheckFormat(b Backend, f Format) error {
	for _, s := range b.Formats() {
		if s == f {
			return nil
		}
	}
	return &FormatError{Backend: b.Name(), Format: f}
}

// seriesColors is shared by the backends so both draw the same palette.
var seriesColors = []color.RGBA{
	{R: 0x1f, G: 0x77, B: 0xb4, A: 0xff},
	{R: 0xff, G: 0x7f, B: 0x0e, A: 0xff},
	{R: 0xd6, G: 0x27, B: 0x28, A: 0xff},
	{R: 0x94, G: 0x67, B: 0xbd, A: 0xff},
	{R: 0x8c, G: 0x56, B: 0x4b, A: 0xff},
	{R: 0xe3, G: 0x77, B: 0xc2, A: 0xff},
	{R: 0x7f, G: 0x7f, B: 0x7f, A: 0xff},
	{R: 0xbc, G: 0xbd, B: 0x22, A: 0xff},
	{R: 0x17, G: 0xbe, B: 0xcf, A: 0xff},
}

var speedupColor = color.RGBA{R: 0x2c, G: 0xa0, B: 0x2c, A: 0xff}

func seriesColor(i int) color.RGBA { return seriesColors[i%len(seriesColors)] }

// captionHeight is the strip reserved under the charts when a caption is set.
const captionHeight = 24

// chartHeights splits the canvas between the two charts and the caption strip.
func chartHeights(fig figure.Figure) (top, bottom, caption int) {
	if strings.TrimSpace(fig.Caption) != "" {
		caption = captionHeight
	}
	avail := fig.Height - caption
	top = avail / 2
	bottom = avail - top
	return top, bottom, caption
}
