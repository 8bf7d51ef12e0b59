// Package report runs the full pipeline: load the CSV, lay out the figure,
// render it into memory and only then replace the output file.
package report

import (
	"bytes"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/iafilius/benchplot/src/bench"
	"github.com/iafilius/benchplot/src/figure"
	"github.com/iafilius/benchplot/src/logging"
	"github.com/iafilius/benchplot/src/render"
)

const (
	DefaultInput  = "data.csv"
	DefaultOutput = "data.png"
)

// FilesystemError reports a failure to remove or write the output file.
type FilesystemError struct {
	Op   string // "remove", "mkdir" or "write"
	Path string
	Err  error
}

func (e *FilesystemError) Error() string {
	return fmt.Sprintf("%s %s: %v", e.Op, e.Path, e.Err)
}

func (e *FilesystemError) Unwrap() error { return e.Err }

// Options selects the backend and canvas. Zero values pick the defaults.
type Options struct {
	Backend string
	Width   int
	Height  int
	Caption string
}

// Result describes what was written.
type Result struct {
	OutputPath  string
	Format      render.Format
	Backend     string
	Bytes       []byte
	Bars        int
	Points      int
	Annotations int
}

// RenderReport reads inputPath and writes the two-chart figure to outputPath,
// replacing any existing file there. Every input, schema and format problem is
// reported before the output path is touched.
func RenderReport(inputPath, outputPath string, opts Options) (*Result, error) {
	name := opts.Backend
	if name == "" {
		name = render.DefaultBackend
	}
	backend, err := render.New(name)
	if err != nil {
		return nil, err
	}
	format := render.FormatFromPath(outputPath)
	if err := render.CheckFormat(backend, format); err != nil {
		return nil, err
	}

	start := time.Now()
	rep, err := bench.Load(inputPath)
	if err != nil {
		return nil, err
	}
	logging.TimeTrack(start, "load "+inputPath)
	logging.Infof("loaded %s: %d sizes, methods [%s]", inputPath, len(rep.Sizes), strings.Join(rep.Methods(), ", "))
	for _, line := range rep.SummaryLines() {
		logging.Infof("%s", line)
	}

	fig := figure.Build(rep, figure.Options{Width: opts.Width, Height: opts.Height, Caption: opts.Caption})

	start = time.Now()
	var buf bytes.Buffer
	if err := backend.Render(fig, format, &buf); err != nil {
		return nil, fmt.Errorf("render with %s: %w", backend.Name(), err)
	}
	logging.TimeTrack(start, "render "+backend.Name())

	if err := persist(outputPath, buf.Bytes()); err != nil {
		return nil, err
	}
	logging.Infof("wrote %s (%d bytes, %s)", outputPath, buf.Len(), backend.Name())

	return &Result{
		OutputPath:  outputPath,
		Format:      format,
		Backend:     backend.Name(),
		Bytes:       buf.Bytes(),
		Bars:        fig.Runtime.BarCount(),
		Points:      len(fig.Speedup.Points),
		Annotations: len(fig.Speedup.Annotations),
	}, nil
}

// persist removes any previous file at path (absence is fine) and writes data.
func persist(path string, data []byte) error {
	if err := os.Remove(path); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return &FilesystemError{Op: "remove", Path: path, Err: err}
	}
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return &FilesystemError{Op: "mkdir", Path: dir, Err: err}
		}
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return &FilesystemError{Op: "write", Path: path, Err: err}
	}
	return nil
}
