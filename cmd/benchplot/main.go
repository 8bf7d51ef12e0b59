// benchplot renders the CPU vs GPU benchmark table (data.csv) into a two-chart
// figure (data.png): grouped runtime bars above a speedup line.
//
// With no arguments it reads ./data.csv, replaces ./data.png and then, when a
// desktop session is available, opens the figure in a window. Closing the
// window or failing to open one never changes the exit status.
package main

import (
	"bytes"
	"errors"
	"fmt"
	"image/png"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/iafilius/benchplot/src/bench"
	"github.com/iafilius/benchplot/src/config"
	"github.com/iafilius/benchplot/src/display"
	"github.com/iafilius/benchplot/src/logging"
	"github.com/iafilius/benchplot/src/render"
	"github.com/iafilius/benchplot/src/report"
)

// Exit codes.
const (
	exitOK         = 0
	exitFailure    = 1
	exitInput      = 2
	exitSchema     = 3
	exitFilesystem = 4
)

// showFunc is replaced in tests.
var showFunc = display.Show

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

func run(args []string, stdout, stderr io.Writer) int {
	cmd, err := newRootCmd()
	if err != nil {
		logging.Errorf("%v", err)
		return exitFailure
	}
	cmd.SetArgs(args)
	cmd.SetOut(stdout)
	cmd.SetErr(stderr)
	if err := cmd.Execute(); err != nil {
		logging.Errorf("%v", err)
		return exitCode(err)
	}
	return exitOK
}

// exitCode maps the error taxonomy onto distinct non-zero statuses.
func exitCode(err error) int {
	if err == nil {
		return exitOK
	}
	var ie *bench.InputError
	var se *bench.SchemaError
	var fe *report.FilesystemError
	switch {
	case errors.As(err, &ie):
		return exitInput
	case errors.As(err, &se):
		return exitSchema
	case errors.As(err, &fe):
		return exitFilesystem
	}
	return exitFailure
}

func newRootCmd() (*cobra.Command, error) {
	v := config.New()
	var cfgFile string
	var noShow bool

	cmd := &cobra.Command{
		Use:   "benchplot",
		Short: "Render benchmark runtime and speedup charts from a CSV table",
		Long: `benchplot reads a benchmark table whose header is "Method,<size>,<size>,..."
with one row per method (durations in seconds) and one "CUDA Speedup" row
(ratios), and writes a figure with a grouped runtime bar chart above a
speedup line chart. Any existing output file is replaced.

Settings resolve flag > BENCHPLOT_* environment > --config file > default.`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if noShow {
				v.Set(config.KeyShow, false)
			}
			cfg, err := config.Load(v, cfgFile)
			if err != nil {
				return err
			}
			logging.SetLogLevel(cfg.LogLevel)
			logging.Debugf("config: input=%s output=%s backend=%s level=%d", cfg.Input, cfg.Output, cfg.Backend, logging.GetLogLevel())
			return renderAndShow(cfg)
		},
	}

	d := config.DefaultConfig()
	f := cmd.Flags()
	f.StringVar(&cfgFile, "config", "", "optional config file (yaml, toml or json)")
	f.StringP("input", "i", d.Input, "benchmark CSV to read")
	f.StringP("output", "o", d.Output, "image file to write (replaced if present)")
	f.String("backend", d.Backend, fmt.Sprintf("chart backend (%s)", strings.Join(render.Names(), "|")))
	f.Int("width", d.Width, "canvas width in pixels")
	f.Int("height", d.Height, "canvas height in pixels (both charts)")
	f.String("caption", d.Caption, "optional caption strip under the charts")
	f.String("log-level", d.LogLevel, "log level (debug|info|warn|error)")
	f.BoolVar(&noShow, "no-show", false, "do not open a window after writing the image")
	if err := bindFlags(v, f); err != nil {
		return nil, err
	}
	return cmd, nil
}

func bindFlags(v *viper.Viper, f *pflag.FlagSet) error {
	pairs := map[string]string{
		config.KeyInput:    "input",
		config.KeyOutput:   "output",
		config.KeyBackend:  "backend",
		config.KeyWidth:    "width",
		config.KeyHeight:   "height",
		config.KeyCaption:  "caption",
		config.KeyLogLevel: "log-level",
	}
	for key, name := range pairs {
		if err := v.BindPFlag(key, f.Lookup(name)); err != nil {
			return fmt.Errorf("bind flag --%s: %w", name, err)
		}
	}
	return nil
}

// renderAndShow writes the figure, then attempts to display it. Display errors
// are logged and dropped.
func renderAndShow(cfg config.Config) error {
	res, err := report.RenderReport(cfg.Input, cfg.Output, cfg.ReportOptions())
	if err != nil {
		return err
	}
	if !cfg.Show {
		return nil
	}
	if res.Format != render.PNG {
		logging.Debugf("display skipped: %s output", res.Format)
		return nil
	}
	img, err := png.Decode(bytes.NewReader(res.Bytes))
	if err != nil {
		logging.Warnf("display skipped: %v", err)
		return nil
	}
	if err := showFunc(img, "benchplot - "+res.OutputPath); err != nil {
		if errors.Is(err, display.ErrUnavailable) {
			logging.Debugf("display skipped: %v", err)
		} else {
			logging.Warnf("display failed: %v", err)
		}
	}
	return nil
}
