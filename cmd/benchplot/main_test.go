package main

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/iafilius/benchplot/src/bench"
	"github.com/iafilius/benchplot/src/logging"
	"github.com/iafilius/benchplot/src/report"
)

const scenario = "Method,1000,10000\nOMP,2.0,20.0\nCUDA,0.5,4.0\nCUDA Speedup,4.0,5.0\n"

func writeInput(t *testing.T, csv string) (in, out string) {
	t.Helper()
	dir := t.TempDir()
	in = filepath.Join(dir, "data.csv")
	out = filepath.Join(dir, "data.png")
	if err := os.WriteFile(in, []byte(csv), 0o644); err != nil {
		t.Fatalf("write input: %v", err)
	}
	return in, out
}

func quiet(t *testing.T) *bytes.Buffer {
	t.Helper()
	var buf bytes.Buffer
	logging.SetOutput(&buf)
	return &buf
}

func stubShow(t *testing.T, fn func(image.Image, string) error) {
	t.Helper()
	saved := showFunc
	showFunc = fn
	t.Cleanup(func() { showFunc = saved })
}

func TestRun_WritesImage(t *testing.T) {
	quiet(t)
	in, out := writeInput(t, scenario)
	code := run([]string{"-i", in, "-o", out, "--width", "600", "--height", "700", "--no-show"}, &bytes.Buffer{}, &bytes.Buffer{})
	if code != exitOK {
		t.Fatalf("exit code = %d", code)
	}
	if _, err := os.Stat(out); err != nil {
		t.Fatalf("output missing: %v", err)
	}
}

func TestRun_DisplayFailureKeepsExitZero(t *testing.T) {
	logs := quiet(t)
	called := false
	stubShow(t, func(img image.Image, title string) error {
		called = true
		if img.Bounds().Dx() != 600 {
			t.Errorf("window got a %d px wide image", img.Bounds().Dx())
		}
		return errors.New("no GL context")
	})
	in, out := writeInput(t, scenario)
	code := run([]string{"-i", in, "-o", out, "--width", "600", "--height", "700"}, &bytes.Buffer{}, &bytes.Buffer{})
	if code != exitOK {
		t.Fatalf("exit code = %d, display failures must not fail the run", code)
	}
	if !called {
		t.Fatalf("display was not attempted")
	}
	if _, err := os.Stat(out); err != nil {
		t.Fatalf("output must be written before display: %v", err)
	}
	if !bytes.Contains(logs.Bytes(), []byte("no GL context")) {
		t.Fatalf("display failure should be logged: %s", logs.String())
	}
}

func TestRun_ExitCodes(t *testing.T) {
	quiet(t)
	stubShow(t, func(image.Image, string) error { t.Errorf("display must not run on failure"); return nil })

	in, out := writeInput(t, "Method,abc\nOMP,1\nCUDA Speedup,2\n")
	if code := run([]string{"-i", in, "-o", out}, &bytes.Buffer{}, &bytes.Buffer{}); code != exitSchema {
		t.Fatalf("schema failure exit = %d, want %d", code, exitSchema)
	}
	if _, err := os.Stat(out); !errors.Is(err, os.ErrNotExist) {
		t.Fatalf("no output expected after schema failure")
	}

	missing := filepath.Join(t.TempDir(), "missing.csv")
	if code := run([]string{"-i", missing, "-o", out}, &bytes.Buffer{}, &bytes.Buffer{}); code != exitInput {
		t.Fatalf("input failure exit = %d, want %d", code, exitInput)
	}

	if code := run([]string{"--backend", "excel"}, &bytes.Buffer{}, &bytes.Buffer{}); code != exitFailure {
		t.Fatalf("config failure exit = %d, want %d", code, exitFailure)
	}

	if code := run([]string{"extra-arg"}, &bytes.Buffer{}, &bytes.Buffer{}); code != exitFailure {
		t.Fatalf("positional args exit = %d, want %d", code, exitFailure)
	}
}

func TestExitCode(t *testing.T) {
	cases := []struct {
		err  error
		want int
	}{
		{nil, exitOK},
		{&bench.InputError{Path: "x", Err: os.ErrNotExist}, exitInput},
		{fmt.Errorf("wrapped: %w", &bench.SchemaError{Msg: "bad"}), exitSchema},
		{&report.FilesystemError{Op: "remove", Path: "x", Err: os.ErrPermission}, exitFilesystem},
		{errors.New("other"), exitFailure},
	}
	for _, tc := range cases {
		if got := exitCode(tc.err); got != tc.want {
			t.Fatalf("exitCode(%v) = %d, want %d", tc.err, got, tc.want)
		}
	}
}

func TestRun_EnvOverridesDefaultOutput(t *testing.T) {
	quiet(t)
	in, _ := writeInput(t, scenario)
	out := filepath.Join(filepath.Dir(in), "env.png")
	t.Setenv("BENCHPLOT_OUTPUT", out)
	t.Setenv("BENCHPLOT_SHOW", "false")
	if code := run([]string{"-i", in, "--width", "600", "--height", "700"}, &bytes.Buffer{}, &bytes.Buffer{}); code != exitOK {
		t.Fatalf("exit code = %d", code)
	}
	if _, err := os.Stat(out); err != nil {
		t.Fatalf("env output path not used: %v", err)
	}
}

func TestBindFlags_MissingFlag(t *testing.T) {
	f := pflag.NewFlagSet("partial", pflag.ContinueOnError)
	f.String("input", "", "")
	if err := bindFlags(viper.New(), f); err == nil {
		t.Fatalf("bindFlags accepted a flag set without --output")
	}
}

func TestNewRootCmd_BindsEveryFlag(t *testing.T) {
	cmd, err := newRootCmd()
	if err != nil {
		t.Fatalf("newRootCmd: %v", err)
	}
	for _, name := range []string{"input", "output", "backend", "width", "height", "caption", "log-level", "no-show", "config"} {
		if cmd.Flags().Lookup(name) == nil {
			t.Fatalf("flag --%s not registered", name)
		}
	}
}
