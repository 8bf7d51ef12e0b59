package logging

import (
	"bytes"
	"strings"
	"testing"
)

func captureOutput(t *testing.T) *bytes.Buffer {
	t.Helper()
	var buf bytes.Buffer
	saved := baseLogger
	savedLevel := GetLogLevel()
	SetOutput(&buf)
	t.Cleanup(func() {
		baseLogger = saved
		SetLogLevel(levelName(savedLevel))
	})
	return &buf
}

func levelName(l LogLevel) string {
	switch l {
	case LevelDebug:
		return "debug"
	case LevelWarn:
		return "warn"
	case LevelError:
		return "error"
	}
	return "info"
}

func TestInfof_NoDoubleFormattingWithPercent(t *testing.T) {
	buf := captureOutput(t)
	SetLogLevel("info")

	msg := "size=1000 OMP (CPU)=2.000s CUDA (GPU)=0.500s speedup=400.0% of baseline"
	Infof(msg)

	out := buf.String()
	if !strings.Contains(out, "400.0% of baseline") {
		t.Fatalf("log output missing expected percent segment: %s", out)
	}
	if strings.Contains(out, "%!o(MISSING)") || strings.Contains(out, "%!f(MISSING)") {
		t.Fatalf("log output still shows fmt artifact: %s", out)
	}
}

func TestLevelFiltering(t *testing.T) {
	buf := captureOutput(t)
	SetLogLevel("warn")

	Debugf("debug line %d", 1)
	Infof("info line %d", 2)
	Warnf("warn line %d", 3)
	Errorf("error line %d", 4)

	out := buf.String()
	if strings.Contains(out, "debug line") || strings.Contains(out, "info line") {
		t.Fatalf("lines below warn should be dropped: %s", out)
	}
	if !strings.Contains(out, "warn line 3") || !strings.Contains(out, "error line 4") {
		t.Fatalf("expected warn and error lines: %s", out)
	}
	if !strings.Contains(out, "benchplot") {
		t.Fatalf("expected prefix in output: %s", out)
	}
}

func TestSetLogLevel_UnknownKeepsLevel(t *testing.T) {
	captureOutput(t)
	SetLogLevel("error")
	SetLogLevel("verbose")
	if GetLogLevel() != LevelError {
		t.Fatalf("unknown level changed the level to %v", GetLogLevel())
	}
	if ValidLevel("verbose") {
		t.Fatalf("verbose should not be a valid level")
	}
	if !ValidLevel(" Warning ") {
		t.Fatalf("warning should be a valid level")
	}
}
