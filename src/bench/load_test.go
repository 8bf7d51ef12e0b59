package bench

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

const sampleCSV = `Method,1000,10000
OMP,2.0,20.0
CUDA,0.5,4.0
CUDA Speedup,4.0,5.0
`

func writeCSV(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "data.csv")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write csv: %v", err)
	}
	return path
}

func TestLoad_EndToEndScenario(t *testing.T) {
	rep, err := Load(writeCSV(t, sampleCSV))
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if len(rep.Sizes) != 2 || rep.Sizes[0] != 1000 || rep.Sizes[1] != 10000 {
		t.Fatalf("unexpected sizes: %v", rep.Sizes)
	}
	if got := rep.Methods(); len(got) != 2 || got[0] != "OMP" || got[1] != "CUDA" {
		t.Fatalf("unexpected methods: %v", got)
	}
	if rep.Runtime[1].Values[1] != 4.0 {
		t.Fatalf("CUDA@10000 = %v, want 4.0", rep.Runtime[1].Values[1])
	}
	if len(rep.Speedup) != 2 || rep.Speedup[0] != 4.0 || rep.Speedup[1] != 5.0 {
		t.Fatalf("unexpected speedup: %v", rep.Speedup)
	}
}

// The harness writes rows from an unordered map, so the marker row can come first.
func TestParse_SpeedupRowAnyPosition(t *testing.T) {
	in := "Method,1000,5000,10000\nCUDA Speedup,9.8,24.1,27.5\nCUDA (GPU),0.02,0.3,1.1\nOMP (CPU),0.2,7.2,30.2\n"
	rep, err := Parse(strings.NewReader(in))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if got := rep.Methods(); len(got) != 2 || got[0] != "CUDA (GPU)" || got[1] != "OMP (CPU)" {
		t.Fatalf("runtime rows should keep source order, got %v", got)
	}
	if rep.Speedup[2] != 27.5 {
		t.Fatalf("unexpected speedup: %v", rep.Speedup)
	}
}

func TestParse_ToleratesBOMAndSpaces(t *testing.T) {
	in := "\xef\xbb\xbfMethod, 1000 , 2000\r\n OMP , 1.5, 3\r\nCUDA Speedup, 2,3\r\n"
	rep, err := Parse(strings.NewReader(in))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if rep.Sizes[1] != 2000 || rep.Runtime[0].Method != "OMP" || rep.Runtime[0].Values[0] != 1.5 {
		t.Fatalf("unexpected report: %+v", rep)
	}
}

func TestLoad_MissingFileIsInputError(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.csv"))
	var ie *InputError
	if !errors.As(err, &ie) {
		t.Fatalf("expected InputError, got %T %v", err, err)
	}
	if !errors.Is(err, os.ErrNotExist) {
		t.Fatalf("InputError should wrap the not-exist cause: %v", err)
	}
}

func TestParse_InputErrors(t *testing.T) {
	cases := map[string]string{
		"empty":      "",
		"blank":      "\n\n",
		"bare quote": "Method,1000\nOMP,\"1.0\n",
	}
	for name, in := range cases {
		_, err := Parse(strings.NewReader(in))
		var ie *InputError
		if !errors.As(err, &ie) {
			t.Fatalf("%s: expected InputError, got %T %v", name, err, err)
		}
	}
}

func TestParse_SchemaErrors(t *testing.T) {
	cases := []struct {
		name string
		in   string
		want string
	}{
		{"no marker", "Method,1000\nOMP,1\nCUDA,0.5\n", "missing"},
		{"two markers", "Method,1000\nOMP,1\nCUDA Speedup,2\nCUDA Speedup,2\n", "duplicate"},
		{"non-integer header", "Method,abc\nOMP,1\nCUDA Speedup,2\n", "not an integer"},
		{"no method column", "Name,1000\nOMP,1\nCUDA Speedup,2\n", "first column"},
		{"no size columns", "Method\nOMP\nCUDA Speedup\n", "no problem size"},
		{"short row", "Method,1000,2000\nOMP,1\nCUDA Speedup,2,3\n", "fields"},
		{"long row", "Method,1000\nOMP,1,2\nCUDA Speedup,2\n", "fields"},
		{"non-numeric value", "Method,1000\nOMP,fast\nCUDA Speedup,2\n", "not a number"},
		{"negative duration", "Method,1000\nOMP,-1\nCUDA Speedup,2\n", "negative"},
		{"nan", "Method,1000\nOMP,NaN\nCUDA Speedup,2\n", "not finite"},
		{"descending sizes", "Method,2000,1000\nOMP,1,2\nCUDA Speedup,2,2\n", "ascending"},
		{"duplicate sizes", "Method,1000,1000\nOMP,1,2\nCUDA Speedup,2,2\n", "ascending"},
	}
	for _, tc := range cases {
		_, err := Parse(strings.NewReader(tc.in))
		var se *SchemaError
		if !errors.As(err, &se) {
			t.Fatalf("%s: expected SchemaError, got %T %v", tc.name, err, err)
		}
		if !strings.Contains(se.Error(), tc.want) {
			t.Fatalf("%s: error %q does not mention %q", tc.name, se.Error(), tc.want)
		}
	}
}

func TestSchemaError_Positions(t *testing.T) {
	path := writeCSV(t, "Method,1000,2000\nOMP,1,x\nCUDA Speedup,2,2\n")
	_, err := Load(path)
	var se *SchemaError
	if !errors.As(err, &se) {
		t.Fatalf("expected SchemaError, got %v", err)
	}
	if se.Row != 2 || se.Column != 3 || se.Path != path {
		t.Fatalf("unexpected position: %+v", se)
	}
	if !strings.Contains(err.Error(), "row 2 column 3") {
		t.Fatalf("message should carry the position: %v", err)
	}
}

func TestSpeedupAllowsZeroRuntimeRows(t *testing.T) {
	rep, err := Parse(strings.NewReader("Method,1000\nCUDA Speedup,3\n"))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if len(rep.Runtime) != 0 || len(rep.Speedup) != 1 {
		t.Fatalf("unexpected report: %+v", rep)
	}
}

// testdata/data.csv is a file written by the n-body harness, rows in map order.
func TestLoad_HarnessOutput(t *testing.T) {
	rep, err := Load(filepath.Join("testdata", "data.csv"))
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if len(rep.Sizes) != 3 || rep.Sizes[2] != 10000 {
		t.Fatalf("sizes = %v", rep.Sizes)
	}
	if got := rep.Methods(); len(got) != 2 || got[0] != "CUDA (GPU)" || got[1] != "OMP (CPU)" {
		t.Fatalf("methods = %v", got)
	}
	if FormatSpeedup(rep.Speedup[2]) != "27.56x" {
		t.Fatalf("speedup[2] = %v", rep.Speedup[2])
	}
}
