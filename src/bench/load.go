package bench

import (
	"bytes"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"math"
	"os"
	"strconv"
	"strings"
)

var errEmpty = errors.New("no header row")

// Load reads and validates the benchmark CSV at path.
func Load(path string) (*Report, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, &InputError{Path: path, Err: err}
	}
	defer f.Close()
	rep, err := parse(f, path)
	if err != nil {
		return nil, err
	}
	return rep, nil
}

// Parse reads and validates a benchmark CSV from r.
func Parse(r io.Reader) (*Report, error) {
	return parse(r, "")
}

func parse(r io.Reader, path string) (*Report, error) {
	records, err := readRecords(r)
	if err != nil {
		return nil, &InputError{Path: path, Err: err}
	}
	sizes, serr := parseSizes(records[0])
	if serr != nil {
		serr.Path = path
		return nil, serr
	}
	rep, serr := split(records[1:], sizes)
	if serr != nil {
		serr.Path = path
		return nil, serr
	}
	return rep, nil
}

// readRecords returns all CSV records with cells trimmed. Field counts are checked
// later so that a ragged row is reported as a schema problem, not a parse failure.
func readRecords(r io.Reader) ([][]string, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}
	data = bytes.TrimPrefix(data, []byte("\xef\xbb\xbf"))
	cr := csv.NewReader(bytes.NewReader(data))
	cr.FieldsPerRecord = -1
	cr.TrimLeadingSpace = true
	records, err := cr.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("parse csv: %w", err)
	}
	if len(records) == 0 {
		return nil, errEmpty
	}
	for _, rec := range records {
		for i := range rec {
			rec[i] = strings.TrimSpace(rec[i])
		}
	}
	return records, nil
}

// parseSizes validates the header row and returns the problem sizes in header order.
func parseSizes(header []string) ([]int, *SchemaError) {
	if header[0] != MethodColumn {
		return nil, &SchemaError{Row: 1, Column: 1, Msg: fmt.Sprintf("first column must be %q, got %q", MethodColumn, header[0])}
	}
	if len(header) < 2 {
		return nil, &SchemaError{Row: 1, Msg: "no problem size columns"}
	}
	sizes := make([]int, 0, len(header)-1)
	for i, h := range header[1:] {
		n, err := strconv.Atoi(h)
		if err != nil {
			return nil, &SchemaError{Row: 1, Column: i + 2, Msg: fmt.Sprintf("size header %q is not an integer", h), Err: err}
		}
		if len(sizes) > 0 && n <= sizes[len(sizes)-1] {
			return nil, &SchemaError{Row: 1, Column: i + 2, Msg: fmt.Sprintf("size %d does not follow %d; sizes must be unique and ascending", n, sizes[len(sizes)-1])}
		}
		sizes = append(sizes, n)
	}
	return sizes, nil
}

// split separates the speedup row from the runtime rows and parses every value.
// rows excludes the header, so file row numbers are index+2.
func split(rows [][]string, sizes []int) (*Report, *SchemaError) {
	want := len(sizes) + 1
	rep := &Report{Sizes: sizes}
	speedupRow := 0
	for i, rec := range rows {
		rowNum := i + 2
		if len(rec) != want {
			return nil, &SchemaError{Row: rowNum, Msg: fmt.Sprintf("has %d fields, header has %d", len(rec), want)}
		}
		label := rec[0]
		isSpeedup := label == SpeedupMarker
		values, err := parseValues(rec[1:], rowNum, !isSpeedup)
		if err != nil {
			return nil, err
		}
		if isSpeedup {
			if speedupRow != 0 {
				return nil, &SchemaError{Row: rowNum, Msg: fmt.Sprintf("duplicate %q row (first at row %d)", SpeedupMarker, speedupRow)}
			}
			speedupRow = rowNum
			rep.Speedup = values
			continue
		}
		rep.Runtime = append(rep.Runtime, RuntimeSeries{Method: label, Values: values})
	}
	if speedupRow == 0 {
		return nil, &SchemaError{Msg: fmt.Sprintf("missing %q row", SpeedupMarker)}
	}
	return rep, nil
}

func parseValues(cells []string, rowNum int, duration bool) ([]float64, *SchemaError) {
	out := make([]float64, len(cells))
	for j, c := range cells {
		col := j + 2
		v, err := strconv.ParseFloat(c, 64)
		if err != nil {
			return nil, &SchemaError{Row: rowNum, Column: col, Msg: fmt.Sprintf("value %q is not a number", c), Err: err}
		}
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return nil, &SchemaError{Row: rowNum, Column: col, Msg: fmt.Sprintf("value %q is not finite", c)}
		}
		if duration && v < 0 {
			return nil, &SchemaError{Row: rowNum, Column: col, Msg: fmt.Sprintf("duration %v is negative", v)}
		}
		out[j] = v
	}
	return out, nil
}
