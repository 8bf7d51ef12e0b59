package bench

import (
	"fmt"
	"strings"
)

// InputError reports an input file that is missing, unreadable, or not CSV at all.
type InputError struct {
	Path string
	Err  error
}

func (e *InputError) Error() string {
	if e.Path == "" {
		return fmt.Sprintf("input: %v", e.Err)
	}
	return fmt.Sprintf("input %s: %v", e.Path, e.Err)
}

func (e *InputError) Unwrap() error { return e.Err }

// SchemaError reports CSV content that does not have the benchmark table shape.
// Row and Column are 1-based positions in the file; zero means "not specific".
type SchemaError struct {
	Path   string
	Row    int
	Column int
	Msg    string
	Err    error
}

func (e *SchemaError) Error() string {
	var b strings.Builder
	b.WriteString("schema")
	if e.Path != "" {
		b.WriteString(" ")
		b.WriteString(e.Path)
	}
	if e.Row > 0 {
		fmt.Fprintf(&b, " row %d", e.Row)
	}
	if e.Column > 0 {
		fmt.Fprintf(&b, " column %d", e.Column)
	}
	b.WriteString(": ")
	b.WriteString(e.Msg)
	if e.Err != nil {
		b.WriteString(": ")
		b.WriteString(e.Err.Error())
	}
	return b.String()
}

func (e *SchemaError) Unwrap() error { return e.Err }
