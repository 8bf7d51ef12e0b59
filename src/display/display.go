// Package display shows a rendered chart in a desktop window. It is strictly
// best effort: callers log a failure and carry on.
package display

import (
	"errors"
	"os"
)

// ErrUnavailable means no window can be opened in this environment or build.
var ErrUnavailable = errors.New("display: no interactive display available")

// lookupEnv is swapped in tests.
var lookupEnv = os.LookupEnv

// Available reports whether a window can plausibly be opened.
func Available() bool {
	if !compiledIn {
		return false
	}
	return haveDisplay()
}
