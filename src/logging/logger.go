// Package logging is the leveled log facade shared by the pipeline and the CLI.
package logging

import (
	"fmt"
	"io"
	"os"
	"strings"
	"sync/atomic"
	"time"

	"github.com/charmbracelet/log"
)

// LogLevel represents severity.
type LogLevel int32

const (
	LevelDebug LogLevel = iota
	LevelInfo
	LevelWarn
	LevelError
)

var levelNames = map[string]LogLevel{
	"debug":   LevelDebug,
	"info":    LevelInfo,
	"warn":    LevelWarn,
	"warning": LevelWarn,
	"error":   LevelError,
}

var currentLevel int32 = int32(LevelInfo)

var baseLogger = newLogger(os.Stderr)

func newLogger(w io.Writer) *log.Logger {
	l := log.NewWithOptions(w, log.Options{
		Prefix:          "benchplot",
		ReportTimestamp: true,
		TimeFormat:      "2006/01/02 15:04:05.000000",
	})
	// Filtering happens in logf; the backend passes everything through.
	l.SetLevel(log.DebugLevel)
	return l
}

// SetOutput redirects log output (tests capture it in a buffer).
func SetOutput(w io.Writer) { baseLogger = newLogger(w) }

// ValidLevel reports whether s names a known level.
func ValidLevel(s string) bool {
	_, ok := levelNames[strings.ToLower(strings.TrimSpace(s))]
	return ok
}

// SetLogLevel parses and sets global log level. Unknown names leave the level unchanged.
func SetLogLevel(s string) {
	l, ok := levelNames[strings.ToLower(strings.TrimSpace(s))]
	if !ok {
		return
	}
	atomic.StoreInt32(&currentLevel, int32(l))
}

func getLevel() LogLevel { return LogLevel(atomic.LoadInt32(&currentLevel)) }

// GetLogLevel returns current global log level.
func GetLogLevel() LogLevel { return getLevel() }

func logf(l LogLevel, format string, args ...interface{}) {
	if getLevel() > l {
		return
	}
	lvl := log.InfoLevel
	switch l {
	case LevelDebug:
		lvl = log.DebugLevel
	case LevelWarn:
		lvl = log.WarnLevel
	case LevelError:
		lvl = log.ErrorLevel
	}
	// A message without args is logged verbatim so literal % characters survive.
	if len(args) == 0 {
		baseLogger.Log(lvl, format)
		return
	}
	baseLogger.Log(lvl, fmt.Sprintf(format, args...))
}

// Public helpers
func Debugf(format string, a ...interface{}) { logf(LevelDebug, format, a...) }
func Infof(format string, a ...interface{})  { logf(LevelInfo, format, a...) }
func Warnf(format string, a ...interface{})  { logf(LevelWarn, format, a...) }
func Errorf(format string, a ...interface{}) { logf(LevelError, format, a...) }

// TimeTrack logs the duration of a phase at debug level.
func TimeTrack(start time.Time, label string) {
	dur := time.Since(start)
	Debugf("%s took %s", label, dur)
}
