//go:build !(linux || freebsd || openbsd || netbsd || dragonfly)

package display

// macOS and Windows always have a window server for interactive sessions.
func haveDisplay() bool { return true }
