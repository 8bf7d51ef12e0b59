//go:build linux || freebsd || openbsd || netbsd || dragonfly

package display

// haveDisplay checks for an X11 or Wayland session.
func haveDisplay() bool {
	for _, k := range []string{"DISPLAY", "WAYLAND_DISPLAY"} {
		if v, ok := lookupEnv(k); ok && v != "" {
			return true
		}
	}
	return false
}
