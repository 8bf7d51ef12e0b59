package display

import (
	"errors"
	"image"
	"runtime"
	"testing"
)

func withEnv(t *testing.T, env map[string]string) {
	t.Helper()
	saved := lookupEnv
	lookupEnv = func(k string) (string, bool) {
		v, ok := env[k]
		return v, ok
	}
	t.Cleanup(func() { lookupEnv = saved })
}

func TestAvailable_NoSession(t *testing.T) {
	if runtime.GOOS != "linux" {
		t.Skip("display variables only matter on linux/bsd")
	}
	withEnv(t, map[string]string{"DISPLAY": ""})
	if Available() {
		t.Fatalf("empty DISPLAY should not count as a display")
	}
	// Show must refuse without touching fyne.
	if err := Show(image.NewRGBA(image.Rect(0, 0, 4, 4)), "test"); !errors.Is(err, ErrUnavailable) {
		t.Fatalf("Show without display = %v, want ErrUnavailable", err)
	}
}

func TestAvailable_Wayland(t *testing.T) {
	if runtime.GOOS != "linux" {
		t.Skip("display variables only matter on linux/bsd")
	}
	withEnv(t, map[string]string{"WAYLAND_DISPLAY": "wayland-0"})
	if Available() != compiledIn {
		t.Fatalf("Available() = %v with a wayland session, compiledIn=%v", Available(), compiledIn)
	}
}
