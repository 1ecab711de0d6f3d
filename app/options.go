// SPDX-License-Identifier: Unlicense OR MIT

package app

import (
	"fmt"
	"os"
	"runtime"
	"strings"
)

// Config describes a Canvas. It is fixed when the canvas opens.
type Config struct {
	// Title is the window title. Browser canvases ignore it.
	Title string
	// Hidden opens the window without showing it.
	Hidden bool
	// Width and Height are the requested initial size.
	Width, Height uint32
	// HiDPIFactor is the ratio of device pixels to logical pixels,
	// resolved once at open.
	HiDPIFactor float64
	// Backend selects the canvas implementation.
	Backend Backend
	// RemoteAddr is the listen address of the remote backend.
	RemoteAddr string
	// FrameRate is the frame rate of backends without a display
	// refresh signal.
	FrameRate int
	// LogLevel is the golog level of the canvas loggers applied at
	// open, or empty to leave it alone. The default golog logger is not
	// affected.
	LogLevel string
}

// Option configures a Canvas.
type Option func(cnf *Config)

// Backend identifies a canvas implementation.
type Backend uint8

const (
	// BackendAuto picks the native backend of the platform.
	BackendAuto Backend = iota
	// BackendBrowser drives the canvas element of the page running the
	// program. It is only available under js/wasm.
	BackendBrowser
	// BackendRemote serves a page and drives its canvas element over a
	// websocket.
	BackendRemote
	// BackendX11 opens an X11 window.
	BackendX11
	// BackendWindows opens a Win32 window.
	BackendWindows
)

var backendNames = [...]string{
	BackendAuto:    "auto",
	BackendBrowser: "browser",
	BackendRemote:  "remote",
	BackendX11:     "x11",
	BackendWindows: "windows",
}

func (b Backend) String() string {
	if int(b) >= len(backendNames) {
		return fmt.Sprintf("Backend(%d)", uint8(b))
	}
	return backendNames[b]
}

// ParseBackend returns the backend named s.
func ParseBackend(s string) (Backend, error) {
	for b, n := range backendNames {
		if strings.EqualFold(n, s) {
			return Backend(b), nil
		}
	}
	return 0, fmt.Errorf("app: unknown backend %q", s)
}

// resolve returns the backend to open for BackendAuto.
func (b Backend) resolve() Backend {
	if b != BackendAuto {
		return b
	}
	switch runtime.GOOS {
	case "js":
		return BackendBrowser
	case "windows":
		return BackendWindows
	}
	if _, ok := drivers[BackendX11]; ok && os.Getenv("DISPLAY") != "" {
		return BackendX11
	}
	return BackendRemote
}

// Title overrides the window title.
func Title(t string) Option {
	return func(cnf *Config) {
		cnf.Title = t
	}
}

// Size overrides the initial window size.
func Size(w, h uint32) Option {
	if w == 0 {
		panic("width must be larger than 0")
	}
	if h == 0 {
		panic("height must be larger than 0")
	}
	return func(cnf *Config) {
		cnf.Width = w
		cnf.Height = h
	}
}

// Hidden overrides the initial visibility.
func Hidden(hidden bool) Option {
	return func(cnf *Config) {
		cnf.Hidden = hidden
	}
}

// WithBackend selects the canvas implementation.
func WithBackend(b Backend) Option {
	return func(cnf *Config) {
		cnf.Backend = b
	}
}

// RemoteAddr sets the listen address of the remote backend.
func RemoteAddr(addr string) Option {
	return func(cnf *Config) {
		cnf.RemoteAddr = addr
	}
}

// FrameRate sets the frame rate of native backends.
func FrameRate(fps int) Option {
	if fps <= 0 {
		panic("frame rate must be larger than 0")
	}
	return func(cnf *Config) {
		cnf.FrameRate = fps
	}
}

// LogLevel sets the level of the loggers of this package and its
// backends, one of "debug", "info", "warn", "error" or "disable".
func LogLevel(level string) Option {
	return func(cnf *Config) {
		cnf.LogLevel = level
	}
}
