// SPDX-License-Identifier: Unlicense OR MIT

package app

import "testing"

func TestParseBackend(t *testing.T) {
	for _, tc := range []struct {
		in   string
		want Backend
	}{
		{"auto", BackendAuto},
		{"browser", BackendBrowser},
		{"Remote", BackendRemote},
		{"x11", BackendX11},
		{"WINDOWS", BackendWindows},
	} {
		got, err := ParseBackend(tc.in)
		if err != nil {
			t.Errorf("ParseBackend(%q): %v", tc.in, err)
			continue
		}
		if got != tc.want {
			t.Errorf("ParseBackend(%q) = %v, want %v", tc.in, got, tc.want)
		}
	}
	if _, err := ParseBackend("wayland"); err == nil {
		t.Error("ParseBackend accepted an unknown backend")
	}
}

func TestOptions(t *testing.T) {
	cnf := Config{Title: "a", Width: 1, Height: 1}
	for _, o := range []Option{Title("b"), Size(640, 480), Hidden(true), FrameRate(30), RemoteAddr(":0"), WithBackend(BackendRemote)} {
		o(&cnf)
	}
	want := Config{Title: "b", Width: 640, Height: 480, Hidden: true, FrameRate: 30, RemoteAddr: ":0", Backend: BackendRemote}
	if cnf != want {
		t.Errorf("got %+v, want %+v", cnf, want)
	}
}

func TestSizePanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("Size(0, 1) did not panic")
		}
	}()
	Size(0, 1)
}
