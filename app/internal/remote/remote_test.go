// SPDX-License-Identifier: Unlicense OR MIT

package remote

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"

	"kanvas.io/app/internal/dom"
)

func dial(t *testing.T, srv *httptest.Server) *websocket.Conn {
	t.Helper()
	url := "ws" + strings.TrimPrefix(srv.URL, "http") + "/ws"
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { conn.Close() })
	return conn
}

func expect(t *testing.T, conn *websocket.Conn, typ string) reply {
	t.Helper()
	conn.SetReadDeadline(time.Now().Add(5 * time.Second))
	var r reply
	if err := conn.ReadJSON(&r); err != nil {
		t.Fatal(err)
	}
	if r.Type != typ {
		t.Fatalf("got %q message, want %q", r.Type, typ)
	}
	return r
}

func hello(t *testing.T, conn *websocket.Conn, found bool) {
	t.Helper()
	expect(t, conn, msgWelcome)
	m := map[string]interface{}{"type": msgHello, "found": found, "width": 400, "height": 300, "dpr": 2}
	if err := conn.WriteJSON(m); err != nil {
		t.Fatal(err)
	}
}

func attach(t *testing.T, h *Host) error {
	t.Helper()
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	return h.Attach(ctx)
}

func TestServePage(t *testing.T) {
	srv := httptest.NewServer(New().Handler())
	defer srv.Close()
	resp, err := http.Get(srv.URL + "/")
	if err != nil {
		t.Fatal(err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("GET / = %d", resp.StatusCode)
	}
	if ct := resp.Header.Get("Content-Type"); !strings.HasPrefix(ct, "text/html") {
		t.Errorf("Content-Type = %q", ct)
	}
}

func TestEventsAndFrames(t *testing.T) {
	h := New()
	srv := httptest.NewServer(h.Handler())
	defer srv.Close()
	conn := dial(t, srv)
	hello(t, conn, true)
	if err := attach(t, h); err != nil {
		t.Fatal(err)
	}
	if w, ht := h.ElementSize(); w != 400 || ht != 300 {
		t.Errorf("ElementSize() = %v, %v", w, ht)
	}
	if dpr := h.DevicePixelRatio(); dpr != 2 {
		t.Errorf("DevicePixelRatio() = %v", dpr)
	}
	if h.Session().String() == "00000000-0000-0000-0000-000000000000" {
		t.Error("no session assigned")
	}

	events := make(chan dom.Event, 10)
	h.Subscribe(dom.MouseDown, func(e dom.Event) { events <- e })
	frames := make(chan time.Duration, 1)
	h.RequestFrame(func(t time.Duration) { frames <- t })

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	done := make(chan error, 1)
	go func() { done <- h.Run(ctx) }()

	expect(t, conn, msgRAF)
	conn.WriteJSON(map[string]interface{}{"type": "mousedown", "button": 2, "clientX": 5, "shiftKey": true})
	conn.WriteJSON(map[string]interface{}{"type": msgFrame, "timeStamp": 16.5})
	select {
	case e := <-events:
		if e.Button != 2 || e.ClientX != 5 || !e.ShiftKey {
			t.Errorf("got event %+v", e)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("no event delivered")
	}
	select {
	case ts := <-frames:
		if want := 16500 * time.Microsecond; ts != want {
			t.Errorf("frame timestamp %v, want %v", ts, want)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("no frame delivered")
	}

	h.SetDrawableSize(800, 600)
	if r := expect(t, conn, msgSize); r.Width != 800 || r.Height != 600 {
		t.Errorf("size message %+v", r)
	}

	cancel()
	if err := <-done; !errors.Is(err, context.Canceled) {
		t.Errorf("Run = %v, want context.Canceled", err)
	}
}

func TestResizeUpdatesSize(t *testing.T) {
	h := New()
	srv := httptest.NewServer(h.Handler())
	defer srv.Close()
	conn := dial(t, srv)
	hello(t, conn, true)
	if err := attach(t, h); err != nil {
		t.Fatal(err)
	}
	sizes := make(chan [2]float64, 1)
	h.Subscribe(dom.Resize, func(dom.Event) {
		w, ht := h.ElementSize()
		sizes <- [2]float64{w, ht}
	})
	go h.Run(context.Background())
	defer h.Stop()
	conn.WriteJSON(map[string]interface{}{"type": "resize", "width": 640, "height": 480})
	select {
	case s := <-sizes:
		if s != [2]float64{640, 480} {
			t.Errorf("size seen by handler %v", s)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("no resize delivered")
	}
}

func TestNoCanvas(t *testing.T) {
	h := New()
	srv := httptest.NewServer(h.Handler())
	defer srv.Close()
	conn := dial(t, srv)
	hello(t, conn, false)
	if err := attach(t, h); !errors.Is(err, dom.ErrNoCanvas) {
		t.Errorf("Attach = %v, want ErrNoCanvas", err)
	}
}

func TestSecondBrowserRefused(t *testing.T) {
	h := New()
	srv := httptest.NewServer(h.Handler())
	defer srv.Close()
	conn := dial(t, srv)
	expect(t, conn, msgWelcome)
	url := "ws" + strings.TrimPrefix(srv.URL, "http") + "/ws"
	_, resp, err := websocket.DefaultDialer.Dial(url, nil)
	if !errors.Is(err, websocket.ErrBadHandshake) {
		t.Fatalf("second dial: %v, want bad handshake", err)
	}
	if resp.StatusCode != http.StatusConflict {
		t.Errorf("status %d, want %d", resp.StatusCode, http.StatusConflict)
	}
}

func TestDetachEndsRun(t *testing.T) {
	h := New()
	srv := httptest.NewServer(h.Handler())
	defer srv.Close()
	conn := dial(t, srv)
	hello(t, conn, true)
	if err := attach(t, h); err != nil {
		t.Fatal(err)
	}
	done := make(chan error, 1)
	go func() { done <- h.Run(context.Background()) }()
	conn.Close()
	select {
	case err := <-done:
		if err != nil {
			t.Errorf("Run = %v, want nil", err)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("Run did not return after the browser left")
	}
}

func TestMalformedMessageIgnored(t *testing.T) {
	h := New()
	srv := httptest.NewServer(h.Handler())
	defer srv.Close()
	conn := dial(t, srv)
	expect(t, conn, msgWelcome)
	conn.WriteMessage(websocket.TextMessage, []byte("{not json"))
	conn.WriteJSON(map[string]interface{}{"type": msgHello, "found": true, "width": 1, "height": 1})
	if err := attach(t, h); err != nil {
		t.Fatalf("Attach after malformed message: %v", err)
	}
}
