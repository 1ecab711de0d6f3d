// SPDX-License-Identifier: Unlicense OR MIT

// Package remote implements a dom.Host for a canvas element in an external
// browser. The host serves a page that forwards DOM events over a
// websocket and answers frame requests from its own requestAnimationFrame.
//
// Only one browser drives the canvas at a time.
package remote

import (
	"context"
	_ "embed"
	"errors"
	"net"
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	jsoniter "github.com/json-iterator/go"
	"github.com/kataras/golog"

	"kanvas.io/app/internal/dom"
	"kanvas.io/app/internal/sched"
)

var (
	// ErrBusy is reported to a browser connecting while another one
	// drives the canvas.
	ErrBusy = errors.New("remote: canvas already attached")
	// ErrClosed is reported to a browser connecting after the host
	// stopped.
	ErrClosed = errors.New("remote: host closed")
)

var (
	json   = jsoniter.ConfigCompatibleWithStandardLibrary
	logger = golog.Child("[remote]")
)

//go:embed page.html
var page []byte

// Logger returns the logger of the package.
func Logger() *golog.Logger {
	return logger
}

// message is a browser to host message. DOM events carry their fields in
// the embedded Event; hello adds the canvas lookup result and the device
// pixel ratio.
type message struct {
	dom.Event
	Found bool    `json:"found"`
	DPR   float64 `json:"dpr"`
}

// reply is a host to browser message.
type reply struct {
	Type    string `json:"type"`
	Session string `json:"session,omitempty"`
	Width   uint32 `json:"width,omitempty"`
	Height  uint32 `json:"height,omitempty"`
}

const (
	msgHello   = "hello"
	msgFrame   = "frame"
	msgWelcome = "welcome"
	msgRAF     = "raf"
	msgSize    = "size"
)

const writeTimeout = 5 * time.Second

// Host is a dom.Host backed by a websocket connection.
type Host struct {
	loop     *sched.Loop
	reg      dom.Registry
	engine   *gin.Engine
	upgrader websocket.Upgrader
	srv      *http.Server

	attached  chan struct{}
	closeOnce sync.Once

	mu      sync.Mutex
	conn    *websocket.Conn
	session uuid.UUID
	closed  bool
	found   bool
	width   float64
	height  float64
	dpr     float64
}

var _ dom.Host = (*Host)(nil)

// New returns a host. Serve it with Start, or mount Handler on a server
// of your own.
func New() *Host {
	gin.SetMode(gin.ReleaseMode)
	h := &Host{
		loop:     sched.New(),
		engine:   gin.New(),
		attached: make(chan struct{}),
		dpr:      1,
	}
	h.engine.Use(gin.Recovery())
	h.engine.GET("/", h.servePage)
	h.engine.GET("/ws", h.serveWS)
	return h
}

// Handler returns the HTTP handler serving the page and the websocket
// endpoint.
func (h *Host) Handler() http.Handler {
	return h.engine
}

// Start listens on addr and serves the host in the background. It returns
// the address actually listened on.
func (h *Host) Start(addr string) (net.Addr, error) {
	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return nil, err
	}
	h.srv = &http.Server{Handler: h.engine}
	go func() {
		if err := h.srv.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Errorf("serve %s: %v", ln.Addr(), err)
		}
	}()
	logger.Infof("open http://%s/ in a browser to attach the canvas", ln.Addr())
	return ln.Addr(), nil
}

func (h *Host) servePage(c *gin.Context) {
	c.Data(http.StatusOK, "text/html; charset=utf-8", page)
}

func (h *Host) serveWS(c *gin.Context) {
	if !c.IsWebsocket() {
		c.AbortWithStatus(http.StatusBadRequest)
		return
	}
	h.mu.Lock()
	closed, busy := h.closed, h.conn != nil
	h.mu.Unlock()
	switch {
	case closed:
		c.AbortWithStatusJSON(http.StatusGone, gin.H{"error": ErrClosed.Error()})
		return
	case busy:
		logger.Warnf("refusing %s: %v", c.Request.RemoteAddr, ErrBusy)
		c.AbortWithStatusJSON(http.StatusConflict, gin.H{"error": ErrBusy.Error()})
		return
	}
	conn, err := h.upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		logger.Warnf("upgrade %s: %v", c.Request.RemoteAddr, err)
		return
	}
	h.mu.Lock()
	if h.conn != nil || h.closed {
		h.mu.Unlock()
		conn.Close()
		return
	}
	h.conn = conn
	h.session = uuid.New()
	session := h.session
	h.mu.Unlock()
	logger.Infof("browser %s attached, session %s", c.Request.RemoteAddr, session)
	h.send(reply{Type: msgWelcome, Session: session.String()})
	h.read(conn)
	logger.Infof("session %s detached", session)
	h.Stop()
}

// read decodes messages until the connection fails.
func (h *Host) read(conn *websocket.Conn) {
	for {
		_, data, err := conn.ReadMessage()
		if err != nil {
			if !websocket.IsCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
				logger.Debugf("read: %v", err)
			}
			return
		}
		var m message
		if err := json.Unmarshal(data, &m); err != nil {
			logger.Warnf("malformed message: %v", err)
			continue
		}
		h.handle(m)
	}
}

func (h *Host) handle(m message) {
	switch m.Type {
	case msgHello:
		h.mu.Lock()
		h.found = m.Found
		h.width, h.height = m.Width, m.Height
		if m.DPR > 0 {
			h.dpr = m.DPR
		}
		h.mu.Unlock()
		h.closeOnce.Do(func() { close(h.attached) })
	case msgFrame:
		h.loop.Tick(time.Duration(m.TimeStamp * float64(time.Millisecond)))
	default:
		e := m.Event
		if e.Type == dom.Resize {
			h.mu.Lock()
			h.width, h.height = e.Width, e.Height
			h.mu.Unlock()
		}
		h.loop.Post(func() {
			h.reg.Dispatch(e)
		})
	}
}

func (h *Host) send(r reply) {
	data, err := json.Marshal(r)
	if err != nil {
		logger.Errorf("encode %s: %v", r.Type, err)
		return
	}
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.conn == nil {
		return
	}
	h.conn.SetWriteDeadline(time.Now().Add(writeTimeout))
	if err := h.conn.WriteMessage(websocket.TextMessage, data); err != nil {
		logger.Debugf("write %s: %v", r.Type, err)
	}
}

// Attach waits for a browser to report its canvas element.
func (h *Host) Attach(ctx context.Context) error {
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-h.loop.Done():
		return ErrClosed
	case <-h.attached:
	}
	h.mu.Lock()
	found := h.found
	h.mu.Unlock()
	if !found {
		return dom.ErrNoCanvas
	}
	return nil
}

// Session returns the identifier of the attached browser session, or the
// zero UUID.
func (h *Host) Session() uuid.UUID {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.session
}

func (h *Host) Subscribe(k dom.Kind, f func(e dom.Event)) dom.Handle {
	return h.reg.Add(k, f)
}

func (h *Host) Unsubscribe(id dom.Handle) {
	h.reg.Remove(id)
}

func (h *Host) ElementSize() (w, ht float64) {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.width, h.height
}

func (h *Host) DevicePixelRatio() float64 {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.dpr
}

func (h *Host) SetDrawableSize(w, ht uint32) {
	h.send(reply{Type: msgSize, Width: w, Height: ht})
}

// RequestFrame asks the browser for an animation frame when cb is the
// first callback waiting.
func (h *Host) RequestFrame(cb func(t time.Duration)) {
	if h.loop.RequestFrame(cb) {
		h.send(reply{Type: msgRAF})
	}
}

// Run dispatches browser events until ctx is done, the browser detaches
// or Stop is called. The server started by Start is shut down on return.
func (h *Host) Run(ctx context.Context) error {
	err := h.loop.Run(ctx)
	h.Close()
	return err
}

// Stop detaches the browser and makes Run return.
func (h *Host) Stop() {
	h.loop.Stop()
	h.mu.Lock()
	h.closed = true
	if h.conn != nil {
		h.conn.Close()
		h.conn = nil
	}
	h.mu.Unlock()
}

// Close stops the host and shuts down the server started by Start.
func (h *Host) Close() {
	h.Stop()
	if h.srv == nil {
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), writeTimeout)
	defer cancel()
	if err := h.srv.Shutdown(ctx); err != nil {
		logger.Debugf("shutdown: %v", err)
	}
}
