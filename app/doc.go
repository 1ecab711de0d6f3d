// SPDX-License-Identifier: Unlicense OR MIT

/*
Package app opens canvases: native windows, or canvas elements in a
browser, reporting input through one event stream and one input state
regardless of the backend.

# Canvases

A Canvas is opened with a title, visibility, size and a Sink receiving
events:

	c, err := app.Open("demo", false, 800, 600, sink)
	if err != nil {
		log.Fatal(err)
	}
	c.RenderLoop(func(t time.Duration) app.Control {
		c.PollEvents()
		if c.Key(key.Escape) == event.Press {
			c.Close()
			return app.Stop
		}
		c.SwapBuffers()
		return app.Continue
	})
	if err := c.Run(context.Background()); err != nil {
		log.Fatal(err)
	}

Backend events are queued as they arrive and forwarded to the sink, in
order, by PollEvents. Key and MouseButton report the level state of an
input from every event received so far, whether polled or not.

# Backends

The browser backend drives the element with id "canvas" of the page
running a js/wasm program. The remote backend serves such a page over
HTTP and drives it over a websocket. The x11 and windows backends open
native windows. Operations a backend cannot perform, such as setting the
title of a browser canvas, do nothing.

# Threading

Run executes backend callbacks and frames one at a time on the calling
goroutine. Canvas methods must be called before Run, or from that
goroutine.
*/
package app
