// SPDX-License-Identifier: Unlicense OR MIT

//go:build !js

package app

import (
	"context"

	"kanvas.io/app/internal/remote"
)

func init() {
	drivers[BackendRemote] = newRemoteCanvas
	loggers = append(loggers, remote.Logger())
}

func newRemoteCanvas(ctx context.Context, w *callbacks, cnf *Config) (driver, error) {
	h := remote.New()
	if _, err := h.Start(cnf.RemoteAddr); err != nil {
		return nil, err
	}
	d, err := newDOMCanvas(ctx, h, w, cnf)
	if err != nil {
		h.Close()
		return nil, err
	}
	logger.Infof("remote canvas attached, session %s", h.Session())
	return d, nil
}
