// SPDX-License-Identifier: Unlicense OR MIT

package app

import "github.com/kataras/golog"

var logger = golog.Child("[app]")

// loggers are the package loggers the LogLevel option applies to. Child
// loggers copy their level when created, so each is set directly.
var loggers = []*golog.Logger{logger}

func setLogLevel(level string) {
	for _, l := range loggers {
		l.SetLevel(level)
	}
}
