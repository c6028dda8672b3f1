// Package logger adapts pslog to the ygb.Logger interface.
package logger

import (
	"fmt"
	"io"
	"os"

	"github.com/denysvitali/yagobar/ygb"

	"pkt.systems/pslog"
)

// New returns a logger writing to stderr, JSON lines when structured is set.
func New(structured bool, debug bool) ygb.Logger {
	return NewWithWriter(os.Stderr, structured, debug)
}

// NewWithWriter returns a logger writing to w.
// Structured loggers write JSON lines, others write console lines.
func NewWithWriter(w io.Writer, structured bool, debug bool) ygb.Logger {
	opts := pslog.Options{
		Mode:     pslog.ModeConsole,
		MinLevel: pslog.InfoLevel,
	}

	if structured {
		opts.Mode = pslog.ModeStructured
		opts.NoColor = true
	}

	if debug {
		opts.MinLevel = pslog.DebugLevel
	}

	return &logger{log: pslog.NewWithOptions(w, opts)}
}

type logger struct {
	log pslog.Logger
}

func (l *logger) Infof(format string, v ...interface{}) {
	l.log.Info(fmt.Sprintf(format, v...))
}

func (l *logger) Errorf(format string, v ...interface{}) {
	l.log.Error(fmt.Sprintf(format, v...))
}

func (l *logger) Debugf(format string, v ...interface{}) {
	l.log.Debug(fmt.Sprintf(format, v...))
}

func (l *logger) WithPrefix(prefix string) ygb.Logger {
	return &logger{log: l.log.With("widget", prefix)}
}
