package ygb

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"runtime/debug"
	"strings"
	"sync/atomic"
)

type widgetContainer struct {
	instance Widget
	// fault overrides the widget output after a panic or a Run error.
	fault  atomic.Pointer[Value]
	logger Logger
}

func (wc *widgetContainer) value() Value {
	if f := wc.fault.Load(); f != nil {
		return *f
	}

	return wc.instance.Value().Normalized()
}

func (wc *widgetContainer) fail(text string) {
	v := Unavailable(text)
	wc.fault.Store(&v)
}

// Bar renders widgets into a single status line and dispatches input commands.
type Bar struct {
	formatter Formatter
	widgets   []*widgetContainer
	fns       Registry

	out    io.Writer
	in     io.Reader
	logger Logger
}

// Option configures a Bar.
type Option func(*Bar)

// WithOutput sets where lines are written. Defaults to os.Stdout.
func WithOutput(w io.Writer) Option {
	return func(b *Bar) { b.out = w }
}

// WithInput sets where commands are read from. Defaults to os.Stdin.
func WithInput(r io.Reader) Option {
	return func(b *Bar) { b.in = r }
}

// WithLogger sets the logger.
func WithLogger(l Logger) Option {
	return func(b *Bar) { b.logger = l }
}

// New returns a bar rendering with formatter f.
func New(f Formatter, opts ...Option) *Bar {
	b := &Bar{
		formatter: f,
		fns:       make(Registry),
		out:       os.Stdout,
		in:        os.Stdin,
		logger:    NopLogger{},
	}

	for _, opt := range opts {
		opt(b)
	}

	return b
}

// RegisterFn registers a named command. An existing command with the same name is replaced.
// All registrations must happen before Run.
func (b *Bar) RegisterFn(name string, fn func()) *Bar {
	b.fns[name] = func() {
		defer (func() {
			if r := recover(); r != nil {
				b.logger.Errorf("command %s panic: %s", name, r)
				debug.PrintStack()
			}
		})()

		b.logger.Debugf("command %s", name)
		fn()
	}

	return b
}

// Add appends a widget. Widgets are rendered in the order they were added.
func (b *Bar) Add(w Widget) *Bar {
	b.widgets = append(b.widgets, &widgetContainer{
		instance: w,
		logger:   b.logger.WithPrefix(fmt.Sprintf("[widget#%d]", len(b.widgets)+1)),
	})

	return b
}

// Len returns the number of widgets.
func (b *Bar) Len() int {
	return len(b.widgets)
}

// Run starts the widgets and the main loop.
// It returns only when ctx is done, on an unrecoverable I/O error
// or when a widget fails with an error matching ErrFatal.
func (b *Bar) Run(ctx context.Context) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	notify := make(chan struct{}, len(b.widgets)+1)
	fatal := make(chan error, 1)

	for wi := range b.widgets {
		go b.runWidget(ctx, b.widgets[wi], notify, fatal)
	}

	if header := b.formatter.Header(); header != "" {
		if _, err := io.WriteString(b.out, header+"\n"); err != nil {
			return fmt.Errorf("write header: %w", err)
		}
	}

	if err := b.show(); err != nil {
		return err
	}

	lines := make(chan string)
	readErr := make(chan error, 1)

	go b.readInput(ctx, lines, readErr)

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-notify:
			if err := b.show(); err != nil {
				return err
			}
		case line, ok := <-lines:
			if !ok {
				b.logger.Debugf("input closed")
				lines = nil

				continue
			}

			b.formatter.HandleStdin(line, b.fns)
		case err := <-readErr:
			return fmt.Errorf("read input: %w", err)
		case err := <-fatal:
			return err
		}
	}
}

func (b *Bar) runWidget(ctx context.Context, wc *widgetContainer, notify chan<- struct{}, fatal chan<- error) {
	defer (func() {
		if r := recover(); r != nil {
			wc.logger.Errorf("widget panic: %s", r)
			debug.PrintStack()
			wc.fail("widget panic")
			_ = Notify(ctx, notify)
		}
	})()

	err := wc.instance.Run(ctx, notify)
	if err == nil || errors.Is(err, context.Canceled) {
		return
	}

	wc.logger.Errorf("Widget done: %s", err)
	wc.fail(err.Error())

	if errors.Is(err, ErrFatal) {
		select {
		case fatal <- err:
		default:
		}

		return
	}

	_ = Notify(ctx, notify)
}

func (b *Bar) readInput(ctx context.Context, lines chan<- string, readErr chan<- error) {
	reader := bufio.NewReader(b.in)

	for {
		line, err := reader.ReadString('\n')
		if line != "" {
			select {
			case lines <- strings.TrimRight(line, "\r\n"):
			case <-ctx.Done():
				return
			}
		}

		if err != nil {
			if err == io.EOF {
				close(lines)
			} else {
				readErr <- err
			}

			return
		}
	}
}

// Render returns the current line without writing it.
func (b *Bar) Render() string {
	values := make([]Value, len(b.widgets))
	for wi := range b.widgets {
		values[wi] = b.widgets[wi].value()
	}

	return strings.ReplaceAll(b.formatter.FormatAll(values), "\n", "")
}

func (b *Bar) show() error {
	if _, err := io.WriteString(b.out, b.Render()+"\n"); err != nil {
		return fmt.Errorf("write line: %w", err)
	}

	return nil
}
