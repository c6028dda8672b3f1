// Package wrapper contains a widget wrapping another i3bar status program.
package wrapper

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"syscall"

	"github.com/denysvitali/yagobar/internal/executor"
	"github.com/denysvitali/yagobar/widgets/blank"
	"github.com/denysvitali/yagobar/ygb"
)

// WidgetParams are widget parameters.
type WidgetParams struct {
	Command string
	WorkDir string
	// Prefix enables the <prefix>stop and <prefix>cont commands.
	Prefix string
}

// Widget implements the wrapper of other status commands.
type Widget struct {
	blank.Widget
	params WidgetParams
	logger ygb.Logger

	mu  sync.Mutex
	exc *executor.Executor
}

var (
	_ ygb.Widget    = &Widget{}
	_ ygb.Commander = &Widget{}
)

func init() {
	if err := ygb.RegisterWidget(ygb.WidgetSpec{
		Name:          "wrapper",
		NewFunc:       NewWidget,
		DefaultParams: WidgetParams{},
	}); err != nil {
		panic(err)
	}
}

// NewWidget returns a new wrapper widget.
func NewWidget(params interface{}, wlogger ygb.Logger) (ygb.Widget, error) {
	w := &Widget{
		params: params.(WidgetParams),
		logger: wlogger,
	}

	if len(w.params.Command) == 0 {
		return nil, errors.New("missing 'command'")
	}

	return w, nil
}

// Run starts the wrapped program and shows its blocks until it exits.
func (w *Widget) Run(ctx context.Context, notify chan<- struct{}) error {
	exc, err := executor.Exec(ctx, w.params.Command)
	if err != nil {
		return err
	}

	exc.SetWD(w.params.WorkDir)

	// i3status exits when its stdin is closed
	stdin, err := exc.Stdin()
	if err != nil {
		return err
	}

	defer stdin.Close()

	w.mu.Lock()
	w.exc = exc
	w.mu.Unlock()

	err = exc.Run(func(v ygb.Value) {
		if err := w.Update(ctx, notify, v); err != nil {
			w.logger.Debugf("update: %s", err)
		}
	}, executor.OutputFormatJSON)

	if ctx.Err() != nil {
		return ctx.Err()
	}

	if err == nil {
		err = errors.New("process exited unexpectedly")

		if state := exc.ProcessState(); state != nil {
			return fmt.Errorf("%w: %s", err, state.String())
		}
	}

	return err
}

// Commands returns the stop and continue commands when a prefix is configured.
func (w *Widget) Commands() map[string]func() {
	if w.params.Prefix == "" {
		return nil
	}

	return map[string]func(){
		w.params.Prefix + "stop": func() {
			if err := w.signal(syscall.SIGSTOP, func(h *ygb.I3BarHeader) int { return h.StopSignal }); err != nil {
				w.logger.Errorf("Failed to stop: %s", err)
			}
		},
		w.params.Prefix + "cont": func() {
			if err := w.signal(syscall.SIGCONT, func(h *ygb.I3BarHeader) int { return h.ContSignal }); err != nil {
				w.logger.Errorf("Failed to continue: %s", err)
			}
		},
	}
}

// signal sends the signal requested by the program header, or def.
func (w *Widget) signal(def syscall.Signal, fromHeader func(*ygb.I3BarHeader) int) error {
	w.mu.Lock()
	exc := w.exc
	w.mu.Unlock()

	if exc == nil {
		return nil
	}

	if header := exc.I3BarHeader(); header != nil {
		if sig := fromHeader(header); sig != 0 {
			return exc.Signal(syscall.Signal(sig))
		}
	}

	return exc.Signal(def)
}
