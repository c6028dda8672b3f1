// Package exec contains a widget showing the output of a shell command.
package exec

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/denysvitali/yagobar/internal/executor"
	"github.com/denysvitali/yagobar/widgets/blank"
	"github.com/denysvitali/yagobar/ygb"
)

// WidgetParams are widget parameters.
type WidgetParams struct {
	Command      string
	Interval     uint
	WorkDir      string
	OutputFormat executor.OutputFormat `yaml:"output_format"`
	// Update names a command that re-runs the widget command.
	Update string
}

// Widget implements the exec widget.
type Widget struct {
	blank.Widget
	params WidgetParams
	logger ygb.Logger

	upd chan struct{}
}

var (
	_ ygb.Widget    = &Widget{}
	_ ygb.Commander = &Widget{}
)

func init() {
	if err := ygb.RegisterWidget(ygb.WidgetSpec{
		Name:    "exec",
		NewFunc: NewWidget,
		DefaultParams: WidgetParams{
			OutputFormat: executor.OutputFormatAuto,
		},
	}); err != nil {
		panic(err)
	}
}

// NewWidget returns a new exec widget.
func NewWidget(params interface{}, wlogger ygb.Logger) (ygb.Widget, error) {
	w := &Widget{
		params: params.(WidgetParams),
		logger: wlogger,
		upd:    make(chan struct{}, 1),
	}

	if len(w.params.Command) == 0 {
		return nil, errors.New("missing 'command'")
	}

	if err := w.params.OutputFormat.Validate(); err != nil {
		return nil, err
	}

	return w, nil
}

// Commands returns the update command, if configured.
func (w *Widget) Commands() map[string]func() {
	if w.params.Update == "" {
		return nil
	}

	return map[string]func(){
		w.params.Update: func() {
			select {
			case w.upd <- struct{}{}:
			default:
			}
		},
	}
}

func (w *Widget) exec(ctx context.Context, notify chan<- struct{}) error {
	exc, err := executor.Shell(ctx, w.params.Command)
	if err != nil {
		return err
	}

	exc.SetWD(w.params.WorkDir)

	return exc.Run(func(v ygb.Value) {
		if err := w.Update(ctx, notify, v); err != nil {
			w.logger.Debugf("update: %s", err)
		}
	}, w.params.OutputFormat)
}

// Run starts the main loop.
func (w *Widget) Run(ctx context.Context, notify chan<- struct{}) error {
	var tick <-chan time.Time

	if w.params.Interval > 0 {
		ticker := time.NewTicker(time.Duration(w.params.Interval) * time.Second)
		defer ticker.Stop()

		tick = ticker.C
	} else if w.params.Update == "" {
		return w.exec(ctx, notify)
	}

	for {
		if err := w.exec(ctx, notify); err != nil {
			if ctx.Err() != nil {
				return ctx.Err()
			}

			w.logger.Errorf("exec: %s", err)

			if err := w.Update(ctx, notify, ygb.Unavailable(fmt.Sprintf("exec: %s", err))); err != nil {
				return err
			}
		}

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-tick:
		case <-w.upd:
		}
	}
}
