// Package music contains the MPRIS now-playing widget.
package music

import (
	"context"
	"time"

	"github.com/denysvitali/yagobar/widgets/blank"
	"github.com/denysvitali/yagobar/ygb"
)

// WidgetParams are widget parameters.
type WidgetParams struct {
	// Format placeholders are described in Format.
	Format string
	// Stopped is shown when no player is running.
	Stopped string
	// Prefix of the control commands: <prefix>play, <prefix>pause, <prefix>toggle,
	// <prefix>stop, <prefix>next and <prefix>prev.
	Prefix string
}

// Poll timing of the player state.
const (
	pollInterval = 500 * time.Millisecond
	idleInterval = pollInterval + time.Second
	callTimeout  = 2 * time.Second
)

// Widget shows the song of the first MPRIS player.
type Widget struct {
	blank.Widget
	params WidgetParams
	logger ygb.Logger

	backend Backend
}

var (
	_ ygb.Widget    = &Widget{}
	_ ygb.Commander = &Widget{}
)

func init() {
	if err := ygb.RegisterWidget(ygb.WidgetSpec{
		Name:    "music",
		NewFunc: NewWidget,
		DefaultParams: WidgetParams{
			Format: "%s %a - %t",
			Prefix: "music_",
		},
	}); err != nil {
		panic(err)
	}
}

// NewWidget returns a new music widget using MPRIS.
func NewWidget(params interface{}, wlogger ygb.Logger) (ygb.Widget, error) {
	return New(params.(WidgetParams), &MPRIS{}, wlogger), nil
}

// New returns a music widget reading from backend.
func New(params WidgetParams, backend Backend, wlogger ygb.Logger) *Widget {
	return &Widget{
		params:  params,
		logger:  wlogger,
		backend: backend,
	}
}

// Render returns the value shown for s.
func (w *Widget) Render(s SongInfo) ygb.Value {
	if s.Empty() {
		return ygb.Text(w.params.Stopped)
	}

	return ygb.Text(Format(w.params.Format, s))
}

// Run polls the player until ctx is done.
// Failing to reach the session bus at startup is fatal. Later read errors
// show N/A and reconnect on the next, slower, poll.
func (w *Widget) Run(ctx context.Context, notify chan<- struct{}) error {
	if err := w.backend.Connect(); err != nil {
		return ygb.Fatal(err)
	}

	defer w.backend.Close()

	for {
		wait := pollInterval

		info, found, err := w.backend.Song(ctx)

		switch {
		case err != nil:
			if ctx.Err() != nil {
				return ctx.Err()
			}

			w.logger.Debugf("music: %s", err)

			_ = w.backend.Close()

			if err := w.Update(ctx, notify, ygb.Unavailable(blank.NotAvailable)); err != nil {
				return err
			}

			wait = idleInterval
		case !found:
			if err := w.Update(ctx, notify, w.Render(SongInfo{})); err != nil {
				return err
			}

			wait = idleInterval
		default:
			if err := w.Update(ctx, notify, w.Render(info)); err != nil {
				return err
			}
		}

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(wait):
		}
	}
}

// Commands returns the player controls.
func (w *Widget) Commands() map[string]func() {
	return map[string]func(){
		w.params.Prefix + "play":   w.control(MethodPlay),
		w.params.Prefix + "pause":  w.control(MethodPause),
		w.params.Prefix + "toggle": w.control(MethodPlayPause),
		w.params.Prefix + "stop":   w.control(MethodStop),
		w.params.Prefix + "next":   w.control(MethodNext),
		w.params.Prefix + "prev":   w.control(MethodPrevious),
	}
}

func (w *Widget) control(method string) func() {
	return func() {
		ctx, cancel := context.WithTimeout(context.Background(), callTimeout)
		defer cancel()

		if err := w.backend.Call(ctx, method); err != nil {
			w.logger.Errorf("music %s: %s", method, err)
		}
	}
}
