// Package clock contains the clock widget.
package clock

import (
	"context"
	"fmt"
	"time"

	"github.com/denysvitali/yagobar/widgets/blank"
	"github.com/denysvitali/yagobar/ygb"
)

// WidgetParams are widget parameters.
type WidgetParams struct {
	Interval uint
	Format   string
	Location string
}

// Widget implements a clock.
type Widget struct {
	blank.Widget
	params WidgetParams

	loc *time.Location
	now func() time.Time
}

var _ ygb.Widget = &Widget{}

func init() {
	if err := ygb.RegisterWidget(ygb.WidgetSpec{
		Name:    "clock",
		NewFunc: NewWidget,
		DefaultParams: WidgetParams{
			Interval: 1,
			Format:   "Jan _2 Mon 15:04:05",
		},
	}); err != nil {
		panic(err)
	}
}

// NewWidget returns a new clock widget.
func NewWidget(params interface{}, wlogger ygb.Logger) (ygb.Widget, error) {
	w := &Widget{
		params: params.(WidgetParams),
		loc:    time.Local,
		now:    time.Now,
	}

	if w.params.Interval == 0 {
		return nil, fmt.Errorf("invalid interval %d", w.params.Interval)
	}

	if w.params.Location != "" {
		loc, err := time.LoadLocation(w.params.Location)
		if err != nil {
			return nil, err
		}

		w.loc = loc
	}

	w.Set(w.render(w.now()))

	return w, nil
}

func (w *Widget) render(t time.Time) ygb.Value {
	return ygb.Text(t.In(w.loc).Format(w.params.Format))
}

// Run starts the main loop.
func (w *Widget) Run(ctx context.Context, notify chan<- struct{}) error {
	ticker := time.NewTicker(time.Duration(w.params.Interval) * time.Second)
	defer ticker.Stop()

	if err := w.Publish(ctx, notify, w.render(w.now())); err != nil {
		return err
	}

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case t := <-ticker.C:
			if err := w.Publish(ctx, notify, w.render(t)); err != nil {
				return err
			}
		}
	}
}
