// Package static contains a widget with fixed content.
package static

import (
	"context"
	"errors"

	"github.com/denysvitali/yagobar/widgets/blank"
	"github.com/denysvitali/yagobar/ygb"
)

// WidgetParams are widget parameters.
type WidgetParams struct {
	Text  string
	Color string
	Spans []ygb.Span
}

// Widget implements a static widget.
type Widget struct {
	blank.Widget
}

var _ ygb.Widget = &Widget{}

func init() {
	if err := ygb.RegisterWidget(ygb.WidgetSpec{
		Name:          "static",
		NewFunc:       NewWidget,
		DefaultParams: WidgetParams{},
	}); err != nil {
		panic(err)
	}
}

// NewWidget returns a new static widget.
func NewWidget(params interface{}, wlogger ygb.Logger) (ygb.Widget, error) {
	p := params.(WidgetParams)

	w := &Widget{}

	switch {
	case len(p.Spans) > 0:
		w.Set(ygb.Spans(p.Spans...))
	case p.Text != "":
		w.Set(ygb.Spans(ygb.Span{Text: p.Text, Color: p.Color}))
	default:
		return nil, errors.New("missing 'text' or 'spans'")
	}

	return w, nil
}

// Run signals the configured value once.
func (w *Widget) Run(ctx context.Context, notify chan<- struct{}) error {
	return ygb.Notify(ctx, notify)
}
