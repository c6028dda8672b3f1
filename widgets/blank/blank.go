// Package blank contains the blank widget, which other widgets embed.
package blank

import (
	"context"

	"github.com/denysvitali/yagobar/ygb"
)

// WidgetParams are widget parameters.
type WidgetParams struct{}

// Widget shows nothing. Embed it to get the value cell and a no-op Run.
type Widget struct {
	ygb.Cell
}

var _ ygb.Widget = &Widget{}

func init() {
	if err := ygb.RegisterWidget(ygb.WidgetSpec{
		Name:          "blank",
		NewFunc:       NewWidget,
		DefaultParams: WidgetParams{},
	}); err != nil {
		panic(err)
	}
}

// NewWidget returns a new blank widget.
func NewWidget(params interface{}, wlogger ygb.Logger) (ygb.Widget, error) {
	return &Widget{}, nil
}

// Run returns immediately.
func (w *Widget) Run(ctx context.Context, notify chan<- struct{}) error {
	return nil
}
