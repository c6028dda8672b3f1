// Package battery contains the battery widget.
package battery

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/denysvitali/yagobar/widgets/blank"
	"github.com/denysvitali/yagobar/ygb"

	"github.com/distatus/battery"
)

// WidgetParams are widget parameters.
type WidgetParams struct {
	Interval uint
	Index    int
	Format   string
	Low      float64
	LowColor string `yaml:"low_color"`
}

// Widget shows the charge of one battery.
type Widget struct {
	blank.Widget
	params WidgetParams
	logger ygb.Logger

	get func(idx int) (*battery.Battery, error)
}

var _ ygb.Widget = &Widget{}

func init() {
	if err := ygb.RegisterWidget(ygb.WidgetSpec{
		Name:    "battery",
		NewFunc: NewWidget,
		DefaultParams: WidgetParams{
			Interval: 5,
			Format:   "%e %p%",
			Low:      15,
			LowColor: "#ff0000",
		},
	}); err != nil {
		panic(err)
	}
}

// NewWidget returns a new battery widget.
func NewWidget(params interface{}, wlogger ygb.Logger) (ygb.Widget, error) {
	w := &Widget{
		params: params.(WidgetParams),
		logger: wlogger,
		get:    battery.Get,
	}

	if w.params.Index < 0 {
		return nil, fmt.Errorf("invalid battery index %d", w.params.Index)
	}

	if w.params.Interval == 0 {
		w.params.Interval = 1
	}

	return w, nil
}

// Run starts the main loop.
func (w *Widget) Run(ctx context.Context, notify chan<- struct{}) error {
	interval := time.Duration(w.params.Interval) * time.Second

	return w.Poll(ctx, notify, interval, 6*interval, w.fetch)
}

func (w *Widget) fetch(ctx context.Context) (ygb.Value, error) {
	batt, err := w.get(w.params.Index)
	if err != nil {
		w.logger.Debugf("unable to get battery %d: %s", w.params.Index, err)

		return nil, err
	}

	span := ygb.Span{Text: formatBattery(w.params.Format, batt)}
	if batt.State != battery.Charging && percentage(batt) < w.params.Low {
		span.Color = w.params.LowColor
	}

	return ygb.Spans(span), nil
}

func formatBattery(format string, batt *battery.Battery) string {
	return strings.NewReplacer(
		"%e", stateEmoji(batt),
		"%p", fmt.Sprintf("%.0f", percentage(batt)),
		"%v", fmt.Sprintf("%.2f", batt.Voltage),
	).Replace(format)
}

func percentage(batt *battery.Battery) float64 {
	if batt.Full <= 0 {
		return 0
	}

	return batt.Current / batt.Full * 100
}

func stateEmoji(batt *battery.Battery) string {
	switch batt.State {
	case battery.Charging:
		return "🔺"
	case battery.Discharging:
		return "🔻"
	case battery.Full:
		return "🔋"
	case battery.Empty:
		return "😥"
	case battery.NotCharging:
		return "❌"
	}

	return "❓"
}
