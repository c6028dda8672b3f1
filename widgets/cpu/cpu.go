// Package cpu contains the cpu usage and load average widget.
package cpu

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/denysvitali/yagobar/widgets/blank"
	"github.com/denysvitali/yagobar/ygb"

	"github.com/shirou/gopsutil/cpu"
	"github.com/shirou/gopsutil/load"
)

// WidgetParams are widget parameters.
type WidgetParams struct {
	Interval uint
	// Format placeholders: %p usage percent, %1 %5 %15 load averages.
	Format string
	High   float64
	// HighColor is used while usage is above High.
	HighColor string `yaml:"high_color"`
}

// Widget shows cpu usage.
type Widget struct {
	blank.Widget
	params WidgetParams
	logger ygb.Logger

	percent func(ctx context.Context) (float64, error)
	avg     func(ctx context.Context) (*load.AvgStat, error)
}

var _ ygb.Widget = &Widget{}

func init() {
	if err := ygb.RegisterWidget(ygb.WidgetSpec{
		Name:    "cpu",
		NewFunc: NewWidget,
		DefaultParams: WidgetParams{
			Interval:  1,
			Format:    "CPU: %p%",
			High:      90,
			HighColor: "#ff0000",
		},
	}); err != nil {
		panic(err)
	}
}

// NewWidget returns a new cpu widget.
func NewWidget(params interface{}, wlogger ygb.Logger) (ygb.Widget, error) {
	w := &Widget{
		params:  params.(WidgetParams),
		logger:  wlogger,
		percent: totalPercent,
		avg:     load.AvgWithContext,
	}

	if w.params.Interval == 0 {
		return nil, fmt.Errorf("invalid interval %d", w.params.Interval)
	}

	return w, nil
}

func totalPercent(ctx context.Context) (float64, error) {
	percent, err := cpu.PercentWithContext(ctx, 0, false)
	if err != nil {
		return 0, err
	}

	if len(percent) == 0 {
		return 0, fmt.Errorf("no cpu stats")
	}

	return percent[0], nil
}

// Run starts the main loop.
func (w *Widget) Run(ctx context.Context, notify chan<- struct{}) error {
	interval := time.Duration(w.params.Interval) * time.Second

	return w.Poll(ctx, notify, interval, 5*interval, w.fetch)
}

func (w *Widget) fetch(ctx context.Context) (ygb.Value, error) {
	percent, err := w.percent(ctx)
	if err != nil {
		w.logger.Errorf("cpu: %s", err)

		return nil, err
	}

	loadavg := &load.AvgStat{}

	if strings.Contains(w.params.Format, "%1") || strings.Contains(w.params.Format, "%5") {
		if loadavg, err = w.avg(ctx); err != nil {
			w.logger.Errorf("load: %s", err)

			return nil, err
		}
	}

	span := ygb.Span{Text: formatCPU(w.params.Format, percent, loadavg)}
	if w.params.High > 0 && percent >= w.params.High {
		span.Color = w.params.HighColor
	}

	return ygb.Spans(span), nil
}

func formatCPU(format string, percent float64, avg *load.AvgStat) string {
	return strings.NewReplacer(
		"%p", fmt.Sprintf("%.0f", percent),
		"%15", fmt.Sprintf("%.2f", avg.Load15),
		"%1", fmt.Sprintf("%.2f", avg.Load1),
		"%5", fmt.Sprintf("%.2f", avg.Load5),
	).Replace(format)
}
