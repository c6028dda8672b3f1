// Package disk contains the filesystem usage widget.
package disk

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/denysvitali/yagobar/widgets/blank"
	"github.com/denysvitali/yagobar/ygb"

	"github.com/shirou/gopsutil/disk"
)

// WidgetParams are widget parameters.
type WidgetParams struct {
	Interval uint
	// Format placeholders: %a available, %u used, %t total, %p used percent.
	Format string
	Fs     string
}

// Widget shows the usage of one filesystem.
type Widget struct {
	blank.Widget
	params WidgetParams
	logger ygb.Logger

	usage func(ctx context.Context, path string) (*disk.UsageStat, error)
}

var _ ygb.Widget = &Widget{}

func init() {
	if err := ygb.RegisterWidget(ygb.WidgetSpec{
		Name:    "disk",
		NewFunc: NewWidget,
		DefaultParams: WidgetParams{
			Interval: 30,
			Format:   "Disk: %a",
			Fs:       "/",
		},
	}); err != nil {
		panic(err)
	}
}

// NewWidget returns a new disk widget.
func NewWidget(params interface{}, wlogger ygb.Logger) (ygb.Widget, error) {
	w := &Widget{
		params: params.(WidgetParams),
		logger: wlogger,
		usage:  disk.UsageWithContext,
	}

	if w.params.Interval == 0 {
		return nil, fmt.Errorf("invalid interval %d", w.params.Interval)
	}

	return w, nil
}

// Run starts the main loop.
func (w *Widget) Run(ctx context.Context, notify chan<- struct{}) error {
	interval := time.Duration(w.params.Interval) * time.Second

	return w.Poll(ctx, notify, interval, interval, w.fetch)
}

func (w *Widget) fetch(ctx context.Context) (ygb.Value, error) {
	stat, err := w.usage(ctx, w.params.Fs)
	if err != nil {
		w.logger.Errorf("unable to get fs stats: %s", err)

		return nil, err
	}

	return ygb.Text(formatUsage(w.params.Format, stat)), nil
}

func formatUsage(format string, stat *disk.UsageStat) string {
	return strings.NewReplacer(
		"%a", byteCountIEC(stat.Free),
		"%u", byteCountIEC(stat.Used),
		"%t", byteCountIEC(stat.Total),
		"%p", fmt.Sprintf("%.0f", stat.UsedPercent),
	).Replace(format)
}

func byteCountIEC(b uint64) string {
	const unit = 1024
	if b < unit {
		return fmt.Sprintf("%d B", b)
	}

	div, exp := uint64(unit), 0
	for n := b / unit; n >= unit; n /= unit {
		div *= unit
		exp++
	}

	return fmt.Sprintf("%.1f %ciB", float64(b)/float64(div), "KMGTPE"[exp])
}
