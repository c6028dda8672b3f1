// Package brightness contains the backlight brightness widget.
package brightness

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/denysvitali/yagobar/widgets/blank"
	"github.com/denysvitali/yagobar/ygb"
)

// WidgetParams are widget parameters.
type WidgetParams struct {
	Interval uint
	Format   string
	// Device is a directory name under /sys/class/backlight. Empty selects the first one.
	Device string
}

// Widget shows the backlight brightness in percent.
type Widget struct {
	blank.Widget
	params WidgetParams
	logger ygb.Logger

	root string
}

var _ ygb.Widget = &Widget{}

func init() {
	if err := ygb.RegisterWidget(ygb.WidgetSpec{
		Name:    "brightness",
		NewFunc: NewWidget,
		DefaultParams: WidgetParams{
			Interval: 1,
			Format:   "%.0f%%",
		},
	}); err != nil {
		panic(err)
	}
}

// NewWidget returns a new brightness widget.
func NewWidget(params interface{}, wlogger ygb.Logger) (ygb.Widget, error) {
	w := &Widget{
		params: params.(WidgetParams),
		logger: wlogger,
		root:   "/sys/class/backlight",
	}

	if w.params.Interval == 0 {
		return nil, fmt.Errorf("invalid interval %d", w.params.Interval)
	}

	return w, nil
}

// Run starts the main loop.
func (w *Widget) Run(ctx context.Context, notify chan<- struct{}) error {
	interval := time.Duration(w.params.Interval) * time.Second

	return w.Poll(ctx, notify, interval, 10*interval, w.fetch)
}

func (w *Widget) device() (string, error) {
	if w.params.Device != "" {
		return w.params.Device, nil
	}

	entries, err := os.ReadDir(w.root)
	if err != nil {
		return "", err
	}

	if len(entries) == 0 {
		return "", errors.New("no backlight device")
	}

	return entries[0].Name(), nil
}

func (w *Widget) readDevice(device string, property string) (int, error) {
	v, err := os.ReadFile(filepath.Join(w.root, device, property))
	if err != nil {
		return -1, err
	}

	return strconv.Atoi(strings.TrimSpace(string(v)))
}

func (w *Widget) fetch(ctx context.Context) (ygb.Value, error) {
	device, err := w.device()
	if err != nil {
		w.logger.Errorf("unable to find backlight: %s", err)

		return nil, err
	}

	actual, err := w.readDevice(device, "brightness")
	if err != nil {
		w.logger.Errorf("unable to get brightness: %s", err)

		return nil, err
	}

	max, err := w.readDevice(device, "max_brightness")
	if err != nil || max <= 0 {
		w.logger.Errorf("unable to get max brightness: %v", err)

		return nil, fmt.Errorf("max brightness of %s", device)
	}

	return ygb.Text(fmt.Sprintf(w.params.Format, float64(actual)/float64(max)*100)), nil
}
