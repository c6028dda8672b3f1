// Package mobilebroadband contains the ModemManager widget.
package mobilebroadband

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/denysvitali/yagobar/widgets/blank"
	"github.com/denysvitali/yagobar/ygb"

	mb "github.com/denysvitali/go-mobilebroadband"
)

// WidgetParams are widget parameters.
type WidgetParams struct {
	Interval uint
	// Format placeholders: %o operator, %t access technology, %q signal quality.
	Format string
	// NoModem is shown when no modem is present.
	NoModem string `yaml:"no_modem"`
}

// Widget shows the status of the first modem.
type Widget struct {
	blank.Widget
	params WidgetParams
	logger ygb.Logger

	mobileBroadband *mb.MobileBroadband
}

var _ ygb.Widget = &Widget{}

func init() {
	if err := ygb.RegisterWidget(ygb.WidgetSpec{
		Name:    "mobilebroadband",
		NewFunc: NewWidget,
		DefaultParams: WidgetParams{
			Interval: 5,
			Format:   "%o (%t) - %q%",
			NoModem:  blank.NotAvailable,
		},
	}); err != nil {
		panic(err)
	}
}

// NewWidget returns a new mobile broadband widget.
func NewWidget(params interface{}, wlogger ygb.Logger) (ygb.Widget, error) {
	w := &Widget{
		params: params.(WidgetParams),
		logger: wlogger,
	}

	if w.params.Interval == 0 {
		return nil, fmt.Errorf("invalid interval %d", w.params.Interval)
	}

	return w, nil
}

// Run starts the main loop.
func (w *Widget) Run(ctx context.Context, notify chan<- struct{}) error {
	interval := time.Duration(w.params.Interval) * time.Second

	return w.Poll(ctx, notify, interval, 6*interval, w.fetch)
}

var errNoModem = errors.New("no modem")

func (w *Widget) fetch(ctx context.Context) (ygb.Value, error) {
	if w.mobileBroadband == nil {
		m, err := mb.New()
		if err != nil {
			w.logger.Errorf("unable to initialize MobileBroadband library: %s", err)

			return nil, err
		}

		w.mobileBroadband = m
	}

	modems, err := w.mobileBroadband.Modems()
	if err != nil {
		w.logger.Errorf("unable to get modems: %s", err)

		return nil, err
	}

	if len(modems) == 0 {
		return ygb.Unavailable(w.params.NoModem), errNoModem
	}

	status, err := modems[0].SimpleStatus()
	if err != nil {
		w.logger.Errorf("unable to get simplestatus: %s", err)

		return nil, err
	}

	return ygb.Text(formatStatus(
		w.params.Format,
		status.OperatorName,
		status.AccessTechnologies,
		float64(status.SignalQuality.Value),
	)), nil
}

func formatStatus(format string, operator string, tech int, quality float64) string {
	return strings.NewReplacer(
		"%o", operator,
		"%t", technology(tech),
		"%q", fmt.Sprintf("%.0f", quality),
	).Replace(format)
}

func technology(tech int) string {
	switch mb.AccessTechnology(tech) {
	case mb.EVDOAAt, mb.EVDOBAt, mb.EVDO0At:
		return "E"
	case mb.GPRSAt:
		return "G"
	case mb.GSMAt, mb.GSMCompactAt:
		return "GSM"
	case mb.HSPAAt, mb.HSDPAAt, mb.HSUPAAt:
		return "H+"
	case mb.OneXRTTAt:
		return "3G"
	case mb.LTEAt:
		return "4G"
	case mb.FiveGNRAt:
		return "5G"
	}

	return "?"
}
