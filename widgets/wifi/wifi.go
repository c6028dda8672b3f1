// Package wifi contains the wireless network widget.
package wifi

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/denysvitali/yagobar/widgets/blank"
	"github.com/denysvitali/yagobar/ygb"

	"github.com/mdlayher/wifi"
)

// WidgetParams are widget parameters.
type WidgetParams struct {
	Interval uint
	// Format placeholders: %s SSID, %b BSSID, %q signal in dBm, %i interface.
	Format       string
	Interface    string
	Disconnected string
}

type client interface {
	Interfaces() ([]*wifi.Interface, error)
	BSS(ifi *wifi.Interface) (*wifi.BSS, error)
	StationInfo(ifi *wifi.Interface) ([]*wifi.StationInfo, error)
	Close() error
}

// Widget shows the network the wireless interface is associated with.
type Widget struct {
	blank.Widget
	params WidgetParams
	logger ygb.Logger

	open  func() (client, error)
	c     client
	iface *wifi.Interface
}

var _ ygb.Widget = &Widget{}

func init() {
	if err := ygb.RegisterWidget(ygb.WidgetSpec{
		Name:    "wifi",
		NewFunc: NewWidget,
		DefaultParams: WidgetParams{
			Interval:     5,
			Format:       "%s",
			Disconnected: "Not connected",
		},
	}); err != nil {
		panic(err)
	}
}

// NewWidget returns a new wifi widget.
func NewWidget(params interface{}, wlogger ygb.Logger) (ygb.Widget, error) {
	w := &Widget{
		params: params.(WidgetParams),
		logger: wlogger,
		open: func() (client, error) {
			return wifi.New()
		},
	}

	if w.params.Interval == 0 {
		return nil, fmt.Errorf("invalid interval %d", w.params.Interval)
	}

	return w, nil
}

// Run starts the main loop.
func (w *Widget) Run(ctx context.Context, notify chan<- struct{}) error {
	defer func() {
		if w.c != nil {
			w.c.Close()
		}
	}()

	interval := time.Duration(w.params.Interval) * time.Second

	return w.Poll(ctx, notify, interval, 6*interval, w.fetch)
}

func (w *Widget) fetch(ctx context.Context) (ygb.Value, error) {
	if w.c == nil {
		c, err := w.open()
		if err != nil {
			w.logger.Errorf("unable to start wifi client: %s", err)

			return nil, err
		}

		w.c = c
	}

	if w.iface == nil {
		iface, err := w.findInterface()
		if err != nil {
			w.logger.Errorf("%s", err)

			return nil, err
		}

		w.logger.Debugf("using interface %s", iface.Name)
		w.iface = iface
	}

	bss, err := w.c.BSS(w.iface)
	if err != nil {
		w.logger.Debugf("bss: %s", err)

		return ygb.Text(w.params.Disconnected), nil
	}

	signal := ""

	if stations, err := w.c.StationInfo(w.iface); err == nil && len(stations) > 0 {
		signal = strconv.Itoa(stations[0].Signal)
	}

	return ygb.Text(formatBSS(w.params.Format, w.iface.Name, bss, signal)), nil
}

func (w *Widget) findInterface() (*wifi.Interface, error) {
	interfaces, err := w.c.Interfaces()
	if err != nil {
		return nil, fmt.Errorf("unable to get wifi interfaces: %w", err)
	}

	for _, i := range interfaces {
		if w.params.Interface == "" && i.Type == wifi.InterfaceTypeStation {
			return i, nil
		}

		if i.Name == w.params.Interface {
			return i, nil
		}
	}

	return nil, fmt.Errorf("wifi interface '%s' not found", w.params.Interface)
}

func formatBSS(format string, iface string, bss *wifi.BSS, signal string) string {
	return strings.NewReplacer(
		"%s", bss.SSID,
		"%b", bss.BSSID.String(),
		"%q", signal,
		"%i", iface,
	).Replace(format)
}
