package blank

import (
	"context"
	"time"

	"github.com/denysvitali/yagobar/ygb"
)

// NotAvailable is the text shown while a data source cannot be read.
const NotAvailable = "N/A"

// FetchFunc reads the current value from a data source.
type FetchFunc func(ctx context.Context) (ygb.Value, error)

// Poll calls fetch every interval and publishes changed values until ctx is done.
// When fetch fails the widget shows the returned value, or NotAvailable if it is
// nil, and waits idle before the next attempt.
func (w *Widget) Poll(ctx context.Context, notify chan<- struct{}, interval, idle time.Duration, fetch FetchFunc) error {
	if idle < interval {
		idle = interval
	}

	for {
		wait := interval

		v, err := fetch(ctx)
		if err != nil {
			if ctx.Err() != nil {
				return ctx.Err()
			}

			if v == nil {
				v = ygb.Unavailable(NotAvailable)
			}

			wait = idle
		}

		if err := w.Update(ctx, notify, v); err != nil {
			return err
		}

		timer := time.NewTimer(wait)

		select {
		case <-ctx.Done():
			timer.Stop()

			return ctx.Err()
		case <-timer.C:
		}
	}
}
