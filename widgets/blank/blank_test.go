package blank

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/denysvitali/yagobar/ygb"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBlankRunReturns(t *testing.T) {
	w, err := NewWidget(WidgetParams{}, ygb.NopLogger{})
	require.NoError(t, err)
	require.NoError(t, w.Run(context.Background(), make(chan struct{})))
	assert.Nil(t, w.Value())
}

type fetchResult struct {
	v   ygb.Value
	err error
}

func TestPollDegradesAndRecovers(t *testing.T) {
	var w Widget

	results := make(chan fetchResult)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	notify := make(chan struct{}, 8)
	done := make(chan error, 1)

	go func() {
		done <- w.Poll(ctx, notify, time.Millisecond, time.Millisecond, func(ctx context.Context) (ygb.Value, error) {
			select {
			case r := <-results:
				return r.v, r.err
			case <-ctx.Done():
				return nil, ctx.Err()
			}
		})
	}()

	step := func(r fetchResult, want ygb.Value) {
		t.Helper()

		results <- r

		select {
		case <-notify:
		case <-time.After(2 * time.Second):
			t.Fatal("timeout")
		}

		assert.Equal(t, want, w.Value())
	}

	step(fetchResult{v: ygb.Text("1")}, ygb.Text("1"))
	step(fetchResult{err: errors.New("gone")}, ygb.Unavailable(NotAvailable))

	// unchanged values are not published again
	results <- fetchResult{err: errors.New("still gone")}
	step(fetchResult{v: ygb.Text("2")}, ygb.Text("2"))
	assert.Len(t, notify, 0)

	step(fetchResult{v: ygb.Text("off"), err: errors.New("custom")}, ygb.Text("off"))

	cancel()
	assert.ErrorIs(t, <-done, context.Canceled)
}
