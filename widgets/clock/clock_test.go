package clock

import (
	"context"
	"testing"
	"time"

	"github.com/denysvitali/yagobar/ygb"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRender(t *testing.T) {
	w, err := NewWidget(WidgetParams{Interval: 1, Format: "15:04", Location: "UTC"}, ygb.NopLogger{})
	require.NoError(t, err)

	at := time.Date(2024, 3, 1, 13, 37, 0, 0, time.UTC)
	assert.Equal(t, ygb.Text("13:37"), w.(*Widget).render(at))
}

func TestInvalidParams(t *testing.T) {
	_, err := NewWidget(WidgetParams{Interval: 0, Format: "15:04"}, ygb.NopLogger{})
	require.Error(t, err)

	_, err = NewWidget(WidgetParams{Interval: 1, Location: "Nowhere/Special"}, ygb.NopLogger{})
	require.Error(t, err)
}

func TestRunPublishesImmediately(t *testing.T) {
	w, err := NewWidget(WidgetParams{Interval: 60, Format: "2006"}, ygb.NopLogger{})
	require.NoError(t, err)

	w.(*Widget).now = func() time.Time { return time.Date(1999, 1, 1, 0, 0, 0, 0, time.Local) }

	ctx, cancel := context.WithCancel(context.Background())
	notify := make(chan struct{})
	done := make(chan error, 1)

	go func() { done <- w.Run(ctx, notify) }()

	select {
	case <-notify:
	case <-time.After(2 * time.Second):
		t.Fatal("no initial notification")
	}

	assert.Equal(t, ygb.Text("1999"), w.Value())

	cancel()
	assert.ErrorIs(t, <-done, context.Canceled)
}
