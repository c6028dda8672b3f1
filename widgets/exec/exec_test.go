package exec

import (
	"context"
	"testing"
	"time"

	"github.com/denysvitali/yagobar/internal/executor"
	"github.com/denysvitali/yagobar/ygb"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestWidget(t *testing.T, params WidgetParams) *Widget {
	t.Helper()

	if params.OutputFormat == "" {
		params.OutputFormat = executor.OutputFormatAuto
	}

	w, err := NewWidget(params, ygb.NopLogger{})
	require.NoError(t, err)

	return w.(*Widget)
}

func TestNewWidgetValidation(t *testing.T) {
	_, err := NewWidget(WidgetParams{OutputFormat: executor.OutputFormatAuto}, ygb.NopLogger{})
	require.EqualError(t, err, "missing 'command'")

	_, err = NewWidget(WidgetParams{Command: "true", OutputFormat: "xml"}, ygb.NopLogger{})
	require.Error(t, err)
}

func TestRunOnce(t *testing.T) {
	w := newTestWidget(t, WidgetParams{Command: "echo hello"})

	notify := make(chan struct{}, 4)
	require.NoError(t, w.Run(context.Background(), notify))
	assert.Equal(t, ygb.Text("hello"), w.Value())
	assert.Len(t, notify, 1)
}

func TestRunJSON(t *testing.T) {
	w := newTestWidget(t, WidgetParams{
		Command: `echo '[{"full_text":"a","color":"#00ff00"},{"full_text":"b"}]'`,
	})

	require.NoError(t, w.Run(context.Background(), make(chan struct{}, 4)))
	assert.Equal(t, ygb.Value{{Text: "a", Color: "#00ff00"}, {Text: "b"}}, w.Value())
}

func TestUpdateCommand(t *testing.T) {
	dir := t.TempDir()

	w := newTestWidget(t, WidgetParams{
		Command: "echo x >> count; wc -l < count",
		WorkDir: dir,
		Update:  "refresh",
	})

	cmds := w.Commands()
	require.Contains(t, cmds, "refresh")

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	notify := make(chan struct{}, 4)
	done := make(chan error, 1)

	go func() { done <- w.Run(ctx, notify) }()

	wait := func() {
		t.Helper()

		select {
		case <-notify:
		case <-time.After(5 * time.Second):
			t.Fatal("timeout")
		}
	}

	wait()
	assert.Equal(t, ygb.Text("1"), w.Value())

	cmds["refresh"]()
	wait()
	assert.Equal(t, ygb.Text("2"), w.Value())

	cancel()
	assert.ErrorIs(t, <-done, context.Canceled)
}

func TestNoCommandsWithoutUpdate(t *testing.T) {
	w := newTestWidget(t, WidgetParams{Command: "true"})
	assert.Nil(t, w.Commands())
}
