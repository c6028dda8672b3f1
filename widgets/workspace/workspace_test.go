package workspace

import (
	"errors"
	"testing"

	"github.com/denysvitali/yagobar/ygb"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.i3wm.org/i3/v4"
)

func newTestWidget(t *testing.T, params WidgetParams) *Widget {
	t.Helper()

	w, err := NewWidget(params, ygb.NopLogger{})
	require.NoError(t, err)

	return w.(*Widget)
}

func TestRender(t *testing.T) {
	w := newTestWidget(t, WidgetParams{
		Prefix:  "ws_",
		Focused: "F",
		Visible: "V",
		Urgent:  "U",
		Normal:  "N",
	})

	v := w.render([]i3.Workspace{
		{Num: 1, Name: "1", Focused: true, Visible: true, Output: "eDP-1"},
		{Num: 2, Name: "2:web", Urgent: true, Output: "eDP-1"},
		{Num: -1, Name: "scratch", Output: "HDMI-1"},
		{Num: 4, Name: "4", Visible: true, Output: "HDMI-1"},
	})

	assert.Equal(t, ygb.Value{
		{Text: " 1 ", Color: "F", Action: "ws_1", NoSeparator: true},
		{Text: " 2:web ", Color: "U", Action: "ws_2", NoSeparator: true},
		{Text: " scratch ", Color: "N", NoSeparator: true},
		{Text: " 4 ", Color: "V", Action: "ws_4"},
	}, v)
}

func TestRenderOutputFilter(t *testing.T) {
	w := newTestWidget(t, WidgetParams{Output: "HDMI-1"})

	v := w.render([]i3.Workspace{
		{Num: 1, Name: "1", Output: "eDP-1"},
		{Num: 4, Name: "4", Output: "HDMI-1"},
	})

	require.Len(t, v, 1)
	assert.Equal(t, " 4 ", v[0].Text)
}

func TestCommands(t *testing.T) {
	w := newTestWidget(t, WidgetParams{Prefix: "ws_"})

	var ran []string

	w.runCommand = func(command string) error {
		ran = append(ran, command)

		return errors.New("not running")
	}

	cmds := w.Commands()
	assert.Len(t, cmds, 12)

	cmds["ws_3"]()
	cmds["ws_next"]()
	cmds["ws_prev"]()

	assert.Equal(t, []string{"workspace number 3", "workspace next_on_output", "workspace prev_on_output"}, ran)
}
