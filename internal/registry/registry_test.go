package registry

import (
	"context"
	"testing"

	"github.com/denysvitali/yagobar/internal/config"
	"github.com/denysvitali/yagobar/ygb"

	_ "github.com/denysvitali/yagobar/widgets/clock"
	_ "github.com/denysvitali/yagobar/widgets/exec"
	_ "github.com/denysvitali/yagobar/widgets/music"
	_ "github.com/denysvitali/yagobar/widgets/static"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func parseWidget(t *testing.T, data string) config.WidgetConfig {
	t.Helper()

	cfg, err := config.Parse([]byte(data), "test")
	require.NoError(t, err)
	require.Len(t, cfg.Widgets, 1)

	return cfg.Widgets[0]
}

func TestNewWidgetNotFound(t *testing.T) {
	_, err := NewWidget(config.WidgetConfig{Name: "nope"}, ygb.NopLogger{})
	require.EqualError(t, err, "widget 'nope' not found")
}

func TestNewWidgetParams(t *testing.T) {
	w, err := NewWidget(parseWidget(t, `
widgets:
  - widget: static
    Text: hello
    color: "#00ff00"
`), ygb.NopLogger{})
	require.NoError(t, err)
	assert.Equal(t, ygb.Value{{Text: "hello", Color: "#00ff00"}}, w.Value())
}

func TestNewWidgetUnknownParam(t *testing.T) {
	_, err := NewWidget(parseWidget(t, `
widgets:
  - widget: clock
    colour: red
`), ygb.NopLogger{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "field colour not found")
}

func TestNewWidgetConstructorError(t *testing.T) {
	_, err := NewWidget(parseWidget(t, `
widgets:
  - widget: static
`), ygb.NopLogger{})
	require.EqualError(t, err, "missing 'text' or 'spans'")
}

func TestTemplate(t *testing.T) {
	w, err := NewWidget(parseWidget(t, `
widgets:
  - widget: static
    spans:
      - text: a
        color: "#111111"
      - text: b
    template:
      color: "#ffffff"
      action: next
      button: 1
`), ygb.NopLogger{})
	require.NoError(t, err)

	require.IsType(t, &Templated{}, w)
	assert.Equal(t, ygb.Value{
		{Text: "a", Color: "#111111", Action: "next", Button: ygb.ButtonLeft},
		{Text: "b", Color: "#ffffff", Action: "next", Button: ygb.ButtonLeft},
	}, w.Value())

	require.NoError(t, w.Run(context.Background(), make(chan struct{}, 1)))
	assert.Nil(t, w.(*Templated).Commands())
}

func TestTemplateKeepsCommands(t *testing.T) {
	w, err := NewWidget(parseWidget(t, `
widgets:
  - widget: music
    prefix: mpd_
    template:
      action: mpd_toggle
`), ygb.NopLogger{})
	require.NoError(t, err)

	c, ok := w.(ygb.Commander)
	require.True(t, ok)
	assert.Contains(t, c.Commands(), "mpd_toggle")
	assert.Equal(t, "mpd_toggle", w.Value()[0].Action)
}

func TestWorkDirInjected(t *testing.T) {
	dir := t.TempDir()

	wcfg := parseWidget(t, `
widgets:
  - widget: exec
    command: pwd
`)
	wcfg.WorkDir = dir

	w, err := NewWidget(wcfg, ygb.NopLogger{})
	require.NoError(t, err)

	require.NoError(t, w.Run(context.Background(), make(chan struct{}, 1)))
	assert.Contains(t, w.Value().String(), dir)
}
