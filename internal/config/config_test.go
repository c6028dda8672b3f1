package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/denysvitali/yagobar/ygb"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseDefaults(t *testing.T) {
	cfg, err := Parse([]byte(`
widgets:
  - widget: clock
`), "test")
	require.NoError(t, err)

	assert.Equal(t, DefaultOutput, cfg.Output)
	assert.Nil(t, cfg.Separator)
	require.Len(t, cfg.Widgets, 1)
	assert.Equal(t, "clock", cfg.Widgets[0].Name)
	assert.Equal(t, "test", cfg.Widgets[0].File)
}

func TestParseVariablesAndTemplate(t *testing.T) {
	cfg, err := Parse([]byte(`
output: lemonbar
separator: " "
variables:
  accent: "#2e9ef4"
  every: 5
commands:
  calendar: gsimplecal
widgets:
  - widget: clock
    Format: "15:04"
    interval: ${every}
    template:
      color: ${accent}
      action: calendar
      button: 1
`), "test")
	require.NoError(t, err)

	assert.Equal(t, "lemonbar", cfg.Output)
	require.NotNil(t, cfg.Separator)
	assert.Equal(t, " ", *cfg.Separator)
	assert.Equal(t, map[string]string{"calendar": "gsimplecal"}, cfg.Commands)

	w := cfg.Widgets[0]
	assert.Equal(t, "15:04", w.Params["format"], "param keys are lower-cased")
	assert.Equal(t, int64(5), w.Params["interval"])
	assert.Equal(t, ygb.Span{Color: "#2e9ef4", Action: "calendar", Button: ygb.ButtonLeft}, w.Template)
}

func TestParseStrict(t *testing.T) {
	_, err := Parse([]byte(`
unknown: 1
`), "test")
	require.Error(t, err)
}

func TestParseEmptyCommand(t *testing.T) {
	_, err := Parse([]byte(`
commands:
  next: "  "
`), "test")
	require.EqualError(t, err, "commands: 'next' has an empty command")
}

func TestInvalidWidgetBecomesErrorWidget(t *testing.T) {
	cfg, err := Parse([]byte(`
widgets:
  - widget: clock
    template:
      align: middle
`), "test")
	require.NoError(t, err)

	w := cfg.Widgets[0]
	assert.Equal(t, "static", w.Name)
	assert.Equal(t, "template: unknown align 'middle'", w.Params["text"])
	assert.Equal(t, "test", w.File)
}

func TestSnippetInclude(t *testing.T) {
	dir := t.TempDir()

	require.NoError(t, os.WriteFile(filepath.Join(dir, "snippet.yml"), []byte(`
variables:
  label: default
widgets:
  - widget: static
    text: "${label}"
  - widget: clock
`), 0o600))

	require.NoError(t, os.WriteFile(filepath.Join(dir, "yagobar.yml"), []byte(`
widgets:
  - widget: static
    text: first
  - widget: $snippet.yml
    label: music
    template:
      color: "#ffffff"
  - widget: static
    text: last
`), 0o600))

	cfg, err := LoadFile(filepath.Join(dir, "yagobar.yml"))
	require.NoError(t, err)

	require.Len(t, cfg.Widgets, 4)
	assert.Equal(t, "first", cfg.Widgets[0].Params["text"])
	assert.Equal(t, "music", cfg.Widgets[1].Params["text"])
	assert.Equal(t, "#ffffff", cfg.Widgets[1].Template.Color)
	assert.Equal(t, "clock", cfg.Widgets[2].Name)
	assert.Equal(t, filepath.Join(dir, "snippet.yml"), cfg.Widgets[2].File)
	assert.Equal(t, "last", cfg.Widgets[3].Params["text"])
}

func TestSnippetRecursiveInclude(t *testing.T) {
	dir := t.TempDir()

	require.NoError(t, os.WriteFile(filepath.Join(dir, "loop.yml"), []byte(`
widgets:
  - widget: $loop.yml
`), 0o600))

	require.NoError(t, os.WriteFile(filepath.Join(dir, "yagobar.yml"), []byte(`
widgets:
  - widget: $loop.yml
`), 0o600))

	cfg, err := LoadFile(filepath.Join(dir, "yagobar.yml"))
	require.NoError(t, err)

	require.Len(t, cfg.Widgets, 1)
	assert.Equal(t, "static", cfg.Widgets[0].Name)
	assert.Contains(t, cfg.Widgets[0].Params["text"], "recursive include")
}

func TestSnippetUnknownVariable(t *testing.T) {
	dir := t.TempDir()

	require.NoError(t, os.WriteFile(filepath.Join(dir, "s.yml"), []byte(`
widgets:
  - widget: clock
`), 0o600))

	require.NoError(t, os.WriteFile(filepath.Join(dir, "yagobar.yml"), []byte(`
widgets:
  - widget: $s.yml
    color: red
`), 0o600))

	cfg, err := LoadFile(filepath.Join(dir, "yagobar.yml"))
	require.NoError(t, err)
	assert.Equal(t, "unknown variable 'color'", cfg.Widgets[0].Params["text"])
}

func TestDump(t *testing.T) {
	cfg, err := Parse([]byte(`
widgets:
  - widget: static
    text: hi
`), "test")
	require.NoError(t, err)

	b, err := Dump(cfg)
	require.NoError(t, err)
	assert.Contains(t, string(b), "widget: static")
	assert.Contains(t, string(b), "text: hi")
}
