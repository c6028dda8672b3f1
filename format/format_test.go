package format

import (
	"strings"
	"testing"

	"github.com/denysvitali/yagobar/ygb"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew(t *testing.T) {
	f, err := New("I3Bar", Options{})
	require.NoError(t, err)
	assert.IsType(t, &I3bar{}, f)

	sep := " :: "
	f, err = New("dzen2", Options{Separator: &sep, ClickCommand: "printf %s"})
	require.NoError(t, err)
	assert.Equal(t, &Dzen2{Separator: " :: ", ClickCommand: "printf %s"}, f)

	f, err = New("dzen2", Options{})
	require.NoError(t, err)
	assert.Equal(t, DefaultDzen2Separator, f.(*Dzen2).Separator)

	f, err = New("lemonbar", Options{})
	require.NoError(t, err)
	assert.Equal(t, "", f.(*Lemonbar).Separator)

	_, err = New("xmobar", Options{})
	require.EqualError(t, err, "unknown output format 'xmobar' (available: dzen2, i3bar, lemonbar)")
}

func TestEmptyList(t *testing.T) {
	assert.Equal(t, "", (&Lemonbar{Separator: "|"}).FormatAll(nil))
	assert.Equal(t, "", (&Dzen2{Separator: "|"}).FormatAll(nil))
	assert.Equal(t, "[],", (&I3bar{}).FormatAll(nil))
}

// Every formatter must keep the order and count of values.
func TestRenderCompleteness(t *testing.T) {
	values := []ygb.Value{ygb.Text("alpha"), nil, ygb.Text("gamma"), ygb.Text("delta")}

	for _, name := range Names() {
		f, err := New(name, Options{})
		require.NoError(t, err)

		out := f.FormatAll(values)

		ia := strings.Index(out, "alpha")
		ig := strings.Index(out, "gamma")
		id := strings.Index(out, "delta")

		assert.True(t, ia >= 0 && ia < ig && ig < id, "%s: %q", name, out)
	}
}

func TestDispatchToken(t *testing.T) {
	var calls []string

	r := ygb.Registry{
		"next": func() { calls = append(calls, "next") },
		"prev": func() { calls = append(calls, "prev") },
	}

	for _, f := range []ygb.Formatter{&Lemonbar{}, &Dzen2{}} {
		f.HandleStdin("next", r)
		f.HandleStdin("  prev \r", r)
		f.HandleStdin("", r)
		f.HandleStdin("nex", r)
		f.HandleStdin("next prev", r)
	}

	assert.Equal(t, []string{"next", "prev", "next", "prev"}, calls)
}
