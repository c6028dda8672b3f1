package format

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/denysvitali/yagobar/ygb"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestI3barHeader(t *testing.T) {
	f := &I3bar{}
	assert.Equal(t, "{\"version\":1,\"click_events\":true}\n[", f.Header())
}

func decodeRecord(t *testing.T, record string) []map[string]interface{} {
	t.Helper()

	require.True(t, strings.HasSuffix(record, ","), record)
	assert.NotContains(t, record, "\n")

	var blocks []map[string]interface{}
	require.NoError(t, json.Unmarshal([]byte(strings.TrimSuffix(record, ",")), &blocks))

	return blocks
}

func TestI3barFormatAll(t *testing.T) {
	f := &I3bar{}

	blocks := decodeRecord(t, f.FormatAll([]ygb.Value{
		ygb.Text("a"),
		ygb.Spans(
			ygb.Span{Text: "b", Color: "#ff0000", Action: "prev", Button: ygb.ButtonLeft},
			ygb.Span{Text: "<i>c</i>", Raw: true, Background: "#000000"},
		),
		nil,
	}))

	require.Len(t, blocks, 4)

	assert.Equal(t, map[string]interface{}{"full_text": "a", "instance": "0"}, blocks[0])
	assert.Equal(t, map[string]interface{}{
		"full_text":             "b",
		"color":                 "#ff0000",
		"name":                  "prev",
		"instance":              "1/1",
		"separator":             false,
		"separator_block_width": float64(0),
	}, blocks[1])
	assert.Equal(t, map[string]interface{}{
		"full_text":  "<i>c</i>",
		"background": "#000000",
		"markup":     "pango",
		"instance":   "1",
	}, blocks[2])
	assert.Equal(t, map[string]interface{}{"full_text": "", "instance": "2"}, blocks[3])
}

func TestI3barEscaping(t *testing.T) {
	f := &I3bar{}

	record := f.FormatAll([]ygb.Value{ygb.Text(`He said "hi" <&>`)})
	assert.Equal(t, `[{"full_text":"He said \"hi\" <&>","instance":"0"}],`, record)

	blocks := decodeRecord(t, record)
	assert.Equal(t, `He said "hi" <&>`, blocks[0]["full_text"])
}

func TestI3barNoSeparator(t *testing.T) {
	f := &I3bar{}

	blocks := decodeRecord(t, f.FormatAll([]ygb.Value{
		ygb.Spans(ygb.Span{Text: "a", NoSeparator: true}),
	}))

	assert.Equal(t, false, blocks[0]["separator"])
	assert.NotContains(t, blocks[0], "separator_block_width")
}

func TestI3barHandleStdin(t *testing.T) {
	var calls []string

	r := ygb.Registry{
		"next": func() { calls = append(calls, "next") },
		"prev": func() { calls = append(calls, "prev") },
	}

	f := &I3bar{}

	for _, line := range []string{
		"[",
		`{"name":"next","button":1}`,
		`,{"name":"prev","instance":"1","button":3}`,
		`,{"name":"next","instance":"0/1","button":3}`,
		`,{"name":"next","instance":"0/1","button":1}`,
		`,{"name":"unknown","button":1}`,
		`,{"button":1}`,
		`,{"name":`,
		`next`,
		``,
	} {
		f.HandleStdin(line, r)
	}

	assert.Equal(t, []string{"next", "prev", "next"}, calls)
}

func TestI3barRoundTrip(t *testing.T) {
	f := &I3bar{}

	blocks := decodeRecord(t, f.FormatAll([]ygb.Value{
		ygb.Spans(ygb.Span{Text: "⏭", Action: "next", Button: ygb.ButtonLeft}),
	}))

	event, err := json.Marshal(map[string]interface{}{
		"name":     blocks[0]["name"],
		"instance": blocks[0]["instance"],
		"button":   1,
	})
	require.NoError(t, err)

	called := false
	f.HandleStdin(","+string(event), ygb.Registry{"next": func() { called = true }})
	assert.True(t, called)
}

func TestInstanceButton(t *testing.T) {
	assert.Equal(t, ygb.ButtonAny, instanceButton(instance(3, ygb.ButtonAny)))
	assert.Equal(t, ygb.ButtonRight, instanceButton(instance(3, ygb.ButtonRight)))
	assert.Equal(t, ygb.ButtonAny, instanceButton("3/x"))
	assert.Equal(t, ygb.ButtonAny, instanceButton(""))
}
