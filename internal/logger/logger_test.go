package logger

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func firstEntry(t *testing.T, buf *bytes.Buffer) map[string]any {
	t.Helper()

	line := bytes.TrimSpace(bytes.SplitN(buf.Bytes(), []byte("\n"), 2)[0])
	entry := map[string]any{}
	require.NoError(t, json.Unmarshal(line, &entry))

	return entry
}

func TestWithPrefixAddsWidgetField(t *testing.T) {
	buf := &bytes.Buffer{}
	l := NewWithWriter(buf, true, false)

	l.WithPrefix("[yagobar.yml#2]").Errorf("unable to get batteries: %s", "boom")

	entry := firstEntry(t, buf)
	assert.Equal(t, "[yagobar.yml#2]", entry["widget"])
	assert.Contains(t, buf.String(), "unable to get batteries: boom")
}

func TestDebugIsFilteredByDefault(t *testing.T) {
	buf := &bytes.Buffer{}
	l := NewWithWriter(buf, true, false)

	l.Debugf("render")
	assert.Empty(t, buf.String())

	l = NewWithWriter(buf, true, true)
	l.Debugf("render %d", 1)
	assert.Contains(t, buf.String(), "render 1")
}
