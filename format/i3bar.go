package format

import (
	"bytes"
	"encoding/json"
	"strconv"
	"strings"

	"github.com/denysvitali/yagobar/ygb"
)

// I3bar implements the i3bar (and swaybar) JSON protocol.
// Each span becomes a block; blocks of one value share an instance prefix.
type I3bar struct {
	StopSignal int
	ContSignal int
}

var _ ygb.Formatter = &I3bar{}

// Header returns the protocol header and opens the infinite array.
func (f *I3bar) Header() string {
	header, _ := json.Marshal(ygb.I3BarHeader{
		Version:     1,
		ClickEvents: true,
		StopSignal:  f.StopSignal,
		ContSignal:  f.ContSignal,
	})

	return string(header) + "\n["
}

// FormatAll renders one record of the infinite array, comma terminated.
func (f *I3bar) FormatAll(values []ygb.Value) string {
	blocks := make([]ygb.I3BarBlock, 0, len(values))

	for vi := range values {
		v := values[vi].Normalized()

		for si := range v {
			blocks = append(blocks, f.block(vi, v[si], si == len(v)-1))
		}
	}

	buf := &bytes.Buffer{}
	encoder := json.NewEncoder(buf)
	encoder.SetEscapeHTML(false)

	if err := encoder.Encode(blocks); err != nil {
		return "[],"
	}

	return strings.TrimRight(buf.String(), "\n") + ","
}

func (f *I3bar) block(vi int, s ygb.Span, last bool) ygb.I3BarBlock {
	block := ygb.I3BarBlock{
		FullText:        s.Text,
		Color:           s.Color,
		BackgroundColor: s.Background,
		Align:           string(s.Align),
		Name:            s.Action,
		Instance:        instance(vi, s.Button),
	}

	if s.Raw {
		block.Markup = "pango"
	}

	if !last || s.NoSeparator {
		separator := false
		block.Separator = &separator
	}

	if !last {
		var width uint16
		block.SeparatorBlockWidth = &width
	}

	return block
}

// instance encodes the value index and an optional button filter.
func instance(vi int, button ygb.Button) string {
	s := strconv.Itoa(vi)
	if button != ygb.ButtonAny {
		s += "/" + strconv.Itoa(int(button))
	}

	return s
}

func instanceButton(instance string) ygb.Button {
	i := strings.IndexByte(instance, '/')
	if i < 0 {
		return ygb.ButtonAny
	}

	n, err := strconv.ParseUint(instance[i+1:], 10, 8)
	if err != nil {
		return ygb.ButtonAny
	}

	return ygb.Button(n)
}

// HandleStdin decodes one click event and runs the command named by the block.
func (f *I3bar) HandleStdin(line string, r ygb.Registry) {
	line = strings.Trim(line, "[], \r\n")
	if line == "" {
		return
	}

	var event ygb.I3BarClickEvent
	if err := json.Unmarshal([]byte(line), &event); err != nil {
		return
	}

	if event.Name == "" {
		return
	}

	if button := instanceButton(event.Instance); button != ygb.ButtonAny && ygb.Button(event.Button) != button {
		return
	}

	r.Call(event.Name)
}
