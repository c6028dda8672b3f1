// Package ygb contains the yagobar core: values, widgets, formatters and the bar.
package ygb

// Align is a span alignment inside the bar.
type Align string

// Span alignments.
const (
	AlignDefault Align = ""
	AlignLeft    Align = "left"
	AlignCenter  Align = "center"
	AlignRight   Align = "right"
)

// Button is a mouse button number as reported by the bar.
type Button uint8

// Mouse buttons.
const (
	ButtonAny        Button = 0
	ButtonLeft       Button = 1
	ButtonMiddle     Button = 2
	ButtonRight      Button = 3
	ButtonScrollUp   Button = 4
	ButtonScrollDown Button = 5
)

// Span is a styled piece of widget output.
type Span struct {
	Text       string `json:"text" yaml:"text,omitempty"`
	Color      string `json:"color,omitempty" yaml:"color,omitempty"`
	Background string `json:"background,omitempty" yaml:"background,omitempty"`
	Align      Align  `json:"align,omitempty" yaml:"align,omitempty"`

	// Action is the command name dispatched when the span is clicked.
	Action string `json:"action,omitempty" yaml:"action,omitempty"`
	// Button limits Action to one mouse button. ButtonAny accepts all.
	Button Button `json:"button,omitempty" yaml:"button,omitempty"`

	// Raw text is already in the target markup and is not escaped.
	Raw         bool `json:"raw,omitempty" yaml:"raw,omitempty"`
	NoSeparator bool `json:"no_separator,omitempty" yaml:"no_separator,omitempty"`
}

// Apply fills empty fields of the span from the template.
func (s *Span) Apply(tpl Span) {
	if s.Color == "" {
		s.Color = tpl.Color
	}

	if s.Background == "" {
		s.Background = tpl.Background
	}

	if s.Align == AlignDefault {
		s.Align = tpl.Align
	}

	if s.Action == "" {
		s.Action = tpl.Action
		s.Button = tpl.Button
	}

	if tpl.NoSeparator {
		s.NoSeparator = true
	}
}

// Value is a snapshot of what a widget displays.
// The zero Value renders as a single empty span.
type Value []Span

// Text returns a plain text value.
func Text(s string) Value {
	return Value{{Text: s}}
}

// Spans returns a value made of the given spans.
func Spans(spans ...Span) Value {
	return Value(spans).Clone()
}

// Unavailable returns the value a widget publishes while its source is unreachable.
func Unavailable(s string) Value {
	return Value{{Text: s, Color: "#ff0000"}}
}

// Clone returns a deep copy of v.
func (v Value) Clone() Value {
	if v == nil {
		return nil
	}

	c := make(Value, len(v))
	copy(c, v)

	return c
}

// Normalized returns v, or a single empty span if v has none.
func (v Value) Normalized() Value {
	if len(v) == 0 {
		return Text("")
	}

	return v
}

// String returns the concatenated text of all spans.
func (v Value) String() string {
	var n int
	for i := range v {
		n += len(v[i].Text)
	}

	b := make([]byte, 0, n)
	for i := range v {
		b = append(b, v[i].Text...)
	}

	return string(b)
}

// Last returns the last span of the value.
func (v Value) Last() Span {
	if len(v) == 0 {
		return Span{}
	}

	return v[len(v)-1]
}
