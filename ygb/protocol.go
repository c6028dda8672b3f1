package ygb

// I3BarHeader represents the header of an i3bar message.
type I3BarHeader struct {
	Version     uint8 `json:"version"`
	StopSignal  int   `json:"stop_signal,omitempty"`
	ContSignal  int   `json:"cont_signal,omitempty"`
	ClickEvents bool  `json:"click_events,omitempty"`
}

// I3BarBlock represents a block of i3bar message.
type I3BarBlock struct {
	FullText            string  `json:"full_text"`
	ShortText           string  `json:"short_text,omitempty"`
	Color               string  `json:"color,omitempty"`
	BackgroundColor     string  `json:"background,omitempty"`
	Markup              string  `json:"markup,omitempty"`
	Align               string  `json:"align,omitempty"`
	Name                string  `json:"name,omitempty"`
	Instance            string  `json:"instance,omitempty"`
	Urgent              bool    `json:"urgent,omitempty"`
	Separator           *bool   `json:"separator,omitempty"`
	SeparatorBlockWidth *uint16 `json:"separator_block_width,omitempty"`
}

// I3BarClickEvent represents a user click event message.
type I3BarClickEvent struct {
	Name      string   `json:"name,omitempty"`
	Instance  string   `json:"instance,omitempty"`
	Button    uint8    `json:"button"`
	X         uint16   `json:"x"`
	Y         uint16   `json:"y"`
	RelativeX uint16   `json:"relative_x"`
	RelativeY uint16   `json:"relative_y"`
	Width     uint16   `json:"width"`
	Height    uint16   `json:"height"`
	Modifiers []string `json:"modifiers"`
}

// Span converts an i3bar block produced by another status program into a span.
func (b I3BarBlock) Span() Span {
	s := Span{
		Text:       b.FullText,
		Color:      b.Color,
		Background: b.BackgroundColor,
		Align:      Align(b.Align),
		Action:     b.Name,
		Raw:        b.Markup == "pango",
	}

	if b.Separator != nil && !*b.Separator {
		s.NoSeparator = true
	}

	return s
}

// BlocksValue converts i3bar blocks into a value.
func BlocksValue(blocks []I3BarBlock) Value {
	v := make(Value, 0, len(blocks))
	for i := range blocks {
		v = append(v, blocks[i].Span())
	}

	return v
}
