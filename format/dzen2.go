package format

import (
	"strconv"
	"strings"

	"github.com/denysvitali/yagobar/ygb"
)

// Dzen2 defaults.
const (
	DefaultDzen2Separator    = " | "
	DefaultDzen2ClickCommand = "echo %s"
)

// Dzen2 renders dzen2 markup.
//
// dzen2 runs ClickCommand on click; its output has to be fed back to
// yagobar's stdin (e.g. through a fifo) for the action to be dispatched.
type Dzen2 struct {
	Separator string
	// ClickCommand is run on click with the first "%s" replaced by the action name.
	// Without "%s" the action name is appended.
	ClickCommand string
}

var _ ygb.Formatter = &Dzen2{}

var dzen2Escaper = strings.NewReplacer("^", "^^", "\n", "", "\r", "")

var dzen2CommandEscaper = strings.NewReplacer(")", "", "\n", "", "\r", "")

// Header returns nothing, dzen2 has no preamble.
func (f *Dzen2) Header() string {
	return ""
}

// FormatAll renders one dzen2 line.
func (f *Dzen2) FormatAll(values []ygb.Value) string {
	var sb strings.Builder

	for vi := range values {
		v := values[vi].Normalized()

		for si := range v {
			f.writeSpan(&sb, v[si])
		}

		if vi < len(values)-1 && !v.Last().NoSeparator {
			sb.WriteString(f.Separator)
		}
	}

	return sb.String()
}

func (f *Dzen2) clickCommand(action string) string {
	tpl := f.ClickCommand
	if tpl == "" {
		tpl = DefaultDzen2ClickCommand
	}

	if !strings.Contains(tpl, "%s") {
		return dzen2CommandEscaper.Replace(tpl + " " + action)
	}

	return dzen2CommandEscaper.Replace(strings.Replace(tpl, "%s", action, 1))
}

func (f *Dzen2) writeSpan(sb *strings.Builder, s ygb.Span) {
	switch s.Align {
	case ygb.AlignLeft:
		sb.WriteString("^p(_LEFT)")
	case ygb.AlignCenter:
		sb.WriteString("^p(_CENTER)")
	case ygb.AlignRight:
		sb.WriteString("^p(_RIGHT)")
	}

	if s.Action != "" {
		button := s.Button
		if button == ygb.ButtonAny {
			button = ygb.ButtonLeft
		}

		sb.WriteString("^ca(" + strconv.Itoa(int(button)) + ", " + f.clickCommand(s.Action) + ")")
	}

	if s.Background != "" {
		sb.WriteString("^bg(" + dzen2CommandEscaper.Replace(s.Background) + ")")
	}

	if s.Color != "" {
		sb.WriteString("^fg(" + dzen2CommandEscaper.Replace(s.Color) + ")")
	}

	if s.Raw {
		sb.WriteString(stripNewlines(s.Text))
	} else {
		sb.WriteString(dzen2Escaper.Replace(s.Text))
	}

	if s.Color != "" {
		sb.WriteString("^fg()")
	}

	if s.Background != "" {
		sb.WriteString("^bg()")
	}

	if s.Action != "" {
		sb.WriteString("^ca()")
	}
}

// HandleStdin runs the command echoed back by a dzen2 click.
func (f *Dzen2) HandleStdin(line string, r ygb.Registry) {
	dispatchToken(line, r)
}
