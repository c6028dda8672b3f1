package format

import (
	"strconv"
	"strings"

	"github.com/denysvitali/yagobar/ygb"
)

// Lemonbar renders lemonbar markup.
// Clickable areas print the action name, which lemonbar writes to its stdout.
type Lemonbar struct {
	Separator string
}

var _ ygb.Formatter = &Lemonbar{}

var lemonbarEscaper = strings.NewReplacer("%", "%%", "\n", "", "\r", "")

var lemonbarActionEscaper = strings.NewReplacer(":", `\:`, "%", "%%", "\n", "", "\r", "")

// Header returns nothing, lemonbar has no preamble.
func (f *Lemonbar) Header() string {
	return ""
}

// FormatAll renders one lemonbar line.
func (f *Lemonbar) FormatAll(values []ygb.Value) string {
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

func (f *Lemonbar) writeSpan(sb *strings.Builder, s ygb.Span) {
	switch s.Align {
	case ygb.AlignLeft:
		sb.WriteString("%{l}")
	case ygb.AlignCenter:
		sb.WriteString("%{c}")
	case ygb.AlignRight:
		sb.WriteString("%{r}")
	}

	if s.Action != "" {
		sb.WriteString("%{A")

		if s.Button != ygb.ButtonAny {
			sb.WriteString(strconv.Itoa(int(s.Button)))
		}

		sb.WriteString(":")
		sb.WriteString(lemonbarActionEscaper.Replace(s.Action))
		sb.WriteString(":}")
	}

	if s.Background != "" {
		sb.WriteString("%{B" + lemonbarEscaper.Replace(s.Background) + "}")
	}

	if s.Color != "" {
		sb.WriteString("%{F" + lemonbarEscaper.Replace(s.Color) + "}")
	}

	if s.Raw {
		sb.WriteString(stripNewlines(s.Text))
	} else {
		sb.WriteString(lemonbarEscaper.Replace(s.Text))
	}

	if s.Color != "" {
		sb.WriteString("%{F-}")
	}

	if s.Background != "" {
		sb.WriteString("%{B-}")
	}

	if s.Action != "" {
		sb.WriteString("%{A}")
	}
}

// HandleStdin runs the command printed by a lemonbar click.
func (f *Lemonbar) HandleStdin(line string, r ygb.Registry) {
	dispatchToken(line, r)
}
