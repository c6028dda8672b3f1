// Package format implements the bar wire formats.
package format

import (
	"fmt"
	"sort"
	"strings"

	"github.com/denysvitali/yagobar/ygb"
)

// Options configure the markup formats. Nil fields use the format defaults.
type Options struct {
	Separator    *string
	ClickCommand string
}

type newFunc func(opts Options) ygb.Formatter

var formats = map[string]newFunc{
	"i3bar": func(opts Options) ygb.Formatter {
		return &I3bar{}
	},
	"lemonbar": func(opts Options) ygb.Formatter {
		f := &Lemonbar{}
		if opts.Separator != nil {
			f.Separator = *opts.Separator
		}

		return f
	},
	"dzen2": func(opts Options) ygb.Formatter {
		f := &Dzen2{Separator: DefaultDzen2Separator, ClickCommand: opts.ClickCommand}
		if opts.Separator != nil {
			f.Separator = *opts.Separator
		}

		return f
	},
}

// New returns the formatter registered under name.
func New(name string, opts Options) (ygb.Formatter, error) {
	fn, ok := formats[strings.ToLower(name)]
	if !ok {
		return nil, fmt.Errorf("unknown output format '%s' (available: %s)", name, strings.Join(Names(), ", "))
	}

	return fn(opts), nil
}

// Names returns the available format names.
func Names() []string {
	names := make([]string, 0, len(formats))
	for name := range formats {
		names = append(names, name)
	}

	sort.Strings(names)

	return names
}

// dispatchToken runs a command named by a raw input line.
func dispatchToken(line string, r ygb.Registry) {
	name := strings.TrimSpace(line)
	if name == "" {
		return
	}

	r.Call(name)
}

func stripNewlines(s string) string {
	return strings.NewReplacer("\n", "", "\r", "").Replace(s)
}
