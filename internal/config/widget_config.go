package config

import (
	"errors"
	"fmt"

	"github.com/denysvitali/yagobar/ygb"
)

// WidgetConfig represents a widget configuration.
type WidgetConfig struct {
	Name     string   `yaml:"widget"`
	Template ygb.Span `yaml:"template,omitempty"`
	WorkDir  string   `yaml:"-"`
	Index    int      `yaml:"-"`
	File     string   `yaml:"-"`

	Params map[string]interface{} `yaml:",inline"`

	IncludeStack []string `yaml:"-"`
}

// Validate checks widget configuration.
func (c WidgetConfig) Validate() error {
	if c.Name == "" {
		return errors.New("missing widget name")
	}

	switch c.Template.Align {
	case ygb.AlignDefault, ygb.AlignLeft, ygb.AlignCenter, ygb.AlignRight:
	default:
		return fmt.Errorf("template: unknown align '%s'", c.Template.Align)
	}

	if c.Template.Button > ygb.ButtonScrollDown {
		return fmt.Errorf("template: unknown button %d", c.Template.Button)
	}

	return nil
}

// ErrorWidget creates new widget with error message.
func ErrorWidget(text string) WidgetConfig {
	return WidgetConfig{
		Name: "static",
		Params: map[string]interface{}{
			"text":  text,
			"color": "#ff0000",
		},
		File: "builtin",
	}
}
