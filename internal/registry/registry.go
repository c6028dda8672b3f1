// Package registry builds widgets from their configuration.
package registry

import (
	"context"
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/denysvitali/yagobar/internal/config"
	"github.com/denysvitali/yagobar/ygb"

	"gopkg.in/yaml.v2"
)

// NewWidget creates a widget from its configuration.
// Params are decoded over the widget's default params.
func NewWidget(widgetConfig config.WidgetConfig, wlogger ygb.Logger) (ygb.Widget, error) {
	name := widgetConfig.Name

	spec, ok := ygb.LookupWidget(name)
	if !ok {
		return nil, fmt.Errorf("widget '%s' not found", name)
	}

	if spec.DefaultParams == nil {
		w, err := spec.NewFunc(nil, wlogger)
		if err != nil {
			return nil, err
		}

		return withTemplate(w, widgetConfig.Template), nil
	}

	def := reflect.ValueOf(spec.DefaultParams)

	params := reflect.New(def.Type())
	pe := params.Elem()
	pe.Set(def)

	b, err := yaml.Marshal(widgetConfig.Params)
	if err != nil {
		return nil, err
	}

	if err := yaml.UnmarshalStrict(b, params.Interface()); err != nil {
		return nil, trimYamlErr(err, true)
	}

	if _, ok := widgetConfig.Params["workdir"]; !ok {
		for i := 0; i < pe.NumField(); i++ {
			fn := pe.Type().Field(i).Name
			if strings.ToLower(fn) == "workdir" {
				pe.Field(i).SetString(widgetConfig.WorkDir)
			}
		}
	}

	w, err := spec.NewFunc(pe.Interface(), wlogger)
	if err != nil {
		return nil, err
	}

	return withTemplate(w, widgetConfig.Template), nil
}

func withTemplate(w ygb.Widget, tpl ygb.Span) ygb.Widget {
	if tpl == (ygb.Span{}) {
		return w
	}

	return &Templated{Widget: w, Template: tpl}
}

func trimYamlErr(err error, trimLineN bool) error {
	msg := strings.TrimPrefix(err.Error(), "yaml: unmarshal errors:\n  ")
	if trimLineN {
		msg = strings.TrimPrefix(msg, "line ")
		msg = strings.TrimLeft(msg, "1234567890: ")
	}

	return errors.New(msg)
}

// Templated fills empty span fields of a widget's value from a template.
type Templated struct {
	Widget   ygb.Widget
	Template ygb.Span
}

var (
	_ ygb.Widget    = &Templated{}
	_ ygb.Commander = &Templated{}
)

// Value returns the widget value with the template applied to every span.
func (t *Templated) Value() ygb.Value {
	v := t.Widget.Value().Normalized().Clone()
	for i := range v {
		v[i].Apply(t.Template)
	}

	return v
}

// Run runs the wrapped widget.
func (t *Templated) Run(ctx context.Context, notify chan<- struct{}) error {
	return t.Widget.Run(ctx, notify)
}

// Commands returns the commands of the wrapped widget.
func (t *Templated) Commands() map[string]func() {
	if c, ok := t.Widget.(ygb.Commander); ok {
		return c.Commands()
	}

	return nil
}
