package ygb

import (
	"fmt"
	"reflect"
	"sort"

	rs "github.com/denysvitali/yagobar/internal/registry/store"
)

// NewWidgetFunc creates a widget from decoded params.
type NewWidgetFunc = func(params interface{}, logger Logger) (Widget, error)

// WidgetSpec describes a registered widget type.
type WidgetSpec struct {
	Name          string
	NewFunc       NewWidgetFunc
	DefaultParams interface{}
}

// RegisterWidget registers widget.
func RegisterWidget(spec WidgetSpec) error {
	if spec.DefaultParams != nil {
		def := reflect.ValueOf(spec.DefaultParams)
		if def.Kind() != reflect.Struct {
			return fmt.Errorf("defaultParams should be a struct")
		}
	}

	if _, loaded := rs.LoadOrStore("widget_"+spec.Name, spec); loaded {
		return fmt.Errorf("widget '%s' already registered", spec.Name)
	}

	return nil
}

// UnregisterWidget removes a registered widget type.
func UnregisterWidget(name string) bool {
	_, ok := rs.LoadAndDelete("widget_" + name)

	return ok
}

// LookupWidget returns the spec registered under name.
func LookupWidget(name string) (WidgetSpec, bool) {
	v, ok := rs.Load("widget_" + name)
	if !ok {
		return WidgetSpec{}, false
	}

	return v.(WidgetSpec), true
}

// RegisteredWidgets returns all registered widget specs sorted by name.
func RegisteredWidgets() []WidgetSpec {
	var widgets []WidgetSpec

	rs.Range(func(k, v interface{}) bool {
		if spec, ok := v.(WidgetSpec); ok {
			widgets = append(widgets, spec)
		}

		return true
	})

	sort.Slice(widgets, func(i, j int) bool {
		return widgets[i].Name < widgets[j].Name
	})

	return widgets
}
