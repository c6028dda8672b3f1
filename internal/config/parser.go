package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"

	"gopkg.in/yaml.v2"
)

// DefaultOutput is used when the config does not name an output format.
const DefaultOutput = "i3bar"

func parse(data []byte, workdir string, source string) (*Config, error) {
	config := Config{
		Output:  DefaultOutput,
		WorkDir: workdir,
	}

	if err := yaml.UnmarshalStrict(data, &config); err != nil {
		return nil, trimYamlErr(err, false)
	}

	for name, command := range config.Commands {
		if name == "" {
			return nil, errors.New("commands: empty command name")
		}

		if strings.TrimSpace(command) == "" {
			return nil, fmt.Errorf("commands: '%s' has an empty command", name)
		}
	}

	for wi := range config.Widgets {
		config.Widgets[wi].File = source
		config.Widgets[wi].Index = wi
	}

	replacer := variablesReplacer(config.Variables)

	for wi := range config.Widgets {
		substituteWidget(&config.Widgets[wi], replacer)
	}

WIDGET:
	for wi := 0; wi < len(config.Widgets); wi++ {
		widget := &config.Widgets[wi]

		params := make(map[string]interface{}, len(widget.Params))
		for k, v := range widget.Params {
			params[strings.ToLower(k)] = v
		}

		widget.Params = params

		if widget.WorkDir == "" {
			widget.WorkDir = workdir
		}

		ok, err := parseSnippet(&config, wi, params)
		if err != nil {
			setError(widget, err, false)

			continue WIDGET
		}

		if ok {
			wi--

			continue WIDGET
		}

		if err := widget.Validate(); err != nil {
			setError(widget, err, true)

			continue WIDGET
		}
	}

	return &config, nil
}

// parseSnippet replaces a "$file.yml" widget with the widgets of that file.
func parseSnippet(config *Config, wi int, params map[string]interface{}) (bool, error) {
	widget := config.Widgets[wi]

	if len(widget.Name) == 0 || widget.Name[0] != '$' {
		return false, nil
	}

	for i := range widget.IncludeStack {
		if widget.Name == widget.IncludeStack[i] {
			stack := append(append([]string{}, widget.IncludeStack...), widget.Name)

			return false, fmt.Errorf("recursive include: '%s'", strings.Join(stack, " -> "))
		}
	}

	filename := widget.Name[1:]
	if !filepath.IsAbs(filename) {
		filename = filepath.Join(widget.WorkDir, filename)
	}

	data, err := os.ReadFile(filename)
	if err != nil {
		return false, err
	}

	var snippetConfig SnippetConfig
	if err := yaml.UnmarshalStrict(data, &snippetConfig); err != nil {
		return false, trimYamlErr(err, false)
	}

	vars := make(map[string]interface{}, len(snippetConfig.Variables))
	for k, v := range snippetConfig.Variables {
		vars[k] = v
	}

	for k, v := range params {
		if _, ok := snippetConfig.Variables[k]; !ok {
			return false, fmt.Errorf("unknown variable '%s'", k)
		}

		vars[k] = v
	}

	replacer := variablesReplacer(vars)
	wd := filepath.Dir(filename)

	for i := range snippetConfig.Widgets {
		sw := &snippetConfig.Widgets[i]

		substituteWidget(sw, replacer)

		if sw.WorkDir == "" {
			sw.WorkDir = wd
		}

		sw.File = filename
		sw.Index = i
		sw.IncludeStack = append(append([]string{}, widget.IncludeStack...), widget.Name)
		sw.Template.Apply(widget.Template)
	}

	rest := append([]WidgetConfig{}, config.Widgets[wi+1:]...)
	config.Widgets = append(append(config.Widgets[:wi], snippetConfig.Widgets...), rest...)

	return true, nil
}

func setError(widget *WidgetConfig, err error, trimLineN bool) {
	file, index := widget.File, widget.Index
	*widget = ErrorWidget(trimYamlErr(err, trimLineN).Error())
	widget.File, widget.Index = file, index
}

func trimYamlErr(err error, trimLineN bool) error {
	msg := strings.TrimPrefix(err.Error(), "yaml: ")
	msg = strings.TrimPrefix(msg, "unmarshal errors:\n  ")

	if trimLineN {
		msg = strings.TrimPrefix(msg, "line ")
		msg = strings.TrimLeft(msg, "1234567890: ")
	}

	return errors.New(msg)
}

// variablesReplacer replaces "${name}" with the variable value.
func variablesReplacer(vars map[string]interface{}) *strings.Replacer {
	keys := make([]string, 0, len(vars))
	for k := range vars {
		keys = append(keys, k)
	}

	sort.Strings(keys)

	oldnew := make([]string, 0, len(keys)*2)
	for _, k := range keys {
		oldnew = append(oldnew, fmt.Sprintf("${%s}", k), strings.TrimRight(fmt.Sprint(vars[k]), "\n"))
	}

	return strings.NewReplacer(oldnew...)
}

func substituteWidget(w *WidgetConfig, r *strings.Replacer) {
	for k, v := range w.Params {
		w.Params[k] = substitute(v, r)
	}

	w.Template.Text = r.Replace(w.Template.Text)
	w.Template.Color = r.Replace(w.Template.Color)
	w.Template.Background = r.Replace(w.Template.Background)
	w.Template.Action = r.Replace(w.Template.Action)
}

// substitute replaces variables in strings nested in v.
// A string that becomes an integer after substitution is converted to one.
func substitute(v interface{}, r *strings.Replacer) interface{} {
	switch t := v.(type) {
	case string:
		s := r.Replace(t)
		if s != t {
			if n, err := strconv.ParseInt(s, 10, 64); err == nil {
				return n
			}
		}

		return s
	case map[interface{}]interface{}:
		for k, e := range t {
			t[k] = substitute(e, r)
		}
	case map[string]interface{}:
		for k, e := range t {
			t[k] = substitute(e, r)
		}
	case []interface{}:
		for i := range t {
			t[i] = substitute(t[i], r)
		}
	}

	return v
}
