package main

import (
	"context"
	"fmt"

	"github.com/denysvitali/yagobar/format"
	"github.com/denysvitali/yagobar/internal/config"
	"github.com/denysvitali/yagobar/internal/executor"
	"github.com/denysvitali/yagobar/internal/registry"
	_ "github.com/denysvitali/yagobar/widgets"
	"github.com/denysvitali/yagobar/ygb"
)

// newBar builds a bar from cfg. Widgets that fail to build are replaced
// with an error widget. Config commands are registered after widget
// commands and replace them on a name clash.
func newBar(ctx context.Context, cfg *config.Config, l ygb.Logger, opts ...ygb.Option) (*ygb.Bar, error) {
	f, err := format.New(cfg.Output, format.Options{
		Separator:    cfg.Separator,
		ClickCommand: cfg.Dzen2Click,
	})
	if err != nil {
		return nil, err
	}

	bar := ygb.New(f, opts...)

	for wi := range cfg.Widgets {
		wcfg := cfg.Widgets[wi]
		wlogger := l.WithPrefix(fmt.Sprintf("[%s#%d]", wcfg.File, wcfg.Index+1))

		w, err := registry.NewWidget(wcfg, wlogger)
		if err != nil {
			wlogger.Errorf("Failed to create widget: %s", err)

			w, err = registry.NewWidget(config.ErrorWidget(err.Error()), wlogger)
			if err != nil {
				return nil, err
			}
		}

		bar.Add(w)

		if c, ok := w.(ygb.Commander); ok {
			for name, fn := range c.Commands() {
				bar.RegisterFn(name, fn)
			}
		}
	}

	for name, command := range cfg.Commands {
		bar.RegisterFn(name, shellCommand(ctx, command, cfg.WorkDir, l.WithPrefix(name)))
	}

	return bar, nil
}

// shellCommand returns a callback starting command in the background.
func shellCommand(ctx context.Context, command string, wd string, l ygb.Logger) func() {
	return func() {
		e, err := executor.Shell(ctx, command)
		if err != nil {
			l.Errorf("exec: %s", err)

			return
		}

		e.SetWD(wd)

		go func() {
			if err := e.Run(nil, executor.OutputFormatNone); err != nil {
				l.Errorf("exec: %s", err)
			}
		}()
	}
}
