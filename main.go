// Yet another status bar feeder for i3bar, lemonbar and dzen2, written in Go.
package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/denysvitali/yagobar/internal/config"
	"github.com/denysvitali/yagobar/internal/logger"
	"github.com/denysvitali/yagobar/widgets/workspace"
	"github.com/denysvitali/yagobar/ygb"

	"github.com/spf13/cobra"

	"pkt.systems/psi"
)

// Version is set at build time.
var Version = "dev"

var builtinConfig = []byte(`
widgets:
  - widget: static
    text: yagobar
    color: "#2e9ef4"
  - widget: cpu
  - widget: disk
  - widget: clock
    format: Jan _2 Mon 15:04:05 # https://golang.org/pkg/time/#Time.Format
    template:
      color: "#ffffff"
`)

type options struct {
	configFile string
	output     string
	debug      bool
	logJSON    bool
	dump       bool
	sway       bool
	version    bool
}

func main() {
	psi.Run(submain)
}

func submain(ctx context.Context) int {
	root := newRootCmd()

	if err := root.ExecuteContext(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "yagobar: %s\n", err)

		return 1
	}

	return 0
}

func newRootCmd() *cobra.Command {
	var opts options

	root := &cobra.Command{
		Use:           "yagobar",
		Short:         "Status line generator for i3bar, lemonbar and dzen2",
		Args:          cobra.NoArgs,
		SilenceErrors: true,
		SilenceUsage:  true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd.Context(), opts)
		},
	}

	flags := root.Flags()
	flags.StringVarP(&opts.configFile, "config", "c", "", `config file (default "yagobar.yml")`)
	flags.StringVarP(&opts.output, "output", "o", "", "output format, overrides the config (dzen2, i3bar, lemonbar)")
	flags.BoolVar(&opts.debug, "debug", false, "enable debug logging")
	flags.BoolVar(&opts.logJSON, "log-json", false, "write logs as JSON lines")
	flags.BoolVar(&opts.dump, "dump", false, "dump parsed config file to stdout")
	flags.BoolVar(&opts.sway, "sway", false, "set it when using sway")
	flags.BoolVar(&opts.version, "version", false, "print version information and exit")

	return root
}

func run(ctx context.Context, opts options) error {
	l := logger.New(opts.logJSON, opts.debug)

	if opts.version {
		fmt.Printf("yagobar %s\n", Version)

		return nil
	}

	var initErrors []error

	cfg, err := loadConfig(opts.configFile)
	if err != nil {
		l.Errorf("Failed to load config: %s", err)
		initErrors = append(initErrors, err)
		cfg = &config.Config{Output: config.DefaultOutput}
	} else {
		l.Infof("using config: %s", cfg.File)
	}

	if opts.dump {
		b, err := config.Dump(cfg)
		if err != nil {
			return fmt.Errorf("dump config: %w", err)
		}

		_, err = os.Stdout.Write(b)

		return err
	}

	if opts.output != "" {
		cfg.Output = opts.output
	}

	if opts.sway {
		workspace.UseSway(l)
	}

	for _, err := range initErrors {
		cfg.Widgets = append([]config.WidgetConfig{config.ErrorWidget(err.Error())}, cfg.Widgets...)
	}

	bar, err := newBar(ctx, cfg, l, ygb.WithLogger(l))
	if err != nil {
		return err
	}

	err = bar.Run(ctx)

	l.Infof("exit")

	if errors.Is(err, context.Canceled) {
		return nil
	}

	return err
}

func loadConfig(configFile string) (*config.Config, error) {
	if configFile != "" {
		return config.LoadFile(configFile)
	}

	configDir, err := os.UserConfigDir()
	if err != nil {
		return nil, fmt.Errorf("failed to get config dir: %s", err)
	}

	cfg, err := config.LoadFile(filepath.Join(configDir, "yagobar", "yagobar.yml"))
	if !os.IsNotExist(err) {
		return cfg, err
	}

	cfg, err = config.LoadFile("yagobar.yml")
	if os.IsNotExist(err) {
		return config.Parse(builtinConfig, "builtin")
	}

	return cfg, err
}
