// Package workspace contains the i3/sway workspace list widget.
package workspace

import (
	"bytes"
	"context"
	"fmt"
	"os/exec"
	"strconv"
	"strings"
	"time"

	"github.com/denysvitali/yagobar/widgets/blank"
	"github.com/denysvitali/yagobar/ygb"

	"go.i3wm.org/i3/v4"
)

// WidgetParams are widget parameters.
type WidgetParams struct {
	// Prefix of the registered commands: <prefix>next, <prefix>prev and <prefix>1..<prefix>10.
	Prefix  string
	Output  string
	Focused string
	Visible string
	Urgent  string
	Normal  string
}

// Widget lists the workspaces of the window manager.
type Widget struct {
	blank.Widget
	params WidgetParams
	logger ygb.Logger

	runCommand func(command string) error
}

var (
	_ ygb.Widget    = &Widget{}
	_ ygb.Commander = &Widget{}
)

func init() {
	if err := ygb.RegisterWidget(ygb.WidgetSpec{
		Name:    "workspace",
		NewFunc: NewWidget,
		DefaultParams: WidgetParams{
			Prefix:  "ws_",
			Focused: "#ffffff",
			Visible: "#cccccc",
			Urgent:  "#ff0000",
			Normal:  "#888888",
		},
	}); err != nil {
		panic(err)
	}
}

// UseSway points the i3 IPC client at sway.
func UseSway(l ygb.Logger) {
	i3.SocketPathHook = func() (string, error) {
		out, err := exec.Command("sway", "--get-socketpath").CombinedOutput()
		if err != nil {
			return "", fmt.Errorf("getting sway socketpath: %w (output: %s)", err, out)
		}

		return strings.TrimSpace(string(out)), nil
	}

	i3.IsRunningHook = func() bool {
		out, err := exec.Command("pgrep", "-c", "sway\\$").CombinedOutput()
		if err != nil {
			l.Errorf("sway running: %s (output: %s)", err, out)
		}

		return bytes.Equal(bytes.TrimSpace(out), []byte("1"))
	}
}

// NewWidget returns a new workspace widget.
func NewWidget(params interface{}, wlogger ygb.Logger) (ygb.Widget, error) {
	w := &Widget{
		params: params.(WidgetParams),
		logger: wlogger,
		runCommand: func(command string) error {
			_, err := i3.RunCommand(command)

			return err
		},
	}

	return w, nil
}

// Commands returns workspace switching commands.
func (w *Widget) Commands() map[string]func() {
	cmds := map[string]func(){
		w.params.Prefix + "next": w.command("workspace next_on_output"),
		w.params.Prefix + "prev": w.command("workspace prev_on_output"),
	}

	for n := 1; n <= 10; n++ {
		cmds[w.params.Prefix+strconv.Itoa(n)] = w.command("workspace number " + strconv.Itoa(n))
	}

	return cmds
}

func (w *Widget) command(command string) func() {
	return func() {
		if err := w.runCommand(command); err != nil {
			w.logger.Errorf("i3 command '%s': %s", command, err)
		}
	}
}

// Run subscribes to workspace events and redraws on each of them.
func (w *Widget) Run(ctx context.Context, notify chan<- struct{}) error {
	for {
		err := w.subscribe(ctx, notify)
		if ctx.Err() != nil {
			return ctx.Err()
		}

		w.logger.Errorf("workspace events: %s", err)

		if err := w.Update(ctx, notify, ygb.Unavailable(blank.NotAvailable)); err != nil {
			return err
		}

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(5 * time.Second):
		}
	}
}

func (w *Widget) subscribe(ctx context.Context, notify chan<- struct{}) error {
	if err := w.refresh(ctx, notify); err != nil {
		return err
	}

	recv := i3.Subscribe(i3.WorkspaceEventType)

	stop := context.AfterFunc(ctx, func() {
		recv.Close()
	})
	defer stop()

	for recv.Next() {
		if e, ok := recv.Event().(*i3.WorkspaceEvent); ok && e.Change == "empty" {
			continue
		}

		if err := w.refresh(ctx, notify); err != nil {
			recv.Close()

			return err
		}
	}

	return recv.Close()
}

func (w *Widget) refresh(ctx context.Context, notify chan<- struct{}) error {
	workspaces, err := i3.GetWorkspaces()
	if err != nil {
		return err
	}

	return w.Update(ctx, notify, w.render(workspaces))
}

func (w *Widget) render(workspaces []i3.Workspace) ygb.Value {
	v := make(ygb.Value, 0, len(workspaces))

	for _, ws := range workspaces {
		if w.params.Output != "" && ws.Output != w.params.Output {
			continue
		}

		span := ygb.Span{
			Text:        " " + ws.Name + " ",
			Color:       w.params.Normal,
			NoSeparator: true,
		}

		switch {
		case ws.Urgent:
			span.Color = w.params.Urgent
		case ws.Focused:
			span.Color = w.params.Focused
		case ws.Visible:
			span.Color = w.params.Visible
		}

		if ws.Num >= 1 && ws.Num <= 10 {
			span.Action = w.params.Prefix + strconv.FormatInt(ws.Num, 10)
		}

		v = append(v, span)
	}

	if len(v) > 0 {
		v[len(v)-1].NoSeparator = false
	}

	return v
}
