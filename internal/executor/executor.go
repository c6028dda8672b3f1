// Package executor runs external commands and decodes their output into values.
package executor

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"
	"regexp"
	"strings"
	"sync/atomic"
	"syscall"

	"github.com/denysvitali/yagobar/ygb"
)

// OutputFormat selects how command output is decoded.
type OutputFormat string

// Output formats.
const (
	OutputFormatAuto OutputFormat = "auto"
	OutputFormatNone OutputFormat = "none"
	OutputFormatText OutputFormat = "text"
	OutputFormatJSON OutputFormat = "json"
)

// Validate checks that f is a known format.
func (f OutputFormat) Validate() error {
	switch f {
	case OutputFormatAuto, OutputFormatNone, OutputFormatText, OutputFormatJSON:
		return nil
	}

	return fmt.Errorf("unknown output format '%s'", f)
}

var argsRe = regexp.MustCompile(`'.+'|".+"|\S+`)

// Executor wraps one command execution.
type Executor struct {
	cmd    *exec.Cmd
	// header is written by Run and read by signal senders.
	header atomic.Pointer[ygb.I3BarHeader]
}

// Exec prepares command. Quoted words are passed as one argument without the quotes.
func Exec(ctx context.Context, command string, args ...string) (*Executor, error) {
	m := argsRe.FindAllString(command, -1)
	if len(m) == 0 {
		return nil, errors.New("empty command")
	}

	for i := range m {
		m[i] = unquote(m[i])
	}

	name := m[0]
	args = append(m[1:], args...)

	e := &Executor{}

	e.cmd = exec.CommandContext(ctx, name, args...)
	e.cmd.Stderr = os.Stderr
	e.cmd.Env = os.Environ()
	e.cmd.SysProcAttr = &syscall.SysProcAttr{
		Setpgid: true,
		Pgid:    0,
	}

	return e, nil
}

func unquote(s string) string {
	if len(s) >= 2 && (s[0] == '\'' || s[0] == '"') && s[len(s)-1] == s[0] {
		return s[1 : len(s)-1]
	}

	return s
}

// Shell prepares `sh -c command`.
func Shell(ctx context.Context, command string) (*Executor, error) {
	if strings.TrimSpace(command) == "" {
		return nil, errors.New("empty command")
	}

	return Exec(ctx, "sh", "-c", command)
}

// SetWD sets the working directory.
func (e *Executor) SetWD(wd string) {
	e.cmd.Dir = wd
}

// AddEnv appends environment variables.
func (e *Executor) AddEnv(env ...string) {
	e.cmd.Env = append(e.cmd.Env, env...)
}

// Stdin returns a pipe connected to the command stdin.
func (e *Executor) Stdin() (io.WriteCloser, error) {
	return e.cmd.StdinPipe()
}

// Run starts the command and feeds every decoded value to sink until the output ends.
func (e *Executor) Run(sink func(ygb.Value), format OutputFormat) error {
	if format == OutputFormatNone {
		if err := e.cmd.Start(); err != nil {
			return err
		}

		return e.Wait()
	}

	stdout, err := e.cmd.StdoutPipe()
	if err != nil {
		return err
	}

	if err := e.cmd.Start(); err != nil {
		return err
	}

	err = e.decode(stdout, sink, format)
	if err != nil {
		_ = e.cmd.Process.Kill()
	}

	_, _ = io.Copy(io.Discard, stdout)

	if werr := e.Wait(); err == nil {
		err = werr
	}

	return err
}

func (e *Executor) decode(stdout io.Reader, sink func(ygb.Value), format OutputFormat) error {
	buf := &bytes.Buffer{}
	outreader := io.TeeReader(stdout, buf)

	decoder := json.NewDecoder(outreader)

	var firstMessage interface{}

	err := decoder.Decode(&firstMessage)
	if err != nil && format == OutputFormatJSON {
		return err
	}

	isJSON := false

	switch firstMessage.(type) {
	case map[string]interface{}, []interface{}:
		isJSON = true
	}

	if err != nil || !isJSON || format == OutputFormatText {
		if _, err := io.Copy(io.Discard, outreader); err != nil {
			return err
		}

		if text := strings.Trim(buf.String(), "\n "); text != "" {
			sink(ygb.Text(firstLine(text)))
		}

		return nil
	}

	firstMessageData, _ := json.Marshal(firstMessage)

	headerDecoder := json.NewDecoder(bytes.NewReader(firstMessageData))
	headerDecoder.DisallowUnknownFields()

	var header ygb.I3BarHeader
	if err := headerDecoder.Decode(&header); err == nil {
		e.header.Store(&header)

		// opening bracket of the infinite array
		if _, err := decoder.Token(); err != nil {
			return err
		}
	} else {
		var blocks []ygb.I3BarBlock
		if err := json.Unmarshal(firstMessageData, &blocks); err != nil {
			return err
		}

		sink(ygb.BlocksValue(blocks))
	}

	for decoder.More() {
		var blocks []ygb.I3BarBlock
		if err := decoder.Decode(&blocks); err != nil {
			return err
		}

		sink(ygb.BlocksValue(blocks))
	}

	return nil
}

func firstLine(s string) string {
	if i := strings.IndexByte(s, '\n'); i >= 0 {
		return s[:i]
	}

	return s
}

// Wait waits for the command to exit.
func (e *Executor) Wait() error {
	return e.cmd.Wait()
}

// Signal sends sig to the process.
func (e *Executor) Signal(sig os.Signal) error {
	if e.cmd.Process != nil {
		return e.cmd.Process.Signal(sig)
	}

	return nil
}

// ProcessState returns the state of the exited process.
func (e *Executor) ProcessState() *os.ProcessState {
	return e.cmd.ProcessState
}

// I3BarHeader returns the i3bar header printed by the command, if any.
func (e *Executor) I3BarHeader() *ygb.I3BarHeader {
	return e.header.Load()
}
