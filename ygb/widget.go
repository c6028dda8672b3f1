package ygb

import (
	"context"
	"errors"
)

// Widget represents a bar data source.
type Widget interface {
	// Value returns the most recently computed value without doing any I/O.
	Value() Value
	// Run is started once in its own goroutine and signals notify
	// every time the value changes. It returns when ctx is done.
	Run(ctx context.Context, notify chan<- struct{}) error
}

// Commander is implemented by widgets that expose control callbacks.
type Commander interface {
	Commands() map[string]func()
}

// ErrFatal matches errors returned by Fatal.
var ErrFatal = errors.New("fatal widget error")

// Fatal marks err as unrecoverable: a widget Run returning it stops the bar
// instead of showing an error segment.
func Fatal(err error) error {
	return fatalError{err: err}
}

type fatalError struct {
	err error
}

func (e fatalError) Error() string {
	return e.err.Error()
}

func (e fatalError) Unwrap() error {
	return e.err
}

func (e fatalError) Is(target error) bool {
	return target == ErrFatal
}
