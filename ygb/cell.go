package ygb

import (
	"context"
	"slices"
	"sync"
)

// Cell holds the current value of one widget.
// It has a single writer (the widget's Run loop) and any number of readers.
type Cell struct {
	mu    sync.RWMutex
	value Value
}

// NewCell returns a cell with the initial value.
func NewCell(v Value) *Cell {
	return &Cell{value: v.Clone()}
}

// Get returns a copy of the current value.
func (c *Cell) Get() Value {
	c.mu.RLock()
	defer c.mu.RUnlock()

	return c.value.Clone()
}

// Value implements the read side of Widget.
func (c *Cell) Value() Value {
	return c.Get()
}

// Set replaces the current value.
func (c *Cell) Set(v Value) {
	v = v.Clone()

	c.mu.Lock()
	c.value = v
	c.mu.Unlock()
}

// Publish stores v and signals the bar.
func (c *Cell) Publish(ctx context.Context, notify chan<- struct{}, v Value) error {
	c.Set(v)

	return Notify(ctx, notify)
}

// Update publishes v unless it equals the current value.
func (c *Cell) Update(ctx context.Context, notify chan<- struct{}, v Value) error {
	c.mu.Lock()

	if c.value != nil && slices.Equal(c.value, v) {
		c.mu.Unlock()

		return nil
	}

	c.value = v.Clone()
	c.mu.Unlock()

	return Notify(ctx, notify)
}

// Notify sends a change signal, blocking until the bar accepts it or ctx is done.
func Notify(ctx context.Context, notify chan<- struct{}) error {
	select {
	case notify <- struct{}{}:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
