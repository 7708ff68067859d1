//go:build windows

// Package stderr is a no-op on Windows, whose audio backend does not write
// to the console.
package stderr

import "os"

type Capture struct {
	lines chan string
}

func New() *Capture {
	return &Capture{lines: make(chan string)}
}

func (c *Capture) Lines() <-chan string { return c.lines }

func (c *Capture) Start() error { return nil }

func (c *Capture) WriteOriginal(msg string) {
	_, _ = os.Stderr.WriteString(msg)
}

// Stop closes Lines.
func (c *Capture) Stop() {
	select {
	case <-c.lines:
	default:
		close(c.lines)
	}
}
