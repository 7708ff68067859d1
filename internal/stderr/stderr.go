//go:build !windows

// Package stderr captures output written to file descriptor 2 by C code
// (ALSA through oto, libfaad) so it does not corrupt the TUI.
package stderr

import (
	"bufio"
	"os"
	"strings"
	"sync"

	"golang.org/x/sys/unix"
)

// bufferedLines is how many captured lines wait for a reader before new
// ones are dropped.
const bufferedLines = 100

// Capture redirects fd 2 into a pipe and delivers its lines on Lines.
type Capture struct {
	lines chan string

	mu       sync.Mutex
	started  bool
	original int // duplicate of the real stderr
	read     *os.File
	write    *os.File
	done     chan struct{}
}

// New returns a capture that is not started yet.
func New() *Capture {
	return &Capture{lines: make(chan string, bufferedLines), original: -1}
}

// Lines receives captured lines, trimmed and non-empty. It is closed by
// Stop.
func (c *Capture) Lines() <-chan string {
	return c.lines
}

// Start begins capturing. Call it before the audio backend initializes.
// On error nothing is redirected and output keeps going to the terminal.
func (c *Capture) Start() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.started {
		return nil
	}

	r, w, err := os.Pipe()
	if err != nil {
		return err
	}

	fd := int(os.Stderr.Fd())
	original, err := unix.Dup(fd)
	if err != nil {
		r.Close()
		w.Close()
		return err
	}
	if err := unix.Dup2(int(w.Fd()), fd); err != nil {
		unix.Close(original)
		r.Close()
		w.Close()
		return err
	}

	c.original, c.read, c.write = original, r, w
	c.done = make(chan struct{})
	c.started = true

	go c.forward()
	return nil
}

func (c *Capture) forward() {
	defer close(c.done)
	scanner := bufio.NewScanner(c.read)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		select {
		case c.lines <- line:
		default:
			// Nobody is reading, drop the line
		}
	}
}

// WriteOriginal writes to the real stderr, bypassing the capture.
func (c *Capture) WriteOriginal(msg string) {
	c.mu.Lock()
	fd := c.original
	c.mu.Unlock()
	if fd < 0 {
		_, _ = os.Stderr.WriteString(msg)
		return
	}
	_, _ = unix.Write(fd, []byte(msg))
}

// Stop restores the real stderr and closes Lines once every captured
// line has been delivered or dropped.
func (c *Capture) Stop() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if !c.started {
		return
	}

	// fd 2 must stop referencing the pipe before the reader can see EOF
	_ = unix.Dup2(c.original, int(os.Stderr.Fd()))
	_ = unix.Close(c.original)
	c.original = -1
	c.write.Close()
	<-c.done
	c.read.Close()

	close(c.lines)
	c.started = false
}
