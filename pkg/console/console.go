// Package console provides the default vm.Console implementation: a
// raw-mode stdin/stdout pair. This is the "external collaborator" the
// LC-3 core spec assigns to the host program — disabling canonical
// mode and echo, polling for a key without blocking, and writing
// output — kept entirely outside the vm package so the executor's
// instruction semantics stay pure bit math.
package console

import (
	"bufio"
	"io"
	"os"
	"sync"

	"golang.org/x/term"
)

// Stdin is a Console backed by the process's stdin/stdout. A single
// goroutine owns the raw read of os.Stdin and feeds a one-key buffer;
// PollKey peeks that buffer without consuming it, and ReadKey drains
// it. This mirrors how a real keyboard controller is polled: readiness
// and consumption are separate operations.
type Stdin struct {
	out      *bufio.Writer
	oldState *term.State

	mu       sync.Mutex
	buffered *byte
	eof      bool
	keys     chan byte
}

// NewStdin puts the controlling terminal (if any) into raw mode and
// starts the background reader. Callers must call Close to restore
// the terminal before the process exits.
func NewStdin() (*Stdin, error) {
	fd := int(os.Stdin.Fd())
	var oldState *term.State
	if term.IsTerminal(fd) {
		st, err := term.MakeRaw(fd)
		if err != nil {
			return nil, err
		}
		oldState = st
	}
	c := &Stdin{
		out:      bufio.NewWriter(os.Stdout),
		oldState: oldState,
		keys:     make(chan byte),
	}
	go c.pump()
	return c, nil
}

// pump is the only goroutine in the whole program allowed to touch
// os.Stdin directly. It blocks in Read and forwards one byte at a
// time; the channel close on read error (including EOF) signals
// end-of-input to PollKey/ReadKey.
func (c *Stdin) pump() {
	defer close(c.keys)
	buf := make([]byte, 1)
	for {
		if _, err := os.Stdin.Read(buf); err != nil {
			return
		}
		c.keys <- buf[0]
	}
}

// fill tops up the one-key buffer without blocking, if a key is
// already waiting on the channel.
func (c *Stdin) fill() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.buffered != nil || c.eof {
		return
	}
	select {
	case b, ok := <-c.keys:
		if !ok {
			c.eof = true
			return
		}
		c.buffered = &b
	default:
	}
}

// PollKey implements vm.Console.PollKey.
func (c *Stdin) PollKey() bool {
	c.fill()
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.buffered != nil
}

// ReadKey implements vm.Console.ReadKey. It blocks until a key
// arrives or the input stream ends.
func (c *Stdin) ReadKey() (byte, error) {
	c.mu.Lock()
	if c.buffered != nil {
		b := *c.buffered
		c.buffered = nil
		c.mu.Unlock()
		return b, nil
	}
	if c.eof {
		c.mu.Unlock()
		return 0, io.EOF
	}
	c.mu.Unlock()

	b, ok := <-c.keys
	if !ok {
		c.mu.Lock()
		c.eof = true
		c.mu.Unlock()
		return 0, io.EOF
	}
	return b, nil
}

// WriteByte implements vm.Console.WriteByte.
func (c *Stdin) WriteByte(b byte) error {
	return c.out.WriteByte(b)
}

// Flush implements vm.Console.Flush.
func (c *Stdin) Flush() error {
	return c.out.Flush()
}

// Close restores the terminal to the state it was in before NewStdin,
// if it had been put into raw mode.
func (c *Stdin) Close() error {
	if c.oldState == nil {
		return nil
	}
	return term.Restore(int(os.Stdin.Fd()), c.oldState)
}
