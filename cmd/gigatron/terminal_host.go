//go:build headless

// terminal_host.go - Raw-stdin input source for the headless build.
//
// Grounded on terminal_host.go's raw-mode, non-blocking stdin reader; here
// each byte read is translated directly into the input port encoding
// instead of routed to a line-oriented MMIO device.
package main

import (
	"fmt"
	"os"
	"sync"
	"sync/atomic"
	"syscall"
	"time"

	"golang.org/x/term"
)

// TerminalHost reads raw stdin in a background goroutine and exposes the
// most recently read byte, translated to the input port encoding, as
// live_in.
type TerminalHost struct {
	fd           int
	oldTermState *term.State
	nonblockSet  bool

	stopCh  chan struct{}
	done    chan struct{}
	stopped sync.Once

	liveIn atomic.Uint32
	quit   atomic.Bool
}

// NewTerminalHost creates a host adapter that reads stdin.
func NewTerminalHost() *TerminalHost {
	return &TerminalHost{
		stopCh: make(chan struct{}),
		done:   make(chan struct{}),
	}
}

// Start puts stdin into raw, non-blocking mode and begins reading.
func (h *TerminalHost) Start() error {
	h.fd = int(os.Stdin.Fd())

	oldState, err := term.MakeRaw(h.fd)
	if err != nil {
		close(h.done)
		return fmt.Errorf("terminal_host: raw mode: %w", err)
	}
	h.oldTermState = oldState

	if err := syscall.SetNonblock(h.fd, true); err != nil {
		_ = term.Restore(h.fd, h.oldTermState)
		h.oldTermState = nil
		close(h.done)
		return fmt.Errorf("terminal_host: nonblocking stdin: %w", err)
	}
	h.nonblockSet = true

	go h.readLoop()
	return nil
}

func (h *TerminalHost) readLoop() {
	defer close(h.done)
	buf := make([]byte, 1)
	for {
		select {
		case <-h.stopCh:
			return
		default:
		}

		n, err := syscall.Read(h.fd, buf)
		if n > 0 {
			h.handleByte(buf[0])
		}
		if err == syscall.EAGAIN || err == syscall.EWOULDBLOCK || n == 0 {
			time.Sleep(5 * time.Millisecond)
			continue
		}
		if err != nil {
			h.quit.Store(true)
			return
		}
	}
}

// handleByte translates one raw stdin byte into the input port encoding,
// the same override codes video_backend_ebiten.go's windowed input path
// forwards. A headless session has no window-close affordance, so Ctrl-C
// is forwarded as 0x03 like every other override code; quitting a headless
// run is left to the host process (SIGINT/EOF on stdin).
func (h *TerminalHost) handleByte(b byte) {
	switch b {
	case '\r':
		b = 0x0A
	case 0x7F:
		b = 0x7F
	}
	h.liveIn.Store(uint32(b))
}

// LiveIn returns the input-port byte derived from the most recently read
// key; it decays to 0xFF (all gamepad bits released, active-low) once a
// frame has consumed it, since stdin bytes are discrete events rather than
// held keys.
func (h *TerminalHost) LiveIn() byte {
	return byte(h.liveIn.Swap(0xFF))
}

func (h *TerminalHost) Quit() bool {
	return h.quit.Load()
}

// Stop terminates the reading goroutine and restores stdin.
func (h *TerminalHost) Stop() {
	h.stopped.Do(func() {
		close(h.stopCh)
	})
	<-h.done
	if h.nonblockSet {
		_ = syscall.SetNonblock(h.fd, false)
		h.nonblockSet = false
	}
	if h.oldTermState != nil {
		_ = term.Restore(h.fd, h.oldTermState)
		h.oldTermState = nil
	}
}
