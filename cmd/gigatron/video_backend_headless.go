//go:build headless

// video_backend_headless.go - No-display video backend for CI and headless
// hosts. Input comes from raw stdin via TerminalHost instead of a window.
package main

import "sync/atomic"

// HeadlessVideo discards presented frames and sources live_in from a
// TerminalHost reading raw stdin.
type HeadlessVideo struct {
	frameCount atomic.Uint64
	term       *TerminalHost
}

// NewVideoOutput constructs the headless backend. Selected by the
// `headless` build tag.
func NewVideoOutput() (VideoOutput, error) {
	return &HeadlessVideo{term: NewTerminalHost()}, nil
}

func (h *HeadlessVideo) Start() error {
	return h.term.Start()
}

func (h *HeadlessVideo) Stop() error {
	h.term.Stop()
	return nil
}

func (h *HeadlessVideo) Quit() bool {
	return h.term.Quit()
}

func (h *HeadlessVideo) Present(frame []uint32) {
	h.frameCount.Add(1)
}

func (h *HeadlessVideo) PollInput() byte {
	return h.term.LiveIn()
}
