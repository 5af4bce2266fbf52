// backend.go - Host backend interfaces implemented once per build tag.
//
// Exactly one video backend and one audio backend are linked into any given
// binary: the default build links the Ebiten window + Oto audio device; the
// headless build links a terminal-only input source and a no-op audio
// sink, for CI and machines with no display or audio device.
package main

// VideoOutput presents recovered frames and reports the live_in byte the
// host currently wants driven into the CPU, combining gamepad state and the
// keyboard override codes described by the input port encoding.
type VideoOutput interface {
	Start() error
	Stop() error
	// Present is called once per "frame ready" signal with the just
	// completed frame's ARGB8888 pixels (FrameWidth*FrameHeight entries).
	Present(frame []uint32)
	// PollInput returns the active-low live_in byte to drive into the CPU
	// for the next frame.
	PollInput() byte
	// Quit reports whether the host wants to stop the emulation loop (the
	// window was closed, or the interactive session ended).
	Quit() bool
}

// AudioOutput drains an *gigatron.AudioFIFO on its own schedule once
// started; Stop releases the underlying device.
type AudioOutput interface {
	Start() error
	Stop() error
}
