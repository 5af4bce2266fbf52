//go:build headless

// audio_backend_headless.go - No-op audio sink: drains the FIFO so it never
// fills, without opening a real audio device.
package main

import (
	"time"

	"github.com/gigatron-emu/gigatron/gigatron"
)

// HeadlessAudio periodically drains fifo on a background ticker so the ring
// does not stay full with Push dropping its oldest samples, without touching
// any audio device.
type HeadlessAudio struct {
	fifo   *gigatron.AudioFIFO
	stopCh chan struct{}
}

// NewAudioOutput constructs the headless no-op audio backend.
func NewAudioOutput(fifo *gigatron.AudioFIFO) (AudioOutput, error) {
	return &HeadlessAudio{fifo: fifo, stopCh: make(chan struct{})}, nil
}

func (a *HeadlessAudio) Start() error {
	go func() {
		buf := make([]byte, a.fifo.Cap())
		ticker := time.NewTicker(10 * time.Millisecond)
		defer ticker.Stop()
		for {
			select {
			case <-a.stopCh:
				return
			case <-ticker.C:
				a.fifo.Read(buf)
			}
		}
	}()
	return nil
}

func (a *HeadlessAudio) Stop() error {
	close(a.stopCh)
	return nil
}
