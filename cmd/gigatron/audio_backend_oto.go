//go:build !headless

// audio_backend_oto.go - Oto v3 audio output, draining the emulator's audio
// FIFO one PCM sample at a time.
package main

import (
	"math"
	"sync"

	"github.com/ebitengine/oto/v3"

	"github.com/gigatron-emu/gigatron/gigatron"
)

const sampleRate = 44100

// OtoAudio implements AudioOutput by converting each queued 8-bit signed
// PCM sample from the emulator's audio FIFO to a float32 on demand, inside
// Oto's own Read callback - mirroring the ring-to-callback bridge pattern
// the teacher's OtoPlayer uses for its sound chip.
type OtoAudio struct {
	fifo   *gigatron.AudioFIFO
	ctx    *oto.Context
	player *oto.Player
	mu     sync.Mutex
}

// NewAudioOutput constructs the Oto-backed audio device bound to fifo.
func NewAudioOutput(fifo *gigatron.AudioFIFO) (AudioOutput, error) {
	ctx, ready, err := oto.NewContext(&oto.NewContextOptions{
		SampleRate:   sampleRate,
		ChannelCount: 1,
		Format:       oto.FormatFloat32LE,
		BufferSize:   4096,
	})
	if err != nil {
		return nil, err
	}
	<-ready
	a := &OtoAudio{fifo: fifo, ctx: ctx}
	a.player = ctx.NewPlayer(a)
	return a, nil
}

// Read implements io.Reader for Oto's player: it fills p with float32
// samples drained from the FIFO, zero-filling when the FIFO runs dry
// rather than blocking the audio callback.
func (a *OtoAudio) Read(p []byte) (int, error) {
	n := len(p) / 4
	raw := make([]byte, n)
	got := a.fifo.Read(raw)
	for i := 0; i < n; i++ {
		var sample float32
		if i < got {
			sample = float32(int8(raw[i])) / 128
		}
		putFloat32LE(p[i*4:], sample)
	}
	return len(p), nil
}

func putFloat32LE(p []byte, f float32) {
	bits := math.Float32bits(f)
	p[0] = byte(bits)
	p[1] = byte(bits >> 8)
	p[2] = byte(bits >> 16)
	p[3] = byte(bits >> 24)
}

func (a *OtoAudio) Start() error {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.player.Play()
	return nil
}

func (a *OtoAudio) Stop() error {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.player.Close()
}
