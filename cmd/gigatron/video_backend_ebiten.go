//go:build !headless

// video_backend_ebiten.go - Windowed video backend on top of Ebiten.
package main

import (
	"fmt"
	"sync"
	"sync/atomic"

	"github.com/hajimehoshi/ebiten/v2"

	"github.com/gigatron-emu/gigatron/gigatron"
)

// EbitenVideo presents recovered frames in a window and polls gamepad,
// keyboard, and clipboard-paste input into the live_in byte the emulation
// loop reads once per frame.
type EbitenVideo struct {
	mu      sync.Mutex
	image   *ebiten.Image
	pixels  []byte // scratch RGBA buffer reused across Present calls
	liveIn  atomic.Uint32
	quit    atomic.Bool
	started bool

	input *inputState
}

// NewVideoOutput constructs the windowed backend. Selected by the absence
// of the `headless` build tag.
func NewVideoOutput() (VideoOutput, error) {
	return &EbitenVideo{
		image:  ebiten.NewImage(gigatron.FrameWidth, gigatron.FrameHeight),
		pixels: make([]byte, gigatron.FrameWidth*gigatron.FrameHeight*4),
		input:  newInputState(),
	}, nil
}

func (v *EbitenVideo) Start() error {
	ebiten.SetWindowSize(gigatron.FrameWidth, gigatron.FrameHeight)
	ebiten.SetWindowTitle("Gigatron")
	ebiten.SetWindowResizable(true)
	ebiten.SetRunnableOnUnfocused(true)
	v.started = true
	if err := ebiten.RunGame(v); err != nil && err != ebiten.Termination {
		return fmt.Errorf("ebiten: %w", err)
	}
	return nil
}

func (v *EbitenVideo) Stop() error {
	v.quit.Store(true)
	return nil
}

func (v *EbitenVideo) Quit() bool {
	return v.quit.Load()
}

// Present converts the ARGB8888 framebuffer into Ebiten's expected RGBA
// byte order and uploads it to the on-screen image.
func (v *EbitenVideo) Present(frame []uint32) {
	v.mu.Lock()
	defer v.mu.Unlock()
	for i, px := range frame {
		o := i * 4
		v.pixels[o+0] = byte(px >> 16) // R
		v.pixels[o+1] = byte(px >> 8)  // G
		v.pixels[o+2] = byte(px)       // B
		v.pixels[o+3] = 0xFF           // A
	}
	v.image.WritePixels(v.pixels)
}

func (v *EbitenVideo) PollInput() byte {
	return byte(v.liveIn.Load())
}

// Update implements ebiten.Game. It is called once per display tick on
// Ebiten's own goroutine; the emulation loop runs independently and only
// reads the polled live_in value Update publishes.
func (v *EbitenVideo) Update() error {
	if ebiten.IsWindowBeingClosed() || v.quit.Load() {
		return ebiten.Termination
	}
	v.liveIn.Store(uint32(v.input.poll()))
	return nil
}

func (v *EbitenVideo) Draw(screen *ebiten.Image) {
	v.mu.Lock()
	defer v.mu.Unlock()
	screen.DrawImage(v.image, nil)
}

func (v *EbitenVideo) Layout(_, _ int) (int, int) {
	return gigatron.FrameWidth, gigatron.FrameHeight
}
