//go:build !headless

// input.go - Gamepad + keyboard -> live_in translation for the Ebiten
// backend.
package main

import (
	"sync"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"golang.design/x/clipboard"
)

// inputState tracks the clipboard-paste burst in progress (if any) across
// poll() calls - pasted text is fed one byte per call so it reads to the
// firmware as ordinary fast typing rather than one giant instantaneous
// write.
type inputState struct {
	mu            sync.Mutex
	pasteQueue    []byte
	clipboardOnce sync.Once
	clipboardOK   bool
}

func newInputState() *inputState {
	return &inputState{}
}

// gamepad bit assignments, matching the input port encoding.
const (
	bitRight = 1 << 0
	bitLeft  = 1 << 1
	bitDown  = 1 << 2
	bitUp    = 1 << 3
	bitStart = 1 << 4
	bitSel   = 1 << 5
	bitB     = 1 << 6
	bitA     = 1 << 7
)

// poll returns the byte to drive into live_in for this tick: an override
// code if a text-entry key is held or queued from a paste, else the
// active-low gamepad state.
func (s *inputState) poll() byte {
	if b, ok := s.nextOverride(); ok {
		return b
	}

	var bits byte
	if ebiten.IsKeyPressed(ebiten.KeyArrowRight) {
		bits |= bitRight
	}
	if ebiten.IsKeyPressed(ebiten.KeyArrowLeft) {
		bits |= bitLeft
	}
	if ebiten.IsKeyPressed(ebiten.KeyArrowDown) {
		bits |= bitDown
	}
	if ebiten.IsKeyPressed(ebiten.KeyArrowUp) {
		bits |= bitUp
	}
	if ebiten.IsKeyPressed(ebiten.KeyEnter) {
		bits |= bitStart
	}
	if ebiten.IsKeyPressed(ebiten.KeySpace) {
		bits |= bitSel
	}
	if ebiten.IsKeyPressed(ebiten.KeyZ) {
		bits |= bitB
	}
	if ebiten.IsKeyPressed(ebiten.KeyX) {
		bits |= bitA
	}
	return 0xFF ^ bits
}

// nextOverride returns the next queued paste byte, or an override code for
// a key that is held this tick, or a character typed this tick.
func (s *inputState) nextOverride() (byte, bool) {
	s.mu.Lock()
	if len(s.pasteQueue) > 0 {
		b := s.pasteQueue[0]
		s.pasteQueue = s.pasteQueue[1:]
		s.mu.Unlock()
		return b, true
	}
	s.mu.Unlock()

	ctrl := ebiten.IsKeyPressed(ebiten.KeyControlLeft) || ebiten.IsKeyPressed(ebiten.KeyControlRight)
	shift := ebiten.IsKeyPressed(ebiten.KeyShiftLeft) || ebiten.IsKeyPressed(ebiten.KeyShiftRight)
	if ctrl && ebiten.IsKeyPressed(ebiten.KeyC) {
		return 0x03, true
	}
	if ctrl && shift && inpututil.IsKeyJustPressed(ebiten.KeyV) {
		s.queuePaste()
	}

	switch {
	case ebiten.IsKeyPressed(ebiten.KeyTab):
		return 0x09, true
	case ebiten.IsKeyPressed(ebiten.KeyEnter):
		return 0x0A, true
	case ebiten.IsKeyPressed(ebiten.KeyBackspace), ebiten.IsKeyPressed(ebiten.KeyDelete):
		return 0x7F, true
	}
	for i, key := range functionKeys {
		if ebiten.IsKeyPressed(key) {
			return byte(0xC0 + i), true
		}
	}
	for _, r := range ebiten.AppendInputChars(nil) {
		if r > 0 && r <= 0xFF {
			return byte(r), true
		}
	}
	return 0, false
}

var functionKeys = []ebiten.Key{
	ebiten.KeyF1, ebiten.KeyF2, ebiten.KeyF3, ebiten.KeyF4,
	ebiten.KeyF5, ebiten.KeyF6, ebiten.KeyF7, ebiten.KeyF8,
	ebiten.KeyF9, ebiten.KeyF10, ebiten.KeyF11, ebiten.KeyF12,
}

// queuePaste reads the system clipboard and enqueues its contents to be
// drip-fed through nextOverride, one byte per subsequent poll().
func (s *inputState) queuePaste() {
	s.clipboardOnce.Do(func() {
		s.clipboardOK = clipboard.Init() == nil
	})
	if !s.clipboardOK {
		return
	}
	data := clipboard.Read(clipboard.FmtText)
	if len(data) == 0 {
		return
	}
	const maxPaste = 4096
	if len(data) > maxPaste {
		data = data[:maxPaste]
	}
	s.mu.Lock()
	s.pasteQueue = append(s.pasteQueue, data...)
	s.mu.Unlock()
}
