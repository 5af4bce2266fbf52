// recovery.go - Video/audio signal recovery.
//
// The CPU interpreter only knows about its own registers; it has no notion
// of a raster beam or a sample rate. Recovery turns the out port's sync
// edges into a 640x480 framebuffer and an audio stream, exactly as
// original_source's main.c does inline in its run loop - here split out so
// a host can call Advance once per CPU.Step without owning any of the
// beam-tracking state itself.
package gigatron

// FrameWidth and FrameHeight are the dimensions of the recovered video
// framebuffer; the visible raster is a sub-window of the full VGA timing.
const (
	FrameWidth  = 640
	FrameHeight = 480
)

// AudioSource selects which CPU register is sampled into the audio FIFO on
// each /HSYNC rising edge. The Gigatron's own firmware changed conventions
// across ROM revisions; a host configures this to match the ROM it loads.
type AudioSource int

const (
	// AudioSourceXout samples the high nibble of Xout, the convention used
	// by current ROMs (the low nibble carries an unrelated blinkenlight
	// signal and is masked off).
	AudioSourceXout AudioSource = iota
	// AudioSourceAcc samples Acc directly, the convention used by ROMs
	// authored against the earlier single-channel audio firmware.
	AudioSourceAcc
)

// Recovery tracks the VGA beam position across calls to Advance and
// accumulates the recovered framebuffer and audio stream.
type Recovery struct {
	VX, VY int // current beam position; VX/VY are allowed negative during blanking

	// HSyncResetX is the VX loaded on /HSYNC rising and VSyncResetY the VY
	// loaded on /VSYNC falling. The Gigatron firmware ships in two timing
	// variants - a tight-blanking one and a "bordered" one with a few extra
	// back-porch lines/columns - so these are fields, not constants;
	// NewRecovery sets the tight-blanking defaults used by the stock ROMs.
	HSyncResetX int
	VSyncResetY int

	Source AudioSource

	framebuffer [FrameWidth * FrameHeight]uint32
	audio       *AudioFIFO
}

// NewRecovery constructs a Recovery with an audio FIFO of the given
// capacity (see NewAudioFIFO) and the stock tight-blanking timing.
func NewRecovery(audioFIFOSize int) *Recovery {
	return &Recovery{
		HSyncResetX: -44,
		VSyncResetY: -36,
		Source:      AudioSourceXout,
		audio:       NewAudioFIFO(audioFIFOSize),
	}
}

// Framebuffer returns the recovered frame as ARGB8888 pixels, row-major,
// FrameWidth*FrameHeight entries. The backing array is reused across
// frames; callers that need a stable snapshot should copy it out before
// the next Advance.
func (r *Recovery) Framebuffer() []uint32 {
	return r.framebuffer[:]
}

// Audio returns the FIFO that /HSYNC samples are pushed into and that the
// host's audio callback should drain.
func (r *Recovery) Audio() *AudioFIFO {
	return r.audio
}

// Advance processes the sync edges produced by the CPU's most recent
// Step call. It must be invoked once per Step, immediately after it
// returns, so that cpu.Out/cpu.PrevOut still reflect that single cycle.
// It reports whether a full frame just became ready for presentation; the
// core itself never paces or blocks on that signal, matching the
// non-suspending execution model shared with Step.
func (r *Recovery) Advance(cpu *CPU) (frameReady bool) {
	out := cpu.Out
	diff := out ^ cpu.PrevOut

	if r.VX >= 0 && r.VX < FrameWidth && r.VY >= 0 && r.VY < FrameHeight {
		color := (uint32(out&0x03) << 22) | (uint32(out&0x0C) << 12) | (uint32(out&0x30) << 2)
		row := r.VY * FrameWidth
		r.framebuffer[row+r.VX] = color
		r.framebuffer[row+r.VX+1] = color
		r.framebuffer[row+r.VX+2] = color
		r.framebuffer[row+r.VX+3] = color
	}
	r.VX += 4

	if diff&0x80 != 0 && out&0x80 == 0 { // /VSYNC falling
		r.VY = r.VSyncResetY
	}

	if diff&0x40 != 0 && out&0x40 != 0 { // /HSYNC rising
		r.VX = r.HSyncResetX
		r.VY++
		switch r.Source {
		case AudioSourceXout:
			r.audio.Push(cpu.Xout & 0xF0)
		case AudioSourceAcc:
			r.audio.Push(cpu.Acc)
		}
	}

	return diff&0x80 != 0 && out&0x80 != 0 // /VSYNC rising
}
