// main.go - Gigatron host: wires ROM, CPU, signal recovery, and the
// platform video/audio backends together.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"golang.org/x/sync/errgroup"

	"github.com/gigatron-emu/gigatron/gigatron"
)

const defaultROMPath = "../data/ROMv5a.rom"

// cyclesPerBurst bounds how long the emulation goroutine runs between
// checks of the quit signal, per the concurrency model's cancellation
// granularity (a burst is whichever of a cycle count or a frame comes
// first - here a frame always ends a burst early via frameReady).
const cyclesPerBurst = 1_000_000

func main() {
	romPath := flag.String("rom", defaultROMPath, "path to a Gigatron ROM image")
	ramSize := flag.Int("ram", gigatron.MaxRAMSize, "RAM size in bytes (32768 or 65536)")
	audioSource := flag.String("audio-source", "xout", "per-/HSYNC audio sample source: xout or acc")
	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: gigatron [-rom path] [-ram size] [-audio-source xout|acc] [rom-path]\n\nOptions:\n")
		flag.PrintDefaults()
	}
	flag.Parse()

	path := *romPath
	if flag.NArg() == 1 {
		path = flag.Arg(0)
	}

	if err := run(path, *ramSize, *audioSource); err != nil {
		fmt.Fprintf(os.Stderr, "gigatron: %v\n", err)
		os.Exit(1)
	}
}

func run(romPath string, ramSize int, audioSource string) error {
	rom, err := loadROMFile(romPath)
	if err != nil {
		return err
	}

	cpu := gigatron.New(rom, ramSize)
	rec := gigatron.NewRecovery(gigatron.MinAudioFIFOSize * 4)
	switch audioSource {
	case "xout":
		rec.Source = gigatron.AudioSourceXout
	case "acc":
		rec.Source = gigatron.AudioSourceAcc
	default:
		return fmt.Errorf("unknown -audio-source %q (want xout or acc)", audioSource)
	}

	video, err := NewVideoOutput()
	if err != nil {
		return fmt.Errorf("initializing video: %w", err)
	}
	audio, err := NewAudioOutput(rec.Audio())
	if err != nil {
		return fmt.Errorf("initializing audio: %w", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error { return video.Start() })
	g.Go(func() error { return audio.Start() })
	g.Go(func() error {
		defer cancel()
		return runEmulation(ctx, cpu, rec, video)
	})

	err = g.Wait()
	video.Stop()
	audio.Stop()
	return err
}

// runEmulation drives the CPU/recovery loop until ctx is cancelled or the
// video backend reports the user wants to quit.
func runEmulation(ctx context.Context, cpu *gigatron.CPU, rec *gigatron.Recovery, video VideoOutput) error {
	for {
		select {
		case <-ctx.Done():
			return nil
		default:
		}
		if video.Quit() {
			return nil
		}

		for i := 0; i < cyclesPerBurst; i++ {
			cpu.Step()
			if rec.Advance(cpu) {
				video.Present(rec.Framebuffer())
				cpu.LiveIn = video.PollInput()
				break
			}
		}
	}
}
