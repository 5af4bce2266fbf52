// rom.go - Host-side ROM file loading.
//
// Byte-format parsing lives in gigatron.LoadROM since it's pure data
// transformation; this file only owns opening the file, the one part of
// loading that is genuinely host I/O.
package main

import (
	"fmt"
	"os"

	"github.com/gigatron-emu/gigatron/gigatron"
)

// loadROMFile opens path and parses it as a Gigatron ROM image. A file of
// the wrong size is still loaded (truncated or zero-padded) and the
// resulting *ErrInvalidROMSize is reported as a warning, not returned as a
// failure - only an unopenable file is fatal.
func loadROMFile(path string) (*gigatron.ROM, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening rom %q: %w", path, err)
	}
	defer f.Close()

	rom, err := gigatron.LoadROM(f)
	if rom == nil {
		return nil, fmt.Errorf("loading rom %q: %w", path, err)
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "warning: %v\n", err)
	}
	return rom, nil
}
