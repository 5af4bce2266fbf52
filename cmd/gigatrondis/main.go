// main.go - Standalone Gigatron ROM disassembler.
//
// Reuses gigatron.Decode and gigatron.Disassemble exactly as the emulator
// does, independent of any host loop - proof that the disassembler and the
// interpreter genuinely share one decoder rather than duplicating it.
package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/gigatron-emu/gigatron/gigatron"
)

func main() {
	start := flag.Int("start", 0, "first address to disassemble")
	count := flag.Int("count", 64, "number of instructions to disassemble")
	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: gigatrondis [-start addr] [-count n] <rom-path>\n\nOptions:\n")
		flag.PrintDefaults()
	}
	flag.Parse()

	if flag.NArg() != 1 {
		flag.Usage()
		os.Exit(1)
	}

	f, err := os.Open(flag.Arg(0))
	if err != nil {
		fmt.Fprintf(os.Stderr, "gigatrondis: %v\n", err)
		os.Exit(1)
	}
	defer f.Close()

	rom, err := gigatron.LoadROM(f)
	if rom == nil {
		fmt.Fprintf(os.Stderr, "gigatrondis: %v\n", err)
		os.Exit(1)
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "warning: %v\n", err)
	}

	for i := 0; i < *count; i++ {
		addr := uint16(*start + i)
		fmt.Println(gigatron.Disassemble(addr, rom.Opcode(addr), rom.Immediate(addr)))
	}
}
