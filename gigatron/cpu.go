// cpu.go - Cycle-accurate Gigatron TTL CPU interpreter.
//
// The Gigatron has no microcode: each call to Step advances the machine by
// exactly one clock and every opcode pattern is defined (there is no illegal
// instruction trap). Step is a pure mutation of CPU plus at most one RAM
// read and one RAM write - no locks, no I/O, no allocation, matching the
// single-threaded, non-suspending execution model the host is expected to
// drive from its own loop.
package gigatron

import "math/rand"

// destReg names the register (if any) that receives the ALU result this
// cycle. Stores and jumps never target a register - the byte goes to memory
// or nowhere.
type destReg int

const (
	destNone destReg = iota
	destAcc
	destX
	destY
	destOut
)

// CPU holds all architectural state of one Gigatron machine. Every field is
// readable by the host; only Step and Reset mutate them.
type CPU struct {
	// Registers, in the order the real machine's pipeline refers to them.
	PC      uint16 // next ROM fetch address
	PrevPC  uint16 // PC before the last Step: the address IR/D were fetched from (for disassembly)
	IR      byte   // opcode fetched from ROM[PrevPC]; the next Step executes it
	D       byte   // immediate/data byte paired with IR
	Acc     byte
	X       byte
	Y       byte
	Out     byte // output port: bit7=/VSYNC bit6=/HSYNC bits5:0=RGB+audio
	PrevOut byte // Out at the start of the previous cycle, for edge detection
	Xout    byte // extended output, latched from Acc on /HSYNC rising edge
	In      byte // latched input, sampled from LiveIn on /HSYNC rising edge
	LiveIn  byte // input port value the host is currently driving

	Cycles uint64 // monotonically increasing cycle counter

	rom *ROM
	ram *RAM
}

// New creates a CPU wired to rom and a freshly allocated RAM of ramSize
// bytes (rounded to the supported bounds - see NewRAM), then resets it to
// the power-on state with RAM zeroed.
func New(rom *ROM, ramSize int) *CPU {
	c := &CPU{rom: rom, ram: NewRAM(ramSize)}
	c.Reset(true)
	return c
}

// RAM exposes the CPU's data memory, e.g. for host-side peeking/poking or to
// reconfigure the undefined-read byte.
func (c *CPU) RAM() *RAM { return c.ram }

// ROM exposes the CPU's program memory.
func (c *CPU) ROM() *ROM { return c.rom }

// Reset restores the power-on state: PC=0, IR/D hold the effective NOP
// (ld acc,acc), every other register zeroed, cycle count zeroed. When
// zeroRAM is true (a "cold" reset) RAM is cleared too; a "warm" reset
// leaves its contents untouched, matching gigatron_reset's zero_ram flag.
func (c *CPU) Reset(zeroRAM bool) {
	c.PC = 0
	c.PrevPC = 0
	c.IR = 0x02 // ld acc, acc - effective NOP
	c.D = 0x00
	c.Acc = 0
	c.X = 0
	c.Y = 0
	c.Out = 0
	c.PrevOut = 0
	c.Xout = 0
	c.In = 0
	c.Cycles = 0
	if zeroRAM {
		c.ram.Reset()
	}
}

// Step advances the machine by exactly one clock cycle. The sequencing
// below follows spec's fixed algorithmic order - several intermediate
// effects (the /HSYNC latch, the out-port writeback) are only observable to
// the host because of where they fall relative to each other within one
// call.
func (c *CPU) Step() {
	dec := Decode(c.IR, c.D)

	// 2. Effective address and destination register. Jumps never compute an
	// address from mod (mod there is the branch condition), so low/high/dest
	// keep their defaults (low=d, high=0, no destination) in that case, exactly like the
	// original interpreter's "if (!is_jump) switch(mod)" structure.
	low, high := c.D, byte(0)
	dest := destNone
	incX := false

	if !dec.IsJump {
		switch dec.Mod {
		case ModDZeroAcc:
			dest = pick(dec.IsWrite, destNone, destAcc)
		case ModXZeroAcc:
			low = c.X
			dest = pick(dec.IsWrite, destNone, destAcc)
		case ModDYAcc:
			high = c.Y
			dest = pick(dec.IsWrite, destNone, destAcc)
		case ModXYAcc:
			low, high = c.X, c.Y
			dest = pick(dec.IsWrite, destNone, destAcc)
		case ModDZeroX:
			dest = pick(dec.IsWrite, destNone, destX)
		case ModDZeroY:
			dest = pick(dec.IsWrite, destNone, destY)
		case ModDZeroOut:
			dest = pick(dec.IsWrite, destNone, destOut)
		case ModXYOutIncX:
			low, high = c.X, c.Y
			dest = pick(dec.IsWrite, destNone, destOut)
			incX = true
		}
	}
	addr := uint16(high)<<8 | uint16(low)

	// 3. Bus value b.
	var b byte
	switch dec.Bus {
	case BusImmediate:
		b = c.D
	case BusMemory:
		if dec.IsWrite {
			// Classic "write-bus" trick: RAM cannot read and write in the
			// same cycle, so on a store with bus==1 the data register is
			// routed onto the bus instead of a RAM read.
			b = c.D
		} else {
			b = c.ram.Read(addr)
		}
	case BusAcc:
		b = c.Acc
	case BusIn:
		b = c.In
	}

	// 4. ALU output.
	var alu byte
	switch dec.Ins {
	case OpLoad:
		alu = b
	case OpAnd:
		alu = c.Acc & b
	case OpOr:
		alu = c.Acc | b
	case OpXor:
		alu = c.Acc ^ b
	case OpAdd:
		alu = c.Acc + b
	case OpSub:
		alu = c.Acc - b
	case OpStore:
		alu = c.Acc
	case OpJump:
		// ALU path unused for branches; nothing commits it.
	}

	// 5. Fetch the next instruction using the *current* PC, before it is
	// advanced below - this mirrors the TTL machine's pipeline register.
	next := c.rom.Word(c.PC)
	nextIR, nextD := byte(next), byte(next>>8)

	// 6. Save PrevPC and update PC.
	c.PrevPC = c.PC
	switch {
	case !dec.IsJump:
		c.PC++
	case dec.Mod != 0: // conditional short jump, same page
		if branchTaken(dec.Mod, c.Acc) {
			c.PC = (c.PC & 0xFF00) | uint16(b)
		} else {
			c.PC++
		}
	default: // far jump
		c.PC = uint16(c.Y)<<8 | uint16(b)
	}

	// 7. Memory write.
	if dec.IsWrite {
		c.ram.Write(addr, b)
	}

	// 8. /HSYNC rising edge, tested against the out value from the start of
	// this cycle (Out/PrevOut have not been touched yet this Step call).
	if c.Out&0x40 != 0 && c.PrevOut&0x40 == 0 {
		c.Xout = c.Acc
		c.In = c.LiveIn
	}

	// 9. Publish this cycle's Out as next cycle's PrevOut, then commit
	// register writes - a write to Out here only affects the edge test on
	// the *following* Step call.
	c.PrevOut = c.Out
	switch dest {
	case destAcc:
		c.Acc = alu
	case destX:
		c.X = alu
	case destY:
		c.Y = alu
	case destOut:
		c.Out = alu
	}
	if incX {
		c.X++
	}

	// 10. Install the fetched instruction and advance the clock.
	c.IR, c.D = nextIR, nextD
	c.Cycles++
}

// EnableUndefinedReads seeds the RAM's out-of-bounds-read byte from seed,
// reproducing the original interpreter's `gs.undef = rand() & 0xFF`
// startup behaviour for test programs that intentionally probe undefined
// memory. Without calling this, out-of-range reads return 0.
func (c *CPU) EnableUndefinedReads(seed int64) {
	r := rand.New(rand.NewSource(seed))
	c.ram.SetUndefinedByte(byte(r.Intn(256)))
}

// Disassemble renders the instruction at PrevPC, whose opcode/data bytes
// are latched in IR/D and are executed by the next Step - exactly as
// gigatron_disasm bound the standalone disassembler to live CPU state.
func (c *CPU) Disassemble() string {
	return Disassemble(c.PrevPC, c.IR, c.D)
}

func pick(cond bool, ifTrue, ifFalse destReg) destReg {
	if cond {
		return ifTrue
	}
	return ifFalse
}
