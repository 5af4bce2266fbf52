// decoder.go - Instruction field decoder shared by the CPU interpreter and
// the disassembler.
//
// The Gigatron opcode byte has no microcode: every bit pattern is legal and
// every cycle executes exactly one instruction. The three fields below are
// read out once per instruction and the same Decoded value feeds both the
// interpreter's Step() and the disassembler's Disassemble().
package gigatron

// Op identifies the ALU/branch operation selected by the top three bits of
// the opcode byte (the "ins" field).
type Op uint8

const (
	OpLoad   Op = iota // ld    - alu = b
	OpAnd              // anda  - alu = acc & b
	OpOr               // ora   - alu = acc | b
	OpXor              // xora  - alu = acc ^ b
	OpAdd              // adda  - alu = acc + b
	OpSub              // suba  - alu = acc - b
	OpStore            // st    - memory write of b, not a register write
	OpJump             // branch/jump - ALU path unused
)

// Bus identifies the source of the 8-bit value b read onto the internal bus.
type Bus uint8

const (
	BusImmediate Bus = iota // d
	BusMemory               // RAM[addr] on read; "d routed onto bus" on write
	BusAcc                  // acc
	BusIn                   // in
)

// Mode identifies the addressing mode / branch condition selector (the "mod"
// field). For non-jump instructions it picks the effective address and
// destination register; for jumps it picks the branch condition mask (or,
// for mod==0, the far-jump form).
type Mode uint8

const (
	ModDZeroAcc  Mode = 0 // [$dd]     -> acc        | jmp: far jump (y,b)
	ModXZeroAcc  Mode = 1 // [x]       -> acc        | jmp: bgt
	ModDYAcc     Mode = 2 // [y,$dd]   -> acc        | jmp: blt
	ModXYAcc     Mode = 3 // [y,x]     -> acc        | jmp: bne
	ModDZeroX    Mode = 4 // [$dd]     -> x          | jmp: beq
	ModDZeroY    Mode = 5 // [$dd]     -> y          | jmp: bge
	ModDZeroOut  Mode = 6 // [$dd]     -> out        | jmp: ble
	ModXYOutIncX Mode = 7 // [y,x++]   -> out, x++   | jmp: bra
)

// Decoded is the tagged-record view of one opcode/data byte pair: a flat
// alternative to the three-level nested switch of the original C decoder.
type Decoded struct {
	Ins     Op
	Mod     Mode
	Bus     Bus
	IsWrite bool // ins == OpStore
	IsJump  bool // ins == OpJump
}

// Decode extracts the ins/mod/bus fields from an opcode byte. d is the data
// byte paired with the opcode; it is carried through unused by Decode itself
// but accepted for symmetry with Disassemble, which needs it to render
// immediates.
func Decode(opc, _ byte) Decoded {
	ins := Op((opc >> 5) & 0x07)
	return Decoded{
		Ins:     ins,
		Mod:     Mode((opc >> 2) & 0x07),
		Bus:     Bus(opc & 0x03),
		IsWrite: ins == OpStore,
		IsJump:  ins == OpJump,
	}
}

// branchTaken reports whether the branch condition selected by mod holds for
// the given accumulator value. mod is treated as a 3-bit mask indexed by the
// condition code cc = positive(0) / negative(1) / zero(2).
func branchTaken(mod Mode, acc byte) bool {
	cc := 0
	if acc&0x80 != 0 {
		cc = 1
	} else if acc == 0 {
		cc = 2
	}
	return mod&(1<<uint(cc)) != 0
}
