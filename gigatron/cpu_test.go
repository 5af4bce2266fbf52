package gigatron

import "testing"

// mkWord assembles a ROM word from its opcode and immediate bytes, matching
// the documented layout (low byte = opcode, high byte = immediate).
func mkWord(opc, d byte) uint16 {
	return uint16(d)<<8 | uint16(opc)
}

func newTestCPU(words ...uint16) *CPU {
	rom := &ROM{}
	for i, w := range words {
		rom.words[i] = w
	}
	return New(rom, 65536)
}

func TestResetState(t *testing.T) {
	c := newTestCPU()
	if c.PC != 0 || c.IR != 0x02 || c.D != 0 || c.Acc != 0 || c.Cycles != 0 {
		t.Fatalf("unexpected reset state: %+v", c)
	}
	for i := 0; i < c.RAM().Size(); i++ {
		if c.RAM().Read(uint16(i)) != 0 {
			t.Fatalf("cold reset left RAM[%d] nonzero", i)
		}
	}
}

func TestResetIdempotence(t *testing.T) {
	c := newTestCPU(mkWord(0x02, 0xAB), mkWord(0x40, 0x01))
	c.RAM().Write(0, 0xFF)
	for i := 0; i < 5; i++ {
		c.Step()
	}
	c.Reset(true)
	fresh := newTestCPU(mkWord(0x02, 0xAB), mkWord(0x40, 0x01))

	if c.PC != fresh.PC || c.PrevPC != fresh.PrevPC || c.IR != fresh.IR ||
		c.D != fresh.D || c.Acc != fresh.Acc || c.X != fresh.X || c.Y != fresh.Y ||
		c.Out != fresh.Out || c.PrevOut != fresh.PrevOut || c.Xout != fresh.Xout ||
		c.In != fresh.In || c.Cycles != fresh.Cycles {
		t.Fatalf("reset(true) after steps diverged from a fresh reset: %+v vs %+v", c, fresh)
	}
	if c.RAM().Read(0) != 0 {
		t.Fatalf("cold reset did not clear RAM")
	}
}

// Scenario 1: effective NOP at power-on.
func TestEffectiveNOPAtPowerOn(t *testing.T) {
	c := newTestCPU(mkWord(0x12, 0x34))
	c.Step()
	if c.PC != 1 {
		t.Errorf("PC = %d, want 1", c.PC)
	}
	if c.PrevPC != 0 {
		t.Errorf("PrevPC = %d, want 0", c.PrevPC)
	}
	if c.IR != 0x12 || c.D != 0x34 {
		t.Errorf("IR/D = %02X/%02X, want 12/34", c.IR, c.D)
	}
	if c.Acc != 0 {
		t.Errorf("Acc = %d, want 0", c.Acc)
	}
	if c.Cycles != 1 {
		t.Errorf("Cycles = %d, want 1", c.Cycles)
	}
}

// Scenario 2: far jump via Y.
func TestFarJumpViaY(t *testing.T) {
	opc := byte(0xE0) // ins=7 (jump), mod=0, bus=0
	d := byte(0xFE)
	c := newTestCPU(mkWord(opc, d))
	c.Y = 0x12

	c.Step() // installs the jump opcode into IR/D
	if c.IR != opc || c.D != d {
		t.Fatalf("after first step IR/D = %02X/%02X, want %02X/%02X", c.IR, c.D, opc, d)
	}

	c.Step() // commits the far jump
	if c.PC != 0x12FE {
		t.Fatalf("PC = %04X, want 12FE", c.PC)
	}
}

// Scenario 3: conditional branch taken on zero.
func TestConditionalBranchOnZero(t *testing.T) {
	opc := byte((7 << 5) | (4 << 2) | 0) // ins=7(jump) mod=4(beq) bus=0
	d := byte(0x10)

	t.Run("taken", func(t *testing.T) {
		c := newTestCPU(mkWord(opc, d))
		c.Acc = 0
		c.Step() // install
		oldPC := c.PC
		c.Step() // execute
		want := (oldPC & 0xFF00) | uint16(d)
		if c.PC != want {
			t.Fatalf("PC = %04X, want %04X", c.PC, want)
		}
	})

	t.Run("not taken", func(t *testing.T) {
		c := newTestCPU(mkWord(opc, d))
		c.Acc = 1
		c.Step()
		oldPC := c.PC
		c.Step()
		if c.PC != oldPC+1 {
			t.Fatalf("PC = %04X, want %04X", c.PC, oldPC+1)
		}
	})
}

// Scenario 4: store with bus-from-acc.
func TestStoreBusFromAcc(t *testing.T) {
	opc := byte((6 << 5) | (0 << 2) | 2) // ins=6(st) mod=0 bus=2(acc)
	d := byte(0x20)
	c := newTestCPU(mkWord(opc, d))
	c.Acc = 0xAA

	c.Step() // install
	c.Step() // execute the store

	if got := c.RAM().Read(0x20); got != 0xAA {
		t.Errorf("RAM[0x20] = %02X, want AA", got)
	}
	if c.Acc != 0xAA {
		t.Errorf("Acc = %02X, want unchanged AA", c.Acc)
	}
}

// Scenario 5: X auto-increment.
func TestXAutoIncrement(t *testing.T) {
	opc := byte((0 << 5) | (7 << 2) | 1) // ins=0(ld) mod=7([y,x++]->out) bus=1(mem)
	c := newTestCPU(mkWord(opc, 0))
	c.X, c.Y = 0x05, 0x01
	c.RAM().Write(0x0105, 0x77)

	c.Step() // install
	c.Step() // execute

	if c.Out != 0x77 {
		t.Errorf("Out = %02X, want 77", c.Out)
	}
	if c.X != 0x06 {
		t.Errorf("X = %02X, want 06", c.X)
	}
}

// Scenario 6: /HSYNC latch of xout.
func TestHSYNCLatchesXout(t *testing.T) {
	// First instruction: ld out, $00 (out=0, acc stays as set below).
	// Second instruction: ld out, $40 (raises HSYNC).
	i0 := byte((0 << 5) | (6 << 2) | 0) // ins=0(ld) mod=6(->out) bus=0(imm)
	c := newTestCPU(mkWord(i0, 0x00), mkWord(i0, 0x40))
	c.Acc = 0x55
	c.LiveIn = 0x99

	c.Step() // install first instruction (out<-$00)
	c.Step() // execute it: out becomes 0x00; installs second instruction
	if c.Out != 0x00 {
		t.Fatalf("Out = %02X after first exec, want 00", c.Out)
	}
	c.Step() // execute second instruction: out becomes 0x40 at the end of this cycle
	if c.Out != 0x40 {
		t.Fatalf("Out = %02X, want 40", c.Out)
	}
	c.Step() // the rising edge is seen at the start of this cycle: Xout/In latch
	if c.Xout != 0x55 {
		t.Errorf("Xout = %02X, want 55", c.Xout)
	}
	if c.In != 0x99 {
		t.Errorf("In = %02X, want 99", c.In)
	}
}

func TestWriteOutOfBoundsDropped(t *testing.T) {
	c := newTestCPU()
	ram := NewRAM(4096)
	c.ram = ram
	ram.Write(4000, 0xFF) // within allocated small ram, sanity check path below
	if ram.Read(4000) != 0xFF {
		t.Fatalf("in-bounds write lost")
	}
	ram.Write(4096, 0x11) // exactly at size: out of bounds
	if ram.Read(4096) != 0 {
		t.Errorf("out-of-bounds write was not dropped")
	}
}

func TestCyclesMonotonic(t *testing.T) {
	c := newTestCPU(mkWord(0x02, 0), mkWord(0x02, 0), mkWord(0x02, 0))
	prev := c.Cycles
	for i := 0; i < 10; i++ {
		c.Step()
		if c.Cycles <= prev {
			t.Fatalf("cycles not monotonic: %d -> %d", prev, c.Cycles)
		}
		prev = c.Cycles
	}
}

func TestPrevPCInvariant(t *testing.T) {
	c := newTestCPU(mkWord(0x02, 0), mkWord(0x02, 0), mkWord(0x02, 0))
	for i := 0; i < 5; i++ {
		before := c.PC
		c.Step()
		if c.PrevPC != before {
			t.Fatalf("PrevPC = %d, want pre-step PC %d", c.PrevPC, before)
		}
		word := c.rom.Word(c.PrevPC)
		if c.IR != byte(word) || c.D != byte(word>>8) {
			t.Fatalf("IR/D = %02X/%02X, want ROM[prev_pc] split %02X/%02X", c.IR, c.D, byte(word), byte(word>>8))
		}
	}
}

func TestEnableUndefinedReads(t *testing.T) {
	c := New(&ROM{}, MinRAMSize)
	c.EnableUndefinedReads(42)
	// The seeded byte is deterministic for a fixed seed: two CPUs seeded
	// alike must read the same byte past the configured RAM size.
	b1 := c.RAM().Read(uint16(MinRAMSize))
	c2 := New(&ROM{}, MinRAMSize)
	c2.EnableUndefinedReads(42)
	b2 := c2.RAM().Read(uint16(MinRAMSize))
	if b1 != b2 {
		t.Errorf("same seed produced different undef bytes: %d vs %d", b1, b2)
	}
}
