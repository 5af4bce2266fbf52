// disassembler.go - Textual rendering of one decoded instruction.
//
// Ported from disassemble_gigatron/print_address/print_bus: those exist
// because C has to track a shrinking buffer across a chain of snprintf
// calls. A Go string builder needs none of that bookkeeping, so the three
// C helpers collapse into the two small functions below plus Disassemble
// itself.
package gigatron

import (
	"fmt"
	"strings"
)

var insName = [...]string{"ld", "anda", "ora", "xora", "adda", "suba", "st"}

var branchName = [...]string{"jmp", "bgt", "blt", "bne", "beq", "bge", "ble", "bra"}

// addressOperand renders the effective-address operand for mod, e.g. for a
// store's destination or a far jump's implicit target.
func addressOperand(mod Mode, d byte) string {
	switch mod {
	case ModXZeroAcc:
		return "[x]"
	case ModDYAcc:
		return fmt.Sprintf("[y,$%02X]", d)
	case ModXYAcc:
		return "[y,x]"
	case ModXYOutIncX:
		return "[y,x++]"
	default: // 0, 4, 5, 6
		return fmt.Sprintf("[$%02X]", d)
	}
}

// busOperand renders the operand naming the bus source selected by bus.
// isWrite gates bus==1: a store reading its own target address back would
// be nonsensical (RAM cannot read and write at once), so that form prints
// "??" exactly as the original disassembler does.
func busOperand(bus Bus, mod Mode, d byte, isWrite bool) string {
	switch bus {
	case BusImmediate:
		return fmt.Sprintf("$%02X", d)
	case BusMemory:
		if isWrite {
			return "??"
		}
		return addressOperand(mod, d)
	case BusAcc:
		return "acc"
	case BusIn:
		return "in"
	default:
		return ""
	}
}

// Disassemble renders the instruction formed by (opc, d) fetched at pc, as
// "PPPP: OO DD    MNEMONIC OPERANDS".
func Disassemble(pc uint16, opc, d byte) string {
	dec := Decode(opc, d)

	var b strings.Builder
	fmt.Fprintf(&b, "%04X: %02X %02X    ", pc, opc, d)

	if !dec.IsJump {
		fmt.Fprintf(&b, "%-6s ", insName[dec.Ins])
		b.WriteString(busOperand(dec.Bus, dec.Mod, d, dec.IsWrite))
		if dec.IsWrite {
			b.WriteString(", ")
			b.WriteString(addressOperand(dec.Mod, d))
		}
		switch dec.Mod {
		case ModDZeroX:
			b.WriteString(", x")
		case ModDZeroY:
			b.WriteString(", y")
		case ModDZeroOut, ModXYOutIncX:
			b.WriteString(", out")
		}
		return b.String()
	}

	fmt.Fprintf(&b, "%-6s ", branchName[dec.Mod])
	if dec.Mod != 0 {
		b.WriteString(busOperand(dec.Bus, dec.Mod, d, false))
	} else {
		b.WriteString("y, ")
		b.WriteString(busOperand(dec.Bus, dec.Mod, d, false))
	}
	return b.String()
}
