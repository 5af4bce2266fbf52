package gigatron

import (
	"strings"
	"testing"
)

func TestDisassembleHeader(t *testing.T) {
	for opc := 0; opc <= 0xFF; opc += 17 {
		s := Disassemble(0x1234, byte(opc), 0xAB)
		if s == "" {
			t.Fatalf("opc=%#02x produced empty string", opc)
		}
		want := "1234: " + hexByte(byte(opc)) + " AB"
		if !strings.HasPrefix(s, want) {
			t.Errorf("Disassemble(0x1234, %#02x, 0xAB) = %q, want prefix %q", opc, s, want)
		}
	}
}

func hexByte(b byte) string {
	const digits = "0123456789ABCDEF"
	return string([]byte{digits[b>>4], digits[b&0xF]})
}

func TestDisassembleKnownForms(t *testing.T) {
	cases := []struct {
		name string
		opc  byte
		d    byte
		want string
	}{
		{"ld acc, $AB", byte((0 << 5) | (0 << 2) | 0), 0xAB, "ld     $AB"},
		{"ld acc, acc (NOP)", 0x02, 0x00, "ld     acc"},
		{"st [$20], acc", byte((6 << 5) | (0 << 2) | 2), 0x20, "st     acc, [$20]"},
		{"ld out, [y,x++]  x++", byte((0 << 5) | (7 << 2) | 1), 0x00, "ld     [y,x++], out"},
		{"far jump", byte((7 << 5) | (0 << 2) | 0), 0xFE, "jmp    y, $FE"},
		{"beq", byte((7 << 5) | (4 << 2) | 0), 0x10, "beq    $10"},
		{"store bus=1 is ??", byte((6 << 5) | (0 << 2) | 1), 0x20, "st     ??, [$20]"},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			s := Disassemble(0, c.opc, c.d)
			if !strings.Contains(s, c.want) {
				t.Errorf("Disassemble(_, %#02x, %#02x) = %q, want substring %q", c.opc, c.d, s, c.want)
			}
		})
	}
}

func TestDisassembleExhaustiveNonEmpty(t *testing.T) {
	for opc := 0; opc <= 0xFF; opc++ {
		for _, d := range []byte{0x00, 0x7F, 0xFF} {
			s := Disassemble(uint16(opc), byte(opc), d)
			if len(s) < len("PPPP: OO DD") {
				t.Fatalf("opc=%#02x d=%#02x produced too-short string %q", opc, d, s)
			}
		}
	}
}
