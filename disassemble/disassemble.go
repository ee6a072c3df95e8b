// Package disassemble formats one instruction at a time from a memory bank
// into a fixed-width, tool-friendly disassembly line, using the same
// decode table the cpu package's dispatcher runs against (rather than a
// second, hand-maintained opcode switch).
package disassemble

import (
	"fmt"

	"github.com/coredump65/nmos6502/cpu"
	"github.com/coredump65/nmos6502/memory"
)

// Step disassembles the instruction at pc and returns the formatted line
// plus the number of bytes to advance PC to reach the next instruction.
// Illegal opcodes disassemble as "???" and advance by one byte so a
// disassembly dump of a whole image never gets stuck.
func Step(pc uint16, m memory.Bank) (string, int) {
	o := m.Read(pc)
	pc1 := m.Read(pc + 1)
	pc2 := m.Read(pc + 2)
	pc116 := uint16(int16(int8(pc1)))

	entry := cpu.OpcodeEntry(o)
	op := entry.Mnemonic.String()
	if entry.Mnemonic == cpu.IllegalMnemonic() {
		op = "???"
	}

	count := 1
	out := fmt.Sprintf("%.4X %.2X ", pc, o)
	switch entry.Mode {
	case cpu.Implied:
		out += fmt.Sprintf("        %s           ", op)
	case cpu.Accumulator:
		out += fmt.Sprintf("        %s A         ", op)
	case cpu.Immediate:
		out += fmt.Sprintf("%.2X      %s #%.2X       ", pc1, op, pc1)
		count = 2
	case cpu.ZeroPage:
		out += fmt.Sprintf("%.2X      %s %.2X        ", pc1, op, pc1)
		count = 2
	case cpu.ZeroPageX:
		out += fmt.Sprintf("%.2X      %s %.2X,X      ", pc1, op, pc1)
		count = 2
	case cpu.ZeroPageY:
		out += fmt.Sprintf("%.2X      %s %.2X,Y      ", pc1, op, pc1)
		count = 2
	case cpu.IndirectX:
		out += fmt.Sprintf("%.2X      %s (%.2X,X)    ", pc1, op, pc1)
		count = 2
	case cpu.IndirectY:
		out += fmt.Sprintf("%.2X      %s (%.2X),Y    ", pc1, op, pc1)
		count = 2
	case cpu.Absolute:
		out += fmt.Sprintf("%.2X %.2X   %s %.2X%.2X      ", pc1, pc2, op, pc2, pc1)
		count = 3
	case cpu.AbsoluteX:
		out += fmt.Sprintf("%.2X %.2X   %s %.2X%.2X,X    ", pc1, pc2, op, pc2, pc1)
		count = 3
	case cpu.AbsoluteY:
		out += fmt.Sprintf("%.2X %.2X   %s %.2X%.2X,Y    ", pc1, pc2, op, pc2, pc1)
		count = 3
	case cpu.Indirect:
		out += fmt.Sprintf("%.2X %.2X   %s (%.2X%.2X)    ", pc1, pc2, op, pc2, pc1)
		count = 3
	case cpu.Relative:
		out += fmt.Sprintf("%.2X      %s %.2X (%.4X) ", pc1, op, pc1, pc+pc116+2)
		count = 2
	default:
		out += fmt.Sprintf("        %s           ", op)
	}
	return out, count
}
