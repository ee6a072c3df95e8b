package cpu

import "github.com/coredump65/nmos6502/alu"

// rotateLeft and rotateRight compose ROL/ROR from the ALU's plain shift
// primitives plus carry-bit injection, per alu's package doc: rotate is not
// itself an ALU primitive since its carry-out is identical to the
// corresponding shift, but its carry-in has to land in the vacated bit
// before N/Z are recomputed.

func rotateLeft(v uint8, carryIn bool) alu.Result {
	r := alu.ShiftLeft(v)
	if carryIn {
		r.Value |= 0x01
	}
	r.N = r.Value&0x80 != 0
	r.Z = r.Value == 0
	return r
}

func rotateRight(v uint8, carryIn bool) alu.Result {
	r := alu.ShiftRight(v)
	if carryIn {
		r.Value |= 0x80
	}
	r.N = r.Value&0x80 != 0
	r.Z = r.Value == 0
	return r
}
