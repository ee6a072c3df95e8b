// Package alu implements the pure arithmetic and logic primitives of the
// 65xx ALU: binary/BCD add and subtract, the bitwise ops, shifts and the
// increment/decrement helpers. Every function is side-effect free and
// returns a Result bundling the computed byte with every flag it might
// influence; the caller (the instruction dispatcher) decides which of
// those flags to actually commit to the status register.
//
// Rotate is deliberately absent here: ROL/ROR are composed in the
// instruction layer from ShiftLeft/ShiftRight plus carry-bit injection, so
// the shift primitives' carry-out semantics stay unambiguous.
package alu

// Result is the full set of outputs an ALU operation can produce. Not every
// field is meaningful for every operation (e.g. And/Or/Xor never touch V or
// C); see each function's doc comment for which fields it sets.
type Result struct {
	Value uint8
	N     bool
	V     bool
	Z     bool
	C     bool
}

func nz(v uint8) (n, z bool) {
	return v&0x80 != 0, v == 0
}

// Add computes a + b + carryIn. In binary mode the result is the low 8 bits
// of the sum, C is the 9th bit and V is the standard signed-overflow rule.
// In decimal mode the operands are treated as packed BCD digits: C is set
// when the mathematical sum exceeds 0x99, V uses the 65C02/65816 rule (sign
// of the high nibble after low-nibble carry propagation, before the final
// >=0xA0 correction) and N/Z are taken from the final corrected BCD byte
// (the 65C02/65816 behaviour; an NMOS 6502 would take them from the
// uncorrected binary sum instead). Invalid BCD nibbles (>9) are tolerated and simply produce whatever
// byte the correction algorithm yields.
func Add(a, b uint8, carryIn, decimal bool) Result {
	var cin uint8
	if carryIn {
		cin = 1
	}
	if !decimal {
		sum16 := uint16(a) + uint16(b) + uint16(cin)
		sum := uint8(sum16)
		n, z := nz(sum)
		return Result{
			Value: sum,
			N:     n,
			Z:     z,
			C:     sum16 >= 0x100,
			V:     ((a ^ sum) & (b ^ sum) & 0x80) != 0,
		}
	}

	// BCD add. Reference: http://6502.org/tutorials/decimal_mode.html Appendix A, Seq.1/Seq.2.
	al := (a & 0x0F) + (b & 0x0F) + cin
	if al >= 0x0A {
		al = ((al + 0x06) & 0x0F) + 0x10
	}
	seq := uint16(a&0xF0) + uint16(b&0xF0) + uint16(al)
	res16 := seq
	if res16 >= 0xA0 {
		res16 += 0x60
	}
	res := uint8(res16)
	n, z := nz(res)
	return Result{
		Value: res,
		N:     n,
		Z:     z,
		C:     res16 >= 0x100,
		V:     ((a ^ uint8(seq)) & (b ^ uint8(seq)) & 0x80) != 0,
	}
}

// Subtract computes a - b - (carryIn ? 0 : 1) as two's-complement
// subtraction. C is set iff no borrow occurred; V is the binary
// signed-overflow rule regardless of decimal mode (this matches the real
// chip: decimal SBC derives every flag from the binary result). In decimal
// mode Value is the BCD tens-complement result but N, Z, C and V are all
// still taken from the binary computation.
func Subtract(a, b uint8, carryIn, decimal bool) Result {
	var cin uint8
	if carryIn {
		cin = 1
	}
	nb := ^b
	sum16 := uint16(a) + uint16(nb) + uint16(cin)
	bin := uint8(sum16)
	n, z := nz(bin)
	res := Result{
		Value: bin,
		N:     n,
		Z:     z,
		C:     sum16 >= 0x100,
		V:     ((a ^ bin) & (nb ^ bin) & 0x80) != 0,
	}
	if !decimal {
		return res
	}

	// BCD subtract. Reference: http://6502.org/tutorials/decimal_mode.html Appendix A, Seq.3.
	al := int16(a&0x0F) - int16(b&0x0F) - 1 + int16(cin)
	if al < 0 {
		al = ((al - 0x06) & 0x0F) - 0x10
	}
	sum := int16(a&0xF0) - int16(b&0xF0) + al
	if sum < 0 {
		sum -= 0x60
	}
	res.Value = uint8(sum)
	return res
}

// And, Or and Xor are plain bitwise ops; only N and Z are meaningful in the
// returned Result.
func And(a, b uint8) Result { return bitwise(a & b) }
func Or(a, b uint8) Result  { return bitwise(a | b) }
func Xor(a, b uint8) Result { return bitwise(a ^ b) }

func bitwise(v uint8) Result {
	n, z := nz(v)
	return Result{Value: v, N: n, Z: z}
}

// ShiftLeft computes a << 1. C is bit 7 of the input; N and Z reflect the
// output byte.
func ShiftLeft(a uint8) Result {
	v := a << 1
	n, z := nz(v)
	return Result{Value: v, N: n, Z: z, C: a&0x80 != 0}
}

// ShiftRight computes a >> 1. C is bit 0 of the input; N and Z reflect the
// output byte (N is always false since bit 7 of the result is always 0).
func ShiftRight(a uint8) Result {
	v := a >> 1
	n, z := nz(v)
	return Result{Value: v, N: n, Z: z, C: a&0x01 != 0}
}

// Increment and Decrement compute a+1 and a-1 modulo 256. Only N and Z are
// meaningful.
func Increment(a uint8) Result { return bitwise(a + 1) }
func Decrement(a uint8) Result { return bitwise(a - 1) }
