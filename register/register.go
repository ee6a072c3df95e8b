// Package register defines the 65xx register file: the accumulator, index
// registers, stack pointer, program counter and packed status byte, along
// with the typed accessors the instruction dispatcher uses to read and
// mutate them.
package register

// Status bit layout, high to low: N V 1 B D I Z C.
const (
	Negative  = uint8(0x80)
	Overflow  = uint8(0x40)
	S1        = uint8(0x20) // Always 1.
	Break     = uint8(0x10) // Only meaningful in the byte pushed by BRK/PHP.
	Decimal   = uint8(0x08)
	Interrupt = uint8(0x04)
	Zero      = uint8(0x02)
	Carry     = uint8(0x01)
)

// File is the complete 65xx register state: PC, S, A, X, Y and the packed
// status byte P. It has no knowledge of memory or the decode table; it's
// pure storage plus flag bookkeeping.
type File struct {
	PC uint16
	S  uint8
	A  uint8
	X  uint8
	Y  uint8
	P  uint8
}

// ColdReset sets A=X=Y=0, P=0b0010_0100 (interrupt disable + the hardwired
// bit 5), S=0xFF, and loads PC from the little-endian vector read via rd.
func (f *File) ColdReset(rd func(uint16) uint8) {
	f.A, f.X, f.Y = 0, 0, 0
	f.S = 0xFF
	f.P = 0
	f.SetP(S1 | Interrupt)
	f.PC = vector(rd, ResetVector)
}

// WarmReset preserves A, X, Y and S, sets the interrupt-disable flag, and
// reloads PC from the reset vector.
func (f *File) WarmReset(rd func(uint16) uint8) {
	f.SetP(f.P | Interrupt)
	f.PC = vector(rd, ResetVector)
}

// Vector addresses with documented meaning at image-load/reset/BRK time.
const (
	ResetVector = uint16(0xFFFC)
	IRQVector   = uint16(0xFFFE)
)

func vector(rd func(uint16) uint8, addr uint16) uint16 {
	lo := rd(addr)
	hi := rd(addr + 1)
	return uint16(hi)<<8 | uint16(lo)
}

// SetP writes the status register, forcing the hardwired bit 5 to 1. Every
// write to P must go through here so that invariant can never be violated.
func (f *File) SetP(v uint8) {
	f.P = v | S1
}

// Flag returns whether the given single-bit mask is currently set in P.
func (f *File) Flag(mask uint8) bool {
	return f.P&mask != 0
}

// SetFlag sets or clears the given single-bit mask in P.
func (f *File) SetFlag(mask uint8, v bool) {
	if v {
		f.P |= mask
	} else {
		f.P &^= mask
	}
	f.P |= S1
}

// SetNZFrom sets Z iff b == 0 and N iff b has its high bit set, leaving
// every other flag untouched.
func (f *File) SetNZFrom(b uint8) {
	f.SetFlag(Zero, b == 0)
	f.SetFlag(Negative, b&Negative != 0)
}

// IncPC advances PC by one, wrapping modulo 65536 (implicit in uint16).
func (f *File) IncPC() {
	f.PC++
}

// PushS returns the stack address to write to and then decrements S,
// wrapping within the 0x0100-0x01FF page.
func (f *File) PushS() uint16 {
	addr := 0x0100 | uint16(f.S)
	f.S--
	return addr
}

// PullS increments S, wrapping within the stack page, and returns the
// address to read the pulled byte from.
func (f *File) PullS() uint16 {
	f.S++
	return 0x0100 | uint16(f.S)
}
