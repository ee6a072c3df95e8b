// Package cpu implements the 65xx instruction dispatcher: decode, addressing
// resolution, execution and cycle accounting for the 151 documented
// opcodes. Illegal opcodes are fatal; there is no undocumented-opcode
// emulation.
package cpu

import (
	"fmt"

	"github.com/coredump65/nmos6502/alu"
	"github.com/coredump65/nmos6502/memory"
	"github.com/coredump65/nmos6502/register"
)

// IllegalOpcode is returned by Step when the opcode byte at PC has no entry
// in the decode table. The chip is left exactly as it was before the fetch;
// callers should treat this as fatal to the instruction stream.
type IllegalOpcode struct {
	Opcode uint8
	PC     uint16
}

// Error implements the error interface.
func (e IllegalOpcode) Error() string {
	return fmt.Sprintf("illegal opcode %#02x at %#04x", e.Opcode, e.PC)
}

// StepOutcome classifies the result of a Step call beyond the error value
// itself, matching the Continue/Fatal split of spec.md's external
// interface.
type StepOutcome int

const (
	Continue StepOutcome = iota
	Fatal
)

// Chip is the complete emulated core: a register file plus a memory bank.
// It carries no notion of wall-clock time or host threading; Step is the
// only entry point and is not safe for concurrent use.
type Chip struct {
	Reg register.File
	Mem memory.Bank
}

// New returns a Chip wired to mem. The register file is zero-valued until
// ColdReset or WarmReset is called.
func New(mem memory.Bank) *Chip {
	return &Chip{Mem: mem}
}

// ColdReset sets the register file to its power-on state and loads PC from
// the reset vector.
func (c *Chip) ColdReset() {
	c.Reg.ColdReset(c.Mem.Read)
}

// WarmReset preserves A, X, Y and S, sets the interrupt-disable flag and
// reloads PC from the reset vector.
func (c *Chip) WarmReset() {
	c.Reg.WarmReset(c.Mem.Read)
}

// Step decodes and executes exactly one instruction at the current PC and
// returns the number of cycles it took. On an illegal opcode it returns
// (0, Fatal, IllegalOpcode{...}) and leaves PC pointing at the offending
// byte.
func (c *Chip) Step() (int, StepOutcome, error) {
	pc := c.Reg.PC
	op := c.Mem.Read(pc)
	entry := opcodeTable[op]
	if entry.Mnemonic == mNone {
		return 0, Fatal, IllegalOpcode{Opcode: op, PC: pc}
	}
	c.Reg.IncPC()

	cycles := c.execute(entry)
	return cycles, Continue, nil
}

// execute dispatches a decoded entry, performs the addressing resolution
// and register/memory side effects, and returns the instruction's total
// cycle cost including any page-cross penalty.
func (c *Chip) execute(entry Entry) int {
	switch entry.Mnemonic {
	case BCC, BCS, BEQ, BMI, BNE, BPL, BVC, BVS:
		return c.branch(entry)
	case BRK:
		return c.brk(entry)
	case JMP:
		ea := c.resolve(entry.Mode, false)
		c.Reg.PC = ea.Addr
		return entry.Cycles
	case JSR:
		ea := c.resolve(entry.Mode, false)
		ret := c.Reg.PC - 1
		c.pushWord(ret)
		c.Reg.PC = ea.Addr
		return entry.Cycles
	case RTS:
		ret := c.pullWord()
		c.Reg.PC = ret + 1
		return entry.Cycles
	case RTI:
		p := c.Mem.Read(c.Reg.PullS())
		c.Reg.SetP(p)
		c.Reg.SetFlag(register.Break, false)
		c.Reg.PC = c.pullWord()
		return entry.Cycles
	case PHA:
		c.Mem.Write(c.Reg.PushS(), c.Reg.A)
		return entry.Cycles
	case PHP:
		c.Mem.Write(c.Reg.PushS(), c.Reg.P|register.Break)
		return entry.Cycles
	case PLA:
		c.Reg.A = c.Mem.Read(c.Reg.PullS())
		c.Reg.SetNZFrom(c.Reg.A)
		return entry.Cycles
	case PLP:
		c.Reg.SetP(c.Mem.Read(c.Reg.PullS()))
		return entry.Cycles
	case CLC:
		c.Reg.SetFlag(register.Carry, false)
		return entry.Cycles
	case SEC:
		c.Reg.SetFlag(register.Carry, true)
		return entry.Cycles
	case CLD:
		c.Reg.SetFlag(register.Decimal, false)
		return entry.Cycles
	case SED:
		c.Reg.SetFlag(register.Decimal, true)
		return entry.Cycles
	case CLI:
		c.Reg.SetFlag(register.Interrupt, false)
		return entry.Cycles
	case SEI:
		c.Reg.SetFlag(register.Interrupt, true)
		return entry.Cycles
	case CLV:
		c.Reg.SetFlag(register.Overflow, false)
		return entry.Cycles
	case NOP:
		return entry.Cycles
	case TAX:
		c.Reg.X = c.Reg.A
		c.Reg.SetNZFrom(c.Reg.X)
		return entry.Cycles
	case TAY:
		c.Reg.Y = c.Reg.A
		c.Reg.SetNZFrom(c.Reg.Y)
		return entry.Cycles
	case TXA:
		c.Reg.A = c.Reg.X
		c.Reg.SetNZFrom(c.Reg.A)
		return entry.Cycles
	case TYA:
		c.Reg.A = c.Reg.Y
		c.Reg.SetNZFrom(c.Reg.A)
		return entry.Cycles
	case TSX:
		c.Reg.X = c.Reg.S
		c.Reg.SetNZFrom(c.Reg.X)
		return entry.Cycles
	case TXS:
		c.Reg.S = c.Reg.X
		return entry.Cycles
	case DEX:
		r := alu.Decrement(c.Reg.X)
		c.Reg.X = r.Value
		c.Reg.SetNZFrom(r.Value)
		return entry.Cycles
	case DEY:
		r := alu.Decrement(c.Reg.Y)
		c.Reg.Y = r.Value
		c.Reg.SetNZFrom(r.Value)
		return entry.Cycles
	case INX:
		r := alu.Increment(c.Reg.X)
		c.Reg.X = r.Value
		c.Reg.SetNZFrom(r.Value)
		return entry.Cycles
	case INY:
		r := alu.Increment(c.Reg.Y)
		c.Reg.Y = r.Value
		c.Reg.SetNZFrom(r.Value)
		return entry.Cycles

	case LDA, LDX, LDY:
		return c.load(entry)
	case STA, STX, STY:
		return c.store(entry)
	case ADC:
		return c.adc(entry)
	case SBC:
		return c.sbc(entry)
	case AND, ORA, EOR:
		return c.logic(entry)
	case CMP, CPX, CPY:
		return c.compare(entry)
	case BIT:
		return c.bit(entry)
	case ASL, LSR, ROL, ROR:
		return c.shiftRotate(entry)
	case INC, DEC:
		return c.incDec(entry)
	}
	return entry.Cycles
}

func (c *Chip) pageCrossCycles(entry Entry, ea EffectiveAddress) int {
	cycles := entry.Cycles
	if entry.pageCrossPenalty() && !ea.InBounds {
		cycles++
	}
	return cycles
}

func (c *Chip) pushWord(v uint16) {
	c.Mem.Write(c.Reg.PushS(), uint8(v>>8))
	c.Mem.Write(c.Reg.PushS(), uint8(v))
}

func (c *Chip) pullWord() uint16 {
	lo := c.Mem.Read(c.Reg.PullS())
	hi := c.Mem.Read(c.Reg.PullS())
	return uint16(hi)<<8 | uint16(lo)
}

func (c *Chip) branch(entry Entry) int {
	ea := c.resolve(Relative, false)
	taken := false
	switch entry.Mnemonic {
	case BCC:
		taken = !c.Reg.Flag(register.Carry)
	case BCS:
		taken = c.Reg.Flag(register.Carry)
	case BEQ:
		taken = c.Reg.Flag(register.Zero)
	case BMI:
		taken = c.Reg.Flag(register.Negative)
	case BNE:
		taken = !c.Reg.Flag(register.Zero)
	case BPL:
		taken = !c.Reg.Flag(register.Negative)
	case BVC:
		taken = !c.Reg.Flag(register.Overflow)
	case BVS:
		taken = c.Reg.Flag(register.Overflow)
	}
	cycles := entry.Cycles
	if taken {
		cycles++
		if !ea.InBounds {
			cycles++
		}
		c.Reg.PC = ea.Addr
	}
	return cycles
}

// brk pushes PC+2 (skipping BRK's padding signature byte), pushes P with
// the Break bit set, sets the interrupt-disable flag and loads PC from the
// IRQ/BRK vector.
func (c *Chip) brk(entry Entry) int {
	c.Reg.IncPC() // skip the signature byte
	c.pushWord(c.Reg.PC)
	c.Mem.Write(c.Reg.PushS(), c.Reg.P|register.Break)
	c.Reg.SetFlag(register.Interrupt, true)
	lo := c.Mem.Read(register.IRQVector)
	hi := c.Mem.Read(register.IRQVector + 1)
	c.Reg.PC = uint16(hi)<<8 | uint16(lo)
	return entry.Cycles
}

func (c *Chip) load(entry Entry) int {
	ea := c.resolve(entry.Mode, true)
	switch entry.Mnemonic {
	case LDA:
		c.Reg.A = ea.Value
		c.Reg.SetNZFrom(c.Reg.A)
	case LDX:
		c.Reg.X = ea.Value
		c.Reg.SetNZFrom(c.Reg.X)
	case LDY:
		c.Reg.Y = ea.Value
		c.Reg.SetNZFrom(c.Reg.Y)
	}
	return c.pageCrossCycles(entry, ea)
}

func (c *Chip) store(entry Entry) int {
	ea := c.resolve(entry.Mode, false)
	switch entry.Mnemonic {
	case STA:
		c.Mem.Write(ea.Addr, c.Reg.A)
	case STX:
		c.Mem.Write(ea.Addr, c.Reg.X)
	case STY:
		c.Mem.Write(ea.Addr, c.Reg.Y)
	}
	return entry.Cycles
}

func (c *Chip) logic(entry Entry) int {
	ea := c.resolve(entry.Mode, true)
	var r alu.Result
	switch entry.Mnemonic {
	case AND:
		r = alu.And(c.Reg.A, ea.Value)
	case ORA:
		r = alu.Or(c.Reg.A, ea.Value)
	case EOR:
		r = alu.Xor(c.Reg.A, ea.Value)
	}
	c.Reg.A = r.Value
	c.Reg.SetFlag(register.Negative, r.N)
	c.Reg.SetFlag(register.Zero, r.Z)
	return c.pageCrossCycles(entry, ea)
}

func (c *Chip) compare(entry Entry) int {
	ea := c.resolve(entry.Mode, true)
	var reg uint8
	switch entry.Mnemonic {
	case CMP:
		reg = c.Reg.A
	case CPX:
		reg = c.Reg.X
	case CPY:
		reg = c.Reg.Y
	}
	r := alu.Subtract(reg, ea.Value, true, false)
	c.Reg.SetFlag(register.Carry, r.C)
	c.Reg.SetFlag(register.Zero, r.Z)
	c.Reg.SetFlag(register.Negative, r.N)
	return c.pageCrossCycles(entry, ea)
}

func (c *Chip) bit(entry Entry) int {
	ea := c.resolve(entry.Mode, true)
	c.Reg.SetFlag(register.Zero, c.Reg.A&ea.Value == 0)
	c.Reg.SetFlag(register.Negative, ea.Value&0x80 != 0)
	c.Reg.SetFlag(register.Overflow, ea.Value&0x40 != 0)
	return c.pageCrossCycles(entry, ea)
}

func (c *Chip) adc(entry Entry) int {
	ea := c.resolve(entry.Mode, true)
	r := alu.Add(c.Reg.A, ea.Value, c.Reg.Flag(register.Carry), c.Reg.Flag(register.Decimal))
	c.Reg.A = r.Value
	c.Reg.SetFlag(register.Negative, r.N)
	c.Reg.SetFlag(register.Overflow, r.V)
	c.Reg.SetFlag(register.Zero, r.Z)
	c.Reg.SetFlag(register.Carry, r.C)
	return c.pageCrossCycles(entry, ea)
}

func (c *Chip) sbc(entry Entry) int {
	ea := c.resolve(entry.Mode, true)
	r := alu.Subtract(c.Reg.A, ea.Value, c.Reg.Flag(register.Carry), c.Reg.Flag(register.Decimal))
	c.Reg.A = r.Value
	c.Reg.SetFlag(register.Negative, r.N)
	c.Reg.SetFlag(register.Overflow, r.V)
	c.Reg.SetFlag(register.Zero, r.Z)
	c.Reg.SetFlag(register.Carry, r.C)
	return c.pageCrossCycles(entry, ea)
}

func (c *Chip) shiftRotate(entry Entry) int {
	var in uint8
	var ea EffectiveAddress
	if entry.Mode == Accumulator {
		in = c.Reg.A
	} else {
		ea = c.resolve(entry.Mode, true)
		in = ea.Value
	}

	var r alu.Result
	switch entry.Mnemonic {
	case ASL:
		r = alu.ShiftLeft(in)
	case LSR:
		r = alu.ShiftRight(in)
	case ROL:
		r = rotateLeft(in, c.Reg.Flag(register.Carry))
	case ROR:
		r = rotateRight(in, c.Reg.Flag(register.Carry))
	}

	if entry.Mode == Accumulator {
		c.Reg.A = r.Value
	} else {
		c.Mem.Write(ea.Addr, r.Value)
	}
	c.Reg.SetFlag(register.Negative, r.N)
	c.Reg.SetFlag(register.Zero, r.Z)
	c.Reg.SetFlag(register.Carry, r.C)
	return entry.Cycles
}

func (c *Chip) incDec(entry Entry) int {
	ea := c.resolve(entry.Mode, true)
	var r alu.Result
	switch entry.Mnemonic {
	case INC:
		r = alu.Increment(ea.Value)
	case DEC:
		r = alu.Decrement(ea.Value)
	}
	c.Mem.Write(ea.Addr, r.Value)
	c.Reg.SetFlag(register.Negative, r.N)
	c.Reg.SetFlag(register.Zero, r.Z)
	return entry.Cycles
}
