package register

import (
	"testing"

	"github.com/go-test/deep"
)

func vectorMem(reset, irq uint16) func(uint16) uint8 {
	m := make(map[uint16]uint8)
	m[ResetVector] = uint8(reset)
	m[ResetVector+1] = uint8(reset >> 8)
	m[IRQVector] = uint8(irq)
	m[IRQVector+1] = uint8(irq >> 8)
	return func(addr uint16) uint8 { return m[addr] }
}

func TestColdReset(t *testing.T) {
	f := &File{A: 0x11, X: 0x22, Y: 0x33, S: 0x44, P: 0xFF}
	f.ColdReset(vectorMem(0x0600, 0xD000))

	want := &File{PC: 0x0600, S: 0xFF, A: 0, X: 0, Y: 0, P: S1 | Interrupt}
	if diff := deep.Equal(f, want); diff != nil {
		t.Errorf("ColdReset() diff: %v", diff)
	}
}

func TestWarmReset(t *testing.T) {
	f := &File{A: 0x11, X: 0x22, Y: 0x33, S: 0x44}
	f.SetP(Decimal)
	f.WarmReset(vectorMem(0x0600, 0xD000))

	if got, want := f.A, uint8(0x11); got != want {
		t.Errorf("A after WarmReset = %#x, want %#x (preserved)", got, want)
	}
	if got, want := f.S, uint8(0x44); got != want {
		t.Errorf("S after WarmReset = %#x, want %#x (preserved)", got, want)
	}
	if !f.Flag(Interrupt) {
		t.Error("Interrupt flag not set after WarmReset")
	}
	if got, want := f.PC, uint16(0x0600); got != want {
		t.Errorf("PC after WarmReset = %#x, want %#x", got, want)
	}
}

func TestSetPForcesS1(t *testing.T) {
	f := &File{}
	f.SetP(0x00)
	if got := f.P; got&S1 == 0 {
		t.Errorf("SetP(0x00): P = %#x, bit 5 not forced", got)
	}
}

func TestSetFlagForcesS1(t *testing.T) {
	f := &File{}
	f.SetFlag(Carry, true)
	if got := f.P; got&S1 == 0 {
		t.Errorf("SetFlag: P = %#x, bit 5 not forced", got)
	}
	if !f.Flag(Carry) {
		t.Error("Carry flag not set")
	}
	f.SetFlag(Carry, false)
	if f.Flag(Carry) {
		t.Error("Carry flag still set after clear")
	}
}

func TestSetNZFrom(t *testing.T) {
	tests := []struct {
		name  string
		b     uint8
		wantN bool
		wantZ bool
	}{
		{"zero", 0x00, false, true},
		{"positive", 0x7F, false, false},
		{"negative", 0x80, true, false},
		{"negative nonzero high", 0xFF, true, false},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			f := &File{}
			f.SetNZFrom(test.b)
			if got := f.Flag(Negative); got != test.wantN {
				t.Errorf("N = %v, want %v", got, test.wantN)
			}
			if got := f.Flag(Zero); got != test.wantZ {
				t.Errorf("Z = %v, want %v", got, test.wantZ)
			}
		})
	}
}

func TestPushPullStackWrap(t *testing.T) {
	f := &File{S: 0x00}
	addr := f.PushS()
	if got, want := addr, uint16(0x0100); got != want {
		t.Errorf("PushS() addr = %#x, want %#x", got, want)
	}
	if got, want := f.S, uint8(0xFF); got != want {
		t.Errorf("S after PushS() = %#x, want %#x", got, want)
	}

	f2 := &File{S: 0xFF}
	addr2 := f2.PullS()
	if got, want := addr2, uint16(0x0100); got != want {
		t.Errorf("PullS() addr = %#x, want %#x", got, want)
	}
	if got, want := f2.S, uint8(0x00); got != want {
		t.Errorf("S after PullS() = %#x, want %#x", got, want)
	}
}
