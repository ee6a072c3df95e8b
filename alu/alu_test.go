package alu

import (
	"testing"

	"github.com/davecgh/go-spew/spew"
)

func TestAddBinary(t *testing.T) {
	tests := []struct {
		name          string
		a, b          uint8
		carryIn       bool
		wantVal       uint8
		wantC, wantOv bool
		wantN, wantZ  bool
	}{
		{
			name: "signed overflow", a: 0x80, b: 0xFF, carryIn: false,
			wantVal: 0x7F, wantC: true, wantOv: true, wantN: false, wantZ: false,
		},
		{
			name: "no carry no overflow", a: 0x01, b: 0x01, carryIn: false,
			wantVal: 0x02, wantC: false, wantOv: false, wantN: false, wantZ: false,
		},
		{
			name: "zero result", a: 0xFF, b: 0x01, carryIn: false,
			wantVal: 0x00, wantC: true, wantOv: false, wantN: false, wantZ: true,
		},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			got := Add(test.a, test.b, test.carryIn, false)
			if got.Value != test.wantVal || got.C != test.wantC || got.V != test.wantOv || got.N != test.wantN || got.Z != test.wantZ {
				t.Errorf("Add(%#x, %#x, %v, false) = %s, want Value=%#x C=%v V=%v N=%v Z=%v",
					test.a, test.b, test.carryIn, spew.Sdump(got), test.wantVal, test.wantC, test.wantOv, test.wantN, test.wantZ)
			}
		})
	}
}

func TestAddDecimal(t *testing.T) {
	// Scenario 1 from spec: D=1, A=0x15, carry=0, ADC #$27 -> A=0x42, C=0, Z=0, N=0, V=0.
	got := Add(0x15, 0x27, false, true)
	want := Result{Value: 0x42, N: false, V: false, Z: false, C: false}
	if got != want {
		t.Errorf("Add(0x15, 0x27, false, true) = %+v, want %+v", got, want)
	}
}

func TestSubtractBinary(t *testing.T) {
	// Scenario 3 from spec: D=0, A=0x80, carry=1 (no borrow), SBC #$01 -> A=0x7F, C=1, V=1, N=0, Z=0.
	got := Subtract(0x80, 0x01, true, false)
	want := Result{Value: 0x7F, N: false, V: true, Z: false, C: true}
	if got != want {
		t.Errorf("Subtract(0x80, 0x01, true, false) = %+v, want %+v", got, want)
	}
}

func TestSubtractBorrow(t *testing.T) {
	// 0x00 - 0x01 with carry (no incoming borrow) set should borrow: C clear.
	got := Subtract(0x00, 0x01, true, false)
	if got.Value != 0xFF || got.C != false {
		t.Errorf("Subtract(0x00, 0x01, true, false) = %+v, want Value=0xFF C=false", got)
	}
}

func TestLogic(t *testing.T) {
	if got := And(0xF0, 0x3C); got.Value != 0x30 {
		t.Errorf("And(0xF0, 0x3C).Value = %#x, want 0x30", got.Value)
	}
	if got := Or(0xF0, 0x0C); got.Value != 0xFC {
		t.Errorf("Or(0xF0, 0x0C).Value = %#x, want 0xFC", got.Value)
	}
	if got := Xor(0xFF, 0x0F); got.Value != 0xF0 {
		t.Errorf("Xor(0xFF, 0x0F).Value = %#x, want 0xF0", got.Value)
	}
}

func TestShifts(t *testing.T) {
	sl := ShiftLeft(0x81)
	if sl.Value != 0x02 || !sl.C || sl.N || sl.Z {
		t.Errorf("ShiftLeft(0x81) = %+v, want Value=0x02 C=true N=false Z=false", sl)
	}
	sr := ShiftRight(0x01)
	if sr.Value != 0x00 || !sr.C || !sr.Z {
		t.Errorf("ShiftRight(0x01) = %+v, want Value=0x00 C=true Z=true", sr)
	}
}

func TestIncrementDecrementWrap(t *testing.T) {
	if got := Increment(0xFF); got.Value != 0x00 || !got.Z {
		t.Errorf("Increment(0xFF) = %+v, want Value=0x00 Z=true", got)
	}
	if got := Decrement(0x00); got.Value != 0xFF || !got.N {
		t.Errorf("Decrement(0x00) = %+v, want Value=0xFF N=true", got)
	}
}
