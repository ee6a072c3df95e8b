package memory

import "testing"

func TestFlatReadWrite(t *testing.T) {
	f := NewFlat(nil)
	f.Write(0x1234, 0xAB)
	if got, want := f.Read(0x1234), uint8(0xAB); got != want {
		t.Errorf("Read(0x1234) = %#x, want %#x", got, want)
	}
	if got, want := f.DatabusVal(), uint8(0xAB); got != want {
		t.Errorf("DatabusVal() = %#x, want %#x", got, want)
	}
}

func TestFlatStackWrap(t *testing.T) {
	f := NewFlat(nil)
	// Simulate a push at S=0x00: write at 0x0100, then S wraps to 0xFF.
	f.Write(StackBase|0x00, 0x42)
	if got := f.Read(0x0100); got != 0x42 {
		t.Errorf("Read(0x0100) = %#x, want 0x42", got)
	}
}

func TestLatestDatabusVal(t *testing.T) {
	parent := NewFlat(nil)
	parent.Write(0x10, 0x99)
	child := NewFlat(parent)
	child.Write(0x20, 0x55)
	if got, want := LatestDatabusVal(child), uint8(0x99); got != want {
		t.Errorf("LatestDatabusVal(child) = %#x, want %#x", got, want)
	}
}

func TestLoadImage(t *testing.T) {
	f := NewFlat(nil)
	img := make([]byte, Size)
	img[0xFFFC] = 0x00
	img[0xFFFD] = 0x80
	if err := LoadImage(f, img); err != nil {
		t.Fatalf("LoadImage: %v", err)
	}
	if got, want := f.Read(0xFFFD), uint8(0x80); got != want {
		t.Errorf("Read(0xFFFD) = %#x, want %#x", got, want)
	}

	if err := LoadImage(f, make([]byte, 10)); err == nil {
		t.Error("LoadImage with short buffer: got nil error, want error")
	}
}
