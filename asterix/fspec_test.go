// asterix/fspec_test.go
package asterix

import (
	"bytes"
	"testing"
)

func TestFSPECSetGetFRN(t *testing.T) {
	f := NewFSPEC()

	// FRN 0 is invalid
	if err := f.SetFRN(0); err == nil {
		t.Error("SetFRN(0) should fail")
	}
	if f.GetFRN(0) {
		t.Error("GetFRN(0) should be false")
	}

	// Set bits across several octets
	frns := []uint8{1, 7, 8, 14, 15, 29}
	for _, frn := range frns {
		if err := f.SetFRN(frn); err != nil {
			t.Fatalf("SetFRN(%d) failed: %v", frn, err)
		}
	}

	for _, frn := range frns {
		if !f.GetFRN(frn) {
			t.Errorf("GetFRN(%d) = false after SetFRN", frn)
		}
	}

	// Unset bits stay clear
	for _, frn := range []uint8{2, 6, 9, 13, 28, 30} {
		if f.GetFRN(frn) {
			t.Errorf("GetFRN(%d) = true, never set", frn)
		}
	}

	// FRN 29 lives in the fifth octet
	if f.Size() != 5 {
		t.Errorf("Size() = %d, want 5", f.Size())
	}
}

func TestFSPECEncodeDecode(t *testing.T) {
	tests := []struct {
		name     string
		frns     []uint8
		expected []byte
	}{
		{
			name:     "Single FRN in first octet",
			frns:     []uint8{1},
			expected: []byte{0x80},
		},
		{
			name:     "All FRNs of first octet",
			frns:     []uint8{1, 2, 3, 4, 5, 6, 7},
			expected: []byte{0xFE},
		},
		{
			name:     "FRN in second octet chains FX",
			frns:     []uint8{1, 8},
			expected: []byte{0x81, 0x80},
		},
		{
			name:     "Sparse FRNs across three octets",
			frns:     []uint8{2, 10, 21},
			expected: []byte{0x41, 0x21, 0x02},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := NewFSPEC()
			for _, frn := range tt.frns {
				if err := f.SetFRN(frn); err != nil {
					t.Fatalf("SetFRN(%d) failed: %v", frn, err)
				}
			}

			buf := new(bytes.Buffer)
			n, err := f.Encode(buf)
			if err != nil {
				t.Fatalf("Encode() failed: %v", err)
			}
			if n != len(tt.expected) {
				t.Errorf("Encode() wrote %d bytes, want %d", n, len(tt.expected))
			}
			if !bytes.Equal(buf.Bytes(), tt.expected) {
				t.Errorf("Encode() = %X, want %X", buf.Bytes(), tt.expected)
			}

			// Round-trip: decoding must reproduce exactly the set FRNs
			f2 := NewFSPEC()
			n, err = f2.Decode(bytes.NewBuffer(tt.expected))
			if err != nil {
				t.Fatalf("Decode() failed: %v", err)
			}
			if n != len(tt.expected) {
				t.Errorf("Decode() read %d bytes, want %d", n, len(tt.expected))
			}

			for frn := uint8(1); frn <= 35; frn++ {
				want := false
				for _, set := range tt.frns {
					if frn == set {
						want = true
					}
				}
				if f2.GetFRN(frn) != want {
					t.Errorf("round trip FRN %d = %v, want %v", frn, f2.GetFRN(frn), want)
				}
			}
		})
	}
}

func TestFSPECEncodeEmpty(t *testing.T) {
	f := NewFSPEC()
	buf := new(bytes.Buffer)
	if _, err := f.Encode(buf); err == nil {
		t.Error("Encode() of empty FSPEC should fail")
	}
}

func TestFSPECDecodeErrors(t *testing.T) {
	tests := []struct {
		name  string
		input []byte
	}{
		{
			name:  "Empty buffer",
			input: []byte{},
		},
		{
			name:  "FX set but no continuation",
			input: []byte{0x81},
		},
		{
			name: "Unterminated chain beyond safety limit",
			input: []byte{
				0x01, 0x01, 0x01, 0x01, 0x01, 0x01, 0x01, 0x01, 0x01,
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := NewFSPEC()
			if _, err := f.Decode(bytes.NewBuffer(tt.input)); err == nil {
				t.Error("Decode() should fail")
			}
		})
	}
}

func TestFSPECDecodeStopsAtFX(t *testing.T) {
	// The FX=0 octet terminates the FSPEC; following bytes belong to
	// the data items
	buf := bytes.NewBuffer([]byte{0x80, 0xAA, 0xBB})
	f := NewFSPEC()
	n, err := f.Decode(buf)
	if err != nil {
		t.Fatalf("Decode() failed: %v", err)
	}
	if n != 1 {
		t.Errorf("Decode() read %d bytes, want 1", n)
	}
	if buf.Len() != 2 {
		t.Errorf("buffer has %d remaining bytes, want 2", buf.Len())
	}
}

func TestFSPECHasItems(t *testing.T) {
	f := NewFSPEC()
	if f.HasItems() {
		t.Error("empty FSPEC should have no items")
	}

	// A decoded all-zero octet has no presence bits
	if _, err := f.Decode(bytes.NewBuffer([]byte{0x00})); err != nil {
		t.Fatalf("Decode() failed: %v", err)
	}
	if f.HasItems() {
		t.Error("all-zero FSPEC should have no items")
	}

	// A chain of FX-only octets still carries no items
	if _, err := f.Decode(bytes.NewBuffer([]byte{0x01, 0x00})); err != nil {
		t.Fatalf("Decode() failed: %v", err)
	}
	if f.HasItems() {
		t.Error("FX-only FSPEC should have no items")
	}

	if err := f.SetFRN(3); err != nil {
		t.Fatalf("SetFRN failed: %v", err)
	}
	if !f.HasItems() {
		t.Error("FSPEC with FRN 3 set should have items")
	}
}
