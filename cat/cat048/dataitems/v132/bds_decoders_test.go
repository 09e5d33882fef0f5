// dataitems/cat048/v132/bds_decoders_test.go
package v132_test

import (
	"math"
	"testing"

	v132 "github.com/flightwave/asterix/cat/cat048/dataitems/v132"
)

func TestDecodeBDS50(t *testing.T) {
	tests := []struct {
		name           string
		data           []byte
		wantTrackAngle *float64
		wantRollAngle  *float64
		wantGS         *float64
	}{
		{
			name: "All status bits zero",
			data: []byte{0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00},
		},
		{
			name: "True track angle east",
			// Status bit 12 set, raw value 256 = 45.0°
			data:           []byte{0x00, 0x14, 0x00, 0x00, 0x00, 0x00, 0x00},
			wantTrackAngle: ptrFloat(45.0),
		},
		{
			name: "True track angle negative wraps west of north",
			// Status bit 12 set, raw value 960 sign-extends to -64
			// (-11.25°), reported as 348.75°
			data:           []byte{0x00, 0x1F, 0x00, 0x00, 0x00, 0x00, 0x00},
			wantTrackAngle: ptrFloat(348.75),
		},
		{
			name: "Roll angle left wing down",
			// Status bit 1 set, raw value 968 sign-extends to -56
			// (-9.84°)
			data:          []byte{0xF9, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00},
			wantRollAngle: ptrFloat(-56.0 * 45.0 / 256.0),
		},
		{
			name: "Roll angle out of range suppressed",
			// Status bit set, raw value 511 = 89.8°, beyond plausible
			data: []byte{0xBF, 0xE0, 0x00, 0x00, 0x00, 0x00, 0x00},
		},
		{
			name: "Ground speed",
			// Status bit 23 set, raw value 250 = 500 kt
			data:   []byte{0x00, 0x00, 0x02, 0x7D, 0x00, 0x00, 0x00},
			wantGS: ptrFloat(500.0),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, err := v132.DecodeBDS50(tt.data)
			if err != nil {
				t.Fatalf("DecodeBDS50() error = %v", err)
			}

			checkOptField(t, "TrueTrackAngle", result.TrueTrackAngle, tt.wantTrackAngle)
			checkOptField(t, "RollAngle", result.RollAngle, tt.wantRollAngle)
			checkOptField(t, "GroundSpeed", result.GroundSpeed, tt.wantGS)
		})
	}
}

func TestDecodeBDS50_WrongLength(t *testing.T) {
	if _, err := v132.DecodeBDS50([]byte{0x00, 0x00, 0x00}); err == nil {
		t.Error("DecodeBDS50() with 3 bytes should fail")
	}
}

func checkOptField(t *testing.T, name string, got, want *float64) {
	t.Helper()
	if want == nil {
		if got != nil {
			t.Errorf("%s = %v, want absent", name, *got)
		}
		return
	}
	if got == nil {
		t.Errorf("%s absent, want %v", name, *want)
		return
	}
	if math.Abs(*got-*want) > 1e-9 {
		t.Errorf("%s = %v, want %v", name, *got, *want)
	}
}

func ptrFloat(v float64) *float64 {
	return &v
}
