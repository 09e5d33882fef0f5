// dataitems/cat021/time_reception_velocity.go
package v26

import (
	"bytes"
	"fmt"
	"math"
)

// TimeOfMessageReceptionVelocity implements I021/075
// Time of reception of the latest velocity squitter in the ground station
type TimeOfMessageReceptionVelocity struct {
	Time float64 // Seconds since midnight UTC
}

func (t *TimeOfMessageReceptionVelocity) Decode(buf *bytes.Buffer) (int, error) {
	data := make([]byte, 3)
	n, err := buf.Read(data)
	if err != nil {
		return n, fmt.Errorf("reading time of message reception for velocity: %w", err)
	}
	if n != 3 {
		return n, fmt.Errorf("insufficient data: got %d bytes, want 3", n)
	}

	// 24-bit count, LSB = 1/128 second
	counts := uint32(data[0])<<16 | uint32(data[1])<<8 | uint32(data[2])
	t.Time = float64(counts) / 128.0

	return n, t.Validate()
}

func (t *TimeOfMessageReceptionVelocity) Encode(buf *bytes.Buffer) (int, error) {
	if err := t.Validate(); err != nil {
		return 0, err
	}

	counts := uint32(math.Round(t.Time * 128.0))

	b := make([]byte, 3)
	b[0] = byte(counts >> 16)
	b[1] = byte(counts >> 8)
	b[2] = byte(counts)

	n, err := buf.Write(b)
	if err != nil {
		return n, fmt.Errorf("writing time of message reception for velocity: %w", err)
	}
	return n, nil
}

func (t *TimeOfMessageReceptionVelocity) Validate() error {
	if t.Time < 0 || t.Time >= 86400 {
		return fmt.Errorf("time out of valid range [0,86400): %f", t.Time)
	}
	return nil
}

func (t *TimeOfMessageReceptionVelocity) String() string {
	hours := int(t.Time / 3600)
	minutes := int(t.Time/60) % 60
	seconds := t.Time - float64(hours*3600) - float64(minutes*60)
	return fmt.Sprintf("%02d:%02d:%06.3f", hours, minutes, seconds)
}
