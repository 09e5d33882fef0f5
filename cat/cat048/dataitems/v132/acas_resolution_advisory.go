// dataitems/cat048/acas_resolution_advisory.go
package v132

import (
	"bytes"
	"fmt"
)

// ACASResolutionAdvisory implements I048/260
// Currently active Resolution Advisory (RA), if any, generated by the
// ACAS associated with the transponder transmitting the report and
// threat identity data. The 56-bit message is carried verbatim; its
// internal layout is defined by the Mode S MB register 30.
type ACASResolutionAdvisory struct {
	Data []byte // 7 bytes of BDS 3,0 message data
}

// Decode implements the DataItem interface
func (a *ACASResolutionAdvisory) Decode(buf *bytes.Buffer) (int, error) {
	data := make([]byte, 7)
	n, err := buf.Read(data)
	if err != nil {
		return n, fmt.Errorf("reading ACAS resolution advisory: %w", err)
	}
	if n != 7 {
		return n, fmt.Errorf("insufficient data for ACAS resolution advisory: got %d bytes, want 7", n)
	}

	a.Data = data
	return n, nil
}

// Encode implements the DataItem interface
func (a *ACASResolutionAdvisory) Encode(buf *bytes.Buffer) (int, error) {
	if err := a.Validate(); err != nil {
		return 0, err
	}

	n, err := buf.Write(a.Data)
	if err != nil {
		return n, fmt.Errorf("writing ACAS resolution advisory: %w", err)
	}
	return n, nil
}

// Validate implements the DataItem interface
func (a *ACASResolutionAdvisory) Validate() error {
	if len(a.Data) != 7 {
		return fmt.Errorf("ACAS resolution advisory must be 7 bytes, got %d", len(a.Data))
	}
	return nil
}

// String returns a human-readable representation
func (a *ACASResolutionAdvisory) String() string {
	if len(a.Data) != 7 {
		return "invalid ACAS RA report"
	}
	return fmt.Sprintf("% X", a.Data)
}
