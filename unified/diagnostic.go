// unified/diagnostic.go
package unified

import (
	"fmt"

	"github.com/flightwave/asterix/asterix"
)

// DiagnosticKind classifies a decode failure
type DiagnosticKind uint8

const (
	// Block framing
	ShortBlock DiagnosticKind = iota + 1
	BadLength
	UnsupportedCategory

	// FSPEC parsing
	FspecUnterminated
	FspecEmpty
	UnknownFRN

	// Item decoding
	Truncated
	ItemOutOfRange
	BDSFieldOutOfRange

	// Derivation
	CoordConvergence
)

func (k DiagnosticKind) String() string {
	switch k {
	case ShortBlock:
		return "SHORT_BLOCK"
	case BadLength:
		return "BAD_LENGTH"
	case UnsupportedCategory:
		return "UNSUPPORTED_CATEGORY"
	case FspecUnterminated:
		return "FSPEC_UNTERMINATED"
	case FspecEmpty:
		return "FSPEC_EMPTY"
	case UnknownFRN:
		return "UNKNOWN_FRN"
	case Truncated:
		return "TRUNCATED"
	case ItemOutOfRange:
		return "ITEM_OUT_OF_RANGE"
	case BDSFieldOutOfRange:
		return "BDS_FIELD_OUT_OF_RANGE"
	case CoordConvergence:
		return "COORD_CONVERGENCE"
	default:
		return fmt.Sprintf("DIAGNOSTIC(%d)", k)
	}
}

// Diagnostic reports a recoverable decode failure. Category and FRN
// are zero when not known at the point of failure.
type Diagnostic struct {
	Kind     DiagnosticKind
	Offset   int // Byte offset of the block in the input
	Category asterix.Category
	FRN      uint8
	Detail   string
}

func (d Diagnostic) String() string {
	s := fmt.Sprintf("%s at offset %d", d.Kind, d.Offset)
	if d.Category != 0 {
		s += fmt.Sprintf(" (%s)", d.Category)
	}
	if d.Detail != "" {
		s += ": " + d.Detail
	}
	return s
}

// Error converts a diagnostic into an error for strict-mode aborts
func (d Diagnostic) Error() string {
	return d.String()
}
