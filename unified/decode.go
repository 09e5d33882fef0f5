// unified/decode.go
package unified

import (
	"context"
	"encoding/binary"
	"errors"
	"fmt"

	"github.com/flightwave/asterix/asterix"
	"github.com/flightwave/asterix/cat/cat021"
	"github.com/flightwave/asterix/cat/cat048"
	"github.com/flightwave/asterix/geo"
)

// Options configures a decode run
type Options struct {
	// RadarStation enables geographic derivation for CAT048 records.
	// Without it RHO/THETA are still reported but no latitude,
	// longitude or WGS-84 height is derived.
	RadarStation *geo.RadarStation

	// QNH in hPa. When set, barometric altitudes below the transition
	// altitude are corrected.
	QNH *float64

	// TransitionAltitudeFt bounds the QNH correction; zero selects
	// the default of 6000 ft.
	TransitionAltitudeFt float64

	// Strict aborts on the first decode error instead of reporting it
	// as a Diagnostic and resuming at the next block.
	Strict bool
}

// Result is the outcome of a decode run
type Result struct {
	Records     []Record
	Diagnostics []Diagnostic
}

// DecodeStream decodes a byte slice of concatenated ASTERIX data
// blocks into unified records. It is the primary entry point.
//
// The context is polled between blocks; a cancelled decode returns
// the records assembled so far together with the context error. In
// non-strict mode decode failures become Diagnostics and decoding
// resumes at the next block boundary; in strict mode the first
// failure is returned as an error.
func DecodeStream(ctx context.Context, data []byte, opts Options) (Result, error) {
	var result Result

	asm, err := newAssembler(opts)
	if err != nil {
		return result, err
	}

	decoder, err := newDecoder()
	if err != nil {
		return result, err
	}

	offset := 0
	for offset < len(data) {
		if err := ctx.Err(); err != nil {
			return result, err
		}

		remaining := len(data) - offset

		// A trailing fragment shorter than a block header cannot be
		// framed
		if remaining < 3 {
			d := Diagnostic{
				Kind:   ShortBlock,
				Offset: offset,
				Detail: fmt.Sprintf("%d trailing bytes, need at least 3 for a block header", remaining),
			}
			if opts.Strict {
				return result, d
			}
			result.Diagnostics = append(result.Diagnostics, d)
			break
		}

		cat := asterix.CategoryFromByte(data[offset])
		length := int(binary.BigEndian.Uint16(data[offset+1 : offset+3]))

		if length < 3 {
			// The length field cannot be trusted, so the next block
			// header cannot be located: framing is lost for good
			d := Diagnostic{
				Kind:     BadLength,
				Offset:   offset,
				Category: cat,
				Detail:   fmt.Sprintf("block length %d below minimum of 3", length),
			}
			if opts.Strict {
				return result, d
			}
			result.Diagnostics = append(result.Diagnostics, d)
			break
		}

		if offset+length > len(data) {
			d := Diagnostic{
				Kind:     ShortBlock,
				Offset:   offset,
				Category: cat,
				Detail:   fmt.Sprintf("block length %d exceeds remaining %d bytes", length, remaining),
			}
			if opts.Strict {
				return result, d
			}
			result.Diagnostics = append(result.Diagnostics, d)
			break
		}

		block := data[offset : offset+length]

		if !cat.IsValid() {
			d := Diagnostic{
				Kind:     UnsupportedCategory,
				Offset:   offset,
				Category: cat,
				Detail:   fmt.Sprintf("category %d is not supported", uint8(cat)),
			}
			if opts.Strict {
				return result, d
			}
			result.Diagnostics = append(result.Diagnostics, d)
			offset += length
			continue
		}

		msg, err := decoder.Decode(block)
		if err != nil {
			// Record boundaries inside the block are only known
			// mid-decode, so the whole block is lost
			d := classify(err, offset, cat, decoder.GetUAP(cat))
			if opts.Strict {
				return result, d
			}
			result.Diagnostics = append(result.Diagnostics, d)
			offset += length
			continue
		}

		for _, items := range msg.Records() {
			rec, diags := asm.assemble(cat, items, offset)
			if opts.Strict && len(diags) > 0 {
				return result, diags[0]
			}
			result.Diagnostics = append(result.Diagnostics, diags...)
			result.Records = append(result.Records, rec)
		}

		offset += length
	}

	return result, nil
}

// newDecoder builds the two-category decoder. The UAP registry is
// read-only after this point.
func newDecoder() (*asterix.Decoder, error) {
	uap021, err := cat021.NewUAP(cat021.Version26)
	if err != nil {
		return nil, fmt.Errorf("initializing CAT021 UAP: %w", err)
	}
	uap048, err := cat048.NewUAP(cat048.Version132)
	if err != nil {
		return nil, fmt.Errorf("initializing CAT048 UAP: %w", err)
	}
	return asterix.NewDecoder(uap021, uap048)
}

// classify maps a block-level decode error onto a diagnostic kind,
// recovering the failing item's FRN from the UAP when the error
// carries the item identity
func classify(err error, offset int, cat asterix.Category, uap asterix.UAP) Diagnostic {
	d := Diagnostic{
		Kind:     Truncated,
		Offset:   offset,
		Category: cat,
		Detail:   err.Error(),
	}

	switch {
	case errors.Is(err, asterix.ErrUnknownCategory):
		d.Kind = UnsupportedCategory
	case errors.Is(err, asterix.ErrInvalidLength):
		d.Kind = BadLength
	case errors.Is(err, asterix.ErrEmptyFSPEC):
		d.Kind = FspecEmpty
	case errors.Is(err, asterix.ErrInvalidFSPEC):
		d.Kind = FspecUnterminated
	case errors.Is(err, asterix.ErrUnknownDataItem), errors.Is(err, asterix.ErrFRNOutOfRange):
		d.Kind = UnknownFRN
	case errors.Is(err, asterix.ErrInvalidField):
		d.Kind = ItemOutOfRange
	case errors.Is(err, asterix.ErrBufferTooShort):
		d.Kind = Truncated
	}

	var de *asterix.DecodeError
	if errors.As(err, &de) && de.DataItem != "" && uap != nil {
		for _, field := range uap.Fields() {
			if field.DataItem == de.DataItem {
				d.FRN = field.FRN
				break
			}
		}
	}

	return d
}
