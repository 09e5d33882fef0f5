// unified/decode_test.go
package unified_test

import (
	"context"
	"math"
	"testing"

	"github.com/flightwave/asterix/geo"
	"github.com/flightwave/asterix/unified"
)

// Minimal CAT048 block: data source, time of day, target report
// descriptor and measured polar position.
//
//	30 00 0E          CAT=48 LEN=14
//	F0                FSPEC: FRN 1-4
//	E0 15             I048/010 SAC=0xE0 SIC=0x15
//	2C 81 74          I048/140 22786.906s
//	20                I048/020 TYP=1 (single PSR)
//	8F AA 4C 9B       I048/040 RHO=143.664 NM THETA=107.726°
var minimalCat048 = []byte{
	0x30, 0x00, 0x0E,
	0xF0,
	0xE0, 0x15,
	0x2C, 0x81, 0x74,
	0x20,
	0x8F, 0xAA, 0x4C, 0x9B,
}

// CAT021 block carrying data source, target report descriptor, target
// address and an eight-character target identification.
//
//	15 00 14          CAT=21 LEN=20
//	C1 11 01 01 80    FSPEC: FRN 1,2,11,29
//	19 2A             I021/010 SAC=25 SIC=42
//	30                I021/040 ATP=1 ARC=2
//	AB CD EF          I021/080
//	04 20 C4 14 61 C8 I021/170 "ABCDEFGH"
var minimalCat021 = []byte{
	0x15, 0x00, 0x14,
	0xC1, 0x11, 0x01, 0x01, 0x80,
	0x19, 0x2A,
	0x30,
	0xAB, 0xCD, 0xEF,
	0x04, 0x20, 0xC4, 0x14, 0x61, 0xC8,
}

func TestDecodeStream_EmptyInput(t *testing.T) {
	result, err := unified.DecodeStream(context.Background(), nil, unified.Options{})
	if err != nil {
		t.Fatalf("DecodeStream() error = %v", err)
	}
	if len(result.Records) != 0 {
		t.Errorf("got %d records, want 0", len(result.Records))
	}
	if len(result.Diagnostics) != 0 {
		t.Errorf("got %d diagnostics, want 0", len(result.Diagnostics))
	}
}

func TestDecodeStream_MinimalCat048(t *testing.T) {
	result, err := unified.DecodeStream(context.Background(), minimalCat048, unified.Options{})
	if err != nil {
		t.Fatalf("DecodeStream() error = %v", err)
	}
	if len(result.Diagnostics) != 0 {
		t.Fatalf("unexpected diagnostics: %v", result.Diagnostics)
	}
	if len(result.Records) != 1 {
		t.Fatalf("got %d records, want 1", len(result.Records))
	}

	rec := result.Records[0]
	if rec.Category != 48 {
		t.Errorf("Category = %d, want 48", rec.Category)
	}
	if rec.SAC == nil || *rec.SAC != 0xE0 {
		t.Errorf("SAC = %v, want 0xE0", rec.SAC)
	}
	if rec.SIC == nil || *rec.SIC != 0x15 {
		t.Errorf("SIC = %v, want 0x15", rec.SIC)
	}
	if rec.TimeSec == nil || math.Abs(*rec.TimeSec-22786.90625) > 1e-9 {
		t.Errorf("TimeSec = %v, want 22786.90625", rec.TimeSec)
	}
	if rec.TimeOfDay == nil || *rec.TimeOfDay != "06:19:46.906" {
		t.Errorf("TimeOfDay = %v, want 06:19:46.906", rec.TimeOfDay)
	}
	if rec.RHO == nil || math.Abs(*rec.RHO-143.6640625) > 1e-9 {
		t.Errorf("RHO = %v, want 143.6640625", rec.RHO)
	}
	if rec.THETA == nil || math.Abs(*rec.THETA-107.7264) > 0.001 {
		t.Errorf("THETA = %v, want ~107.726", rec.THETA)
	}
	if rec.RecordType == nil || *rec.RecordType != "PSR" {
		t.Errorf("RecordType = %v, want PSR", rec.RecordType)
	}
	// No radar station configured, so no geographic derivation
	if rec.Latitude != nil || rec.Longitude != nil || rec.HWGS84 != nil {
		t.Error("geographic fields populated without a radar station")
	}
}

func TestDecodeStream_MinimalCat021(t *testing.T) {
	result, err := unified.DecodeStream(context.Background(), minimalCat021, unified.Options{})
	if err != nil {
		t.Fatalf("DecodeStream() error = %v", err)
	}
	if len(result.Diagnostics) != 0 {
		t.Fatalf("unexpected diagnostics: %v", result.Diagnostics)
	}
	if len(result.Records) != 1 {
		t.Fatalf("got %d records, want 1", len(result.Records))
	}

	rec := result.Records[0]
	if rec.Category != 21 {
		t.Errorf("Category = %d, want 21", rec.Category)
	}
	if rec.SAC == nil || *rec.SAC != 25 {
		t.Errorf("SAC = %v, want 25", rec.SAC)
	}
	if rec.SIC == nil || *rec.SIC != 42 {
		t.Errorf("SIC = %v, want 42", rec.SIC)
	}
	if rec.TargetAddress == nil || *rec.TargetAddress != 0xABCDEF {
		t.Errorf("TargetAddress = %v, want 0xABCDEF", rec.TargetAddress)
	}
	if rec.Callsign == nil || *rec.Callsign != "ABCDEFGH" {
		t.Errorf("Callsign = %v, want ABCDEFGH", rec.Callsign)
	}
	if rec.RecordType == nil || *rec.RecordType != "ADS-B" {
		t.Errorf("RecordType = %v, want ADS-B", rec.RecordType)
	}
	// Polar measurement fields never apply to ADS-B reports
	if rec.RHO != nil || rec.THETA != nil {
		t.Error("RHO/THETA populated for a CAT021 record")
	}
}

func TestDecodeStream_MultipleBlocks(t *testing.T) {
	data := append(append([]byte{}, minimalCat048...), minimalCat021...)

	result, err := unified.DecodeStream(context.Background(), data, unified.Options{})
	if err != nil {
		t.Fatalf("DecodeStream() error = %v", err)
	}
	if len(result.Diagnostics) != 0 {
		t.Fatalf("unexpected diagnostics: %v", result.Diagnostics)
	}
	if len(result.Records) != 2 {
		t.Fatalf("got %d records, want 2", len(result.Records))
	}
	if result.Records[0].Category != 48 || result.Records[1].Category != 21 {
		t.Errorf("record order not preserved: %d, %d",
			result.Records[0].Category, result.Records[1].Category)
	}
}

func TestDecodeStream_BDSAllStatusBitsZero(t *testing.T) {
	// CAT048 block with an I048/250 register 5,0 whose status bits
	// are all clear: the register code is listed but no field emitted
	data := []byte{
		0x30, 0x00, 0x14,
		0xE1, 0x20, // FSPEC: FRN 1,2,3,10
		0xE0, 0x15,
		0x2C, 0x81, 0x74,
		0x20,
		0x01,                                     // REP = 1
		0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, // MB data
		0x50, // BDS 5,0
	}

	result, err := unified.DecodeStream(context.Background(), data, unified.Options{})
	if err != nil {
		t.Fatalf("DecodeStream() error = %v", err)
	}
	if len(result.Diagnostics) != 0 {
		t.Fatalf("unexpected diagnostics: %v", result.Diagnostics)
	}
	if len(result.Records) != 1 {
		t.Fatalf("got %d records, want 1", len(result.Records))
	}

	rec := result.Records[0]
	if rec.ModeSRegisters == nil || *rec.ModeSRegisters != "50" {
		t.Errorf("ModeSRegisters = %v, want \"50\"", rec.ModeSRegisters)
	}
	if rec.RollAngle != nil {
		t.Error("RollAngle emitted with status bit clear")
	}
	if rec.TrueTrackAngle != nil {
		t.Error("TrueTrackAngle emitted with status bit clear")
	}
	if rec.GroundSpeed != nil {
		t.Error("GroundSpeed emitted with status bit clear")
	}
	if rec.TrackAngleRate != nil {
		t.Error("TrackAngleRate emitted with status bit clear")
	}
	if rec.TrueAirspeed != nil {
		t.Error("TrueAirspeed emitted with status bit clear")
	}
}

func TestDecodeStream_BDSFieldOutOfRange(t *testing.T) {
	// BDS 5,0 register with the roll angle status bit set but a value
	// of ~89.8°, outside the register's plausible range: the field is
	// suppressed and reported, the register code still listed
	data := []byte{
		0x30, 0x00, 0x14,
		0xE1, 0x20, // FSPEC: FRN 1,2,3,10
		0xE0, 0x15,
		0x2C, 0x81, 0x74,
		0x20,
		0x01,                                     // REP = 1
		0xBF, 0xE0, 0x00, 0x00, 0x00, 0x00, 0x00, // MB data
		0x50, // BDS 5,0
	}

	result, err := unified.DecodeStream(context.Background(), data, unified.Options{})
	if err != nil {
		t.Fatalf("DecodeStream() error = %v", err)
	}
	if len(result.Records) != 1 {
		t.Fatalf("got %d records, want 1", len(result.Records))
	}

	rec := result.Records[0]
	if rec.RollAngle != nil {
		t.Errorf("RollAngle = %v, want suppressed", *rec.RollAngle)
	}
	if rec.ModeSRegisters == nil || *rec.ModeSRegisters != "50" {
		t.Errorf("ModeSRegisters = %v, want \"50\"", rec.ModeSRegisters)
	}
	if len(result.Diagnostics) != 1 {
		t.Fatalf("got %d diagnostics, want 1", len(result.Diagnostics))
	}
	if result.Diagnostics[0].Kind != unified.BDSFieldOutOfRange {
		t.Errorf("Kind = %v, want BDS_FIELD_OUT_OF_RANGE", result.Diagnostics[0].Kind)
	}
}

func TestDecodeStream_FspecUnterminated(t *testing.T) {
	// CAT048 tolerates at most 4 FSPEC octets; this record chains 5
	data := []byte{
		0x30, 0x00, 0x08,
		0x01, 0x01, 0x01, 0x01, 0x80,
	}

	result, err := unified.DecodeStream(context.Background(), data, unified.Options{})
	if err != nil {
		t.Fatalf("DecodeStream() error = %v", err)
	}
	if len(result.Records) != 0 {
		t.Errorf("got %d records, want 0", len(result.Records))
	}
	if len(result.Diagnostics) != 1 {
		t.Fatalf("got %d diagnostics, want 1", len(result.Diagnostics))
	}
	if result.Diagnostics[0].Kind != unified.FspecUnterminated {
		t.Errorf("Kind = %v, want FSPEC_UNTERMINATED", result.Diagnostics[0].Kind)
	}
}

func TestDecodeStream_FspecEmpty(t *testing.T) {
	data := []byte{0x30, 0x00, 0x04, 0x00}

	result, err := unified.DecodeStream(context.Background(), data, unified.Options{})
	if err != nil {
		t.Fatalf("DecodeStream() error = %v", err)
	}
	if len(result.Records) != 0 {
		t.Errorf("got %d records, want 0", len(result.Records))
	}
	if len(result.Diagnostics) != 1 {
		t.Fatalf("got %d diagnostics, want 1", len(result.Diagnostics))
	}
	if result.Diagnostics[0].Kind != unified.FspecEmpty {
		t.Errorf("Kind = %v, want FSPEC_EMPTY", result.Diagnostics[0].Kind)
	}
}

func TestDecodeStream_UnsupportedCategoryResync(t *testing.T) {
	// A CAT062 block is skipped as a whole; the following block still
	// decodes
	data := append([]byte{0x3E, 0x00, 0x04, 0x00}, minimalCat048...)

	result, err := unified.DecodeStream(context.Background(), data, unified.Options{})
	if err != nil {
		t.Fatalf("DecodeStream() error = %v", err)
	}
	if len(result.Diagnostics) != 1 {
		t.Fatalf("got %d diagnostics, want 1", len(result.Diagnostics))
	}
	if result.Diagnostics[0].Kind != unified.UnsupportedCategory {
		t.Errorf("Kind = %v, want UNSUPPORTED_CATEGORY", result.Diagnostics[0].Kind)
	}
	if len(result.Records) != 1 {
		t.Fatalf("got %d records after resync, want 1", len(result.Records))
	}
}

func TestDecodeStream_TrailingFragment(t *testing.T) {
	data := append(append([]byte{}, minimalCat048...), 0x30, 0x00)

	result, err := unified.DecodeStream(context.Background(), data, unified.Options{})
	if err != nil {
		t.Fatalf("DecodeStream() error = %v", err)
	}
	if len(result.Records) != 1 {
		t.Errorf("got %d records, want 1", len(result.Records))
	}
	if len(result.Diagnostics) != 1 || result.Diagnostics[0].Kind != unified.ShortBlock {
		t.Errorf("diagnostics = %v, want one SHORT_BLOCK", result.Diagnostics)
	}
}

func TestDecodeStream_ShortBlock(t *testing.T) {
	// Block header declares more bytes than the input holds
	data := []byte{0x30, 0x00, 0x40, 0xF0, 0xE0}

	result, err := unified.DecodeStream(context.Background(), data, unified.Options{})
	if err != nil {
		t.Fatalf("DecodeStream() error = %v", err)
	}
	if len(result.Diagnostics) != 1 || result.Diagnostics[0].Kind != unified.ShortBlock {
		t.Errorf("diagnostics = %v, want one SHORT_BLOCK", result.Diagnostics)
	}
}

func TestDecodeStream_BadLength(t *testing.T) {
	data := []byte{0x30, 0x00, 0x02, 0x00, 0x00}

	result, err := unified.DecodeStream(context.Background(), data, unified.Options{})
	if err != nil {
		t.Fatalf("DecodeStream() error = %v", err)
	}
	if len(result.Records) != 0 {
		t.Errorf("got %d records, want 0", len(result.Records))
	}
	if len(result.Diagnostics) != 1 || result.Diagnostics[0].Kind != unified.BadLength {
		t.Errorf("diagnostics = %v, want one BAD_LENGTH", result.Diagnostics)
	}
}

func TestDecodeStream_TruncatedItemCarriesFRN(t *testing.T) {
	// FSPEC declares I048/040 (FRN 4) but the record ends before it:
	// the diagnostic names the failing item's FRN
	data := []byte{
		0x30, 0x00, 0x0A,
		0xF0, // FSPEC: FRN 1,2,3,4
		0xE0, 0x15,
		0x2C, 0x81, 0x74,
		0x20,
	}

	result, err := unified.DecodeStream(context.Background(), data, unified.Options{})
	if err != nil {
		t.Fatalf("DecodeStream() error = %v", err)
	}
	if len(result.Records) != 0 {
		t.Errorf("got %d records, want 0", len(result.Records))
	}
	if len(result.Diagnostics) != 1 {
		t.Fatalf("got %d diagnostics, want 1", len(result.Diagnostics))
	}

	d := result.Diagnostics[0]
	if d.Kind != unified.Truncated {
		t.Errorf("Kind = %v, want TRUNCATED", d.Kind)
	}
	if d.FRN != 4 {
		t.Errorf("FRN = %d, want 4", d.FRN)
	}
}

func TestDecodeStream_Strict(t *testing.T) {
	data := []byte{0x30, 0x00, 0x04, 0x00}

	_, err := unified.DecodeStream(context.Background(), data, unified.Options{Strict: true})
	if err == nil {
		t.Fatal("strict mode did not surface the decode error")
	}
}

func TestDecodeStream_Cancellation(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	result, err := unified.DecodeStream(ctx, minimalCat048, unified.Options{})
	if err == nil {
		t.Fatal("cancelled context did not surface an error")
	}
	if len(result.Records) != 0 {
		t.Errorf("got %d records from a cancelled decode, want 0", len(result.Records))
	}
}

func TestDecodeStream_GeographicDerivation(t *testing.T) {
	// CAT048 block with polar position 16 NM due east and FL100
	data := []byte{
		0x30, 0x00, 0x10,
		0xF4, // FSPEC: FRN 1,2,3,4,6
		0xE0, 0x15,
		0x2C, 0x81, 0x74,
		0x20,
		0x10, 0x00, 0x40, 0x00, // RHO=16 NM THETA=90°
		0x01, 0x90, // I048/090 FL100
	}

	opts := unified.Options{
		RadarStation: &geo.RadarStation{Latitude: 50, Longitude: 8, HeightM: 100},
	}
	result, err := unified.DecodeStream(context.Background(), data, opts)
	if err != nil {
		t.Fatalf("DecodeStream() error = %v", err)
	}
	if len(result.Diagnostics) != 0 {
		t.Fatalf("unexpected diagnostics: %v", result.Diagnostics)
	}
	if len(result.Records) != 1 {
		t.Fatalf("got %d records, want 1", len(result.Records))
	}

	rec := result.Records[0]
	if rec.FlightLevel == nil || *rec.FlightLevel != 100 {
		t.Fatalf("FlightLevel = %v, want 100", rec.FlightLevel)
	}
	// Without a QNH the pressure altitude passes through unchanged
	if rec.QNHCorrectedAltitudeFt == nil || *rec.QNHCorrectedAltitudeFt != 10000 {
		t.Errorf("QNHCorrectedAltitudeFt = %v, want 10000", rec.QNHCorrectedAltitudeFt)
	}
	if rec.Latitude == nil || rec.Longitude == nil || rec.HWGS84 == nil {
		t.Fatal("geographic derivation missing")
	}
	if math.Abs(*rec.Latitude-50) > 0.05 {
		t.Errorf("Latitude = %f, want ~50 for a due-east target", *rec.Latitude)
	}
	if *rec.Longitude < 8.2 || *rec.Longitude > 8.6 {
		t.Errorf("Longitude = %f, want ~8.4", *rec.Longitude)
	}
	if *rec.HWGS84 < 2900 || *rec.HWGS84 > 3200 {
		t.Errorf("H_WGS84 = %f m, want ~3048", *rec.HWGS84)
	}
}

func TestDecodeStream_QNHCorrection(t *testing.T) {
	// FL030 below the transition altitude with a low QNH
	data := []byte{
		0x30, 0x00, 0x0C,
		0xE4, // FSPEC: FRN 1,2,3,6
		0xE0, 0x15,
		0x2C, 0x81, 0x74,
		0x20,
		0x00, 0x78, // I048/090 FL30
	}

	qnhVal := 1003.25
	opts := unified.Options{QNH: &qnhVal}
	result, err := unified.DecodeStream(context.Background(), data, opts)
	if err != nil {
		t.Fatalf("DecodeStream() error = %v", err)
	}
	if len(result.Records) != 1 {
		t.Fatalf("got %d records, want 1", len(result.Records))
	}

	rec := result.Records[0]
	if rec.QNHCorrectedAltitudeFt == nil || math.Abs(*rec.QNHCorrectedAltitudeFt-2727) > 1e-9 {
		t.Errorf("QNHCorrectedAltitudeFt = %v, want 2727", rec.QNHCorrectedAltitudeFt)
	}
	if rec.QNHCorrectedAltitudeM == nil || math.Abs(*rec.QNHCorrectedAltitudeM-2727*0.3048) > 1e-9 {
		t.Errorf("QNHCorrectedAltitudeM = %v, want %f", rec.QNHCorrectedAltitudeM, 2727*0.3048)
	}
}

func TestFieldNames(t *testing.T) {
	names := unified.FieldNames()
	if len(names) != 47 {
		t.Fatalf("schema has %d columns, want 47", len(names))
	}
	if names[0] != "Category" {
		t.Errorf("first column = %q, want Category", names[0])
	}
	if names[46] != "InertialVerticalVelocity" {
		t.Errorf("last column = %q, want InertialVerticalVelocity", names[46])
	}

	rec := unified.Record{Category: 48}
	values := rec.Values()
	if len(values) != len(names) {
		t.Fatalf("Values() returned %d cells for %d columns", len(values), len(names))
	}
	if values[0] != "48" {
		t.Errorf("Category cell = %q, want 48", values[0])
	}
	// Every optional field is absent and must render empty
	for i := 1; i < len(values); i++ {
		if values[i] != "" {
			t.Errorf("column %s = %q, want empty cell", names[i], values[i])
		}
	}
}
