// unified/record.go

// Package unified drives the block-level decode of ASTERIX CAT021 and
// CAT048 data and assembles the decoded items, together with derived
// geographic and QNH-corrected values, into a flat record suitable for
// filtering and tabular export.
package unified

import (
	"fmt"
	"strconv"
)

// Record is the unified output entity. Every field other than
// Category is optional: a nil pointer means the source record did not
// carry the producing item, which is distinct from a present zero
// value. Records are fully owned; no field references the input
// buffer.
type Record struct {
	Category uint8

	// Identification
	SAC           *uint8
	SIC           *uint8
	RecordType    *string
	TrackNumber   *uint16
	TargetAddress *uint32 // 24-bit ICAO address
	Callsign      *string
	Mode3A        *string // Four octal digits
	Mode3AValid   *bool

	// Altitude and position
	FlightLevel *float64 // Units of 1 FL (100 ft)
	Latitude    *float64 // Degrees
	Longitude   *float64 // Degrees

	// Time
	TimeOfDay *string  // HH:MM:SS.mmm
	TimeSec   *float64 // Seconds since midnight UTC

	// Target characterization
	EmitterCategory *uint8
	SPI             *bool

	// Speeds and angles
	GroundSpeed       *float64 // Knots
	TrueAirspeed      *float64 // Knots
	IndicatedAirspeed *float64 // Knots
	Mach              *float64
	TrueTrackAngle    *float64 // Degrees
	MagneticHeading   *float64 // Degrees
	RollAngle         *float64 // Degrees
	TrackAngleRate    *float64 // Degrees/second

	// Vertical rates
	BarometricVerticalRate *float64 // Feet/minute
	GeometricVerticalRate  *float64 // Feet/minute

	// Intent
	SelectedAltitude          *float64 // Feet
	FMSSelectedAltitude       *float64 // Feet
	BarometricPressureSetting *float64 // hPa
	TargetAltitudeSource      *uint8

	// QNH-corrected altitude
	QNHCorrectedAltitudeFt *float64
	QNHCorrectedAltitudeM  *float64

	// Flags
	SimulatedTarget *bool
	TestTarget      *bool
	TargetStatus    *uint8
	MOPSVersion     *uint8
	ModeSRegisters  *string
	TrackConfirmed  *bool

	// ADS-B quality (CAT021 only)
	GeometricHeight *float64 // Feet
	NUCp            *uint8
	NACp            *uint8
	SIL             *uint8
	SDA             *uint8

	// Radar measurement and derivation (CAT048 only)
	RHO                      *float64 // Nautical miles
	THETA                    *float64 // Degrees
	HWGS84                   *float64 // Metres above the ellipsoid
	InertialVerticalVelocity *float64 // Feet/minute
}

// fieldNames is the export column order
var fieldNames = []string{
	"Category", "SAC", "SIC", "RecordType", "TrackNumber",
	"TargetAddress", "Callsign", "Mode3A", "Mode3AValid", "FlightLevel",
	"Latitude", "Longitude", "TimeOfDay", "TimeSec", "EmitterCategory",
	"SPI", "GroundSpeed", "TrueAirspeed", "IndicatedAirspeed", "Mach",
	"TrueTrackAngle", "MagneticHeading", "RollAngle", "TrackAngleRate",
	"BarometricVerticalRate", "GeometricVerticalRate", "SelectedAltitude",
	"FMSSelectedAltitude", "BarometricPressureSetting",
	"TargetAltitudeSource", "QNHCorrectedAltitudeFt",
	"QNHCorrectedAltitudeM", "SimulatedTarget", "TestTarget",
	"TargetStatus", "MOPSVersion", "ModeSRegisters", "TrackConfirmed",
	"GeometricHeight", "NUCp", "NACp", "SIL", "SDA", "RHO", "THETA",
	"H_WGS84", "InertialVerticalVelocity",
}

// FieldNames returns the unified schema's column names in export
// order. The returned slice is a copy.
func FieldNames() []string {
	names := make([]string, len(fieldNames))
	copy(names, fieldNames)
	return names
}

// Values renders the record as one cell per schema column, in
// FieldNames order. Absent fields render as empty strings.
func (r *Record) Values() []string {
	return []string{
		strconv.Itoa(int(r.Category)),
		fmtUint8(r.SAC),
		fmtUint8(r.SIC),
		fmtString(r.RecordType),
		fmtUint16(r.TrackNumber),
		fmtHex24(r.TargetAddress),
		fmtString(r.Callsign),
		fmtString(r.Mode3A),
		fmtBool(r.Mode3AValid),
		fmtFloat(r.FlightLevel, 2),
		fmtFloat(r.Latitude, 6),
		fmtFloat(r.Longitude, 6),
		fmtString(r.TimeOfDay),
		fmtFloat(r.TimeSec, 3),
		fmtUint8(r.EmitterCategory),
		fmtBool(r.SPI),
		fmtFloat(r.GroundSpeed, 1),
		fmtFloat(r.TrueAirspeed, 1),
		fmtFloat(r.IndicatedAirspeed, 1),
		fmtFloat(r.Mach, 3),
		fmtFloat(r.TrueTrackAngle, 2),
		fmtFloat(r.MagneticHeading, 2),
		fmtFloat(r.RollAngle, 2),
		fmtFloat(r.TrackAngleRate, 3),
		fmtFloat(r.BarometricVerticalRate, 0),
		fmtFloat(r.GeometricVerticalRate, 1),
		fmtFloat(r.SelectedAltitude, 0),
		fmtFloat(r.FMSSelectedAltitude, 0),
		fmtFloat(r.BarometricPressureSetting, 1),
		fmtUint8(r.TargetAltitudeSource),
		fmtFloat(r.QNHCorrectedAltitudeFt, 1),
		fmtFloat(r.QNHCorrectedAltitudeM, 1),
		fmtBool(r.SimulatedTarget),
		fmtBool(r.TestTarget),
		fmtUint8(r.TargetStatus),
		fmtUint8(r.MOPSVersion),
		fmtString(r.ModeSRegisters),
		fmtBool(r.TrackConfirmed),
		fmtFloat(r.GeometricHeight, 2),
		fmtUint8(r.NUCp),
		fmtUint8(r.NACp),
		fmtUint8(r.SIL),
		fmtUint8(r.SDA),
		fmtFloat(r.RHO, 3),
		fmtFloat(r.THETA, 3),
		fmtFloat(r.HWGS84, 1),
		fmtFloat(r.InertialVerticalVelocity, 0),
	}
}

func fmtUint8(v *uint8) string {
	if v == nil {
		return ""
	}
	return strconv.Itoa(int(*v))
}

func fmtUint16(v *uint16) string {
	if v == nil {
		return ""
	}
	return strconv.Itoa(int(*v))
}

func fmtHex24(v *uint32) string {
	if v == nil {
		return ""
	}
	return fmt.Sprintf("%06X", *v)
}

func fmtString(v *string) string {
	if v == nil {
		return ""
	}
	return *v
}

func fmtBool(v *bool) string {
	if v == nil {
		return ""
	}
	if *v {
		return "1"
	}
	return "0"
}

func fmtFloat(v *float64, prec int) string {
	if v == nil {
		return ""
	}
	return strconv.FormatFloat(*v, 'f', prec, 64)
}
