// unified/assemble.go
package unified

import (
	"fmt"
	"math"

	"github.com/flightwave/asterix/asterix"
	v26 "github.com/flightwave/asterix/cat/cat021/dataitems/v26"
	v132 "github.com/flightwave/asterix/cat/cat048/dataitems/v132"
	common "github.com/flightwave/asterix/cat/common/dataitems"
	"github.com/flightwave/asterix/geo"
	"github.com/flightwave/asterix/qnh"
)

const nmToMetres = 1852.0

// assembler merges the decoded item map of one record with derived
// geographic and QNH-corrected values into a Record
type assembler struct {
	opts        Options
	transformer *geo.Transformer // nil when no radar station configured
}

func newAssembler(opts Options) (*assembler, error) {
	a := &assembler{opts: opts}
	if opts.RadarStation != nil {
		tr, err := geo.NewTransformer(*opts.RadarStation)
		if err != nil {
			return nil, fmt.Errorf("radar station: %w", err)
		}
		a.transformer = tr
	}
	return a, nil
}

// assemble builds a Record from a decoded item map. Diagnostics carry
// the given block offset. Field-level derivation failures suppress
// the affected fields but never discard the record.
func (a *assembler) assemble(cat asterix.Category, items map[string]asterix.DataItem, offset int) (Record, []Diagnostic) {
	rec := Record{Category: uint8(cat)}
	var diags []Diagnostic

	switch cat {
	case asterix.Cat021:
		a.assembleCat021(&rec, items)
	case asterix.Cat048:
		diags = a.assembleCat048(&rec, items, offset)
	}

	return rec, diags
}

func (a *assembler) assembleCat021(rec *Record, items map[string]asterix.DataItem) {
	recordType := "ADS-B"
	rec.RecordType = &recordType

	if ds, ok := items["I021/010"].(*common.DataSourceIdentifier); ok {
		rec.SAC = ptr(ds.SAC)
		rec.SIC = ptr(ds.SIC)
	}

	if trd, ok := items["I021/040"].(*v26.TargetReportDescriptor); ok {
		rec.SimulatedTarget = ptr(trd.SIM)
		rec.TestTarget = ptr(trd.TST)
		rec.SPI = ptr(trd.SPI)
	}

	if ta, ok := items["I021/080"].(*v26.TargetAddress); ok {
		rec.TargetAddress = ptr(ta.Address)
	}

	if id, ok := items["I021/170"].(*v26.TargetIdentification); ok {
		rec.Callsign = ptr(id.Ident)
	}

	if m3a, ok := items["I021/070"].(*v26.Mode3ACode); ok {
		rec.Mode3A = ptr(m3a.Code)
		rec.Mode3AValid = ptr(m3a.Valid)
	}

	if pos, ok := items["I021/130"].(*common.Position); ok {
		rec.Latitude = ptr(pos.Latitude)
		rec.Longitude = ptr(pos.Longitude)
	}

	if fl, ok := items["I021/145"].(*common.FlightLevel); ok {
		rec.FlightLevel = ptr(fl.Value)
	}

	a.setCat021Time(rec, items)

	if ec, ok := items["I021/020"].(*v26.EmitterCategory); ok {
		rec.EmitterCategory = ptr(uint8(ec.ECAT))
	}

	if qi, ok := items["I021/090"].(*v26.QualityIndicators); ok {
		rec.NUCp = ptr(qi.NUCp_NIC)
		rec.NACp = ptr(qi.NACp)
		rec.SIL = ptr(qi.SIL)
		rec.SDA = ptr(qi.SDA)
	}

	if gh, ok := items["I021/140"].(*v26.GeometricHeight); ok {
		rec.GeometricHeight = ptr(gh.Height)
	}

	if sa, ok := items["I021/146"].(*v26.SelectedAltitude); ok {
		rec.SelectedAltitude = ptr(sa.Altitude)
		rec.TargetAltitudeSource = ptr(sa.Source)
	}

	if as, ok := items["I021/150"].(*v26.AirSpeed); ok {
		if as.IsMach {
			rec.Mach = ptr(as.Speed)
		} else {
			rec.IndicatedAirspeed = ptr(as.Speed)
		}
	}

	if tas, ok := items["I021/151"].(*v26.TrueAirSpeed); ok {
		rec.TrueAirspeed = ptr(tas.Speed)
	}

	if mh, ok := items["I021/152"].(*v26.MagneticHeading); ok {
		rec.MagneticHeading = ptr(mh.Heading)
	}

	if bvr, ok := items["I021/155"].(*v26.BarometricVerticalRate); ok {
		rec.BarometricVerticalRate = ptr(float64(bvr.Rate))
	}

	if gvr, ok := items["I021/157"].(*v26.GeometricVerticalRate); ok {
		rec.GeometricVerticalRate = ptr(gvr.Rate)
	}

	if gv, ok := items["I021/160"].(*v26.AirborneGroundVector); ok {
		rec.GroundSpeed = ptr(gv.GroundSpeed)
		rec.TrueTrackAngle = ptr(gv.TrackAngle)
	}

	if tar, ok := items["I021/165"].(*v26.TrackAngleRate); ok {
		rec.TrackAngleRate = ptr(tar.Rate)
	}

	if ra, ok := items["I021/230"].(*v26.RollAngle); ok {
		rec.RollAngle = ptr(ra.Angle)
	}

	if ts, ok := items["I021/200"].(*v26.TargetStatus); ok {
		rec.TargetStatus = ptr(ts.SS)
	}

	if mv, ok := items["I021/210"].(*v26.MOPSVersion); ok {
		rec.MOPSVersion = ptr(mv.VN)
	}
}

// setCat021Time prefers the time of message reception for position,
// refined by the high-precision fraction when transmitted, and falls
// back to time of applicability and time of report transmission
func (a *assembler) setCat021Time(rec *Record, items map[string]asterix.DataItem) {
	var seconds float64
	found := false

	if t, ok := items["I021/073"].(*v26.TimeOfMessageReceptionPosition); ok {
		seconds = t.Time
		found = true

		if hp, ok := items["I021/074"].(*v26.TimeOfMessageReceptionPositionHigh); ok {
			whole := math.Floor(seconds)
			switch hp.FSI {
			case v26.FSIOneSecondMore:
				whole++
			case v26.FSIOneSecondLess:
				whole--
			}
			seconds = whole + hp.FractionalTime
		}
	} else if t, ok := items["I021/071"].(*v26.TimeOfApplicabilityPosition); ok {
		seconds = t.Time
		found = true
	} else if t, ok := items["I021/077"].(*v26.TimeOfReportTransmission); ok {
		seconds = t.Time
		found = true
	}

	if found {
		setTime(rec, seconds)
	}
}

func (a *assembler) assembleCat048(rec *Record, items map[string]asterix.DataItem, offset int) []Diagnostic {
	var diags []Diagnostic

	if ds, ok := items["I048/010"].(*common.DataSourceIdentifier); ok {
		rec.SAC = ptr(ds.SAC)
		rec.SIC = ptr(ds.SIC)
	}

	if tod, ok := items["I048/140"].(*v132.TimeOfDay); ok {
		setTime(rec, tod.Time)
	}

	if trd, ok := items["I048/020"].(*v132.TargetReportDescriptor); ok {
		rec.RecordType = ptr(detectionType(trd.TYP))
		rec.SimulatedTarget = ptr(trd.SIM)
		rec.TestTarget = ptr(trd.TST)
		rec.SPI = ptr(trd.SPI)
	}

	if m3a, ok := items["I048/070"].(*v132.Mode3ACode); ok {
		rec.Mode3A = ptr(fmt.Sprintf("%04d", m3a.Code))
		rec.Mode3AValid = ptr(m3a.V)
	}

	var flightLevel *float64
	if fl, ok := items["I048/090"].(*v132.FlightLevel); ok {
		flightLevel = ptr(fl.Level)
		rec.FlightLevel = flightLevel
	}

	if tn, ok := items["I048/161"].(*v132.TrackNumber); ok {
		rec.TrackNumber = ptr(tn.Value)
	}

	if ts, ok := items["I048/170"].(*v132.TrackStatus); ok {
		// CNF is set for tentative tracks
		rec.TrackConfirmed = ptr(!ts.CNF)
	}

	if aa, ok := items["I048/220"].(*v132.AircraftAddress); ok {
		rec.TargetAddress = ptr(aa.Address)
	}

	if ai, ok := items["I048/240"].(*v132.AircraftIdentification); ok {
		rec.Callsign = ptr(ai.Ident)
	}

	// QNH correction applies to the barometric flight level below the
	// transition altitude
	if flightLevel != nil {
		corrected := qnh.Correct(*flightLevel*100.0, a.opts.QNH, a.opts.TransitionAltitudeFt)
		rec.QNHCorrectedAltitudeFt = ptr(corrected.Feet)
		rec.QNHCorrectedAltitudeM = ptr(corrected.Metres)
	}

	if mp, ok := items["I048/040"].(*v132.MeasuredPosition); ok {
		rec.RHO = ptr(mp.RHO)
		rec.THETA = ptr(mp.THETA)

		// Geographic derivation needs the station, the polar
		// measurement and an altitude for the line-of-sight solution
		if a.transformer != nil && rec.QNHCorrectedAltitudeM != nil {
			lat, lon, h, err := a.transformer.ToGeographic(
				mp.RHO*nmToMetres,
				mp.THETA*math.Pi/180.0,
				*rec.QNHCorrectedAltitudeM,
			)
			if err != nil {
				diags = append(diags, Diagnostic{
					Kind:     CoordConvergence,
					Offset:   offset,
					Category: asterix.Cat048,
					Detail:   err.Error(),
				})
			} else {
				rec.Latitude = ptr(lat)
				rec.Longitude = ptr(lon)
				rec.HWGS84 = ptr(h)
			}
		}
	}

	if bds, ok := items["I048/250"].(*v132.BDSRegisterData); ok {
		diags = append(diags, a.assembleBDS(rec, bds, offset)...)
	}

	return diags
}

// assembleBDS copies the decoded registers 4,0 / 5,0 / 6,0 into the
// record and accumulates every seen register code into ModeSRegisters.
// A register whose status bits are all clear contributes its code
// only. A field whose status bit is set but whose value failed the
// register's range check is suppressed and reported.
func (a *assembler) assembleBDS(rec *Record, bds *v132.BDSRegisterData, offset int) []Diagnostic {
	var diags []Diagnostic
	var codes string

	outOfRange := func(field string) {
		diags = append(diags, Diagnostic{
			Kind:     BDSFieldOutOfRange,
			Offset:   offset,
			Category: asterix.Cat048,
			Detail:   field,
		})
	}

	for _, reg := range bds.Registers {
		if codes != "" {
			codes += " "
		}
		codes += fmt.Sprintf("%X%X", reg.BDS1, reg.BDS2)

		switch {
		case reg.BDS1 == 4 && reg.BDS2 == 0:
			data, err := v132.DecodeBDS40(reg.Data)
			if err != nil {
				continue
			}
			if data.MCPFCUSelectedAltitude != nil {
				rec.SelectedAltitude = ptr(float64(*data.MCPFCUSelectedAltitude))
			} else if reg.Data[0]&0x80 != 0 {
				outOfRange("BDS 4,0 MCP/FCU selected altitude")
			}
			if data.FMSSelectedAltitude != nil {
				rec.FMSSelectedAltitude = ptr(float64(*data.FMSSelectedAltitude))
			} else if reg.Data[1]&0x04 != 0 {
				outOfRange("BDS 4,0 FMS selected altitude")
			}
			if data.BarometricPressureSetting != nil {
				rec.BarometricPressureSetting = data.BarometricPressureSetting
			} else if reg.Data[3]&0x20 != 0 {
				outOfRange("BDS 4,0 barometric pressure setting")
			}

		case reg.BDS1 == 5 && reg.BDS2 == 0:
			data, err := v132.DecodeBDS50(reg.Data)
			if err != nil {
				continue
			}
			if data.RollAngle != nil {
				rec.RollAngle = data.RollAngle
			} else if reg.Data[0]&0x80 != 0 {
				outOfRange("BDS 5,0 roll angle")
			}
			if data.TrueTrackAngle != nil {
				rec.TrueTrackAngle = data.TrueTrackAngle
			} else if reg.Data[1]&0x10 != 0 {
				outOfRange("BDS 5,0 true track angle")
			}
			if data.GroundSpeed != nil {
				rec.GroundSpeed = data.GroundSpeed
			} else if reg.Data[2]&0x02 != 0 {
				outOfRange("BDS 5,0 ground speed")
			}
			if data.TrackAngleRate != nil {
				rec.TrackAngleRate = data.TrackAngleRate
			} else if reg.Data[4]&0x40 != 0 {
				outOfRange("BDS 5,0 track angle rate")
			}
			if data.TrueAirspeed != nil {
				rec.TrueAirspeed = data.TrueAirspeed
			} else if reg.Data[5]&0x10 != 0 {
				outOfRange("BDS 5,0 true airspeed")
			}

		case reg.BDS1 == 6 && reg.BDS2 == 0:
			data, err := v132.DecodeBDS60(reg.Data)
			if err != nil {
				continue
			}
			if data.MagneticHeading != nil {
				rec.MagneticHeading = data.MagneticHeading
			} else if reg.Data[0]&0x80 != 0 {
				outOfRange("BDS 6,0 magnetic heading")
			}
			if data.IndicatedAirspeed != nil {
				rec.IndicatedAirspeed = data.IndicatedAirspeed
			} else if reg.Data[1]&0x08 != 0 {
				outOfRange("BDS 6,0 indicated airspeed")
			}
			if data.MachNumber != nil {
				rec.Mach = data.MachNumber
			} else if reg.Data[2]&0x01 != 0 {
				outOfRange("BDS 6,0 Mach number")
			}
			if data.BarometricAltitudeRate != nil {
				rec.BarometricVerticalRate = ptr(float64(*data.BarometricAltitudeRate))
			} else if reg.Data[4]&0x20 != 0 {
				outOfRange("BDS 6,0 barometric altitude rate")
			}
			if data.InertialVerticalVelocity != nil {
				rec.InertialVerticalVelocity = ptr(float64(*data.InertialVerticalVelocity))
			} else if reg.Data[5]&0x04 != 0 {
				outOfRange("BDS 6,0 inertial vertical velocity")
			}
		}
	}

	if codes != "" {
		rec.ModeSRegisters = &codes
	}

	return diags
}

// setTime fills both time representations from seconds since midnight
func setTime(rec *Record, seconds float64) {
	rec.TimeSec = ptr(seconds)

	totalMs := int(math.Round(seconds * 1000))
	hours := totalMs / 3600000 % 24
	minutes := totalMs / 60000 % 60
	secs := totalMs / 1000 % 60
	millis := totalMs % 1000

	formatted := fmt.Sprintf("%02d:%02d:%02d.%03d", hours, minutes, secs, millis)
	rec.TimeOfDay = &formatted
}

// detectionType maps the I048/020 TYP field to a readable record type
func detectionType(typ uint8) string {
	switch typ {
	case 0:
		return "No detection"
	case 1:
		return "PSR"
	case 2:
		return "SSR"
	case 3:
		return "SSR+PSR"
	case 4:
		return "Mode S All-Call"
	case 5:
		return "Mode S Roll-Call"
	case 6:
		return "Mode S All-Call + PSR"
	case 7:
		return "Mode S Roll-Call + PSR"
	default:
		return "Unknown"
	}
}

func ptr[T any](v T) *T {
	return &v
}
