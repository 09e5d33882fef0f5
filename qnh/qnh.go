// qnh/qnh.go

// Package qnh corrects barometric pressure altitudes for non-standard
// altimeter settings. Transponders report altitude against the ISA
// standard pressure of 1013.25 hPa; below the transition altitude the
// true altitude differs when the local QNH deviates from standard.
package qnh

import "fmt"

const (
	// StandardPressureHPa is the ISA sea-level pressure
	StandardPressureHPa = 1013.25

	// FeetPerHPa is the pressure lapse applied per hectopascal of
	// QNH deviation
	FeetPerHPa = 27.3

	// DefaultTransitionAltitudeFt is used when the caller does not
	// supply a transition altitude
	DefaultTransitionAltitudeFt = 6000.0

	// FeetToMetres converts feet to metres
	FeetToMetres = 0.3048
)

// Altitude is a corrected altitude in both units
type Altitude struct {
	Feet   float64
	Metres float64
}

// Correct adjusts a reported pressure altitude (feet) for the local
// QNH (hPa). Below the transition altitude the correction
// (QNH - 1013.25) x 27.3 ft/hPa is applied; at or above it, or when
// qnh is nil, the altitude is returned unchanged. A zero
// transitionAltitudeFt selects DefaultTransitionAltitudeFt.
//
// The correction must be applied exactly once per report; Correct
// never re-derives or chains corrections internally.
func Correct(pressureAltitudeFt float64, qnh *float64, transitionAltitudeFt float64) Altitude {
	if transitionAltitudeFt == 0 {
		transitionAltitudeFt = DefaultTransitionAltitudeFt
	}

	corrected := pressureAltitudeFt
	if qnh != nil && pressureAltitudeFt < transitionAltitudeFt {
		corrected = pressureAltitudeFt + (*qnh-StandardPressureHPa)*FeetPerHPa
	}

	return Altitude{
		Feet:   corrected,
		Metres: corrected * FeetToMetres,
	}
}

// Validate rejects QNH values outside the range any real altimeter
// setting can take
func Validate(qnh float64) error {
	if qnh < 850 || qnh > 1100 {
		return fmt.Errorf("QNH out of plausible range [850,1100] hPa: %.2f", qnh)
	}
	return nil
}
