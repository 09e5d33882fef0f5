package flightwave

// package flightwave provides a pure Go implementation of the ASTERIX
// (All Purpose STructured EUROCONTROL SurveIllance Information EXchange)
// data format for categories 021 and 048, together with the pipeline
// that turns decoded surveillance reports into unified tabular records.
//
// ASTERIX is used in Air Traffic Management for exchanging surveillance data.
// This package aims to provide a safe and efficient implementation for
// decoding ASTERIX data and deriving geographic positions from radar
// measurements.
// Version information
const (
	Version = "0.1.0"
)
