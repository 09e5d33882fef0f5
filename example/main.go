// example/main.go
package main

import (
	"context"
	"fmt"
	"os"

	"github.com/flightwave/asterix/geo"
	"github.com/flightwave/asterix/unified"
)

// main demonstrates the DecodeStream entry point against a local .ast
// capture file: read the whole file (the decoder takes a byte slice,
// not a stream) and print the unified records it produces.
func main() {
	if len(os.Args) < 2 {
		fmt.Fprintf(os.Stderr, "usage: %s <file.ast>\n", os.Args[0])
		os.Exit(2)
	}

	data, err := os.ReadFile(os.Args[1])
	if err != nil {
		fmt.Fprintf(os.Stderr, "reading %s: %v\n", os.Args[1], err)
		os.Exit(1)
	}

	opts := unified.Options{
		RadarStation: &geo.RadarStation{
			Latitude:  50.0379,
			Longitude: 8.5622,
			HeightM:   150,
		},
	}

	result, err := unified.DecodeStream(context.Background(), data, opts)
	if err != nil {
		fmt.Fprintf(os.Stderr, "decode: %v\n", err)
		os.Exit(1)
	}

	for i, rec := range result.Records {
		fmt.Printf("record %d: cat=%d sac=%s sic=%s callsign=%s\n",
			i, rec.Category, derefU8(rec.SAC), derefU8(rec.SIC), derefStr(rec.Callsign))
	}
	for _, d := range result.Diagnostics {
		fmt.Fprintf(os.Stderr, "diagnostic: %s\n", d)
	}
}

func derefU8(v *uint8) string {
	if v == nil {
		return "-"
	}
	return fmt.Sprintf("%d", *v)
}

func derefStr(v *string) string {
	if v == nil {
		return "-"
	}
	return *v
}
