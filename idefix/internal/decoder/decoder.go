// internal/decoder/decoder.go
package decoder

import (
	"fmt"

	"github.com/flightwave/asterix/asterix"
	"github.com/flightwave/asterix/cat/cat021"
	"github.com/flightwave/asterix/cat/cat048"
)

// Config represents decoder configuration options
type Config struct {
	DumpAll    bool
	DumpCat021 bool
	DumpCat048 bool
}

// CreateDecoder creates and configures a decoder with the specified UAPs
func CreateDecoder(config Config) (*asterix.Decoder, error) {
	var uaps []asterix.UAP

	if config.DumpAll || config.DumpCat021 {
		uap021, err := cat021.NewUAP(cat021.Version26)
		if err != nil {
			return nil, fmt.Errorf("failed to initialize Cat021 UAP: %w", err)
		}
		uaps = append(uaps, uap021)
	}

	if config.DumpAll || config.DumpCat048 {
		uap048, err := cat048.NewUAP(cat048.Version132)
		if err != nil {
			return nil, fmt.Errorf("failed to initialize Cat048 UAP: %w", err)
		}
		uaps = append(uaps, uap048)
	}

	if len(uaps) == 0 {
		return nil, fmt.Errorf("no categories selected, use --dumpAll or specify categories")
	}

	return asterix.NewDecoder(uaps...)
}
