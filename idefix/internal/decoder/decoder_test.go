// internal/decoder/decoder_test.go
package decoder

import (
	"testing"

	"github.com/flightwave/asterix/asterix"
	"github.com/flightwave/asterix/cat/cat048"
)

func TestCreateDecoder_Cat048Version(t *testing.T) {
	config := Config{
		DumpCat048: true,
	}

	decoder, err := CreateDecoder(config)
	if err != nil {
		t.Fatalf("CreateDecoder failed: %v", err)
	}

	// Get the registered UAP for CAT048
	uap := decoder.GetUAP(asterix.Cat048)
	if uap == nil {
		t.Fatal("CAT048 UAP not registered")
	}

	// Verify it's version 1.32
	if uap.Version() != "1.32" {
		t.Errorf("Expected CAT048 version 1.32, got %s", uap.Version())
	}

	// Also verify using the constant
	expectedVersion := cat048.Version132
	if uap.Version() != expectedVersion {
		t.Errorf("Expected CAT048 version %s, got %s", expectedVersion, uap.Version())
	}

	// CAT021 must not be registered when not requested
	if decoder.GetUAP(asterix.Cat021) != nil {
		t.Error("CAT021 UAP registered without being selected")
	}
}

func TestCreateDecoder_AllCategories(t *testing.T) {
	config := Config{
		DumpAll: true,
	}

	decoder, err := CreateDecoder(config)
	if err != nil {
		t.Fatalf("CreateDecoder failed: %v", err)
	}

	if decoder.GetUAP(asterix.Cat021) == nil {
		t.Fatal("CAT021 UAP not registered with DumpAll")
	}
	if decoder.GetUAP(asterix.Cat048) == nil {
		t.Fatal("CAT048 UAP not registered with DumpAll")
	}
}

func TestCreateDecoder_NoSelection(t *testing.T) {
	if _, err := CreateDecoder(Config{}); err == nil {
		t.Error("expected error when no categories are selected")
	}
}
