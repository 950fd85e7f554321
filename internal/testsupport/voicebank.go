package testsupport

import (
	"strings"
	"testing"

	"github.com/Columbina-Dev/vector-calculator/internal/jsondoc"
)

// Vector fixtures. PitchHex is 32 x 1.0, StyleHex 32 x 0.25 and TimingHex
// 128 x 0.5, all little-endian float32.
var (
	PitchHex  = strings.Repeat("0000803F", 32)
	StyleHex  = strings.Repeat("0000803E", 32)
	TimingHex = strings.Repeat("0000003F", 128)
)

// Model ids accepted by the validator.
const (
	BaseModelID   = "3f9a1c0e7b2d4e6f8a0b1c2d3e4f5a6b"
	SingModelID   = "a41f0c9e2b7d4a8e9c3b5d7f1e2a4c6d"
	TimingModelID = "5e7c9a1b3d2f4e6a8c0b2d4f6e8a0c1e"
	F0ModelID     = "c6a4e2f0d8b64a1c9e7f5d3b1a0c2e4f"
)

// ValidConfigJSON returns a modern voice bank document that passes
// validation with no errors and no warnings.
func ValidConfigJSON() string {
	return `{
  "name": "Aria",
  "version": "2b1",
  "vendor": "Columbina",
  "language": "japanese",
  "phoneset": "romaji",
  "support_languages": ["japanese", "english"],
  "base_model": "` + BaseModelID + `",
  "sing_model": "` + SingModelID + `",
  "timing_model": "` + TimingModelID + `",
  "f0_model": "` + F0ModelID + `",
  "styles": [
    {"name": "soft", "data": "` + StyleHex + `", "extra": 0.5},
    {"name": "power", "data": "` + PitchHex + `"}
  ],
  "pitch": "` + PitchHex + `",
  "timing": "` + TimingHex + `"
}`
}

// ValidConfigDocument parses ValidConfigJSON into a fresh tree.
func ValidConfigDocument(t testing.TB) *jsondoc.Value {
	t.Helper()

	doc, err := jsondoc.ParseString(ValidConfigJSON())
	if err != nil {
		t.Fatalf("parse fixture: %v", err)
	}
	return doc
}

// MustParse parses JSON text or fails the test.
func MustParse(t testing.TB, text string) *jsondoc.Value {
	t.Helper()

	doc, err := jsondoc.ParseString(text)
	if err != nil {
		t.Fatalf("parse %q: %v", text, err)
	}
	return doc
}
