package vector

import (
	"encoding/binary"
	"encoding/hex"
	"fmt"
	"math"
	"strings"

	"github.com/Columbina-Dev/vector-calculator/internal/faults"
)

const (
	// Dim is the component count of style and pitch vectors.
	Dim = 32
	// TimingDim is the component count of the timing vector.
	TimingDim = 128
	// HexLen is the encoded length of a Dim-component vector.
	HexLen = Dim * 8
	// TimingHexLen is the encoded length of the timing vector.
	TimingHexLen = TimingDim * 8
)

// Vector holds decoded float32 components.
type Vector []float32

// Decode parses a 256-character hex string into 32 floats.
func Decode(text string) (Vector, error) {
	return DecodeN(text, Dim)
}

// Encode renders exactly 32 floats as upper-case hex.
func Encode(v Vector) (string, error) {
	return EncodeN(v, Dim)
}

// DecodeN parses hex holding exactly n little-endian float32 values.
func DecodeN(text string, n int) (Vector, error) {
	if len(text) != n*8 {
		return nil, faults.Wrap(faults.ErrFormat, "vector", "decode",
			fmt.Sprintf("expected %d hex characters, got %d", n*8, len(text)), nil)
	}
	raw, err := hex.DecodeString(text)
	if err != nil {
		return nil, faults.Wrap(faults.ErrFormat, "vector", "decode", "invalid hex", err)
	}
	out := make(Vector, n)
	for i := range out {
		out[i] = math.Float32frombits(binary.LittleEndian.Uint32(raw[i*4:]))
	}
	return out, nil
}

// EncodeN renders exactly n floats as upper-case hex.
func EncodeN(v Vector, n int) (string, error) {
	if len(v) != n {
		return "", faults.Wrap(faults.ErrFormat, "vector", "encode",
			fmt.Sprintf("expected %d components, got %d", n, len(v)), nil)
	}
	raw := make([]byte, n*4)
	for i, f := range v {
		binary.LittleEndian.PutUint32(raw[i*4:], math.Float32bits(f))
	}
	return strings.ToUpper(hex.EncodeToString(raw)), nil
}

// FloatToHex8 renders one float32 as 8 upper-case hex characters.
func FloatToHex8(f float32) string {
	var raw [4]byte
	binary.LittleEndian.PutUint32(raw[:], math.Float32bits(f))
	return strings.ToUpper(hex.EncodeToString(raw[:]))
}

// Hex8ToFloat parses 8 hex characters as one little-endian float32.
func Hex8ToFloat(text string) (float32, error) {
	if !IsHex(text, 8) {
		return 0, faults.Wrap(faults.ErrFormat, "vector", "hex8",
			fmt.Sprintf("expected 8 hex characters, got %q", text), nil)
	}
	raw, err := hex.DecodeString(text)
	if err != nil {
		return 0, faults.Wrap(faults.ErrFormat, "vector", "hex8", "invalid hex", err)
	}
	return math.Float32frombits(binary.LittleEndian.Uint32(raw)), nil
}

// IsHex reports whether text is exactly length hex characters, in either case.
func IsHex(text string, length int) bool {
	if len(text) != length {
		return false
	}
	for i := 0; i < len(text); i++ {
		c := text[i]
		switch {
		case c >= '0' && c <= '9', c >= 'a' && c <= 'f', c >= 'A' && c <= 'F':
		default:
			return false
		}
	}
	return true
}

// Float64 widens v for mixing.
func (v Vector) Float64() []float64 {
	out := make([]float64, len(v))
	for i, f := range v {
		out[i] = float64(f)
	}
	return out
}

// FromFloat64 narrows mixed components back to float32 for encoding.
func FromFloat64(values []float64) Vector {
	out := make(Vector, len(values))
	for i, f := range values {
		out[i] = float32(f)
	}
	return out
}
