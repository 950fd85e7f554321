// Package vector converts voice bank parameter vectors between their hex
// wire form and float32 components, and mixes decoded vectors.
//
// A vector is stored as consecutive little-endian IEEE-754 single precision
// floats rendered as upper-case hex: 32 floats become 256 characters for
// style data and pitch, 128 floats become 1024 characters for timing. The
// codec reinterprets bytes directly, so signed zeros and NaN payloads survive
// a decode/encode cycle unchanged.
//
// The mixer works in float64: Mix takes a weighted average normalized by the
// total absolute weight, ApplyBus applies the final percentage, and
// SetMagnitude retargets the Euclidean norm while honouring the sign of a
// negative zero target.
package vector
