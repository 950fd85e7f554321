package testsupport

import (
	"math/rand/v2"

	"github.com/Columbina-Dev/vector-calculator/internal/vector"
)

// NewRand returns a deterministic generator for the given seed.
func NewRand(seed uint64) *rand.Rand {
	return rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
}

// RandomVector returns n finite float32 values in [-scale, scale).
func RandomVector(r *rand.Rand, n int, scale float32) vector.Vector {
	out := make(vector.Vector, n)
	for i := range out {
		out[i] = (r.Float32()*2 - 1) * scale
	}
	return out
}

// UniformVector returns n copies of value.
func UniformVector(n int, value float32) vector.Vector {
	out := make(vector.Vector, n)
	for i := range out {
		out[i] = value
	}
	return out
}
