package vector

import (
	"fmt"
	"math"

	"github.com/Columbina-Dev/vector-calculator/internal/faults"
)

// Mix combines vectors under weights. Each output component is the weighted
// sum divided by the total absolute weight, so opposite-sign weights never
// shrink the denominator. When every weight is zero the result is the zero
// vector with sumAbs 0; callers must report that rather than treat it as a
// valid mix.
func Mix(vectors []Vector, weights []float64) ([]float64, float64, error) {
	if len(vectors) != len(weights) {
		return nil, 0, faults.Wrap(faults.ErrLengthMismatch, "mixer", "mix",
			fmt.Sprintf("%d vectors but %d weights", len(vectors), len(weights)), nil)
	}
	for i, v := range vectors {
		if len(v) != Dim {
			return nil, 0, faults.Wrap(faults.ErrLengthMismatch, "mixer", "mix",
				fmt.Sprintf("vector %d has %d components, want %d", i, len(v), Dim), nil)
		}
	}

	var sumAbs float64
	for _, w := range weights {
		sumAbs += math.Abs(w)
	}
	out := make([]float64, Dim)
	if sumAbs == 0 {
		return out, 0, nil
	}
	for i, v := range vectors {
		w := weights[i]
		for j := 0; j < Dim; j++ {
			out[j] += w * float64(v[j])
		}
	}
	for j := range out {
		out[j] /= sumAbs
	}
	return out, sumAbs, nil
}

// ApplyBus scales every component by busPercent/100.
func ApplyBus(vec []float64, busPercent float64) []float64 {
	scale := busPercent / 100
	out := make([]float64, len(vec))
	for i, f := range vec {
		out[i] = f * scale
	}
	return out
}

// Magnitude returns the Euclidean norm of vec.
func Magnitude(vec []float64) float64 {
	var sum float64
	for _, f := range vec {
		sum += f * f
	}
	return math.Sqrt(sum)
}

// SetMagnitude rescales vec to the norm |target|, pointing along vec for a
// positive target and against it for a negative one. A negative zero target
// counts as negative. A zero vector cannot be rescaled and yields zeros.
func SetMagnitude(vec []float64, target float64) []float64 {
	out := make([]float64, len(vec))
	m := Magnitude(vec)
	if m == 0 {
		return out
	}
	sign := 1.0
	if target < 0 || math.Signbit(target) {
		sign = -1
	}
	scale := math.Abs(target) * sign / m
	for i, f := range vec {
		out[i] = f * scale
	}
	return out
}
