package recipe

import (
	"fmt"
	"strings"

	"github.com/Columbina-Dev/vector-calculator/internal/faults"
	"github.com/Columbina-Dev/vector-calculator/internal/jsondoc"
	"github.com/Columbina-Dev/vector-calculator/internal/vector"
	"github.com/Columbina-Dev/vector-calculator/internal/voicebank"
)

// DocumentLoader returns the modern document stored at path.
type DocumentLoader func(path string) (*jsondoc.Value, error)

// Options carries the configured defaults for Run.
type Options struct {
	DefaultBus  float64
	WeightLimit float64
	Load        DocumentLoader
}

// ResolvedChannel is a channel with its vector decoded.
type ResolvedChannel struct {
	Name   string
	Origin string
	Weight float64
	Vector vector.Vector
}

// Result is the outcome of a mix.
type Result struct {
	Channels []ResolvedChannel
	Bus      float64
	// Target is the requested magnitude, if any.
	Target    *float64
	SumAbs    float64
	Vector    vector.Vector
	Hex       string
	Magnitude float64
}

// ZeroWeight reports whether every channel weight was zero, in which case
// Vector is all zeros and not a meaningful mix.
func (r *Result) ZeroWeight() bool {
	return r.SumAbs == 0
}

// Run resolves every channel and mixes them.
func (r *Recipe) Run(opts Options) (*Result, error) {
	if opts.WeightLimit > 0 {
		if err := r.CheckWeights(opts.WeightLimit); err != nil {
			return nil, err
		}
	}
	channels, err := r.resolve(opts.Load)
	if err != nil {
		return nil, err
	}

	vectors := make([]vector.Vector, len(channels))
	weights := make([]float64, len(channels))
	for i, ch := range channels {
		vectors[i] = ch.Vector
		weights[i] = ch.Weight
	}
	mixed, sumAbs, err := vector.Mix(vectors, weights)
	if err != nil {
		return nil, err
	}

	bus := opts.DefaultBus
	if r.Bus != nil {
		bus = *r.Bus
	}
	out := vector.ApplyBus(mixed, bus)
	if r.Magnitude != nil && sumAbs != 0 {
		out = vector.SetMagnitude(out, *r.Magnitude)
	}

	result := &Result{
		Channels:  channels,
		Bus:       bus,
		Target:    r.Magnitude,
		SumAbs:    sumAbs,
		Vector:    vector.FromFloat64(out),
		Magnitude: vector.Magnitude(out),
	}
	result.Hex, err = vector.Encode(result.Vector)
	if err != nil {
		return nil, err
	}
	return result, nil
}

func (r *Recipe) resolve(load DocumentLoader) ([]ResolvedChannel, error) {
	docs := make(map[string]*jsondoc.Value)
	out := make([]ResolvedChannel, 0, len(r.Channels))
	for _, ch := range r.Channels {
		resolved := ResolvedChannel{Name: ch.Name, Weight: ch.Weight}
		if text := strings.TrimSpace(ch.Vector); text != "" {
			vec, err := vector.Decode(text)
			if err != nil {
				return nil, fmt.Errorf("%s: %w", ch.Name, err)
			}
			resolved.Vector = vec
			resolved.Origin = "vector"
			out = append(out, resolved)
			continue
		}

		source := r.SourcePath(ch)
		doc, ok := docs[source]
		if !ok {
			if load == nil {
				return nil, faults.Wrap(faults.ErrFormat, component, "resolve",
					fmt.Sprintf("%s: no document loader for style references", ch.Name), nil)
			}
			loaded, err := load(source)
			if err != nil {
				return nil, fmt.Errorf("%s: load %s: %w", ch.Name, source, err)
			}
			doc = loaded
			docs[source] = doc
		}
		style := strings.TrimSpace(ch.Style)
		vec, err := voicebank.StyleVectorOf(doc, style)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", ch.Name, err)
		}
		resolved.Vector = vec
		resolved.Origin = fmt.Sprintf("style %q in %s", style, source)
		out = append(out, resolved)
	}
	return out, nil
}
