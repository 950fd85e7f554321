package recipe

import (
	"bytes"
	"fmt"
	"math"
	"os"
	"path/filepath"
	"strings"

	"github.com/pelletier/go-toml/v2"

	"github.com/Columbina-Dev/vector-calculator/internal/faults"
)

const component = "recipe"

// Channel is one weighted input of a recipe.
type Channel struct {
	Name   string  `toml:"name"`
	Vector string  `toml:"vector"`
	Style  string  `toml:"style"`
	Source string  `toml:"source"`
	Weight float64 `toml:"weight"`
}

// Recipe describes a mix.
type Recipe struct {
	// Bus is the bus percentage; nil means the configured default.
	Bus *float64 `toml:"bus"`
	// Magnitude is the target norm of the result; nil leaves it unscaled.
	Magnitude *float64 `toml:"magnitude"`
	// Source is the default document for style channels.
	Source   string    `toml:"source"`
	Channels []Channel `toml:"channel"`

	dir string
}

// Load reads and checks the recipe at path.
func Load(path string) (*Recipe, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read recipe: %w", err)
	}
	return Parse(data, filepath.Dir(path))
}

// Parse decodes recipe TOML. dir anchors relative source paths.
func Parse(data []byte, dir string) (*Recipe, error) {
	var r Recipe
	decoder := toml.NewDecoder(bytes.NewReader(data))
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(&r); err != nil {
		return nil, faults.Wrap(faults.ErrFormat, component, "parse", "invalid recipe TOML", err)
	}
	r.dir = dir
	if err := r.check(); err != nil {
		return nil, err
	}
	return &r, nil
}

func (r *Recipe) check() error {
	if len(r.Channels) == 0 {
		return faults.Wrap(faults.ErrFormat, component, "parse", "recipe has no [[channel]] entries", nil)
	}
	if r.Bus != nil && !finite(*r.Bus) {
		return faults.Wrap(faults.ErrFormat, component, "parse", "bus must be a finite number", nil)
	}
	if r.Magnitude != nil && !finite(*r.Magnitude) {
		return faults.Wrap(faults.ErrFormat, component, "parse", "magnitude must be a finite number", nil)
	}
	for i := range r.Channels {
		ch := &r.Channels[i]
		ch.Name = strings.TrimSpace(ch.Name)
		if ch.Name == "" {
			ch.Name = fmt.Sprintf("channel %d", i+1)
		}
		hasVector := strings.TrimSpace(ch.Vector) != ""
		hasStyle := strings.TrimSpace(ch.Style) != ""
		switch {
		case hasVector == hasStyle:
			return faults.Wrap(faults.ErrFormat, component, "parse",
				fmt.Sprintf("%s: set exactly one of vector or style", ch.Name), nil)
		case hasVector && ch.Source != "":
			return faults.Wrap(faults.ErrFormat, component, "parse",
				fmt.Sprintf("%s: source only applies to style channels", ch.Name), nil)
		case hasStyle && ch.Source == "" && r.Source == "":
			return faults.Wrap(faults.ErrFormat, component, "parse",
				fmt.Sprintf("%s: style channel needs a source document", ch.Name), nil)
		}
		if !finite(ch.Weight) {
			return faults.Wrap(faults.ErrFormat, component, "parse",
				fmt.Sprintf("%s: weight must be a finite number", ch.Name), nil)
		}
	}
	return nil
}

// CheckWeights rejects channel weights outside [-limit, limit].
func (r *Recipe) CheckWeights(limit float64) error {
	for _, ch := range r.Channels {
		if math.Abs(ch.Weight) > limit {
			return faults.Wrap(faults.ErrFormat, component, "weights",
				fmt.Sprintf("%s: weight %g is outside [-%g, %g]", ch.Name, ch.Weight, limit, limit), nil)
		}
	}
	return nil
}

// SourcePath returns the document path a style channel reads from.
func (r *Recipe) SourcePath(ch Channel) string {
	source := ch.Source
	if source == "" {
		source = r.Source
	}
	if source == "" || source == "-" || filepath.IsAbs(source) || strings.HasPrefix(source, "~") {
		return source
	}
	return filepath.Join(r.dir, source)
}

func finite(f float64) bool {
	return !math.IsNaN(f) && !math.IsInf(f, 0)
}
