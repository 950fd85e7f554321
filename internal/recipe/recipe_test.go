package recipe_test

import (
	"errors"
	"math"
	"path/filepath"
	"strings"
	"testing"

	"github.com/Columbina-Dev/vector-calculator/internal/faults"
	"github.com/Columbina-Dev/vector-calculator/internal/jsondoc"
	"github.com/Columbina-Dev/vector-calculator/internal/recipe"
	"github.com/Columbina-Dev/vector-calculator/internal/testsupport"
)

func parse(t *testing.T, text string) *recipe.Recipe {
	t.Helper()
	r, err := recipe.Parse([]byte(text), "/recipes")
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	return r
}

func bankLoader(t *testing.T, calls *int) recipe.DocumentLoader {
	return func(path string) (*jsondoc.Value, error) {
		if calls != nil {
			*calls++
		}
		return testsupport.ValidConfigDocument(t), nil
	}
}

func TestRunMixesStylesByAbsoluteWeight(t *testing.T) {
	r := parse(t, `
source = "bank.nofs"

[[channel]]
name = "soft"
style = "soft"
weight = 25

[[channel]]
name = "power"
style = "power"
weight = 75
`)
	calls := 0
	result, err := r.Run(recipe.Options{DefaultBus: 100, WeightLimit: 100, Load: bankLoader(t, &calls)})
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if calls != 1 {
		t.Fatalf("expected the shared source to load once, got %d loads", calls)
	}
	if result.SumAbs != 100 {
		t.Fatalf("expected sumAbs 100, got %v", result.SumAbs)
	}
	// (0.25*25 + 1.0*75) / 100 = 0.8125
	if want := strings.Repeat("0000503F", 32); result.Hex != want {
		t.Fatalf("unexpected hex %s", result.Hex)
	}
	if result.Bus != 100 {
		t.Fatalf("expected default bus 100, got %v", result.Bus)
	}
	if len(result.Channels) != 2 || !strings.Contains(result.Channels[0].Origin, "bank.nofs") {
		t.Fatalf("unexpected channels %+v", result.Channels)
	}
}

func TestRunAppliesBusAfterMix(t *testing.T) {
	r := parse(t, `
bus = 50
source = "bank.json"

[[channel]]
style = "soft"
weight = 1

[[channel]]
style = "power"
weight = 3
`)
	result, err := r.Run(recipe.Options{DefaultBus: 100, Load: bankLoader(t, nil)})
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	// 0.8125 * 0.5 = 0.40625
	if want := strings.Repeat("0000D03E", 32); result.Hex != want {
		t.Fatalf("unexpected hex %s", result.Hex)
	}
	if result.Channels[0].Name != "channel 1" {
		t.Fatalf("expected generated channel name, got %q", result.Channels[0].Name)
	}
}

func TestRunSetsTargetMagnitude(t *testing.T) {
	r := parse(t, `
magnitude = -2

[[channel]]
name = "flat"
vector = "`+testsupport.PitchHex+`"
weight = 10
`)
	result, err := r.Run(recipe.Options{DefaultBus: 100})
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if math.Abs(result.Magnitude-2) > 1e-6 {
		t.Fatalf("expected magnitude 2, got %v", result.Magnitude)
	}
	for i, f := range result.Vector {
		if f >= 0 {
			t.Fatalf("component %d should point against the input, got %v", i, f)
		}
	}
	if result.Target == nil || *result.Target != -2 {
		t.Fatalf("expected target -2, got %v", result.Target)
	}
}

func TestRunNegativeWeightFlipsDirection(t *testing.T) {
	r := parse(t, `
[[channel]]
vector = "`+testsupport.PitchHex+`"
weight = -40
`)
	result, err := r.Run(recipe.Options{DefaultBus: 100})
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if want := strings.Repeat("000080BF", 32); result.Hex != want {
		t.Fatalf("unexpected hex %s", result.Hex)
	}
}

func TestRunZeroWeightYieldsZeroVector(t *testing.T) {
	r := parse(t, `
magnitude = 3

[[channel]]
vector = "`+testsupport.PitchHex+`"
weight = 0
`)
	result, err := r.Run(recipe.Options{DefaultBus: 100})
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if !result.ZeroWeight() {
		t.Fatal("expected ZeroWeight to be reported")
	}
	if result.Hex != strings.Repeat("00000000", 32) || result.Magnitude != 0 {
		t.Fatalf("expected zero vector, got %s (magnitude %v)", result.Hex, result.Magnitude)
	}
}

func TestRunRejectsWeightsOutsideLimit(t *testing.T) {
	r := parse(t, `
[[channel]]
name = "loud"
vector = "`+testsupport.PitchHex+`"
weight = -150
`)
	_, err := r.Run(recipe.Options{DefaultBus: 100, WeightLimit: 100})
	if !errors.Is(err, faults.ErrFormat) {
		t.Fatalf("expected format error, got %v", err)
	}
	if !strings.Contains(err.Error(), "loud") {
		t.Fatalf("expected channel name in error, got %v", err)
	}
}

func TestRunReportsMissingStyle(t *testing.T) {
	r := parse(t, `
source = "bank.json"

[[channel]]
style = "whisper"
weight = 1
`)
	_, err := r.Run(recipe.Options{DefaultBus: 100, Load: bankLoader(t, nil)})
	if !errors.Is(err, faults.ErrFormat) || !strings.Contains(err.Error(), "whisper") {
		t.Fatalf("expected missing style format error, got %v", err)
	}
}

func TestRunToleratesDriftInSiblingStyles(t *testing.T) {
	r := parse(t, `
source = "bank.json"

[[channel]]
style = "soft"
weight = 1
`)
	load := func(string) (*jsondoc.Value, error) {
		doc := testsupport.ValidConfigDocument(t)
		styles, _ := doc.Get("styles")
		styles.Items()[1].Set("extra", jsondoc.String("0000803F"))
		return doc, nil
	}
	result, err := r.Run(recipe.Options{DefaultBus: 100, Load: load})
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if result.Hex != testsupport.StyleHex {
		t.Fatalf("expected the soft style vector, got %s", result.Hex)
	}
}

func TestRunPropagatesLoaderError(t *testing.T) {
	r := parse(t, `
source = "bank.nofs"

[[channel]]
style = "soft"
weight = 1
`)
	loadErr := faults.Wrap(faults.ErrIntegrity, "container", "decrypt", "magic", nil)
	_, err := r.Run(recipe.Options{Load: func(string) (*jsondoc.Value, error) { return nil, loadErr }})
	if !errors.Is(err, faults.ErrIntegrity) {
		t.Fatalf("expected integrity error, got %v", err)
	}
}

func TestParseRejectsMalformedRecipes(t *testing.T) {
	cases := []struct {
		name string
		text string
	}{
		{"no channels", `bus = 100`},
		{"unknown field", "[[channel]]\nvector = \"" + testsupport.PitchHex + "\"\nweight = 1\ngain = 2\n"},
		{"vector and style", "source = \"a.json\"\n[[channel]]\nvector = \"" + testsupport.PitchHex + "\"\nstyle = \"soft\"\nweight = 1\n"},
		{"neither vector nor style", "[[channel]]\nweight = 1\n"},
		{"style without source", "[[channel]]\nstyle = \"soft\"\nweight = 1\n"},
		{"source on vector channel", "[[channel]]\nvector = \"" + testsupport.PitchHex + "\"\nsource = \"a.json\"\nweight = 1\n"},
		{"non-finite weight", "[[channel]]\nvector = \"" + testsupport.PitchHex + "\"\nweight = nan\n"},
		{"non-finite bus", "bus = inf\n[[channel]]\nvector = \"" + testsupport.PitchHex + "\"\nweight = 1\n"},
		{"not toml", "[[channel"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := recipe.Parse([]byte(tc.text), ".")
			if !errors.Is(err, faults.ErrFormat) {
				t.Fatalf("expected format error, got %v", err)
			}
		})
	}
}

func TestSourcePathResolvesAgainstRecipeDir(t *testing.T) {
	r := parse(t, `
source = "banks/aria.nofs"

[[channel]]
style = "soft"
weight = 1

[[channel]]
style = "soft"
source = "/abs/other.json"
weight = 1
`)
	if got, want := r.SourcePath(r.Channels[0]), filepath.Join("/recipes", "banks", "aria.nofs"); got != want {
		t.Fatalf("expected %s, got %s", want, got)
	}
	if got := r.SourcePath(r.Channels[1]); got != "/abs/other.json" {
		t.Fatalf("expected absolute source kept, got %s", got)
	}
}

func TestLoadReadsRecipeFile(t *testing.T) {
	dir := t.TempDir()
	path := testsupport.WriteFile(t, dir, "mix.toml", []byte("[[channel]]\nvector = \""+testsupport.StyleHex+"\"\nweight = 2\n"))
	r, err := recipe.Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if len(r.Channels) != 1 || r.Channels[0].Weight != 2 {
		t.Fatalf("unexpected recipe %+v", r)
	}
	if _, err := recipe.Load(filepath.Join(dir, "missing.toml")); err == nil {
		t.Fatal("expected error for missing recipe")
	}
}
