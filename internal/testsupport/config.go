package testsupport

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/pelletier/go-toml/v2"

	"github.com/Columbina-Dev/vector-calculator/internal/config"
)

// ConfigOption allows callers to customize the generated test configuration.
type ConfigOption func(*configBuilder)

type configBuilder struct {
	t       testing.TB
	baseDir string
	cfg     *config.Config
}

// NewConfig produces a config seeded with unique temp directories per test.
// It defaults common fields and applies any provided options.
func NewConfig(t testing.TB, opts ...ConfigOption) *config.Config {
	t.Helper()

	base := t.TempDir()
	cfgVal := config.Default()
	cfgVal.Logging.Level = "info"
	cfgVal.Paths.LogDir = filepath.Join(base, "logs")
	cfgVal.Paths.LockDir = filepath.Join(base, "locks")
	cfgVal.Output.Color = config.ColorNever

	builder := &configBuilder{
		t:       t,
		baseDir: base,
		cfg:     &cfgVal,
	}

	for _, opt := range opts {
		opt(builder)
	}

	return builder.cfg
}

// WithZeroWeightPolicy overrides how zero-weight mixes are reported.
func WithZeroWeightPolicy(policy string) ConfigOption {
	return func(b *configBuilder) {
		b.cfg.Mixer.ZeroWeightPolicy = policy
	}
}

// WithWeightLimit overrides the channel weight bound.
func WithWeightLimit(limit float64) ConfigOption {
	return func(b *configBuilder) {
		b.cfg.Mixer.WeightLimit = limit
	}
}

// WithFailOnWarnings makes validation warnings fail a run.
func WithFailOnWarnings() ConfigOption {
	return func(b *configBuilder) {
		b.cfg.Validation.FailOnWarnings = true
	}
}

// WithIndent sets the JSON output indentation width.
func WithIndent(spaces int) ConfigOption {
	return func(b *configBuilder) {
		b.cfg.Output.Indent = spaces
	}
}

// BaseDir returns the root temp directory backing the generated config.
func BaseDir(cfg *config.Config) string {
	return filepath.Dir(cfg.Paths.LogDir)
}

// WriteConfig marshals cfg as TOML into its base directory and returns the
// file path, for commands that load configuration themselves.
func WriteConfig(t testing.TB, cfg *config.Config) string {
	t.Helper()

	data, err := toml.Marshal(cfg)
	if err != nil {
		t.Fatalf("marshal config: %v", err)
	}
	path := filepath.Join(BaseDir(cfg), "config.toml")
	if err := os.WriteFile(path, data, 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return path
}
