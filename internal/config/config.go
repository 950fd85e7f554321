package config

import (
	_ "embed"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/pelletier/go-toml/v2"

	"github.com/Columbina-Dev/vector-calculator/internal/fileutil"
)

//go:embed sample_config.toml
var sampleConfig string

// Paths contains directory configuration.
type Paths struct {
	LogDir  string `toml:"log_dir"`
	LockDir string `toml:"lock_dir"`
}

// Logging contains configuration for log output.
type Logging struct {
	Format string `toml:"format"`
	Level  string `toml:"level"`
}

// Mixer contains defaults applied to mix recipes and vector scaling.
type Mixer struct {
	// DefaultBus is the bus percentage used when a recipe omits one.
	DefaultBus float64 `toml:"default_bus"`
	// WeightLimit bounds channel weights to [-limit, limit].
	WeightLimit float64 `toml:"weight_limit"`
	// ZeroWeightPolicy is "error" or "warn" and decides how a mix whose
	// absolute weights sum to zero is reported.
	ZeroWeightPolicy string `toml:"zero_weight_policy"`
}

// Validation contains configuration for document validation runs.
type Validation struct {
	FailOnWarnings          bool `toml:"fail_on_warnings"`
	NormalizeBeforeValidate bool `toml:"normalize_before_validate"`
}

// Output contains configuration for rendered command output.
type Output struct {
	Indent int    `toml:"indent"`
	Color  string `toml:"color"`
}

// Config encapsulates all configuration values for vecalc.
//
// Configuration sections:
//   - Paths: log and lock directories
//   - Logging: log format and level
//   - Mixer: recipe defaults and zero-weight handling
//   - Validation: warning policy and normalization
//   - Output: JSON indentation and colour
type Config struct {
	Paths      Paths      `toml:"paths"`
	Logging    Logging    `toml:"logging"`
	Mixer      Mixer      `toml:"mixer"`
	Validation Validation `toml:"validation"`
	Output     Output     `toml:"output"`
}

// DefaultConfigPath returns the absolute path to the default configuration file location.
func DefaultConfigPath() (string, error) {
	return ExpandPath(defaultConfigPath)
}

// Load locates, parses, and validates a configuration file. The returned config has all
// path fields expanded and normalized.
func Load(path string) (*Config, string, bool, error) {
	cfg := Default()

	resolvedPath, exists, err := resolveConfigPath(path)
	if err != nil {
		return nil, "", false, err
	}

	if exists {
		file, err := os.Open(resolvedPath)
		if err != nil {
			return nil, "", false, fmt.Errorf("open config: %w", err)
		}
		defer file.Close()

		decoder := toml.NewDecoder(file)
		decoder.DisallowUnknownFields()
		if err := decoder.Decode(&cfg); err != nil {
			return nil, "", false, fmt.Errorf("parse config: %w", err)
		}
	}

	if err := cfg.normalize(); err != nil {
		return nil, "", false, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, "", false, err
	}

	return &cfg, resolvedPath, exists, nil
}

func resolveConfigPath(path string) (string, bool, error) {
	if path != "" {
		expanded, err := ExpandPath(path)
		if err != nil {
			return "", false, err
		}
		_, err = os.Stat(expanded)
		if err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				return expanded, false, nil
			}
			return "", false, fmt.Errorf("stat config: %w", err)
		}
		return expanded, true, nil
	}

	defaultPath, err := ExpandPath(defaultConfigPath)
	if err != nil {
		return "", false, err
	}

	projectPath, err := filepath.Abs(projectConfigName)
	if err != nil {
		return "", false, err
	}

	if info, err := os.Stat(defaultPath); err == nil && !info.IsDir() {
		return defaultPath, true, nil
	}
	if info, err := os.Stat(projectPath); err == nil && !info.IsDir() {
		return projectPath, true, nil
	}

	return defaultPath, false, nil
}

// EnsureDirectories creates the log and lock directories when configured.
func (c *Config) EnsureDirectories() error {
	for _, dir := range []string{c.Paths.LogDir, c.Paths.LockDir} {
		if strings.TrimSpace(dir) == "" {
			continue
		}
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create directory %q: %w", dir, err)
		}
	}
	return nil
}

// LockPath returns the lock file guarding writes to target. Without a lock
// directory the lock sits beside the target.
func (c *Config) LockPath(target string) string {
	name := filepath.Base(target) + ".lock"
	if strings.TrimSpace(c.Paths.LockDir) == "" {
		return filepath.Join(filepath.Dir(target), "."+name)
	}
	return filepath.Join(c.Paths.LockDir, name)
}

// IndentString returns the indentation unit for displayed JSON.
func (c *Config) IndentString() string {
	return strings.Repeat(" ", c.Output.Indent)
}

// ZeroWeightIsError reports whether an all-zero mix must fail.
func (c *Config) ZeroWeightIsError() bool {
	return c.Mixer.ZeroWeightPolicy == ZeroWeightError
}

// ExpandPath resolves a leading "~" against the home directory and returns
// an absolute, cleaned path. Empty input stays empty.
func ExpandPath(pathValue string) (string, error) {
	if pathValue == "" {
		return "", nil
	}
	if pathValue == "~" || strings.HasPrefix(pathValue, "~/") || strings.HasPrefix(pathValue, `~\`) {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home directory: %w", err)
		}
		pathValue = filepath.Join(home, pathValue[1:])
	}
	absolute, err := filepath.Abs(pathValue)
	if err != nil {
		return "", fmt.Errorf("resolve absolute path for %q: %w", pathValue, err)
	}
	return absolute, nil
}

// ErrConfigExists reports that InitSample would overwrite an existing file.
var ErrConfigExists = errors.New("config file already exists")

// InitSample writes the sample configuration to path, or to the default
// config path when path is empty, and returns where it was written. An
// existing file is only replaced when overwrite is set.
func InitSample(path string, overwrite bool) (string, error) {
	if strings.TrimSpace(path) == "" {
		path = defaultConfigPath
	}
	target, err := ExpandPath(strings.TrimSpace(path))
	if err != nil {
		return "", err
	}
	if !overwrite {
		if _, err := os.Stat(target); err == nil {
			return "", fmt.Errorf("%w at %s (use --overwrite to replace it)", ErrConfigExists, target)
		} else if !errors.Is(err, fs.ErrNotExist) {
			return "", fmt.Errorf("check config path: %w", err)
		}
	}
	if err := CreateSample(target); err != nil {
		return "", err
	}
	return target, nil
}

// CreateSample atomically writes the sample configuration to path.
func CreateSample(path string) error {
	if err := fileutil.WriteAtomic(path, []byte(sampleConfig), 0o644); err != nil {
		return fmt.Errorf("write sample config: %w", err)
	}
	return nil
}
