package config

const (
	defaultConfigPath       = "~/.config/vecalc/config.toml"
	projectConfigName       = "vecalc.toml"
	defaultLogDir           = "~/.local/share/vecalc/logs"
	defaultLogFormat        = "console"
	defaultLogLevel         = "info"
	defaultMixerBus         = 100
	defaultMixerWeightLimit = 100
	defaultOutputIndent     = 2
	defaultOutputColor      = ColorAuto
)

// Zero-weight policies.
const (
	ZeroWeightError = "error"
	ZeroWeightWarn  = "warn"
)

// Colour modes.
const (
	ColorAuto   = "auto"
	ColorAlways = "always"
	ColorNever  = "never"
)

// Default returns a Config populated with repository defaults.
func Default() Config {
	return Config{
		Paths: Paths{
			LogDir: defaultLogDir,
		},
		Logging: Logging{
			Format: defaultLogFormat,
		},
		Mixer: Mixer{
			DefaultBus:       defaultMixerBus,
			WeightLimit:      defaultMixerWeightLimit,
			ZeroWeightPolicy: ZeroWeightError,
		},
		Output: Output{
			Indent: defaultOutputIndent,
			Color:  defaultOutputColor,
		},
	}
}
