package config

const (
	defaultLogLevel  = "info"
	defaultLogFormat = "console"

	// DefaultThreshold is the confidence cutoff applied to every category
	// without an explicit override.
	DefaultThreshold = 0.725

	defaultWorkers = 1
)

// Default returns a Config populated with repository defaults.
func Default() Config {
	return Config{
		Logging: Logging{
			Level:  defaultLogLevel,
			Format: defaultLogFormat,
		},
		Separation: Separation{
			DefaultThreshold:       DefaultThreshold,
			Workers:                defaultWorkers,
			AllowExistingDirectory: false,
		},
	}
}
