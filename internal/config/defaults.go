package config

// Defaults returns the default configuration.
func Defaults() *Config {
	return &Config{
		Version: 1,
		Home:    "~/.coldshard",
		Output: OutputConfig{
			DefaultFormat: "text",
			Color:         "auto",
			Verbose:       false,
		},
		Logging: LoggingConfig{
			Level: "error",
			File:  "~/.coldshard/coldshard.log",
		},
		Sharing: SharingConfig{
			MemoryLock:            true,
			AllowUnknownThreshold: false,
		},
	}
}
