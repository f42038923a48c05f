package config

import (
	"os"
	"strconv"
	"strings"
)

// Environment variable names.
const (
	EnvHome                  = "COLDSHARD_HOME"
	EnvOutputFormat          = "COLDSHARD_OUTPUT_FORMAT"
	EnvVerbose               = "COLDSHARD_VERBOSE"
	EnvLogLevel              = "COLDSHARD_LOG_LEVEL"
	EnvLogFile               = "COLDSHARD_LOG_FILE"
	EnvNoColor               = "NO_COLOR"
	EnvMemoryLock            = "COLDSHARD_MEMORY_LOCK"
	EnvAllowUnknownThreshold = "COLDSHARD_ALLOW_UNKNOWN_THRESHOLD"
	EnvSessionID             = "COLDSHARD_SESSION"
)

// ApplyEnvironment applies environment variable overrides to the configuration.
func ApplyEnvironment(cfg *Config) {
	if v := os.Getenv(EnvHome); v != "" {
		cfg.Home = v
	}

	if v := os.Getenv(EnvOutputFormat); v != "" {
		cfg.Output.DefaultFormat = strings.ToLower(strings.TrimSpace(v))
	}

	if v := os.Getenv(EnvVerbose); v != "" {
		cfg.Output.Verbose = parseBool(v)
	}

	if v := os.Getenv(EnvLogLevel); v != "" {
		cfg.Logging.Level = strings.ToLower(strings.TrimSpace(v))
	}

	if v := os.Getenv(EnvLogFile); v != "" {
		cfg.Logging.File = v
	}

	if _, ok := os.LookupEnv(EnvNoColor); ok {
		cfg.Output.Color = "never"
	}

	if v := os.Getenv(EnvMemoryLock); v != "" {
		cfg.Sharing.MemoryLock = parseBool(v)
	}

	if v := os.Getenv(EnvAllowUnknownThreshold); v != "" {
		cfg.Sharing.AllowUnknownThreshold = parseBool(v)
	}
}

// parseBool parses a boolean string value.
func parseBool(s string) bool {
	s = strings.ToLower(strings.TrimSpace(s))
	if s == "1" || s == "true" || s == "yes" || s == "on" {
		return true
	}
	b, _ := strconv.ParseBool(s)
	return b
}
