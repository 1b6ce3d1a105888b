package config

import (
	"io"
	"os"
	"time"
)

// TimeConfig defines helpers for retrieving time-based configuration values.
type TimeConfig interface {
	// GetSecond retrieves the configuration value associated with the given key as seconds.
	// Missing or non-numeric values yield zero.
	GetSecond(key string) time.Duration
}

// Config defines a set of methods for retrieving configuration values of various types.
//
// Implementations own the type conversion; callers only see plain Go values.
type Config interface {
	io.Closer
	TimeConfig

	// GetInt retrieves the configuration value associated with the given key as an int.
	GetInt(key string) int

	// GetFloat64 retrieves the configuration value associated with the given key as a float64.
	GetFloat64(key string) float64

	// GetBool retrieves the configuration value associated with the given key as a bool.
	GetBool(key string) bool

	// GetString retrieves the configuration value associated with the given key as a string.
	GetString(key string) string

	// GetArray retrieves the configuration value associated with the given key as a slice of strings.
	// Configuration value is stored with format <element1>,<element2>,...
	GetArray(key string) []string

	// UnmarshalKey decodes a nested configuration value (list or map) into out.
	// Keys inside the value keep the case they were written with.
	UnmarshalKey(key string, out any) error
}

// Path resolves the config file location from CONFIG_PATH, falling back to the
// container path or, with LOCAL=true, the repository copy.
func Path() string {
	if p := os.Getenv("CONFIG_PATH"); p != "" {
		return p
	}

	if os.Getenv("LOCAL") == "true" {
		return "./config/config.yaml"
	}

	return "/config/config.yaml"
}
