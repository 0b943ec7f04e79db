package config

import (
	_ "embed"
)

// defaultConfig is the embedded defaults file, always loaded first.
//
//go:embed objlink.toml
var defaultConfig []byte

// DefaultTOML returns the embedded defaults file, used by the genconfig
// command as a starting point for user configuration.
func DefaultTOML() []byte {
	return defaultConfig
}
