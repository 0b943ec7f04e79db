// Package config loads objlink's configuration: embedded defaults overlaid
// with an optional objlink.toml or objlink.yaml found in the working
// directory.
package config

import (
	"os"
	"path/filepath"

	"github.com/knadh/koanf/parsers/toml"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"

	"github.com/arthur-debert/objlink/pkg/errors"
)

// Config is the resolved configuration for a run.
type Config struct {
	Fsck   FsckConfig   `koanf:"fsck"`
	Lock   LockConfig   `koanf:"lock"`
	Scan   ScanConfig   `koanf:"scan"`
	Output OutputConfig `koanf:"output"`
}

// FsckConfig controls the integrity check invocation.
type FsckConfig struct {
	// Args are passed to `git fsck` after the subcommand name
	Args []string `koanf:"args"`
}

// LockConfig controls per-repository locking.
type LockConfig struct {
	// Disable skips lock acquisition entirely
	Disable bool `koanf:"disable"`
}

// ScanConfig controls the tree walk.
type ScanConfig struct {
	// FollowSymlinks descends into symlinked directories
	FollowSymlinks bool `koanf:"follow_symlinks"`
}

// OutputConfig controls presentation.
type OutputConfig struct {
	// Color is "auto", "always" or "never"
	Color string `koanf:"color"`
}

// candidate config file names, checked in order; the first match wins
var configFiles = []struct {
	name   string
	parser koanf.Parser
}{
	{"objlink.toml", toml.Parser()},
	{".objlink.toml", toml.Parser()},
	{"objlink.yaml", yaml.Parser()},
	{".objlink.yaml", yaml.Parser()},
}

// Load resolves the configuration: embedded defaults first, then the first
// config file found in dir (use "." for the working directory).
func Load(dir string) (*Config, error) {
	k := koanf.New(".")

	if err := k.Load(&rawBytesProvider{bytes: defaultConfig}, toml.Parser()); err != nil {
		return nil, errors.Wrap(err, errors.ErrConfigLoad, "loading embedded defaults")
	}

	for _, candidate := range configFiles {
		path := filepath.Join(dir, candidate.name)
		if _, err := os.Stat(path); err != nil {
			continue
		}
		if err := k.Load(file.Provider(path), candidate.parser); err != nil {
			return nil, errors.Wrapf(err, errors.ErrConfigParse, "loading config from %s", path)
		}
		break
	}

	var cfg Config
	if err := k.Unmarshal("", &cfg); err != nil {
		return nil, errors.Wrap(err, errors.ErrConfigParse, "unmarshaling config")
	}
	return &cfg, nil
}

// Default returns the embedded defaults without looking for config files.
func Default() *Config {
	k := koanf.New(".")
	// The embedded file always parses; it ships inside the binary.
	_ = k.Load(&rawBytesProvider{bytes: defaultConfig}, toml.Parser())

	var cfg Config
	_ = k.Unmarshal("", &cfg)
	return &cfg
}

// rawBytesProvider feeds an in-memory byte slice to koanf.
type rawBytesProvider struct {
	bytes []byte
}

func (r *rawBytesProvider) ReadBytes() ([]byte, error) {
	return r.bytes, nil
}

func (r *rawBytesProvider) Read() (map[string]interface{}, error) {
	return nil, errors.New(errors.ErrInternal, "rawBytesProvider does not support Read")
}
