package config

import (
	"os"
	"path/filepath"

	toml "github.com/pelletier/go-toml/v2"

	"github.com/arthur-debert/objlink/pkg/errors"
)

// RepoConfigFile is the per-repository override file, looked up at each
// repository root.
const RepoConfigFile = ".objlink.toml"

// RepoConfig holds per-repository overrides.
type RepoConfig struct {
	// Skip excludes the repository from processing entirely
	Skip bool `toml:"skip"`
}

// LoadRepoConfig reads a repository's override file. A missing file is not
// an error; it simply yields the zero config.
func LoadRepoConfig(repoRoot string) (*RepoConfig, error) {
	path := filepath.Join(repoRoot, RepoConfigFile)

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return &RepoConfig{}, nil
		}
		return nil, errors.Wrapf(err, errors.ErrConfigLoad, "reading %s", path)
	}

	var cfg RepoConfig
	if err := toml.Unmarshal(data, &cfg); err != nil {
		return nil, errors.Wrapf(err, errors.ErrConfigParse, "parsing %s", path)
	}
	return &cfg, nil
}
