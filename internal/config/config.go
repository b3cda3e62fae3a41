// Package config supplies environment-driven defaults; command-line flags
// take precedence over everything here.
package config

import (
	"os"
	"path/filepath"

	"github.com/caarlos0/env/v11"
)

type Config struct {
	AnimationThreshold int    `env:"SLIDEDISTILL_ANIMATION_THRESHOLD" envDefault:"2"`
	NewSlideThreshold  int    `env:"SLIDEDISTILL_NEW_SLIDE_THRESHOLD" envDefault:"8"`
	Workers            int    `env:"SLIDEDISTILL_WORKERS"             envDefault:"4"`
	CachePath          string `env:"SLIDEDISTILL_CACHE"               envDefault:""`
	DatabaseURL        string `env:"SLIDEDISTILL_DB"                  envDefault:""`
	Verbose            bool   `env:"SLIDEDISTILL_VERBOSE"             envDefault:"false"`
}

func Load() (*Config, error) {
	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

// ResolveCachePath returns the configured fingerprint cache location, falling
// back to the user cache directory, then the working directory.
func (c *Config) ResolveCachePath() string {
	if c.CachePath != "" {
		return c.CachePath
	}
	base, err := os.UserCacheDir()
	if err != nil {
		return ".slidedistill-fingerprints.db"
	}
	return filepath.Join(base, "slidedistill", "fingerprints.db")
}
