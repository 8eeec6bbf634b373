package main

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/fwojciec/tldr"
	"github.com/fwojciec/tldr/github"
	tldrhttp "github.com/fwojciec/tldr/http"
)

// Config holds settings that can be overridden from a TOML file.
type Config struct {
	ContentsURL       string        `toml:"contents_url"`
	TreesURL          string        `toml:"trees_url"`
	RawURL            string        `toml:"raw_url"`
	Timeout           time.Duration `toml:"timeout"`
	RequestsPerSecond float64       `toml:"requests_per_second"`
	Burst             int           `toml:"burst"`
}

// DefaultConfig returns the settings used when no file overrides them.
func DefaultConfig() Config {
	return Config{
		ContentsURL:       github.DefaultContentsURL,
		TreesURL:          github.DefaultTreesURL,
		RawURL:            github.DefaultRawURL,
		Timeout:           tldrhttp.DefaultTimeout,
		RequestsPerSecond: 5,
		Burst:             6,
	}
}

// LoadConfig reads path on top of DefaultConfig.
// Unknown keys are rejected so typos do not go unnoticed.
func LoadConfig(path string) (Config, error) {
	cfg := DefaultConfig()

	md, err := toml.DecodeFile(path, &cfg)
	if err != nil {
		return Config{}, tldr.Errorf(tldr.EINVALID, "invalid config %s: %v", path, err)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, 0, len(undecoded))
		for _, k := range undecoded {
			keys = append(keys, k.String())
		}
		return Config{}, tldr.Errorf(tldr.EINVALID, "unknown config keys in %s: %s", path, strings.Join(keys, ", "))
	}

	if cfg.RequestsPerSecond <= 0 {
		return Config{}, tldr.Errorf(tldr.EINVALID, "requests_per_second must be positive")
	}
	for _, u := range []string{cfg.ContentsURL, cfg.TreesURL, cfg.RawURL} {
		if !strings.HasSuffix(u, "/") {
			return Config{}, tldr.Errorf(tldr.EINVALID, "endpoint %q must end with a slash", u)
		}
	}

	return cfg, nil
}

// resolveConfig loads path if given, otherwise the default config file if
// it exists, otherwise DefaultConfig.
func resolveConfig(path string) (Config, error) {
	if path != "" {
		return LoadConfig(path)
	}

	home, err := os.UserHomeDir()
	if err != nil {
		return DefaultConfig(), nil
	}
	path = filepath.Join(home, ".tldr", "config.toml")
	if _, err := os.Stat(path); errors.Is(err, os.ErrNotExist) {
		return DefaultConfig(), nil
	}
	return LoadConfig(path)
}
