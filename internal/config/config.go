// Package config loads taggraph settings from a TOML file.
//
// A config file is optional. It is located in this order:
//
//  1. the path given with --config
//  2. $TAGGRAPH_CONFIG
//  3. ./taggraph.toml, if it exists
//
// Example:
//
//	input  = "data.csv"
//	output = "output_graph.json"
//	owner  = "admin"
package config

import (
	"errors"
	"io/fs"
	"os"

	"github.com/BurntSushi/toml"

	tgerrors "github.com/matzehuels/taggraph/pkg/errors"
	"github.com/matzehuels/taggraph/pkg/pipeline"
)

const (
	// EnvPath names the environment variable holding a config path.
	EnvPath = "TAGGRAPH_CONFIG"

	// DefaultPath is the config file looked up in the working directory.
	DefaultPath = "taggraph.toml"
)

// Config holds file-level settings. Empty fields leave pipeline defaults in place.
type Config struct {
	Input  string `toml:"input"`
	Output string `toml:"output"`
	Owner  string `toml:"owner"`
}

// Path resolves the config path. It returns "" when no config applies.
func Path(flag string) string {
	if flag != "" {
		return flag
	}
	if p := os.Getenv(EnvPath); p != "" {
		return p
	}
	if _, err := os.Stat(DefaultPath); err == nil {
		return DefaultPath
	}
	return ""
}

// Load reads the config file at path. An empty path yields an empty Config.
// Unknown keys are rejected so that typos do not silently fall back to defaults.
func Load(path string) (Config, error) {
	var cfg Config
	if path == "" {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return cfg, tgerrors.Wrap(tgerrors.ErrCodeFileNotFound, err, "config %s", path)
	}
	if err != nil {
		return cfg, tgerrors.Wrap(tgerrors.ErrCodeInvalidConfig, err, "read config %s", path)
	}

	md, err := toml.Decode(string(data), &cfg)
	if err != nil {
		return cfg, tgerrors.Wrap(tgerrors.ErrCodeInvalidConfig, err, "parse config %s", path)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		return cfg, tgerrors.New(tgerrors.ErrCodeInvalidConfig, "config %s: unknown key %q", path, undecoded[0].String())
	}
	if cfg.Owner != "" {
		if err := tgerrors.ValidateOwner(cfg.Owner); err != nil {
			return cfg, err
		}
	}
	return cfg, nil
}

// Apply fills empty fields of opts from the config. Values already set
// (typically from command-line flags) take precedence.
func (c Config) Apply(opts *pipeline.Options) {
	if opts.Input == "" {
		opts.Input = c.Input
	}
	if opts.Output == "" {
		opts.Output = c.Output
	}
	if opts.Owner == "" {
		opts.Owner = c.Owner
	}
}
