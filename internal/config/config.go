// Package config loads goforth settings from a YAML file.
package config

import (
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"
)

// Config holds settings that may also be given as command line flags, along
// with a prelude of program text to evaluate before any input.
type Config struct {
	Path string `yaml:"-"`

	Trace bool   `yaml:"trace"`
	Quiet bool   `yaml:"quiet"`
	Dump  bool   `yaml:"dump"`
	Key   string `yaml:"key"`

	Prelude []string `yaml:"prelude"`
}

// Load parses the config file at path.
func Load(path string) (*Config, error) {
	if path == "" {
		return nil, errors.New("config: empty path")
	}
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, errors.Wrapf(err, "config: resolve %s", path)
	}
	f, err := os.Open(abs)
	if err != nil {
		return nil, errors.Wrap(err, "config")
	}
	defer f.Close()

	cfg, err := Decode(f)
	if err != nil {
		return nil, errors.WithMessagef(err, "config: parse %s", abs)
	}
	cfg.Path = abs
	return cfg, nil
}

// Decode parses config from r; unknown fields are an error. An empty
// document yields a zero Config.
func Decode(r io.Reader) (*Config, error) {
	var cfg Config
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&cfg); err != nil && err != io.EOF {
		return nil, errors.WithStack(err)
	}
	cfg.normalize()
	return &cfg, nil
}

func (cfg *Config) normalize() {
	prelude := cfg.Prelude[:0]
	for _, line := range cfg.Prelude {
		if line = strings.TrimSpace(line); line != "" {
			prelude = append(prelude, line)
		}
	}
	cfg.Prelude = prelude
}
