// Copyright 2026 The Treehash Authors
// SPDX-License-Identifier: Apache-2.0

// Package config provides configuration loading for the treehash CLI.
//
// Configuration is loaded from a single YAML file specified by:
//   - the TREEHASH_CONFIG environment variable, or
//   - the --config flag passed to the command
//
// There are no fallbacks or automatic discovery. When neither source
// names a file, the defaults apply and command-line flags are the
// only overrides. This keeps configuration deterministic and
// auditable, with no hidden overrides.
package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Config holds the CLI's tunable settings. Every field has a working
// default; the config file and command-line flags only override.
type Config struct {
	// Workers is the worker pool size for parallel hashing. Zero
	// means one worker per CPU.
	Workers int `yaml:"workers"`

	// OutputLength is the default digest length in bytes for the sum
	// command. 32 is the standard BLAKE3 digest; larger values use
	// the extended-output mode.
	OutputLength int `yaml:"output_length"`

	// Parallel enables the parallel hashing path by default. The sum
	// command's --parallel / --sequential flags override per run.
	Parallel bool `yaml:"parallel"`
}

// Default returns the default configuration: machine-sized pool,
// 32-byte digests, parallel hashing enabled.
func Default() *Config {
	return &Config{
		Workers:      0,
		OutputLength: 32,
		Parallel:     true,
	}
}

// Load reads configuration from the file named by flagPath, or by
// TREEHASH_CONFIG when flagPath is empty, or returns the defaults
// when neither is set. An explicitly named file that is missing or
// malformed is an error — a named config must never be silently
// ignored.
func Load(flagPath string) (*Config, error) {
	path := flagPath
	if path == "" {
		path = os.Getenv("TREEHASH_CONFIG")
	}

	cfg := Default()
	if path == "" {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parsing config %s: %w", path, err)
	}

	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf("config %s: %w", path, err)
	}
	return cfg, nil
}

// validate rejects values no command could honor.
func (c *Config) validate() error {
	if c.Workers < 0 {
		return fmt.Errorf("workers must be >= 0, got %d", c.Workers)
	}
	if c.OutputLength < 0 {
		return fmt.Errorf("output_length must be >= 0, got %d", c.OutputLength)
	}
	return nil
}
