// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package rayview

import (
	"bytes"
	"fmt"
	"os"

	"github.com/pelletier/go-toml/v2"
)

// LoadConfig reads a TOML configuration file. Keys missing from the file
// keep their values from base. Unknown keys are an error.
//
// Example file:
//
//	title = "viewer"
//	width = 1280
//	height = 720
//	vsync = false
//	backend = "vulkan"
func LoadConfig(path string, base Config) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return base, fmt.Errorf("rayview: read config: %w", err)
	}
	return ParseConfig(data, base)
}

// ParseConfig decodes TOML data over base and validates the result.
func ParseConfig(data []byte, base Config) (Config, error) {
	cfg := base
	dec := toml.NewDecoder(bytes.NewReader(data))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&cfg); err != nil {
		return base, fmt.Errorf("rayview: parse config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return base, err
	}
	return cfg, nil
}

// EncodeTOML encodes the configuration as TOML.
func (c Config) EncodeTOML() ([]byte, error) {
	var buf bytes.Buffer
	enc := toml.NewEncoder(&buf)
	if err := enc.Encode(c); err != nil {
		return nil, fmt.Errorf("rayview: encode config: %w", err)
	}
	return buf.Bytes(), nil
}
