package config

import (
	"bytes"
	stdErrors "errors"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/reglet-dev/nu-plugin-lua/domain/errors"
)

// MergeFile overlays the YAML file at path onto c.
func (c Config) MergeFile(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, &errors.ConfigError{Err: fmt.Errorf("failed to read config file: %w", err)}
	}
	return c.MergeYAML(data)
}

// MergeYAML overlays the keys present in a YAML document onto c. Unknown keys
// are rejected; an empty document changes nothing.
func (c Config) MergeYAML(data []byte) (Config, error) {
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)

	merged := c
	if err := dec.Decode(&merged); err != nil {
		if stdErrors.Is(err, io.EOF) {
			return c, nil
		}
		return Config{}, &errors.ConfigError{Err: fmt.Errorf("failed to parse config file: %w", err)}
	}
	if err := merged.Validate(); err != nil {
		return Config{}, err
	}
	return merged, nil
}
