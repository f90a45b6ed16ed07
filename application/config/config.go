// Package config loads the plugin's configuration.
//
// Values come from four layers, later layers winning: built-in defaults, an
// optional YAML file named by NU_PLUGIN_LUA_CONFIG_FILE, the other
// NU_PLUGIN_LUA_* environment variables, and the record the host passes from
// the user's shell configuration.
package config

import (
	"bytes"
	"encoding/json"
	stdErrors "errors"
	"fmt"

	"github.com/caarlos0/env/v11"
	"github.com/go-playground/validator/v10"

	"github.com/reglet-dev/nu-plugin-lua/domain/entities"
	"github.com/reglet-dev/nu-plugin-lua/domain/errors"
)

// validate is a package-level singleton; building a validator is expensive.
var validate = validator.New()

// Config is the plugin configuration.
type Config struct {
	LogLevel      string `env:"LOG_LEVEL" json:"log_level" yaml:"log_level" validate:"oneof=debug info warn error" jsonschema:"enum=debug,enum=info,enum=warn,enum=error,default=warn"`
	LogFormat     string `env:"LOG_FORMAT" json:"log_format" yaml:"log_format" validate:"oneof=text json" jsonschema:"enum=text,enum=json,default=text"`
	ChunkName     string `env:"CHUNK_NAME" json:"chunk_name" yaml:"chunk_name" validate:"required"`
	OpenLibraries bool   `env:"OPEN_LIBRARIES" json:"open_libraries" yaml:"open_libraries" jsonschema:"default=true"`
	DisableGC     bool   `env:"DISABLE_GC" json:"disable_gc" yaml:"disable_gc" jsonschema:"default=true"`
	MaxOutputSize int    `env:"MAX_OUTPUT_SIZE" json:"max_output_size" yaml:"max_output_size" validate:"min=1" jsonschema:"minimum=1,default=65536"`
}

// locator finds the optional configuration file.
type locator struct {
	File string `env:"CONFIG_FILE"`
}

// EnvPrefix is prepended to every environment variable name.
const EnvPrefix = "NU_PLUGIN_LUA_"

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		LogLevel:      "warn",
		LogFormat:     "text",
		ChunkName:     "=eval",
		OpenLibraries: true,
		DisableGC:     true,
		MaxOutputSize: 64 * 1024,
	}
}

// Load reads the configuration file, if any, and then the environment.
// Unset variables keep the value from the layer below.
func Load() (Config, error) {
	opts := env.Options{Prefix: EnvPrefix}

	var loc locator
	if err := env.ParseWithOptions(&loc, opts); err != nil {
		return Config{}, &errors.ConfigError{Err: fmt.Errorf("parse env: %w", err)}
	}

	cfg := Default()
	if loc.File != "" {
		var err error
		if cfg, err = cfg.MergeFile(loc.File); err != nil {
			return Config{}, err
		}
	}

	if err := env.ParseWithOptions(&cfg, opts); err != nil {
		return Config{}, &errors.ConfigError{Err: fmt.Errorf("parse env: %w", err)}
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate checks the configuration against its validation tags.
func (c Config) Validate() error {
	if err := validate.Struct(c); err != nil {
		var verrs validator.ValidationErrors
		if stdErrors.As(err, &verrs) && len(verrs) > 0 {
			return &errors.ConfigError{Field: verrs[0].Field(), Err: err}
		}
		return &errors.ConfigError{Err: err}
	}
	return nil
}

// Merge overlays the keys present in rec onto c. Unknown keys and values of
// the wrong type are rejected.
func (c Config) Merge(rec *entities.Record) (Config, error) {
	if rec.Len() == 0 {
		return c, nil
	}

	// record -> JSON -> struct, so json tags are the single source of key names
	data, err := json.Marshal(entities.NewRecord(rec, entities.UnknownSpan()).Interface())
	if err != nil {
		return Config{}, &errors.ConfigError{Err: fmt.Errorf("failed to marshal config record: %w", err)}
	}

	dec := json.NewDecoder(bytes.NewReader(data))
	dec.DisallowUnknownFields()
	merged := c
	if err := dec.Decode(&merged); err != nil {
		return Config{}, &errors.ConfigError{Err: fmt.Errorf("failed to unmarshal config record: %w", err)}
	}

	if err := merged.Validate(); err != nil {
		return Config{}, err
	}
	return merged, nil
}
