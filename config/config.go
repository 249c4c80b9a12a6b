// Package config loads dbfixture settings from defaults, an optional YAML file and
// DBFIXTURE_ environment variables, in increasing priority.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"strings"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/confmap"
	envprovider "github.com/knadh/koanf/providers/env/v2"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/rawbytes"
	"github.com/knadh/koanf/v2"
)

const (
	// DefaultFile is read when no file is given and it exists.
	DefaultFile = "dbfixture.yaml"
	// EnvPrefix prefixes every environment variable, e.g. DBFIXTURE_DATABASE_HOST.
	EnvPrefix = "DBFIXTURE_"
)

type loadOptions struct {
	file     string
	required bool
	yaml     []byte
	environ  func() []string
}

// LoadOption customizes Load.
type LoadOption func(*loadOptions)

// WithFile reads path instead of DefaultFile. A missing file is an error.
func WithFile(path string) LoadOption {
	return func(o *loadOptions) {
		o.file, o.required = path, true
	}
}

// WithYAML reads configuration from raw YAML instead of a file.
func WithYAML(data []byte) LoadOption {
	return func(o *loadOptions) {
		o.yaml = data
	}
}

// WithEnviron replaces os.Environ as the environment source.
func WithEnviron(environ func() []string) LoadOption {
	return func(o *loadOptions) {
		o.environ = environ
	}
}

// Load loads configuration from multiple sources with priority:
// 1. Environment variables (highest priority)
// 2. YAML configuration
// 3. Default values (lowest priority)
func Load(opts ...LoadOption) (*Config, error) {
	o := loadOptions{file: DefaultFile}
	for _, opt := range opts {
		opt(&o)
	}

	k := koanf.New(".")
	if err := loadDefaults(k); err != nil {
		return nil, fmt.Errorf("failed to load defaults: %w", err)
	}

	switch {
	case o.yaml != nil:
		if err := k.Load(rawbytes.Provider(o.yaml), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("failed to parse yaml: %w", err)
		}
	case o.file != "":
		err := k.Load(file.Provider(o.file), yaml.Parser())
		if err != nil && (o.required || !errors.Is(err, fs.ErrNotExist)) {
			return nil, fmt.Errorf("failed to load %s: %w", o.file, err)
		}
	}

	env := envprovider.Opt{
		Prefix: EnvPrefix,
		TransformFunc: func(key, value string) (string, any) {
			// DBFIXTURE_DATABASE_HOST -> database.host
			key = strings.TrimPrefix(key, EnvPrefix)
			return strings.ReplaceAll(strings.ToLower(key), "_", "."), value
		},
		EnvironFunc: o.environ,
	}
	if err := k.Load(envprovider.Provider(".", env), nil); err != nil {
		return nil, fmt.Errorf("failed to load environment variables: %w", err)
	}

	var cfg Config
	if err := k.Unmarshal("", &cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}
	cfg.k = k

	if err := Validate(&cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func loadDefaults(k *koanf.Koanf) error {
	defaults := map[string]any{
		"database.pool.max.connections":  4,
		"database.pool.idle.connections": 2,
		"database.pool.idle.time":        "5m",
		"database.pool.lifetime.max":     "30m",
		"database.query.slow.threshold":  "200ms",
		"database.query.log.maxlength":   1000,
		"database.query.log.parameters":  false,
		"database.connect.timeout":       "10s",

		"fixture.operation":     "CLEAN_INSERT",
		"fixture.batchsize":     1,
		"fixture.transactional": true,

		"log.level":  "info",
		"log.pretty": false,
	}

	return k.Load(confmap.Provider(defaults, "."), nil)
}
