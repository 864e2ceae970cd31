package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

const (
	envPrefix     = "TRANSFERLENS_"
	configPathEnv = "TRANSFERLENS_CONFIG"
)

var listKeys = map[string]struct{}{
	"es_addresses":          {},
	"percentile_operations": {},
}

// Load builds a Config by layering defaults, optional file, and env vars.
// Order of precedence (low -> high):
//  1. defaults (New())
//  2. file (YAML) if TRANSFERLENS_CONFIG is set
//  3. env (prefix TRANSFERLENS_)
func Load() (*Config, error) {
	base := New()

	k := koanf.New(".")

	if path := os.Getenv(configPathEnv); path != "" {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("%w: reading %s: %w", ErrLoadConfig, path, err)
		}
	}

	// TRANSFERLENS_PAGE_SIZE -> page_size. Keys stay flat to match the koanf tags.
	envProvider := env.ProviderWithValue(envPrefix, ".", func(key string, value string) (string, interface{}) {
		key = strings.TrimPrefix(strings.ToLower(key), strings.ToLower(envPrefix))
		if _, ok := listKeys[key]; ok {
			return key, splitList(value)
		}
		return key, value
	})
	if err := k.Load(envProvider, nil); err != nil {
		return nil, fmt.Errorf("%w: reading environment: %w", ErrLoadConfig, err)
	}

	cfg := *base
	// Lists are replaced rather than merged element by element into the defaults.
	for key := range listKeys {
		if k.Exists(key) {
			cfg.clearList(key)
		}
	}
	if err := k.UnmarshalWithConf("", &cfg, koanf.UnmarshalConf{Tag: "koanf"}); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrLoadConfig, err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate reports the first setting that would make the server unusable.
func (c *Config) Validate() error {
	switch {
	case c.Addr == "":
		return fmt.Errorf("%w: addr must not be empty", ErrInvalidConfig)
	case len(c.ElasticsearchAddresses) == 0:
		return fmt.Errorf("%w: es_addresses must not be empty", ErrInvalidConfig)
	case c.SpanIndex == "" || c.ErrorSpanIndex == "":
		return fmt.Errorf("%w: span_index and error_span_index must not be empty", ErrInvalidConfig)
	case c.ServiceName == "":
		return fmt.Errorf("%w: service_name must not be empty", ErrInvalidConfig)
	case strings.TrimSpace(c.TransferOperation) == "":
		return fmt.Errorf("%w: transfer_operation must not be empty", ErrInvalidConfig)
	case len(c.PercentileOperations) == 0:
		return fmt.Errorf("%w: percentile_operations must not be empty", ErrInvalidConfig)
	case c.PageSize <= 0:
		return fmt.Errorf("%w: page_size must be positive, got %d", ErrInvalidConfig, c.PageSize)
	case c.QueryTimeout < 0:
		return fmt.Errorf("%w: query_timeout must not be negative", ErrInvalidConfig)
	}
	return nil
}

func splitList(value string) []string {
	var items []string
	for _, item := range strings.Split(value, ",") {
		if item = strings.TrimSpace(item); item != "" {
			items = append(items, item)
		}
	}
	return items
}

func (c *Config) clearList(key string) {
	switch key {
	case "es_addresses":
		c.ElasticsearchAddresses = nil
	case "percentile_operations":
		c.PercentileOperations = nil
	}
}
