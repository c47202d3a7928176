// Package config loads resourcegraph settings from resourcegraph.yaml and
// RESOURCEGRAPH_* environment variables.
package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/viper"

	"github.com/hanpama/resourcegraph/internal/metadata"
	"github.com/hanpama/resourcegraph/internal/naming"
	"github.com/hanpama/resourcegraph/internal/pagination"
)

// EnvPrefix prefixes every environment override.
const EnvPrefix = "RESOURCEGRAPH"

// Config is the resourcegraph configuration.
type Config struct {
	Resources        string           `mapstructure:"resources"`
	NameConverter    string           `mapstructure:"name_converter"`
	NestingSeparator string           `mapstructure:"nesting_separator"`
	MercureHub       string           `mapstructure:"mercure_hub"`
	Pagination       PaginationConfig `mapstructure:"pagination"`
	Log              LogConfig        `mapstructure:"log"`
	Otel             OtelConfig       `mapstructure:"otel"`
}

// PaginationConfig holds the default collection paging policy.
type PaginationConfig struct {
	Enabled                   bool   `mapstructure:"enabled"`
	Type                      string `mapstructure:"type"`
	ClientItemsPerPage        bool   `mapstructure:"client_items_per_page"`
	ItemsPerPage              int    `mapstructure:"items_per_page"`
	MaximumItemsPerPage       int    `mapstructure:"maximum_items_per_page"`
	PageParameterName         string `mapstructure:"page_parameter_name"`
	ItemsPerPageParameterName string `mapstructure:"items_per_page_parameter_name"`
}

// LogConfig configures the zap logger.
type LogConfig struct {
	Level       string `mapstructure:"level"`
	Development bool   `mapstructure:"development"`
	Disabled    bool   `mapstructure:"disabled"`
}

// OtelConfig configures trace export. An empty endpoint disables tracing.
type OtelConfig struct {
	Endpoint string `mapstructure:"endpoint"`
	Service  string `mapstructure:"service"`
}

func setDefaults(v *viper.Viper) {
	policy := pagination.DefaultPolicy()
	v.SetDefault("resources", "resources")
	v.SetDefault("name_converter", "identity")
	v.SetDefault("nesting_separator", "__")
	v.SetDefault("mercure_hub", "")
	v.SetDefault("pagination.enabled", policy.Enabled)
	v.SetDefault("pagination.type", policy.Type)
	v.SetDefault("pagination.client_items_per_page", policy.ClientItemsPerPage)
	v.SetDefault("pagination.items_per_page", policy.ItemsPerPage)
	v.SetDefault("pagination.maximum_items_per_page", policy.MaximumItemsPerPage)
	v.SetDefault("pagination.page_parameter_name", policy.PageParameterName)
	v.SetDefault("pagination.items_per_page_parameter_name", policy.ItemsPerPageParameterName)
	v.SetDefault("log.level", "info")
	v.SetDefault("log.development", false)
	v.SetDefault("log.disabled", false)
	v.SetDefault("otel.endpoint", "")
	v.SetDefault("otel.service", "resourcegraph")
}

// New returns a viper instance with defaults and environment overrides set
// up. When path is empty, resourcegraph.yaml is looked up in the working
// directory.
func New(path string) *viper.Viper {
	v := viper.New()
	setDefaults(v)
	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName("resourcegraph")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
	}
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	return v
}

// Load reads the configuration file at path. A missing resourcegraph.yaml
// is not an error when path is empty.
func Load(path string) (*Config, error) {
	return FromViper(New(path))
}

// FromViper reads and validates the configuration held by v.
func FromViper(v *viper.Viper) (*Config, error) {
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}
	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate checks enumerated values.
func (c *Config) Validate() error {
	if _, ok := naming.ConverterByName(c.NameConverter); !ok {
		return fmt.Errorf("name_converter must be one of identity, snake_case, camel_case, got: %s", c.NameConverter)
	}
	switch c.Pagination.Type {
	case metadata.PaginationCursor, metadata.PaginationPage:
	default:
		return fmt.Errorf("pagination.type must be cursor or page, got: %s", c.Pagination.Type)
	}
	if c.Pagination.ItemsPerPage < 1 {
		return fmt.Errorf("pagination.items_per_page must be positive, got: %d", c.Pagination.ItemsPerPage)
	}
	if c.NestingSeparator == "" {
		return fmt.Errorf("nesting_separator cannot be empty")
	}
	return nil
}

// Policy returns the configured pagination policy.
func (c *Config) Policy() pagination.Policy {
	p := c.Pagination
	return pagination.Policy{
		Enabled:                   p.Enabled,
		Type:                      p.Type,
		ClientItemsPerPage:        p.ClientItemsPerPage,
		ItemsPerPage:              p.ItemsPerPage,
		MaximumItemsPerPage:       p.MaximumItemsPerPage,
		PageParameterName:         p.PageParameterName,
		ItemsPerPageParameterName: p.ItemsPerPageParameterName,
	}
}

// Converter returns the configured property name converter.
func (c *Config) Converter() naming.NameConverter {
	conv, ok := naming.ConverterByName(c.NameConverter)
	if !ok {
		return naming.Identity
	}
	return conv
}
