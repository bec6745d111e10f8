// Package config loads the quotecheck configuration file.
package config

import (
	"fmt"
	"net/url"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/coolbeans/quotecheck/pkg/risk"
)

// Environment variables that override the file.
const (
	EnvAddr        = "QUOTECHECK_ADDR"
	EnvDatabaseURL = "DATABASE_URL"
)

// DefaultAddr is the HTTP listen address used when none is configured.
const DefaultAddr = ":8080"

type Config struct {
	Analysis AnalysisConfig `yaml:"analysis"`
	Catalog  CatalogConfig  `yaml:"catalog"`
	Server   ServerConfig   `yaml:"server"`
	History  HistoryConfig  `yaml:"history"`
}

type AnalysisConfig struct {
	Sensitivity string   `yaml:"sensitivity"` // strict | normal | permissive
	AutoFix     *bool    `yaml:"auto_fix"`    // default true
	Fields      []string `yaml:"fields"`      // dotted paths scanned besides line items
	Exclusions  []string `yaml:"exclusions"`  // matches containing these are ignored
}

type CatalogConfig struct {
	Path string `yaml:"path"` // empty = built-in catalog
}

type ServerConfig struct {
	Addr string `yaml:"addr"` // HTTP listen address, e.g. ":8080"
}

type HistoryConfig struct {
	DatabaseURL string `yaml:"database_url"` // postgres://...; empty disables history
}

// Load reads configuration from a YAML file.
// If path is empty or the file doesn't exist, it returns the default config.
// Environment overrides are applied in both cases.
func Load(path string) (*Config, error) {
	cfg := defaultConfig()
	if path != "" {
		data, err := os.ReadFile(path)
		switch {
		case err == nil:
			cfg = &Config{}
			if err := yaml.Unmarshal(data, cfg); err != nil {
				return nil, fmt.Errorf("parsing config %s: %w", path, err)
			}
			applyDefaults(cfg)
		case !os.IsNotExist(err):
			return nil, fmt.Errorf("reading config: %w", err)
		}
	}

	applyEnv(cfg)
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func defaultConfig() *Config {
	cfg := &Config{}
	applyDefaults(cfg)
	return cfg
}

func applyDefaults(cfg *Config) {
	if cfg.Analysis.Sensitivity == "" {
		cfg.Analysis.Sensitivity = string(risk.SensitivityNormal)
	}
	if cfg.Analysis.AutoFix == nil {
		enabled := true
		cfg.Analysis.AutoFix = &enabled
	}
	if len(cfg.Analysis.Fields) == 0 {
		cfg.Analysis.Fields = append([]string(nil), risk.DefaultFields...)
	}
	if cfg.Server.Addr == "" {
		cfg.Server.Addr = DefaultAddr
	}
}

func applyEnv(cfg *Config) {
	if addr := strings.TrimSpace(os.Getenv(EnvAddr)); addr != "" {
		cfg.Server.Addr = addr
	}
	if dsn := strings.TrimSpace(os.Getenv(EnvDatabaseURL)); dsn != "" {
		cfg.History.DatabaseURL = dsn
	}
}

// Validate checks the configuration and reports every problem at once.
func (c *Config) Validate() error {
	var problems []string

	if _, err := risk.ParseSensitivity(c.Analysis.Sensitivity); err != nil {
		problems = append(problems, "analysis.sensitivity: "+err.Error())
	}
	for i, field := range c.Analysis.Fields {
		if strings.TrimSpace(field) == "" {
			problems = append(problems, fmt.Sprintf("analysis.fields[%d]: field path is empty", i))
		}
	}
	if strings.TrimSpace(c.Server.Addr) == "" {
		problems = append(problems, "server.addr: listen address is empty")
	}
	if dsn := c.History.DatabaseURL; dsn != "" {
		u, err := url.Parse(dsn)
		if err != nil || (u.Scheme != "postgres" && u.Scheme != "postgresql") {
			problems = append(problems, "history.database_url: must be a postgres:// URL")
		}
	}

	if len(problems) > 0 {
		return fmt.Errorf("invalid config:\n  - %s", strings.Join(problems, "\n  - "))
	}
	return nil
}

// Sensitivity returns the parsed analysis sensitivity.
func (c *Config) Sensitivity() risk.Sensitivity {
	s, err := risk.ParseSensitivity(c.Analysis.Sensitivity)
	if err != nil {
		return risk.SensitivityNormal
	}
	return s
}

// AnalyzerOptions converts the analysis section into analyzer options.
func (c *Config) AnalyzerOptions() risk.Options {
	opts := risk.DefaultOptions()
	if len(c.Analysis.Fields) > 0 {
		opts.Fields = append([]string(nil), c.Analysis.Fields...)
	}
	if c.Analysis.AutoFix != nil {
		opts.AutoFix = *c.Analysis.AutoFix
	}
	opts.Exclusions = append([]string(nil), c.Analysis.Exclusions...)
	return opts
}

// LoadCatalog returns the configured catalog, or the built-in one.
func (c *Config) LoadCatalog() (*risk.Catalog, error) {
	if c.Catalog.Path == "" {
		return risk.DefaultCatalog(), nil
	}
	catalog, err := risk.LoadCatalogFile(c.Catalog.Path)
	if err != nil {
		return nil, fmt.Errorf("loading catalog: %w", err)
	}
	return catalog, nil
}

// NewAnalyzer builds an analyzer from the configured catalog and options.
func (c *Config) NewAnalyzer() (*risk.Analyzer, error) {
	catalog, err := c.LoadCatalog()
	if err != nil {
		return nil, err
	}
	return risk.NewAnalyzer(catalog, c.AnalyzerOptions()), nil
}
