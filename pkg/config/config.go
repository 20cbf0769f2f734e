package config

import (
	"encoding/json"
	"log/slog"
	"os"

	"github.com/migranta/oraudit/pkg/types"
	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"
)

// Config is the rule catalog plus the owner exclusion list for one audit run.
type Config struct {
	OwnerExcludeList []string     `yaml:"owner_exclude_list" json:"owner_exclude_list"`
	Validations      []types.Rule `yaml:"validations"        json:"validations"`
}

// LoadFromFile loads an audit configuration from a file
func LoadFromFile(filename string) (*Config, error) {
	slog.Debug("Loading config from file", "filename", filename)
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to read config file: %s", filename)
	}

	var config Config

	// Try YAML first, then JSON
	if yamlErr := yaml.Unmarshal(data, &config); yamlErr != nil {
		slog.Debug("YAML unmarshal failed, trying JSON", "error", yamlErr)
		if jsonErr := json.Unmarshal(data, &config); jsonErr != nil {
			return nil, errors.Wrapf(yamlErr, "failed to parse config file: %s", filename)
		}
	}

	// A file that lists validations but no exclusions still skips the
	// Oracle-maintained schemas.
	if config.OwnerExcludeList == nil {
		config.OwnerExcludeList = append([]string(nil), defaultOwnerExcludeList...)
	}

	slog.Debug("Loaded config", "rules_count", len(config.Validations))
	return &config, nil
}

// Default returns the built-in audit configuration. The returned value is
// an independent copy, so callers may modify it without affecting later runs.
func Default() *Config {
	return &Config{
		OwnerExcludeList: append([]string(nil), defaultOwnerExcludeList...),
		Validations:      append([]types.Rule(nil), defaultValidations...),
	}
}

// Validate checks that every rule in the catalog is runnable. It is called
// before any connection is opened so a malformed catalog fails fast.
func (c *Config) Validate() error {
	if len(c.Validations) == 0 {
		return errors.New("config defines no validations")
	}
	for i, rule := range c.Validations {
		if rule.Name == "" {
			return errors.Errorf("validation %d has no name", i)
		}
		if rule.Query == "" {
			return errors.Errorf("validation %q has no query", rule.Name)
		}
		if rule.WarningMessage == "" {
			return errors.Errorf("validation %q has no warning message", rule.Name)
		}
	}
	return nil
}
