package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"

	"github.com/spf13/afero"
	"github.com/wizzomafizzo/archpatch/internal/logging"
	"github.com/wizzomafizzo/archpatch/internal/patch"
	"gopkg.in/yaml.v3"
)

// Config is the process-wide configuration. It is built once at startup and
// treated as read-only afterwards.
type Config struct {
	Root      string        `yaml:"root,omitempty"`
	Logging   LoggingConfig `yaml:"logging"`
	Packages  []string      `yaml:"packages"`
	Steps     []Step        `yaml:"steps"`
	NoConfirm bool          `yaml:"noconfirm,omitempty"`
}

// LoggingConfig controls the file log.
type LoggingConfig struct {
	Level string `yaml:"level,omitempty"`
}

// Step is one numbered entry of the progress trace and the rules it runs.
type Step struct {
	Label string       `yaml:"label"`
	Title string       `yaml:"title"`
	Rules []patch.Rule `yaml:"rules"`
}

// Load reads a YAML file from fs and applies it over the defaults.
func Load(fs afero.Fs, path string) (*Config, error) {
	data, err := afero.ReadFile(fs, path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config: %w", err)
	}
	return LoadFromYAML(data)
}

// LoadFromYAML applies YAML bytes over the defaults. Keys missing from the
// document keep their default value.
func LoadFromYAML(data []byte) (*Config, error) {
	config := DefaultConfig()

	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)
	if err := decoder.Decode(config); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return config, nil
}

// Validate performs comprehensive config validation
func (c *Config) Validate() error {
	for i, name := range c.Packages {
		if name == "" {
			return fmt.Errorf("package %d has an empty name", i+1)
		}
	}

	if len(c.Steps) == 0 {
		return errors.New("config must contain at least one step")
	}

	for i, step := range c.Steps {
		if step.Label == "" {
			return fmt.Errorf("step %d has an empty label", i+1)
		}
		for j := range step.Rules {
			if err := step.Rules[j].Validate(); err != nil {
				return fmt.Errorf("step %s rule %d validation failed: %w", step.Label, j+1, err)
			}
		}
	}

	if _, err := logging.ParseLevel(c.Logging.Level); err != nil {
		return err
	}

	return nil
}

// Rules returns every rule of every step in run order.
func (c *Config) Rules() []patch.Rule {
	var rules []patch.Rule
	for _, step := range c.Steps {
		rules = append(rules, step.Rules...)
	}
	return rules
}
