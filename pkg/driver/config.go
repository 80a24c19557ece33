package driver

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	toml "github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"

	"jtv/interpreter-go/pkg/interpreter"
)

// ConfigFileNames are searched in order in each directory by FindConfig.
var ConfigFileNames = []string{"jtv.yml", "jtv.yaml", "jtv.toml"}

// Config models a jtv.yml or jtv.toml file.
type Config struct {
	Path    string        `yaml:"-" toml:"-"`
	Limits  LimitsConfig  `yaml:"limits" toml:"limits"`
	Numeric NumericConfig `yaml:"numeric" toml:"numeric"`
	Output  OutputConfig  `yaml:"output" toml:"output"`
}

type LimitsConfig struct {
	MaxSteps     int `yaml:"max_steps" toml:"max_steps"`
	MaxCallDepth int `yaml:"max_call_depth" toml:"max_call_depth"`
}

type NumericConfig struct {
	IntegerBits int `yaml:"integer_bits" toml:"integer_bits"`
}

type OutputConfig struct {
	Trace bool `yaml:"trace" toml:"trace"`
}

// DefaultConfig returns the settings used when no file is found.
func DefaultConfig() *Config {
	return &Config{
		Limits: LimitsConfig{
			MaxSteps:     interpreter.DefaultMaxSteps,
			MaxCallDepth: interpreter.DefaultMaxCallDepth,
		},
	}
}

// LoadConfig parses a config file, picking the format from its extension.
// Unknown keys are rejected. Absent keys keep their defaults.
func LoadConfig(path string) (*Config, error) {
	if path == "" {
		return nil, fmt.Errorf("config: empty path")
	}
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("config: resolve %s: %w", path, err)
	}
	data, err := os.ReadFile(abs)
	if err != nil {
		return nil, err
	}

	cfg := DefaultConfig()
	switch strings.ToLower(filepath.Ext(abs)) {
	case ".yml", ".yaml":
		decoder := yaml.NewDecoder(bytes.NewReader(data))
		decoder.KnownFields(true)
		if err := decoder.Decode(cfg); err != nil && !errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("config: parse %s: %w", abs, err)
		}
	case ".toml":
		decoder := toml.NewDecoder(bytes.NewReader(data))
		decoder.DisallowUnknownFields()
		if err := decoder.Decode(cfg); err != nil {
			return nil, fmt.Errorf("config: parse %s: %w", abs, err)
		}
	default:
		return nil, fmt.Errorf("config: %s: unsupported format %q", abs, filepath.Ext(abs))
	}
	cfg.Path = abs
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config: %s: %w", abs, err)
	}
	return cfg, nil
}

// FindConfig walks from start towards the filesystem root and returns the
// first config file found. It returns "" when there is none.
func FindConfig(start string) (string, error) {
	dir, err := filepath.Abs(start)
	if err != nil {
		return "", fmt.Errorf("config: resolve %s: %w", start, err)
	}
	if info, err := os.Stat(dir); err == nil && !info.IsDir() {
		dir = filepath.Dir(dir)
	}
	for {
		for _, name := range ConfigFileNames {
			candidate := filepath.Join(dir, name)
			if info, err := os.Stat(candidate); err == nil && !info.IsDir() {
				return candidate, nil
			}
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return "", nil
		}
		dir = parent
	}
}

// Validate reports every invalid setting at once.
func (c *Config) Validate() error {
	var errs []error
	if c.Limits.MaxSteps <= 0 {
		errs = append(errs, fmt.Errorf("limits.max_steps must be positive, got %d", c.Limits.MaxSteps))
	}
	if c.Limits.MaxCallDepth <= 0 {
		errs = append(errs, fmt.Errorf("limits.max_call_depth must be positive, got %d", c.Limits.MaxCallDepth))
	}
	switch c.Numeric.IntegerBits {
	case 0, 8, 16, 32, 64:
	default:
		errs = append(errs, fmt.Errorf("numeric.integer_bits must be one of 0, 8, 16, 32, 64, got %d", c.Numeric.IntegerBits))
	}
	return errors.Join(errs...)
}

// Interpreter converts the file settings into interpreter limits.
func (c *Config) Interpreter() interpreter.Config {
	return interpreter.Config{
		MaxSteps:     c.Limits.MaxSteps,
		MaxCallDepth: c.Limits.MaxCallDepth,
		IntegerBits:  c.Numeric.IntegerBits,
	}
}
