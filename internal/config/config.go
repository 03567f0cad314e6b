// Package config loads the CLI configuration.
//
// Values are resolved from lowest to highest priority:
//  1. defaults in code
//  2. the YAML file (--config flag, then FERS_CONFIG)
//  3. environment variables
//
// The result is validated before it is returned.
package config

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"
)

const (
	EnvConfig       = "FERS_CONFIG"
	EnvLogLevel     = "FERS_LOG_LEVEL"
	EnvEnvironment  = "FERS_ENVIRONMENT"
	EnvSamplePoints = "FERS_SAMPLE_POINTS"
)

type Config struct {
	LogLevel    string     `yaml:"log_level" validate:"required,oneof=debug info warn error"`
	Environment string     `yaml:"environment" validate:"required,oneof=development production"`
	Deflection  Deflection `yaml:"deflection"`
	Diagram     Diagram    `yaml:"diagram"`
	Export      Export     `yaml:"export"`

	// Sources lists where values were loaded from, in order.
	Sources []string `yaml:"-"`
}

type Deflection struct {
	SamplePoints int     `yaml:"sample_points" validate:"min=2"`
	Scale        float64 `yaml:"scale" validate:"gt=0"`
}

type Diagram struct {
	WidthIn  float64 `yaml:"width_in" validate:"gt=0"`
	HeightIn float64 `yaml:"height_in" validate:"gt=0"`
	Plane    string  `yaml:"plane" validate:"oneof=xy xz yz"`
}

type Export struct {
	Format string `yaml:"format" validate:"oneof=json yaml"`
}

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		LogLevel:    "info",
		Environment: "development",
		Deflection:  Deflection{SamplePoints: 20, Scale: 1},
		Diagram:     Diagram{WidthIn: 8, HeightIn: 6, Plane: "xz"},
		Export:      Export{Format: "json"},
	}
}

// Load resolves the configuration. An explicit path that does not exist is
// an error; a missing FERS_CONFIG file is not.
func Load(path string) (*Config, error) {
	cfg := Default()
	cfg.Sources = append(cfg.Sources, "defaults")

	explicit := path != ""
	if !explicit {
		path = os.Getenv(EnvConfig)
	}
	if path != "" {
		err := cfg.loadFile(path)
		switch {
		case err == nil:
			cfg.Sources = append(cfg.Sources, path)
		case errors.Is(err, os.ErrNotExist) && !explicit:
		default:
			return nil, fmt.Errorf("failed to load config %s: %w", path, err)
		}
	}

	if err := cfg.loadEnvironmentVariables(); err != nil {
		return nil, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}
	return cfg, nil
}

func (c *Config) loadFile(path string) error {
	f, err := os.Open(path)
	if err != nil {
		return err
	}
	defer f.Close()

	dec := yaml.NewDecoder(f)
	dec.KnownFields(true)
	if err := dec.Decode(c); err != nil && !errors.Is(err, io.EOF) {
		return fmt.Errorf("failed to parse %s: %w", path, err)
	}
	return nil
}

func (c *Config) loadEnvironmentVariables() error {
	found := false
	if val := os.Getenv(EnvLogLevel); val != "" {
		c.LogLevel = strings.ToLower(val)
		found = true
	}
	if val := os.Getenv(EnvEnvironment); val != "" {
		c.Environment = strings.ToLower(val)
		found = true
	}
	if val := os.Getenv(EnvSamplePoints); val != "" {
		n, err := strconv.Atoi(val)
		if err != nil {
			return fmt.Errorf("%s: %w", EnvSamplePoints, err)
		}
		c.Deflection.SamplePoints = n
		found = true
	}
	if found {
		c.Sources = append(c.Sources, "environment")
	}
	return nil
}

var validate = validator.New()

// Validate checks every field against its constraints.
func (c *Config) Validate() error {
	err := validate.Struct(c)
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) {
		msgs := make([]string, 0, len(verrs))
		for _, fe := range verrs {
			msgs = append(msgs, fmt.Sprintf("%s failed %q (value %v)", fe.Namespace(), fe.Tag(), fe.Value()))
		}
		return errors.New(strings.Join(msgs, "; "))
	}
	return err
}
