package config

import (
	"fmt"
	"net/url"
	"os"
	"strings"
	"time"

	"github.com/saturnines/blocktap-go/pkg/errors"
	"gopkg.in/yaml.v3"
)

type ValidationError struct {
	Field   string
	Message string
}

type Validator interface {
	Validate(cfg *Config) []ValidationError
}

// Returns the string representation of validation error
func (e ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// DefaultValueSetter Handles the interface for setting default values
type DefaultValueSetter interface {
	SetDefaults(cfg *Config)
}

// VariableExpander defines the interface for expanding variables
type VariableExpander interface {
	Expand(data []byte) []byte
}

// EnvExpander implements VariableExpander using environment variables
type EnvExpander struct{}

// Expand expands environment variables with the given data
func (e *EnvExpander) Expand(data []byte) []byte {
	expanded := os.Expand(string(data), os.Getenv)
	return []byte(expanded)
}

// Loader reads client configs from YAML
type Loader struct {
	expander      VariableExpander
	validators    []Validator
	defaultSetter DefaultValueSetter
}

// NewLoader creates a new Loader with the given components
func NewLoader(
	expander VariableExpander,
	defaultSetter DefaultValueSetter,
	validators ...Validator,
) *Loader {
	return &Loader{
		expander:      expander,
		validators:    validators,
		defaultSetter: defaultSetter,
	}
}

// NewDefaultLoader wires env expansion, defaults and every validator.
func NewDefaultLoader() *Loader {
	return NewLoader(
		&EnvExpander{},
		&Defaults{},
		&EndpointValidator{},
		&TimeoutValidator{},
		&LogLevelValidator{},
	)
}

// Load a config from a YAML file
func (l *Loader) Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.WrapError(err, errors.ErrConfiguration, "failed to read file")
	}

	return l.Parse(data)
}

// Parse parses a yaml config
func (l *Loader) Parse(data []byte) (*Config, error) {
	if l.expander != nil {
		data = l.expander.Expand(data)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, errors.WrapError(err, errors.ErrConfiguration, "failed to parse YAML")
	}

	return l.Apply(&cfg)
}

// Apply runs defaults and validators over a config built in code
func (l *Loader) Apply(cfg *Config) (*Config, error) {
	if l.defaultSetter != nil {
		l.defaultSetter.SetDefaults(cfg)
	}

	var allErrors []ValidationError
	for _, validator := range l.validators {
		allErrors = append(allErrors, validator.Validate(cfg)...)
	}

	if len(allErrors) > 0 {
		return nil, fmt.Errorf("%w: validation errors: %v", errors.ErrConfiguration, allErrors)
	}

	return cfg, nil
}

// FromEnv builds a config from BLOCKTAP_* environment variables.
func FromEnv() (*Config, error) {
	cfg := &Config{
		APIKey:   os.Getenv(EnvAPIKey),
		Endpoint: os.Getenv(EnvEndpoint),
	}
	if raw := os.Getenv(EnvTimeout); raw != "" {
		d, err := time.ParseDuration(raw)
		if err != nil {
			return nil, errors.WrapError(err, errors.ErrConfiguration, EnvTimeout)
		}
		cfg.Timeout = d
	}
	return NewDefaultLoader().Apply(cfg)
}

// Defaults implements DefaultValueSetter for Config
type Defaults struct{}

// SetDefaults fills in anything left empty
func (d *Defaults) SetDefaults(cfg *Config) {
	if cfg.Endpoint == "" {
		cfg.Endpoint = DefaultEndpoint
	}
	if cfg.Timeout == 0 {
		cfg.Timeout = DefaultTimeout
	}
	if cfg.UserAgent == "" {
		cfg.UserAgent = DefaultUserAgent
	}
	if cfg.LogLevel == "" {
		cfg.LogLevel = DefaultLogLevel
	}
}

// EndpointValidator checks the endpoint is an absolute http(s) URL
type EndpointValidator struct{}

func (v *EndpointValidator) Validate(cfg *Config) []ValidationError {
	var errs []ValidationError

	if cfg.Endpoint == "" {
		return append(errs, ValidationError{Field: "endpoint", Message: "is required"})
	}

	u, err := url.Parse(cfg.Endpoint)
	if err != nil {
		return append(errs, ValidationError{Field: "endpoint", Message: err.Error()})
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		errs = append(errs, ValidationError{Field: "endpoint", Message: fmt.Sprintf("unsupported scheme %q", u.Scheme)})
	}
	if u.Host == "" {
		errs = append(errs, ValidationError{Field: "endpoint", Message: "host is required"})
	}

	return errs
}

// TimeoutValidator rejects negative timeouts
type TimeoutValidator struct{}

func (v *TimeoutValidator) Validate(cfg *Config) []ValidationError {
	if cfg.Timeout < 0 {
		return []ValidationError{{Field: "timeout", Message: "must not be negative"}}
	}
	return nil
}

// LogLevelValidator checks log_level is one slog knows about
type LogLevelValidator struct{}

func (v *LogLevelValidator) Validate(cfg *Config) []ValidationError {
	switch strings.ToLower(cfg.LogLevel) {
	case "", "debug", "info", "warn", "warning", "error":
		return nil
	}
	return []ValidationError{{Field: "log_level", Message: fmt.Sprintf("unknown level: %s", cfg.LogLevel)}}
}
