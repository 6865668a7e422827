// Package config loads CLI configuration from the environment and optional .env files.
package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
)

// Environment variable names.
const (
	EnvProvider      = "REACT_PROVIDER"
	EnvOpenAIKey     = "OPENAI_API_KEY"
	EnvOpenAIModel   = "OPENAI_MODEL"
	EnvOpenAIBaseURL = "OPENAI_BASE_URL"
	EnvGitHubToken   = "GITHUB_TOKEN"
	EnvMaxIterations = "REACT_MAX_ITERATIONS"
	EnvTemperature   = "REACT_TEMPERATURE"
	EnvLogLevel      = "LOG_LEVEL"
)

// Providers.
const (
	ProviderOpenAI = "openai"
	ProviderGitHub = "github"
)

// Defaults.
const (
	DefaultModel         = "gpt-4o-mini"
	DefaultGitHubModel   = "openai/gpt-4o-mini"
	DefaultMaxIterations = 15
)

// ErrMissingCredentials is returned by Validate when the selected provider has no key.
var ErrMissingCredentials = errors.New("missing model credentials")

// Config is the resolved CLI configuration.
type Config struct {
	Provider      string
	APIKey        string
	GitHubToken   string
	Model         string
	BaseURL       string
	MaxIterations int
	Temperature   float64
	LogLevel      zerolog.Level
}

// Load reads the given .env files (missing files are skipped) and resolves the configuration.
// Variables set in the process environment take precedence over file values.
func Load(files ...string) (Config, error) {
	return LoadWithOverrides(nil, files...)
}

// LoadWithOverrides is Load with a final layer of values keyed by environment variable name,
// such as command line flags. Overrides win over the process environment and go through the
// same defaulting and validation.
func LoadWithOverrides(overrides map[string]string, files ...string) (Config, error) {
	fileEnv := make(map[string]string)
	for _, file := range files {
		if _, err := os.Stat(file); errors.Is(err, os.ErrNotExist) {
			continue
		}
		values, err := godotenv.Read(file)
		if err != nil {
			return Config{}, fmt.Errorf("read %s: %w", file, err)
		}
		for k, v := range values {
			fileEnv[k] = v
		}
	}

	return FromLookup(func(key string) (string, bool) {
		if v, ok := overrides[key]; ok {
			return v, true
		}
		if v, ok := os.LookupEnv(key); ok && v != "" {
			return v, true
		}
		v, ok := fileEnv[key]
		return v, ok
	})
}

// FromLookup resolves the configuration from lookup, applying defaults for unset values.
func FromLookup(lookup func(key string) (string, bool)) (Config, error) {
	get := func(key, def string) string {
		if v, ok := lookup(key); ok && strings.TrimSpace(v) != "" {
			return strings.TrimSpace(v)
		}
		return def
	}

	cfg := Config{
		Provider:    strings.ToLower(get(EnvProvider, ProviderOpenAI)),
		APIKey:      get(EnvOpenAIKey, ""),
		GitHubToken: get(EnvGitHubToken, ""),
		BaseURL:     get(EnvOpenAIBaseURL, ""),
	}

	switch cfg.Provider {
	case ProviderOpenAI:
		cfg.Model = get(EnvOpenAIModel, DefaultModel)
	case ProviderGitHub:
		cfg.Model = get(EnvOpenAIModel, DefaultGitHubModel)
	default:
		return Config{}, fmt.Errorf("%s: unknown provider %q", EnvProvider, cfg.Provider)
	}

	maxIter, err := strconv.Atoi(get(EnvMaxIterations, strconv.Itoa(DefaultMaxIterations)))
	if err != nil {
		return Config{}, fmt.Errorf("%s: %w", EnvMaxIterations, err)
	}
	if maxIter <= 0 {
		return Config{}, fmt.Errorf("%s: must be positive, got %d", EnvMaxIterations, maxIter)
	}
	cfg.MaxIterations = maxIter

	cfg.Temperature, err = strconv.ParseFloat(get(EnvTemperature, "0"), 64)
	if err != nil {
		return Config{}, fmt.Errorf("%s: %w", EnvTemperature, err)
	}

	cfg.LogLevel, err = zerolog.ParseLevel(strings.ToLower(get(EnvLogLevel, "info")))
	if err != nil {
		return Config{}, fmt.Errorf("%s: %w", EnvLogLevel, err)
	}

	return cfg, nil
}

// Validate reports whether the configuration can build a model client.
func (c Config) Validate() error {
	switch c.Provider {
	case ProviderGitHub:
		if c.GitHubToken == "" {
			return fmt.Errorf("%w: set %s", ErrMissingCredentials, EnvGitHubToken)
		}
	default:
		if c.APIKey == "" {
			return fmt.Errorf("%w: set %s", ErrMissingCredentials, EnvOpenAIKey)
		}
	}
	return nil
}
