package config

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/kelseyhightower/envconfig"
	toml "github.com/pelletier/go-toml/v2"
)

// Config is the registro configuration after file, environment and defaults
// have been merged.
type Config struct {
	Source  SourceConfig  `toml:"source"`
	Insight InsightConfig `toml:"insight"`
	Share   ShareConfig   `toml:"share"`
	Log     LogConfig     `toml:"log"`

	// Path is the resolved location of the config file, whether or not it exists.
	Path string `toml:"-" ignored:"true"`
}

// SourceConfig selects where the company collection comes from.
type SourceConfig struct {
	Kind           string `toml:"kind" validate:"oneof=http postgres file"`
	URL            string `toml:"url" validate:"omitempty,url"`
	DatabaseURL    string `toml:"database_url" split_words:"true" validate:"required_if=Kind postgres"`
	Table          string `toml:"table"`
	Path           string `toml:"path" validate:"required_if=Kind file"`
	TimeoutSeconds int    `toml:"timeout_seconds" split_words:"true" validate:"min=1,max=300"`
}

// Timeout returns the request timeout for the source.
func (s SourceConfig) Timeout() time.Duration {
	return time.Duration(s.TimeoutSeconds) * time.Second
}

// InsightConfig configures the optional language-model insight call.
type InsightConfig struct {
	APIKey string `toml:"api_key" envconfig:"GEMINI_API_KEY"`
	Model  string `toml:"model" validate:"required"`
}

// Enabled reports whether an API key is available.
func (i InsightConfig) Enabled() bool {
	return strings.TrimSpace(i.APIKey) != ""
}

// ShareConfig configures the primary share command. The record summary is
// written to the command's stdin.
type ShareConfig struct {
	Command []string `toml:"command" validate:"dive,required"`
}

// LogConfig configures the session log.
type LogConfig struct {
	File  string `toml:"file"`
	Debug bool   `toml:"debug"`
}

const (
	defaultConfigPath = "~/.config/registro/config.toml"
	defaultSourceURL  = "http://127.0.0.1:8787/companies"
	defaultTable      = "empresas"
	defaultTimeout    = 10
	defaultModel      = "gemini-2.5-flash"

	// EnvPrefix prefixes every environment override, e.g. REGISTRO_SOURCE_URL.
	EnvPrefix = "REGISTRO"
)

// Default returns the configuration used when no file is present.
func Default() Config {
	return Config{
		Source: SourceConfig{
			Kind:           "http",
			URL:            defaultSourceURL,
			Table:          defaultTable,
			TimeoutSeconds: defaultTimeout,
		},
		Insight: InsightConfig{Model: defaultModel},
	}
}

// Load locates and parses the config file, falling back to defaults when
// missing, then applies environment overrides and validates the result.
func Load(path string) (Config, error) {
	resolved, err := resolvePath(path)
	if err != nil {
		return Config{}, err
	}

	cfg := Default()
	cfg.Path = resolved

	file, err := os.Open(resolved)
	switch {
	case errors.Is(err, os.ErrNotExist):
	case err != nil:
		return Config{}, fmt.Errorf("open config: %w", err)
	default:
		defer file.Close()
		bytes, err := io.ReadAll(file)
		if err != nil {
			return Config{}, fmt.Errorf("read config: %w", err)
		}
		if err := toml.Unmarshal(bytes, &cfg); err != nil {
			return Config{}, fmt.Errorf("parse config: %w", err)
		}
	}

	if err := envconfig.Process(EnvPrefix, &cfg); err != nil {
		return Config{}, fmt.Errorf("environment overrides: %w", err)
	}
	if strings.TrimSpace(cfg.Insight.APIKey) == "" {
		cfg.Insight.APIKey = os.Getenv("API_KEY")
	}

	if err := cfg.normalize(); err != nil {
		return Config{}, err
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate checks field constraints and reports every violation at once.
func (c Config) Validate() error {
	err := validate.Struct(c)
	if err == nil {
		return nil
	}
	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return fmt.Errorf("validate config: %w", err)
	}
	problems := make([]string, 0, len(fieldErrs))
	for _, fe := range fieldErrs {
		problems = append(problems, describe(fe))
	}
	return fmt.Errorf("invalid config: %s", strings.Join(problems, "; "))
}

func (c *Config) normalize() error {
	c.Source.Kind = strings.ToLower(strings.TrimSpace(c.Source.Kind))
	if c.Source.Kind == "" {
		c.Source.Kind = "http"
	}
	c.Source.URL = strings.TrimSpace(c.Source.URL)
	if c.Source.URL == "" {
		c.Source.URL = defaultSourceURL
	}
	if !strings.Contains(c.Source.URL, "://") {
		c.Source.URL = "http://" + c.Source.URL
	}
	c.Source.DatabaseURL = strings.TrimSpace(c.Source.DatabaseURL)
	c.Source.Table = strings.TrimSpace(c.Source.Table)
	if c.Source.Table == "" {
		c.Source.Table = defaultTable
	}
	if c.Source.TimeoutSeconds == 0 {
		c.Source.TimeoutSeconds = defaultTimeout
	}
	c.Insight.APIKey = strings.TrimSpace(c.Insight.APIKey)
	c.Insight.Model = strings.TrimSpace(c.Insight.Model)
	if c.Insight.Model == "" {
		c.Insight.Model = defaultModel
	}

	var err error
	if p := strings.TrimSpace(c.Source.Path); p != "" {
		if c.Source.Path, err = expandPath(p); err != nil {
			return fmt.Errorf("source.path: %w", err)
		}
	}
	if p := strings.TrimSpace(c.Log.File); p != "" {
		if c.Log.File, err = expandPath(p); err != nil {
			return fmt.Errorf("log.file: %w", err)
		}
	}
	return nil
}

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name := strings.SplitN(f.Tag.Get("toml"), ",", 2)[0]
		if name == "-" || name == "" {
			return f.Name
		}
		return name
	})
	return v
}

func describe(fe validator.FieldError) string {
	field := strings.TrimPrefix(fe.Namespace(), "Config.")
	switch fe.Tag() {
	case "required", "required_if":
		return field + " is required"
	case "oneof":
		return fmt.Sprintf("%s must be one of [%s], got %q", field, fe.Param(), fe.Value())
	case "url":
		return fmt.Sprintf("%s must be a valid URL, got %q", field, fe.Value())
	case "min":
		return fmt.Sprintf("%s must be at least %s", field, fe.Param())
	case "max":
		return fmt.Sprintf("%s must be at most %s", field, fe.Param())
	default:
		return fmt.Sprintf("%s failed %s", field, fe.Tag())
	}
}

func resolvePath(path string) (string, error) {
	if strings.TrimSpace(path) == "" {
		return expandPath(defaultConfigPath)
	}
	return expandPath(path)
}

func expandPath(path string) (string, error) {
	trimmed := strings.TrimSpace(path)
	if trimmed == "" {
		return "", fmt.Errorf("path is empty")
	}
	if strings.HasPrefix(trimmed, "~") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home dir: %w", err)
		}
		trimmed = filepath.Join(home, strings.TrimPrefix(trimmed, "~"))
	}
	return filepath.Abs(trimmed)
}
