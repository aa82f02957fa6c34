package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// SecretKeyEnv names the environment variable holding the SuperJob application key.
const SecretKeyEnv = "SUPERJOB_SECRET_KEY"

// ErrMissingSecretKey is returned when the SuperJob key is not set.
var ErrMissingSecretKey = errors.New(SecretKeyEnv + " is not set")

// DefaultLanguages is the language list used when none is configured.
var DefaultLanguages = []string{
	"Python",
	"JavaScript",
	"Java",
	"C++",
	"C#",
	"Ruby",
	"Go",
	"Swift",
	"Kotlin",
	"Rust",
}

// Config holds everything a run needs. It is built once at startup and
// passed explicitly to the providers.
type Config struct {
	SecretKey  string           `yaml:"-"`
	Languages  []string         `yaml:"languages"`
	MaxPages   int              `yaml:"max_pages"`
	Timeout    time.Duration    `yaml:"timeout"`
	UserAgent  string           `yaml:"user_agent"`
	ProxyURL   string           `yaml:"proxy"`
	HeadHunter HeadHunterConfig `yaml:"headhunter"`
	SuperJob   SuperJobConfig   `yaml:"superjob"`
}

// HeadHunterConfig holds the api.hh.ru search settings.
type HeadHunterConfig struct {
	BaseURL  string `yaml:"base_url"`
	Area     string `yaml:"area"`
	Currency string `yaml:"currency"`
	PerPage  int    `yaml:"per_page"`
	Title    string `yaml:"title"`
}

// SuperJobConfig holds the api.superjob.ru search settings.
type SuperJobConfig struct {
	BaseURL string `yaml:"base_url"`
	Town    string `yaml:"town"`
	PerPage int    `yaml:"per_page"`
	Title   string `yaml:"title"`
}

// Default returns the built-in configuration: Moscow vacancies on both providers.
func Default() *Config {
	return &Config{
		Languages: append([]string(nil), DefaultLanguages...),
		MaxPages:  20,
		Timeout:   60 * time.Second,
		HeadHunter: HeadHunterConfig{
			BaseURL:  "https://api.hh.ru/vacancies",
			Area:     "1",
			Currency: "RUR",
			PerPage:  100,
			Title:    "HeadHunter Moscow",
		},
		SuperJob: SuperJobConfig{
			BaseURL: "https://api.superjob.ru/2.0/vacancies/",
			Town:    "Москва",
			PerPage: 100,
			Title:   "SuperJob Moscow",
		},
	}
}

// Load builds the configuration from the defaults, the optional YAML file at
// path and the environment, in that order of precedence. The result is not
// validated; callers apply their own overrides first and then call Validate.
func Load(path string) (*Config, error) {
	cfg := Default()

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config file: %w", err)
		}
	}

	cfg.SecretKey = strings.TrimSpace(os.Getenv(SecretKeyEnv))
	cfg.MaxPages = getEnvInt("LANGSALARY_MAX_PAGES", cfg.MaxPages)
	cfg.UserAgent = getEnv("LANGSALARY_USER_AGENT", cfg.UserAgent)

	return cfg, nil
}

// Validate checks the values that cannot be defaulted.
func (c *Config) Validate() error {
	if len(c.Languages) == 0 {
		return errors.New("no programming languages configured")
	}
	if c.MaxPages < 0 {
		return fmt.Errorf("max_pages must not be negative, got %d", c.MaxPages)
	}
	if c.Timeout <= 0 {
		return fmt.Errorf("timeout must be positive, got %s", c.Timeout)
	}
	return nil
}

// RequireSecretKey fails when the SuperJob key is missing.
func (c *Config) RequireSecretKey() error {
	if c.SecretKey == "" {
		return ErrMissingSecretKey
	}
	return nil
}

func getEnv(key, defaultVal string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return defaultVal
}

func getEnvInt(key string, defaultVal int) int {
	if val := os.Getenv(key); val != "" {
		if i, err := strconv.Atoi(val); err == nil {
			return i
		}
	}
	return defaultVal
}
