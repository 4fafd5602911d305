package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Server  ServerConfig
	Proxy   ProxyConfig
	Profile ProfileConfig
	Log     LogConfig
}

type ServerConfig struct {
	Host string
	Port int
}

type ProxyConfig struct {
	OpenRouterAPIKey string
	BaseURL          string
	PrimaryModel     string
	FallbackModels   string // comma-separated, tried in order
	AttemptTimeout   string // Go duration, e.g. "30s"
	Referer          string
	Title            string
}

type ProfileConfig struct {
	Path string
}

type LogConfig struct {
	Level string
}

// Fallbacks returns FallbackModels split on commas with blanks removed.
func (p ProxyConfig) Fallbacks() []string {
	var out []string
	for _, m := range strings.Split(p.FallbackModels, ",") {
		if m = strings.TrimSpace(m); m != "" {
			out = append(out, m)
		}
	}
	return out
}

// Timeout parses AttemptTimeout. An empty value yields zero.
func (p ProxyConfig) Timeout() (time.Duration, error) {
	if strings.TrimSpace(p.AttemptTimeout) == "" {
		return 0, nil
	}
	d, err := time.ParseDuration(p.AttemptTimeout)
	if err != nil {
		return 0, fmt.Errorf("invalid proxy.attempt_timeout %q: %w", p.AttemptTimeout, err)
	}
	return d, nil
}

func defaults() Config {
	return Config{
		Server: ServerConfig{
			Host: "127.0.0.1",
			Port: 4000,
		},
		Proxy: ProxyConfig{
			BaseURL:        "https://openrouter.ai/api/v1",
			PrimaryModel:   "google/gemini-pro:latest",
			FallbackModels: "anthropic/claude-3-haiku:latest,openai/gpt-3.5-turbo:latest",
			AttemptTimeout: "30s",
			Referer:        "http://localhost:4000",
			Title:          "Portfolio Chat",
		},
		Profile: ProfileConfig{
			Path: DefaultProfilePath(),
		},
		Log: LogConfig{
			Level: "info",
		},
	}
}

// Load reads configuration from the JSON config file, a .env file in the
// working directory, FOLIO_* environment variables, and the secrets file.
// Later sources win. A missing OpenRouter API key is an error; there is no
// built-in key.
func Load() (Config, error) {
	// A missing .env is the common case.
	_ = godotenv.Load()
	return loadWith(newPlatformBackend(), secretsFile{})
}

// secretStore abstracts the secrets file for testing.
type secretStore interface {
	Get(service, account string) (string, error)
}

func loadWith(b ConfigBackend, secrets secretStore) (Config, error) {
	cfg := defaults()

	if err := applyBackend(&cfg, b); err != nil {
		return Config{}, err
	}

	applyEnvOverrides(&cfg)

	if cfg.Proxy.OpenRouterAPIKey == "" {
		cfg.Proxy.OpenRouterAPIKey = os.Getenv("OPENROUTER_API_KEY")
	}
	if cfg.Proxy.OpenRouterAPIKey == "" {
		if key, err := secrets.Get("folio", "openrouter_api_key"); err == nil && key != "" {
			cfg.Proxy.OpenRouterAPIKey = strings.TrimSpace(key)
		}
	}

	if cfg.Proxy.OpenRouterAPIKey == "" {
		return Config{}, fmt.Errorf("missing required config: OpenRouter API key. "+
			"Set it via environment variable FOLIO_OPENROUTER_API_KEY or the secrets file %s", secretsFilePath())
	}

	if err := cfg.validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c Config) validate() error {
	if strings.TrimSpace(c.Proxy.PrimaryModel) == "" {
		return fmt.Errorf("missing required config: proxy.primary_model")
	}
	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		return fmt.Errorf("invalid server.port %d", c.Server.Port)
	}
	if _, err := c.Proxy.Timeout(); err != nil {
		return err
	}
	return nil
}
