package config

import (
	"fmt"
	"os"
	"strconv"
)

type keyType int

const (
	kString keyType = iota
	kInt
)

type keySpec struct {
	key     string
	typ     keyType
	env     string
	secret  bool
	apply   func(cfg *Config, v any)
	extract func(cfg Config) any
}

var specs = []keySpec{
	{
		key: "server.host", typ: kString, env: "FOLIO_SERVER_HOST",
		apply:   func(cfg *Config, v any) { cfg.Server.Host = v.(string) },
		extract: func(cfg Config) any { return cfg.Server.Host },
	},
	{
		key: "server.port", typ: kInt, env: "FOLIO_SERVER_PORT",
		apply:   func(cfg *Config, v any) { cfg.Server.Port = v.(int) },
		extract: func(cfg Config) any { return cfg.Server.Port },
	},
	{
		key: "proxy.openrouter_api_key", typ: kString, env: "FOLIO_OPENROUTER_API_KEY",
		secret:  true,
		apply:   func(cfg *Config, v any) { cfg.Proxy.OpenRouterAPIKey = v.(string) },
		extract: func(cfg Config) any { return cfg.Proxy.OpenRouterAPIKey },
	},
	{
		key: "proxy.base_url", typ: kString, env: "FOLIO_PROXY_BASE_URL",
		apply:   func(cfg *Config, v any) { cfg.Proxy.BaseURL = v.(string) },
		extract: func(cfg Config) any { return cfg.Proxy.BaseURL },
	},
	{
		key: "proxy.primary_model", typ: kString, env: "FOLIO_PROXY_PRIMARY_MODEL",
		apply:   func(cfg *Config, v any) { cfg.Proxy.PrimaryModel = v.(string) },
		extract: func(cfg Config) any { return cfg.Proxy.PrimaryModel },
	},
	{
		key: "proxy.fallback_models", typ: kString, env: "FOLIO_PROXY_FALLBACK_MODELS",
		apply:   func(cfg *Config, v any) { cfg.Proxy.FallbackModels = v.(string) },
		extract: func(cfg Config) any { return cfg.Proxy.FallbackModels },
	},
	{
		key: "proxy.attempt_timeout", typ: kString, env: "FOLIO_PROXY_ATTEMPT_TIMEOUT",
		apply:   func(cfg *Config, v any) { cfg.Proxy.AttemptTimeout = v.(string) },
		extract: func(cfg Config) any { return cfg.Proxy.AttemptTimeout },
	},
	{
		key: "proxy.referer", typ: kString, env: "FOLIO_PROXY_REFERER",
		apply:   func(cfg *Config, v any) { cfg.Proxy.Referer = v.(string) },
		extract: func(cfg Config) any { return cfg.Proxy.Referer },
	},
	{
		key: "proxy.title", typ: kString, env: "FOLIO_PROXY_TITLE",
		apply:   func(cfg *Config, v any) { cfg.Proxy.Title = v.(string) },
		extract: func(cfg Config) any { return cfg.Proxy.Title },
	},
	{
		key: "profile.path", typ: kString, env: "FOLIO_PROFILE_PATH",
		apply:   func(cfg *Config, v any) { cfg.Profile.Path = v.(string) },
		extract: func(cfg Config) any { return cfg.Profile.Path },
	},
	{
		key: "log.level", typ: kString, env: "FOLIO_LOG_LEVEL",
		apply:   func(cfg *Config, v any) { cfg.Log.Level = v.(string) },
		extract: func(cfg Config) any { return cfg.Log.Level },
	},
}

func applyBackend(cfg *Config, b ConfigBackend) error {
	for _, s := range specs {
		if s.secret {
			continue
		}
		switch s.typ {
		case kString:
			v, ok, err := b.GetString(s.key)
			if err != nil {
				return fmt.Errorf("reading %s: %w", s.key, err)
			}
			if ok {
				s.apply(cfg, v)
			}
		case kInt:
			v, ok, err := b.GetInt(s.key)
			if err != nil {
				return fmt.Errorf("reading %s: %w", s.key, err)
			}
			if ok {
				s.apply(cfg, v)
			}
		}
	}
	return nil
}

func applyEnvOverrides(cfg *Config) {
	for _, s := range specs {
		if s.env == "" {
			continue
		}
		raw := os.Getenv(s.env)
		if raw == "" {
			continue
		}
		switch s.typ {
		case kString:
			s.apply(cfg, raw)
		case kInt:
			if i, err := strconv.Atoi(raw); err == nil {
				s.apply(cfg, i)
			} else {
				fmt.Fprintf(os.Stderr, "[WARN] could not parse integer from env var %s=%q: %v. Using default value.\n", s.env, raw, err)
			}
		}
	}
}
