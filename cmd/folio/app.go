package main

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/benjaminnamo/portfolio-chatbot/internal/chat"
	"github.com/benjaminnamo/portfolio-chatbot/internal/config"
	"github.com/benjaminnamo/portfolio-chatbot/internal/profile"
	"github.com/benjaminnamo/portfolio-chatbot/internal/proxy"
)

// app is the wiring shared by every command that talks to the gateway.
type app struct {
	cfg     config.Config
	logger  *slog.Logger
	profile *profile.Store
	client  *proxy.Client
	orch    *chat.Orchestrator
}

// loadConfig loads configuration and applies the persistent flag overrides.
func loadConfig() (config.Config, error) {
	cfg, err := config.Load()
	if err != nil {
		return config.Config{}, err
	}
	if profilePath != "" {
		cfg.Profile.Path = profilePath
	}
	if logLevel != "" {
		cfg.Log.Level = logLevel
	}
	return cfg, nil
}

func parseLevel(s string) slog.Level {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

func newLogger(level string, w io.Writer) *slog.Logger {
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: parseLevel(level)}))
}

// openProfile loads the profile named by cfg, falling back to the
// placeholder when no file is present.
func openProfile(cfg config.Config, logger *slog.Logger) (*profile.Store, error) {
	return openProfileAt(cfg.Profile.Path, logger)
}

func openProfileAt(path string, logger *slog.Logger) (*profile.Store, error) {
	store, err := profile.Open(path)
	if err != nil {
		return nil, err
	}
	if store.Source() == profile.SourcePlaceholder {
		logger.Warn("no profile file found, using placeholder profile", "path", path)
	} else {
		logger.Debug("profile loaded", "path", path, "name", store.Name())
	}
	return store, nil
}

func newProxyClient(cfg config.Config) *proxy.Client {
	return proxy.NewClient(cfg.Proxy.OpenRouterAPIKey,
		proxy.WithBaseURL(cfg.Proxy.BaseURL),
		proxy.WithAppIdentity(cfg.Proxy.Referer, cfg.Proxy.Title),
	)
}

// newApp builds the profile store, gateway client and orchestrator. Logs go
// to logw.
func newApp(logw io.Writer) (*app, error) {
	cfg, err := loadConfig()
	if err != nil {
		return nil, err
	}
	logger := newLogger(cfg.Log.Level, logw)
	slog.SetDefault(logger)

	store, err := openProfile(cfg, logger)
	if err != nil {
		return nil, err
	}

	timeout, err := cfg.Proxy.Timeout()
	if err != nil {
		return nil, err
	}

	client := newProxyClient(cfg)
	orch, err := chat.New(client, store, chat.Config{
		PrimaryModel:   cfg.Proxy.PrimaryModel,
		FallbackModels: cfg.Proxy.Fallbacks(),
		AttemptTimeout: timeout,
	}, logger)
	if err != nil {
		return nil, fmt.Errorf("building orchestrator: %w", err)
	}

	return &app{
		cfg:     cfg,
		logger:  logger,
		profile: store,
		client:  client,
		orch:    orch,
	}, nil
}

// stderrLog is where non-interactive commands send logs.
var stderrLog io.Writer = os.Stderr
