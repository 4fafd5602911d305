package chat

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"time"

	"github.com/benjaminnamo/portfolio-chatbot/internal/metrics"
	"github.com/benjaminnamo/portfolio-chatbot/internal/profile"
	"github.com/benjaminnamo/portfolio-chatbot/internal/proxy"
)

const (
	DefaultTemperature    = 0.7
	DefaultMaxTokens      = 1000
	DefaultAttemptTimeout = 30 * time.Second
)

// Completer sends one chat completion. Implemented by proxy.Client.
type Completer interface {
	Complete(ctx context.Context, req proxy.ChatRequest) (proxy.ChatResponse, error)
}

// Config controls the candidate list and per-request parameters.
type Config struct {
	PrimaryModel   string
	FallbackModels []string
	// AttemptTimeout bounds each candidate request. Zero means the default;
	// negative disables the per-attempt bound.
	AttemptTimeout time.Duration
	Temperature    float64
	MaxTokens      int
}

// Attempt identifies one candidate try within a Generate call.
type Attempt struct {
	Model    string
	Position int
}

// Orchestrator turns a user utterance into display text, walking the
// candidate models in order until one answers.
type Orchestrator struct {
	client     Completer
	profile    *profile.Store
	candidates []string
	timeout    time.Duration
	temp       float64
	maxTokens  int
	system     string
	logger     *slog.Logger
}

// New builds an Orchestrator. The system prompt is rendered once because the
// profile never changes after startup.
func New(client Completer, store *profile.Store, cfg Config, logger *slog.Logger) (*Orchestrator, error) {
	if client == nil {
		return nil, errors.New("chat: nil completer")
	}
	if store == nil {
		return nil, errors.New("chat: nil profile store")
	}
	candidates := candidateList(cfg.PrimaryModel, cfg.FallbackModels)
	if len(candidates) == 0 {
		return nil, errors.New("chat: no candidate models configured")
	}
	if logger == nil {
		logger = slog.Default()
	}

	timeout := cfg.AttemptTimeout
	if timeout == 0 {
		timeout = DefaultAttemptTimeout
	}
	temp := cfg.Temperature
	if temp == 0 {
		temp = DefaultTemperature
	}
	maxTokens := cfg.MaxTokens
	if maxTokens <= 0 {
		maxTokens = DefaultMaxTokens
	}

	return &Orchestrator{
		client:     client,
		profile:    store,
		candidates: candidates,
		timeout:    timeout,
		temp:       temp,
		maxTokens:  maxTokens,
		system:     SystemPrompt(store.Get(), store.Snapshot()),
		logger:     logger,
	}, nil
}

// candidateList returns primary followed by fallbacks, dropping blanks and
// repeats while keeping first occurrence order.
func candidateList(primary string, fallbacks []string) []string {
	seen := make(map[string]bool, len(fallbacks)+1)
	var out []string
	for _, m := range append([]string{primary}, fallbacks...) {
		m = strings.TrimSpace(m)
		if m == "" || seen[m] {
			continue
		}
		seen[m] = true
		out = append(out, m)
	}
	return out
}

// Candidates returns the ordered model list tried by Generate.
func (o *Orchestrator) Candidates() []string {
	out := make([]string, len(o.candidates))
	copy(out, o.candidates)
	return out
}

// SystemPrompt returns the rendered system instruction.
func (o *Orchestrator) SystemPrompt() string {
	return o.system
}

// Generate returns the first non-empty answer from the candidate models. When
// every candidate fails it returns a fixed apology chosen from the last
// failure. It never returns raw error text.
func (o *Orchestrator) Generate(ctx context.Context, userText string) string {
	start := time.Now()
	defer func() {
		metrics.GenerateDuration.Observe(time.Since(start).Seconds())
	}()

	var lastErr error
	for i, model := range o.candidates {
		a := Attempt{Model: model, Position: i}
		o.logger.Info("requesting completion", "model", a.Model, "attempt", a.Position+1, "of", len(o.candidates))

		text, err := o.try(ctx, a, userText)
		if err == nil {
			metrics.ModelAttempts.WithLabelValues(model, "success").Inc()
			return text
		}

		lastErr = err
		kind := Classify(err)
		metrics.ModelAttempts.WithLabelValues(model, kind.String()).Inc()
		o.logger.Warn("completion attempt failed",
			"model", a.Model,
			"attempt", a.Position+1,
			"of", len(o.candidates),
			"kind", kind.String(),
			"error", err,
		)

		// The caller is gone; further candidates would fail the same way.
		if ctx.Err() != nil {
			break
		}
	}

	kind := Classify(lastErr)
	metrics.Apologies.WithLabelValues(kind.String()).Inc()
	o.logger.Error("all candidate models failed", "kind", kind.String(), "error", lastErr)
	return Apology(kind, o.profile.Get())
}

func (o *Orchestrator) try(ctx context.Context, a Attempt, userText string) (string, error) {
	if o.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, o.timeout)
		defer cancel()
	}

	resp, err := o.client.Complete(ctx, proxy.ChatRequest{
		Model: a.Model,
		Messages: []proxy.Message{
			{Role: "system", Content: o.system},
			{Role: "user", Content: userText},
		},
		Temperature: o.temp,
		MaxTokens:   o.maxTokens,
	})
	// Errors are returned unwrapped: Classify falls back to matching the
	// error text, and a model name in it would read as "model unavailable".
	if err != nil {
		return "", err
	}

	text := resp.Content()
	if strings.TrimSpace(text) == "" {
		return "", proxy.ErrEmptyResponse
	}
	return text, nil
}
