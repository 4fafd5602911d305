package api

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/benjaminnamo/portfolio-chatbot/internal/profile"
	"github.com/benjaminnamo/portfolio-chatbot/internal/session"
)

const maxRequestBodySize = 64 << 10 // 64KB

// Deps holds what the HTTP handlers need.
type Deps struct {
	Profile  *profile.Store
	Sessions *session.Registry
	Logger   *slog.Logger

	// AllowedOrigins for CORS. Empty allows any origin.
	AllowedOrigins []string
}

// NewRouter returns the JSON API consumed by the web chat widget.
func NewRouter(deps Deps) http.Handler {
	if deps.Logger == nil {
		deps.Logger = slog.Default()
	}
	origins := deps.AllowedOrigins
	if len(origins) == 0 {
		origins = []string{"*"}
	}

	r := chi.NewRouter()

	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(requestLogger(deps.Logger))
	r.Use(chimw.Recoverer)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   origins,
		AllowedMethods:   []string{"GET", "POST", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Content-Type"},
		AllowCredentials: false,
		MaxAge:           300,
	}))

	r.Handle("/metrics", promhttp.Handler())

	r.Group(func(r chi.Router) {
		r.Use(requestMetrics)

		r.Get("/health", handleHealth)
		r.Get("/profile", handleProfile(deps.Profile))
		r.Get("/suggestions", handleSuggestions(deps.Profile))

		r.Post("/sessions", handleCreateSession(deps))
		r.Route("/sessions/{id}", func(r chi.Router) {
			r.Delete("/", handleDeleteSession(deps.Sessions))
			r.Get("/messages", handleListMessages(deps.Sessions))
			r.Post("/messages", handlePostMessage(deps.Sessions))
			r.Delete("/messages", handleClearMessages(deps.Sessions))
		})
	})

	return r
}
