package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/benjaminnamo/portfolio-chatbot/internal/profile"
	"github.com/benjaminnamo/portfolio-chatbot/internal/session"
)

type sessionResponse struct {
	ID          string            `json:"id"`
	Messages    []session.Message `json:"messages"`
	Suggestions []string          `json:"suggestions"`
}

type messagesResponse struct {
	Messages []session.Message `json:"messages"`
	Busy     bool              `json:"busy"`
}

type postMessageRequest struct {
	Content string `json:"content"`
}

func handleHealth(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.Write([]byte(`{"status":"ok"}`))
}

func handleProfile(store *profile.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Header().Set("X-Profile-Source", store.Source().String())
		w.Write([]byte(store.Snapshot()))
	}
}

func handleSuggestions(store *profile.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]any{
			"suggestions": session.SuggestedQuestions(store.Get()),
		})
	}
}

func handleCreateSession(deps Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		s, err := deps.Sessions.Create()
		if err != nil {
			sessionError(w, err)
			return
		}
		writeJSON(w, http.StatusCreated, sessionResponse{
			ID:          s.ID,
			Messages:    s.Messages(),
			Suggestions: session.SuggestedQuestions(deps.Profile.Get()),
		})
	}
}

func handleDeleteSession(reg *session.Registry) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		reg.Delete(chi.URLParam(r, "id"))
		w.WriteHeader(http.StatusNoContent)
	}
}

func handleListMessages(reg *session.Registry) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		s, err := reg.Get(chi.URLParam(r, "id"))
		if err != nil {
			sessionError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, messagesResponse{Messages: s.Messages(), Busy: s.Busy()})
	}
}

func handlePostMessage(reg *session.Registry) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		s, err := reg.Get(chi.URLParam(r, "id"))
		if err != nil {
			sessionError(w, err)
			return
		}

		r.Body = http.MaxBytesReader(w, r.Body, maxRequestBodySize)
		defer r.Body.Close()

		var req postMessageRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			httpError(w, http.StatusBadRequest, "invalid_request_error", "invalid request body: %v", err)
			return
		}

		reply, err := s.Ask(r.Context(), req.Content)
		if err != nil {
			sessionError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, reply)
	}
}

func handleClearMessages(reg *session.Registry) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		s, err := reg.Get(chi.URLParam(r, "id"))
		if err != nil {
			sessionError(w, err)
			return
		}
		if err := s.Clear(); err != nil {
			sessionError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, messagesResponse{Messages: s.Messages()})
	}
}

func sessionError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, session.ErrEmptyInput):
		httpError(w, http.StatusBadRequest, "invalid_request_error", "%v", err)
	case errors.Is(err, session.ErrBusy):
		httpError(w, http.StatusConflict, "conflict_error", "%v", err)
	case errors.Is(err, session.ErrNotFound):
		httpError(w, http.StatusNotFound, "not_found_error", "%v", err)
	case errors.Is(err, session.ErrTooManySessions):
		httpError(w, http.StatusServiceUnavailable, "capacity_error", "%v", err)
	default:
		httpError(w, http.StatusInternalServerError, "api_error", "%v", err)
	}
}

func writeJSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	json.NewEncoder(w).Encode(v)
}

func httpError(w http.ResponseWriter, code int, errType string, format string, args ...any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	msg := fmt.Sprintf(format, args...)
	json.NewEncoder(w).Encode(map[string]any{
		"error": map[string]any{
			"message": msg,
			"type":    errType,
		},
	})
}
