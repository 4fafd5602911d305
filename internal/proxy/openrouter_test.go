package proxy

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"
)

func testRequest() ChatRequest {
	return ChatRequest{
		Model: "google/gemini-pro:latest",
		Messages: []Message{
			{Role: "system", Content: "be brief"},
			{Role: "user", Content: "hi"},
		},
		Temperature: 0.7,
		MaxTokens:   1000,
	}
}

func TestComplete_Success(t *testing.T) {
	respJSON := `{"id":"gen-1","choices":[{"message":{"role":"assistant","content":"Hello!"}}]}`

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/chat/completions" {
			http.NotFound(w, r)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		fmt.Fprint(w, respJSON)
	}))
	defer srv.Close()

	c := NewClientWithBaseURL("test-key", srv.URL)
	resp, err := c.Complete(context.Background(), testRequest())
	if err != nil {
		t.Fatalf("Complete: %v", err)
	}
	if got := resp.Content(); got != "Hello!" {
		t.Errorf("Content() = %q, want %q", got, "Hello!")
	}
}

func TestComplete_RequestBody(t *testing.T) {
	var got map[string]any

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if err := json.NewDecoder(r.Body).Decode(&got); err != nil {
			t.Errorf("decoding body: %v", err)
		}
		fmt.Fprint(w, `{"choices":[{"message":{"role":"assistant","content":"ok"}}]}`)
	}))
	defer srv.Close()

	c := NewClientWithBaseURL("test-key", srv.URL)
	if _, err := c.Complete(context.Background(), testRequest()); err != nil {
		t.Fatalf("Complete: %v", err)
	}

	if got["model"] != "google/gemini-pro:latest" {
		t.Errorf("model = %v", got["model"])
	}
	if got["temperature"] != 0.7 {
		t.Errorf("temperature = %v, want 0.7", got["temperature"])
	}
	if got["max_tokens"] != float64(1000) {
		t.Errorf("max_tokens = %v, want 1000", got["max_tokens"])
	}
	msgs, ok := got["messages"].([]any)
	if !ok || len(msgs) != 2 {
		t.Fatalf("messages = %v, want 2 entries", got["messages"])
	}
	first := msgs[0].(map[string]any)
	if first["role"] != "system" {
		t.Errorf("messages[0].role = %v, want system", first["role"])
	}
}

func TestComplete_Headers(t *testing.T) {
	var gotAuth, gotReferer, gotTitle string

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		gotReferer = r.Header.Get("HTTP-Referer")
		gotTitle = r.Header.Get("X-Title")
		fmt.Fprint(w, `{"choices":[{"message":{"role":"assistant","content":"ok"}}]}`)
	}))
	defer srv.Close()

	c := NewClient("test-key", WithBaseURL(srv.URL), WithAppIdentity("https://benjaminnamo.dev", "Benjamin Namo Portfolio"))
	if _, err := c.Complete(context.Background(), testRequest()); err != nil {
		t.Fatalf("Complete: %v", err)
	}

	if gotAuth != "Bearer test-key" {
		t.Errorf("Authorization = %q, want %q", gotAuth, "Bearer test-key")
	}
	if gotReferer != "https://benjaminnamo.dev" {
		t.Errorf("HTTP-Referer = %q", gotReferer)
	}
	if gotTitle != "Benjamin Namo Portfolio" {
		t.Errorf("X-Title = %q", gotTitle)
	}
}

func TestComplete_StatusError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		fmt.Fprint(w, `{"error":{"message":"No auth credentials found","code":401}}`)
	}))
	defer srv.Close()

	c := NewClientWithBaseURL("bad-key", srv.URL)
	_, err := c.Complete(context.Background(), testRequest())

	var se *StatusError
	if !errors.As(err, &se) {
		t.Fatalf("error = %v, want *StatusError", err)
	}
	if se.Code != http.StatusUnauthorized {
		t.Errorf("Code = %d, want 401", se.Code)
	}
}

func TestComplete_NoRetry(t *testing.T) {
	var attempt atomic.Int32

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		attempt.Add(1)
		w.WriteHeader(http.StatusTooManyRequests)
	}))
	defer srv.Close()

	c := NewClientWithBaseURL("test-key", srv.URL)
	if _, err := c.Complete(context.Background(), testRequest()); err == nil {
		t.Fatal("expected error on 429")
	}
	if got := attempt.Load(); got != 1 {
		t.Errorf("attempts = %d, want 1", got)
	}
}

func TestComplete_EmptyResponses(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{"no choices", `{"id":"gen-1","choices":[]}`},
		{"missing choices", `{"id":"gen-1"}`},
		{"empty content", `{"choices":[{"message":{"role":"assistant","content":""}}]}`},
		{"blank content", `{"choices":[{"message":{"role":"assistant","content":"  \n"}}]}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				fmt.Fprint(w, tt.body)
			}))
			defer srv.Close()

			c := NewClientWithBaseURL("test-key", srv.URL)
			_, err := c.Complete(context.Background(), testRequest())
			if !errors.Is(err, ErrEmptyResponse) {
				t.Errorf("error = %v, want ErrEmptyResponse", err)
			}
		})
	}
}

func TestComplete_MalformedBody(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `<html>gateway</html>`)
	}))
	defer srv.Close()

	c := NewClientWithBaseURL("test-key", srv.URL)
	_, err := c.Complete(context.Background(), testRequest())
	if err == nil {
		t.Fatal("expected decode error")
	}
	if errors.Is(err, ErrEmptyResponse) {
		t.Errorf("malformed body should not be reported as empty: %v", err)
	}
}

func TestComplete_ContextCancellation(t *testing.T) {
	handlerStarted := make(chan struct{})
	handlerDone := make(chan struct{})
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		close(handlerStarted)
		select {
		case <-handlerDone:
		case <-r.Context().Done():
		}
	}))
	defer srv.Close()
	defer close(handlerDone)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	done := make(chan error, 1)
	go func() {
		c := NewClientWithBaseURL("test-key", srv.URL)
		_, err := c.Complete(ctx, testRequest())
		done <- err
	}()

	<-handlerStarted
	cancel()

	select {
	case err := <-done:
		if !errors.Is(err, context.Canceled) {
			t.Fatalf("error = %v, want context.Canceled", err)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("Complete did not return promptly after context cancellation")
	}
}

func TestListModels(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/models" {
			http.NotFound(w, r)
			return
		}
		list := ModelList{
			Object: "list",
			Data: []Model{
				{ID: "google/gemini-pro:latest", Object: "model"},
				{ID: "anthropic/claude-3-haiku:latest", Object: "model"},
				{ID: "openai/gpt-3.5-turbo:latest", Object: "model"},
			},
		}
		json.NewEncoder(w).Encode(list)
	}))
	defer srv.Close()

	c := NewClientWithBaseURL("test-key", srv.URL)
	models, err := c.ListModels(context.Background())
	if err != nil {
		t.Fatalf("ListModels: %v", err)
	}

	want := []string{"google/gemini-pro:latest", "anthropic/claude-3-haiku:latest", "openai/gpt-3.5-turbo:latest"}
	if len(models) != len(want) {
		t.Fatalf("got %d models, want %d", len(models), len(want))
	}
	for i, w := range want {
		if models[i].ID != w {
			t.Errorf("models[%d].ID = %q, want %q", i, models[i].ID, w)
		}
	}
}

func TestListModels_Empty(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(ModelList{Object: "list", Data: nil})
	}))
	defer srv.Close()

	c := NewClientWithBaseURL("test-key", srv.URL)
	models, err := c.ListModels(context.Background())
	if err != nil {
		t.Fatalf("ListModels: %v", err)
	}
	if len(models) != 0 {
		t.Errorf("got %d models, want 0", len(models))
	}
}
