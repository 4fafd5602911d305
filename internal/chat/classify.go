package chat

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"net/url"
	"strings"

	"github.com/benjaminnamo/portfolio-chatbot/internal/profile"
	"github.com/benjaminnamo/portfolio-chatbot/internal/proxy"
)

// FailureKind buckets a failed completion for the user-facing message.
type FailureKind int

const (
	KindUnknown FailureKind = iota
	KindAuth
	KindModelUnavailable
	KindNetwork
	KindEmptyResponse
)

func (k FailureKind) String() string {
	switch k {
	case KindAuth:
		return "auth"
	case KindModelUnavailable:
		return "model_unavailable"
	case KindNetwork:
		return "network"
	case KindEmptyResponse:
		return "empty_response"
	default:
		return "unknown"
	}
}

// Classify maps an error from a completion attempt to a FailureKind. Typed
// errors are checked first; the error text is the fallback for gateways that
// report failures in prose.
func Classify(err error) FailureKind {
	if err == nil {
		return KindUnknown
	}

	var se *proxy.StatusError
	if errors.As(err, &se) {
		switch se.Code {
		case http.StatusUnauthorized, http.StatusForbidden:
			return KindAuth
		case http.StatusNotFound:
			return KindModelUnavailable
		}
	}
	if errors.Is(err, proxy.ErrEmptyResponse) {
		return KindEmptyResponse
	}
	if errors.Is(err, context.DeadlineExceeded) || errors.Is(err, context.Canceled) {
		return KindNetwork
	}
	var netErr net.Error
	if errors.As(err, &netErr) {
		return KindNetwork
	}
	var urlErr *url.Error
	if errors.As(err, &urlErr) {
		return KindNetwork
	}

	msg := strings.ToLower(err.Error())
	switch {
	case containsAny(msg, "api key", "authorization", "authentication", "unauthorized", "401"):
		return KindAuth
	case containsAny(msg, "model", "not found", "not available", "404"):
		return KindModelUnavailable
	case containsAny(msg, "network", "connection", "no such host"):
		return KindNetwork
	case containsAny(msg, "no choices", "no message content"):
		return KindEmptyResponse
	}
	return KindUnknown
}

func containsAny(s string, subs ...string) bool {
	for _, sub := range subs {
		if strings.Contains(s, sub) {
			return true
		}
	}
	return false
}

// Apology returns the fixed user-facing text for kind. Only the person's
// first name and contact email are interpolated; no error detail is ever
// included.
func Apology(kind FailureKind, p profile.Profile) string {
	first := p.FirstName()
	switch kind {
	case KindAuth:
		return fmt.Sprintf("I'm currently unable to access %s's information due to a technical issue. Please try again later or reach out directly via email.", first)
	case KindModelUnavailable:
		return fmt.Sprintf("I'm currently experiencing technical difficulties. Please try again later or contact %s directly.", first)
	case KindNetwork:
		return "It seems there's a network issue. Please check your internet connection and try again."
	case KindEmptyResponse:
		return "I apologize, but I received an unexpected response. Please try asking your question again."
	default:
		return fmt.Sprintf("I apologize for the inconvenience. I'm having trouble accessing %s's information at the moment. You can contact them directly at %s", first, p.Contact.Email)
	}
}
