package httpapi

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"apula/server/internal/mailer"
)

func TestHandlerHealth(t *testing.T) {
	api := New(&mailer.LogTransport{}, Settings{Sender: "apula@example.com"}, nil)

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	rec := httptest.NewRecorder()

	api.Handler().ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", rec.Code)
	}
	if body := rec.Body.String(); body != "ok" {
		t.Fatalf("unexpected body: %q", body)
	}
}

func TestHandlerMetrics(t *testing.T) {
	api := New(&mailer.LogTransport{}, Settings{}, nil)

	rec := httptest.NewRecorder()
	api.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	if rec.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "apula_verification_send_duration_seconds") {
		t.Fatal("expected verification metrics in exposition")
	}
}

func TestHandlerCORSAllowsAnyOrigin(t *testing.T) {
	api := New(&stubTransport{}, Settings{Sender: "apula@example.com"}, nil)

	req := httptest.NewRequest(http.MethodPost, "/send-verification", strings.NewReader(`{"email":"user@example.com","code":"123456"}`))
	req.Header.Set("Origin", "https://app.example.org")
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()

	api.Handler().ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", rec.Code)
	}
	if got := rec.Header().Get("Access-Control-Allow-Origin"); got != "*" {
		t.Fatalf("expected wildcard allow-origin, got %q", got)
	}
}

func TestHandlerCORSPreflight(t *testing.T) {
	transport := &stubTransport{}
	api := New(transport, Settings{}, nil)

	req := httptest.NewRequest(http.MethodOptions, "/send-verification", nil)
	req.Header.Set("Origin", "https://app.example.org")
	req.Header.Set("Access-Control-Request-Method", http.MethodPost)
	req.Header.Set("Access-Control-Request-Headers", "Content-Type")
	rec := httptest.NewRecorder()

	api.Handler().ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", rec.Code)
	}
	if got := rec.Header().Get("Access-Control-Allow-Origin"); got != "*" {
		t.Fatalf("expected wildcard allow-origin, got %q", got)
	}
	if transport.callCount() != 0 {
		t.Fatal("expected preflight not to reach the transport")
	}
}

func TestHandlerSendVerificationRejectsGet(t *testing.T) {
	api := New(&stubTransport{}, Settings{}, nil)

	rec := httptest.NewRecorder()
	api.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/send-verification", nil))

	if rec.Code != http.StatusMethodNotAllowed {
		t.Fatalf("expected status 405, got %d", rec.Code)
	}
}

func TestNewDefaultsSendTimeout(t *testing.T) {
	api := New(&stubTransport{}, Settings{}, nil)
	if api.settings.SendTimeout != defaultSendTimeout {
		t.Fatalf("expected default send timeout, got %v", api.settings.SendTimeout)
	}
	if api.logger == nil {
		t.Fatal("expected default logger")
	}
}
