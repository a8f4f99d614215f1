package httpserver_test

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	httpserver "github.com/project-caesar00/caesar-elo/internal/adapters/http_server"
	"github.com/project-caesar00/caesar-elo/internal/auth"
)

func okHandler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})
}

func TestCORS_AllowsListedOrigin(t *testing.T) {
	h := httpserver.CORS([]string{"http://localhost:3000", "http://localhost:5173"})(okHandler())

	req := httptest.NewRequest(http.MethodGet, "/api/stats", nil)
	req.Header.Set("Origin", "http://localhost:3000")
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, req)

	if rr.Code != http.StatusOK {
		t.Fatalf("status: %d", rr.Code)
	}
	if got := rr.Header().Get("Access-Control-Allow-Origin"); got != "http://localhost:3000" {
		t.Fatalf("allow-origin: %q", got)
	}
	if rr.Header().Get("Access-Control-Allow-Credentials") != "true" {
		t.Fatalf("credentials header missing")
	}
}

func TestCORS_PreflightShortCircuits(t *testing.T) {
	var reached bool
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) { reached = true })
	h := httpserver.CORS([]string{"http://localhost:3000"})(next)

	req := httptest.NewRequest(http.MethodOptions, "/api/compare", nil)
	req.Header.Set("Origin", "http://localhost:3000")
	req.Header.Set("Access-Control-Request-Method", "POST")
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, req)

	if rr.Code != http.StatusNoContent {
		t.Fatalf("preflight status: %d", rr.Code)
	}
	if reached {
		t.Fatalf("preflight must not hit the handler")
	}
	if rr.Header().Get("Access-Control-Allow-Methods") == "" {
		t.Fatalf("preflight must advertise methods")
	}
}

func TestCORS_RejectsUnknownOrigin(t *testing.T) {
	h := httpserver.CORS([]string{"http://localhost:3000"})(okHandler())

	req := httptest.NewRequest(http.MethodGet, "/api/stats", nil)
	req.Header.Set("Origin", "http://evil.example")
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, req)

	if rr.Code != http.StatusForbidden {
		t.Fatalf("status: %d", rr.Code)
	}
}

func TestCORS_DisabledWithoutOrigins(t *testing.T) {
	h := httpserver.CORS(nil)(okHandler())

	req := httptest.NewRequest(http.MethodGet, "/api/stats", nil)
	req.Header.Set("Origin", "http://anywhere.example")
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, req)

	if rr.Code != http.StatusOK {
		t.Fatalf("status: %d", rr.Code)
	}
	if rr.Header().Get("Access-Control-Allow-Origin") != "" {
		t.Fatalf("disabled CORS must not emit headers")
	}
}

func TestRequireAuth_PassesClaimsThrough(t *testing.T) {
	m := auth.NewManager("test-secret", time.Hour)
	tok, err := m.Issue("judge@example.com", "The Judge")
	if err != nil {
		t.Fatalf("issue: %v", err)
	}

	var gotEmail string
	h := httpserver.RequireAuth(m)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if c, ok := auth.ClaimsFrom(r.Context()); ok {
			gotEmail = c.Email
		}
		w.WriteHeader(http.StatusOK)
	}))

	req := httptest.NewRequest(http.MethodGet, "/api/auth/me", nil)
	req.Header.Set("Authorization", "Bearer "+tok)
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, req)

	if rr.Code != http.StatusOK {
		t.Fatalf("status: %d", rr.Code)
	}
	if gotEmail != "judge@example.com" {
		t.Fatalf("claims not on context, got %q", gotEmail)
	}
}

func TestRequireAuth_Rejects(t *testing.T) {
	m := auth.NewManager("test-secret", time.Hour)
	h := httpserver.RequireAuth(m)(okHandler())

	cases := map[string]string{
		"missing": "",
		"garbage": "Bearer not-a-jwt",
	}
	expired := auth.NewManager("test-secret", -time.Hour)
	if tok, err := expired.Issue("judge@example.com", "The Judge"); err == nil {
		cases["expired"] = "Bearer " + tok
	}

	for name, header := range cases {
		req := httptest.NewRequest(http.MethodGet, "/api/auth/me", nil)
		if header != "" {
			req.Header.Set("Authorization", header)
		}
		rr := httptest.NewRecorder()
		h.ServeHTTP(rr, req)

		if rr.Code != http.StatusUnauthorized {
			t.Fatalf("%s: status %d, want 401", name, rr.Code)
		}
		if ct := rr.Header().Get("Content-Type"); ct != "application/problem+json" {
			t.Fatalf("%s: content type %q", name, ct)
		}
	}
}
