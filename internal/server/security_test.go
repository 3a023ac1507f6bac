package server

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
)

func okHandler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
}

func TestAuthMiddleware(t *testing.T) {
	apiKey := "secret-key"
	middleware := AuthMiddleware(apiKey, nil, NewAbuseDetector())
	handler := middleware(okHandler())

	tests := []struct {
		name       string
		key        string
		path       string
		wantStatus int
	}{
		{"valid key reaches game route", apiKey, "/api/v1/game/g1", http.StatusOK},
		{"wrong key rejected", "wrong-key", "/api/v1/game/g1/items/add", http.StatusUnauthorized},
		{"missing key rejected", "", "/api/v1/game/g1", http.StatusUnauthorized},
		{"healthz is public", "", "/healthz", http.StatusOK},
		{"metrics is public", "", "/metrics", http.StatusOK},
		{"version is public", "", "/version", http.StatusOK},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, tt.path, nil)
			if tt.key != "" {
				req.Header.Set(HeaderAPIKey, tt.key)
			}
			rec := httptest.NewRecorder()
			handler.ServeHTTP(rec, req)

			assert.Equal(t, tt.wantStatus, rec.Code)
		})
	}
}

func TestGameIDFromPath(t *testing.T) {
	tests := []struct {
		path string
		want string
	}{
		{"/api/v1/game/g1", "g1"},
		{"/api/v1/game/g1/items/add", "g1"},
		{"/api/v1/game/", ""},
		{"/healthz", ""},
		{"/api/v1/other", ""},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, gameIDFromPath(tt.path), tt.path)
	}
}

func TestExtractIP_TrustsOnlyConfiguredProxies(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/api/v1/game/g1", nil)
	req.RemoteAddr = "10.0.0.5:4000"
	req.Header.Set(HeaderForwardedFor, "203.0.113.7, 10.0.0.9")

	// Untrusted peer: the forwarded header is ignored.
	assert.Equal(t, "10.0.0.5", extractIP(req, nil))

	// Trusted peer: the rightmost forwarded hop is used.
	assert.Equal(t, "10.0.0.9", extractIP(req, []string{"10.0.0.5"}))
}
