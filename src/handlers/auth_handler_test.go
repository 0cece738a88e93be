package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mics-123/merch-dashboard/src/logger"
	"github.com/mics-123/merch-dashboard/src/security"
)

func TestMain(m *testing.M) {
	logger.InitLogger("error")
	os.Exit(m.Run())
}

func newAuthHandler() *AuthHandler {
	authService := security.NewAuthService("test-secret-which-is-long-enough-0123", time.Minute)
	return NewAuthHandler(authService, "test-api-key", time.Minute)
}

func issueToken(t *testing.T, h *AuthHandler, apiKey string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, "/api/auth/token", strings.NewReader(`{"apiKey":"`+apiKey+`"}`))
	rec := httptest.NewRecorder()
	h.HandleIssueToken(rec, req)
	return rec
}

func TestHandleIssueToken(t *testing.T) {
	h := newAuthHandler()

	rec := issueToken(t, h, "test-api-key")
	require.Equal(t, http.StatusOK, rec.Code)

	var body struct {
		Token            string `json:"token"`
		ExpiresInSeconds int64  `json:"expiresInSeconds"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.NotEmpty(t, body.Token)
	assert.Equal(t, int64(60), body.ExpiresInSeconds)
}

func TestHandleIssueTokenWrongKey(t *testing.T) {
	h := newAuthHandler()
	rec := issueToken(t, h, "wrong-key")
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestAuthMiddleware(t *testing.T) {
	h := newAuthHandler()

	rec := issueToken(t, h, "test-api-key")
	var body struct {
		Token string `json:"token"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))

	var reached bool
	protected := h.AuthMiddleware(func(w http.ResponseWriter, r *http.Request) {
		reached = true
		w.WriteHeader(http.StatusOK)
	})

	tests := []struct {
		name       string
		authHeader string
		wantStatus int
		wantReach  bool
	}{
		{name: "valid bearer token", authHeader: "Bearer " + body.Token, wantStatus: http.StatusOK, wantReach: true},
		{name: "bare token", authHeader: body.Token, wantStatus: http.StatusOK, wantReach: true},
		{name: "missing header", authHeader: "", wantStatus: http.StatusUnauthorized},
		{name: "garbage token", authHeader: "Bearer not.a.token", wantStatus: http.StatusUnauthorized},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			reached = false
			req := httptest.NewRequest(http.MethodGet, "/api/dashboard", nil)
			if tt.authHeader != "" {
				req.Header.Set("Authorization", tt.authHeader)
			}
			rec := httptest.NewRecorder()
			protected.ServeHTTP(rec, req)
			assert.Equal(t, tt.wantStatus, rec.Code)
			assert.Equal(t, tt.wantReach, reached)
		})
	}
}
