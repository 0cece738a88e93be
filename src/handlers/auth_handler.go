package handlers

import (
	"crypto/subtle"
	"encoding/json"
	"net/http"
	"strings"
	"time"

	"github.com/mics-123/merch-dashboard/src/logger"
	"github.com/mics-123/merch-dashboard/src/security"
	"github.com/mics-123/merch-dashboard/src/utils"
)

// operatorSubject is the fixed token subject; this service has a single
// operator, not user accounts.
const operatorSubject = "operator"

type AuthHandler struct {
	authService *security.AuthService
	apiKey      string
	tokenExpiry time.Duration
}

func NewAuthHandler(authService *security.AuthService, apiKey string, tokenExpiry time.Duration) *AuthHandler {
	return &AuthHandler{
		authService: authService,
		apiKey:      apiKey,
		tokenExpiry: tokenExpiry,
	}
}

// HandleIssueToken exchanges the configured API key for a short-lived
// bearer token.
func (h *AuthHandler) HandleIssueToken(w http.ResponseWriter, r *http.Request) {
	var req struct {
		APIKey string `json:"apiKey"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.SendJSONError(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	if subtle.ConstantTimeCompare([]byte(req.APIKey), []byte(h.apiKey)) != 1 {
		logger.L.Warn("Token request with invalid API key", "remoteAddr", r.RemoteAddr)
		utils.SendJSONError(w, "Invalid API key", http.StatusUnauthorized)
		return
	}

	token, err := h.authService.GenerateToken(operatorSubject)
	if err != nil {
		logger.L.Error("Failed to generate token", "error", err)
		utils.SendJSONError(w, "Failed to generate token", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	json.NewEncoder(w).Encode(map[string]interface{}{
		"token":            token,
		"expiresInSeconds": int64(h.tokenExpiry.Seconds()),
	})
}

// AuthMiddleware rejects requests without a valid bearer token.
func (h *AuthHandler) AuthMiddleware(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		authHeader := r.Header.Get("Authorization")
		if authHeader == "" {
			logger.L.Debug("AuthMiddleware: Authorization header missing", "path", r.URL.Path)
			utils.SendJSONError(w, "Authorization header required", http.StatusUnauthorized)
			return
		}

		tokenString := authHeader
		if strings.HasPrefix(authHeader, "Bearer ") {
			tokenString = strings.TrimPrefix(authHeader, "Bearer ")
		}
		if tokenString == "" {
			logger.L.Debug("AuthMiddleware: Token string empty", "path", r.URL.Path)
			utils.SendJSONError(w, "Malformed token", http.StatusUnauthorized)
			return
		}

		if _, err := h.authService.ValidateToken(tokenString); err != nil {
			logger.L.Warn("AuthMiddleware: Token validation failed", "path", r.URL.Path, "error", err)
			utils.SendJSONError(w, "Invalid or expired token", http.StatusUnauthorized)
			return
		}

		next.ServeHTTP(w, r)
	}
}
