package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/lotoboard/server/internal/auth"
	"github.com/lotoboard/server/internal/errs"
	"github.com/lotoboard/server/internal/middleware"
	"go.uber.org/zap"
)

// AuthHandler handles login, session introspection and logout.
type AuthHandler struct {
	authService  *auth.Service
	cookies      *auth.CookieWriter
	loginLimiter *middleware.RateLimiter
	logger       *zap.Logger
}

// NewAuthHandler creates a new auth handler. Login attempts are limited to 20
// per 10 minutes per client IP.
func NewAuthHandler(authService *auth.Service, cookies *auth.CookieWriter, logger *zap.Logger) *AuthHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &AuthHandler{
		authService:  authService,
		cookies:      cookies,
		loginLimiter: middleware.NewRateLimiter(10*time.Minute, 20),
		logger:       logger,
	}
}

// loginRequest is the request body for POST /auth/login
type loginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// loginResponse is the JSON response for a successful login
type loginResponse struct {
	Success bool        `json:"success"`
	User    sessionUser `json:"user"`
}

// sessionUser is the identity projection carried by session responses.
type sessionUser struct {
	ID       int    `json:"id"`
	Username string `json:"username"`
	IsAdmin  bool   `json:"isAdmin"`
}

// HandleLogin handles POST /auth/login
func (h *AuthHandler) HandleLogin(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	req.Username = strings.TrimSpace(req.Username)
	if req.Username == "" || req.Password == "" {
		respondWithError(w, http.StatusBadRequest, "username and password are required")
		return
	}

	if !h.loginLimiter.Allow(middleware.ClientKey(r)) {
		respondWithError(w, http.StatusTooManyRequests, "rate limit exceeded")
		return
	}

	user, token, err := h.authService.Login(r.Context(), req.Username, req.Password)
	if err != nil {
		if errors.Is(err, errs.ErrUnauthenticated) {
			respondWithError(w, http.StatusUnauthorized, "invalid credentials")
			return
		}
		h.logger.Error("login failed", zap.Error(err))
		respondWithError(w, http.StatusInternalServerError, "internal server error")
		return
	}

	h.cookies.SetSession(w, r, token)
	respondWithJSON(w, http.StatusOK, loginResponse{
		Success: true,
		User: sessionUser{
			ID:       user.ID,
			Username: user.Username,
			IsAdmin:  user.IsAdmin,
		},
	})
}

// HandleMe handles GET /auth/me (protected). Returns the session claims.
func (h *AuthHandler) HandleMe(w http.ResponseWriter, r *http.Request) {
	claims, ok := middleware.GetSession(r.Context())
	if !ok {
		respondWithError(w, http.StatusUnauthorized, "authentication required")
		return
	}

	respondWithJSON(w, http.StatusOK, map[string]sessionUser{
		"user": {
			ID:       claims.UserID,
			Username: claims.Username,
			IsAdmin:  claims.IsAdmin,
		},
	})
}

// HandleLogout handles POST /auth/logout. Clears the cookie unconditionally;
// repeating the call is harmless.
func (h *AuthHandler) HandleLogout(w http.ResponseWriter, r *http.Request) {
	h.cookies.ClearSession(w, r)
	respondWithJSON(w, http.StatusOK, map[string]bool{"success": true})
}

// respondWithJSON sends a JSON response
func respondWithJSON(w http.ResponseWriter, statusCode int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	_ = json.NewEncoder(w).Encode(payload)
}

// respondWithError sends a JSON error response
func respondWithError(w http.ResponseWriter, statusCode int, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	response := map[string]string{"error": message}
	_ = json.NewEncoder(w).Encode(response)
}
