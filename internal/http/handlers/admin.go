package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/lotoboard/server/internal/auth"
	"github.com/lotoboard/server/internal/errs"
	"github.com/lotoboard/server/internal/middleware"
	"github.com/lotoboard/server/internal/model"
	"go.uber.org/zap"
)

// AdminHandler handles the admin-only user management endpoints.
type AdminHandler struct {
	authService *auth.Service
	logger      *zap.Logger
}

// NewAdminHandler creates a new admin handler
func NewAdminHandler(authService *auth.Service, logger *zap.Logger) *AdminHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &AdminHandler{authService: authService, logger: logger}
}

// createUserRequest is the request body for POST /admin/users
type createUserRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
	IsAdmin  bool   `json:"isAdmin"`
}

// HandleListUsers handles GET /admin/users
func (h *AdminHandler) HandleListUsers(w http.ResponseWriter, r *http.Request) {
	users, err := h.authService.ListUsers(r.Context())
	if err != nil {
		h.logger.Error("list users failed", zap.Error(err))
		respondWithError(w, http.StatusInternalServerError, "internal server error")
		return
	}

	public := make([]model.PublicUser, 0, len(users))
	for _, u := range users {
		public = append(public, u.Public())
	}
	respondWithJSON(w, http.StatusOK, map[string][]model.PublicUser{"users": public})
}

// HandleCreateUser handles POST /admin/users
func (h *AdminHandler) HandleCreateUser(w http.ResponseWriter, r *http.Request) {
	var req createUserRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	user, err := h.authService.CreateUser(r.Context(), req.Username, req.Password, req.IsAdmin)
	if err != nil {
		switch {
		case errors.Is(err, errs.ErrInvalidInput):
			respondWithError(w, http.StatusBadRequest, err.Error())
		case errors.Is(err, errs.ErrAlreadyExists):
			respondWithError(w, http.StatusConflict, "username already exists")
		default:
			h.logger.Error("create user failed", zap.Error(err))
			respondWithError(w, http.StatusInternalServerError, "internal server error")
		}
		return
	}

	respondWithJSON(w, http.StatusCreated, map[string]model.PublicUser{"user": user.Public()})
}

// HandleDeleteUser handles DELETE /admin/users/{id}
func (h *AdminHandler) HandleDeleteUser(w http.ResponseWriter, r *http.Request) {
	claims, ok := middleware.GetSession(r.Context())
	if !ok {
		respondWithError(w, http.StatusUnauthorized, "authentication required")
		return
	}

	id, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "invalid user id")
		return
	}

	if err := h.authService.DeleteUser(r.Context(), claims.UserID, id); err != nil {
		switch {
		case errors.Is(err, errs.ErrInvalidInput):
			respondWithError(w, http.StatusBadRequest, err.Error())
		case errors.Is(err, errs.ErrNotFound):
			respondWithError(w, http.StatusNotFound, "user not found")
		default:
			h.logger.Error("delete user failed", zap.Error(err))
			respondWithError(w, http.StatusInternalServerError, "internal server error")
		}
		return
	}

	respondWithJSON(w, http.StatusOK, map[string]bool{"success": true})
}
