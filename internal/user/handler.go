package user

import (
	"net/http"

	"go.uber.org/zap"

	"github.com/ovaphlow/pitchfork/service-idea-studio/internal/apperr"
	"github.com/ovaphlow/pitchfork/service-idea-studio/internal/auth"
	"github.com/ovaphlow/pitchfork/service-idea-studio/internal/httpx"
)

// SessionUpdater re-issues the caller's session after a password change.
type SessionUpdater interface {
	UpdateSession(w http.ResponseWriter, current *auth.Claims, temporary bool) (*auth.Claims, error)
}

// Handler exposes HTTP endpoints for account management.
type Handler struct {
	svc      *UserService
	sessions SessionUpdater
	logger   *zap.SugaredLogger
}

func NewHandler(svc *UserService, sessions SessionUpdater, logger *zap.SugaredLogger) *Handler {
	return &Handler{svc: svc, sessions: sessions, logger: logger}
}

// CreateRequest request body for the create-user endpoint.
type CreateRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type CreatedUser struct {
	Username string `json:"username"`
}

type CreateResponse struct {
	Success bool        `json:"success"`
	User    CreatedUser `json:"user"`
}

func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	claims, ok := auth.FromContext(r.Context())
	// admin check comes before payload validation
	if !ok || !claims.Identity().IsAdmin() {
		httpx.WriteError(w, h.logger, apperr.Forbidden("Unauthorized"), "create user failed")
		return
	}

	var req CreateRequest
	if err := httpx.DecodeJSON(r, &req); err != nil {
		httpx.WriteError(w, h.logger, err, "create user failed")
		return
	}
	u, err := h.svc.CreateUser(r.Context(), claims.Identity(), req.Username, req.Password)
	if err != nil {
		httpx.WriteError(w, h.logger, err, "create user failed")
		return
	}
	httpx.WriteJSON(w, http.StatusOK, CreateResponse{Success: true, User: CreatedUser{Username: u.Username}})
}

// ChangePasswordRequest request body for the change-password endpoint.
type ChangePasswordRequest struct {
	NewPassword string `json:"newPassword"`
}

func (h *Handler) ChangePassword(w http.ResponseWriter, r *http.Request) {
	claims, ok := auth.FromContext(r.Context())
	if !ok {
		httpx.WriteErrorMessage(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	var req ChangePasswordRequest
	if err := httpx.DecodeJSON(r, &req); err != nil {
		httpx.WriteError(w, h.logger, err, "change password failed")
		return
	}
	if err := h.svc.ChangePassword(r.Context(), claims.Identity(), req.NewPassword); err != nil {
		httpx.WriteError(w, h.logger, err, "change password failed")
		return
	}
	if _, err := h.sessions.UpdateSession(w, claims, false); err != nil {
		// the password is already changed; the client can log in again
		h.logger.Warnw("session refresh after password change failed", "username", claims.Username, "err", err)
	}
	httpx.WriteJSON(w, http.StatusOK, map[string]bool{"success": true})
}
