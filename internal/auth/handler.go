package auth

import (
	"net/http"
	"strings"

	"go.uber.org/zap"

	"github.com/ovaphlow/pitchfork/service-idea-studio/internal/apperr"
	"github.com/ovaphlow/pitchfork/service-idea-studio/internal/httpx"
	"github.com/ovaphlow/pitchfork/service-idea-studio/internal/user/entity"
)

// Handler exposes login, logout and session introspection.
type Handler struct {
	svc    *AuthService
	logger *zap.SugaredLogger
}

func NewHandler(svc *AuthService, logger *zap.SugaredLogger) *Handler {
	return &Handler{svc: svc, logger: logger}
}

// LoginRequest login payload.
type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type SessionUser struct {
	Username            string `json:"username"`
	IsTemporaryPassword bool   `json:"isTemporaryPassword"`
	IsAdmin             bool   `json:"isAdmin"`
}

type LoginResponse struct {
	Success  bool        `json:"success"`
	User     SessionUser `json:"user"`
	Redirect string      `json:"redirect"`
}

func (h *Handler) Login(w http.ResponseWriter, r *http.Request) {
	var req LoginRequest
	if strings.HasPrefix(r.Header.Get("Content-Type"), "application/x-www-form-urlencoded") {
		if err := r.ParseForm(); err != nil {
			httpx.WriteError(w, h.logger, apperr.InvalidInput("invalid payload"), "login failed")
			return
		}
		req.Username = r.PostForm.Get("username")
		req.Password = r.PostForm.Get("password")
	} else if err := httpx.DecodeJSON(r, &req); err != nil {
		httpx.WriteError(w, h.logger, err, "login failed")
		return
	}

	token, claims, err := h.svc.Login(r.Context(), req.Username, req.Password)
	if err != nil {
		httpx.WriteError(w, h.logger, err, "login failed")
		return
	}
	h.svc.SetSessionCookie(w, token)

	redirect := DashboardPath
	if claims.IsTemporaryPassword {
		redirect = ChangePasswordPath
	}
	h.logger.Infow("login", "username", claims.Username, "temporary", claims.IsTemporaryPassword)
	httpx.WriteJSON(w, http.StatusOK, LoginResponse{
		Success:  true,
		User:     sessionUser(claims),
		Redirect: redirect,
	})
}

func (h *Handler) Logout(w http.ResponseWriter, r *http.Request) {
	h.svc.ClearSessionCookie(w)
	httpx.WriteJSON(w, http.StatusOK, map[string]bool{"success": true})
}

// Session reports the claims of the current session.
func (h *Handler) Session(w http.ResponseWriter, r *http.Request) {
	claims, ok := FromContext(r.Context())
	if !ok {
		httpx.WriteErrorMessage(w, http.StatusUnauthorized, "Unauthorized")
		return
	}
	httpx.WriteJSON(w, http.StatusOK, sessionUser(claims))
}

func sessionUser(c *Claims) SessionUser {
	return SessionUser{
		Username:            c.Username,
		IsTemporaryPassword: c.IsTemporaryPassword,
		IsAdmin:             c.Username == entity.AdminUsername,
	}
}
