package router

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/ovaphlow/pitchfork/service-idea-studio/internal/auth"
	"github.com/ovaphlow/pitchfork/service-idea-studio/internal/content"
	"github.com/ovaphlow/pitchfork/service-idea-studio/internal/user"
)

// Deps are the services the HTTP surface is built from.
type Deps struct {
	Logger  *zap.SugaredLogger
	Auth    *auth.AuthService
	Users   *user.UserService
	Content *content.ContentService
}

// RegisterRoutes mounts HTTP handlers using the standard library's http.ServeMux.
// Health and metrics stay outside the session guard.
func RegisterRoutes(d Deps) http.Handler {
	logger := d.Logger

	authHandler := auth.NewHandler(d.Auth, logger)
	userHandler := user.NewHandler(d.Users, d.Auth, logger)
	contentHandler := content.NewHandler(d.Content, logger)

	app := http.NewServeMux()
	handle := func(pattern string, h http.HandlerFunc) {
		app.Handle(pattern, instrument(pattern, h))
	}

	// auth
	handle("POST "+auth.LoginAPIPath, authHandler.Login)
	handle("POST "+auth.LogoutAPIPath, authHandler.Logout)
	handle("GET "+auth.SessionAPIPath, authHandler.Session)

	// content
	handle("POST /api/generate", contentHandler.Generate)
	handle("POST /api/export", contentHandler.Export)
	handle("GET /api/options", contentHandler.Options)

	// user
	handle("POST /api/user/create", userHandler.Create)
	handle("POST "+auth.ChangePasswordAPIPath, userHandler.ChangePassword)

	// pages
	pages := newPages(logger)
	handle("GET /{$}", pages.dashboard)
	handle("GET "+auth.LoginPath, pages.login)
	handle("GET "+auth.AdminPath, pages.admin)
	handle("GET "+auth.ChangePasswordPath, pages.changePassword)

	guarded := d.Auth.SessionMiddleware(logger)(auth.GuardMiddleware(logger)(app))

	root := http.NewServeMux()
	root.Handle("GET /health", instrument("GET /health", http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})))
	root.Handle("GET /metrics", promhttp.Handler())
	root.Handle("/", guarded)

	return RequestIDMiddleware()(LoggingMiddleware(logger)(RecoveryMiddleware(logger)(SecurityHeadersMiddleware()(root))))
}
