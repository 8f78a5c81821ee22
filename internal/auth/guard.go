package auth

import (
	"strings"

	"github.com/ovaphlow/pitchfork/service-idea-studio/internal/user/entity"
)

const (
	DashboardPath         = "/"
	LoginPath             = "/login"
	AdminPath             = "/admin"
	ChangePasswordPath    = "/change-password"
	ChangePasswordAPIPath = "/api/user/change-password"
	LoginAPIPath          = "/api/auth/login"
	LogoutAPIPath         = "/api/auth/logout"
	SessionAPIPath        = "/api/auth/session"
)

type Action int

const (
	Allow Action = iota
	Redirect
)

// Decision is the outcome of the route guard for one request.
type Decision struct {
	Action   Action
	Location string
}

func (d Decision) Allowed() bool { return d.Action == Allow }

func allow() Decision { return Decision{Action: Allow} }
func redirectTo(loc string) Decision { return Decision{Action: Redirect, Location: loc} }

// Decide evaluates the route guard from the session claims alone; a nil
// claims value means the caller is unauthenticated.
func Decide(c *Claims, path string) Decision {
	loggedIn := c != nil

	if loggedIn && c.IsTemporaryPassword {
		if reachableWhileTemporary(path) {
			return allow()
		}
		return redirectTo(ChangePasswordPath)
	}

	if isProtected(path) {
		if !loggedIn {
			return redirectTo(LoginPath)
		}
		if underPrefix(path, AdminPath) && c.Username != entity.AdminUsername {
			return redirectTo(DashboardPath)
		}
		return allow()
	}

	if loggedIn && path == LoginPath {
		return redirectTo(DashboardPath)
	}
	return allow()
}

func reachableWhileTemporary(path string) bool {
	switch path {
	case ChangePasswordPath, ChangePasswordAPIPath, LogoutAPIPath, SessionAPIPath:
		return true
	}
	return false
}

func isProtected(path string) bool {
	switch path {
	case DashboardPath, "/api/generate", "/api/export", "/api/options":
		return true
	}
	return underPrefix(path, AdminPath) || strings.HasPrefix(path, "/api/user/")
}

func underPrefix(path, prefix string) bool {
	return path == prefix || strings.HasPrefix(path, prefix+"/")
}

func isAPIPath(path string) bool {
	return strings.HasPrefix(path, "/api/")
}
