package auth

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDecide(t *testing.T) {
	temp := &Claims{Username: "siti", IsTemporaryPassword: true}
	member := &Claims{Username: "siti"}
	admin := &Claims{Username: "admin"}

	tests := []struct {
		name   string
		claims *Claims
		path   string
		want   Decision
	}{
		{"anon dashboard", nil, "/", redirectTo(LoginPath)},
		{"anon admin", nil, "/admin", redirectTo(LoginPath)},
		{"anon admin subpage", nil, "/admin/users", redirectTo(LoginPath)},
		{"anon generate api", nil, "/api/generate", redirectTo(LoginPath)},
		{"anon create user api", nil, "/api/user/create", redirectTo(LoginPath)},
		{"anon change password api", nil, "/api/user/change-password", redirectTo(LoginPath)},
		{"anon login", nil, "/login", allow()},
		{"anon login api", nil, "/api/auth/login", allow()},
		{"anon change password page", nil, "/change-password", allow()},

		{"temp dashboard", temp, "/", redirectTo(ChangePasswordPath)},
		{"temp login", temp, "/login", redirectTo(ChangePasswordPath)},
		{"temp admin", temp, "/admin", redirectTo(ChangePasswordPath)},
		{"temp generate", temp, "/api/generate", redirectTo(ChangePasswordPath)},
		{"temp unknown path", temp, "/whatever", redirectTo(ChangePasswordPath)},
		{"temp change password page", temp, "/change-password", allow()},
		{"temp change password api", temp, "/api/user/change-password", allow()},
		{"temp logout", temp, "/api/auth/logout", allow()},
		{"temp session", temp, "/api/auth/session", allow()},

		{"member dashboard", member, "/", allow()},
		{"member generate", member, "/api/generate", allow()},
		{"member login", member, "/login", redirectTo(DashboardPath)},
		{"member admin page", member, "/admin", redirectTo(DashboardPath)},
		{"member create user api reaches handler", member, "/api/user/create", allow()},
		{"member change password page", member, "/change-password", allow()},

		{"admin admin page", admin, "/admin", allow()},
		{"admin create user api", admin, "/api/user/create", allow()},
		{"admin login", admin, "/login", redirectTo(DashboardPath)},

		{"prefix lookalike is not admin", nil, "/administrator", allow()},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Decide(tt.claims, tt.path))
		})
	}
}

func TestDecideAdminUsernameIsExact(t *testing.T) {
	for _, name := range []string{"Admin", "ADMIN", "admin2", " admin"} {
		d := Decide(&Claims{Username: name}, "/admin")
		assert.Equal(t, redirectTo(DashboardPath), d, name)
	}
}
