package user

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/ovaphlow/pitchfork/service-idea-studio/internal/auth"
	"github.com/ovaphlow/pitchfork/service-idea-studio/internal/user/entity"
)

type handlerFixture struct {
	store    *memStore
	svc      *UserService
	sessions *auth.AuthService
	handler  *Handler
	router   http.Handler
}

func newHandlerFixture(t *testing.T) *handlerFixture {
	t.Helper()
	logger := zap.NewNop().Sugar()
	store := newMemStore()
	svc := newTestService(t, store)
	sessions := auth.NewAuthService(svc, auth.Options{Secret: []byte(strings.Repeat("k", 32)), TTL: time.Hour})
	h := NewHandler(svc, sessions, logger)

	mux := http.NewServeMux()
	mux.HandleFunc("POST /api/user/create", h.Create)
	mux.HandleFunc("POST /api/user/change-password", h.ChangePassword)
	mux.HandleFunc("GET /{$}", func(w http.ResponseWriter, r *http.Request) { w.WriteHeader(http.StatusOK) })
	router := sessions.SessionMiddleware(logger)(auth.GuardMiddleware(logger)(mux))

	return &handlerFixture{store: store, svc: svc, sessions: sessions, handler: h, router: router}
}

func (f *handlerFixture) do(t *testing.T, method, path, body string, cookie *http.Cookie) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	if cookie != nil {
		req.AddCookie(cookie)
	}
	rec := httptest.NewRecorder()
	f.router.ServeHTTP(rec, req)
	return rec
}

func (f *handlerFixture) cookieFor(t *testing.T, id entity.Identity) *http.Cookie {
	t.Helper()
	token, _, err := f.sessions.Issue(id)
	require.NoError(t, err)
	return &http.Cookie{Name: auth.DefaultCookieName, Value: token}
}

func decodeError(t *testing.T, rec *httptest.ResponseRecorder) string {
	t.Helper()
	var body map[string]any
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&body))
	msg, _ := body["error"].(string)
	return msg
}

func TestCreateEndpoint(t *testing.T) {
	f := newHandlerFixture(t)
	adminCookie := f.cookieFor(t, entity.Identity{Username: "admin"})

	rec := f.do(t, http.MethodPost, "/api/user/create", `{"username":"siti","password":"123456"}`, adminCookie)
	require.Equal(t, http.StatusOK, rec.Code)
	var body CreateResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&body))
	assert.True(t, body.Success)
	assert.Equal(t, "siti", body.User.Username)
	assert.NotContains(t, rec.Body.String(), "password")

	rec = f.do(t, http.MethodPost, "/api/user/create", `{"username":"siti","password":"abcdef"}`, adminCookie)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "Username already exists", decodeError(t, rec))

	rec = f.do(t, http.MethodPost, "/api/user/create", `{"username":"rudi","password":"12345"}`, adminCookie)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestCreateEndpointNonAdmin(t *testing.T) {
	f := newHandlerFixture(t)
	cookie := f.cookieFor(t, entity.Identity{Username: "budi"})

	rec := f.do(t, http.MethodPost, "/api/user/create", `not even json`, cookie)
	assert.Equal(t, http.StatusForbidden, rec.Code)
	assert.Equal(t, "Unauthorized", decodeError(t, rec))
}

func TestChangePasswordEndpointRequiresSession(t *testing.T) {
	f := newHandlerFixture(t)

	rec := f.do(t, http.MethodPost, "/api/user/change-password", `{"newPassword":"12345678"}`, nil)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestChangePasswordEndpointTooShort(t *testing.T) {
	f := newHandlerFixture(t)
	_, err := f.svc.CreateUser(context.Background(), admin, "siti", "123456")
	require.NoError(t, err)
	cookie := f.cookieFor(t, entity.Identity{Username: "siti", IsTemporaryPassword: true})

	rec := f.do(t, http.MethodPost, "/api/user/change-password", `{"newPassword":"12345"}`, cookie)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Empty(t, rec.Result().Cookies())
}

// Login with a temporary password, get forced to the change-password flow,
// change it, and reach the dashboard with the refreshed session.
func TestTemporaryPasswordFlow(t *testing.T) {
	f := newHandlerFixture(t)
	_, err := f.svc.CreateUser(context.Background(), admin, "siti", "temp-pw")
	require.NoError(t, err)

	token, claims, err := f.sessions.Login(context.Background(), "siti", "temp-pw")
	require.NoError(t, err)
	require.True(t, claims.IsTemporaryPassword)
	cookie := &http.Cookie{Name: auth.DefaultCookieName, Value: token}

	rec := f.do(t, http.MethodGet, "/", "", cookie)
	assert.Equal(t, http.StatusSeeOther, rec.Code)
	assert.Equal(t, auth.ChangePasswordPath, rec.Header().Get("Location"))

	rec = f.do(t, http.MethodPost, "/api/user/change-password", `{"newPassword":"8chars!!"}`, cookie)
	require.Equal(t, http.StatusOK, rec.Code)
	refreshed := rec.Result().Cookies()
	require.Len(t, refreshed, 1)

	rec = f.do(t, http.MethodGet, "/", "", refreshed[0])
	assert.Equal(t, http.StatusOK, rec.Code)

	u, err := f.store.GetByUsername(context.Background(), "siti")
	require.NoError(t, err)
	assert.False(t, u.IsTemporaryPassword)
}

func TestOverlongPasswordIsBadRequest(t *testing.T) {
	f := newHandlerFixture(t)
	tooLong := strings.Repeat("x", MaxPasswordLength+1)
	adminCookie := f.cookieFor(t, entity.Identity{Username: "admin"})

	rec := f.do(t, http.MethodPost, "/api/user/create", `{"username":"siti","password":"`+tooLong+`"}`, adminCookie)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	_, err := f.svc.CreateUser(context.Background(), admin, "rudi", "123456")
	require.NoError(t, err)
	cookie := f.cookieFor(t, entity.Identity{Username: "rudi", IsTemporaryPassword: true})
	rec = f.do(t, http.MethodPost, "/api/user/change-password", `{"newPassword":"`+tooLong+`"}`, cookie)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "Password must be at most 72 bytes", decodeError(t, rec))
}
