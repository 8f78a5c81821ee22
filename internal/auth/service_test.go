package auth

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ovaphlow/pitchfork/service-idea-studio/internal/apperr"
	"github.com/ovaphlow/pitchfork/service-idea-studio/internal/user/entity"
)

var testSecret = []byte(strings.Repeat("k", 32))

// fakeAuthenticator accepts a single fixed account.
type fakeAuthenticator struct {
	username  string
	password  string
	temporary bool
	calls     int
}

func (f *fakeAuthenticator) Authenticate(_ context.Context, username, password string) (*entity.Identity, error) {
	f.calls++
	if username != f.username || password != f.password {
		return nil, apperr.Unauthorized("Invalid username or password")
	}
	return &entity.Identity{ID: "uid-1", Username: username, IsTemporaryPassword: f.temporary}, nil
}

func newTestAuthService(authn Authenticator) *AuthService {
	return NewAuthService(authn, Options{Secret: testSecret, TTL: time.Hour})
}

func TestIssueAndParse(t *testing.T) {
	svc := newTestAuthService(nil)

	token, issued, err := svc.Issue(entity.Identity{ID: "uid-1", Username: "siti", IsTemporaryPassword: true})
	require.NoError(t, err)
	assert.Equal(t, "uid-1", issued.Subject)

	c, err := svc.Parse(token)
	require.NoError(t, err)
	assert.Equal(t, "siti", c.Username)
	assert.True(t, c.IsTemporaryPassword)
	assert.Equal(t, "uid-1", c.Identity().ID)
}

func TestParseRejectsExpired(t *testing.T) {
	svc := newTestAuthService(nil)
	svc.now = func() time.Time { return time.Now().Add(-2 * time.Hour) }
	token, _, err := svc.Issue(entity.Identity{Username: "siti"})
	require.NoError(t, err)

	svc.now = time.Now
	_, err = svc.Parse(token)
	assert.ErrorIs(t, err, ErrInvalidSession)
}

func TestParseRejectsOtherSecret(t *testing.T) {
	other := NewAuthService(nil, Options{Secret: []byte(strings.Repeat("x", 32))})
	token, _, err := other.Issue(entity.Identity{Username: "admin"})
	require.NoError(t, err)

	_, err = newTestAuthService(nil).Parse(token)
	assert.ErrorIs(t, err, ErrInvalidSession)
}

func TestParseRejectsNoneAlgorithm(t *testing.T) {
	c := &Claims{
		RegisteredClaims: jwt.RegisteredClaims{ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour))},
		Username:         "admin",
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodNone, c).SignedString(jwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)

	_, err = newTestAuthService(nil).Parse(token)
	assert.ErrorIs(t, err, ErrInvalidSession)
}

func TestLoginBranchesOnTemporaryFlag(t *testing.T) {
	authn := &fakeAuthenticator{username: "siti", password: "123456", temporary: true}
	svc := newTestAuthService(authn)

	_, c, err := svc.Login(context.Background(), "siti", "123456")
	require.NoError(t, err)
	assert.True(t, c.IsTemporaryPassword)

	_, _, err = svc.Login(context.Background(), "siti", "wrong")
	assert.ErrorIs(t, err, apperr.ErrUnauthorized)
}

func TestUpdateSessionFlipsClaim(t *testing.T) {
	svc := newTestAuthService(nil)
	_, c, err := svc.Issue(entity.Identity{ID: "uid-1", Username: "siti", IsTemporaryPassword: true})
	require.NoError(t, err)

	rec := httptest.NewRecorder()
	updated, err := svc.UpdateSession(rec, c, false)
	require.NoError(t, err)
	assert.False(t, updated.IsTemporaryPassword)
	assert.Equal(t, "uid-1", updated.Subject)

	res := rec.Result()
	cookies := res.Cookies()
	require.Len(t, cookies, 1)
	assert.Equal(t, DefaultCookieName, cookies[0].Name)
	assert.True(t, cookies[0].HttpOnly)
	assert.Equal(t, http.SameSiteLaxMode, cookies[0].SameSite)

	parsed, err := svc.Parse(cookies[0].Value)
	require.NoError(t, err)
	assert.False(t, parsed.IsTemporaryPassword)
}
