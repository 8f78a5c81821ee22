package auth

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/ovaphlow/pitchfork/service-idea-studio/internal/user/entity"
)

const DefaultCookieName = "idea_studio_session"

var ErrInvalidSession = errors.New("invalid session")

// Authenticator checks a username/password pair against the user store.
type Authenticator interface {
	Authenticate(ctx context.Context, username, password string) (*entity.Identity, error)
}

type Options struct {
	Secret       []byte
	TTL          time.Duration
	CookieName   string
	CookieSecure bool
}

// AuthService issues and verifies session tokens. It is built once at
// start-up and handed to every component that needs it.
type AuthService struct {
	authn        Authenticator
	secret       []byte
	ttl          time.Duration
	cookieName   string
	cookieSecure bool
	now          func() time.Time
}

func NewAuthService(authn Authenticator, opts Options) *AuthService {
	if opts.TTL <= 0 {
		opts.TTL = 30 * 24 * time.Hour
	}
	if opts.CookieName == "" {
		opts.CookieName = DefaultCookieName
	}
	return &AuthService{
		authn:        authn,
		secret:       opts.Secret,
		ttl:          opts.TTL,
		cookieName:   opts.CookieName,
		cookieSecure: opts.CookieSecure,
		now:          time.Now,
	}
}

// Login authenticates the credentials and mints a session token. It has no
// side effects on the store.
func (s *AuthService) Login(ctx context.Context, username, password string) (string, *Claims, error) {
	id, err := s.authn.Authenticate(ctx, username, password)
	if err != nil {
		return "", nil, err
	}
	return s.Issue(*id)
}

// Issue signs a token for id.
func (s *AuthService) Issue(id entity.Identity) (string, *Claims, error) {
	now := s.now()
	c := &Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   id.ID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.ttl)),
		},
		Username:            id.Username,
		IsTemporaryPassword: id.IsTemporaryPassword,
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, c).SignedString(s.secret)
	if err != nil {
		return "", nil, fmt.Errorf("sign session: %w", err)
	}
	return signed, c, nil
}

// Parse verifies a token and returns its claims.
func (s *AuthService) Parse(token string) (*Claims, error) {
	c := &Claims{}
	parsed, err := jwt.ParseWithClaims(token, c, func(t *jwt.Token) (any, error) {
		return s.secret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}), jwt.WithTimeFunc(s.now), jwt.WithExpirationRequired())
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidSession, err)
	}
	if !parsed.Valid || c.Username == "" {
		return nil, ErrInvalidSession
	}
	return c, nil
}

// SetSessionCookie writes token as the session cookie.
func (s *AuthService) SetSessionCookie(w http.ResponseWriter, token string) {
	http.SetCookie(w, &http.Cookie{
		Name:     s.cookieName,
		Value:    token,
		Path:     "/",
		HttpOnly: true,
		Secure:   s.cookieSecure,
		SameSite: http.SameSiteLaxMode,
		MaxAge:   int(s.ttl / time.Second),
	})
}

func (s *AuthService) ClearSessionCookie(w http.ResponseWriter) {
	http.SetCookie(w, &http.Cookie{
		Name:     s.cookieName,
		Value:    "",
		Path:     "/",
		HttpOnly: true,
		Secure:   s.cookieSecure,
		SameSite: http.SameSiteLaxMode,
		MaxAge:   -1,
	})
}

// UpdateSession re-issues the caller's session with a new temporary-password
// claim. It is the only way a session claim changes after login.
func (s *AuthService) UpdateSession(w http.ResponseWriter, current *Claims, temporary bool) (*Claims, error) {
	id := current.Identity()
	id.IsTemporaryPassword = temporary
	token, c, err := s.Issue(id)
	if err != nil {
		return nil, err
	}
	s.SetSessionCookie(w, token)
	return c, nil
}

func (s *AuthService) sessionToken(r *http.Request) (string, bool) {
	ck, err := r.Cookie(s.cookieName)
	if err != nil || ck.Value == "" {
		return "", false
	}
	return ck.Value, true
}
