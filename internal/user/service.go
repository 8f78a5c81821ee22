package user

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"github.com/ovaphlow/pitchfork/service-idea-studio/internal/apperr"
	"github.com/ovaphlow/pitchfork/service-idea-studio/internal/metrics"
	"github.com/ovaphlow/pitchfork/service-idea-studio/internal/user/entity"
	userrepo "github.com/ovaphlow/pitchfork/service-idea-studio/internal/user/repo"
	"github.com/ovaphlow/pitchfork/service-idea-studio/pkg/utilities"
)

// Password length bounds apply to admin-assigned and self-chosen passwords
// alike. bcrypt refuses input longer than MaxPasswordLength bytes.
const (
	MinPasswordLength = 6
	MaxPasswordLength = 72
)

var errPasswordTooLong = apperr.InvalidInput("Password must be at most 72 bytes")

// PasswordHasher defines minimal hashing interface (abstract so we can swap to argon2 later).
type PasswordHasher interface {
	Hash(pw string) (string, error)
	Verify(hash, pw string) bool
}

// BcryptHasher implementation.
type BcryptHasher struct{ Cost int }

func (b BcryptHasher) Hash(pw string) (string, error) {
	cost := b.Cost
	if cost == 0 {
		cost = bcrypt.DefaultCost
	}
	h, err := bcrypt.GenerateFromPassword([]byte(pw), cost)
	if err != nil {
		return "", err
	}
	return string(h), nil
}

func (b BcryptHasher) Verify(hash, pw string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(pw)) == nil
}

// Store is the subset of the users table the service needs.
type Store interface {
	Create(ctx context.Context, u *entity.User) error
	InsertIfAbsent(ctx context.Context, u *entity.User) (bool, error)
	GetByUsername(ctx context.Context, username string) (*entity.User, error)
	ExistsByUsername(ctx context.Context, username string) (bool, error)
	UpdatePassword(ctx context.Context, username, hash string, temporary bool) error
}

// ErrBadCredentials is returned for an unknown user and a wrong password alike.
var ErrBadCredentials = apperr.Unauthorized("Invalid username or password")

// UserService orchestrates authentication and account management.
type UserService struct {
	store  Store
	hasher PasswordHasher
	logger *zap.SugaredLogger

	// dummyHash is compared against when the username does not exist so both
	// failure paths pay for one bcrypt comparison.
	dummyHash string
}

func NewUserService(store Store, hasher PasswordHasher, logger *zap.SugaredLogger) (*UserService, error) {
	if hasher == nil {
		hasher = BcryptHasher{Cost: 10}
	}
	dummy, err := hasher.Hash("idea-studio-timing-pad")
	if err != nil {
		return nil, fmt.Errorf("prepare dummy hash: %w", err)
	}
	return &UserService{store: store, hasher: hasher, logger: logger, dummyHash: dummy}, nil
}

// Authenticate verifies username/password. An unknown user and a wrong
// password both return ErrBadCredentials.
func (s *UserService) Authenticate(ctx context.Context, username, password string) (*entity.Identity, error) {
	if username == "" || password == "" {
		metrics.LoginAttempts.WithLabelValues("rejected").Inc()
		return nil, ErrBadCredentials
	}

	u, err := s.store.GetByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, userrepo.ErrNotFound) {
			s.hasher.Verify(s.dummyHash, password)
			metrics.LoginAttempts.WithLabelValues("rejected").Inc()
			return nil, ErrBadCredentials
		}
		metrics.LoginAttempts.WithLabelValues("error").Inc()
		return nil, fmt.Errorf("lookup user: %w", err)
	}

	if !s.hasher.Verify(u.PasswordHash, password) {
		metrics.LoginAttempts.WithLabelValues("rejected").Inc()
		return nil, ErrBadCredentials
	}

	metrics.LoginAttempts.WithLabelValues("success").Inc()
	id := u.Identity()
	return &id, nil
}

// CreateUser lets the admin create an account with a temporary password.
// The existence check and the insert are not atomic; a concurrent duplicate
// that slips past the check is caught by the unique index and still reported
// as a conflict.
func (s *UserService) CreateUser(ctx context.Context, actor entity.Identity, username, password string) (*entity.User, error) {
	if !actor.IsAdmin() {
		return nil, apperr.Forbidden("Unauthorized")
	}
	if username == "" || password == "" || len(password) < MinPasswordLength {
		return nil, apperr.InvalidInput("Invalid input. Password must be at least 6 characters.")
	}
	if len(password) > MaxPasswordLength {
		return nil, errPasswordTooLong
	}

	exists, err := s.store.ExistsByUsername(ctx, username)
	if err != nil {
		return nil, fmt.Errorf("check username: %w", err)
	}
	if exists {
		return nil, apperr.Conflict("Username already exists")
	}

	hash, err := s.hasher.Hash(password)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}
	u := &entity.User{
		ID:                  utilities.NewKSUID(),
		Username:            username,
		PasswordHash:        hash,
		IsTemporaryPassword: true,
	}
	if err := s.store.Create(ctx, u); err != nil {
		if errors.Is(err, userrepo.ErrDuplicateUsername) {
			return nil, apperr.Conflict("Username already exists")
		}
		return nil, fmt.Errorf("create user: %w", err)
	}

	metrics.UsersCreated.Inc()
	s.logger.Infow("user created", "username", username, "by", actor.Username)
	return u, nil
}

// ChangePassword sets a new password for the actor's own account and clears
// the temporary flag. The target row is always the actor's username.
func (s *UserService) ChangePassword(ctx context.Context, actor entity.Identity, newPassword string) error {
	if actor.Username == "" {
		return apperr.Unauthorized("Unauthorized")
	}
	if len(newPassword) < MinPasswordLength {
		return apperr.InvalidInput("Password must be at least 6 characters")
	}
	if len(newPassword) > MaxPasswordLength {
		return errPasswordTooLong
	}

	hash, err := s.hasher.Hash(newPassword)
	if err != nil {
		return fmt.Errorf("hash password: %w", err)
	}
	if err := s.store.UpdatePassword(ctx, actor.Username, hash, false); err != nil {
		if errors.Is(err, userrepo.ErrNotFound) {
			return apperr.Unauthorized("Unauthorized")
		}
		return fmt.Errorf("update password: %w", err)
	}

	s.logger.Infow("password changed", "username", actor.Username)
	return nil
}

// EnsureAdmin creates the admin account if it does not exist yet. An existing
// admin row is never modified. Reports whether the account was created.
func (s *UserService) EnsureAdmin(ctx context.Context, password string, temporary bool) (bool, error) {
	if len(password) < MinPasswordLength {
		return false, apperr.InvalidInput("admin password must be at least 6 characters")
	}
	if len(password) > MaxPasswordLength {
		return false, errPasswordTooLong
	}
	hash, err := s.hasher.Hash(password)
	if err != nil {
		return false, fmt.Errorf("hash password: %w", err)
	}
	created, err := s.store.InsertIfAbsent(ctx, &entity.User{
		ID:                  utilities.NewKSUID(),
		Username:            entity.AdminUsername,
		PasswordHash:        hash,
		IsTemporaryPassword: temporary,
	})
	if err != nil {
		return false, fmt.Errorf("insert admin: %w", err)
	}
	return created, nil
}
