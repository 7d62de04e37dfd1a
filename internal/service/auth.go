// Package service provides authentication and todo business logic,
// delegating persistence to repository interfaces.
package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/atinyakov/TaskKeeper/internal/auth"
	"github.com/atinyakov/TaskKeeper/internal/models"
	"github.com/atinyakov/TaskKeeper/internal/repository"
)

// ErrInvalidCredentials is returned by Login for both an unknown
// username and a wrong password; callers must not be able to tell
// the two apart.
var ErrInvalidCredentials = errors.New("invalid credentials")

// ErrUserExists is returned by Register when the username or email is
// already taken.
var ErrUserExists = errors.New("user already exists")

// UserRepository defines the credential-store operations required by
// the authentication service.
type UserRepository interface {
	// FindByUsername looks up a user by username. Returns
	// repository.ErrNotFound if no such user exists.
	FindByUsername(ctx context.Context, username string) (*models.User, error)
	// ExistsByUsernameOrEmail reports whether any user already holds
	// the given username or email.
	ExistsByUsernameOrEmail(ctx context.Context, username, email string) (bool, error)
	// CreateUser inserts a new user record, assigning its identifier.
	CreateUser(ctx context.Context, user *models.User) (*models.User, error)
}

// AuthResult is the outcome of a successful registration or login.
type AuthResult struct {
	// Token is the signed bearer token.
	Token string `json:"token"`
	// Username echoes the authenticated user's login name.
	Username string `json:"username"`
	// Email echoes the authenticated user's email.
	Email string `json:"email"`
	// ExpiresAt is the token's expiry time.
	ExpiresAt time.Time `json:"expiresAt"`
}

// AuthService implements registration and login on top of a
// UserRepository and the token signing configuration.
type AuthService struct {
	repo   UserRepository
	tokens *auth.TokenConfig
	log    *zap.Logger
}

// NewAuthService constructs an AuthService. tokens must be a validated
// signing configuration.
func NewAuthService(repo UserRepository, tokens *auth.TokenConfig, log *zap.Logger) *AuthService {
	return &AuthService{repo: repo, tokens: tokens, log: log}
}

// Register creates a new user and issues a token for it. Returns
// ErrUserExists if the username or email collides, either on the
// pre-check or on the insert itself when two registrations race.
func (s *AuthService) Register(ctx context.Context, username, email, password string) (*AuthResult, error) {
	exists, err := s.repo.ExistsByUsernameOrEmail(ctx, username, email)
	if err != nil {
		return nil, fmt.Errorf("check existing user: %w", err)
	}
	if exists {
		return nil, ErrUserExists
	}

	hash, err := auth.HashPassword(password)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	user, err := s.repo.CreateUser(ctx, &models.User{
		Username:     username,
		Email:        email,
		PasswordHash: hash,
	})
	if err != nil {
		// A concurrent registration can slip past the pre-check; the
		// uniqueness constraint settles it.
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, ErrUserExists
		}
		return nil, fmt.Errorf("create user: %w", err)
	}

	return s.issue(user)
}

// Login verifies the credentials and issues a token. An unknown
// username, a wrong password, and a malformed stored verifier all
// yield the same ErrInvalidCredentials.
func (s *AuthService) Login(ctx context.Context, username, password string) (*AuthResult, error) {
	user, err := s.repo.FindByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, fmt.Errorf("find user: %w", err)
	}

	if !auth.VerifyPassword(password, user.PasswordHash) {
		return nil, ErrInvalidCredentials
	}

	return s.issue(user)
}

func (s *AuthService) issue(user *models.User) (*AuthResult, error) {
	token, expiresAt, err := s.tokens.IssueToken(user)
	if err != nil {
		s.log.Error("failed to issue token", zap.Int64("user_id", user.ID), zap.Error(err))
		return nil, fmt.Errorf("issue token: %w", err)
	}
	return &AuthResult{
		Token:     token,
		Username:  user.Username,
		Email:     user.Email,
		ExpiresAt: expiresAt,
	}, nil
}
