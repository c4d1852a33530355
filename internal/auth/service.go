package auth

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/littlelemonco/littlelemon-backend/internal/users"
	pkgauth "github.com/littlelemonco/littlelemon-backend/pkg/auth"
	"github.com/littlelemonco/littlelemon-backend/pkg/config"
	"github.com/littlelemonco/littlelemon-backend/pkg/db"
	"github.com/littlelemonco/littlelemon-backend/pkg/db/models"
	pkgerrors "github.com/littlelemonco/littlelemon-backend/pkg/errors"
	"github.com/littlelemonco/littlelemon-backend/pkg/security"
)

type sessionManager interface {
	Create(ctx context.Context, accessID, userID string) error
	Revoke(ctx context.Context, accessID string) error
}

type RegisterInput struct {
	Username string
	Email    string
	Password string
}

type LoginInput struct {
	Username string
	Password string
}

type LoginResult struct {
	Token     string        `json:"token"`
	ExpiresAt time.Time     `json:"expires_at"`
	User      users.UserDTO `json:"user"`
}

// Service issues and revokes credentials. Tokens carry only the user id; role
// checks always hit the membership table.
type Service interface {
	Register(ctx context.Context, input RegisterInput) (users.UserDTO, error)
	Login(ctx context.Context, input LoginInput) (LoginResult, error)
	Logout(ctx context.Context, accessID string) error
}

type service struct {
	users    users.Repository
	sessions sessionManager
	jwtCfg   config.JWTConfig
	pwCfg    config.PasswordConfig
	now      func() time.Time
}

func NewService(userRepo users.Repository, sessions sessionManager, jwtCfg config.JWTConfig, pwCfg config.PasswordConfig) Service {
	return &service{
		users:    userRepo,
		sessions: sessions,
		jwtCfg:   jwtCfg,
		pwCfg:    pwCfg,
		now:      time.Now,
	}
}

func (s *service) Register(ctx context.Context, input RegisterInput) (users.UserDTO, error) {
	username := strings.TrimSpace(strings.ToLower(input.Username))
	email := strings.TrimSpace(strings.ToLower(input.Email))
	if username == "" || email == "" {
		return users.UserDTO{}, pkgerrors.New(pkgerrors.CodeValidation, "username and email are required")
	}
	if len(input.Password) < 8 {
		return users.UserDTO{}, pkgerrors.New(pkgerrors.CodeValidation, "password must be at least 8 characters")
	}

	hash, err := security.HashPassword(input.Password, s.pwCfg)
	if err != nil {
		return users.UserDTO{}, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "failed to hash password")
	}

	user, err := s.users.Create(ctx, &models.User{
		Username:     username,
		Email:        email,
		PasswordHash: hash,
	})
	if err != nil {
		if db.IsUniqueViolation(err, "") {
			return users.UserDTO{}, pkgerrors.New(pkgerrors.CodeConflict, "username or email already registered")
		}
		return users.UserDTO{}, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "failed to create user")
	}
	return users.NewUserDTO(user), nil
}

func (s *service) Login(ctx context.Context, input LoginInput) (LoginResult, error) {
	username := strings.TrimSpace(strings.ToLower(input.Username))
	user, err := s.users.FindByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return LoginResult{}, pkgerrors.New(pkgerrors.CodeUnauthorized, "invalid credentials")
		}
		return LoginResult{}, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "failed to load user")
	}

	ok, err := security.VerifyPassword(input.Password, user.PasswordHash)
	if err != nil {
		return LoginResult{}, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "failed to verify password")
	}
	if !ok {
		return LoginResult{}, pkgerrors.New(pkgerrors.CodeUnauthorized, "invalid credentials")
	}

	now := s.now().UTC()
	jti := uuid.NewString()
	token, err := pkgauth.MintAccessToken(s.jwtCfg, now, pkgauth.AccessTokenPayload{
		UserID: user.ID,
		JTI:    jti,
	})
	if err != nil {
		return LoginResult{}, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "failed to mint access token")
	}
	if err := s.sessions.Create(ctx, jti, user.ID.String()); err != nil {
		return LoginResult{}, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "failed to create session")
	}

	return LoginResult{
		Token:     token,
		ExpiresAt: now.Add(time.Duration(s.jwtCfg.ExpirationMinutes) * time.Minute),
		User:      users.NewUserDTO(user),
	}, nil
}

// Logout revokes the session for the presented token's jti. Unknown ids are a
// quiet success so repeated logouts behave.
func (s *service) Logout(ctx context.Context, accessID string) error {
	if err := s.sessions.Revoke(ctx, accessID); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "failed to revoke session")
	}
	return nil
}
