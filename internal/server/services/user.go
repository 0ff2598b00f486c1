// Package services contains server-side business logic. This file implements
// UserService, the authentication gate: registration, login, and the session
// token capability check every protected request goes through.
package services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/mkraev/lockbox/internal/common"
	"github.com/mkraev/lockbox/internal/server/auth"
	"github.com/mkraev/lockbox/internal/server/config"
	"github.com/mkraev/lockbox/internal/server/models"
	"github.com/mkraev/lockbox/internal/server/repositories/repomanager"
)

// UserService provides authentication-related operations:
// - Register: create a user and mint a session token (registration doubles as login)
// - Login: verify credentials and mint a session token
// - VerifyToken: the shared capability check for protected requests
type UserService struct {
	db            *sql.DB
	repomanager   repomanager.RepositoryManager
	jwtSecret     []byte
	tokenValidity time.Duration
}

// NewUserService constructs a UserService using repositories and server config.
func NewUserService(db *sql.DB, m repomanager.RepositoryManager, cfg *config.Config) *UserService {
	return &UserService{
		db:            db,
		repomanager:   m,
		jwtSecret:     []byte(cfg.SecretKey),
		tokenValidity: cfg.TokenValidityDuration,
	}
}

// Register creates a user with the given email and password and returns a
// fresh session token. A duplicate email yields common.ErrorAlreadyExists;
// the database unique index is the enforcement point, so concurrent
// registrations cannot both succeed.
func (s *UserService) Register(ctx context.Context, email, password string) (string, error) {
	if email == "" || password == "" {
		return "", fmt.Errorf("%w: email and password are required", common.ErrorValidation)
	}

	hash, err := auth.HashPassword(password)
	if err != nil {
		return "", common.ErrorInternal
	}

	user := &models.User{ID: uuid.NewString(), Email: email, PasswordHash: hash}
	repo := s.repomanager.Users(s.db)
	if _, err := repo.Create(ctx, user); err != nil {
		if errors.Is(err, common.ErrorAlreadyExists) {
			return "", common.ErrorAlreadyExists
		}
		return "", fmt.Errorf("error creating user: %w", err)
	}

	return s.generateToken(user.ID)
}

// Login verifies the credentials and returns a session token. A missing user
// and a wrong password both return common.ErrInvalidCredentials; when the
// user is absent a dummy hash comparison runs so the two paths cost the same.
func (s *UserService) Login(ctx context.Context, email, password string) (string, error) {
	repo := s.repomanager.Users(s.db)
	user, err := repo.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			auth.CheckPasswordDummy(password)
			return "", common.ErrInvalidCredentials
		}
		return "", common.ErrorInternal
	}

	if !auth.CheckPassword(password, user.PasswordHash) {
		return "", common.ErrInvalidCredentials
	}

	return s.generateToken(user.ID)
}

// VerifyToken validates a session token and returns the user ID it proves.
// All failures make the request unauthenticated; the typed errors exist for
// diagnostics only.
func (s *UserService) VerifyToken(token string) (string, error) {
	return auth.GetUserIDFromToken(token, s.jwtSecret)
}

func (s *UserService) generateToken(userID string) (string, error) {
	token, err := auth.GenerateToken(userID, s.jwtSecret, s.tokenValidity)
	if err != nil {
		return "", common.ErrorInternal
	}
	return token, nil
}
