package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/mkraev/lockbox/internal/common"
	"github.com/mkraev/lockbox/internal/server/config"
	"github.com/mkraev/lockbox/internal/server/repositories/repomanager"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newUserService() (*UserService, *repomanager.InMemoryRepositoryManager) {
	cfg := &config.Config{}
	cfg.LoadDefaults()
	m := repomanager.NewInMemoryRepositoryManager()
	return NewUserService(nil, m, cfg), m
}

func TestRegister_Success(t *testing.T) {
	t.Parallel()

	s, _ := newUserService()
	token, err := s.Register(context.Background(), "alice@example.com", "Str0ng!Pass")
	require.NoError(t, err)
	require.NotEmpty(t, token)

	userID, err := s.VerifyToken(token)
	require.NoError(t, err)
	assert.NotEmpty(t, userID)
}

func TestRegister_EmailTaken(t *testing.T) {
	t.Parallel()

	s, m := newUserService()
	ctx := context.Background()

	_, err := s.Register(ctx, "alice@example.com", "Str0ng!Pass")
	require.NoError(t, err)

	_, err = s.Register(ctx, "alice@example.com", "0ther!Pass")
	assert.ErrorIs(t, err, common.ErrorAlreadyExists)

	// The original account is untouched and still logs in.
	_, err = s.Login(ctx, "alice@example.com", "Str0ng!Pass")
	require.NoError(t, err)
	u, err := m.Users(nil).GetByEmail(ctx, "alice@example.com")
	require.NoError(t, err)
	assert.NotEmpty(t, u.ID)
}

func TestRegister_MissingFields(t *testing.T) {
	t.Parallel()

	s, _ := newUserService()
	for _, tc := range []struct{ email, password string }{
		{"", "pw"},
		{"a@example.com", ""},
		{"", ""},
	} {
		_, err := s.Register(context.Background(), tc.email, tc.password)
		assert.ErrorIs(t, err, common.ErrorValidation)
	}
}

func TestLogin_Success(t *testing.T) {
	t.Parallel()

	s, _ := newUserService()
	ctx := context.Background()

	_, err := s.Register(ctx, "alice@example.com", "Str0ng!Pass")
	require.NoError(t, err)

	token, err := s.Login(ctx, "alice@example.com", "Str0ng!Pass")
	require.NoError(t, err)
	_, err = s.VerifyToken(token)
	require.NoError(t, err)
}

func TestLogin_IdenticalErrorForBothFailures(t *testing.T) {
	t.Parallel()

	s, _ := newUserService()
	ctx := context.Background()

	_, err := s.Register(ctx, "alice@example.com", "Str0ng!Pass")
	require.NoError(t, err)

	_, errWrongPassword := s.Login(ctx, "alice@example.com", "wrong")
	_, errNoUser := s.Login(ctx, "ghost@example.com", "whatever")

	// No user-enumeration leakage: both paths fail identically.
	assert.ErrorIs(t, errWrongPassword, common.ErrInvalidCredentials)
	assert.ErrorIs(t, errNoUser, common.ErrInvalidCredentials)
	assert.Equal(t, errWrongPassword.Error(), errNoUser.Error())
}

func TestVerifyToken_Failures(t *testing.T) {
	t.Parallel()

	s, _ := newUserService()

	_, err := s.VerifyToken("garbage")
	assert.ErrorIs(t, err, common.ErrMalformedToken)

	cfg := &config.Config{}
	cfg.LoadDefaults()
	cfg.SecretKey = "a-different-secret"
	other := NewUserService(nil, repomanager.NewInMemoryRepositoryManager(), cfg)
	token, err := other.Register(context.Background(), "bob@example.com", "pw!A1bcd")
	require.NoError(t, err)

	_, err = s.VerifyToken(token)
	assert.ErrorIs(t, err, common.ErrInvalidToken)
}

func TestVerifyToken_Expired(t *testing.T) {
	t.Parallel()

	cfg := &config.Config{}
	cfg.LoadDefaults()
	cfg.TokenValidityDuration = -time.Second
	s := NewUserService(nil, repomanager.NewInMemoryRepositoryManager(), cfg)

	token, err := s.Register(context.Background(), "carol@example.com", "pw!A1bcd")
	require.NoError(t, err)

	_, err = s.VerifyToken(token)
	if !errors.Is(err, common.ErrTokenExpired) {
		t.Fatalf("expected common.ErrTokenExpired, got %v", err)
	}
}
