package auth

import (
	"context"
	"testing"
	"time"

	"kind-kitchen/internal/infrastructure/config"
	"kind-kitchen/internal/pkg/common"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func newTestService(t *testing.T) *Service {
	t.Helper()
	common.InitTestLogger()

	db, err := gorm.Open(sqlite.Open("file::memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	svc, err := NewService(db, &config.AuthConfig{
		JWTSecret:  "test-secret",
		TokenTTL:   time.Hour,
		BcryptCost: 4, // 測試用最低成本
	})
	require.NoError(t, err)
	return svc
}

func TestSignupIssuesValidToken(t *testing.T) {
	svc := newTestService(t)

	session, err := svc.Signup(context.Background(), "Amy", "Amy@Example.com", "secret1")
	require.NoError(t, err)

	assert.NotEmpty(t, session.User.ID)
	// 信箱正規化為小寫
	assert.Equal(t, "amy@example.com", session.User.Email)
	assert.NotEmpty(t, session.Token)

	claims, err := svc.VerifyToken(session.Token)
	require.NoError(t, err)
	assert.Equal(t, session.User.ID, claims.UserID)
	assert.Equal(t, "amy@example.com", claims.Email)
}

func TestSignupDuplicateEmail(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	_, err := svc.Signup(ctx, "Amy", "amy@example.com", "secret1")
	require.NoError(t, err)

	_, err = svc.Signup(ctx, "Another Amy", "amy@example.com", "secret2")
	assert.Equal(t, common.ErrEmailTaken, err)
}

func TestSignupValidation(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	_, err := svc.Signup(ctx, "A", "amy@example.com", "secret1")
	assert.True(t, common.IsValidationError(err))

	_, err = svc.Signup(ctx, "Amy", "not-an-email", "secret1")
	assert.True(t, common.IsValidationError(err))

	_, err = svc.Signup(ctx, "Amy", "amy@example.com", "short")
	assert.True(t, common.IsValidationError(err))
}

func TestLogin(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	_, err := svc.Signup(ctx, "Amy", "amy@example.com", "secret1")
	require.NoError(t, err)

	session, err := svc.Login(ctx, "amy@example.com", "secret1")
	require.NoError(t, err)
	assert.Equal(t, "Amy", session.User.Name)

	_, err = svc.Login(ctx, "amy@example.com", "wrong-password")
	assert.Equal(t, common.ErrInvalidCredentials, err)

	_, err = svc.Login(ctx, "nobody@example.com", "secret1")
	assert.Equal(t, common.ErrInvalidCredentials, err)
}

func TestVerifyTokenRejectsGarbage(t *testing.T) {
	svc := newTestService(t)

	_, err := svc.VerifyToken("not.a.token")
	assert.Error(t, err)
}

func TestVerifyTokenRejectsTampered(t *testing.T) {
	svc := newTestService(t)

	session, err := svc.Signup(context.Background(), "Amy", "amy@example.com", "secret1")
	require.NoError(t, err)

	_, err = svc.VerifyToken(session.Token + "tampered")
	assert.Error(t, err)
}
