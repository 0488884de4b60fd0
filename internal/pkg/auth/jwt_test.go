package auth

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yigit/learnhub/internal/app/models"
	"github.com/yigit/learnhub/internal/pkg/apperrors"
)

func TestValidateToken(t *testing.T) {
	svc := NewJWTService(JWTConfig{SecretKey: "secret", TokenIssuer: "learnhub-auth"})

	token, err := svc.GenerateToken("user-1", models.RoleInstructor, time.Minute)
	require.NoError(t, err)

	claims, err := svc.ValidateToken(token)
	require.NoError(t, err)
	assert.Equal(t, "user-1", claims.UserID())
	assert.Equal(t, models.RoleInstructor, claims.Role)
}

func TestValidateToken_Rejects(t *testing.T) {
	svc := NewJWTService(JWTConfig{SecretKey: "secret", TokenIssuer: "learnhub-auth"})

	expired, err := svc.GenerateToken("user-1", models.RoleStudent, -time.Minute)
	require.NoError(t, err)
	_, err = svc.ValidateToken(expired)
	assert.ErrorIs(t, err, apperrors.ErrTokenExpired)

	other := NewJWTService(JWTConfig{SecretKey: "other", TokenIssuer: "learnhub-auth"})
	forged, err := other.GenerateToken("user-1", models.RoleAdmin, time.Minute)
	require.NoError(t, err)
	_, err = svc.ValidateToken(forged)
	assert.ErrorIs(t, err, apperrors.ErrTokenInvalid)

	wrongIssuer := NewJWTService(JWTConfig{SecretKey: "secret", TokenIssuer: "elsewhere"})
	token, err := wrongIssuer.GenerateToken("user-1", models.RoleAdmin, time.Minute)
	require.NoError(t, err)
	_, err = svc.ValidateToken(token)
	assert.ErrorIs(t, err, apperrors.ErrTokenInvalid)

	_, err = svc.ValidateToken("")
	assert.ErrorIs(t, err, apperrors.ErrTokenNotFound)
}

func TestExtractBearerToken(t *testing.T) {
	token, err := ExtractBearerToken("Bearer abc.def.ghi")
	require.NoError(t, err)
	assert.Equal(t, "abc.def.ghi", token)

	token, err = ExtractBearerToken("abc.def.ghi")
	require.NoError(t, err)
	assert.Equal(t, "abc.def.ghi", token)

	_, err = ExtractBearerToken("Bearer ")
	assert.ErrorIs(t, err, apperrors.ErrTokenNotFound)
}
