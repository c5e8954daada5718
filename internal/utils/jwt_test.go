package utils

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateTokensRoundTrip(t *testing.T) {
	AccessTokenSecret = []byte("access-secret")
	RefreshTokenSecret = []byte("refresh-secret")

	userID := uuid.New()
	access, refresh, jti, err := GenerateTokens(userID)
	require.NoError(t, err)
	require.NotEmpty(t, jti)

	accessClaims, err := VerifyJWT(access, AccessTokenSecret)
	require.NoError(t, err)
	assert.Equal(t, userID.String(), accessClaims.Subject)
	assert.Equal(t, jti, accessClaims.ID)

	refreshClaims, err := VerifyJWT(refresh, RefreshTokenSecret)
	require.NoError(t, err)
	assert.Equal(t, jti, refreshClaims.ID, "both tokens share one jti")
}

func TestVerifyJWTWrongSecret(t *testing.T) {
	AccessTokenSecret = []byte("access-secret")
	access, _, _, err := GenerateTokens(uuid.New())
	require.NoError(t, err)

	_, err = VerifyJWT(access, []byte("some-other-secret"))
	assert.Error(t, err)
}

func TestVerifyJWTExpired(t *testing.T) {
	secret := []byte("access-secret")
	claims := &Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        uuid.NewString(),
			Subject:   uuid.NewString(),
			IssuedAt:  jwt.NewNumericDate(time.Now().Add(-2 * time.Hour)),
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(-time.Hour)),
		},
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(secret)
	require.NoError(t, err)

	_, err = VerifyJWT(token, secret)
	assert.ErrorIs(t, err, ErrTokenExpired)
}
