package service

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/pageza/chefcourse/backend/internal/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewTokenServiceRequiresSecret(t *testing.T) {
	_, err := NewTokenService("", time.Hour)
	assert.ErrorIs(t, err, ErrMissingJWTSecret)

	ts, err := NewTokenService("secret", 0)
	require.NoError(t, err)
	assert.Equal(t, DefaultTokenTTL, ts.TTL())
}

func TestTokenRoundTrip(t *testing.T) {
	ts, err := NewTokenService("secret", time.Hour)
	require.NoError(t, err)

	userID := uuid.New()
	token, err := ts.Issue(userID, 0)
	require.NoError(t, err)

	claims, err := ts.Verify(token)
	require.NoError(t, err)
	assert.Equal(t, userID, claims.UserID)
	assert.Equal(t, userID.String(), claims.Subject)
}

func TestTokenExpires(t *testing.T) {
	ts, err := NewTokenService("secret", time.Hour)
	require.NoError(t, err)

	issued := time.Now()
	ts.now = func() time.Time { return issued }
	token, err := ts.Issue(uuid.New(), 0)
	require.NoError(t, err)

	ts.now = func() time.Time { return issued.Add(59 * time.Minute) }
	_, err = ts.Verify(token)
	assert.NoError(t, err)

	ts.now = func() time.Time { return issued.Add(61 * time.Minute) }
	_, err = ts.Verify(token)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestTokenRejectsForgeries(t *testing.T) {
	ts, err := NewTokenService("secret", time.Hour)
	require.NoError(t, err)
	other, err := NewTokenService("other-secret", time.Hour)
	require.NoError(t, err)

	userID := uuid.New()
	token, err := other.Issue(userID, 0)
	require.NoError(t, err)

	claims := &types.TokenClaims{
		RegisteredClaims: jwt.RegisteredClaims{ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour))},
		UserID:           userID,
	}
	unsigned, err := jwt.NewWithClaims(jwt.SigningMethodNone, claims).SignedString(jwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)

	hs512, err := jwt.NewWithClaims(jwt.SigningMethodHS512, claims).SignedString([]byte("secret"))
	require.NoError(t, err)

	noExpiry, err := jwt.NewWithClaims(jwt.SigningMethodHS256, &types.TokenClaims{UserID: userID}).SignedString([]byte("secret"))
	require.NoError(t, err)

	noUser, err := jwt.NewWithClaims(jwt.SigningMethodHS256, &types.TokenClaims{
		RegisteredClaims: claims.RegisteredClaims,
	}).SignedString([]byte("secret"))
	require.NoError(t, err)

	for name, tok := range map[string]string{
		"wrong secret": token,
		"alg none":     unsigned,
		"wrong alg":    hs512,
		"no expiry":    noExpiry,
		"no user":      noUser,
		"garbage":      "not.a.token",
		"empty":        "",
	} {
		t.Run(name, func(t *testing.T) {
			_, err := ts.Verify(tok)
			assert.ErrorIs(t, err, ErrInvalidToken)
		})
	}
}
