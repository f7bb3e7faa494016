package auth

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestCodec(t *testing.T) *TokenCodec {
	t.Helper()

	codec, err := NewTokenCodec([]byte("test-secret-key-at-least-32-bytes-long"), time.Hour)
	require.NoError(t, err)

	return codec
}

func TestNewTokenCodec_Rejects(t *testing.T) {
	_, err := NewTokenCodec(nil, time.Hour)
	assert.Error(t, err)

	_, err = NewTokenCodec([]byte("secret"), 0)
	assert.Error(t, err)
}

func TestTokenCodec_RoundTrip(t *testing.T) {
	codec := newTestCodec(t)

	token, err := codec.Issue("user-123")
	require.NoError(t, err)
	require.NotEmpty(t, token)

	claims, err := codec.Validate(token)
	require.NoError(t, err)
	assert.Equal(t, "user-123", claims.UserID)
	assert.WithinDuration(t, time.Now().Add(time.Hour), claims.ExpiresAt.Time, 5*time.Second)
	assert.WithinDuration(t, time.Now(), claims.IssuedAt.Time, 5*time.Second)
}

func TestTokenCodec_Expired(t *testing.T) {
	codec := newTestCodec(t)

	issuedAt := time.Now().Add(-2 * time.Hour)
	codec.now = func() time.Time { return issuedAt }

	token, err := codec.Issue("user-123")
	require.NoError(t, err)

	codec.now = time.Now

	_, err = codec.Validate(token)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestTokenCodec_Invalid(t *testing.T) {
	codec := newTestCodec(t)

	other, err := NewTokenCodec([]byte("a-different-secret"), time.Hour)
	require.NoError(t, err)

	foreign, err := other.Issue("user-123")
	require.NoError(t, err)

	noneToken, err := jwt.NewWithClaims(jwt.SigningMethodNone, jwt.MapClaims{
		"user_id": "user-123",
		"exp":     time.Now().Add(time.Hour).Unix(),
	}).SignedString(jwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)

	noExpiry, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"user_id": "user-123",
	}).SignedString(codec.secret)
	require.NoError(t, err)

	noUser, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"exp": time.Now().Add(time.Hour).Unix(),
	}).SignedString(codec.secret)
	require.NoError(t, err)

	tests := map[string]string{
		"empty":          "",
		"garbage":        "not-a-jwt",
		"wrong secret":   foreign,
		"alg none":       noneToken,
		"missing expiry": noExpiry,
		"missing user":   noUser,
	}

	for name, token := range tests {
		t.Run(name, func(t *testing.T) {
			claims, err := codec.Validate(token)
			assert.Nil(t, claims)
			assert.ErrorIs(t, err, ErrInvalidToken)
		})
	}
}
