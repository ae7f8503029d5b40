package auth

import (
	"testing"
	"time"

	"food-ordering-api/apperrors"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testSecret = []byte("test-secret")

func TestTokenIssuer_RoundTrip(t *testing.T) {
	ti := NewTokenIssuer(testSecret, 7*24*time.Hour)

	raw, err := ti.Issue("user-1")
	require.NoError(t, err)

	claims, err := ti.Parse(raw)
	require.NoError(t, err)
	assert.Equal(t, "user-1", claims.UserID)
	assert.WithinDuration(t, time.Now().Add(7*24*time.Hour), claims.ExpiresAt.Time, 5*time.Second)
}

func TestTokenIssuer_Expired(t *testing.T) {
	issuedAt := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	ti := NewTokenIssuer(testSecret, 7*24*time.Hour)
	ti.now = func() time.Time { return issuedAt }

	raw, err := ti.Issue("user-1")
	require.NoError(t, err)

	ti.now = func() time.Time { return issuedAt.Add(7*24*time.Hour - time.Minute) }
	_, err = ti.Parse(raw)
	assert.NoError(t, err)

	ti.now = func() time.Time { return issuedAt.Add(7*24*time.Hour + time.Minute) }
	_, err = ti.Parse(raw)
	assert.ErrorIs(t, err, apperrors.ErrTokenExpired)
}

func TestTokenIssuer_Invalid(t *testing.T) {
	ti := NewTokenIssuer(testSecret, time.Hour)
	other := NewTokenIssuer([]byte("other-secret"), time.Hour)

	forged, err := other.Issue("user-1")
	require.NoError(t, err)

	none := jwt.NewWithClaims(jwt.SigningMethodNone, Claims{
		UserID:           "user-1",
		RegisteredClaims: jwt.RegisteredClaims{ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour))},
	})
	unsigned, err := none.SignedString(jwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)

	for name, raw := range map[string]string{
		"garbage":      "not.a.token",
		"wrong secret": forged,
		"alg none":     unsigned,
	} {
		_, err := ti.Parse(raw)
		assert.ErrorIs(t, err, apperrors.ErrInvalidToken, name)
	}
}

func TestTokenIssuer_MissingUserID(t *testing.T) {
	ti := NewTokenIssuer(testSecret, time.Hour)

	raw, err := ti.Issue("")
	require.NoError(t, err)

	_, err = ti.Parse(raw)
	assert.ErrorIs(t, err, apperrors.ErrInvalidToken)
}
