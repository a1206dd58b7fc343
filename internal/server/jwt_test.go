package server

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestVerify_ValidToken(t *testing.T) {
	verifier := newTokenVerifier("test-secret")
	token := mintToken(t, "test-secret", time.Hour)

	claims, err := verifier.Verify(token)

	require.NoError(t, err)
	assert.Equal(t, "reviewer", claims.Subject)
}

func TestVerify_EmptyToken(t *testing.T) {
	verifier := newTokenVerifier("test-secret")

	_, err := verifier.Verify("")

	assert.EqualError(t, err, "token string is empty")
}

func TestVerify_WrongSecret(t *testing.T) {
	verifier := newTokenVerifier("test-secret")
	token := mintToken(t, "other-secret", time.Hour)

	_, err := verifier.Verify(token)

	require.Error(t, err)
	assert.ErrorIs(t, err, jwt.ErrTokenSignatureInvalid)
}

func TestVerify_Expired(t *testing.T) {
	verifier := newTokenVerifier("test-secret")
	token := mintToken(t, "test-secret", -time.Hour)

	_, err := verifier.Verify(token)

	require.Error(t, err)
	assert.Contains(t, err.Error(), "token expired")
}

func TestVerify_Malformed(t *testing.T) {
	verifier := newTokenVerifier("test-secret")

	_, err := verifier.Verify("not.a.token")

	require.Error(t, err)
	assert.Contains(t, err.Error(), "malformed")
}

func TestVerify_RejectsNonHMAC(t *testing.T) {
	verifier := newTokenVerifier("test-secret")

	// alg=none tokens must never verify.
	token := jwt.NewWithClaims(jwt.SigningMethodNone, jwt.RegisteredClaims{
		Subject:   "reviewer",
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
	})
	signed, err := token.SignedString(jwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)

	_, err = verifier.Verify(signed)

	assert.Error(t, err)
}
