package auth

import (
	"context"
	"testing"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStaticVerifierRoundTrip(t *testing.T) {
	token, err := SignStatic("test-secret", Identity{UID: "uid-1", Email: "ana@example.com", Name: "Ana"})
	require.NoError(t, err)

	id, err := NewStaticVerifier("test-secret").Verify(context.Background(), token)
	require.NoError(t, err)

	assert.Equal(t, "uid-1", id.UID)
	assert.Equal(t, "ana@example.com", id.Email)
	assert.Equal(t, "Ana", id.Name)
}

func TestStaticVerifierRejectsWrongSecret(t *testing.T) {
	token, err := SignStatic("secret-a", Identity{UID: "uid-1"})
	require.NoError(t, err)

	_, err = NewStaticVerifier("secret-b").Verify(context.Background(), token)
	assert.Error(t, err)
}

func TestStaticVerifierRejectsMissingSubject(t *testing.T) {
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{"email": "x@example.com"}).
		SignedString([]byte("test-secret"))
	require.NoError(t, err)

	_, err = NewStaticVerifier("test-secret").Verify(context.Background(), token)
	assert.Error(t, err)
}

func TestStaticVerifierRejectsWrongAlgorithm(t *testing.T) {
	// alg=none tokens must never verify.
	token, err := jwt.NewWithClaims(jwt.SigningMethodNone, jwt.MapClaims{"sub": "uid-1"}).
		SignedString(jwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)

	_, err = NewStaticVerifier("test-secret").Verify(context.Background(), token)
	assert.Error(t, err)
}

func TestStaticVerifierRejectsGarbage(t *testing.T) {
	_, err := NewStaticVerifier("test-secret").Verify(context.Background(), "not-a-token")
	assert.Error(t, err)
}

func TestIdentityContextRoundTrip(t *testing.T) {
	ctx := WithIdentity(context.Background(), Identity{UID: "uid-1"})

	id, ok := FromContext(ctx)
	require.True(t, ok)
	assert.Equal(t, "uid-1", id.UID)

	_, ok = FromContext(context.Background())
	assert.False(t, ok)

	// An empty uid does not count as an identity.
	_, ok = FromContext(WithIdentity(context.Background(), Identity{}))
	assert.False(t, ok)
}
