package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLogin_ValidCredentials(t *testing.T) {
	svc := NewAuthService("admin", "secret", "test-signing-key")

	res, err := svc.Login("admin", "secret")
	require.NoError(t, err)
	assert.NotEmpty(t, res.Token)
	assert.NotEmpty(t, res.OwnerID)
}

func TestLogin_InvalidCredentials(t *testing.T) {
	svc := NewAuthService("admin", "secret", "test-signing-key")

	_, err := svc.Login("admin", "wrong")
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	_, err = svc.Login("nobody", "secret")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestLogin_StableOwnerID(t *testing.T) {
	svc := NewAuthService("admin", "secret", "test-signing-key")

	a, err := svc.Login("admin", "secret")
	require.NoError(t, err)
	b, err := svc.Login("admin", "secret")
	require.NoError(t, err)
	assert.Equal(t, a.OwnerID, b.OwnerID)
}

func TestValidateOwnerToken_RoundTrip(t *testing.T) {
	svc := NewAuthService("admin", "secret", "test-signing-key")

	res, err := svc.Login("admin", "secret")
	require.NoError(t, err)

	claims, err := svc.ValidateOwnerToken(res.Token)
	require.NoError(t, err)
	assert.Equal(t, res.OwnerID, claims.OwnerID)
}

func TestValidateOwnerToken_WrongSecretRejected(t *testing.T) {
	issuer := NewAuthService("admin", "secret", "key-a")
	verifier := NewAuthService("admin", "secret", "key-b")

	res, err := issuer.Login("admin", "secret")
	require.NoError(t, err)

	_, err = verifier.ValidateOwnerToken(res.Token)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestValidateOwnerToken_GarbageRejected(t *testing.T) {
	svc := NewAuthService("admin", "secret", "test-signing-key")

	_, err := svc.ValidateOwnerToken("not.a.jwt")
	assert.ErrorIs(t, err, ErrInvalidToken)
}
