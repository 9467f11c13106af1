package auth

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSignAndParse(t *testing.T) {
	secret := []byte("unit-test-secret")

	tok, err := Sign(Claims{UserID: "u-1", IsAdmin: true}, secret, time.Hour)
	require.NoError(t, err)

	got, err := Parse(tok, secret)
	require.NoError(t, err)
	assert.Equal(t, "u-1", got.UserID)
	assert.True(t, got.IsAdmin)
}

func TestParseRejectsWrongSecret(t *testing.T) {
	tok, err := Sign(Claims{UserID: "u-1"}, []byte("secret-a"), time.Hour)
	require.NoError(t, err)

	_, err = Parse(tok, []byte("secret-b"))
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestParseRejectsExpired(t *testing.T) {
	secret := []byte("unit-test-secret")
	tok, err := Sign(Claims{UserID: "u-1"}, secret, -time.Minute)
	require.NoError(t, err)

	_, err = Parse(tok, secret)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestParseRejectsGarbage(t *testing.T) {
	_, err := Parse("not.a.token", []byte("secret"))
	assert.ErrorIs(t, err, ErrInvalidToken)
}
