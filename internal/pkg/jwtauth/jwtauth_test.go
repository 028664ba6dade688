package jwtauth_test

import (
	"testing"
	"time"

	"github.com/inkwell-press/inkwell/internal/pkg/jwtauth"
	"github.com/stretchr/testify/require"
)

const testSecret = "test-secret"

func TestTokenRoundTrip(t *testing.T) {
	token, err := jwtauth.NewToken(42, jwtauth.PurposeConfirm, time.Hour, testSecret)
	require.NoError(t, err)
	require.NotEmpty(t, token)

	uid, err := jwtauth.ParseToken(token, jwtauth.PurposeConfirm, testSecret)
	require.NoError(t, err)
	require.Equal(t, int64(42), uid)
}

func TestTokenWrongPurpose(t *testing.T) {
	token, err := jwtauth.NewToken(42, "reset", time.Hour, testSecret)
	require.NoError(t, err)

	_, err = jwtauth.ParseToken(token, jwtauth.PurposeConfirm, testSecret)
	require.ErrorIs(t, err, jwtauth.ErrInvalidToken)
}

func TestTokenWrongSecret(t *testing.T) {
	token, err := jwtauth.NewToken(42, jwtauth.PurposeConfirm, time.Hour, testSecret)
	require.NoError(t, err)

	_, err = jwtauth.ParseToken(token, jwtauth.PurposeConfirm, "another-secret")
	require.Error(t, err)
}

func TestTokenExpired(t *testing.T) {
	token, err := jwtauth.NewToken(42, jwtauth.PurposeConfirm, -time.Minute, testSecret)
	require.NoError(t, err)

	_, err = jwtauth.ParseToken(token, jwtauth.PurposeConfirm, testSecret)
	require.Error(t, err)
}

func TestTokenGarbage(t *testing.T) {
	_, err := jwtauth.ParseToken("not-a-token", jwtauth.PurposeConfirm, testSecret)
	require.Error(t, err)
}
