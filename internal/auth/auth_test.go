package auth

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func signed(t *testing.T, claims jwt.MapClaims) string {
	t.Helper()
	s, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("test-key"))
	require.NoError(t, err)
	return s
}

func TestGetTokenNotLoggedIn(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	t.Setenv(EnvToken, "")
	ti, err := GetToken()
	require.NoError(t, err)
	assert.Nil(t, ti)
}

func TestGetTokenEnvOverride(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	t.Setenv(EnvToken, "Bearer abc123")
	require.NoError(t, SetToken("from-file", nil))

	ti, err := GetToken()
	require.NoError(t, err)
	require.NotNil(t, ti)
	assert.Equal(t, "abc123", ti.Token)
	assert.Equal(t, "env", ti.Source)
	assert.Nil(t, ti.ExpiresAt)
}

func TestSetTokenRoundTrip(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)
	t.Setenv(EnvToken, "")

	exp := time.Now().Add(time.Hour).Truncate(time.Second)
	tok := signed(t, jwt.MapClaims{"sub": "user-1", "exp": exp.Unix()})
	require.NoError(t, SetToken("bearer "+tok, nil))

	fi, err := os.Stat(filepath.Join(home, ".tada", credFileName))
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0o600), fi.Mode().Perm())

	ti, err := GetToken()
	require.NoError(t, err)
	require.NotNil(t, ti)
	assert.Equal(t, tok, ti.Token)
	assert.Equal(t, "file", ti.Source)
	require.NotNil(t, ti.ExpiresAt)
	assert.True(t, exp.Equal(*ti.ExpiresAt))
	assert.False(t, ti.Expired(time.Now()))
	assert.True(t, ti.Expired(exp.Add(time.Minute)))

	require.NoError(t, DeleteToken())
	ti, err = GetToken()
	require.NoError(t, err)
	assert.Nil(t, ti)
	require.NoError(t, DeleteToken())
}

func TestSetTokenEmpty(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	assert.Error(t, SetToken("   ", nil))
}

func TestClaims(t *testing.T) {
	claims, err := Claims(signed(t, jwt.MapClaims{"sub": "user-1", "email": "a@example.com"}))
	require.NoError(t, err)
	assert.Equal(t, "user-1", claims["sub"])

	_, err = Claims("opaque-token")
	assert.Error(t, err)
}
