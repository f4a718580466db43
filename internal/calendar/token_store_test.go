package calendar

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/oauth2"
)

func TestTokenStoreLoadMissing(t *testing.T) {
	store := NewTokenStore(filepath.Join(t.TempDir(), "token.json"))
	_, err := store.Load()
	assert.ErrorIs(t, err, ErrNotConnected)
}

func TestTokenStoreRoundTrip(t *testing.T) {
	store := NewTokenStore(filepath.Join(t.TempDir(), "token.json"))

	token := &oauth2.Token{
		AccessToken:  "ya29.test",
		RefreshToken: "1//refresh",
		TokenType:    "Bearer",
		Expiry:       time.Now().Add(time.Hour).UTC().Truncate(time.Second),
	}
	require.NoError(t, store.Save(token))

	got, err := store.Load()
	require.NoError(t, err)
	assert.Equal(t, token.AccessToken, got.AccessToken)
	assert.Equal(t, token.RefreshToken, got.RefreshToken)
	assert.True(t, token.Expiry.Equal(got.Expiry))
}

func TestTokenStoreOverwrite(t *testing.T) {
	store := NewTokenStore(filepath.Join(t.TempDir(), "token.json"))

	require.NoError(t, store.Save(&oauth2.Token{AccessToken: "first"}))
	require.NoError(t, store.Save(&oauth2.Token{AccessToken: "second"}))

	got, err := store.Load()
	require.NoError(t, err)
	assert.Equal(t, "second", got.AccessToken)
}
