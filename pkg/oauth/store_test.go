package oauth_test

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"golang.org/x/oauth2"

	"github.com/dmitrymomot/mailmerge/pkg/oauth"
)

func TestFileStore_SaveLoad(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "nested", "token.json")
	store := oauth.NewFileStore(path)

	expiry := time.Date(2030, 1, 1, 0, 0, 0, 0, time.UTC)
	require.NoError(t, store.Save(&oauth2.Token{
		AccessToken:  "at",
		TokenType:    "Bearer",
		RefreshToken: "rt",
		Expiry:       expiry,
	}))

	info, err := os.Stat(path)
	require.NoError(t, err)
	require.Equal(t, os.FileMode(0o600), info.Mode().Perm())

	tok, err := store.Load()
	require.NoError(t, err)
	require.Equal(t, "at", tok.AccessToken)
	require.Equal(t, "rt", tok.RefreshToken)
	require.True(t, tok.Expiry.Equal(expiry))

	entries, err := os.ReadDir(filepath.Dir(path))
	require.NoError(t, err)
	require.Len(t, entries, 1, "temp files must not be left behind")
}

func TestFileStore_Load(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		content string
		wantErr error
		want    string
	}{
		{name: "authorized user layout", content: `{"token":"ya29.abc","refresh_token":"1//rt","expiry":"2030-01-01T00:00:00Z"}`, want: "ya29.abc"},
		{name: "malformed json", content: `{not json`, wantErr: oauth.ErrInvalidToken},
		{name: "no tokens", content: `{}`, wantErr: oauth.ErrInvalidToken},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			path := filepath.Join(t.TempDir(), "token.json")
			require.NoError(t, os.WriteFile(path, []byte(tt.content), 0o600))

			tok, err := oauth.NewFileStore(path).Load()
			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			require.Equal(t, tt.want, tok.AccessToken)
		})
	}
}

func TestFileStore_LoadMissing(t *testing.T) {
	t.Parallel()

	_, err := oauth.NewFileStore(filepath.Join(t.TempDir(), "absent.json")).Load()
	require.ErrorIs(t, err, oauth.ErrTokenNotFound)
}
