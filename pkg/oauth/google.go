package oauth

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"net/http"
	"os"

	"golang.org/x/oauth2"
	googleOAuth "golang.org/x/oauth2/google"
)

// LoadGoogleConfig reads a client secrets file downloaded from the Google Cloud
// console ("installed" or "web" application) and returns the OAuth2 config.
func LoadGoogleConfig(path string, scopes ...string) (*oauth2.Config, error) {
	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("%w: %s", ErrClientSecretsNotFound, path)
	}
	if err != nil {
		return nil, fmt.Errorf("oauth: read client secrets: %w", err)
	}

	cfg, err := googleOAuth.ConfigFromJSON(data, scopes...)
	if err != nil {
		return nil, errors.Join(ErrInvalidClientSecrets, err)
	}
	return cfg, nil
}

func contextWithHTTPClient(ctx context.Context, client *http.Client) context.Context {
	if client != nil {
		return context.WithValue(ctx, oauth2.HTTPClient, client)
	}
	return ctx
}
