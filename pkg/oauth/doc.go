// Package oauth obtains and keeps Google OAuth2 credentials for a command-line
// program using the installed-application flow.
//
// New reads the client secrets file and the stored token and picks a strategy:
//
//   - Refresh: a stored token is still valid or carries a refresh token.
//     Expired tokens are refreshed and written back to the store.
//   - Interactive: no usable token. A loopback server on 127.0.0.1 receives the
//     consent redirect, the code is exchanged with PKCE and the token is saved.
//
// # Usage
//
//	provider, err := oauth.New(oauth.Config{
//		ClientSecretsFile: "credentials.json",
//		TokenFile:         "token.json",
//	})
//	if err != nil {
//		return err
//	}
//
//	ts, err := provider.TokenSource(ctx)
//	if err != nil {
//		return err
//	}
//
// The returned oauth2.TokenSource can be handed to any Google API client.
//
// # Testing
//
// Use WithHTTPClient to point token requests at an httptest server and WithBrowser
// to drive the consent redirect from the test:
//
//	provider, err := oauth.New(cfg,
//		oauth.WithHTTPClient(ts.Client()),
//		oauth.WithBrowser(func(url string) error { return followRedirect(url) }),
//	)
//
// # Error Handling
//
//   - ErrClientSecretsNotFound, ErrInvalidClientSecrets: unusable client secrets file
//   - ErrTokenNotFound, ErrInvalidToken: nothing usable in the token store
//   - ErrStateMismatch, ErrAuthorizationDenied, ErrMissingCode: bad consent callback
//   - ErrExchangeFailed, ErrRefreshFailed: the token endpoint rejected the request
//   - ErrSaveFailed: the token could not be persisted
//
// Token files are written atomically with 0600 permissions.
package oauth
