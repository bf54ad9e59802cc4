package oauth

import "errors"

var (
	// ErrClientSecretsNotFound is returned when the client secrets file does not exist.
	ErrClientSecretsNotFound = errors.New("oauth: client secrets file not found")

	// ErrInvalidClientSecrets is returned when the client secrets file cannot be parsed.
	ErrInvalidClientSecrets = errors.New("oauth: invalid client secrets")

	// ErrTokenNotFound is returned by a TokenStore that holds no token yet.
	ErrTokenNotFound = errors.New("oauth: token not found")

	// ErrInvalidToken is returned when a stored token cannot be decoded.
	ErrInvalidToken = errors.New("oauth: invalid stored token")

	// ErrSaveFailed is returned when a token cannot be persisted.
	ErrSaveFailed = errors.New("oauth: failed to save token")

	// ErrStateMismatch is returned when the authorization callback carries an unexpected state.
	ErrStateMismatch = errors.New("oauth: state mismatch")

	// ErrAuthorizationDenied is returned when the user or the provider rejects the consent request.
	ErrAuthorizationDenied = errors.New("oauth: authorization denied")

	// ErrMissingCode is returned when the authorization callback carries no code.
	ErrMissingCode = errors.New("oauth: missing authorization code")

	// ErrExchangeFailed is returned when the authorization code cannot be exchanged for a token.
	ErrExchangeFailed = errors.New("oauth: code exchange failed")

	// ErrRefreshFailed is returned when a stored token cannot be refreshed.
	ErrRefreshFailed = errors.New("oauth: token refresh failed")
)
