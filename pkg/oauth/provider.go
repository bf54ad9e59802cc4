package oauth

import (
	"context"
	"errors"
	"sync"

	"golang.org/x/oauth2"
)

// CredentialProvider yields an authorized token source for the Gmail API.
type CredentialProvider interface {
	TokenSource(ctx context.Context) (oauth2.TokenSource, error)
}

// New loads the client secrets and the stored token and picks a strategy:
// Refresh when a usable token is stored, Interactive otherwise.
func New(cfg Config, opts ...Option) (CredentialProvider, error) {
	o := newOptions(opts)
	if o.store == nil {
		o.store = NewFileStore(cfg.TokenFile)
	}

	conf, err := LoadGoogleConfig(cfg.ClientSecretsFile, cfg.scopes()...)
	if err != nil {
		return nil, err
	}

	if o.force {
		return newInteractive(conf, o), nil
	}

	tok, err := o.store.Load()
	switch {
	case errors.Is(err, ErrTokenNotFound), errors.Is(err, ErrInvalidToken):
		return newInteractive(conf, o), nil
	case err != nil:
		return nil, err
	case tok.Valid() || tok.RefreshToken != "":
		return newRefresh(conf, tok, o), nil
	default:
		return newInteractive(conf, o), nil
	}
}

// Refresh serves a stored token, refreshing it when expired.
type Refresh struct {
	config *oauth2.Config
	token  *oauth2.Token
	opts   options
}

// newRefresh returns a Refresh strategy for tok.
func newRefresh(conf *oauth2.Config, tok *oauth2.Token, o options) *Refresh {
	return &Refresh{config: conf, token: tok, opts: o}
}

// TokenSource returns a token source that persists refreshed tokens.
// The first token is obtained eagerly so refresh failures surface here.
func (r *Refresh) TokenSource(ctx context.Context) (oauth2.TokenSource, error) {
	ctx = contextWithHTTPClient(ctx, r.opts.httpClient)
	ts := newPersistingTokenSource(r.config.TokenSource(ctx, r.token), r.opts.store, r.token)
	if _, err := ts.Token(); err != nil {
		return nil, err
	}
	return ts, nil
}

// persistingTokenSource writes every new access token back to the store.
type persistingTokenSource struct {
	mu    sync.Mutex
	src   oauth2.TokenSource
	store TokenStore
	last  string
}

func newPersistingTokenSource(src oauth2.TokenSource, store TokenStore, current *oauth2.Token) *persistingTokenSource {
	p := &persistingTokenSource{src: src, store: store}
	if current != nil {
		p.last = current.AccessToken
	}
	return p
}

func (p *persistingTokenSource) Token() (*oauth2.Token, error) {
	tok, err := p.src.Token()
	if err != nil {
		return nil, errors.Join(ErrRefreshFailed, err)
	}

	p.mu.Lock()
	defer p.mu.Unlock()

	if tok.AccessToken != p.last {
		if err := p.store.Save(tok); err != nil {
			return nil, err
		}
		p.last = tok.AccessToken
	}
	return tok, nil
}
