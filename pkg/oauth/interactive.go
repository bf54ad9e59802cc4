package oauth

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"golang.org/x/oauth2"
)

const callbackPage = `<!doctype html><html><body><p>%s</p><p>You can close this window.</p></body></html>`

// Interactive runs the installed-app consent flow: it serves a loopback redirect
// on 127.0.0.1, sends the user to the consent page and exchanges the returned code.
type Interactive struct {
	config *oauth2.Config
	opts   options
}

// newInteractive returns an Interactive strategy.
func newInteractive(conf *oauth2.Config, o options) *Interactive {
	return &Interactive{config: conf, opts: o}
}

// TokenSource blocks until the user completes consent or ctx is done.
func (f *Interactive) TokenSource(ctx context.Context) (oauth2.TokenSource, error) {
	tok, err := f.authorize(ctx)
	if err != nil {
		return nil, err
	}
	if err := f.opts.store.Save(tok); err != nil {
		return nil, err
	}

	ctx = contextWithHTTPClient(ctx, f.opts.httpClient)
	return newPersistingTokenSource(f.config.TokenSource(ctx, tok), f.opts.store, tok), nil
}

type callbackResult struct {
	code string
	err  error
}

func (f *Interactive) authorize(ctx context.Context) (*oauth2.Token, error) {
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		return nil, fmt.Errorf("oauth: start callback listener: %w", err)
	}

	conf := *f.config
	conf.RedirectURL = "http://" + ln.Addr().String() + "/"

	state := uuid.NewString()
	verifier := oauth2.GenerateVerifier()
	results := make(chan callbackResult, 1)

	mux := chi.NewRouter()
	mux.Get("/", func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		var res callbackResult
		switch {
		case q.Get("state") != state:
			res.err = ErrStateMismatch
		case q.Get("error") != "":
			res.err = fmt.Errorf("%w: %s", ErrAuthorizationDenied, q.Get("error"))
		case q.Get("code") == "":
			res.err = ErrMissingCode
		default:
			res.code = q.Get("code")
		}

		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		if res.err != nil {
			w.WriteHeader(http.StatusBadRequest)
			fmt.Fprintf(w, callbackPage, "Authorization failed.")
		} else {
			fmt.Fprintf(w, callbackPage, "Authorization complete.")
		}

		select {
		case results <- res:
		default:
		}
	})

	srv := &http.Server{Handler: mux, ReadHeaderTimeout: 10 * time.Second}
	go func() { _ = srv.Serve(ln) }()
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), time.Second)
		defer cancel()
		_ = srv.Shutdown(shutdownCtx)
	}()

	authURL := conf.AuthCodeURL(state, oauth2.AccessTypeOffline, oauth2.S256ChallengeOption(verifier))
	fmt.Fprintf(f.opts.output, "Open the following URL in your browser to authorize access:\n\n%s\n\n", authURL)
	if f.opts.openBrowser != nil {
		if err := f.opts.openBrowser(authURL); err != nil {
			fmt.Fprintf(f.opts.output, "Could not open a browser: %v\n", err)
		}
	}

	var res callbackResult
	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	case res = <-results:
	}
	if res.err != nil {
		return nil, res.err
	}

	tok, err := conf.Exchange(contextWithHTTPClient(ctx, f.opts.httpClient), res.code, oauth2.VerifierOption(verifier))
	if err != nil {
		return nil, errors.Join(ErrExchangeFailed, err)
	}
	return tok, nil
}
