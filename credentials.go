package websession

import (
	"fmt"
	"net/http"

	"golang.org/x/oauth2"
)

// Credentials decorates an outgoing request with stored credentials,
// typically by injecting an Authorization header. Apply is called on
// the cloned per-request copy after session headers and cookies have
// been attached; returning an error aborts the request before
// dispatch.
type Credentials interface {
	Apply(r *http.Request) error
}

// CredentialsFunc adapts a plain function to the Credentials
// interface.
type CredentialsFunc func(r *http.Request) error

func (f CredentialsFunc) Apply(r *http.Request) error { return f(r) }

// TokenCredentials authorizes requests with OAuth2 bearer tokens.
// Token acquisition, caching and refresh are delegated entirely to the
// configured TokenSource; a failed refresh surfaces as a request
// failure.
type TokenCredentials struct {
	source oauth2.TokenSource
}

// NewTokenCredentials creates Credentials backed by an OAuth2 token
// source. Wrap the source with oauth2.ReuseTokenSource if the provider
// does not cache tokens itself.
func NewTokenCredentials(source oauth2.TokenSource) *TokenCredentials {
	return &TokenCredentials{source: source}
}

func (t *TokenCredentials) Apply(r *http.Request) error {
	if t.source == nil {
		return ErrNoTokenSource
	}
	token, err := t.source.Token()
	if err != nil {
		return fmt.Errorf("%w: %w", ErrCredentials, err)
	}
	token.SetAuthHeader(r)
	return nil
}

// BasicCredentials authorizes requests with HTTP basic authentication.
type BasicCredentials struct {
	Username string
	Password string
}

func (b BasicCredentials) Apply(r *http.Request) error {
	r.SetBasicAuth(b.Username, b.Password)
	return nil
}
