package websession

import (
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"sync"

	"github.com/google/uuid"

	"github.com/dmitrymomot/websession/cookiejar"
)

// Doer dispatches a single HTTP request. *http.Client satisfies it, as
// does any client wrapper exposing the same method.
type Doer interface {
	Do(r *http.Request) (*http.Response, error)
}

// Client decorates a stateless HTTP client with per-session state:
// default headers, stored credentials and a cookie jar. Matching
// cookies are attached to every outgoing request and every Set-Cookie
// response header is absorbed back into the jar. Everything else
// — redirects, retries, timeouts, cancellation — remains the wrapped
// client's business and passes through untouched.
//
// A Client is safe for concurrent use by multiple goroutines.
type Client struct {
	transport Doer
	jar       *cookiejar.Jar
	headers   headerSet
	log       *slog.Logger
	requestID bool

	mu    sync.RWMutex
	creds Credentials
}

// New creates a session-aware client around transport. A nil transport
// falls back to a default http.Client; a fresh cookie jar is created
// unless WithJar supplies one.
func New(transport Doer, opts ...Option) *Client {
	if transport == nil {
		transport = &http.Client{}
	}

	c := &Client{transport: transport}
	for _, opt := range opts {
		opt(c)
	}

	if c.jar == nil {
		c.jar = cookiejar.New()
	}
	return c
}

// AddHeader configures a default header sent with every request.
// Per-request headers set by the caller take precedence. Returns the
// client for chaining.
func (c *Client) AddHeader(name, value string) *Client {
	c.headers.add(name, value)
	return c
}

// AddHeaderValues configures a multi-valued default header.
func (c *Client) AddHeaderValues(name string, values ...string) *Client {
	c.headers.add(name, values...)
	return c
}

// RemoveHeader drops a previously configured default header.
func (c *Client) RemoveHeader(name string) *Client {
	c.headers.remove(name)
	return c
}

// WithCredentials configures the credential decoration applied to
// every subsequent request. Pass nil to disable.
func (c *Client) WithCredentials(creds Credentials) *Client {
	c.mu.Lock()
	c.creds = creds
	c.mu.Unlock()
	return c
}

// Jar exposes the client's cookie store for inspection or pre-seeding.
func (c *Client) Jar() *cookiejar.Jar {
	return c.jar
}

// Do sends an HTTP request through the wrapped transport, augmented
// with the session's default headers, matching cookies and configured
// credentials. The caller's request is never mutated; decoration
// happens on a clone. On return the jar has absorbed every Set-Cookie
// header of the response, keyed to the final post-redirect URL.
func (c *Client) Do(r *http.Request) (*http.Response, error) {
	if r == nil || r.URL == nil {
		return nil, ErrNilRequest
	}

	req := r.Clone(r.Context())
	c.headers.apply(req.Header)

	if c.requestID && req.Header.Get("X-Request-ID") == "" {
		req.Header.Set("X-Request-ID", uuid.NewString())
	}

	if cookies := c.jar.Get(req.URL); len(cookies) > 0 {
		req.Header.Set("Cookie", mergeCookieHeader(r.Header.Values("Cookie"), cookies))
	}

	c.mu.RLock()
	creds := c.creds
	c.mu.RUnlock()
	if creds != nil {
		if err := creds.Apply(req); err != nil {
			return nil, err
		}
	}

	resp, err := c.transport.Do(req)
	if err != nil {
		return nil, err
	}

	c.storeCookies(resp, req.URL)
	return resp, nil
}

// Get issues a GET to the specified URL, like http.Client.Get but with
// session decoration.
func (c *Client) Get(url string) (*http.Response, error) {
	req, err := http.NewRequest(http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}
	return c.Do(req)
}

// Head issues a HEAD to the specified URL.
func (c *Client) Head(url string) (*http.Response, error) {
	req, err := http.NewRequest(http.MethodHead, url, nil)
	if err != nil {
		return nil, err
	}
	return c.Do(req)
}

// Post issues a POST to the specified URL with the given body.
func (c *Client) Post(url, contentType string, body io.Reader) (*http.Response, error) {
	req, err := http.NewRequest(http.MethodPost, url, body)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", contentType)
	return c.Do(req)
}

// PostForm issues a POST with data form-encoded as the request body.
func (c *Client) PostForm(u string, data url.Values) (*http.Response, error) {
	return c.Post(u, "application/x-www-form-urlencoded", strings.NewReader(data.Encode()))
}

// storeCookies feeds every Set-Cookie header of a response into the
// jar. Header folding is never applied to Set-Cookie, so each value is
// handled on its own; a value the jar refuses is logged and skipped
// without affecting the rest.
func (c *Client) storeCookies(resp *http.Response, requestURL *url.URL) {
	values := resp.Header.Values("Set-Cookie")
	if len(values) == 0 {
		return
	}

	// The transport resolves redirects internally, so the response's
	// own request carries the final URL the cookies belong to.
	source := requestURL
	if resp.Request != nil && resp.Request.URL != nil {
		source = resp.Request.URL
	}

	for _, v := range values {
		if err := c.jar.Put(v, source); err != nil && c.log != nil {
			c.log.Debug("dropped response cookie",
				slog.String("url", source.Redacted()),
				slog.String("error", err.Error()))
		}
	}
}

// mergeCookieHeader serializes jar cookies into a single Cookie header
// value, appended after any cookie pairs the caller set explicitly.
// Caller pairs win on duplicate names.
func mergeCookieHeader(callerValues []string, cookies []cookiejar.Cookie) string {
	var b strings.Builder
	taken := make(map[string]struct{})

	for _, v := range callerValues {
		for _, pair := range strings.Split(v, ";") {
			pair = strings.TrimSpace(pair)
			if pair == "" {
				continue
			}
			if b.Len() > 0 {
				b.WriteString("; ")
			}
			b.WriteString(pair)
			name := pair
			if i := strings.Index(pair, "="); i >= 0 {
				name = pair[:i]
			}
			taken[name] = struct{}{}
		}
	}

	for _, c := range cookies {
		if _, dup := taken[c.Name]; dup {
			continue
		}
		if b.Len() > 0 {
			b.WriteString("; ")
		}
		b.WriteString(c.Name)
		b.WriteByte('=')
		b.WriteString(c.Value)
	}

	return b.String()
}
