package websession

import (
	"log/slog"

	"github.com/dmitrymomot/websession/cookiejar"
)

// Option configures a Client at construction time.
type Option func(*Client)

// WithJar supplies the cookie jar the client stores and sends cookies
// through. Sharing one jar between clients shares their session state;
// by default every client owns a fresh jar. Nil jars are ignored.
func WithJar(jar *cookiejar.Jar) Option {
	return func(c *Client) {
		if jar != nil {
			c.jar = jar
		}
	}
}

// WithCredentials configures the credential decoration applied to
// every request before dispatch. Equivalent to the fluent
// Client.WithCredentials.
func WithCredentials(creds Credentials) Option {
	return func(c *Client) {
		c.creds = creds
	}
}

// WithHeader adds a default header sent with every request, unless the
// caller sets the same header on an individual request.
func WithHeader(name, value string) Option {
	return func(c *Client) {
		c.headers.add(name, value)
	}
}

// WithLogger attaches a structured logger for dropped-cookie
// diagnostics. Silent without one.
func WithLogger(log *slog.Logger) Option {
	return func(c *Client) {
		if log != nil {
			c.log = log
		}
	}
}

// WithRequestID stamps a generated UUIDv4 X-Request-ID header on every
// outgoing request the caller has not already tagged, so client-side
// logs can be correlated with server-side ones.
func WithRequestID() Option {
	return func(c *Client) {
		c.requestID = true
	}
}
