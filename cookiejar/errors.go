package cookiejar

import "errors"

// Errors returned by Put. All of them mean the offending cookie was
// dropped; the jar itself is never left in an inconsistent state, so
// callers handling server responses are expected to log and continue.
var (
	// ErrMalformedCookie is returned when a Set-Cookie value has no
	// usable name=value pair.
	ErrMalformedCookie = errors.New("cookiejar: malformed set-cookie value")

	// ErrDomainMismatch is returned when a Domain attribute does not
	// cover the host the response came from. Accepting such a cookie
	// would let one origin plant cookies for another.
	ErrDomainMismatch = errors.New("cookiejar: domain attribute does not match source host")

	// ErrPublicSuffix is returned when a Domain attribute names a
	// public suffix and the source host is not that suffix itself.
	ErrPublicSuffix = errors.New("cookiejar: domain attribute is a public suffix")

	// ErrNoHost is returned when the source URL carries no host to
	// bind the cookie to.
	ErrNoHost = errors.New("cookiejar: source URL has no host")
)
