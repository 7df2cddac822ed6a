package cookiejar

import (
	"strings"
	"time"
)

// Cookie is a single stored cookie record. Domain is kept lowercase and
// never carries a leading dot; the dot-prefixed wire form is expressed
// through HostOnly=false instead. A zero Expires marks a session cookie
// that lives until the jar is cleared or closed.
type Cookie struct {
	Name     string
	Value    string
	Domain   string
	Path     string
	Secure   bool
	HostOnly bool
	HttpOnly bool
	SameSite string
	Expires  time.Time
	Created  time.Time
}

// Expired reports whether the cookie is past its expiry at the given
// instant. Session cookies never expire.
func (c Cookie) Expired(now time.Time) bool {
	return !c.Expires.IsZero() && !c.Expires.After(now)
}

// key identifies a cookie for overwrite purposes. At most one live
// cookie per key exists in a jar at any time.
type key struct {
	name   string
	domain string
	path   string
}

func (c Cookie) key() key {
	return key{name: c.Name, domain: c.Domain, path: c.Path}
}

// domainMatch implements RFC 6265 §5.1.3 against an already lowercased
// host. Host-only cookies require an exact host match.
func (c Cookie) domainMatch(host string) bool {
	if c.HostOnly {
		return host == c.Domain
	}
	return host == c.Domain || strings.HasSuffix(host, "."+c.Domain)
}

// pathMatch implements RFC 6265 §5.1.4 path matching.
func (c Cookie) pathMatch(requestPath string) bool {
	if requestPath == c.Path || c.Path == "/" {
		return true
	}
	return strings.HasPrefix(requestPath, c.Path) &&
		(strings.HasSuffix(c.Path, "/") || requestPath[len(c.Path)] == '/')
}

// defaultPath computes the RFC 6265 §5.1.4 default-path for a cookie
// received without a Path attribute from a response with the given
// request path.
func defaultPath(requestPath string) string {
	if requestPath == "" || !strings.HasPrefix(requestPath, "/") {
		return "/"
	}
	i := strings.LastIndex(requestPath, "/")
	if i == 0 {
		return "/"
	}
	return requestPath[:i]
}

// canonicalRequestPath normalizes a request URI path for matching.
func canonicalRequestPath(p string) string {
	if p == "" || !strings.HasPrefix(p, "/") {
		return "/"
	}
	return p
}
