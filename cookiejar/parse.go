package cookiejar

import (
	"net/http"
	"strconv"
	"strings"
	"time"
)

// setCookie is the raw result of parsing one Set-Cookie header value,
// before the jar applies source-URI dependent rules (domain validation,
// default path, expiry computation).
type setCookie struct {
	name     string
	value    string
	domain   string
	path     string
	secure   bool
	httpOnly bool
	sameSite string

	hasMaxAge bool
	maxAge    int64

	hasExpires bool
	expires    string
}

// parseSetCookie parses a single Set-Cookie header value. Unknown
// attributes are ignored; attribute values that fail to parse degrade
// the cookie rather than failing it, so only a missing or empty
// name=value pair is an error.
func parseSetCookie(raw string) (setCookie, error) {
	var sc setCookie

	parts := strings.Split(raw, ";")
	nv := strings.TrimSpace(parts[0])
	eq := strings.Index(nv, "=")
	if eq <= 0 {
		return sc, ErrMalformedCookie
	}
	sc.name = strings.TrimSpace(nv[:eq])
	sc.value = trimQuotes(strings.TrimSpace(nv[eq+1:]))
	if sc.name == "" || !validCookieName(sc.name) {
		return sc, ErrMalformedCookie
	}

	for _, part := range parts[1:] {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		attr, val := part, ""
		if i := strings.Index(part, "="); i >= 0 {
			attr, val = part[:i], part[i+1:]
		}
		attr = strings.TrimSpace(attr)
		val = trimQuotes(strings.TrimSpace(val))

		switch strings.ToLower(attr) {
		case "domain":
			sc.domain = strings.ToLower(strings.TrimPrefix(val, "."))
		case "path":
			sc.path = val
		case "secure":
			sc.secure = true
		case "httponly":
			sc.httpOnly = true
		case "samesite":
			sc.sameSite = val
		case "max-age":
			// Malformed Max-Age degrades to a session cookie instead
			// of rejecting the whole header.
			if n, err := strconv.ParseInt(val, 10, 64); err == nil {
				sc.hasMaxAge = true
				sc.maxAge = n
			}
		case "expires":
			sc.hasExpires = true
			sc.expires = val
		}
	}

	return sc, nil
}

// parseExpires parses an Expires attribute value as an HTTP date.
// The zero time is returned for unparseable dates, which downgrades
// the cookie to session expiry.
func parseExpires(val string) time.Time {
	if parsed, err := http.ParseTime(val); err == nil {
		return parsed
	}
	return time.Time{}
}

func trimQuotes(s string) string {
	if len(s) >= 2 && s[0] == '"' && s[len(s)-1] == '"' {
		return s[1 : len(s)-1]
	}
	return s
}

// validCookieName rejects names containing separators that would break
// Cookie header serialization.
func validCookieName(name string) bool {
	return !strings.ContainsAny(name, " \t;,=")
}
