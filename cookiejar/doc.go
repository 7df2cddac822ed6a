// Package cookiejar implements an in-memory, client-side cookie store
// following RFC 6265 semantics for domain, path, Secure and
// Max-Age/Expires handling.
//
// Unlike net/http/cookiejar it is built to be driven directly with raw
// Set-Cookie header values and inspected as plain data, which makes it
// suitable as the state engine behind a session-aware HTTP client: the
// websession package feeds every Set-Cookie value of every response
// into a Jar and queries it before every request.
//
// # Matching rules
//
// A stored cookie applies to a request when all of the following hold:
//
//   - Domain: cookies stored without a Domain attribute are host-only
//     and require an exact host match; cookies with a Domain attribute
//     match that domain and all of its subdomains.
//   - Path: the request path equals the cookie path or extends it
//     across a "/" boundary.
//   - Secure: cookies flagged Secure are only released to encrypted
//     schemes (https, wss).
//
// Matching cookies are returned longest-path first, earliest-created
// first, so more specific cookies are never shadowed when serialized
// into a Cookie header.
//
// # Storage rules
//
// A cookie is identified by its (name, domain, path) triple; storing a
// cookie with an existing identity replaces the previous one in place.
// A Domain attribute that does not cover the host the response came
// from rejects the whole cookie — the guard that keeps one origin from
// planting cookies for another. A cookie that arrives already expired
// (Max-Age=0 being the common case) deletes the stored cookie with the
// same identity, which is how servers clear cookies.
//
// Expired cookies are purged lazily whenever Get or All walks past
// them; WithSweepInterval adds an optional background purge for
// long-lived jars.
//
// # Usage
//
//	jar := cookiejar.New()
//	defer jar.Close()
//
//	source, _ := url.Parse("https://api.example.com/login")
//	if err := jar.Put("session=abc123; Path=/; HttpOnly", source); err != nil {
//		// cookie was dropped; jar state is unaffected
//	}
//
//	target, _ := url.Parse("https://api.example.com/account")
//	for _, c := range jar.Get(target) {
//		fmt.Printf("%s=%s\n", c.Name, c.Value)
//	}
//
// Public-suffix validation is pluggable rather than built in: pass
// golang.org/x/net/publicsuffix.List through WithPublicSuffixList to
// refuse cookies scoped to an effective TLD such as "co.uk".
//
// All methods are safe for concurrent use.
package cookiejar
