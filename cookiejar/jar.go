package cookiejar

import (
	"log/slog"
	"net/url"
	"sort"
	"strings"
	"sync"
	"time"
)

// Jar is an in-memory RFC 6265 cookie store for HTTP clients. It
// absorbs Set-Cookie response headers via Put and answers "which
// cookies apply to this request" via Get, honoring domain, path,
// Secure and Max-Age/Expires attributes.
//
// A Jar is safe for concurrent use: a single mutex guards the
// underlying map, and Get returns value copies so callers are
// unaffected by later mutations.
type Jar struct {
	mu      sync.Mutex
	entries map[key]entry
	nextSeq uint64

	now    Clock
	psList PublicSuffixList
	log    *slog.Logger

	sweepInterval time.Duration
	ticker        *time.Ticker
	done          chan struct{}
}

// entry pairs a stored cookie with its insertion sequence number,
// which breaks ordering ties between cookies of equal path length.
type entry struct {
	Cookie
	seq uint64
}

// maxCookieAgeSeconds caps Max-Age at 400 days, per RFC 6265bis.
const maxCookieAgeSeconds = 400 * 24 * 60 * 60

// New creates an empty cookie jar.
func New(opts ...Option) *Jar {
	jar := &Jar{
		entries: make(map[key]entry),
		now:     time.Now,
		done:    make(chan struct{}),
	}

	for _, opt := range opts {
		opt(jar)
	}

	if jar.sweepInterval > 0 {
		jar.ticker = time.NewTicker(jar.sweepInterval)
		go jar.sweepLoop()
	}

	return jar
}

// Put parses one Set-Cookie header value received from sourceURL and
// stores the resulting cookie. Cookies whose Domain attribute does not
// cover the source host are rejected; a cookie arriving already
// expired deletes any stored cookie with the same (name, domain, path)
// identity instead of being inserted. A new cookie with an existing
// identity replaces the old one in place, keeping its position in
// creation order.
//
// Errors report why a cookie was dropped; the jar contents are always
// left consistent, so response handlers should treat them as
// diagnostics rather than failures.
func (j *Jar) Put(setCookie string, sourceURL *url.URL) error {
	host := requestHost(sourceURL)
	if host == "" {
		return ErrNoHost
	}

	sc, err := parseSetCookie(setCookie)
	if err != nil {
		j.debug("dropping malformed cookie", slog.String("host", host))
		return err
	}

	c := Cookie{
		Name:     sc.name,
		Value:    sc.value,
		Secure:   sc.secure,
		HttpOnly: sc.httpOnly,
		SameSite: sc.sameSite,
	}

	if sc.domain != "" {
		// The critical cross-origin guard: the source host must be the
		// attribute domain itself or one of its subdomains.
		if host != sc.domain && !strings.HasSuffix(host, "."+sc.domain) {
			j.debug("dropping cross-domain cookie",
				slog.String("name", sc.name),
				slog.String("host", host),
				slog.String("domain", sc.domain))
			return ErrDomainMismatch
		}
		if j.psList != nil && host != sc.domain {
			if ps := j.psList.PublicSuffix(sc.domain); ps == sc.domain {
				j.debug("dropping public-suffix cookie",
					slog.String("name", sc.name),
					slog.String("domain", sc.domain))
				return ErrPublicSuffix
			}
		}
		c.Domain = sc.domain
	} else {
		c.HostOnly = true
		c.Domain = host
	}

	if sc.path != "" && strings.HasPrefix(sc.path, "/") {
		c.Path = sc.path
	} else {
		c.Path = defaultPath(sourceURL.EscapedPath())
	}

	now := j.now()
	switch {
	case sc.hasMaxAge:
		// Max-Age wins over Expires when both are present. The RFC
		// 6265bis upper bound of 400 days also keeps the seconds to
		// nanoseconds conversion from overflowing.
		maxAge := time.Duration(min(sc.maxAge, maxCookieAgeSeconds)) * time.Second
		c.Expires = now.Add(maxAge)
	case sc.hasExpires:
		c.Expires = parseExpires(sc.expires)
	}

	j.mu.Lock()
	defer j.mu.Unlock()

	if c.Expired(now) {
		// The standard server-side deletion mechanism: an expired
		// cookie clears the stored one instead of being added.
		delete(j.entries, c.key())
		return nil
	}

	c.Created = now
	seq := j.nextSeq
	if old, ok := j.entries[c.key()]; ok {
		c.Created = old.Created
		seq = old.seq
	} else {
		j.nextSeq++
	}
	j.entries[c.key()] = entry{Cookie: c, seq: seq}
	return nil
}

// SetCookie inserts a cookie directly, bypassing Set-Cookie parsing.
// Intended for pre-seeding a jar with known cookies. Domain is
// normalized to the stored lowercase, dot-free form; an absent or
// relative path defaults to "/". The same identity and overwrite rules
// as Put apply.
func (j *Jar) SetCookie(c Cookie) error {
	c.Domain = strings.ToLower(strings.TrimPrefix(c.Domain, "."))
	if c.Name == "" || !validCookieName(c.Name) || c.Domain == "" {
		return ErrMalformedCookie
	}
	if !strings.HasPrefix(c.Path, "/") {
		c.Path = "/"
	}

	j.mu.Lock()
	defer j.mu.Unlock()

	now := j.now()
	if c.Expired(now) {
		delete(j.entries, c.key())
		return nil
	}

	if c.Created.IsZero() {
		c.Created = now
	}
	seq := j.nextSeq
	if old, ok := j.entries[c.key()]; ok {
		seq = old.seq
	} else {
		j.nextSeq++
	}
	j.entries[c.key()] = entry{Cookie: c, seq: seq}
	return nil
}

// Get returns a snapshot of every live cookie that applies to a
// request for requestURL, ordered with longer paths first and earlier
// creation first among equal path lengths, per RFC 6265 §5.4. Expired
// cookies encountered along the way are purged.
func (j *Jar) Get(requestURL *url.URL) []Cookie {
	host := requestHost(requestURL)
	if host == "" {
		return nil
	}
	path := canonicalRequestPath(requestURL.EscapedPath())
	secure := encryptedScheme(requestURL.Scheme)

	j.mu.Lock()
	defer j.mu.Unlock()

	now := j.now()
	var matched []entry
	for k, e := range j.entries {
		if e.Expired(now) {
			delete(j.entries, k)
			continue
		}
		if e.Secure && !secure {
			continue
		}
		if !e.domainMatch(host) || !e.pathMatch(path) {
			continue
		}
		matched = append(matched, e)
	}

	sort.Slice(matched, func(i, k int) bool {
		if len(matched[i].Path) != len(matched[k].Path) {
			return len(matched[i].Path) > len(matched[k].Path)
		}
		return matched[i].seq < matched[k].seq
	})

	cookies := make([]Cookie, len(matched))
	for i, e := range matched {
		cookies[i] = e.Cookie
	}
	return cookies
}

// All returns a snapshot of every live cookie in creation order,
// regardless of domain, path or scheme. Useful for diagnostics.
func (j *Jar) All() []Cookie {
	j.mu.Lock()
	defer j.mu.Unlock()

	now := j.now()
	var live []entry
	for k, e := range j.entries {
		if e.Expired(now) {
			delete(j.entries, k)
			continue
		}
		live = append(live, e)
	}

	sort.Slice(live, func(i, k int) bool { return live[i].seq < live[k].seq })

	cookies := make([]Cookie, len(live))
	for i, e := range live {
		cookies[i] = e.Cookie
	}
	return cookies
}

// Len reports the number of live cookies in the jar.
func (j *Jar) Len() int {
	j.mu.Lock()
	defer j.mu.Unlock()

	now := j.now()
	n := 0
	for _, e := range j.entries {
		if !e.Expired(now) {
			n++
		}
	}
	return n
}

// Clear removes every cookie, persistent ones included.
func (j *Jar) Clear() {
	j.mu.Lock()
	defer j.mu.Unlock()
	j.entries = make(map[key]entry)
}

// Close stops the background sweep goroutine, if one was started.
func (j *Jar) Close() error {
	if j.ticker != nil {
		j.ticker.Stop()
		close(j.done)
	}
	return nil
}

// sweepLoop runs periodic purges of expired cookies.
func (j *Jar) sweepLoop() {
	for {
		select {
		case <-j.ticker.C:
			j.removeExpired()
		case <-j.done:
			return
		}
	}
}

func (j *Jar) removeExpired() {
	j.mu.Lock()
	defer j.mu.Unlock()

	now := j.now()
	for k, e := range j.entries {
		if e.Expired(now) {
			delete(j.entries, k)
		}
	}
}

func (j *Jar) debug(msg string, args ...any) {
	if j.log != nil {
		j.log.Debug(msg, args...)
	}
}

// requestHost extracts the lowercased hostname from a URL, with the
// port already stripped.
func requestHost(u *url.URL) string {
	if u == nil {
		return ""
	}
	return strings.ToLower(u.Hostname())
}

// encryptedScheme reports whether a URL scheme denotes an encrypted
// transport for Secure cookie purposes.
func encryptedScheme(scheme string) bool {
	switch strings.ToLower(scheme) {
	case "https", "wss":
		return true
	}
	return false
}
