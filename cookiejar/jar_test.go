package cookiejar_test

import (
	"fmt"
	"net/url"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/net/publicsuffix"

	"github.com/dmitrymomot/websession/cookiejar"
)

func mustURL(t *testing.T, raw string) *url.URL {
	t.Helper()
	u, err := url.Parse(raw)
	require.NoError(t, err)
	return u
}

func names(cookies []cookiejar.Cookie) []string {
	out := make([]string, len(cookies))
	for i, c := range cookies {
		out[i] = c.Name
	}
	return out
}

func TestJar_HostOnlyIsolation(t *testing.T) {
	t.Parallel()

	jar := cookiejar.New()
	require.NoError(t, jar.Put("sid=abc", mustURL(t, "https://example.com/")))

	assert.Len(t, jar.Get(mustURL(t, "https://example.com/")), 1)
	assert.Empty(t, jar.Get(mustURL(t, "https://sub.example.com/")), "host-only cookie leaked to subdomain")
	assert.Empty(t, jar.Get(mustURL(t, "https://other.com/")))
}

func TestJar_DomainCookieMatching(t *testing.T) {
	t.Parallel()

	jar := cookiejar.New()
	require.NoError(t, jar.Put("sid=abc; Domain=example.com", mustURL(t, "https://example.com/")))

	assert.Len(t, jar.Get(mustURL(t, "https://example.com/")), 1)
	assert.Len(t, jar.Get(mustURL(t, "https://sub.example.com/")), 1, "domain cookie should cover subdomains")
	assert.Len(t, jar.Get(mustURL(t, "https://a.b.example.com/")), 1)
	assert.Empty(t, jar.Get(mustURL(t, "https://notexample.com/")), "suffix match must respect the dot boundary")
}

func TestJar_DomainAttributeRejection(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		cookie string
		source string
		err    error
	}{
		{
			name:   "unrelated domain",
			cookie: "sid=abc; Domain=evil.com",
			source: "https://example.com/",
			err:    cookiejar.ErrDomainMismatch,
		},
		{
			name:   "superstring domain",
			cookie: "sid=abc; Domain=ample.com",
			source: "https://example.com/",
			err:    cookiejar.ErrDomainMismatch,
		},
		{
			name:   "subdomain of the source host",
			cookie: "sid=abc; Domain=sub.example.com",
			source: "https://example.com/",
			err:    cookiejar.ErrDomainMismatch,
		},
		{
			name:   "parent domain is accepted",
			cookie: "sid=abc; Domain=example.com",
			source: "https://deep.sub.example.com/",
			err:    nil,
		},
		{
			name:   "dotted wire form is accepted",
			cookie: "sid=abc; Domain=.example.com",
			source: "https://sub.example.com/",
			err:    nil,
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			jar := cookiejar.New()
			err := jar.Put(tt.cookie, mustURL(t, tt.source))
			if tt.err != nil {
				require.ErrorIs(t, err, tt.err)
				assert.Zero(t, jar.Len(), "rejected cookie must not be stored")
			} else {
				require.NoError(t, err)
				assert.Equal(t, 1, jar.Len())
			}
		})
	}
}

func TestJar_PublicSuffixGuard(t *testing.T) {
	t.Parallel()

	jar := cookiejar.New(cookiejar.WithPublicSuffixList(publicsuffix.List))

	err := jar.Put("sid=abc; Domain=co.uk", mustURL(t, "https://example.co.uk/"))
	require.ErrorIs(t, err, cookiejar.ErrPublicSuffix)
	assert.Zero(t, jar.Len())

	require.NoError(t, jar.Put("sid=abc; Domain=example.co.uk", mustURL(t, "https://www.example.co.uk/")))
	assert.Equal(t, 1, jar.Len())
}

func TestJar_SecureCookies(t *testing.T) {
	t.Parallel()

	jar := cookiejar.New()
	require.NoError(t, jar.Put("sid=abc; Secure", mustURL(t, "https://example.com/")))

	assert.Len(t, jar.Get(mustURL(t, "https://example.com/")), 1)
	assert.Len(t, jar.Get(mustURL(t, "wss://example.com/")), 1, "wss is an encrypted scheme")
	assert.Empty(t, jar.Get(mustURL(t, "http://example.com/")), "secure cookie released over plaintext")
	assert.Empty(t, jar.Get(mustURL(t, "ws://example.com/")))
}

func TestJar_PathRoundTrip(t *testing.T) {
	t.Parallel()

	jar := cookiejar.New()
	require.NoError(t, jar.Put("a=1; Path=/x", mustURL(t, "https://h/x/y")))

	assert.Equal(t, []string{"a"}, names(jar.Get(mustURL(t, "https://h/x/y/z"))))
	assert.Equal(t, []string{"a"}, names(jar.Get(mustURL(t, "https://h/x"))))
	assert.Empty(t, jar.Get(mustURL(t, "https://h/other")))
	assert.Empty(t, jar.Get(mustURL(t, "https://h/xy")), "prefix match must stop at a / boundary")
}

func TestJar_DefaultPath(t *testing.T) {
	t.Parallel()

	jar := cookiejar.New()
	// No Path attribute: default-path comes from the source URI.
	require.NoError(t, jar.Put("a=1", mustURL(t, "https://h/x/y")))

	got := jar.Get(mustURL(t, "https://h/x"))
	require.Len(t, got, 1)
	assert.Equal(t, "/x", got[0].Path)
	assert.Empty(t, jar.Get(mustURL(t, "https://h/")))
}

func TestJar_RelativePathAttributeFallsBack(t *testing.T) {
	t.Parallel()

	jar := cookiejar.New()
	require.NoError(t, jar.Put("a=1; Path=relative", mustURL(t, "https://h/x/y")))

	got := jar.Get(mustURL(t, "https://h/x"))
	require.Len(t, got, 1)
	assert.Equal(t, "/x", got[0].Path, "non-absolute Path attribute should fall back to the default-path")
}

func TestJar_Overwrite(t *testing.T) {
	t.Parallel()

	jar := cookiejar.New()
	source := mustURL(t, "https://example.com/")
	require.NoError(t, jar.Put("a=1", source))
	require.NoError(t, jar.Put("a=2", source))

	got := jar.Get(source)
	require.Len(t, got, 1, "same (name, domain, path) must replace, not accumulate")
	assert.Equal(t, "2", got[0].Value)
}

func TestJar_DistinctKeysCoexist(t *testing.T) {
	t.Parallel()

	jar := cookiejar.New()
	require.NoError(t, jar.Put("a=1; Path=/", mustURL(t, "https://example.com/")))
	require.NoError(t, jar.Put("a=2; Path=/x", mustURL(t, "https://example.com/")))
	require.NoError(t, jar.Put("a=3; Domain=example.com", mustURL(t, "https://example.com/")))

	assert.Equal(t, 3, jar.Len(), "different paths/domains are distinct identities")
}

func TestJar_MaxAgeZeroDeletes(t *testing.T) {
	t.Parallel()

	jar := cookiejar.New()
	source := mustURL(t, "https://example.com/")
	require.NoError(t, jar.Put("a=1", source))
	require.Len(t, jar.Get(source), 1)

	require.NoError(t, jar.Put("a=gone; Max-Age=0", source))
	assert.Empty(t, jar.Get(source), "Max-Age=0 must delete the stored cookie")
	assert.Zero(t, jar.Len())

	// Deleting an absent cookie is not an error either.
	require.NoError(t, jar.Put("never=was; Max-Age=-1", source))
	assert.Zero(t, jar.Len())
}

func TestJar_ExpiryWithInjectedClock(t *testing.T) {
	t.Parallel()

	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	var mu sync.Mutex
	clock := func() time.Time {
		mu.Lock()
		defer mu.Unlock()
		return now
	}
	advance := func(d time.Duration) {
		mu.Lock()
		defer mu.Unlock()
		now = now.Add(d)
	}

	jar := cookiejar.New(cookiejar.WithClock(clock))
	source := mustURL(t, "https://example.com/")

	require.NoError(t, jar.Put("short=1; Max-Age=60", source))
	require.NoError(t, jar.Put("long=2; Max-Age=3600", source))
	require.NoError(t, jar.Put("forever=3", source))
	assert.Len(t, jar.Get(source), 3)

	advance(61 * time.Second)
	assert.ElementsMatch(t, []string{"long", "forever"}, names(jar.Get(source)))
	assert.Equal(t, 2, jar.Len(), "expired cookie should have been purged lazily")

	advance(time.Hour)
	assert.Equal(t, []string{"forever"}, names(jar.Get(source)), "session cookies never expire")
}

func TestJar_MaxAgeBeatsExpires(t *testing.T) {
	t.Parallel()

	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	jar := cookiejar.New(cookiejar.WithClock(func() time.Time { return now }))
	source := mustURL(t, "https://example.com/")

	// Expires is far in the future, Max-Age says already gone.
	require.NoError(t, jar.Put("a=1", source))
	require.NoError(t, jar.Put("a=1; Max-Age=0; Expires=Fri, 01 Jan 2100 00:00:00 GMT", source))
	assert.Empty(t, jar.Get(source), "Max-Age must take precedence over Expires")

	require.NoError(t, jar.Put("b=2; Expires=Fri, 01 Jan 2100 00:00:00 GMT", source))
	got := jar.Get(source)
	require.Len(t, got, 1)
	assert.False(t, got[0].Expires.IsZero())
}

func TestJar_MalformedExpiresDegradesToSession(t *testing.T) {
	t.Parallel()

	jar := cookiejar.New()
	source := mustURL(t, "https://example.com/")
	require.NoError(t, jar.Put("a=1; Expires=whenever", source))

	got := jar.Get(source)
	require.Len(t, got, 1)
	assert.True(t, got[0].Expires.IsZero(), "bad Expires should yield a session cookie, not a rejection")
}

func TestJar_ExpiredIncomingExpiresDeletes(t *testing.T) {
	t.Parallel()

	jar := cookiejar.New()
	source := mustURL(t, "https://example.com/")
	require.NoError(t, jar.Put("a=1", source))
	require.NoError(t, jar.Put("a=1; Expires=Thu, 01 Jan 1970 00:00:01 GMT", source))
	assert.Empty(t, jar.Get(source))
}

func TestJar_Ordering(t *testing.T) {
	t.Parallel()

	jar := cookiejar.New()
	source := mustURL(t, "https://example.com/x/y")
	require.NoError(t, jar.Put("broad=1; Path=/", source))
	require.NoError(t, jar.Put("narrow=2; Path=/x", source))
	require.NoError(t, jar.Put("exact=3; Path=/x/y", source))

	got := names(jar.Get(mustURL(t, "https://example.com/x/y")))
	assert.Equal(t, []string{"exact", "narrow", "broad"}, got, "longer paths must come first")
}

func TestJar_OrderingCreationTieBreak(t *testing.T) {
	t.Parallel()

	// Frozen clock: creation order, not timestamps, must break the tie.
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	jar := cookiejar.New(cookiejar.WithClock(func() time.Time { return now }))
	source := mustURL(t, "https://example.com/")

	require.NoError(t, jar.Put("first=1; Path=/", source))
	require.NoError(t, jar.Put("second=2; Path=/", source))
	require.NoError(t, jar.Put("third=3; Path=/", source))

	got := names(jar.Get(source))
	assert.Equal(t, []string{"first", "second", "third"}, got)

	// Overwriting keeps the original position.
	require.NoError(t, jar.Put("first=updated; Path=/", source))
	got = names(jar.Get(source))
	assert.Equal(t, []string{"first", "second", "third"}, got)
}

func TestJar_LoginScenario(t *testing.T) {
	t.Parallel()

	jar := cookiejar.New()
	require.NoError(t, jar.Put("session=abc; Path=/; HttpOnly", mustURL(t, "https://api.test/login")))

	got := jar.Get(mustURL(t, "https://api.test/account"))
	require.Len(t, got, 1)
	assert.Equal(t, "session", got[0].Name)
	assert.Equal(t, "abc", got[0].Value)
	assert.True(t, got[0].HttpOnly)
	assert.True(t, got[0].HostOnly)
}

func TestJar_SetCookiePreseeding(t *testing.T) {
	t.Parallel()

	jar := cookiejar.New()
	require.NoError(t, jar.SetCookie(cookiejar.Cookie{
		Name:     "seeded",
		Value:    "1",
		Domain:   ".Example.COM",
		HostOnly: false,
	}))

	got := jar.Get(mustURL(t, "https://sub.example.com/"))
	require.Len(t, got, 1)
	assert.Equal(t, "example.com", got[0].Domain, "domain should be normalized on insert")
	assert.Equal(t, "/", got[0].Path, "missing path should default to /")

	assert.ErrorIs(t, jar.SetCookie(cookiejar.Cookie{Value: "nameless"}), cookiejar.ErrMalformedCookie)
	assert.ErrorIs(t, jar.SetCookie(cookiejar.Cookie{Name: "domainless"}), cookiejar.ErrMalformedCookie)
}

func TestJar_AllAndClear(t *testing.T) {
	t.Parallel()

	jar := cookiejar.New()
	require.NoError(t, jar.Put("a=1", mustURL(t, "https://one.test/")))
	require.NoError(t, jar.Put("b=2; Secure", mustURL(t, "https://two.test/")))

	all := jar.All()
	require.Len(t, all, 2)
	assert.Equal(t, []string{"a", "b"}, names(all), "All returns creation order")

	jar.Clear()
	assert.Zero(t, jar.Len())
	assert.Empty(t, jar.All())
}

func TestJar_NoHost(t *testing.T) {
	t.Parallel()

	jar := cookiejar.New()
	assert.ErrorIs(t, jar.Put("a=1", &url.URL{Path: "/x"}), cookiejar.ErrNoHost)
	assert.Empty(t, jar.Get(&url.URL{Path: "/x"}))
}

func TestJar_HostCaseAndPort(t *testing.T) {
	t.Parallel()

	jar := cookiejar.New()
	require.NoError(t, jar.Put("a=1", mustURL(t, "https://Example.COM:8443/")))

	assert.Len(t, jar.Get(mustURL(t, "https://example.com/")), 1, "host comparison ignores case and port")
	assert.Len(t, jar.Get(mustURL(t, "https://EXAMPLE.com:9000/")), 1)
}

func TestJar_ConcurrentPuts(t *testing.T) {
	t.Parallel()

	jar := cookiejar.New()
	source := mustURL(t, "https://example.com/")

	const n = 64
	var wg sync.WaitGroup
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_ = jar.Put(fmt.Sprintf("c%d=%d", i, i), source)
		}(i)
	}
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_ = jar.Get(source)
		}()
	}
	wg.Wait()

	assert.Equal(t, n, jar.Len(), "no concurrent Put may be lost")
}
