package cookiejar

import (
	"log/slog"
	"time"
)

// Clock abstracts wall-clock time so expiry behavior is deterministic
// under test.
type Clock func() time.Time

// PublicSuffixList reports the public suffix of a domain, e.g.
// "co.uk" for "example.co.uk". It matches the shape of
// golang.org/x/net/publicsuffix.List so that list can be plugged in
// directly via WithPublicSuffixList.
type PublicSuffixList interface {
	PublicSuffix(domain string) string
}

// Option configures a Jar.
type Option func(*Jar)

// WithClock replaces the time source used for expiry decisions.
// Nil clocks are ignored.
func WithClock(clock Clock) Option {
	return func(j *Jar) {
		if clock != nil {
			j.now = clock
		}
	}
}

// WithPublicSuffixList enables the public-suffix guard: a Domain
// attribute equal to a public suffix is rejected unless the response
// came from that exact host. Without it the jar only enforces the
// suffix match against the source host.
func WithPublicSuffixList(list PublicSuffixList) Option {
	return func(j *Jar) {
		j.psList = list
	}
}

// WithLogger attaches a structured logger for dropped-cookie
// diagnostics. The jar stays silent without one.
func WithLogger(log *slog.Logger) Option {
	return func(j *Jar) {
		if log != nil {
			j.log = log
		}
	}
}

// WithSweepInterval starts a background goroutine purging expired
// cookies every interval. Get already purges lazily, so the sweep is
// an optimization for long-lived, mostly idle jars. Close stops it.
func WithSweepInterval(interval time.Duration) Option {
	return func(j *Jar) {
		j.sweepInterval = interval
	}
}
