package http

import (
	"context"
	"net"
	"strings"
	"sync"

	"github.com/fwojciec/mediumghost"
	"golang.org/x/time/rate"
)

var _ mediumghost.DomainLimiter = (*HostLimiter)(nil)

// mediumHost is the apex domain of Medium's image CDN. Images in an export
// come from cdn-images-1.medium.com, cdn-images-2.medium.com and
// miro.medium.com, all of which sit behind the same origin.
const mediumHost = "medium.com"

// HostLimiter throttles image downloads per host using token buckets with
// a burst of 1. All Medium CDN hosts share a single bucket. Images linked
// from other hosts each get their own.
type HostLimiter struct {
	mu       sync.Mutex
	limiters map[string]*rate.Limiter
	rps      float64
}

// NewHostLimiter returns a HostLimiter allowing rps requests per second to
// each host. A non-positive rps disables throttling.
func NewHostLimiter(rps float64) *HostLimiter {
	return &HostLimiter{
		limiters: make(map[string]*rate.Limiter),
		rps:      rps,
	}
}

// Wait blocks until a request to host is allowed. host may carry a port.
// Returns an error if the context is canceled before the wait completes.
func (l *HostLimiter) Wait(ctx context.Context, host string) error {
	if l.rps <= 0 {
		return ctx.Err()
	}

	key := limiterKey(host)

	l.mu.Lock()
	limiter, ok := l.limiters[key]
	if !ok {
		limiter = rate.NewLimiter(rate.Limit(l.rps), 1)
		l.limiters[key] = limiter
	}
	l.mu.Unlock()

	return limiter.Wait(ctx)
}

// limiterKey maps a request host to its bucket name.
func limiterKey(host string) string {
	if h, _, err := net.SplitHostPort(host); err == nil {
		host = h
	}
	host = strings.TrimSuffix(strings.ToLower(host), ".")
	if host == mediumHost || strings.HasSuffix(host, "."+mediumHost) {
		return mediumHost
	}
	return host
}
