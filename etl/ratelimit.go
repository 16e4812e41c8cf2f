package etl

import (
	"context"
	"sync"

	"golang.org/x/time/rate"

	bapanel "github.com/b0id/blackarch-panel"
)

var _ bapanel.DomainLimiter = (*DomainLimiter)(nil)

// DomainLimiter spaces outbound requests per domain. Each domain gets a
// token bucket with burst one, so consecutive requests to the same host
// never bunch up even right after startup.
type DomainLimiter struct {
	rps float64

	mu       sync.Mutex
	limiters map[string]*rate.Limiter
}

// NewDomainLimiter returns a limiter allowing rps requests per second
// to each domain.
func NewDomainLimiter(rps float64) *DomainLimiter {
	return &DomainLimiter{
		rps:      rps,
		limiters: make(map[string]*rate.Limiter),
	}
}

// Wait blocks until the domain's bucket has a token or the context is
// canceled.
func (d *DomainLimiter) Wait(ctx context.Context, domain string) error {
	return d.limiterFor(domain).Wait(ctx)
}

// limiterFor returns the domain's bucket, creating it on first use.
func (d *DomainLimiter) limiterFor(domain string) *rate.Limiter {
	d.mu.Lock()
	defer d.mu.Unlock()

	limiter, ok := d.limiters[domain]
	if !ok {
		limiter = rate.NewLimiter(rate.Limit(d.rps), 1)
		d.limiters[domain] = limiter
	}
	return limiter
}
