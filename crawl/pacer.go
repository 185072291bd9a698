package crawl

import (
	"context"
	"math/rand/v2"
	"sync"
	"time"

	"github.com/fwojciec/amzcrawl"
	"golang.org/x/time/rate"
)

var _ amzcrawl.Pacer = (*Pacer)(nil)

// Default pacing between requests to the same storefront.
const (
	DefaultDelay  = 2 * time.Second
	DefaultJitter = 3 * time.Second
)

// Pacer spaces requests to each host by a fixed delay plus random jitter.
// Each host has its own token bucket with a burst of 1. The first request
// to a host goes out immediately; later ones wait for the bucket and then
// for the jitter. A zero delay turns pacing off, jitter included.
type Pacer struct {
	mu       sync.Mutex
	limiters map[string]*rate.Limiter
	delay    time.Duration
	jitter   time.Duration
}

// NewPacer creates a Pacer. A zero delay disables pacing.
func NewPacer(delay, jitter time.Duration) *Pacer {
	return &Pacer{
		limiters: make(map[string]*rate.Limiter),
		delay:    max(delay, 0),
		jitter:   max(jitter, 0),
	}
}

// Wait blocks until a request to host is allowed.
func (p *Pacer) Wait(ctx context.Context, host string) error {
	if p.delay <= 0 {
		return ctx.Err()
	}
	l, first := p.limiter(host)
	if err := l.Wait(ctx); err != nil {
		return err
	}
	if first || p.jitter <= 0 {
		return ctx.Err()
	}

	timer := time.NewTimer(rand.N(p.jitter + 1))
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}

// limiter returns the bucket for host and whether it was just created.
func (p *Pacer) limiter(host string) (*rate.Limiter, bool) {
	p.mu.Lock()
	defer p.mu.Unlock()
	l, ok := p.limiters[host]
	if !ok {
		l = rate.NewLimiter(rate.Every(p.delay), 1)
		p.limiters[host] = l
	}
	return l, !ok
}
