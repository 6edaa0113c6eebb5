package graph

import (
	"context"
	"net/http"
	"strconv"
	"sync"
	"time"

	"golang.org/x/time/rate"
)

// Microsoft Graph allows roughly 10,000 requests per 10 minutes
// (~16.67/sec). The defaults stay well under that quota.
const (
	requestsPerSecond = 10.0
	burstSize         = 15
)

// RateLimiter paces Graph requests with a token bucket and backs off
// when the host answers 429 with a Retry-After.
type RateLimiter struct {
	mu      sync.Mutex
	limiter *rate.Limiter
	retryAt time.Time
}

// NewRateLimiter creates a rate limiter with the default Graph limits.
func NewRateLimiter() *RateLimiter {
	return &RateLimiter{
		limiter: rate.NewLimiter(rate.Limit(requestsPerSecond), burstSize),
	}
}

// Wait blocks until a request may be sent, honouring any server-imposed
// retry-after window first.
func (r *RateLimiter) Wait(ctx context.Context) error {
	r.mu.Lock()
	retryAt := r.retryAt
	r.mu.Unlock()

	if wait := time.Until(retryAt); wait > 0 {
		timer := time.NewTimer(wait)
		defer timer.Stop()
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-timer.C:
		}
	}

	return r.limiter.Wait(ctx)
}

// UpdateFromResponse records a Retry-After window when the host
// throttled the request.
func (r *RateLimiter) UpdateFromResponse(resp *http.Response) {
	if resp == nil || resp.StatusCode != http.StatusTooManyRequests {
		return
	}

	seconds, err := strconv.Atoi(resp.Header.Get("Retry-After"))
	if err != nil || seconds <= 0 {
		return
	}

	r.mu.Lock()
	r.retryAt = time.Now().Add(time.Duration(seconds) * time.Second)
	r.mu.Unlock()
}
