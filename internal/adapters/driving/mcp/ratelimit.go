package mcp

import (
	"math"
	"net/http"

	"golang.org/x/time/rate"
)

// rateLimiter rejects HTTP requests beyond a sustained rate.
type rateLimiter struct {
	limiter *rate.Limiter
}

// newRateLimiter allows requestsPerSecond on average with a burst of one
// second's worth of requests.
func newRateLimiter(requestsPerSecond float64) *rateLimiter {
	burst := int(math.Ceil(requestsPerSecond))
	if burst < 1 {
		burst = 1
	}
	return &rateLimiter{
		limiter: rate.NewLimiter(rate.Limit(requestsPerSecond), burst),
	}
}

// Middleware wraps next, answering 429 when the bucket is empty.
func (r *rateLimiter) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
		if !r.limiter.Allow() {
			w.Header().Set("Retry-After", "1")
			http.Error(w, http.StatusText(http.StatusTooManyRequests), http.StatusTooManyRequests)
			return
		}
		next.ServeHTTP(w, req)
	})
}
