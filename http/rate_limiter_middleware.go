package http

import (
	"net"
	"net/http"
)

// RateLimitMiddleware rejects requests with 429 once the client's bucket
// is empty, keyed by the remote IP.
func RateLimitMiddleware(
	limiter *RateLimiter,
	next http.Handler,
) http.Handler {

	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {

		clientIP, _, _ := net.SplitHostPort(r.RemoteAddr)

		if !limiter.Allow(clientIP) {
			http.Error(w, "rate limit exceeded", http.StatusTooManyRequests)
			return
		}

		next.ServeHTTP(w, r)
	})
}
