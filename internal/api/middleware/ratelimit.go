package middleware

import (
	"net/http"

	"github.com/phrazzld/cake-api/internal/api/shared"
	"golang.org/x/time/rate"
)

// NewRateLimitMiddleware rejects requests beyond rps per second, allowing
// bursts of up to burst requests, with 429 Too Many Requests.
// A non-positive rps disables limiting.
func NewRateLimitMiddleware(rps float64, burst int) func(http.Handler) http.Handler {
	if rps <= 0 {
		return func(next http.Handler) http.Handler { return next }
	}

	limiter := rate.NewLimiter(rate.Limit(rps), burst)
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if !limiter.Allow() {
				w.Header().Set("Retry-After", "1")
				shared.RespondError(
					w, r,
					http.StatusTooManyRequests,
					"Too many requests",
					nil,
				)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
