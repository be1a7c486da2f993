package middleware

import (
	"fmt"
	"net"
	"net/http"
	"strings"
	"time"

	"github.com/Arihaan/ZKShop/api/health"
	"github.com/MonkyMars/gecho"
	"github.com/go-chi/render"
)

const (
	bucketGeneral = "general"
	bucketLedger  = "ledger"
)

// getRateLimitForEndpoint picks the bucket for a request. Calls that reach
// the ledger node share the stricter bucket.
func (mw *Middleware) getRateLimitForEndpoint(path, method string) (string, int, time.Duration) {
	if strings.HasPrefix(path, "/plt/") ||
		(method == http.MethodPost && strings.HasPrefix(path, "/purchase")) ||
		(method == http.MethodPost && strings.HasSuffix(path, "/confirm")) {
		return bucketLedger, mw.cfg.RateLimit.LedgerLimit, mw.cfg.RateLimit.LedgerWindow
	}
	return bucketGeneral, mw.cfg.RateLimit.GeneralLimit, mw.cfg.RateLimit.GeneralWindow
}

// getClientIP keys on the peer address. Forwarded headers only count when
// RealIP has already rewritten RemoteAddr behind a trusted proxy.
func getClientIP(r *http.Request) string {
	if host, _, err := net.SplitHostPort(r.RemoteAddr); err == nil {
		return host
	}
	return r.RemoteAddr
}

// RateLimitMiddleware counts requests per client and bucket in fixed
// windows. Cache failures let the request through.
func (mw *Middleware) RateLimitMiddleware() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if !mw.cfg.RateLimit.Enabled {
				next.ServeHTTP(w, r)
				return
			}

			// Liveness and scraping are never limited
			if r.URL.Path == "/health" || r.URL.Path == "/metrics" {
				next.ServeHTTP(w, r)
				return
			}

			clientIP := getClientIP(r)
			bucket, limit, window := mw.getRateLimitForEndpoint(r.URL.Path, r.Method)

			count, err := mw.cacheService.IncrementRateLimit(r.Context(), clientIP, bucket, window)
			if err != nil {
				mw.logger.Warn("Rate limit cache error, allowing request",
					gecho.Field("error", err),
					gecho.Field("ip", clientIP),
					gecho.Field("bucket", bucket),
				)
				next.ServeHTTP(w, r)
				return
			}

			w.Header().Set("X-RateLimit-Limit", fmt.Sprintf("%d", limit))
			w.Header().Set("X-RateLimit-Reset", fmt.Sprintf("%d", time.Now().Add(window).Unix()))

			if count > limit {
				mw.logger.Warn("Rate limit exceeded",
					gecho.Field("ip", clientIP),
					gecho.Field("bucket", bucket),
					gecho.Field("count", count),
					gecho.Field("limit", limit),
				)

				health.RateLimited.WithLabelValues(bucket).Inc()
				w.Header().Set("X-RateLimit-Remaining", "0")
				w.Header().Set("Retry-After", fmt.Sprintf("%d", int(window.Seconds())))
				render.Status(r, http.StatusTooManyRequests)
				render.JSON(w, r, map[string]string{"error": "rate limit exceeded, try again later"})
				return
			}

			w.Header().Set("X-RateLimit-Remaining", fmt.Sprintf("%d", limit-count))
			next.ServeHTTP(w, r)
		})
	}
}
