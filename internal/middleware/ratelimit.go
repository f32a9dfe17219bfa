package middleware

import (
	"net/http"

	"go.uber.org/zap"
	"golang.org/x/time/rate"

	"person-registry/internal/metrics"
)

// RateLimit gibt eine Middleware zurück, die eingehende Anfragen global auf
// requestsPerSecond begrenzt. Überzählige Anfragen erhalten 429.
func RateLimit(requestsPerSecond float64, logger *zap.Logger, m *metrics.Metrics) func(http.Handler) http.Handler {
	limiter := rate.NewLimiter(rate.Limit(requestsPerSecond), max(1, int(requestsPerSecond)))

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if !limiter.Allow() {
				logger.Warn("rate-limit überschritten",
					zap.String("remote", r.RemoteAddr),
					zap.String("pfad", r.URL.Path),
				)
				m.IncrementRateLimited()
				writeError(w, r, http.StatusTooManyRequests, "zu viele anfragen")
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
