package middleware

import (
	"net/http"
	"sync"
	"time"

	"turfly/pkg/logger"
)

// OperatorExtractor pulls the rate-limit key for a request. Operators identify
// themselves with the X-Operator-ID header; anonymous requests are not limited.
type OperatorExtractor func(r *http.Request) string

type OperatorRateLimiter struct {
	mu        sync.RWMutex
	requests  map[string][]time.Time
	limit     int
	window    time.Duration
	extractor OperatorExtractor
	log       *logger.Logger
	stopCh    chan struct{}
}

func NewOperatorRateLimiter(limit int, window time.Duration, extractor OperatorExtractor, log *logger.Logger) *OperatorRateLimiter {
	limiter := &OperatorRateLimiter{
		requests:  make(map[string][]time.Time),
		limit:     limit,
		window:    window,
		extractor: extractor,
		log:       log,
		stopCh:    make(chan struct{}),
	}

	go limiter.cleanup()

	return limiter
}

func (rl *OperatorRateLimiter) cleanup() {
	ticker := time.NewTicker(1 * time.Hour)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			rl.mu.Lock()
			for operator, timestamps := range rl.requests {
				if len(timestamps) == 0 || time.Since(timestamps[len(timestamps)-1]) > rl.window {
					delete(rl.requests, operator)
				}
			}
			rl.mu.Unlock()
		case <-rl.stopCh:
			return
		}
	}
}

func (rl *OperatorRateLimiter) Stop() {
	close(rl.stopCh)
}

func (rl *OperatorRateLimiter) Allow(operator string) bool {
	if operator == "" {
		return true
	}

	now := time.Now()

	rl.mu.RLock()
	timestamps := rl.requests[operator]
	rl.mu.RUnlock()

	valid := make([]time.Time, 0, len(timestamps))
	for _, ts := range timestamps {
		if now.Sub(ts) < rl.window {
			valid = append(valid, ts)
		}
	}

	if len(valid) >= rl.limit {
		return false
	}

	valid = append(valid, now)

	rl.mu.Lock()
	rl.requests[operator] = valid
	rl.mu.Unlock()

	return true
}

func OperatorRateLimit(limiter *OperatorRateLimiter) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			operator := ""
			if limiter.extractor != nil {
				operator = limiter.extractor(r)
			}

			if operator == "" {
				next.ServeHTTP(w, r)
				return
			}

			if !limiter.Allow(operator) {
				limiter.log.Warn("Rate limit exceeded",
					"request_id", RequestIDFromContext(r.Context()),
					"operator_id", operator,
					"path", r.URL.Path,
				)

				w.Header().Set("Content-Type", "application/json")
				w.WriteHeader(http.StatusTooManyRequests)
				_, _ = w.Write([]byte(`{"error":"Rate limit exceeded"}`))
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

func DefaultOperatorExtractor(r *http.Request) string {
	return r.Header.Get("X-Operator-ID")
}
