package server

import (
	"net"
	"net/http"
	"strconv"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/shadowine/contact-intake/internal/core"
	"github.com/shadowine/contact-intake/internal/ratelimit"
)

// rateLimitResetLayout is the wire format of X-RateLimit-Reset and the 429
// body's resetTime field.
const rateLimitResetLayout = time.RFC3339

// withRateLimit applies the admission gate in front of an intake handler.
// Throttled requests never reach the pipeline: no validation, no external
// calls, no persistence attempt.
func (s *Server) withRateLimit(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		key := transportClientKey(r)
		if key == "" || key == "unknown" {
			// Fail open: availability over strictness when the client
			// cannot be identified.
			s.logger.Warn("Rate limiter: unable to determine client address")
			next(w, r)
			return
		}

		decision, err := s.limiter.Admit(r.Context(), key)
		if err != nil {
			// Fail open on limiter backend trouble as well.
			s.logger.Warn("Rate limiter unavailable, admitting request", zap.Error(err))
			next(w, r)
			return
		}

		setRateLimitHeaders(w, decision)

		if !decision.Allowed {
			s.logger.Warn("Rate limit exceeded", zap.String("client", key))
			s.writeError(w, &core.ThrottledError{
				RetryAfter: decision.RetryAfter,
				ResetAt:    decision.ResetAt,
			})
			return
		}

		next(w, r)
	}
}

// setRateLimitHeaders surfaces rate metadata on every admission decision
func setRateLimitHeaders(w http.ResponseWriter, decision ratelimit.Decision) {
	w.Header().Set("X-RateLimit-Limit", strconv.Itoa(decision.Limit))
	w.Header().Set("X-RateLimit-Remaining", strconv.Itoa(decision.Remaining))
	w.Header().Set("X-RateLimit-Reset", decision.ResetAt.UTC().Format(rateLimitResetLayout))
}

// transportClientKey is the rate-limit bucket key: the transport-observed
// client address only. A body-supplied address override never influences
// rate limiting.
func transportClientKey(r *http.Request) string {
	if fwd := r.Header.Get("X-Forwarded-For"); fwd != "" {
		if first := strings.TrimSpace(strings.Split(fwd, ",")[0]); first != "" {
			return first
		}
	}
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}

// resolveClientAddress is the address recorded on the persisted submission:
// explicit body override, then forwarded-for, then the transport address.
func resolveClientAddress(r *http.Request, override string) string {
	if override != "" {
		return override
	}
	if key := transportClientKey(r); key != "" {
		return key
	}
	return "unknown"
}

// userAgent returns the request's User-Agent header or "unknown"
func userAgent(r *http.Request) string {
	if ua := r.UserAgent(); ua != "" {
		return ua
	}
	return "unknown"
}
