package server

import (
	"crypto/subtle"
	"log/slog"
	"net"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/isleforge/isleforge/internal/logger"
)

// Abuse thresholds sized for the game client. The UI polls game state about
// once a second and fires an action request per click, so a single
// well-behaved session stays far under the per-IP budget.
const (
	rateLimitWindow      = time.Minute
	rateLimitMaxRequests = 300
	failedAuthAlertAfter = 5
	rateLimitLogEvery    = 50
)

// AuthMiddleware requires the API key on every route except the public
// health/metrics surface. Comparison is constant time.
func AuthMiddleware(apiKey string, trustedProxies []string, detector *AbuseDetector) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			for _, path := range PublicPaths {
				if strings.HasPrefix(r.URL.Path, path) {
					next.ServeHTTP(w, r)
					return
				}
			}

			providedKey := r.Header.Get(HeaderAPIKey)
			if subtle.ConstantTimeCompare([]byte(providedKey), []byte(apiKey)) != 1 {
				ip := extractIP(r, trustedProxies)
				detector.RecordFailedAuth(ip)

				log := logger.FromContext(r.Context())
				log.Warn(LogMsgAuthFailed,
					"remote_addr", r.RemoteAddr,
					"path", r.URL.Path,
					"game_id", gameIDFromPath(r.URL.Path),
					"has_key", providedKey != "",
					"ip", ip)

				http.Error(w, ErrMsgUnauthorized, http.StatusUnauthorized)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

// RequestSizeLimitMiddleware caps request body size. Game action bodies are
// tiny, so anything large is abuse or a client bug.
func RequestSizeLimitMiddleware(maxBytes int64) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			r.Body = http.MaxBytesReader(w, r.Body, maxBytes)
			next.ServeHTTP(w, r)
		})
	}
}

// AbuseDetector tracks per-IP failed logins and request rates over a rolling
// window, shared between the auth and rate-limit middleware.
type AbuseDetector struct {
	mu          sync.Mutex
	failedAuth  map[string]int
	requests    map[string]int
	windowStart time.Time
}

func NewAbuseDetector() *AbuseDetector {
	return &AbuseDetector{
		failedAuth:  make(map[string]int),
		requests:    make(map[string]int),
		windowStart: time.Now(),
	}
}

// RecordFailedAuth counts a rejected API key and alerts once the IP crosses
// the threshold within the current window.
func (d *AbuseDetector) RecordFailedAuth(ip string) {
	d.mu.Lock()
	defer d.mu.Unlock()

	d.rollWindowLocked()
	d.failedAuth[ip]++

	if d.failedAuth[ip] >= failedAuthAlertAfter {
		slog.Warn(SecurityAlertFailedAuth,
			"ip", ip,
			"count", d.failedAuth[ip])
	}
}

// RecordRequest counts a request and reports whether the IP is still inside
// its budget for the window.
func (d *AbuseDetector) RecordRequest(ip string) bool {
	d.mu.Lock()
	defer d.mu.Unlock()

	d.rollWindowLocked()
	d.requests[ip]++

	if d.requests[ip] > rateLimitMaxRequests {
		// Log a sample of the blocked requests, not every one.
		if d.requests[ip]%rateLimitLogEvery == 0 {
			slog.Warn(SecurityAlertHighRate,
				"ip", ip,
				"count_in_window", d.requests[ip],
				"window", rateLimitWindow.String())
		}
		return false
	}
	return true
}

// rollWindowLocked starts a fresh window once the current one has elapsed.
// Caller holds the mutex.
func (d *AbuseDetector) rollWindowLocked() {
	if time.Since(d.windowStart) > rateLimitWindow {
		d.requests = make(map[string]int)
		d.failedAuth = make(map[string]int)
		d.windowStart = time.Now()
	}
}

// RateLimitMiddleware rejects requests from IPs that have exhausted their
// window budget.
func RateLimitMiddleware(trustedProxies []string, detector *AbuseDetector) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ip := extractIP(r, trustedProxies)
			if !detector.RecordRequest(ip) {
				http.Error(w, ErrMsgTooManyRequests, http.StatusTooManyRequests)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

// gameIDFromPath pulls the game id out of /api/v1/game/{id}/... paths so
// security logs can be correlated with a session. Middleware runs before
// routing, so chi's URL params are not populated yet.
func gameIDFromPath(path string) string {
	const prefix = "/api/v1/game/"
	if !strings.HasPrefix(path, prefix) {
		return ""
	}
	id := strings.TrimPrefix(path, prefix)
	if i := strings.IndexByte(id, '/'); i >= 0 {
		id = id[:i]
	}
	return id
}

// extractIP returns the client IP. X-Forwarded-For is honored only when the
// direct peer is a configured trusted proxy; the rightmost entry is used
// since that is the hop the proxy actually saw.
func extractIP(r *http.Request, trustedProxies []string) string {
	remoteIP, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		remoteIP = r.RemoteAddr
	}

	trusted := false
	for _, proxy := range trustedProxies {
		if proxy == remoteIP {
			trusted = true
			break
		}
	}
	if !trusted {
		return remoteIP
	}

	forwarded := r.Header.Get(HeaderForwardedFor)
	if forwarded == "" {
		return remoteIP
	}
	ips := strings.Split(forwarded, ",")
	return strings.TrimSpace(ips[len(ips)-1])
}

// SecurityHeadersMiddleware sets the standard browser hardening headers on
// every response.
func SecurityHeadersMiddleware() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set(HeaderContentType, HeaderValueNoSniff)
			w.Header().Set(HeaderFrameOptions, HeaderValueSameOrigin)
			w.Header().Set(HeaderXSSProtection, HeaderValueXSSBlock)
			w.Header().Set(HeaderReferrerPolicy, HeaderValueReferrerStrictOrigin)
			next.ServeHTTP(w, r)
		})
	}
}
