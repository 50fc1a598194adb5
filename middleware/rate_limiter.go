// middleware/rate_limiter.go
package middleware

import (
	"net/http"
	"sync"
	"time"

	"github.com/labstack/echo/v4"
	"golang.org/x/time/rate"
)

// LoginPath is rate limited more strictly than the rest of the API
const LoginPath = "/api/admin/login"

type endpointLimit struct {
	limit rate.Limit
	burst int
}

type visitor struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

type RateLimiter struct {
	visitors        map[string]*visitor
	blockedIPs      map[string]time.Time
	mu              *sync.RWMutex
	defaultLimit    rate.Limit
	defaultBurst    int
	blockDuration   time.Duration
	idleTTL         time.Duration
	cleanupInterval time.Duration
	endpointLimits  map[string]endpointLimit
	extractIP       echo.IPExtractor
	now             func() time.Time
	stop            chan struct{}
	stopOnce        sync.Once
}

// NewRateLimiter keys clients by the TCP peer address. Behind a reverse proxy
// call SetIPExtractor with an extractor that only trusts that proxy.
func NewRateLimiter() *RateLimiter {
	limiter := &RateLimiter{
		visitors:        make(map[string]*visitor),
		blockedIPs:      make(map[string]time.Time),
		mu:              &sync.RWMutex{},
		defaultLimit:    rate.Every(100 * time.Millisecond), // 10 requests per second
		defaultBurst:    20,
		blockDuration:   5 * time.Minute,
		idleTTL:         10 * time.Minute,
		cleanupInterval: time.Minute,
		endpointLimits:  make(map[string]endpointLimit),
		extractIP:       echo.ExtractIPDirect(),
		now:             time.Now,
		stop:            make(chan struct{}),
	}

	// Login is the brute force target; one attempt every 2s with a burst of 5
	limiter.SetEndpointLimit(LoginPath, rate.Every(2*time.Second), 5)

	go limiter.cleanupLoop()

	return limiter
}

// SetEndpointLimit overrides the default limit for one route path
func (r *RateLimiter) SetEndpointLimit(path string, limit rate.Limit, burst int) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.endpointLimits[path] = endpointLimit{limit: limit, burst: burst}
}

// SetIPExtractor replaces how the client address is read from a request
func (r *RateLimiter) SetIPExtractor(extract echo.IPExtractor) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.extractIP = extract
}

// Stop ends the cleanup goroutine
func (r *RateLimiter) Stop() {
	r.stopOnce.Do(func() { close(r.stop) })
}

func (r *RateLimiter) cleanupLoop() {
	ticker := time.NewTicker(r.cleanupInterval)
	defer ticker.Stop()
	for {
		select {
		case <-r.stop:
			return
		case <-ticker.C:
			r.sweep()
		}
	}
}

// sweep drops expired blocks and limiters that have been idle for idleTTL
func (r *RateLimiter) sweep() {
	r.mu.Lock()
	defer r.mu.Unlock()

	now := r.now()
	for key, blockUntil := range r.blockedIPs {
		if now.After(blockUntil) {
			delete(r.blockedIPs, key)
			delete(r.visitors, key)
		}
	}
	for key, v := range r.visitors {
		if _, blocked := r.blockedIPs[key]; !blocked && now.Sub(v.lastSeen) > r.idleTTL {
			delete(r.visitors, key)
		}
	}
}

func (r *RateLimiter) size() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.visitors)
}

func (r *RateLimiter) RateLimit() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			path := c.Path()
			now := r.now()

			r.mu.Lock()
			key := r.extractIP(c.Request()) + "|" + path
			if blockUntil, blocked := r.blockedIPs[key]; blocked {
				if now.Before(blockUntil) {
					r.mu.Unlock()
					return tooManyRequests(c, blockUntil)
				}
				delete(r.blockedIPs, key)
				delete(r.visitors, key)
			}
			limit, burst := r.defaultLimit, r.defaultBurst
			if el, ok := r.endpointLimits[path]; ok {
				limit, burst = el.limit, el.burst
			}
			v, exists := r.visitors[key]
			if !exists {
				v = &visitor{limiter: rate.NewLimiter(limit, burst)}
				r.visitors[key] = v
			}
			v.lastSeen = now
			allowed := v.limiter.AllowN(now, 1)
			if !allowed {
				r.blockedIPs[key] = now.Add(r.blockDuration)
			}
			blockUntil := r.blockedIPs[key]
			r.mu.Unlock()

			if !allowed {
				return tooManyRequests(c, blockUntil)
			}
			return next(c)
		}
	}
}

func tooManyRequests(c echo.Context, retryAt time.Time) error {
	return c.JSON(http.StatusTooManyRequests, map[string]string{
		"message":    "Too many requests, please try again later",
		"retryAfter": retryAt.Format(time.RFC3339),
	})
}
