package middleware

import (
	"fmt"
	"math"
	"net/http"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"golang.org/x/time/rate"

	"automation-coach/internal/shared/server/respond"
)

const (
	RateGroupDefault = "DEFAULT"
	RateGroupSubmit  = "SUBMIT"
)

// RateLimitRule is a token bucket refilled at Rate tokens per second.
type RateLimitRule struct {
	Rate  float64
	Burst int
}

type RateLimitConfig struct {
	Rules        map[string]RateLimitRule
	DefaultGroup string
	GroupFor     func(*gin.Context) string
	Limiter      *RateLimiter
}

// RateLimiter keeps one limiter per principal and group.
type RateLimiter struct {
	mu       sync.Mutex
	limiters map[string]*rate.Limiter
	now      func() time.Time
}

func NewRateLimiter(now func() time.Time) *RateLimiter {
	if now == nil {
		now = time.Now
	}
	return &RateLimiter{
		limiters: make(map[string]*rate.Limiter),
		now:      now,
	}
}

// DefaultRateLimitRules keeps submissions, which run the engine and enqueue
// coaching work, well below reads.
func DefaultRateLimitRules() map[string]RateLimitRule {
	return map[string]RateLimitRule{
		RateGroupSubmit:  {Rate: 0.2, Burst: 5},
		RateGroupDefault: {Rate: 5, Burst: 20},
	}
}

// ParseRateLimitRules reads "GROUP=rate:burst" pairs separated by commas and
// overlays them on the defaults.
func ParseRateLimitRules(raw string) (map[string]RateLimitRule, error) {
	rules := DefaultRateLimitRules()
	for _, part := range strings.Split(raw, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		group, spec, ok := strings.Cut(part, "=")
		if !ok {
			return nil, fmt.Errorf("rate limit rule %q: missing '='", part)
		}
		rateRaw, burstRaw, ok := strings.Cut(spec, ":")
		if !ok {
			return nil, fmt.Errorf("rate limit rule %q: missing ':'", part)
		}
		r, err := strconv.ParseFloat(strings.TrimSpace(rateRaw), 64)
		if err != nil {
			return nil, fmt.Errorf("rate limit rule %q: %w", part, err)
		}
		b, err := strconv.Atoi(strings.TrimSpace(burstRaw))
		if err != nil {
			return nil, fmt.Errorf("rate limit rule %q: %w", part, err)
		}
		rules[strings.ToUpper(strings.TrimSpace(group))] = RateLimitRule{Rate: r, Burst: b}
	}
	return rules, nil
}

// GroupForRoute puts task submission and clarification in the SUBMIT group.
func GroupForRoute(c *gin.Context) string {
	if c.Request.Method != http.MethodPost {
		return RateGroupDefault
	}
	switch c.FullPath() {
	case "/api/v1/tasks", "/api/v1/tasks/clarify":
		return RateGroupSubmit
	}
	return RateGroupDefault
}

func RateLimit(cfg RateLimitConfig) gin.HandlerFunc {
	if cfg.Limiter == nil {
		cfg.Limiter = NewRateLimiter(nil)
	}
	if cfg.DefaultGroup == "" {
		cfg.DefaultGroup = RateGroupDefault
	}
	return func(c *gin.Context) {
		group := cfg.DefaultGroup
		if cfg.GroupFor != nil {
			if g := strings.TrimSpace(cfg.GroupFor(c)); g != "" {
				group = g
			}
		}
		rule, ok := cfg.Rules[group]
		if !ok {
			c.Next()
			return
		}
		principal := strings.TrimSpace(UserIDFromContext(c))
		if principal == "" {
			principal = strings.TrimSpace(c.ClientIP())
		}
		allowed, retryAfter := cfg.Limiter.Allow(principal+"|"+group, rule)
		if allowed {
			c.Next()
			return
		}
		retryAfterMs := int(retryAfter / time.Millisecond)
		if retryAfterMs <= 0 {
			retryAfterMs = 1000
		}
		c.Header("Retry-After", strconv.Itoa(int(math.Ceil(float64(retryAfterMs)/1000.0))))
		respond.Error(c, http.StatusTooManyRequests, "rate_limited", "too many requests", gin.H{
			"retryAfterMs": retryAfterMs,
		})
	}
}

// Allow takes one token for key and reports how long to wait when none is left.
func (l *RateLimiter) Allow(key string, rule RateLimitRule) (bool, time.Duration) {
	if l == nil || rule.Rate <= 0 || rule.Burst <= 0 {
		return true, 0
	}
	now := l.now()
	lim := l.limiter(key, rule)
	res := lim.ReserveN(now, 1)
	if !res.OK() {
		return false, time.Second
	}
	delay := res.DelayFrom(now)
	if delay == 0 {
		return true, 0
	}
	res.CancelAt(now)
	return false, delay
}

func (l *RateLimiter) limiter(key string, rule RateLimitRule) *rate.Limiter {
	l.mu.Lock()
	defer l.mu.Unlock()
	lim, ok := l.limiters[key]
	if !ok {
		lim = rate.NewLimiter(rate.Limit(rule.Rate), rule.Burst)
		l.limiters[key] = lim
	}
	return lim
}
