package middleware

import (
	"net/http"
	"sync"
	"time"

	"booking-concierge/internal/pkg/config"

	"github.com/gin-gonic/gin"
	"golang.org/x/time/rate"
)

// RateLimitMiddleware limits webhook requests per client IP.
type RateLimitMiddleware struct {
	limit  rate.Limit
	burst  int
	mu     sync.Mutex
	byAddr map[string]*rate.Limiter
}

func NewRateLimitMiddleware(cfg config.WebhookConfig) *RateLimitMiddleware {
	window := cfg.RateWindow
	if window <= 0 {
		window = time.Minute
	}
	requests := cfg.RateLimit
	if requests <= 0 {
		requests = 1
	}
	return &RateLimitMiddleware{
		limit:  rate.Every(window / time.Duration(requests)),
		burst:  requests,
		byAddr: make(map[string]*rate.Limiter),
	}
}

func (m *RateLimitMiddleware) Limit() gin.HandlerFunc {
	return func(c *gin.Context) {
		if !m.limiterFor(c.ClientIP()).Allow() {
			c.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{
				"error": "Demasiadas solicitudes",
			})
			return
		}
		c.Next()
	}
}

func (m *RateLimitMiddleware) limiterFor(addr string) *rate.Limiter {
	m.mu.Lock()
	defer m.mu.Unlock()

	limiter, ok := m.byAddr[addr]
	if !ok {
		limiter = rate.NewLimiter(m.limit, m.burst)
		m.byAddr[addr] = limiter
	}
	return limiter
}
