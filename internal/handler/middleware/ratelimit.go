package middleware

import (
	"net/http"
	"sync"
	"time"

	"access-scheduler/internal/pkg/config"

	"github.com/gin-gonic/gin"
	"golang.org/x/time/rate"
)

type clientLimiter struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// RateLimitMiddleware holds one token bucket per client IP for the write
// path. Idle buckets are evicted so the map stays bounded.
type RateLimitMiddleware struct {
	mu      sync.Mutex
	clients map[string]*clientLimiter
	rps     rate.Limit
	burst   int
	idle    time.Duration
}

func NewRateLimitMiddleware(cfg config.BookingConfig) *RateLimitMiddleware {
	m := &RateLimitMiddleware{
		clients: make(map[string]*clientLimiter),
		rps:     rate.Limit(cfg.RateLimitRPS),
		burst:   cfg.RateLimitBurst,
		idle:    cfg.RateLimitIdle,
	}
	go m.evictLoop()
	return m
}

func (m *RateLimitMiddleware) Limit() gin.HandlerFunc {
	return func(c *gin.Context) {
		if !m.allow(c.ClientIP()) {
			c.JSON(http.StatusTooManyRequests, gin.H{
				"error": "Too many requests",
			})
			c.Abort()
			return
		}
		c.Next()
	}
}

func (m *RateLimitMiddleware) allow(clientIP string) bool {
	m.mu.Lock()
	defer m.mu.Unlock()

	entry, ok := m.clients[clientIP]
	if !ok {
		entry = &clientLimiter{limiter: rate.NewLimiter(m.rps, m.burst)}
		m.clients[clientIP] = entry
	}
	entry.lastSeen = time.Now()

	return entry.limiter.Allow()
}

func (m *RateLimitMiddleware) evictLoop() {
	ticker := time.NewTicker(m.idle)
	defer ticker.Stop()

	for range ticker.C {
		cutoff := time.Now().Add(-m.idle)
		m.mu.Lock()
		for ip, entry := range m.clients {
			if entry.lastSeen.Before(cutoff) {
				delete(m.clients, ip)
			}
		}
		m.mu.Unlock()
	}
}
