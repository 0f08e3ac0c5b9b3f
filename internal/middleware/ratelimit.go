package middleware

import (
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
)

type rateWindow struct {
	count int
	start time.Time
}

// loginLimiter is an in-process fixed-window counter keyed by client IP.
// Consistency across replicas is not needed for a brute-force brake.
type loginLimiter struct {
	mu      sync.Mutex
	max     int
	window  time.Duration
	clients map[string]rateWindow
}

// LoginRateLimit rejects a client with 429 once it exceeds max attempts
// within the window. Applied only in front of the login route.
func LoginRateLimit(max int, window time.Duration) gin.HandlerFunc {
	l := &loginLimiter{
		max:     max,
		window:  window,
		clients: make(map[string]rateWindow),
	}

	return func(c *gin.Context) {
		if !l.allow(c.ClientIP()) {
			c.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{
				"status":  "error",
				"message": "Too many login attempts. Please try again later.",
			})
			return
		}
		c.Next()
	}
}

func (l *loginLimiter) allow(key string) bool {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := time.Now()

	w, ok := l.clients[key]
	if !ok || now.Sub(w.start) >= l.window {
		l.sweep(now)
		l.clients[key] = rateWindow{count: 1, start: now}
		return true
	}

	if w.count >= l.max {
		return false
	}

	w.count++
	l.clients[key] = w
	return true
}

// sweep drops expired windows so the map cannot grow without bound. Called
// with the lock held.
func (l *loginLimiter) sweep(now time.Time) {
	if len(l.clients) < 1024 {
		return
	}
	for key, w := range l.clients {
		if now.Sub(w.start) >= l.window {
			delete(l.clients, key)
		}
	}
}
