package middleware

import (
	"net"
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"golang.org/x/time/rate"
)

// Rate tiers. Payment endpoints get the strict tier.
const (
	limitStrict  = rate.Limit(2)
	burstStrict  = 5
	limitGeneral = rate.Limit(10)
	burstGeneral = 20
)

// visitor holds the rate limiter and the last time it was seen.
type visitor struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

var (
	visitors = make(map[string]*visitor)
	mu       sync.Mutex
)

func init() {
	go cleanupVisitors()
}

func getVisitor(key string, r rate.Limit, b int) *rate.Limiter {
	mu.Lock()
	defer mu.Unlock()

	v, exists := visitors[key]
	if !exists {
		limiter := rate.NewLimiter(r, b)
		visitors[key] = &visitor{limiter, time.Now()}
		return limiter
	}

	v.lastSeen = time.Now()
	return v.limiter
}

// cleanupVisitors removes stale entries so the map does not grow
// unbounded.
func cleanupVisitors() {
	for {
		time.Sleep(time.Minute)

		mu.Lock()
		for key, v := range visitors {
			if time.Since(v.lastSeen) > 3*time.Minute {
				delete(visitors, key)
			}
		}
		mu.Unlock()
	}
}

// RateLimit throttles per authenticated user, falling back to client IP
// for anonymous requests.
func RateLimit() gin.HandlerFunc {
	return rateLimit("general", limitGeneral, burstGeneral)
}

// RateLimitStrict is the tier for checkout and payment endpoints.
func RateLimitStrict() gin.HandlerFunc {
	return rateLimit("strict", limitStrict, burstStrict)
}

func rateLimit(tier string, limit rate.Limit, burst int) gin.HandlerFunc {
	return func(c *gin.Context) {
		var identity string
		if userID, ok := UserID(c); ok {
			identity = "user:" + userID
		} else {
			ip, _, err := net.SplitHostPort(c.Request.RemoteAddr)
			if err != nil {
				ip = c.Request.RemoteAddr
			}
			identity = "ip:" + ip
		}

		// Each tier keeps its own bucket so a visitor warmed up on the
		// general tier cannot spend that allowance on strict endpoints.
		if !getVisitor(identity+":"+tier, limit, burst).Allow() {
			c.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{"error": "rate limit exceeded"})
			return
		}
		c.Next()
	}
}
