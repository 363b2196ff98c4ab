package middleware

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/hashicorp/golang-lru/v2/expirable"
	"golang.org/x/time/rate"
)

// limiterIdle is how long a client's bucket survives without requests.
const limiterIdle = 10 * time.Minute

// RateLimit applies a token bucket per client IP. Buckets live in a bounded
// LRU so a scan from many addresses cannot grow memory without limit.
func RateLimit(rps float64, burst, maxClients int) gin.HandlerFunc {
	return rateLimit(rps, burst, maxClients, limiterIdle)
}

func rateLimit(rps float64, burst, maxClients int, idle time.Duration) gin.HandlerFunc {
	limiters := expirable.NewLRU[string, *rate.Limiter](maxClients, nil, idle)

	return func(c *gin.Context) {
		ip := c.ClientIP()
		lim, ok := limiters.Get(ip)
		if !ok {
			lim = rate.NewLimiter(rate.Limit(rps), burst)
		}
		// re-adding restarts the idle window, Get alone does not
		limiters.Add(ip, lim)
		if !lim.Allow() {
			c.Header("Retry-After", "1")
			c.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{"error": "rate limit exceeded"})
			return
		}
		c.Next()
	}
}
