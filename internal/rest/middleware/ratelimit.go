package middleware

import (
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/zurichjs/rewards/internal/config"
	"github.com/zurichjs/rewards/internal/logger"
	"golang.org/x/time/rate"
)

const (
	defaultValidateRPS   = 2
	defaultValidateBurst = 5

	// idle limiters are dropped after this long to bound the map
	limiterTTL = 10 * time.Minute
)

type clientLimiter struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// RateLimitMiddleware throttles a public endpoint per client IP. The
// coupon validation endpoint is the main consumer: it is unauthenticated
// and each miss costs a provider API call.
func RateLimitMiddleware(cfg *config.Configuration, logger *logger.Logger) gin.HandlerFunc {
	rps := cfg.Pricing.ValidateRPS
	if rps <= 0 {
		rps = defaultValidateRPS
	}
	burst := cfg.Pricing.ValidateBurst
	if burst <= 0 {
		burst = defaultValidateBurst
	}

	var mu sync.Mutex
	clients := make(map[string]*clientLimiter)
	lastSweep := time.Now()

	return func(c *gin.Context) {
		ip := c.ClientIP()
		now := time.Now()

		mu.Lock()
		if now.Sub(lastSweep) > limiterTTL {
			for key, cl := range clients {
				if now.Sub(cl.lastSeen) > limiterTTL {
					delete(clients, key)
				}
			}
			lastSweep = now
		}

		cl, ok := clients[ip]
		if !ok {
			cl = &clientLimiter{limiter: rate.NewLimiter(rate.Limit(rps), burst)}
			clients[ip] = cl
		}
		cl.lastSeen = now
		allowed := cl.limiter.Allow()
		mu.Unlock()

		if !allowed {
			logger.Debugw("rate limit exceeded", "client_ip", ip, "path", c.Request.URL.Path)
			c.JSON(http.StatusTooManyRequests, gin.H{"error": "Too many requests, please slow down"})
			c.Abort()
			return
		}

		c.Next()
	}
}
