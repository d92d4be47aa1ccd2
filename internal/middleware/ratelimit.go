package middleware

import (
	"net/http"
	"sync"
	"time"

	"hospital-backoffice/pkg/utils"

	"github.com/gin-gonic/gin"
	"github.com/patrickmn/go-cache"
	"golang.org/x/time/rate"
)

const minLimiterIdle = time.Minute

// IPRateLimiter keeps one token bucket per client IP.
// A bucket unused for longer than it takes to refill is dropped.
type IPRateLimiter struct {
	ips *cache.Cache
	mu  sync.Mutex
	r   rate.Limit
	b   int
}

func NewIPRateLimiter(r rate.Limit, b int) *IPRateLimiter {
	idle := minLimiterIdle
	if r > 0 {
		if refill := time.Duration(float64(b) / float64(r) * float64(time.Second)); refill > idle {
			idle = refill
		}
	}

	return &IPRateLimiter{
		ips: cache.New(idle, idle),
		r:   r,
		b:   b,
	}
}

// GetLimiter returns the limiter of an IP, creating it on first use
func (i *IPRateLimiter) GetLimiter(ip string) *rate.Limiter {
	i.mu.Lock()
	defer i.mu.Unlock()

	limiter := rate.NewLimiter(i.r, i.b)
	if cached, found := i.ips.Get(ip); found {
		limiter = cached.(*rate.Limiter)
	}
	i.ips.SetDefault(ip, limiter)
	return limiter
}

// Len returns the number of tracked client IPs
func (i *IPRateLimiter) Len() int {
	return i.ips.ItemCount()
}

// RateLimit rejects clients that exceed their request budget with 429
func RateLimit(limiter *IPRateLimiter) gin.HandlerFunc {
	return func(c *gin.Context) {
		if !limiter.GetLimiter(c.ClientIP()).Allow() {
			utils.ErrorResponse(c, http.StatusTooManyRequests, "Too many requests, try again later")
			c.Abort()
			return
		}
		c.Next()
	}
}
