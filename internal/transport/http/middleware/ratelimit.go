package middleware

import (
	"net/http"
	"sync"

	"github.com/gin-gonic/gin"
	"golang.org/x/time/rate"

	"cardlink/internal/apperr"
	"cardlink/internal/ratelimit"
	resp "cardlink/internal/transport/http/response"
)

// RateLimit 全局令牌桶限速
func RateLimit(rps rate.Limit, burst int) gin.HandlerFunc {
	lim := rate.NewLimiter(rps, burst)
	return func(c *gin.Context) {
		if lim.Allow() {
			c.Next()
			return
		}
		resp.Abort(c, http.StatusTooManyRequests, apperr.CodeRateLimited, "Too many requests")
	}
}

// RateLimitPerIP 每 IP 令牌桶限速
func RateLimitPerIP(rps rate.Limit, burst int) gin.HandlerFunc {
	var mu sync.Mutex
	buckets := make(map[string]*rate.Limiter)
	return func(c *gin.Context) {
		ip := c.ClientIP()
		mu.Lock()
		lim, ok := buckets[ip]
		if !ok {
			lim = rate.NewLimiter(rps, burst)
			buckets[ip] = lim
		}
		mu.Unlock()
		if lim.Allow() {
			c.Next()
			return
		}
		resp.Abort(c, http.StatusTooManyRequests, apperr.CodeRateLimited, "Too many requests")
	}
}

// PerIPWindow 固定窗口版，给未认证的 handle 查询用；
// 超限直接拒绝，不碰数据库
func PerIPWindow(l ratelimit.Limiter) gin.HandlerFunc {
	return func(c *gin.Context) {
		if !l.Allow(c.ClientIP()) {
			resp.Abort(c, http.StatusTooManyRequests, apperr.CodeRateLimited, "Too many requests")
			return
		}
		c.Next()
	}
}
