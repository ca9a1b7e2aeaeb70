package middleware

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
)

var (
	reqTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "cardlink",
			Subsystem: "http",
			Name:      "requests_total",
			Help:      "Requests by route, method and status.",
		}, []string{"path", "method", "status"},
	)
	reqDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "cardlink",
			Subsystem: "http",
			Name:      "request_duration_seconds",
			Help:      "Request latency by route and method.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"path", "method"},
	)
	reqInFlight = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Namespace: "cardlink",
			Subsystem: "http",
			Name:      "requests_in_flight",
			Help:      "Requests currently being served.",
		},
	)
)

func init() { prometheus.MustRegister(reqTotal, reqDuration, reqInFlight) }

func Metrics() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		reqInFlight.Inc()
		c.Next()
		reqInFlight.Dec()

		// 未匹配路由（404 等）没有模板路径，归到原始 path 会撑爆基数，统一记 unmatched
		path := c.FullPath()
		if path == "" {
			path = "unmatched"
		}
		reqTotal.WithLabelValues(path, c.Request.Method, strconv.Itoa(c.Writer.Status())).Inc()
		reqDuration.WithLabelValues(path, c.Request.Method).Observe(time.Since(start).Seconds())
	}
}
