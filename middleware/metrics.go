package middleware

import (
	"context"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	awspkg "sneaker-storefront/pkg/aws"
)

const metricsFlushTimeout = 5 * time.Second

// Metrics reports every finished request to CloudWatch under the given
// service name. A nil or disabled client turns it into a no-op.
func Metrics(mc *awspkg.MetricsClient, service string) gin.HandlerFunc {
	return func(c *gin.Context) {
		if !mc.IsEnabled() {
			c.Next()
			return
		}

		started := time.Now()
		c.Next()

		status := c.Writer.Status()
		route := c.FullPath()
		if route == "" {
			route = "unmatched"
		}
		dims := map[string]string{
			"Service": service,
			"Method":  c.Request.Method,
			"Path":    route,
			"Status":  statusClass(status),
		}
		counters := requestCounters(status)
		elapsed := time.Since(started)

		go func() {
			ctx, cancel := context.WithTimeout(context.Background(), metricsFlushTimeout)
			defer cancel()
			_ = mc.RecordLatency(ctx, awspkg.MetricHTTPLatency, elapsed, dims)
			for _, name := range counters {
				_ = mc.RecordCount(ctx, name, dims)
			}
		}()
	}
}

// requestCounters lists the counters a response with status bumps.
func requestCounters(status int) []string {
	names := []string{awspkg.MetricHTTPRequests}
	switch statusClass(status) {
	case "4xx":
		names = append(names, awspkg.MetricHTTPErrors, awspkg.MetricHTTP4xx)
	case "5xx":
		names = append(names, awspkg.MetricHTTPErrors, awspkg.MetricHTTP5xx)
	}
	return names
}

func statusClass(status int) string {
	if status < 100 || status > 599 {
		return "unknown"
	}
	return strconv.Itoa(status/100) + "xx"
}
