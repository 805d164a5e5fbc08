package httpinterface

import (
	"time"

	"github.com/gin-gonic/gin"
	log "github.com/sirupsen/logrus"
	"go.uber.org/ratelimit"
)

// rateLimitMiddleware throttles the decorated routes with a leaky bucket of
// rps requests per second. Requests are delayed, not rejected.
func rateLimitMiddleware(rps int) gin.HandlerFunc {
	limiter := ratelimit.New(rps)
	return func(c *gin.Context) {
		limiter.Take()
		c.Next()
	}
}

// corsMiddleware mirrors the open CORS policy of the coordinator: anyone can
// talk to it.
func corsMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Header("Access-Control-Allow-Origin", "*")
		c.Next()
	}
}

func loggerMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		log.WithFields(log.Fields{
			"method":  c.Request.Method,
			"path":    c.Request.URL.Path,
			"status":  c.Writer.Status(),
			"elapsed": time.Since(start).String(),
		}).Debug("request handled")
	}
}
