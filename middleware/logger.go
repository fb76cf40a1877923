package middleware

import (
	"log"
	"time"

	"github.com/gin-gonic/gin"
)

// Logger writes one line per request with the staff member that made it,
// when the request was authenticated.
func Logger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		latency := time.Since(start)

		staff := StaffUsername(c)
		if staff == "" {
			staff = "-"
		}
		log.Printf("➡️ %s %s %s %d %s staff=%s",
			c.Request.Method, c.Request.URL.Path, c.ClientIP(), c.Writer.Status(), latency, staff)
	}
}
