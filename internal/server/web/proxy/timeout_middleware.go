package proxy

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
)

const requestTimeout = "requestTimeout"

func getTimeoutMiddleware(timeout time.Duration) gin.HandlerFunc {
	return func(c *gin.Context) {
		if c == nil || c.Request == nil {
			c.String(http.StatusInternalServerError, "Internal server error: request is empty")
			c.Abort()
			return
		}

		timeoutHeader := c.GetHeader("x-request-timeout")
		parsedTimeout := timeout
		if len(timeoutHeader) != 0 {
			parsed, err := time.ParseDuration(timeoutHeader)
			if err != nil || parsed <= 0 {
				c.String(http.StatusBadRequest, "Invalid x-request-timeout header: %q", timeoutHeader)
				c.Abort()
				return
			}

			parsedTimeout = parsed
		}

		c.Set(requestTimeout, parsedTimeout)
	}
}
