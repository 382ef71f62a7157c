package proxy

import (
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/bricks-cloud/partyrock/internal/telemetry"
	"github.com/bricks-cloud/partyrock/internal/telemetry/metricname"
	"github.com/bricks-cloud/partyrock/internal/util"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

func getMiddleware(log *zap.Logger, prod bool, prefix string) gin.HandlerFunc {
	return func(c *gin.Context) {
		if c == nil || c.Request == nil {
			c.String(http.StatusInternalServerError, "Internal server error: request is empty")
			c.Abort()
			return
		}

		cid := util.NewUuid()
		c.Set(correlationId, cid)
		start := time.Now()

		defer func() {
			dur := time.Since(start)
			latency := int(dur.Milliseconds())

			if !prod {
				log.Sugar().Infof("%s | %d | %s | %s | %dms", prefix, c.Writer.Status(), c.Request.Method, c.Request.URL.Path, latency)
			}

			telemetry.Timing(metricname.HISTOGRAM_MIDDLEWARE_PROXY_LATENCY, dur, nil, 1)

			if prod {
				log.Info("response to proxy",
					zap.String(correlationId, cid),
					zap.String("model", c.GetString("model")),
					zap.Int("code", c.Writer.Status()),
					zap.String("method", c.Request.Method),
					zap.String("path", c.Request.URL.Path),
					zap.Int("lantecyInMs", latency),
				)
			}

			telemetry.Incr(metricname.COUNTER_MIDDLEWARE_RESPONSES, []string{
				"status:" + strconv.Itoa(c.Writer.Status()),
			}, 1)
		}()

		c.Next()
	}
}

// getCorsMiddleware allows every origin and answers preflight requests directly.
func getCorsMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		h := c.Writer.Header()
		h.Set("Access-Control-Allow-Origin", "*")
		h.Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		h.Set("Access-Control-Allow-Headers", "Authorization, Content-Type, X-Request-Timeout")

		if c.Request.Method == http.MethodOptions {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}

		c.Next()
	}
}

func getRecoveryMiddleware(log *zap.Logger, prod bool) gin.HandlerFunc {
	return gin.CustomRecovery(func(c *gin.Context, recovered any) {
		telemetry.Incr(metricname.COUNTER_MIDDLEWARE_PANICS, nil, 1)
		logError(log, "recovered from panic", prod, c.GetString(correlationId), fmt.Errorf("%v", recovered))

		if c.Writer.Written() {
			c.Abort()
			return
		}

		c.String(http.StatusInternalServerError, "Internal server error: %v", recovered)
		c.Abort()
	})
}
