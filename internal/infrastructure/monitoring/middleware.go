package monitoring

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
)

// Middleware creates a Gin middleware for metrics collection.
func Middleware(metrics *Metrics) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		path := c.Request.URL.Path
		method := c.Request.Method

		c.Next()

		metrics.RecordHTTPRequest(method, path,
			strconv.Itoa(c.Writer.Status()), time.Since(start))
	}
}

// Timer measures one external capability call.
type Timer struct {
	start      time.Time
	metrics    *Metrics
	capability string
}

// NewTimer starts a timer for a collaborator call.
func NewTimer(metrics *Metrics, capability string) *Timer {
	return &Timer{start: time.Now(), metrics: metrics, capability: capability}
}

// Stop records the call's duration and outcome.
func (t *Timer) Stop(err error) {
	if t.metrics == nil {
		return
	}
	t.metrics.RecordCollaboratorCall(t.capability, time.Since(t.start), err)
}
