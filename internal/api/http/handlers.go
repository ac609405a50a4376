package http

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/jiaa-labs/alpine-core/internal/domain/persona"
	"github.com/jiaa-labs/alpine-core/internal/domain/session"
	"github.com/jiaa-labs/alpine-core/internal/infrastructure/monitoring"
)

// DecisionEngine produces persona decisions for chat turns. Satisfied by
// *persona.Engine.
type DecisionEngine interface {
	Decide(ctx context.Context, text string, sctx session.Context) persona.Decision
}

// Handlers serves the request/response API surface: chat turns, health,
// and the JSON stats view.
type Handlers struct {
	engine   DecisionEngine
	contexts *session.ContextBuilder
	metrics  *monitoring.Metrics
	logger   *zap.Logger
	started  time.Time
}

// NewHandlers creates the HTTP handler set.
func NewHandlers(engine DecisionEngine, contexts *session.ContextBuilder, metrics *monitoring.Metrics, logger *zap.Logger) *Handlers {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Handlers{
		engine:   engine,
		contexts: contexts,
		metrics:  metrics,
		logger:   logger,
		started:  time.Now(),
	}
}

// ChatRequest is one typed user turn.
type ChatRequest struct {
	Text   string `json:"text" binding:"required"`
	UserID string `json:"user_id"`
}

// Chat runs a typed turn through the decision engine. The response body
// is the same decision shape the audio path embeds in intent JSON.
func (h *Handlers) Chat(c *gin.Context) {
	var req ChatRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "text is required"})
		return
	}
	if strings.TrimSpace(req.Text) == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "text is required"})
		return
	}

	sctx := h.contexts.Build(c.Request.Context(), req.UserID, nil)
	decision := h.engine.Decide(c.Request.Context(), req.Text, sctx)

	h.logger.Info("chat turn decided",
		zap.String("user_id", sctx.UserID),
		zap.String("intent", string(decision.Intent)),
		zap.String("action", string(decision.ActionCode)),
	)

	c.JSON(http.StatusOK, decision)
}

// Health reports liveness.
func (h *Handlers) Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":  "healthy",
		"service": "alpine-core",
		"uptime":  time.Since(h.started).Round(time.Second).String(),
	})
}

// Stats returns the headline counters as JSON, for dashboards that do
// not scrape Prometheus.
func (h *Handlers) Stats(c *gin.Context) {
	c.JSON(http.StatusOK, h.metrics.GetSnapshot())
}
