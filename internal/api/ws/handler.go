package ws

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"go.uber.org/zap"

	"github.com/jiaa-labs/alpine-core/internal/shared/id"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  4096,
	WriteBufferSize: 4096,
	CheckOrigin: func(r *http.Request) bool {
		return true // clients connect from local desktop agents
	},
}

// SessionGauge tracks open connections; the monitoring collector
// satisfies it.
type SessionGauge interface {
	SessionOpened()
	SessionClosed()
}

// Handler accepts tracking connections and drives the per-connection
// protocol loop.
type Handler struct {
	coordinator *Coordinator
	gauge       SessionGauge
	logger      *zap.Logger
}

// NewHandler creates a websocket handler.
func NewHandler(coordinator *Coordinator, gauge SessionGauge, logger *zap.Logger) *Handler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Handler{coordinator: coordinator, gauge: gauge, logger: logger}
}

// HandleConnection upgrades the request and runs the connection's task.
// The task is the single reader and single writer for the socket, which
// is what guarantees per-connection command ordering.
func (h *Handler) HandleConnection(c *gin.Context) {
	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		h.logger.Warn("websocket upgrade failed", zap.Error(err))
		return
	}
	defer conn.Close()

	sessionID := c.Query("session_id")
	if sessionID == "" {
		sessionID = id.Session()
	}

	if h.gauge != nil {
		h.gauge.SessionOpened()
		defer h.gauge.SessionClosed()
	}
	defer h.coordinator.silence.Forget(sessionID)

	// Connection-scoped context: disconnect cancels any in-flight
	// collaborator call made on behalf of this connection.
	ctx, cancel := context.WithCancel(c.Request.Context())
	defer cancel()

	h.logger.Info("tracking session connected", zap.String("session_id", sessionID))
	defer h.logger.Info("tracking session closed", zap.String("session_id", sessionID))

	tracker := h.coordinator.newTracker(sessionID)

	h.send(conn, ServerMessage{Type: "system", Message: "connected"})

	for {
		var msg ClientMessage
		if err := conn.ReadJSON(&msg); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				h.logger.Warn("websocket read error", zap.String("session_id", sessionID), zap.Error(err))
			}
			// An audio turn cut off mid-utterance is abandoned with the
			// tracker; no partial response is sent.
			return
		}

		switch msg.Type {
		case msgHeartbeat:
			for _, cmd := range h.coordinator.HandleHeartbeat(ctx, tracker, msg) {
				h.coordinator.metrics.RecordCommand(string(cmd.Type))
				if !h.send(conn, ServerMessage{Type: "command", Command: &cmd}) {
					return
				}
			}
		case msgAudioChunk, msgAudioEnd:
			// audio_end closes the turn whether or not it carries data.
			if msg.Type == msgAudioEnd {
				msg.IsFinal = true
			}
			if result := h.coordinator.HandleAudioChunk(ctx, tracker, msg); result != nil {
				if !h.send(conn, ServerMessage{Type: "audio_result", AudioResult: result}) {
					return
				}
			}
		case msgPing:
			h.send(conn, ServerMessage{Type: "pong"})
		default:
			h.send(conn, ServerMessage{Type: "error", Message: "unknown message type"})
		}
	}
}

// send writes one message, reporting whether the connection is still
// usable. Writes happen only from the connection's own task.
func (h *Handler) send(conn *websocket.Conn, msg ServerMessage) bool {
	if err := conn.WriteJSON(msg); err != nil {
		h.logger.Debug("websocket write failed", zap.Error(err))
		return false
	}
	return true
}
