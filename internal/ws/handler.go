// Package ws streams filesystem change events over WebSocket.
package ws

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"go.uber.org/zap"

	"github.com/navfs/navigator/internal/monitoring"
	"github.com/navfs/navigator/internal/watch"
)

// pingInterval keeps intermediaries from dropping idle connections.
const pingInterval = 30 * time.Second

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
}

// Handler manages watch WebSocket connections.
type Handler struct {
	monitors *watch.Manager
	logger   *zap.Logger
}

// NewHandler creates a new WebSocket handler.
func NewHandler(monitors *watch.Manager, logger *zap.Logger) *Handler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Handler{monitors: monitors, logger: logger}
}

// HandleWatch upgrades the connection and streams change events for the
// directory named by the path query parameter. Closing the connection
// tears down the monitor.
func (h *Handler) HandleWatch(c *gin.Context) {
	path := c.Query("path")
	if path == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "path query parameter required"})
		return
	}

	monitor, err := h.monitors.Open(path)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		h.monitors.Close(monitor.ID())
		h.logger.Warn("websocket upgrade failed", zap.Error(err))
		return
	}

	monitoring.IncWSConnections()
	monitoring.SetMonitorsActive(h.monitors.Count())
	defer func() {
		conn.Close()
		h.monitors.Close(monitor.ID())
		monitoring.DecWSConnections()
		monitoring.SetMonitorsActive(h.monitors.Count())
	}()

	conn.WriteJSON(map[string]interface{}{
		"type":       "watching",
		"monitor_id": monitor.ID(),
		"path":       monitor.Path(),
	})

	// Reader goroutine: surfaces client close so the event loop exits.
	closed := make(chan struct{})
	go func() {
		defer close(closed)
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}()

	ticker := time.NewTicker(pingInterval)
	defer ticker.Stop()

	for {
		select {
		case <-closed:
			return
		case <-ticker.C:
			if err := conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		case event, ok := <-monitor.Events():
			if !ok {
				conn.WriteJSON(map[string]interface{}{"type": "stopped"})
				return
			}
			monitoring.ObserveWatchEvent(string(event.Action))
			if err := conn.WriteJSON(map[string]interface{}{
				"type":  "event",
				"event": event,
			}); err != nil {
				return
			}
		}
	}
}
