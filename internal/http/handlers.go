// Package http exposes the command engine over REST.
package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/navfs/navigator/internal/dispatch"
	"github.com/navfs/navigator/internal/monitoring"
	"github.com/navfs/navigator/internal/watch"
)

// Handlers contains all HTTP handlers.
type Handlers struct {
	sessions *dispatch.Manager
	monitors *watch.Manager
	version  string
}

// NewHandlers creates a new handler set.
func NewHandlers(sessions *dispatch.Manager, monitors *watch.Manager, version string) *Handlers {
	return &Handlers{
		sessions: sessions,
		monitors: monitors,
		version:  version,
	}
}

// Root reports service identity.
func (h *Handlers) Root(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":  "online",
		"service": "navigator",
		"version": h.version,
	})
}

// Health reports liveness plus basic engine stats.
func (h *Handlers) Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":   "healthy",
		"sessions": h.sessions.Count(),
		"monitors": h.monitors.Count(),
	})
}

// ListCommands returns the closed command surface.
func (h *Handlers) ListCommands(c *gin.Context) {
	commands := dispatch.Commands()
	c.JSON(http.StatusOK, gin.H{
		"commands": commands,
		"count":    len(commands),
	})
}

// executeRequest is the POST /commands/execute body.
type executeRequest struct {
	Command   string   `json:"command" binding:"required"`
	Args      []string `json:"args"`
	SessionID string   `json:"session_id"`
}

// Execute dispatches one command. Engine failures still return 200 with
// the failure envelope; only transport problems produce error statuses.
func (h *Handlers) Execute(c *gin.Context) {
	var req executeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request: " + err.Error()})
		return
	}

	session, err := h.sessions.GetOrCreate(req.SessionID)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		return
	}
	monitoring.SetSessionsActive(h.sessions.Count())

	result := session.Dispatch(c.Request.Context(), req.Command, req.Args)
	c.JSON(http.StatusOK, gin.H{
		"session_id": session.ID(),
		"result":     result,
	})
}
