// Package monitoring exposes Prometheus metrics for the command engine
// and its HTTP surface.
package monitoring

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	commandsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "navigator_commands_total",
			Help: "Total number of dispatched commands",
		},
		[]string{"command", "status"},
	)
	commandDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "navigator_command_duration_seconds",
			Help:    "Command execution duration in seconds",
			Buckets: []float64{.001, .005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5},
		},
		[]string{"command"},
	)

	requestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "navigator_http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "path", "status"},
	)
	requestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "navigator_http_request_duration_seconds",
			Help:    "HTTP request duration in seconds",
			Buckets: []float64{.001, .005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5, 10},
		},
		[]string{"method", "path"},
	)

	watchEventsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "navigator_watch_events_total",
			Help: "Total number of change events delivered",
		},
		[]string{"action"},
	)
	monitorsActive = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "navigator_monitors_active",
			Help: "Number of live directory monitors",
		},
	)

	wsConnections = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "navigator_ws_connections",
			Help: "Number of active WebSocket connections",
		},
	)

	sessionsActive = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "navigator_sessions_active",
			Help: "Number of live sessions",
		},
	)
)

// ObserveCommand records one dispatched command.
func ObserveCommand(command string, success bool, duration time.Duration) {
	status := "ok"
	if !success {
		status = "error"
	}
	commandsTotal.WithLabelValues(command, status).Inc()
	commandDuration.WithLabelValues(command).Observe(duration.Seconds())
}

// ObserveWatchEvent records one delivered change event.
func ObserveWatchEvent(action string) {
	watchEventsTotal.WithLabelValues(action).Inc()
}

// SetMonitorsActive sets the live monitor gauge.
func SetMonitorsActive(count int) {
	monitorsActive.Set(float64(count))
}

// SetSessionsActive sets the live session gauge.
func SetSessionsActive(count int) {
	sessionsActive.Set(float64(count))
}

// IncWSConnections increments the WebSocket connection gauge.
func IncWSConnections() { wsConnections.Inc() }

// DecWSConnections decrements the WebSocket connection gauge.
func DecWSConnections() { wsConnections.Dec() }

// Middleware records per-request HTTP metrics.
func Middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		path := c.FullPath()
		if path == "" {
			path = "unmatched"
		}
		status := strconv.Itoa(c.Writer.Status())
		requestsTotal.WithLabelValues(c.Request.Method, path, status).Inc()
		requestDuration.WithLabelValues(c.Request.Method, path).Observe(time.Since(start).Seconds())
	}
}

// Handler serves the Prometheus scrape endpoint.
func Handler() gin.HandlerFunc {
	h := promhttp.Handler()
	return func(c *gin.Context) {
		h.ServeHTTP(c.Writer, c.Request)
	}
}
