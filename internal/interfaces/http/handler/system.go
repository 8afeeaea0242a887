package handler

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
)

// HealthCheck probes one dependency for the health endpoint
type HealthCheck struct {
	Name  string
	Check func() error
}

// SystemHandler serves health and liveness endpoints
type SystemHandler struct {
	BaseHandler
	appName   string
	version   string
	startedAt time.Time
	checks    []HealthCheck
}

// NewSystemHandler creates a new SystemHandler
func NewSystemHandler(appName, version string, checks ...HealthCheck) *SystemHandler {
	return &SystemHandler{
		appName:   appName,
		version:   version,
		startedAt: time.Now(),
		checks:    checks,
	}
}

// Health reports service health including dependency probes. A failing
// dependency degrades the report but still answers 200; the process is
// alive and routing.
func (h *SystemHandler) Health(c *gin.Context) {
	status := "ok"
	components := gin.H{}
	for _, check := range h.checks {
		if err := check.Check(); err != nil {
			status = "degraded"
			components[check.Name] = err.Error()
		} else {
			components[check.Name] = "ok"
		}
	}

	resp := gin.H{
		"status":  status,
		"app":     h.appName,
		"version": h.version,
		"uptime":  time.Since(h.startedAt).Round(time.Second).String(),
	}
	if len(components) > 0 {
		resp["components"] = components
	}
	c.JSON(http.StatusOK, resp)
}
