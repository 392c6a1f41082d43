package handlers

import (
	"net/http"

	"safarexpress/services/admin"
	"safarexpress/utils"

	"github.com/gin-gonic/gin"
)

type HealthHandler struct {
	Reporter admin.HealthReporter
}

func NewHealthHandler(reporter admin.HealthReporter) *HealthHandler {
	return &HealthHandler{Reporter: reporter}
}

// PingHandler is the plain liveness check kept for load balancers.
func (h *HealthHandler) PingHandler(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "UP", "message": "Server is active"})
}

func (h *HealthHandler) LiveHandler(c *gin.Context) {
	utils.Success(c, http.StatusOK, gin.H{"status": "alive"})
}

// ReadyHandler reports degraded with a 200 so health checkers can read the body.
func (h *HealthHandler) ReadyHandler(c *gin.Context) {
	status := h.Reporter.Status()
	state := "ready"
	if !status.Mongo {
		state = "degraded"
	}
	utils.Success(c, http.StatusOK, gin.H{"status": state, "dbReady": status.Mongo})
}
