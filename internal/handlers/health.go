package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/solarline/quotation-service/internal/database"
)

// HealthResponse represents the health check response
type HealthResponse struct {
	Status   string `json:"status"`
	Database string `json:"database"`
}

// HealthHandler serves liveness and readiness checks.
type HealthHandler struct {
	store *database.Store
}

// NewHealthHandler creates the health handler.
func NewHealthHandler(store *database.Store) *HealthHandler {
	return &HealthHandler{store: store}
}

// Check handles GET /health.
func (h *HealthHandler) Check(c *gin.Context) {
	response := HealthResponse{Status: "ok"}

	if h.store != nil {
		if err := h.store.Ping(c.Request.Context()); err != nil {
			response.Database = "disconnected"
			c.JSON(http.StatusServiceUnavailable, response)
			return
		}
		response.Database = "connected"
	} else {
		response.Database = "not configured"
	}

	c.JSON(http.StatusOK, response)
}
