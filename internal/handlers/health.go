package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

const welcomeMsg = "Welcome to the Top Pumping Tokens API"

// HealthResponse reports server liveness.
type HealthResponse struct {
	Status string `json:"status"`
}

type HealthHandler struct{}

func NewHealthHandler() *HealthHandler {
	return &HealthHandler{}
}

// Welcome handles GET / with a static greeting.
func (h *HealthHandler) Welcome(c *gin.Context) {
	sendSuccessMessage(c, http.StatusOK, welcomeMsg)
}

// Health checks if the server is running.
func (h *HealthHandler) Health(c *gin.Context) {
	c.JSON(http.StatusOK, HealthResponse{
		Status: "ok",
	})
}
