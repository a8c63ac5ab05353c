package api

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"machinery-gateway/internal/proxy"
)

// Predict handles POST /api/services/predict. The payload and the remote
// response flow through untouched; only transport failures are translated.
func (h *Handler) Predict(c *gin.Context) {
	payload, err := c.GetRawData()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "failed to read request body"})
		return
	}

	body, status, err := h.prediction.Predict(c.Request.Context(), payload)
	if err != nil {
		if errors.Is(err, proxy.ErrUnavailable) {
			c.JSON(http.StatusServiceUnavailable, gin.H{"error": "prediction service unavailable"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.Data(status, "application/json", body)
}

// ServicesStatus handles GET /api/services/status.
func (h *Handler) ServicesStatus(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"ai_module": h.prediction.Health(c.Request.Context()),
	})
}
