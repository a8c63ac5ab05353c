// Package predapi exposes the prediction service over HTTP: a health probe
// plus predict and train endpoints delegating to one injected classifier.
package predapi

import (
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"machinery-gateway/internal/classifier"
)

// Handler holds the prediction service dependencies.
type Handler struct {
	model     *classifier.Model
	modelPath string
}

// NewHandler creates a prediction service handler around the given model.
func NewHandler(model *classifier.Model, modelPath string) *Handler {
	return &Handler{model: model, modelPath: modelPath}
}

// NewRouter creates and configures the prediction service router.
func NewRouter(h *Handler) *gin.Engine {
	r := gin.Default()

	r.GET("/", h.Root)
	r.GET("/health", h.Health)

	v1 := r.Group("/api/v1")
	{
		v1.POST("/predict", h.Predict)
		v1.POST("/train", h.Train)
	}

	return r
}

// Root answers a liveness banner.
func (h *Handler) Root(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"message": "prediction service active"})
}

// Health reports service liveness and whether a trained model is loaded.
func (h *Handler) Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":       "healthy",
		"model_loaded": h.model.Trained(),
	})
}

type predictRequest struct {
	Features []float64      `json:"features" binding:"required"`
	Metadata map[string]any `json:"metadata"`
}

type predictResponse struct {
	Prediction float64        `json:"prediction"`
	Confidence float64        `json:"confidence"`
	Metadata   map[string]any `json:"metadata"`
}

// Predict classifies one feature vector.
func (h *Handler) Predict(c *gin.Context) {
	var req predictRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	prediction, confidence, err := h.model.Predict(req.Features)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, predictResponse{
		Prediction: prediction,
		Confidence: confidence,
		Metadata:   gin.H{"features_count": len(req.Features)},
	})
}

type trainRequest struct {
	Features [][]float64 `json:"features" binding:"required"`
	Labels   []float64   `json:"labels" binding:"required"`
}

// Train fits the model on the submitted samples and persists it.
func (h *Handler) Train(c *gin.Context) {
	var req trainRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	accuracy, err := h.model.Fit(req.Features, req.Labels)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	if err := h.model.Save(h.modelPath); err != nil {
		// The fitted model still serves predictions; only persistence failed.
		log.Printf("Warning: failed to persist model to %s: %v", h.modelPath, err)
	}

	c.JSON(http.StatusOK, gin.H{
		"status":  "success",
		"metrics": gin.H{"accuracy": accuracy},
	})
}
