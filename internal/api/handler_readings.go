package api

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"machinery-gateway/internal/model"
	"machinery-gateway/internal/store"
)

type createReadingRequest struct {
	MachineID        int64      `json:"maquina_id" binding:"required"`
	ReadingTimestamp *time.Time `json:"timestamp_lectura"`
	StartTimestamp   *time.Time `json:"timestamp_arranque"`
	Temperature      *float64   `json:"temperatura"`
	Vibration        *float64   `json:"vibracion"`
	Pressure         *float64   `json:"presion"`
	EngineRPM        *int       `json:"rpm_motor"`
}

// CreateReading handles POST /api/readings. The referenced machine must
// exist; a missing reading timestamp is filled with the current time.
func (h *Handler) CreateReading(c *gin.Context) {
	var req createReadingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	r := model.Reading{
		MachineID:      req.MachineID,
		StartTimestamp: req.StartTimestamp,
		Temperature:    req.Temperature,
		Vibration:      req.Vibration,
		Pressure:       req.Pressure,
		EngineRPM:      req.EngineRPM,
	}
	if req.ReadingTimestamp != nil {
		r.ReadingTimestamp = *req.ReadingTimestamp
	}

	if err := h.store.CreateReading(c.Request.Context(), &r); err != nil {
		writeStoreError(c, err, "machine not found", "")
		return
	}
	c.JSON(http.StatusCreated, r)
}

type listReadingsQuery struct {
	MachineID *int64     `form:"maquina_id"`
	From      *time.Time `form:"desde" time_format:"2006-01-02T15:04:05Z07:00"`
	To        *time.Time `form:"hasta" time_format:"2006-01-02T15:04:05Z07:00"`
	Skip      int        `form:"skip"`
	Limit     int        `form:"limit"`
}

// ListReadings handles GET /api/readings. desde/hasta bound the reading
// timestamp inclusively; results come newest first.
func (h *Handler) ListReadings(c *gin.Context) {
	var q listReadingsQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	readings, err := h.store.ListReadings(c.Request.Context(), store.ReadingFilter{
		MachineID: q.MachineID,
		From:      q.From,
		To:        q.To,
		Skip:      clampSkip(q.Skip),
		Limit:     clampLimit(q.Limit, 100, 1000),
	})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, readings)
}

// GetReading handles GET /api/readings/:id.
func (h *Handler) GetReading(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	r, err := h.store.GetReading(c.Request.Context(), id)
	if err != nil {
		writeStoreError(c, err, "reading not found", "")
		return
	}
	c.JSON(http.StatusOK, r)
}

type updateReadingRequest struct {
	ReadingTimestamp *time.Time `json:"timestamp_lectura"`
	StartTimestamp   *time.Time `json:"timestamp_arranque"`
	Temperature      *float64   `json:"temperatura"`
	Vibration        *float64   `json:"vibracion"`
	Pressure         *float64   `json:"presion"`
	EngineRPM        *int       `json:"rpm_motor"`
}

// UpdateReading handles PATCH /api/readings/:id. Absent fields stay
// untouched.
func (h *Handler) UpdateReading(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	var req updateReadingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	r, err := h.store.UpdateReading(c.Request.Context(), id, store.ReadingUpdate{
		ReadingTimestamp: req.ReadingTimestamp,
		StartTimestamp:   req.StartTimestamp,
		Temperature:      req.Temperature,
		Vibration:        req.Vibration,
		Pressure:         req.Pressure,
		EngineRPM:        req.EngineRPM,
	})
	if err != nil {
		writeStoreError(c, err, "reading not found", "")
		return
	}
	c.JSON(http.StatusOK, r)
}

// DeleteReading handles DELETE /api/readings/:id.
func (h *Handler) DeleteReading(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	if err := h.store.DeleteReading(c.Request.Context(), id); err != nil {
		writeStoreError(c, err, "reading not found", "")
		return
	}
	c.Status(http.StatusNoContent)
}
