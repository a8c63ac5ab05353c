package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"machinery-gateway/internal/model"
	"machinery-gateway/internal/store"
)

type createMachineRequest struct {
	Name         string  `json:"nombre" binding:"required,min=1,max=200"`
	Description  *string `json:"descripcion"`
	SerialNumber string  `json:"numero_serie" binding:"required,min=1,max=200"`
	Engine       *string `json:"motor"`
}

// CreateMachine handles POST /api/machines.
func (h *Handler) CreateMachine(c *gin.Context) {
	var req createMachineRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	m := model.Machine{
		Name:         req.Name,
		Description:  req.Description,
		SerialNumber: req.SerialNumber,
		Engine:       req.Engine,
	}
	if err := h.store.CreateMachine(c.Request.Context(), &m); err != nil {
		writeStoreError(c, err, "machine not found", "serial number already exists")
		return
	}
	c.JSON(http.StatusCreated, m)
}

type listMachinesQuery struct {
	Skip   int    `form:"skip"`
	Limit  int    `form:"limit"`
	Search string `form:"search"`
}

// ListMachines handles GET /api/machines.
func (h *Handler) ListMachines(c *gin.Context) {
	var q listMachinesQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	machines, err := h.store.ListMachines(c.Request.Context(), store.MachineFilter{
		Search: q.Search,
		Skip:   clampSkip(q.Skip),
		Limit:  clampLimit(q.Limit, 50, 200),
	})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, machines)
}

// GetMachine handles GET /api/machines/:id.
func (h *Handler) GetMachine(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	m, err := h.store.GetMachine(c.Request.Context(), id)
	if err != nil {
		writeStoreError(c, err, "machine not found", "")
		return
	}
	c.JSON(http.StatusOK, m)
}

type updateMachineRequest struct {
	Name         *string `json:"nombre" binding:"omitempty,min=1,max=200"`
	Description  *string `json:"descripcion"`
	SerialNumber *string `json:"numero_serie" binding:"omitempty,min=1,max=200"`
	Engine       *string `json:"motor"`
}

// UpdateMachine handles PATCH /api/machines/:id. Absent fields stay
// untouched.
func (h *Handler) UpdateMachine(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	var req updateMachineRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	m, err := h.store.UpdateMachine(c.Request.Context(), id, store.MachineUpdate{
		Name:         req.Name,
		Description:  req.Description,
		SerialNumber: req.SerialNumber,
		Engine:       req.Engine,
	})
	if err != nil {
		writeStoreError(c, err, "machine not found", "serial number already exists")
		return
	}
	c.JSON(http.StatusOK, m)
}

// DeleteMachine handles DELETE /api/machines/:id. Readings of the machine
// go with it.
func (h *Handler) DeleteMachine(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	if err := h.store.DeleteMachine(c.Request.Context(), id); err != nil {
		writeStoreError(c, err, "machine not found", "")
		return
	}
	c.Status(http.StatusNoContent)
}
