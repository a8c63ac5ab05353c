package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"machinery-gateway/internal/model"
	"machinery-gateway/internal/store"
)

type createUserRequest struct {
	Name     string  `json:"name" binding:"required,min=1,max=100"`
	Code     string  `json:"code" binding:"required,min=1,max=100"`
	Role     string  `json:"role" binding:"omitempty,oneof=OPERADOR ADMINISTRADOR"`
	Password *string `json:"password" binding:"omitempty,min=6"`
}

// CreateUser handles POST /api/users.
func (h *Handler) CreateUser(c *gin.Context) {
	var req createUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if req.Role == "" {
		req.Role = model.RoleOperator
	}

	u := model.User{Name: req.Name, Code: req.Code, Role: req.Role}
	if err := h.store.CreateUser(c.Request.Context(), &u, req.Password); err != nil {
		writeStoreError(c, err, "user not found", "code already in use")
		return
	}
	c.JSON(http.StatusCreated, u)
}

type listUsersQuery struct {
	Skip   int    `form:"skip"`
	Limit  int    `form:"limit"`
	Role   string `form:"role"`
	Search string `form:"search"`
}

// ListUsers handles GET /api/users.
func (h *Handler) ListUsers(c *gin.Context) {
	var q listUsersQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	users, err := h.store.ListUsers(c.Request.Context(), store.UserFilter{
		Role:   q.Role,
		Search: q.Search,
		Skip:   clampSkip(q.Skip),
		Limit:  clampLimit(q.Limit, 50, 200),
	})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, users)
}

type loginRequest struct {
	Name string `json:"name" binding:"required"`
	Code string `json:"code" binding:"required"`
}

// Login handles POST /api/users/login. A failed lookup and a wrong code get
// the same answer.
func (h *Handler) Login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	u, err := h.store.Authenticate(c.Request.Context(), req.Name, req.Code)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid credentials"})
		return
	}
	c.JSON(http.StatusOK, u)
}

// GetUser handles GET /api/users/:id.
func (h *Handler) GetUser(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	u, err := h.store.GetUser(c.Request.Context(), id)
	if err != nil {
		writeStoreError(c, err, "user not found", "")
		return
	}
	c.JSON(http.StatusOK, u)
}

type updateUserRequest struct {
	Name     *string `json:"name" binding:"omitempty,min=1,max=100"`
	Code     *string `json:"code" binding:"omitempty,min=1,max=100"`
	Role     *string `json:"role" binding:"omitempty,oneof=OPERADOR ADMINISTRADOR"`
	Password *string `json:"password" binding:"omitempty,min=4"`
}

// UpdateUser handles PATCH /api/users/:id. Absent fields stay untouched.
func (h *Handler) UpdateUser(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	var req updateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	u, err := h.store.UpdateUser(c.Request.Context(), id, store.UserUpdate{
		Name:     req.Name,
		Code:     req.Code,
		Role:     req.Role,
		Password: req.Password,
	})
	if err != nil {
		writeStoreError(c, err, "user not found", "code already in use")
		return
	}
	c.JSON(http.StatusOK, u)
}

// DeleteUser handles DELETE /api/users/:id.
func (h *Handler) DeleteUser(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	if err := h.store.DeleteUser(c.Request.Context(), id); err != nil {
		writeStoreError(c, err, "user not found", "")
		return
	}
	c.Status(http.StatusNoContent)
}
