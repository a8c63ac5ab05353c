package api

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"machinery-gateway/internal/proxy"
	"machinery-gateway/internal/store"
)

// Handler holds shared dependencies for API handlers.
type Handler struct {
	store      store.Store
	prediction *proxy.Client
}

// NewHandler creates a new API handler.
func NewHandler(s store.Store, prediction *proxy.Client) *Handler {
	return &Handler{
		store:      s,
		prediction: prediction,
	}
}

// pathID parses the :id path parameter. On failure it writes a 400 response
// and reports false.
func pathID(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
		return 0, false
	}
	return id, true
}

// writeStoreError maps store sentinels to status codes; anything else is a
// plain 500.
func writeStoreError(c *gin.Context, err error, notFoundMsg, conflictMsg string) {
	switch {
	case errors.Is(err, store.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": notFoundMsg})
	case errors.Is(err, store.ErrConflict):
		c.JSON(http.StatusBadRequest, gin.H{"error": conflictMsg})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
	}
}

// clampLimit keeps a page size inside [1, max], substituting def when the
// client sent nothing.
func clampLimit(limit, def, max int) int {
	if limit <= 0 {
		return def
	}
	if limit > max {
		return max
	}
	return limit
}

func clampSkip(skip int) int {
	if skip < 0 {
		return 0
	}
	return skip
}
