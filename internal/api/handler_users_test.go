package api

import (
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"machinery-gateway/internal/model"
)

func TestUserLifecycle(t *testing.T) {
	r, _ := newTestRouter(t, "http://127.0.0.1:1")

	// Create.
	w := doJSON(t, r, http.MethodPost, "/api/users", map[string]any{
		"name":     "Alice",
		"code":     "A-100",
		"password": "secret-pass",
	})
	require.Equal(t, http.StatusCreated, w.Code)
	created := decodeBody[model.User](t, w)
	require.NotZero(t, created.ID)
	assert.Equal(t, model.RoleOperator, created.Role) // default role
	assert.NotContains(t, w.Body.String(), "secret-pass")
	assert.NotContains(t, w.Body.String(), "hashed_password")

	// Get round-trips the created entity.
	w = doJSON(t, r, http.MethodGet, fmt.Sprintf("/api/users/%d", created.ID), nil)
	require.Equal(t, http.StatusOK, w.Code)
	got := decodeBody[model.User](t, w)
	assert.Equal(t, created.ID, got.ID)
	assert.Equal(t, "Alice", got.Name)

	// Login.
	w = doJSON(t, r, http.MethodPost, "/api/users/login", map[string]string{"name": "Alice", "code": "A-100"})
	require.Equal(t, http.StatusOK, w.Code)

	w = doJSON(t, r, http.MethodPost, "/api/users/login", map[string]string{"name": "Alice", "code": "wrong"})
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	// Unknown name answers exactly like a wrong code.
	w = doJSON(t, r, http.MethodPost, "/api/users/login", map[string]string{"name": "Mallory", "code": "A-100"})
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	// Empty patch leaves everything unchanged.
	w = doJSON(t, r, http.MethodPatch, fmt.Sprintf("/api/users/%d", created.ID), map[string]any{})
	require.Equal(t, http.StatusOK, w.Code)
	got = decodeBody[model.User](t, w)
	assert.Equal(t, "Alice", got.Name)
	assert.Equal(t, "A-100", got.Code)

	// Single-field patch.
	w = doJSON(t, r, http.MethodPatch, fmt.Sprintf("/api/users/%d", created.ID), map[string]any{"role": model.RoleAdministrator})
	require.Equal(t, http.StatusOK, w.Code)
	got = decodeBody[model.User](t, w)
	assert.Equal(t, model.RoleAdministrator, got.Role)
	assert.Equal(t, "Alice", got.Name)

	// Delete, then 404.
	w = doJSON(t, r, http.MethodDelete, fmt.Sprintf("/api/users/%d", created.ID), nil)
	require.Equal(t, http.StatusNoContent, w.Code)
	w = doJSON(t, r, http.MethodGet, fmt.Sprintf("/api/users/%d", created.ID), nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
	w = doJSON(t, r, http.MethodDelete, fmt.Sprintf("/api/users/%d", created.ID), nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestCreateUserValidation(t *testing.T) {
	r, _ := newTestRouter(t, "http://127.0.0.1:1")

	// Missing required fields.
	w := doJSON(t, r, http.MethodPost, "/api/users", map[string]any{"name": "Alice"})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	// Unknown role.
	w = doJSON(t, r, http.MethodPost, "/api/users", map[string]any{
		"name": "Alice", "code": "A-100", "role": "SUPERUSER",
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	// Too-short password.
	w = doJSON(t, r, http.MethodPost, "/api/users", map[string]any{
		"name": "Alice", "code": "A-100", "password": "abc",
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestUserCodeConflictOverHTTP(t *testing.T) {
	r, _ := newTestRouter(t, "http://127.0.0.1:1")

	w := doJSON(t, r, http.MethodPost, "/api/users", map[string]any{"name": "Alice", "code": "A-100"})
	require.Equal(t, http.StatusCreated, w.Code)
	alice := decodeBody[model.User](t, w)

	w = doJSON(t, r, http.MethodPost, "/api/users", map[string]any{"name": "Bob", "code": "B-200"})
	require.Equal(t, http.StatusCreated, w.Code)
	bob := decodeBody[model.User](t, w)

	// Duplicate code on create.
	w = doJSON(t, r, http.MethodPost, "/api/users", map[string]any{"name": "Eve", "code": "A-100"})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	// Duplicate code on update.
	w = doJSON(t, r, http.MethodPatch, fmt.Sprintf("/api/users/%d", bob.ID), map[string]any{"code": alice.Code})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestListUsersQueryParams(t *testing.T) {
	r, _ := newTestRouter(t, "http://127.0.0.1:1")

	for i := 0; i < 5; i++ {
		w := doJSON(t, r, http.MethodPost, "/api/users", map[string]any{
			"name": fmt.Sprintf("Operator %d", i),
			"code": fmt.Sprintf("OP-%03d", i),
		})
		require.Equal(t, http.StatusCreated, w.Code)
	}

	w := doJSON(t, r, http.MethodGet, "/api/users?limit=2", nil)
	require.Equal(t, http.StatusOK, w.Code)
	page := decodeBody[[]model.User](t, w)
	assert.Len(t, page, 2)

	w = doJSON(t, r, http.MethodGet, "/api/users?skip=4&limit=2", nil)
	require.Equal(t, http.StatusOK, w.Code)
	page = decodeBody[[]model.User](t, w)
	assert.Len(t, page, 1)

	w = doJSON(t, r, http.MethodGet, "/api/users?search=op-003", nil)
	require.Equal(t, http.StatusOK, w.Code)
	page = decodeBody[[]model.User](t, w)
	require.Len(t, page, 1)
	assert.Equal(t, "Operator 3", page[0].Name)
}
