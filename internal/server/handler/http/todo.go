// Package http provides HTTP handlers for the todo resource.
package http

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/atinyakov/TaskKeeper/internal/middleware"
	"github.com/atinyakov/TaskKeeper/internal/models"
	"github.com/atinyakov/TaskKeeper/internal/repository"
	"github.com/atinyakov/TaskKeeper/internal/service"
)

// TodoService defines the interface for todo operations required by the
// TodoHandler. Every operation is scoped to the authenticated user's
// identifier; an item owned by another user behaves as if it does not
// exist.
type TodoService interface {
	List(ctx context.Context, userID int64) ([]models.TodoItem, error)
	Filter(ctx context.Context, userID int64, filter models.TodoFilter) ([]models.TodoItem, error)
	GetByID(ctx context.Context, userID, id int64) (*models.TodoItem, error)
	Summary(ctx context.Context, userID int64) (*models.TodoSummary, error)
	Create(ctx context.Context, userID int64, title string, dueDate *time.Time) (*models.TodoItem, error)
	Update(ctx context.Context, userID, id int64, title string, dueDate *time.Time, completed bool) error
	Delete(ctx context.Context, userID, id int64) error
	Toggle(ctx context.Context, userID, id int64) (*models.TodoItem, error)
}

// TodoHandler handles HTTP requests for todo items.
type TodoHandler struct {
	TodoService TodoService
	Log         *zap.Logger
}

// CreateTodoRequest represents the JSON payload for creating an item.
type CreateTodoRequest struct {
	Title   string     `json:"title"`
	DueDate *time.Time `json:"dueDate,omitempty"`
}

// UpdateTodoRequest represents the JSON payload for updating an item.
// ID must match the path parameter.
type UpdateTodoRequest struct {
	ID        int64      `json:"id"`
	Title     string     `json:"title"`
	DueDate   *time.Time `json:"dueDate,omitempty"`
	Completed bool       `json:"isCompleted"`
}

// identity resolves the authenticated caller. Requests that did not
// pass through the bearer middleware are refused.
func (h *TodoHandler) identity(w http.ResponseWriter, r *http.Request) (int64, bool) {
	id, ok := middleware.IdentityFromContext(r.Context())
	if !ok {
		http.Error(w, "unauthorized", http.StatusUnauthorized)
		return 0, false
	}
	return id.UserID, true
}

// itemID parses the {id} path parameter.
func itemID(r *http.Request) (int64, error) {
	return strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
}

// fail maps service errors to responses. Not-found and validation
// errors get terse bodies; everything else is logged and reported as a
// generic server failure.
func (h *TodoHandler) fail(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, repository.ErrNotFound):
		writeMessage(w, http.StatusNotFound, "not found")
	case errors.Is(err, service.ErrInvalidTitle):
		writeMessage(w, http.StatusBadRequest, err.Error())
	default:
		h.Log.Error("todo operation failed", zap.Error(err))
		writeMessage(w, http.StatusInternalServerError, "internal server error")
	}
}

// GetAll handles GET /api/todo, returning the user's items newest first.
func (h *TodoHandler) GetAll(w http.ResponseWriter, r *http.Request) {
	userID, ok := h.identity(w, r)
	if !ok {
		return
	}

	items, err := h.TodoService.List(r.Context(), userID)
	if err != nil {
		h.fail(w, err)
		return
	}
	if items == nil {
		items = []models.TodoItem{}
	}
	writeJSON(w, http.StatusOK, items)
}

// GetByID handles GET /api/todo/{id}. Items owned by other users are
// reported as 404, never 403.
func (h *TodoHandler) GetByID(w http.ResponseWriter, r *http.Request) {
	userID, ok := h.identity(w, r)
	if !ok {
		return
	}
	id, err := itemID(r)
	if err != nil {
		writeMessage(w, http.StatusBadRequest, "invalid id")
		return
	}

	item, err := h.TodoService.GetByID(r.Context(), userID, id)
	if err != nil {
		h.fail(w, err)
		return
	}
	writeJSON(w, http.StatusOK, item)
}

// Filter handles GET /api/todo/filter?completed=&dueDate=.
// completed is an optional boolean; dueDate is an optional YYYY-MM-DD
// date matched against the item's due date by UTC calendar day.
func (h *TodoHandler) Filter(w http.ResponseWriter, r *http.Request) {
	userID, ok := h.identity(w, r)
	if !ok {
		return
	}

	var filter models.TodoFilter
	if raw := r.URL.Query().Get("completed"); raw != "" {
		completed, err := strconv.ParseBool(raw)
		if err != nil {
			writeMessage(w, http.StatusBadRequest, "invalid completed value")
			return
		}
		filter.Completed = &completed
	}
	if raw := r.URL.Query().Get("dueDate"); raw != "" {
		due, err := time.ParseInLocation("2006-01-02", raw, time.UTC)
		if err != nil {
			writeMessage(w, http.StatusBadRequest, "invalid dueDate value")
			return
		}
		filter.DueDate = &due
	}

	items, err := h.TodoService.Filter(r.Context(), userID, filter)
	if err != nil {
		h.fail(w, err)
		return
	}
	if items == nil {
		items = []models.TodoItem{}
	}
	writeJSON(w, http.StatusOK, items)
}

// Summary handles GET /api/todo/summary.
func (h *TodoHandler) Summary(w http.ResponseWriter, r *http.Request) {
	userID, ok := h.identity(w, r)
	if !ok {
		return
	}

	summary, err := h.TodoService.Summary(r.Context(), userID)
	if err != nil {
		h.fail(w, err)
		return
	}
	writeJSON(w, http.StatusOK, summary)
}

// Create handles POST /api/todo, responding 201 with the created item
// and a Location header.
func (h *TodoHandler) Create(w http.ResponseWriter, r *http.Request) {
	userID, ok := h.identity(w, r)
	if !ok {
		return
	}

	var req CreateTodoRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeMessage(w, http.StatusBadRequest, "invalid request")
		return
	}

	item, err := h.TodoService.Create(r.Context(), userID, req.Title, req.DueDate)
	if err != nil {
		h.fail(w, err)
		return
	}

	w.Header().Set("Location", fmt.Sprintf("/api/todo/%d", item.ID))
	writeJSON(w, http.StatusCreated, item)
}

// Update handles PUT /api/todo/{id}, responding 204 on success. The
// body's id must match the path parameter.
func (h *TodoHandler) Update(w http.ResponseWriter, r *http.Request) {
	userID, ok := h.identity(w, r)
	if !ok {
		return
	}
	id, err := itemID(r)
	if err != nil {
		writeMessage(w, http.StatusBadRequest, "invalid id")
		return
	}

	var req UpdateTodoRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeMessage(w, http.StatusBadRequest, "invalid request")
		return
	}
	if req.ID != id {
		writeMessage(w, http.StatusBadRequest, "id mismatch")
		return
	}

	if err := h.TodoService.Update(r.Context(), userID, id, req.Title, req.DueDate, req.Completed); err != nil {
		h.fail(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// Delete handles DELETE /api/todo/{id}, responding 204 on success.
func (h *TodoHandler) Delete(w http.ResponseWriter, r *http.Request) {
	userID, ok := h.identity(w, r)
	if !ok {
		return
	}
	id, err := itemID(r)
	if err != nil {
		writeMessage(w, http.StatusBadRequest, "invalid id")
		return
	}

	if err := h.TodoService.Delete(r.Context(), userID, id); err != nil {
		h.fail(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// Toggle handles PATCH /api/todo/{id}/toggle, flipping the completion
// state and returning the updated item.
func (h *TodoHandler) Toggle(w http.ResponseWriter, r *http.Request) {
	userID, ok := h.identity(w, r)
	if !ok {
		return
	}
	id, err := itemID(r)
	if err != nil {
		writeMessage(w, http.StatusBadRequest, "invalid id")
		return
	}

	item, err := h.TodoService.Toggle(r.Context(), userID, id)
	if err != nil {
		h.fail(w, err)
		return
	}
	writeJSON(w, http.StatusOK, item)
}
