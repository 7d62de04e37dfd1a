package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/atinyakov/TaskKeeper/internal/models"
)

// maxTitleLength is the longest accepted todo title.
const maxTitleLength = 500

// ErrInvalidTitle is returned when a todo title is empty after trimming
// or longer than 500 characters.
var ErrInvalidTitle = errors.New("title must be between 1 and 500 characters")

// TodoRepository defines the persistence operations needed by the TodoService.
// Every operation is scoped to the owning user's identifier.
type TodoRepository interface {
	// ListByUser retrieves all items belonging to the user, newest first.
	ListByUser(ctx context.Context, userID int64) ([]models.TodoItem, error)
	// Filter retrieves the user's items matching the filter, newest first.
	Filter(ctx context.Context, userID int64, filter models.TodoFilter) ([]models.TodoItem, error)
	// GetByID fetches a single item by ID for the user, or repository.ErrNotFound.
	GetByID(ctx context.Context, userID, id int64) (*models.TodoItem, error)
	// Summary returns the user's item counts.
	Summary(ctx context.Context, userID int64) (*models.TodoSummary, error)
	// Create inserts a new item, assigning its identifier.
	Create(ctx context.Context, item *models.TodoItem) (*models.TodoItem, error)
	// Update rewrites the item's mutable fields, or repository.ErrNotFound.
	Update(ctx context.Context, item *models.TodoItem) error
	// Delete removes the user's item, or repository.ErrNotFound.
	Delete(ctx context.Context, userID, id int64) error
	// Toggle flips the item's completion state and returns the updated item.
	Toggle(ctx context.Context, userID, id int64) (*models.TodoItem, error)
}

// TodoService implements todo business logic for authenticated users.
type TodoService struct {
	// repo is the underlying persistence repository.
	repo TodoRepository
}

// NewTodoService constructs a TodoService with the provided TodoRepository.
func NewTodoService(repo TodoRepository) *TodoService {
	return &TodoService{repo: repo}
}

// validTitle trims the title and checks its length. Returns the trimmed
// title and ErrInvalidTitle when it is empty or too long.
func validTitle(title string) (string, error) {
	trimmed := strings.TrimSpace(title)
	if trimmed == "" || len(trimmed) > maxTitleLength {
		return "", ErrInvalidTitle
	}
	return trimmed, nil
}

// List returns all items owned by the user.
func (s *TodoService) List(ctx context.Context, userID int64) ([]models.TodoItem, error) {
	return s.repo.ListByUser(ctx, userID)
}

// Filter returns the user's items matching the filter.
func (s *TodoService) Filter(ctx context.Context, userID int64, filter models.TodoFilter) ([]models.TodoItem, error) {
	return s.repo.Filter(ctx, userID, filter)
}

// GetByID returns the user's item with the given ID.
func (s *TodoService) GetByID(ctx context.Context, userID, id int64) (*models.TodoItem, error) {
	return s.repo.GetByID(ctx, userID, id)
}

// Summary returns the user's task counts.
func (s *TodoService) Summary(ctx context.Context, userID int64) (*models.TodoSummary, error) {
	return s.repo.Summary(ctx, userID)
}

// Create validates the title and inserts a new, not-yet-completed item
// for the user.
func (s *TodoService) Create(ctx context.Context, userID int64, title string, dueDate *time.Time) (*models.TodoItem, error) {
	trimmed, err := validTitle(title)
	if err != nil {
		return nil, err
	}
	return s.repo.Create(ctx, &models.TodoItem{
		Title:   trimmed,
		DueDate: dueDate,
		UserID:  userID,
	})
}

// Update validates the title and rewrites the user's item.
func (s *TodoService) Update(ctx context.Context, userID, id int64, title string, dueDate *time.Time, completed bool) error {
	trimmed, err := validTitle(title)
	if err != nil {
		return err
	}
	return s.repo.Update(ctx, &models.TodoItem{
		ID:        id,
		Title:     trimmed,
		DueDate:   dueDate,
		Completed: completed,
		UserID:    userID,
	})
}

// Delete removes the user's item.
func (s *TodoService) Delete(ctx context.Context, userID, id int64) error {
	return s.repo.Delete(ctx, userID, id)
}

// Toggle flips the completion state of the user's item.
func (s *TodoService) Toggle(ctx context.Context, userID, id int64) (*models.TodoItem, error) {
	return s.repo.Toggle(ctx, userID, id)
}
