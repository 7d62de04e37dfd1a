// Package repository provides persistence implementations for todo items
// using a PostgreSQL database. Every query is scoped to the owning user.
package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/atinyakov/TaskKeeper/internal/models"
)

// PostgresTodoRepository implements todo item persistence against a
// PostgreSQL database.
type PostgresTodoRepository struct {
	// DB is the database handle for executing queries and transactions.
	DB *sql.DB
}

// NewPostgresTodoRepository creates a new PostgresTodoRepository using the
// provided *sql.DB. db must be a valid connection to a PostgreSQL instance.
func NewPostgresTodoRepository(db *sql.DB) *PostgresTodoRepository {
	return &PostgresTodoRepository{DB: db}
}

const todoColumns = `id, title, completed, due_date, user_id, created_at`

// scanTodo reads one todo row into a models.TodoItem.
func scanTodo(row interface{ Scan(...any) error }) (*models.TodoItem, error) {
	var item models.TodoItem
	var due sql.NullTime
	if err := row.Scan(&item.ID, &item.Title, &item.Completed, &due, &item.UserID, &item.CreatedAt); err != nil {
		return nil, err
	}
	if due.Valid {
		t := due.Time
		item.DueDate = &t
	}
	return &item, nil
}

// ListByUser fetches all items owned by userID, newest first.
func (r *PostgresTodoRepository) ListByUser(ctx context.Context, userID int64) ([]models.TodoItem, error) {
	rows, err := r.DB.QueryContext(ctx, `
		SELECT `+todoColumns+` FROM todo_items WHERE user_id = $1 ORDER BY created_at DESC
	`, userID)
	if err != nil {
		return nil, fmt.Errorf("ListByUser: %w", err)
	}
	defer rows.Close()

	return collectTodos(rows)
}

// Filter fetches items owned by userID matching the filter, newest first.
// Nil filter fields are not applied. The due-date filter matches items due
// on the same UTC calendar day.
func (r *PostgresTodoRepository) Filter(ctx context.Context, userID int64, filter models.TodoFilter) ([]models.TodoItem, error) {
	query := `SELECT ` + todoColumns + ` FROM todo_items WHERE user_id = $1`
	args := []any{userID}

	if filter.Completed != nil {
		args = append(args, *filter.Completed)
		query += fmt.Sprintf(` AND completed = $%d`, len(args))
	}
	if filter.DueDate != nil {
		args = append(args, filter.DueDate.UTC())
		query += fmt.Sprintf(` AND due_date IS NOT NULL AND date_trunc('day', due_date AT TIME ZONE 'UTC') = date_trunc('day', ($%d AT TIME ZONE 'UTC'))`, len(args))
	}
	query += ` ORDER BY created_at DESC`

	rows, err := r.DB.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("Filter: %w", err)
	}
	defer rows.Close()

	return collectTodos(rows)
}

func collectTodos(rows *sql.Rows) ([]models.TodoItem, error) {
	var items []models.TodoItem
	for rows.Next() {
		item, err := scanTodo(rows)
		if err != nil {
			return nil, fmt.Errorf("scan: %w", err)
		}
		items = append(items, *item)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows: %w", err)
	}
	return items, nil
}

// GetByID fetches a single item by ID for the given user. An item owned
// by another user yields ErrNotFound, indistinguishable from a missing one.
func (r *PostgresTodoRepository) GetByID(ctx context.Context, userID, id int64) (*models.TodoItem, error) {
	row := r.DB.QueryRowContext(ctx, `
		SELECT `+todoColumns+` FROM todo_items WHERE id = $1 AND user_id = $2
	`, id, userID)

	item, err := scanTodo(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("GetByID: %w", err)
	}
	return item, nil
}

// Summary returns the total, completed, and pending item counts for the user.
func (r *PostgresTodoRepository) Summary(ctx context.Context, userID int64) (*models.TodoSummary, error) {
	var s models.TodoSummary
	err := r.DB.QueryRowContext(ctx, `
		SELECT COUNT(*), COUNT(*) FILTER (WHERE completed) FROM todo_items WHERE user_id = $1
	`, userID).Scan(&s.Total, &s.Completed)
	if err != nil {
		return nil, fmt.Errorf("Summary: %w", err)
	}
	s.Pending = s.Total - s.Completed
	return &s, nil
}

// Create inserts a new item for the user and returns it with the assigned
// identifier and creation timestamp.
func (r *PostgresTodoRepository) Create(ctx context.Context, item *models.TodoItem) (*models.TodoItem, error) {
	var due sql.NullTime
	if item.DueDate != nil {
		due = sql.NullTime{Time: *item.DueDate, Valid: true}
	}
	err := r.DB.QueryRowContext(ctx, `
		INSERT INTO todo_items (title, completed, due_date, user_id) VALUES ($1, $2, $3, $4) RETURNING id, created_at
	`, item.Title, item.Completed, due, item.UserID).Scan(&item.ID, &item.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("Create: %w", err)
	}
	return item, nil
}

// Update rewrites the title, due date, and completion state of the user's
// item. Returns ErrNotFound if the item does not exist for that user.
func (r *PostgresTodoRepository) Update(ctx context.Context, item *models.TodoItem) error {
	var due sql.NullTime
	if item.DueDate != nil {
		due = sql.NullTime{Time: *item.DueDate, Valid: true}
	}
	res, err := r.DB.ExecContext(ctx, `
		UPDATE todo_items SET title = $1, due_date = $2, completed = $3 WHERE id = $4 AND user_id = $5
	`, item.Title, due, item.Completed, item.ID, item.UserID)
	if err != nil {
		return fmt.Errorf("Update: %w", err)
	}
	rows, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("Update rows affected: %w", err)
	}
	if rows == 0 {
		return ErrNotFound
	}
	return nil
}

// Delete removes the user's item. Returns ErrNotFound if the item does
// not exist for that user.
func (r *PostgresTodoRepository) Delete(ctx context.Context, userID, id int64) error {
	res, err := r.DB.ExecContext(ctx, `
		DELETE FROM todo_items WHERE id = $1 AND user_id = $2
	`, id, userID)
	if err != nil {
		return fmt.Errorf("Delete: %w", err)
	}
	rows, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("Delete rows affected: %w", err)
	}
	if rows == 0 {
		return ErrNotFound
	}
	return nil
}

// Toggle flips the completion state of the user's item and returns the
// updated item. Returns ErrNotFound if the item does not exist for that user.
func (r *PostgresTodoRepository) Toggle(ctx context.Context, userID, id int64) (*models.TodoItem, error) {
	row := r.DB.QueryRowContext(ctx, `
		UPDATE todo_items SET completed = NOT completed WHERE id = $1 AND user_id = $2 RETURNING `+todoColumns+`
	`, id, userID)

	item, err := scanTodo(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("Toggle: %w", err)
	}
	return item, nil
}
