package repository

import (
	"context"
	"errors"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"

	"github.com/atinyakov/TaskKeeper/internal/models"
)

func setupTodoMock(t *testing.T) (*PostgresTodoRepository, sqlmock.Sqlmock, func()) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("failed to open sqlmock database: %v", err)
	}
	repo := NewPostgresTodoRepository(db)
	cleanup := func() { db.Close() }
	return repo, mock, cleanup
}

func todoRows() *sqlmock.Rows {
	return sqlmock.NewRows([]string{"id", "title", "completed", "due_date", "user_id", "created_at"})
}

func TestListByUser(t *testing.T) {
	repo, mock, cleanup := setupTodoMock(t)
	defer cleanup()

	created := time.Now()
	due := created.Add(24 * time.Hour)
	mock.ExpectQuery(`SELECT .+ FROM todo_items WHERE user_id = \$1 ORDER BY created_at DESC`).
		WithArgs(int64(1)).
		WillReturnRows(todoRows().
			AddRow(int64(2), "buy milk", false, due, int64(1), created).
			AddRow(int64(1), "call mom", true, nil, int64(1), created.Add(-time.Hour)))

	items, err := repo.ListByUser(context.Background(), 1)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(items) != 2 {
		t.Fatalf("expected 2 items, got %d", len(items))
	}
	if items[0].Title != "buy milk" || items[0].DueDate == nil {
		t.Errorf("unexpected first item: %+v", items[0])
	}
	if items[1].DueDate != nil {
		t.Errorf("expected nil due date, got %v", items[1].DueDate)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unfulfilled expectations: %v", err)
	}
}

func TestFilter_CompletedOnly(t *testing.T) {
	repo, mock, cleanup := setupTodoMock(t)
	defer cleanup()

	completed := true
	mock.ExpectQuery(`SELECT .+ FROM todo_items WHERE user_id = \$1 AND completed = \$2 ORDER BY created_at DESC`).
		WithArgs(int64(1), true).
		WillReturnRows(todoRows().AddRow(int64(3), "done task", true, nil, int64(1), time.Now()))

	items, err := repo.Filter(context.Background(), 1, models.TodoFilter{Completed: &completed})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(items) != 1 || !items[0].Completed {
		t.Errorf("unexpected items: %+v", items)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unfulfilled expectations: %v", err)
	}
}

func TestFilter_DueDate(t *testing.T) {
	repo, mock, cleanup := setupTodoMock(t)
	defer cleanup()

	due := time.Date(2025, 7, 10, 0, 0, 0, 0, time.UTC)
	mock.ExpectQuery(`SELECT .+ FROM todo_items WHERE user_id = \$1 AND due_date IS NOT NULL AND date_trunc`).
		WithArgs(int64(1), due).
		WillReturnRows(todoRows())

	items, err := repo.Filter(context.Background(), 1, models.TodoFilter{DueDate: &due})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(items) != 0 {
		t.Errorf("expected no items, got %d", len(items))
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unfulfilled expectations: %v", err)
	}
}

func TestGetByID_NotFound(t *testing.T) {
	repo, mock, cleanup := setupTodoMock(t)
	defer cleanup()

	mock.ExpectQuery(`SELECT .+ FROM todo_items WHERE id = \$1 AND user_id = \$2`).
		WithArgs(int64(9), int64(1)).
		WillReturnRows(todoRows())

	_, err := repo.GetByID(context.Background(), 1, 9)
	if !errors.Is(err, ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unfulfilled expectations: %v", err)
	}
}

func TestSummary(t *testing.T) {
	repo, mock, cleanup := setupTodoMock(t)
	defer cleanup()

	mock.ExpectQuery(`SELECT COUNT\(\*\), COUNT\(\*\) FILTER \(WHERE completed\) FROM todo_items WHERE user_id = \$1`).
		WithArgs(int64(1)).
		WillReturnRows(sqlmock.NewRows([]string{"count", "count"}).AddRow(int64(5), int64(2)))

	summary, err := repo.Summary(context.Background(), 1)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if summary.Total != 5 || summary.Completed != 2 || summary.Pending != 3 {
		t.Errorf("unexpected summary: %+v", summary)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unfulfilled expectations: %v", err)
	}
}

func TestCreate(t *testing.T) {
	repo, mock, cleanup := setupTodoMock(t)
	defer cleanup()

	created := time.Now()
	mock.ExpectQuery(regexp.QuoteMeta(`INSERT INTO todo_items (title, completed, due_date, user_id) VALUES ($1, $2, $3, $4) RETURNING id, created_at`)).
		WithArgs("buy milk", false, nil, int64(1)).
		WillReturnRows(sqlmock.NewRows([]string{"id", "created_at"}).AddRow(int64(7), created))

	item, err := repo.Create(context.Background(), &models.TodoItem{Title: "buy milk", UserID: 1})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if item.ID != 7 {
		t.Errorf("expected assigned ID 7, got %d", item.ID)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unfulfilled expectations: %v", err)
	}
}

func TestUpdate_NotFound(t *testing.T) {
	repo, mock, cleanup := setupTodoMock(t)
	defer cleanup()

	mock.ExpectExec(`UPDATE todo_items SET title = \$1, due_date = \$2, completed = \$3 WHERE id = \$4 AND user_id = \$5`).
		WithArgs("new title", nil, true, int64(9), int64(1)).
		WillReturnResult(sqlmock.NewResult(0, 0))

	err := repo.Update(context.Background(), &models.TodoItem{ID: 9, Title: "new title", Completed: true, UserID: 1})
	if !errors.Is(err, ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unfulfilled expectations: %v", err)
	}
}

func TestDelete(t *testing.T) {
	repo, mock, cleanup := setupTodoMock(t)
	defer cleanup()

	mock.ExpectExec(`DELETE FROM todo_items WHERE id = \$1 AND user_id = \$2`).
		WithArgs(int64(3), int64(1)).
		WillReturnResult(sqlmock.NewResult(0, 1))

	if err := repo.Delete(context.Background(), 1, 3); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unfulfilled expectations: %v", err)
	}
}

func TestDelete_OtherUsersItem(t *testing.T) {
	repo, mock, cleanup := setupTodoMock(t)
	defer cleanup()

	// The row exists but belongs to someone else, so zero rows match.
	mock.ExpectExec(`DELETE FROM todo_items WHERE id = \$1 AND user_id = \$2`).
		WithArgs(int64(3), int64(2)).
		WillReturnResult(sqlmock.NewResult(0, 0))

	err := repo.Delete(context.Background(), 2, 3)
	if !errors.Is(err, ErrNotFound) {
		t.Errorf("expected ErrNotFound for cross-user delete, got %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unfulfilled expectations: %v", err)
	}
}

func TestToggle(t *testing.T) {
	repo, mock, cleanup := setupTodoMock(t)
	defer cleanup()

	mock.ExpectQuery(`UPDATE todo_items SET completed = NOT completed WHERE id = \$1 AND user_id = \$2 RETURNING`).
		WithArgs(int64(4), int64(1)).
		WillReturnRows(todoRows().AddRow(int64(4), "buy milk", true, nil, int64(1), time.Now()))

	item, err := repo.Toggle(context.Background(), 1, 4)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !item.Completed {
		t.Errorf("expected toggled item to be completed")
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unfulfilled expectations: %v", err)
	}
}
