// Package models defines the core data structures for users and todo items.
package models

import "time"

// User represents an application user with credentials.
type User struct {
	// ID is the unique identifier for the user, assigned by the database.
	ID int64 `json:"id"`
	// Username is the login name chosen by the user.
	Username string `json:"username"`
	// Email is the user's unique email address.
	Email string `json:"email"`
	// PasswordHash is the encoded salt+key verifier, never the plaintext password.
	PasswordHash string `json:"-"`
	// CreatedAt is the time the user record was created.
	CreatedAt time.Time `json:"createdAt"`
}

// TodoItem represents a single task owned by a user.
type TodoItem struct {
	// ID is the unique identifier for the item.
	ID int64 `json:"id"`
	// Title is the task description, 1-500 characters.
	Title string `json:"title"`
	// Completed reports whether the task is done.
	Completed bool `json:"isCompleted"`
	// DueDate is the optional due date of the task.
	DueDate *time.Time `json:"dueDate,omitempty"`
	// UserID is the identifier of the owning user.
	UserID int64 `json:"userId"`
	// CreatedAt is the time the item was created.
	CreatedAt time.Time `json:"createdAt"`
}

// TodoSummary holds per-user task counts.
type TodoSummary struct {
	// Total is the number of items owned by the user.
	Total int64 `json:"total"`
	// Completed is the number of completed items.
	Completed int64 `json:"completed"`
	// Pending is Total minus Completed.
	Pending int64 `json:"pending"`
}

// TodoFilter narrows a todo listing. Nil fields are ignored.
type TodoFilter struct {
	// Completed, when set, keeps only items with a matching completion state.
	Completed *bool
	// DueDate, when set, keeps only items due on the same UTC calendar day.
	DueDate *time.Time
}
