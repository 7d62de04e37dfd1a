// Package client implements a REST client for the TaskKeeper API,
// used by the interactive CLI.
package client

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/atinyakov/TaskKeeper/internal/models"
	"github.com/atinyakov/TaskKeeper/internal/service"
)

// ErrUnauthorized is returned when the server refuses a request with
// 401, usually because the session token is missing or expired.
var ErrUnauthorized = errors.New("unauthorized: log in first")

// Client talks to a TaskKeeper server. The bearer token obtained from
// Login or Register is held in memory for the session.
type Client struct {
	baseURL string
	http    *http.Client
	token   string
}

// New returns a Client for the server at baseURL.
func New(baseURL string) *Client {
	return &Client{
		baseURL: baseURL,
		http:    &http.Client{Timeout: 15 * time.Second},
	}
}

// do sends method+path with an optional JSON body, attaching the
// session token when present, and decodes a JSON response into out
// (when out is non-nil and the response has a body).
func (c *Client) do(method, path string, body any, out any) error {
	var reader io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encode request: %w", err)
		}
		reader = bytes.NewReader(b)
	}

	req, err := http.NewRequest(method, c.baseURL+path, reader)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusUnauthorized {
		return ErrUnauthorized
	}
	if resp.StatusCode >= http.StatusBadRequest {
		var msg struct {
			Message string `json:"message"`
		}
		if err := json.NewDecoder(resp.Body).Decode(&msg); err == nil && msg.Message != "" {
			return fmt.Errorf("server: %s", msg.Message)
		}
		return fmt.Errorf("server returned %s", resp.Status)
	}

	if out != nil && resp.StatusCode != http.StatusNoContent {
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			return fmt.Errorf("decode response: %w", err)
		}
	}
	return nil
}

// Register creates a new account and stores the issued token for the
// session.
func (c *Client) Register(username, email, password string) (*service.AuthResult, error) {
	var result service.AuthResult
	err := c.do(http.MethodPost, "/api/auth/register", map[string]string{
		"username": username,
		"email":    email,
		"password": password,
	}, &result)
	if err != nil {
		return nil, err
	}
	c.token = result.Token
	return &result, nil
}

// Login authenticates and stores the issued token for the session.
func (c *Client) Login(username, password string) (*service.AuthResult, error) {
	var result service.AuthResult
	err := c.do(http.MethodPost, "/api/auth/login", map[string]string{
		"username": username,
		"password": password,
	}, &result)
	if err != nil {
		return nil, err
	}
	c.token = result.Token
	return &result, nil
}

// List fetches all of the user's todo items.
func (c *Client) List() ([]models.TodoItem, error) {
	var items []models.TodoItem
	if err := c.do(http.MethodGet, "/api/todo", nil, &items); err != nil {
		return nil, err
	}
	return items, nil
}

// Get fetches a single item by ID.
func (c *Client) Get(id int64) (*models.TodoItem, error) {
	var item models.TodoItem
	if err := c.do(http.MethodGet, fmt.Sprintf("/api/todo/%d", id), nil, &item); err != nil {
		return nil, err
	}
	return &item, nil
}

// Create adds a new item with an optional due date.
func (c *Client) Create(title string, dueDate *time.Time) (*models.TodoItem, error) {
	var item models.TodoItem
	body := map[string]any{"title": title}
	if dueDate != nil {
		body["dueDate"] = dueDate
	}
	if err := c.do(http.MethodPost, "/api/todo", body, &item); err != nil {
		return nil, err
	}
	return &item, nil
}

// Toggle flips the completion state of an item.
func (c *Client) Toggle(id int64) (*models.TodoItem, error) {
	var item models.TodoItem
	if err := c.do(http.MethodPatch, fmt.Sprintf("/api/todo/%d/toggle", id), nil, &item); err != nil {
		return nil, err
	}
	return &item, nil
}

// Delete removes an item.
func (c *Client) Delete(id int64) error {
	return c.do(http.MethodDelete, fmt.Sprintf("/api/todo/%d", id), nil, nil)
}

// Summary fetches the user's task counts.
func (c *Client) Summary() (*models.TodoSummary, error) {
	var summary models.TodoSummary
	if err := c.do(http.MethodGet, "/api/todo/summary", nil, &summary); err != nil {
		return nil, err
	}
	return &summary, nil
}
