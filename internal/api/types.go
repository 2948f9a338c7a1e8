// Package api provides a client for the task REST API.
package api

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
	"time"
)

// TaskID is the server-assigned task identifier.
// The server may encode it as a JSON number or a string; both decode to the same value.
type TaskID string

// UnmarshalJSON accepts both numeric and string IDs.
func (id *TaskID) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		*id = ""
		return nil
	}

	if data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return fmt.Errorf("invalid task id %s: %w", data, err)
		}
		*id = TaskID(s)
		return nil
	}

	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return fmt.Errorf("invalid task id %s: %w", data, err)
	}
	*id = TaskID(n.String())
	return nil
}

// MarshalJSON writes integer IDs back as numbers so the server sees what it sent.
func (id TaskID) MarshalJSON() ([]byte, error) {
	if _, err := strconv.ParseInt(string(id), 10, 64); err == nil {
		return []byte(id), nil
	}
	return json.Marshal(string(id))
}

// String implements fmt.Stringer.
func (id TaskID) String() string {
	return string(id)
}

// Task is a task record as returned by the server.
type Task struct {
	ID          TaskID `json:"id"`
	Title       string `json:"title"`
	Description string `json:"description"`
	Completed   bool   `json:"completed"`
	CreatedAt   string `json:"created_at,omitempty"`
}

// createdAtLayouts are tried in order. The reference server emits naive UTC
// timestamps without a zone suffix.
var createdAtLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05.999999",
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
}

// CreatedTime parses CreatedAt. It returns the zero time when the field is
// missing or in an unknown format.
func (t *Task) CreatedTime() time.Time {
	if t.CreatedAt == "" {
		return time.Time{}
	}
	for _, layout := range createdAtLayouts {
		if ts, err := time.Parse(layout, t.CreatedAt); err == nil {
			return ts
		}
	}
	return time.Time{}
}

// CreateTaskRequest represents the request body for creating a task.
type CreateTaskRequest struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	Completed   bool   `json:"completed"`
}

// UpdateTaskRequest represents the request body for updating a task.
// Nil fields are left unchanged by the server.
type UpdateTaskRequest struct {
	Title       *string `json:"title,omitempty"`
	Description *string `json:"description,omitempty"`
	Completed   *bool   `json:"completed,omitempty"`
}

// DeleteResponse is the acknowledgment returned by a delete.
type DeleteResponse struct {
	Message string `json:"message"`
	ID      TaskID `json:"id"`
}

// HealthStatus is returned by the health endpoint.
type HealthStatus struct {
	Status  string `json:"status"`
	Message string `json:"message"`
}

// String returns a pointer to s. Used to build partial update requests.
func String(s string) *string {
	return &s
}

// Bool returns a pointer to b. Used to build partial update requests.
func Bool(b bool) *bool {
	return &b
}
