package model

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

// Status is the progress state of a todo.
type Status string

const (
	StatusPending    Status = "pending"
	StatusInProgress Status = "in_progress"
	StatusCompleted  Status = "completed"
)

// Statuses lists every valid status in display order.
var Statuses = []Status{StatusPending, StatusInProgress, StatusCompleted}

var ErrInvalidStatus = errors.New("invalid status")

// ParseStatus accepts the wire names plus a few spellings people type on a
// command line ("in-progress", "done").
func ParseStatus(s string) (Status, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "pending", "todo":
		return StatusPending, nil
	case "in_progress", "in-progress", "inprogress", "doing":
		return StatusInProgress, nil
	case "completed", "done":
		return StatusCompleted, nil
	}
	return "", fmt.Errorf("%w: %q", ErrInvalidStatus, s)
}

func (s Status) Valid() bool {
	switch s {
	case StatusPending, StatusInProgress, StatusCompleted:
		return true
	}
	return false
}

// Effective maps a missing or unknown status to pending.
func (s Status) Effective() Status {
	if !s.Valid() {
		return StatusPending
	}
	return s
}

// Next cycles pending -> in_progress -> completed -> pending.
func (s Status) Next() Status {
	switch s.Effective() {
	case StatusPending:
		return StatusInProgress
	case StatusInProgress:
		return StatusCompleted
	}
	return StatusPending
}

func (s Status) Label() string {
	switch s.Effective() {
	case StatusInProgress:
		return "In progress"
	case StatusCompleted:
		return "Completed"
	}
	return "Pending"
}

// Todo is the domain model for a task record.
// ID, CreatedAt and UpdatedAt are owned by the record store.
type Todo struct {
	ID        string    `json:"id"`
	Title     string    `json:"title"`
	Content   string    `json:"content"`
	Status    Status    `json:"status,omitempty"`
	Category  []string  `json:"category"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// EffectiveStatus is the status used for display and filtering.
func (t Todo) EffectiveStatus() Status { return t.Status.Effective() }

// NewTodo is the create payload sent to a record store.
type NewTodo struct {
	Title    string   `json:"title"`
	Content  string   `json:"content"`
	Status   Status   `json:"status,omitempty"`
	Category []string `json:"category"`
}

// StatusUpdate is the partial update payload; only the status changes.
type StatusUpdate struct {
	ID     string `json:"id"`
	Status Status `json:"status"`
}

// ParseCategories splits comma separated labels, trimming each one and
// dropping the empty ones. It never fails; "" yields an empty slice.
func ParseCategories(raw string) []string {
	out := []string{}
	for _, tok := range strings.Split(raw, ",") {
		if tok = strings.TrimSpace(tok); tok != "" {
			out = append(out, tok)
		}
	}
	return out
}
