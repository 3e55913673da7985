// Package task implements the task list: an ordered, newest-first collection
// of to-do items that is mirrored to durable storage after every change.
package task

import (
	"strings"
	"time"
)

// Task is one to-do item.
type Task struct {
	ID        string    `json:"id"`
	Text      string    `json:"text"`
	Completed bool      `json:"completed"`
	CreatedAt time.Time `json:"createdAt"`
}

// Status selects a view of the list.
type Status string

const (
	StatusAll       Status = "all"
	StatusCompleted Status = "completed"
	StatusPending   Status = "pending"
)

// Statuses lists the recognized status values.
var Statuses = []Status{StatusAll, StatusCompleted, StatusPending}

// ParseStatus maps user input to a Status. Unrecognized input means all.
func ParseStatus(s string) Status {
	switch Status(strings.ToLower(strings.TrimSpace(s))) {
	case StatusCompleted:
		return StatusCompleted
	case StatusPending:
		return StatusPending
	default:
		return StatusAll
	}
}

// Matches reports whether t belongs in the view selected by s.
func (s Status) Matches(t Task) bool {
	switch s {
	case StatusCompleted:
		return t.Completed
	case StatusPending:
		return !t.Completed
	default:
		return true
	}
}

// Stats are counts derived from the list. Pending is always
// Total - Completed.
type Stats struct {
	Total     int
	Completed int
	Pending   int
}
