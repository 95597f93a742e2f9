package domain

import (
	"fmt"
	"strings"
	"time"
)

// DateLayout is the storage and display layout of a task's due date.
const DateLayout = "2006-01-02"

// Priority is the fixed set of task priorities.
type Priority string

const (
	PriorityHigh   Priority = "High"
	PriorityMedium Priority = "Medium"
	PriorityLow    Priority = "Low"
)

// Priorities returns every priority from most to least urgent.
func Priorities() []Priority {
	return []Priority{PriorityHigh, PriorityMedium, PriorityLow}
}

// ParsePriority matches s case-insensitively against the known priorities.
func ParsePriority(s string) (Priority, bool) {
	trimmed := strings.TrimSpace(s)
	for _, p := range Priorities() {
		if strings.EqualFold(trimmed, string(p)) {
			return p, true
		}
	}
	return "", false
}

// IsValid reports whether p is one of the known priorities.
func (p Priority) IsValid() bool {
	return p == PriorityHigh || p == PriorityMedium || p == PriorityLow
}

// Rank orders priorities, High first.
func (p Priority) Rank() int {
	switch p {
	case PriorityHigh:
		return 0
	case PriorityMedium:
		return 1
	case PriorityLow:
		return 2
	default:
		return 3
	}
}

// Next cycles High -> Medium -> Low -> High.
func (p Priority) Next() Priority {
	switch p {
	case PriorityHigh:
		return PriorityMedium
	case PriorityMedium:
		return PriorityLow
	default:
		return PriorityHigh
	}
}

// Status is the lifecycle state of a task.
type Status string

const (
	StatusPending   Status = "Pending"
	StatusCompleted Status = "Completed"
)

// ParseStatus matches s case-insensitively against the known statuses.
func ParseStatus(s string) (Status, bool) {
	trimmed := strings.TrimSpace(s)
	for _, st := range []Status{StatusPending, StatusCompleted} {
		if strings.EqualFold(trimmed, string(st)) {
			return st, true
		}
	}
	return "", false
}

// IsTerminal reports whether no transition leaves s.
func (s Status) IsTerminal() bool {
	return s == StatusCompleted
}

// Task is a to-do item owned by exactly one user.
type Task struct {
	ID          int64
	OwnerID     int64
	Description string
	Priority    Priority
	DueDate     time.Time
	Status      Status
	CreatedAt   time.Time
}

// NewTask creates a pending task. The due date is truncated to a calendar date.
func NewTask(ownerID int64, description string, priority Priority, dueDate time.Time) Task {
	return Task{
		OwnerID:     ownerID,
		Description: description,
		Priority:    priority,
		DueDate:     DateOf(dueDate),
		Status:      StatusPending,
	}
}

// IsValid checks if the task has valid data.
func (t Task) IsValid() bool {
	return t.OwnerID > 0 && t.Description != "" && t.Priority.IsValid()
}

// IsCompleted reports whether the task reached its terminal status.
func (t Task) IsCompleted() bool {
	return t.Status.IsTerminal()
}

// Complete returns the task with its status set to Completed.
func (t Task) Complete() Task {
	t.Status = StatusCompleted
	return t
}

// DueDateString formats the due date as YYYY-MM-DD.
func (t Task) DueDateString() string {
	return t.DueDate.Format(DateLayout)
}

// IsOverdue reports whether a pending task's due date is before today.
func (t Task) IsOverdue(now time.Time) bool {
	return !t.IsCompleted() && t.DueDate.Before(DateOf(now))
}

// String renders the task the way list rows display it.
func (t Task) String() string {
	return fmt.Sprintf("%s | %s | %s | %s", t.Description, t.Priority, t.DueDateString(), t.Status)
}

// ParseDate parses a YYYY-MM-DD calendar date.
func ParseDate(s string) (time.Time, error) {
	return time.ParseInLocation(DateLayout, strings.TrimSpace(s), time.UTC)
}

// DateOf drops the clock part of t and re-anchors its calendar date in UTC.
func DateOf(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
