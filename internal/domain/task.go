package domain

import (
	"fmt"
	"strings"
	"time"
)

// Status is the workflow state of a task.
type Status string

const (
	StatusTodo       Status = "todo"
	StatusInProgress Status = "in_progress"
	StatusCompleted  Status = "completed"
)

// Valid reports whether s is one of the known statuses.
func (s Status) Valid() bool {
	switch s {
	case StatusTodo, StatusInProgress, StatusCompleted:
		return true
	}
	return false
}

// ParseStatus converts raw input into a Status.
func ParseStatus(raw string) (Status, error) {
	s := Status(raw)
	if !s.Valid() {
		return "", fmt.Errorf("%w: status must be one of todo, in_progress, completed", ErrValidation)
	}
	return s, nil
}

// Priority is the importance of a task.
type Priority string

const (
	PriorityLow    Priority = "low"
	PriorityMedium Priority = "medium"
	PriorityHigh   Priority = "high"
)

// Valid reports whether p is one of the known priorities.
func (p Priority) Valid() bool {
	switch p {
	case PriorityLow, PriorityMedium, PriorityHigh:
		return true
	}
	return false
}

// Rank orders priorities: high=3, medium=2, low=1.
func (p Priority) Rank() int {
	switch p {
	case PriorityHigh:
		return 3
	case PriorityMedium:
		return 2
	case PriorityLow:
		return 1
	}
	return 0
}

// ParsePriority converts raw input into a Priority.
func ParsePriority(raw string) (Priority, error) {
	p := Priority(raw)
	if !p.Valid() {
		return "", fmt.Errorf("%w: priority must be one of low, medium, high", ErrValidation)
	}
	return p, nil
}

// Task is the domain entity.
// It does not depend on gin or Redis.
type Task struct {
	ID          int64
	Title       string
	Description *string
	Status      Status
	Priority    Priority

	CreatedAt time.Time
	UpdatedAt time.Time
}

// Summary formats a task as "[HIGH] title - todo".
func (t Task) Summary() string {
	return fmt.Sprintf("[%s] %s - %s", strings.ToUpper(string(t.Priority)), t.Title, t.Status)
}

// Clone returns a copy that shares no memory with t.
func (t Task) Clone() Task {
	if t.Description != nil {
		d := *t.Description
		t.Description = &d
	}
	return t
}

// NewTask holds the caller-supplied fields of a task being created.
type NewTask struct {
	Title       string
	Description *string
	Status      Status
	Priority    Priority
}

// WithDefaults fills an empty status or priority.
func (n NewTask) WithDefaults() NewTask {
	if n.Status == "" {
		n.Status = StatusTodo
	}
	if n.Priority == "" {
		n.Priority = PriorityMedium
	}
	return n
}

// OptionalString is a patch value for a nullable string field.
// Set is false when the field was absent; Value may be nil when it was null.
type OptionalString struct {
	Set   bool
	Value *string
}

// Some returns a present, non-null OptionalString.
func Some(s string) OptionalString {
	return OptionalString{Set: true, Value: &s}
}

// TaskPatch carries a partial update. Nil or unset fields are left untouched.
type TaskPatch struct {
	Title       *string
	Description OptionalString
	Status      *Status
	Priority    *Priority
}

// Apply returns t with the present patch fields written over it.
func (p TaskPatch) Apply(t Task) Task {
	if p.Title != nil {
		t.Title = *p.Title
	}
	if p.Description.Set {
		if p.Description.Value == nil {
			t.Description = nil
		} else {
			d := *p.Description.Value
			t.Description = &d
		}
	}
	if p.Status != nil {
		t.Status = *p.Status
	}
	if p.Priority != nil {
		t.Priority = *p.Priority
	}
	return t
}
