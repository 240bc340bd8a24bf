package domain

import (
	"fmt"
	"time"
)

type TaskStatus string

const (
	TaskStatusPending   TaskStatus = "pending"
	TaskStatusCompleted TaskStatus = "completed"
)

func (s TaskStatus) IsValid() bool {
	switch s {
	case TaskStatusPending, TaskStatusCompleted:
		return true
	default:
		return false
	}
}

func (s TaskStatus) String() string {
	return string(s)
}

func ParseTaskStatus(status string) (TaskStatus, error) {
	s := TaskStatus(status)

	if !s.IsValid() {
		return "", fmt.Errorf("%w: %q", ErrInvalidStatus, status)
	}

	return s, nil
}

// Task is a work item owned by exactly one user. OwnerID is set once on
// creation and never rewritten.
type Task struct {
	ID          int64
	Title       string
	Description *string
	Status      TaskStatus
	OwnerID     int64
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// TaskPatch carries a partial update. Nil fields are left untouched.
type TaskPatch struct {
	Title       *string
	Description *string
	Status      *TaskStatus
}

func (p TaskPatch) IsEmpty() bool {
	return p.Title == nil && p.Description == nil && p.Status == nil
}

// ApplyTo copies the present fields onto t and reports the names of the
// fields that changed.
func (p TaskPatch) ApplyTo(t *Task) ([]string, error) {
	var changed []string

	if p.Status != nil && !p.Status.IsValid() {
		return nil, fmt.Errorf("%w: %q", ErrInvalidStatus, *p.Status)
	}

	if p.Title != nil && *p.Title != t.Title {
		t.Title = *p.Title
		changed = append(changed, "title")
	}

	if p.Description != nil && (t.Description == nil || *p.Description != *t.Description) {
		description := *p.Description
		t.Description = &description
		changed = append(changed, "description")
	}

	if p.Status != nil && *p.Status != t.Status {
		t.Status = *p.Status
		changed = append(changed, "status")
	}

	return changed, nil
}

type TaskPage struct {
	Items     []Task
	Total     int
	Page      int
	Limit     int
	PageCount int
}
