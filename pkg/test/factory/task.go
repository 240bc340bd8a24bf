package factory

import (
	"fmt"
	"sync/atomic"
	"time"

	"taskmanager/internal/core/domain"
)

var taskSeq atomic.Int64

type TaskOption func(*domain.Task)

func WithTitle(title string) TaskOption {
	return func(t *domain.Task) { t.Title = title }
}

func WithDescription(description string) TaskOption {
	return func(t *domain.Task) { t.Description = &description }
}

func WithStatus(status domain.TaskStatus) TaskOption {
	return func(t *domain.Task) { t.Status = status }
}

func WithCreatedAt(at time.Time) TaskOption {
	return func(t *domain.Task) {
		t.CreatedAt = at.UTC()
		t.UpdatedAt = at.UTC()
	}
}

// NewTask builds an unsaved pending task for ownerID.
func NewTask(ownerID int64, opts ...TaskOption) domain.Task {
	task := domain.Task{
		Title:   fmt.Sprintf("Task %d", taskSeq.Add(1)),
		Status:  domain.TaskStatusPending,
		OwnerID: ownerID,
	}

	for _, opt := range opts {
		opt(&task)
	}

	return task
}
