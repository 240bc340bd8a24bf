package port

import (
	"context"

	"taskmanager/internal/core/domain"
)

// TaskRepository persists tasks. Every read and write is scoped to an owner
// and there is no lookup by task id alone.
type TaskRepository interface {
	Create(ctx context.Context, task domain.Task) (domain.Task, error)
	FindAllByOwner(ctx context.Context, ownerID int64, window domain.PageWindow) ([]domain.Task, int, error)
	FindByIDForOwner(ctx context.Context, ownerID, taskID int64) (domain.Task, error)
	UpdateForOwner(ctx context.Context, ownerID int64, task domain.Task) (domain.Task, error)
	DeleteForOwner(ctx context.Context, ownerID, taskID int64) error
}

type TaskService interface {
	Create(ctx context.Context, ownerID int64, title string, description *string) (domain.Task, error)
	List(ctx context.Context, ownerID int64, page, limit int) (domain.TaskPage, error)
	Get(ctx context.Context, ownerID, taskID int64) (domain.Task, error)
	Update(ctx context.Context, ownerID, taskID int64, patch domain.TaskPatch) (domain.Task, error)
	Remove(ctx context.Context, ownerID, taskID int64) error
}
