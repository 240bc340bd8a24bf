package service

import (
	"context"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"

	"taskmanager/internal/core/domain"
	"taskmanager/internal/core/port"
	"taskmanager/pkg/logger"
	"taskmanager/pkg/tracing"
)

// TaskService is the access-gated task store. Every method takes the owner
// id of the authenticated caller and never touches another owner's rows.
type TaskService struct {
	repo    port.TaskRepository
	policy  domain.PaginationPolicy
	metrics port.Metrics
	log     *logger.Logger
}

func NewTaskService(repo port.TaskRepository, policy domain.PaginationPolicy, metrics port.Metrics, log *logger.Logger) *TaskService {
	return &TaskService{
		repo:    repo,
		policy:  policy,
		metrics: metricsOrNop(metrics),
		log:     log,
	}
}

func (ts *TaskService) Create(ctx context.Context, ownerID int64, title string, description *string) (domain.Task, error) {
	ctx, span := tracing.CreateChildSpan(ctx, "TaskService.Create", ownerAttrs(ownerID))
	defer span.End()

	if err := ctx.Err(); err != nil {
		ts.finish(ctx, span, "create", ownerID, err)
		return domain.Task{}, err
	}

	task, err := ts.repo.Create(ctx, domain.Task{
		Title:       title,
		Description: description,
		Status:      domain.TaskStatusPending,
		OwnerID:     ownerID,
	})

	ts.finish(ctx, span, "create", ownerID, err)

	if err != nil {
		return domain.Task{}, err
	}

	span.SetAttributes(attribute.Int64("task.id", task.ID))

	return task, nil
}

func (ts *TaskService) List(ctx context.Context, ownerID int64, page, limit int) (domain.TaskPage, error) {
	window := ts.policy.Window(page, limit)

	ctx, span := tracing.CreateChildSpan(ctx, "TaskService.List", append(ownerAttrs(ownerID),
		attribute.Int("pagination.page", window.Page),
		attribute.Int("pagination.limit", window.Limit),
	))
	defer span.End()

	items, total, err := ts.repo.FindAllByOwner(ctx, ownerID, window)

	ts.finish(ctx, span, "list", ownerID, err)

	if err != nil {
		return domain.TaskPage{}, err
	}

	return domain.TaskPage{
		Items:     items,
		Total:     total,
		Page:      window.Page,
		Limit:     window.Limit,
		PageCount: domain.PageCount(total, window.Limit),
	}, nil
}

func (ts *TaskService) Get(ctx context.Context, ownerID, taskID int64) (domain.Task, error) {
	ctx, span := tracing.CreateChildSpan(ctx, "TaskService.Get", taskAttrs(ownerID, taskID))
	defer span.End()

	task, err := ts.repo.FindByIDForOwner(ctx, ownerID, taskID)

	ts.finish(ctx, span, "get", ownerID, err)

	return task, err
}

// Update applies the present fields of patch. A patch that changes nothing
// returns the stored task without writing.
func (ts *TaskService) Update(ctx context.Context, ownerID, taskID int64, patch domain.TaskPatch) (domain.Task, error) {
	ctx, span := tracing.CreateChildSpan(ctx, "TaskService.Update", taskAttrs(ownerID, taskID))
	defer span.End()

	task, err := ts.update(ctx, ownerID, taskID, patch)

	ts.finish(ctx, span, "update", ownerID, err)

	if err != nil {
		return domain.Task{}, err
	}

	return task, nil
}

func (ts *TaskService) update(ctx context.Context, ownerID, taskID int64, patch domain.TaskPatch) (domain.Task, error) {
	if patch.IsEmpty() {
		return ts.repo.FindByIDForOwner(ctx, ownerID, taskID)
	}

	task, err := ts.repo.FindByIDForOwner(ctx, ownerID, taskID)

	if err != nil {
		return domain.Task{}, err
	}

	changed, err := patch.ApplyTo(&task)

	if err != nil {
		return domain.Task{}, err
	}

	if len(changed) == 0 {
		return task, nil
	}

	if err := ctx.Err(); err != nil {
		return domain.Task{}, err
	}

	return ts.repo.UpdateForOwner(ctx, ownerID, task)
}

func (ts *TaskService) Remove(ctx context.Context, ownerID, taskID int64) error {
	ctx, span := tracing.CreateChildSpan(ctx, "TaskService.Remove", taskAttrs(ownerID, taskID))
	defer span.End()

	err := ts.remove(ctx, ownerID, taskID)

	ts.finish(ctx, span, "delete", ownerID, err)

	return err
}

func (ts *TaskService) remove(ctx context.Context, ownerID, taskID int64) error {
	if _, err := ts.repo.FindByIDForOwner(ctx, ownerID, taskID); err != nil {
		return err
	}

	if err := ctx.Err(); err != nil {
		return err
	}

	return ts.repo.DeleteForOwner(ctx, ownerID, taskID)
}

// finish records the outcome on the span and in metrics. Only unexpected
// errors are logged; not-found and invalid input are normal traffic.
func (ts *TaskService) finish(ctx context.Context, span trace.Span, operation string, ownerID int64, err error) {
	if err == nil {
		ts.metrics.RecordTaskOperation(ctx, operation, outcomeSuccess)
		return
	}

	tracing.AddSpanError(span, err)

	outcome := outcomeOf(err)
	ts.metrics.RecordTaskOperation(ctx, operation, outcome)

	if outcome == outcomeError {
		ts.log.Ctx(ctx).Error("Task operation failed",
			zap.String("operation", operation),
			zap.Int64("user_id", ownerID),
			zap.Error(err))
	}
}

func ownerAttrs(ownerID int64) []attribute.KeyValue {
	return []attribute.KeyValue{attribute.Int64("user.id", ownerID)}
}

func taskAttrs(ownerID, taskID int64) []attribute.KeyValue {
	return append(ownerAttrs(ownerID), attribute.Int64("task.id", taskID))
}
