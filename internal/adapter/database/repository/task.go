package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	sq "github.com/Masterminds/squirrel"

	"taskmanager/internal/adapter/database"
	"taskmanager/internal/core/domain"
	"taskmanager/internal/core/port"
)

var taskColumns = []string{"id", "title", "description", "status", "user_id", "created_at", "updated_at"}

type TaskRepository struct {
	db *database.DB
}

func NewTaskRepository(db *database.DB) port.TaskRepository {
	return &TaskRepository{db: db}
}

func utcNow() time.Time {
	return time.Now().UTC()
}

// ownedBy is the compound predicate every single-task statement carries.
func ownedBy(ownerID, taskID int64) sq.Eq {
	return sq.Eq{"id": taskID, "user_id": ownerID}
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanTask(row rowScanner) (domain.Task, error) {
	var (
		task        domain.Task
		description sql.NullString
		status      string
	)

	err := row.Scan(
		&task.ID,
		&task.Title,
		&description,
		&status,
		&task.OwnerID,
		&task.CreatedAt,
		&task.UpdatedAt,
	)

	if err != nil {
		return domain.Task{}, err
	}

	if description.Valid {
		task.Description = &description.String
	}

	task.Status = domain.TaskStatus(status)
	task.CreatedAt = task.CreatedAt.UTC()
	task.UpdatedAt = task.UpdatedAt.UTC()

	return task, nil
}

func (tr *TaskRepository) Create(ctx context.Context, task domain.Task) (domain.Task, error) {
	if task.CreatedAt.IsZero() {
		task.CreatedAt = utcNow()
	}

	if task.UpdatedAt.IsZero() {
		task.UpdatedAt = task.CreatedAt
	}

	if task.Status == "" {
		task.Status = domain.TaskStatusPending
	}

	task.CreatedAt = task.CreatedAt.UTC()
	task.UpdatedAt = task.UpdatedAt.UTC()

	query := tr.db.QueryBuilder.Insert("tasks").
		Columns("title", "description", "status", "user_id", "created_at", "updated_at").
		Values(task.Title, task.Description, string(task.Status), task.OwnerID, task.CreatedAt, task.UpdatedAt).
		Suffix("RETURNING id")

	stmt, args, err := query.ToSql()

	if err != nil {
		return domain.Task{}, err
	}

	if err := tr.db.QueryRowContext(ctx, stmt, args...).Scan(&task.ID); err != nil {
		return domain.Task{}, fmt.Errorf("create task: %w", err)
	}

	return task, nil
}

// FindAllByOwner returns one page of the owner's tasks, newest first, and the
// owner's total task count.
func (tr *TaskRepository) FindAllByOwner(ctx context.Context, ownerID int64, window domain.PageWindow) ([]domain.Task, int, error) {
	countStmt, countArgs, err := tr.db.QueryBuilder.Select("COUNT(*)").
		From("tasks").
		Where(sq.Eq{"user_id": ownerID}).
		ToSql()

	if err != nil {
		return nil, 0, err
	}

	var total int

	if err := tr.db.QueryRowContext(ctx, countStmt, countArgs...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count tasks: %w", err)
	}

	if total == 0 || window.Skip() >= total {
		return []domain.Task{}, total, nil
	}

	tasks := make([]domain.Task, 0, min(window.Take(), total-window.Skip()))

	query := tr.db.QueryBuilder.Select(taskColumns...).
		From("tasks").
		Where(sq.Eq{"user_id": ownerID}).
		OrderBy("created_at DESC", "id DESC").
		Limit(uint64(window.Take())).
		Offset(uint64(window.Skip()))

	stmt, args, err := query.ToSql()

	if err != nil {
		return nil, 0, err
	}

	rows, err := tr.db.QueryContext(ctx, stmt, args...)

	if err != nil {
		return nil, 0, fmt.Errorf("list tasks: %w", err)
	}

	defer rows.Close()

	for rows.Next() {
		task, err := scanTask(rows)

		if err != nil {
			return nil, 0, fmt.Errorf("scan task: %w", err)
		}

		tasks = append(tasks, task)
	}

	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("list tasks: %w", err)
	}

	return tasks, total, nil
}

func (tr *TaskRepository) FindByIDForOwner(ctx context.Context, ownerID, taskID int64) (domain.Task, error) {
	query := tr.db.QueryBuilder.Select(taskColumns...).
		From("tasks").
		Where(ownedBy(ownerID, taskID)).
		Limit(1)

	stmt, args, err := query.ToSql()

	if err != nil {
		return domain.Task{}, err
	}

	task, err := scanTask(tr.db.QueryRowContext(ctx, stmt, args...))

	if errors.Is(err, sql.ErrNoRows) {
		return domain.Task{}, domain.ErrNotFound
	}

	if err != nil {
		return domain.Task{}, fmt.Errorf("get task: %w", err)
	}

	return task, nil
}

// UpdateForOwner writes title, description and status. The owner column is
// never part of the SET clause.
func (tr *TaskRepository) UpdateForOwner(ctx context.Context, ownerID int64, task domain.Task) (domain.Task, error) {
	task.UpdatedAt = utcNow()

	query := tr.db.QueryBuilder.Update("tasks").
		Set("title", task.Title).
		Set("description", task.Description).
		Set("status", string(task.Status)).
		Set("updated_at", task.UpdatedAt).
		Where(ownedBy(ownerID, task.ID))

	stmt, args, err := query.ToSql()

	if err != nil {
		return domain.Task{}, err
	}

	result, err := tr.db.ExecContext(ctx, stmt, args...)

	if err != nil {
		return domain.Task{}, fmt.Errorf("update task: %w", err)
	}

	if err := requireAffected(result); err != nil {
		return domain.Task{}, err
	}

	task.OwnerID = ownerID

	return task, nil
}

func (tr *TaskRepository) DeleteForOwner(ctx context.Context, ownerID, taskID int64) error {
	stmt, args, err := tr.db.QueryBuilder.Delete("tasks").
		Where(ownedBy(ownerID, taskID)).
		ToSql()

	if err != nil {
		return err
	}

	result, err := tr.db.ExecContext(ctx, stmt, args...)

	if err != nil {
		return fmt.Errorf("delete task: %w", err)
	}

	return requireAffected(result)
}

func requireAffected(result sql.Result) error {
	rowsAffected, err := result.RowsAffected()

	if err != nil {
		return fmt.Errorf("rows affected: %w", err)
	}

	if rowsAffected == 0 {
		return domain.ErrNotFound
	}

	return nil
}
