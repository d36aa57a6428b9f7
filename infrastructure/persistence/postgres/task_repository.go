package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/lib/pq"

	"github.com/taskana/taskana/application/port/outbound"
	"github.com/taskana/taskana/domain/entity"
)

type taskRepository struct {
	db *sql.DB
}

func NewTaskRepository(db *sql.DB) outbound.TaskRepository {
	return &taskRepository{db: db}
}

func (r *taskRepository) Create(ctx context.Context, task *entity.Task) (*entity.Task, error) {
	query := `
		INSERT INTO tasks (title, description, status, important, created_by)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, date
	`

	err := r.db.QueryRowContext(ctx, query,
		task.Title,
		task.Description,
		task.Status,
		task.Important,
		task.CreatedBy,
	).Scan(&task.ID, &task.Date)

	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code == uniqueViolation {
			return nil, outbound.ErrDuplicateTask
		}
		return nil, fmt.Errorf("failed to create task: %w", err)
	}

	return task, nil
}

func (r *taskRepository) FindByCreator(ctx context.Context, empNumber int64) ([]*entity.Task, error) {
	query := `
		SELECT id, title, description, status, important, date, created_by
		FROM tasks
		WHERE created_by = $1
		ORDER BY date DESC
	`

	rows, err := r.db.QueryContext(ctx, query, empNumber)
	if err != nil {
		return nil, fmt.Errorf("failed to query tasks: %w", err)
	}
	defer rows.Close()

	var tasks []*entity.Task
	for rows.Next() {
		var task entity.Task
		err := rows.Scan(
			&task.ID,
			&task.Title,
			&task.Description,
			&task.Status,
			&task.Important,
			&task.Date,
			&task.CreatedBy,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan task: %w", err)
		}
		tasks = append(tasks, &task)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate tasks: %w", err)
	}

	return tasks, nil
}

func (r *taskRepository) FindByID(ctx context.Context, id int64) (*entity.Task, error) {
	query := `
		SELECT id, title, description, status, important, date, created_by
		FROM tasks
		WHERE id = $1
	`

	var task entity.Task
	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&task.ID,
		&task.Title,
		&task.Description,
		&task.Status,
		&task.Important,
		&task.Date,
		&task.CreatedBy,
	)

	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, outbound.ErrTaskNotFound
		}
		return nil, fmt.Errorf("failed to find task: %w", err)
	}

	return &task, nil
}

func (r *taskRepository) Update(ctx context.Context, id int64, update outbound.TaskUpdate) (*entity.Task, error) {
	builder := newUpdateBuilder()
	if update.Title != nil {
		builder.Set("title", *update.Title)
	}
	if update.Description != nil {
		builder.Set("description", *update.Description)
	}
	if update.Status != nil {
		builder.Set("status", *update.Status)
	}
	if update.Important != nil {
		builder.Set("important", *update.Important)
	}

	if builder.Empty() {
		return r.FindByID(ctx, id)
	}

	query, args := builder.Build("tasks", "id", id)
	result, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code == uniqueViolation {
			return nil, outbound.ErrDuplicateTask
		}
		return nil, fmt.Errorf("failed to update task: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return nil, fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return nil, outbound.ErrTaskNotFound
	}

	return r.FindByID(ctx, id)
}

func (r *taskRepository) Delete(ctx context.Context, id int64) error {
	query := `DELETE FROM tasks WHERE id = $1`

	result, err := r.db.ExecContext(ctx, query, id)
	if err != nil {
		return fmt.Errorf("failed to delete task: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return outbound.ErrTaskNotFound
	}

	return nil
}
