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

type projectRepository struct {
	db *sql.DB
}

func NewProjectRepository(db *sql.DB) outbound.ProjectRepository {
	return &projectRepository{db: db}
}

func (r *projectRepository) Create(ctx context.Context, project *entity.Project) (*entity.Project, error) {
	query := `
		INSERT INTO projects (name, description, deadline, status, manager)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, date
	`

	err := r.db.QueryRowContext(ctx, query,
		project.Name,
		project.Description,
		project.Deadline,
		project.Status,
		project.Manager,
	).Scan(&project.ID, &project.Date)

	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code == uniqueViolation {
			return nil, outbound.ErrDuplicateProject
		}
		return nil, fmt.Errorf("failed to create project: %w", err)
	}

	return project, nil
}

func (r *projectRepository) FindAll(ctx context.Context) ([]*entity.Project, error) {
	query := `
		SELECT id, name, description, date, deadline, status, manager
		FROM projects
		ORDER BY date DESC
	`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query projects: %w", err)
	}
	defer rows.Close()

	var projects []*entity.Project
	for rows.Next() {
		var project entity.Project
		err := rows.Scan(
			&project.ID,
			&project.Name,
			&project.Description,
			&project.Date,
			&project.Deadline,
			&project.Status,
			&project.Manager,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan project: %w", err)
		}
		projects = append(projects, &project)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate projects: %w", err)
	}

	return projects, nil
}

func (r *projectRepository) FindByID(ctx context.Context, id int64) (*entity.Project, error) {
	query := `
		SELECT id, name, description, date, deadline, status, manager
		FROM projects
		WHERE id = $1
	`

	var project entity.Project
	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&project.ID,
		&project.Name,
		&project.Description,
		&project.Date,
		&project.Deadline,
		&project.Status,
		&project.Manager,
	)

	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, outbound.ErrProjectNotFound
		}
		return nil, fmt.Errorf("failed to find project: %w", err)
	}

	return &project, nil
}

func (r *projectRepository) Update(ctx context.Context, id int64, update outbound.ProjectUpdate) (*entity.Project, error) {
	builder := newUpdateBuilder()
	if update.Name != nil {
		builder.Set("name", *update.Name)
	}
	if update.Description != nil {
		builder.Set("description", *update.Description)
	}
	if update.Deadline != nil {
		builder.Set("deadline", *update.Deadline)
	}
	if update.Status != nil {
		builder.Set("status", *update.Status)
	}

	if builder.Empty() {
		return r.FindByID(ctx, id)
	}

	query, args := builder.Build("projects", "id", id)
	result, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code == uniqueViolation {
			return nil, outbound.ErrDuplicateProject
		}
		return nil, fmt.Errorf("failed to update project: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return nil, fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return nil, outbound.ErrProjectNotFound
	}

	return r.FindByID(ctx, id)
}

func (r *projectRepository) Delete(ctx context.Context, id int64) error {
	query := `DELETE FROM projects WHERE id = $1`

	result, err := r.db.ExecContext(ctx, query, id)
	if err != nil {
		return fmt.Errorf("failed to delete project: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return outbound.ErrProjectNotFound
	}

	return nil
}
