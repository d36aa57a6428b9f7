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

type ticketRepository struct {
	db *sql.DB
}

func NewTicketRepository(db *sql.DB) outbound.TicketRepository {
	return &ticketRepository{db: db}
}

// ticketColumns joins in the project name and the assignee's first name so
// listings can render without extra round trips.
const ticketColumns = `
	t.id, t.title, t.description, t.status, t.date,
	t.project_id, COALESCE(p.name, ''),
	t.created_by, t.assigned_to, COALESCE(u.first_name, '')
`

const ticketJoins = `
	FROM tickets t
	LEFT JOIN projects p ON p.id = t.project_id
	LEFT JOIN users u ON u.emp_number = t.assigned_to
`

func scanTicket(row interface{ Scan(...interface{}) error }) (*entity.Ticket, error) {
	var ticket entity.Ticket
	err := row.Scan(
		&ticket.ID,
		&ticket.Title,
		&ticket.Description,
		&ticket.Status,
		&ticket.Date,
		&ticket.ProjectID,
		&ticket.ProjectName,
		&ticket.CreatedBy,
		&ticket.AssignedTo,
		&ticket.AssignedName,
	)
	if err != nil {
		return nil, err
	}
	return &ticket, nil
}

func (r *ticketRepository) Create(ctx context.Context, ticket *entity.Ticket) (*entity.Ticket, error) {
	query := `
		INSERT INTO tickets (title, description, project_id, created_by, assigned_to)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id
	`

	err := r.db.QueryRowContext(ctx, query,
		ticket.Title,
		ticket.Description,
		ticket.ProjectID,
		ticket.CreatedBy,
		ticket.AssignedTo,
	).Scan(&ticket.ID)

	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code == uniqueViolation {
			return nil, outbound.ErrDuplicateTicket
		}
		return nil, fmt.Errorf("failed to create ticket: %w", err)
	}

	return r.FindByID(ctx, ticket.ID)
}

func (r *ticketRepository) FindAll(ctx context.Context) ([]*entity.Ticket, error) {
	query := "SELECT " + ticketColumns + ticketJoins + " ORDER BY t.date DESC"

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query tickets: %w", err)
	}
	defer rows.Close()

	return collectTickets(rows)
}

func (r *ticketRepository) FindByAssignee(ctx context.Context, empNumber int64) ([]*entity.Ticket, error) {
	query := "SELECT " + ticketColumns + ticketJoins + " WHERE t.assigned_to = $1 ORDER BY t.date DESC"

	rows, err := r.db.QueryContext(ctx, query, empNumber)
	if err != nil {
		return nil, fmt.Errorf("failed to query assigned tickets: %w", err)
	}
	defer rows.Close()

	return collectTickets(rows)
}

func collectTickets(rows *sql.Rows) ([]*entity.Ticket, error) {
	var tickets []*entity.Ticket
	for rows.Next() {
		ticket, err := scanTicket(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan ticket: %w", err)
		}
		tickets = append(tickets, ticket)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate tickets: %w", err)
	}

	return tickets, nil
}

func (r *ticketRepository) FindByID(ctx context.Context, id int64) (*entity.Ticket, error) {
	query := "SELECT " + ticketColumns + ticketJoins + " WHERE t.id = $1"

	ticket, err := scanTicket(r.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, outbound.ErrTicketNotFound
		}
		return nil, fmt.Errorf("failed to find ticket: %w", err)
	}

	return ticket, nil
}

func (r *ticketRepository) Update(ctx context.Context, id int64, update outbound.TicketUpdate) (*entity.Ticket, error) {
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
	if update.ProjectID != nil {
		builder.Set("project_id", *update.ProjectID)
	}
	if update.AssignedTo != nil {
		builder.Set("assigned_to", *update.AssignedTo)
	}

	if builder.Empty() {
		return r.FindByID(ctx, id)
	}

	query, args := builder.Build("tickets", "id", id)
	result, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code == uniqueViolation {
			return nil, outbound.ErrDuplicateTicket
		}
		return nil, fmt.Errorf("failed to update ticket: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return nil, fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return nil, outbound.ErrTicketNotFound
	}

	return r.FindByID(ctx, id)
}

func (r *ticketRepository) Delete(ctx context.Context, id int64) error {
	query := `DELETE FROM tickets WHERE id = $1`

	result, err := r.db.ExecContext(ctx, query, id)
	if err != nil {
		return fmt.Errorf("failed to delete ticket: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return outbound.ErrTicketNotFound
	}

	return nil
}
