package outbound

import (
	"context"
	"errors"

	"github.com/taskana/taskana/domain/entity"
)

var (
	ErrTicketNotFound  = errors.New("ticket not found")
	ErrDuplicateTicket = errors.New("duplicate ticket title")
)

// TicketUpdate is a partial update; nil fields are left untouched.
type TicketUpdate struct {
	Title       *string
	Description *string
	Status      *string
	ProjectID   *int64
	AssignedTo  *int64
}

type TicketRepository interface {
	Create(ctx context.Context, ticket *entity.Ticket) (*entity.Ticket, error)
	FindAll(ctx context.Context) ([]*entity.Ticket, error)
	FindByAssignee(ctx context.Context, empNumber int64) ([]*entity.Ticket, error)
	FindByID(ctx context.Context, id int64) (*entity.Ticket, error)
	Update(ctx context.Context, id int64, update TicketUpdate) (*entity.Ticket, error)
	Delete(ctx context.Context, id int64) error
}
