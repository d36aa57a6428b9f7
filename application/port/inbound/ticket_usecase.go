package inbound

import (
	"context"

	"github.com/taskana/taskana/application/port/outbound"
	"github.com/taskana/taskana/domain/entity"
)

type CreateTicketRequest struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	ProjectID   int64  `json:"projectId"`
	AssignedTo  int64  `json:"assignedTo"`
	CreatedBy   int64  `json:"-"`
}

// TicketUseCase enforces the data-dependent ownership rules: update is open to
// an admin, the creator, or the current assignee; delete to an admin or the
// creator. Both take the caller's identity for that reason.
type TicketUseCase interface {
	CreateTicket(ctx context.Context, req CreateTicketRequest) (*entity.Ticket, error)
	ListTickets(ctx context.Context) ([]*entity.Ticket, error)
	ListAssignedTickets(ctx context.Context, empNumber int64) ([]*entity.Ticket, error)
	GetTicket(ctx context.Context, id int64) (*entity.Ticket, error)
	UpdateTicket(ctx context.Context, id int64, update outbound.TicketUpdate, actor outbound.TokenClaims) (*entity.Ticket, error)
	DeleteTicket(ctx context.Context, id int64, actor outbound.TokenClaims) error
}
