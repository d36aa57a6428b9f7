package usecase

import (
	"context"
	"errors"
	"fmt"

	"github.com/taskana/taskana/application/port/inbound"
	"github.com/taskana/taskana/application/port/outbound"
	"github.com/taskana/taskana/domain/entity"
	"github.com/taskana/taskana/infrastructure/service/logger"
	"github.com/taskana/taskana/pkg/apperror"
)

type TicketUseCase struct {
	ticketRepository outbound.TicketRepository
	logger           logger.Logger
}

func NewTicketUseCase(ticketRepo outbound.TicketRepository, log logger.Logger) inbound.TicketUseCase {
	return &TicketUseCase{ticketRepository: ticketRepo, logger: log}
}

func (uc *TicketUseCase) CreateTicket(ctx context.Context, req inbound.CreateTicketRequest) (*entity.Ticket, error) {
	ticket, err := uc.ticketRepository.Create(ctx, &entity.Ticket{
		Title:       req.Title,
		Description: req.Description,
		ProjectID:   req.ProjectID,
		CreatedBy:   req.CreatedBy,
		AssignedTo:  req.AssignedTo,
	})
	if err != nil {
		if errors.Is(err, outbound.ErrDuplicateTicket) {
			return nil, apperror.BadRequest(fmt.Sprintf("Duplicate ticket: %s", req.Title))
		}
		uc.logger.Error(ctx, "failed to create ticket", err, map[string]interface{}{"title": req.Title})
		return nil, err
	}
	uc.logger.Info(ctx, "ticket created", map[string]interface{}{"id": ticket.ID})
	return ticket, nil
}

func (uc *TicketUseCase) ListTickets(ctx context.Context) ([]*entity.Ticket, error) {
	tickets, err := uc.ticketRepository.FindAll(ctx)
	if err != nil {
		uc.logger.Error(ctx, "failed to list tickets", err, nil)
		return nil, err
	}
	return tickets, nil
}

func (uc *TicketUseCase) ListAssignedTickets(ctx context.Context, empNumber int64) ([]*entity.Ticket, error) {
	tickets, err := uc.ticketRepository.FindByAssignee(ctx, empNumber)
	if err != nil {
		uc.logger.Error(ctx, "failed to list assigned tickets", err, map[string]interface{}{"empNumber": empNumber})
		return nil, err
	}
	return tickets, nil
}

func (uc *TicketUseCase) GetTicket(ctx context.Context, id int64) (*entity.Ticket, error) {
	ticket, err := uc.ticketRepository.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, outbound.ErrTicketNotFound) {
			return nil, apperror.NotFound("No ticket found!")
		}
		uc.logger.Error(ctx, "failed to get ticket", err, map[string]interface{}{"id": id})
		return nil, err
	}
	return ticket, nil
}

// UpdateTicket allows an admin, the ticket's creator, or its current assignee
// to modify the ticket. The allowed identity set is data-dependent, so it is
// checked against the fetched row instead of a route guard.
func (uc *TicketUseCase) UpdateTicket(ctx context.Context, id int64, update outbound.TicketUpdate, actor outbound.TokenClaims) (*entity.Ticket, error) {
	found, err := uc.GetTicket(ctx, id)
	if err != nil {
		return nil, err
	}
	if !actor.IsAdmin && found.CreatedBy != actor.EmpNumber && found.AssignedTo != actor.EmpNumber {
		return nil, apperror.Unauthorized("")
	}

	ticket, err := uc.ticketRepository.Update(ctx, id, update)
	if err != nil {
		if errors.Is(err, outbound.ErrTicketNotFound) {
			return nil, apperror.NotFound("No ticket found!")
		}
		uc.logger.Error(ctx, "failed to update ticket", err, map[string]interface{}{"id": id})
		return nil, err
	}
	return ticket, nil
}

// DeleteTicket allows an admin or the ticket's creator to remove it.
func (uc *TicketUseCase) DeleteTicket(ctx context.Context, id int64, actor outbound.TokenClaims) error {
	found, err := uc.GetTicket(ctx, id)
	if err != nil {
		return err
	}
	if !actor.IsAdmin && found.CreatedBy != actor.EmpNumber {
		return apperror.Unauthorized("")
	}

	if err := uc.ticketRepository.Delete(ctx, id); err != nil {
		if errors.Is(err, outbound.ErrTicketNotFound) {
			return apperror.NotFound("No ticket found!")
		}
		uc.logger.Error(ctx, "failed to delete ticket", err, map[string]interface{}{"id": id})
		return err
	}
	return nil
}
