package handler

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/taskana/taskana/application/port/inbound"
	"github.com/taskana/taskana/application/port/outbound"
	"github.com/taskana/taskana/domain/entity"
	"github.com/taskana/taskana/infrastructure/http/middleware"
	"github.com/taskana/taskana/infrastructure/http/response"
	"github.com/taskana/taskana/infrastructure/http/validator"
	"github.com/taskana/taskana/pkg/apperror"
)

type TicketHandler struct {
	ticketUseCase inbound.TicketUseCase
}

func NewTicketHandler(ticketUseCase inbound.TicketUseCase) *TicketHandler {
	return &TicketHandler{ticketUseCase: ticketUseCase}
}

func (h *TicketHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req inbound.CreateTicketRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request body")
		return
	}

	if violations := validator.ValidateCreateTicket(req); len(violations) > 0 {
		response.WriteError(w, apperror.Validation(violations))
		return
	}

	claims := middleware.IdentityFromContext(r.Context())
	req.CreatedBy = claims.EmpNumber

	ticket, err := h.ticketUseCase.CreateTicket(r.Context(), req)
	if err != nil {
		response.WriteError(w, err)
		return
	}
	response.WriteJSON(w, http.StatusCreated, map[string]interface{}{"ticket": ticket})
}

func (h *TicketHandler) List(w http.ResponseWriter, r *http.Request) {
	tickets, err := h.ticketUseCase.ListTickets(r.Context())
	if err != nil {
		response.WriteError(w, err)
		return
	}
	if tickets == nil {
		tickets = []*entity.Ticket{}
	}
	response.WriteJSON(w, http.StatusOK, map[string]interface{}{"tickets": tickets})
}

func (h *TicketHandler) ListAssigned(w http.ResponseWriter, r *http.Request) {
	empNumber, ok := pathID(w, r, "empNumber")
	if !ok {
		return
	}

	tickets, err := h.ticketUseCase.ListAssignedTickets(r.Context(), empNumber)
	if err != nil {
		response.WriteError(w, err)
		return
	}
	if tickets == nil {
		tickets = []*entity.Ticket{}
	}
	response.WriteJSON(w, http.StatusOK, map[string]interface{}{"tickets": tickets})
}

func (h *TicketHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}

	ticket, err := h.ticketUseCase.GetTicket(r.Context(), id)
	if err != nil {
		response.WriteError(w, err)
		return
	}
	response.WriteJSON(w, http.StatusOK, map[string]interface{}{"ticket": ticket})
}

func (h *TicketHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}

	var update outbound.TicketUpdate
	if err := json.NewDecoder(r.Body).Decode(&update); err != nil {
		response.BadRequest(w, "Invalid request body")
		return
	}

	claims := middleware.IdentityFromContext(r.Context())
	ticket, err := h.ticketUseCase.UpdateTicket(r.Context(), id, update, *claims)
	if err != nil {
		response.WriteError(w, err)
		return
	}
	response.WriteJSON(w, http.StatusOK, map[string]interface{}{"ticket": ticket})
}

func (h *TicketHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}

	claims := middleware.IdentityFromContext(r.Context())
	if err := h.ticketUseCase.DeleteTicket(r.Context(), id, *claims); err != nil {
		response.WriteError(w, err)
		return
	}
	response.WriteJSON(w, http.StatusOK, map[string]string{
		"deleted": fmt.Sprintf("Ticket number %d", id),
	})
}
