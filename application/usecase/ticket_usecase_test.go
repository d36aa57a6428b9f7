package usecase

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taskana/taskana/application/port/inbound"
	"github.com/taskana/taskana/application/port/outbound"
)

func TestTicketUseCase_UpdatePermissions(t *testing.T) {
	ctx := context.Background()
	uc := NewTicketUseCase(newMockTicketRepository(), testLogger())

	ticket, err := uc.CreateTicket(ctx, inbound.CreateTicketRequest{
		Title:      "Broken login button",
		ProjectID:  1,
		CreatedBy:  1,
		AssignedTo: 2,
	})
	require.NoError(t, err)

	creator := outbound.TokenClaims{EmpNumber: 1}
	assignee := outbound.TokenClaims{EmpNumber: 2}
	stranger := outbound.TokenClaims{EmpNumber: 9}
	admin := outbound.TokenClaims{EmpNumber: 10, IsAdmin: true}

	status := "In review"

	t.Run("stranger rejected", func(t *testing.T) {
		_, err := uc.UpdateTicket(ctx, ticket.ID, outbound.TicketUpdate{Status: &status}, stranger)
		assert.Equal(t, 401, statusOf(t, err))
	})

	t.Run("assignee allowed", func(t *testing.T) {
		updated, err := uc.UpdateTicket(ctx, ticket.ID, outbound.TicketUpdate{Status: &status}, assignee)
		require.NoError(t, err)
		assert.Equal(t, "In review", updated.Status)
	})

	t.Run("creator allowed", func(t *testing.T) {
		_, err := uc.UpdateTicket(ctx, ticket.ID, outbound.TicketUpdate{Status: &status}, creator)
		assert.NoError(t, err)
	})

	t.Run("admin allowed", func(t *testing.T) {
		_, err := uc.UpdateTicket(ctx, ticket.ID, outbound.TicketUpdate{Status: &status}, admin)
		assert.NoError(t, err)
	})
}

func TestTicketUseCase_DeletePermissions(t *testing.T) {
	ctx := context.Background()
	uc := NewTicketUseCase(newMockTicketRepository(), testLogger())

	ticket, err := uc.CreateTicket(ctx, inbound.CreateTicketRequest{
		Title:      "Flaky deploy",
		ProjectID:  1,
		CreatedBy:  1,
		AssignedTo: 2,
	})
	require.NoError(t, err)

	// The assignee can edit a ticket but not remove it.
	assignee := outbound.TokenClaims{EmpNumber: 2}
	err = uc.DeleteTicket(ctx, ticket.ID, assignee)
	assert.Equal(t, 401, statusOf(t, err))

	creator := outbound.TokenClaims{EmpNumber: 1}
	require.NoError(t, uc.DeleteTicket(ctx, ticket.ID, creator))

	_, err = uc.GetTicket(ctx, ticket.ID)
	assert.Equal(t, 404, statusOf(t, err))
}

func TestTicketUseCase_AssignedListing(t *testing.T) {
	ctx := context.Background()
	uc := NewTicketUseCase(newMockTicketRepository(), testLogger())

	_, err := uc.CreateTicket(ctx, inbound.CreateTicketRequest{Title: "A", ProjectID: 1, CreatedBy: 1, AssignedTo: 2})
	require.NoError(t, err)
	_, err = uc.CreateTicket(ctx, inbound.CreateTicketRequest{Title: "B", ProjectID: 1, CreatedBy: 1, AssignedTo: 3})
	require.NoError(t, err)

	tickets, err := uc.ListAssignedTickets(ctx, 2)
	require.NoError(t, err)
	require.Len(t, tickets, 1)
	assert.Equal(t, "A", tickets[0].Title)
}

func TestTicketUseCase_MissingTicket(t *testing.T) {
	ctx := context.Background()
	uc := NewTicketUseCase(newMockTicketRepository(), testLogger())

	_, err := uc.GetTicket(ctx, 99)
	assert.Equal(t, 404, statusOf(t, err))
	assert.Equal(t, "No ticket found!", err.Error())
}
