package validator

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/taskana/taskana/application/port/inbound"
)

func TestValidateEmail(t *testing.T) {
	valid := []string{"user@example.com", "first.last@sub.domain.org", "u+tag@example.co"}
	for _, email := range valid {
		assert.True(t, ValidateEmail(email), email)
	}

	invalid := []string{"", "plain", "@example.com", "user@", "user@host", "two words@example.com"}
	for _, email := range invalid {
		assert.False(t, ValidateEmail(email), email)
	}
}

func TestValidateRequired(t *testing.T) {
	assert.True(t, ValidateRequired("x"))
	assert.False(t, ValidateRequired(""))
	assert.False(t, ValidateRequired("   "))
}

func TestValidateRegister_CollectsAllViolations(t *testing.T) {
	violations := ValidateRegister(inbound.RegisterRequest{Email: "bad"})
	assert.Contains(t, violations, "First name is required")
	assert.Contains(t, violations, "Last name is required")
	assert.Contains(t, violations, "Email is invalid")
	assert.Contains(t, violations, "Password is required")

	assert.Empty(t, ValidateRegister(inbound.RegisterRequest{
		FirstName: "Jane",
		LastName:  "Doe",
		Email:     "jane@example.com",
		Password:  "secret123",
	}))
}

func TestValidateCreateTicket(t *testing.T) {
	violations := ValidateCreateTicket(inbound.CreateTicketRequest{})
	assert.Contains(t, violations, "Ticket title is required")
	assert.Contains(t, violations, "Project is required")

	assert.Empty(t, ValidateCreateTicket(inbound.CreateTicketRequest{Title: "Bug", ProjectID: 3}))
}
