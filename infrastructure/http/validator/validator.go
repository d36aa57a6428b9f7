package validator

import (
	"net/mail"
	"regexp"
	"strings"

	"github.com/taskana/taskana/application/port/inbound"
)

var emailRegex = regexp.MustCompile(`^[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}$`)

func ValidateEmail(email string) bool {
	if email == "" {
		return false
	}

	if _, err := mail.ParseAddress(email); err != nil {
		return false
	}

	return emailRegex.MatchString(strings.ToLower(email))
}

func ValidateRequired(value string) bool {
	return strings.TrimSpace(value) != ""
}

// ValidateLogin returns all violations at once so the client can render the
// complete list rather than fixing fields one at a time.
func ValidateLogin(req inbound.LoginRequest) []string {
	var violations []string
	if !ValidateRequired(req.Email) {
		violations = append(violations, "Email is required")
	} else if !ValidateEmail(req.Email) {
		violations = append(violations, "Email is invalid")
	}
	if !ValidateRequired(req.Password) {
		violations = append(violations, "Password is required")
	}
	return violations
}

func ValidateRegister(req inbound.RegisterRequest) []string {
	var violations []string
	if !ValidateRequired(req.FirstName) {
		violations = append(violations, "First name is required")
	}
	if !ValidateRequired(req.LastName) {
		violations = append(violations, "Last name is required")
	}
	if !ValidateRequired(req.Email) {
		violations = append(violations, "Email is required")
	} else if !ValidateEmail(req.Email) {
		violations = append(violations, "Email is invalid")
	}
	if !ValidateRequired(req.Password) {
		violations = append(violations, "Password is required")
	}
	return violations
}

func ValidateCreateProject(req inbound.CreateProjectRequest) []string {
	var violations []string
	if !ValidateRequired(req.Name) {
		violations = append(violations, "Project name is required")
	}
	return violations
}

func ValidateCreateTask(req inbound.CreateTaskRequest) []string {
	var violations []string
	if !ValidateRequired(req.Title) {
		violations = append(violations, "Task title is required")
	}
	return violations
}

func ValidateCreateTicket(req inbound.CreateTicketRequest) []string {
	var violations []string
	if !ValidateRequired(req.Title) {
		violations = append(violations, "Ticket title is required")
	}
	if req.ProjectID <= 0 {
		violations = append(violations, "Project is required")
	}
	return violations
}
