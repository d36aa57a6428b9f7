package entity

import "time"

// Ticket is a work item attached to a project and assigned to an employee.
// ProjectName and AssignedName are join-derived display fields populated on
// reads; they are never written.
type Ticket struct {
	ID           int64     `json:"id"`
	Title        string    `json:"title"`
	Description  string    `json:"description"`
	Status       string    `json:"status"`
	Date         time.Time `json:"date"`
	ProjectID    int64     `json:"projectId"`
	ProjectName  string    `json:"projectName,omitempty"`
	CreatedBy    int64     `json:"createdBy"`
	AssignedTo   int64     `json:"assignedTo"`
	AssignedName string    `json:"assignedName,omitempty"`
}
