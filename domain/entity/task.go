package entity

import "time"

// Task is a personal todo item owned by the employee who created it.
type Task struct {
	ID          int64     `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Status      string    `json:"status"`
	Important   bool      `json:"important"`
	Date        time.Time `json:"date"`
	CreatedBy   int64     `json:"createdBy"`
}
