package entity

import "time"

// Project groups tickets under a manager (the admin who created it).
type Project struct {
	ID          int64     `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	Date        time.Time `json:"date"`
	Deadline    time.Time `json:"deadline"`
	Status      string    `json:"status"`
	Manager     int64     `json:"manager"`
}
