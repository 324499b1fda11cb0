package models

import "time"

// Trip captures the minimal trip data the billing engine needs: identity,
// the event date used as due-date proxy, and roster capacity for reports.
type Trip struct {
	ID          int64      `json:"id"`
	Name        string     `json:"name"`
	Destination string     `json:"destination"`
	EventDate   *time.Time `json:"event_date,omitempty"`
	Capacity    int        `json:"capacity"`
	BaseFare    float64    `json:"base_fare"`
}

// Customer is the person enrollments and scores hang off of.
type Customer struct {
	ID    int64  `json:"id"`
	Name  string `json:"name"`
	Phone string `json:"phone"`
	Email string `json:"email"`
}
