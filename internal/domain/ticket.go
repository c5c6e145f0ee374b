package domain

import "time"

// Ticket is an immutable unit of reported work awaiting assignment.
// CreationTimestamp is the epoch-seconds value supplied with the dataset; it
// is carried for reporting and never consulted by the scoring engine.
type Ticket struct {
	ID                string
	Title             string
	Description       string
	CreationTimestamp int64
	CreatedAt         time.Time
	UpdatedAt         time.Time
}
