package dto

import "time"

// TicketRequest payload for creating a ticket.
type TicketRequest struct {
	TicketID          string `json:"ticket_id"`
	Title             string `json:"title"`
	Description       string `json:"description"`
	CreationTimestamp int64  `json:"creation_timestamp"`
}

// TicketResponse describes one ticket.
type TicketResponse struct {
	TicketID          string    `json:"ticket_id"`
	Title             string    `json:"title"`
	Description       string    `json:"description"`
	CreationTimestamp int64     `json:"creation_timestamp"`
	CreatedAt         time.Time `json:"created_at"`
	UpdatedAt         time.Time `json:"updated_at"`
}

// ClassifyRequest payload for priority previews.
type ClassifyRequest struct {
	Title       string `json:"title"`
	Description string `json:"description"`
}

// ClassifyResponse carries one classification outcome.
type ClassifyResponse struct {
	PriorityLevel   string   `json:"priority_level"`
	PriorityScore   float64  `json:"priority_score"`
	MatchedKeywords []string `json:"matched_keywords"`
	Rationale       string   `json:"rationale"`
}
