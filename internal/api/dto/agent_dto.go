package dto

import "time"

// AgentRequest payload for creating or updating an agent.
type AgentRequest struct {
	AgentID            string         `json:"agent_id"`
	Name               string         `json:"name"`
	Skills             map[string]int `json:"skills"`
	AvailabilityStatus string         `json:"availability_status"`
	ExperienceLevel    float64        `json:"experience_level"`
	CurrentLoad        int            `json:"current_load"`
}

// AgentResponse describes one agent.
type AgentResponse struct {
	AgentID            string         `json:"agent_id"`
	Name               string         `json:"name"`
	Skills             map[string]int `json:"skills"`
	AvailabilityStatus string         `json:"availability_status"`
	ExperienceLevel    float64        `json:"experience_level"`
	CurrentLoad        int            `json:"current_load"`
	CreatedAt          time.Time      `json:"created_at"`
	UpdatedAt          time.Time      `json:"updated_at"`
}
