package domain

import "time"

// OperatorRole enumerates API caller roles.
type OperatorRole string

const (
	OperatorRoleAdmin      OperatorRole = "ADMIN"
	OperatorRoleDispatcher OperatorRole = "DISPATCHER"
	OperatorRoleViewer     OperatorRole = "VIEWER"
)

// Operator is an authenticated API account that manages datasets and runs.
type Operator struct {
	ID           string
	Name         string
	Email        string
	PasswordHash string
	Role         OperatorRole
	Active       bool
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
