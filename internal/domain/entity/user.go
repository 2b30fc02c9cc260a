package entity

import "time"

// Valid roles for User.
const (
	RoleAdmin            = "admin"
	RoleBaseCommander    = "base_commander"
	RoleLogisticsOfficer = "logistics_officer"
)

// User is an operator of the system. BaseID is required for base commanders
// and zero for the other roles.
type User struct {
	ID           string
	Username     string
	Name         string
	PasswordHash string // bcrypt hash, never plaintext past persistence
	Role         string
	BaseID       int64
	CreatedAt    time.Time
}
