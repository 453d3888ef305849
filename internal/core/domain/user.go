package domain

import "time"

// UserStatus represents the lifecycle state of a user account.
type UserStatus string

const (
	StatusActive   UserStatus = "ACTIVE"
	StatusInactive UserStatus = "INACTIVE"
	StatusPending  UserStatus = "PENDING"
)

// IsValid reports whether s is one of the known lifecycle states.
func (s UserStatus) IsValid() bool {
	switch s {
	case StatusActive, StatusInactive, StatusPending:
		return true
	}
	return false
}

// User models an identity in the system. PasswordHash is never serialized.
type User struct {
	ID               int64      `json:"id"`
	Username         string     `json:"username"`
	Email            string     `json:"email"`
	PasswordHash     string     `json:"-"`
	FirstName        string     `json:"first_name,omitempty"`
	LastName         string     `json:"last_name,omitempty"`
	Phone            string     `json:"phone"`
	Department       string     `json:"department,omitempty"`
	EmployeeID       string     `json:"employee_id,omitempty"`
	ReportingManager string     `json:"reporting_manager,omitempty"`
	Status           UserStatus `json:"status"`
	Role             Role       `json:"role"`
	CreatedAt        time.Time  `json:"created_at"`
	UpdatedAt        time.Time  `json:"updated_at"`
}
