package handler

import "time"

// errorResponse is the standard error envelope returned on all 4xx/5xx responses.
type errorResponse struct {
	Error string `json:"error"`
}

// --- Request / Response types ---

type userRequest struct {
	Username         string `json:"username"          validate:"required"`
	Password         string `json:"password"          validate:"omitempty,strongpw"`
	Email            string `json:"email"             validate:"required,contains=@"`
	Phone            string `json:"phone"             validate:"required"`
	FirstName        string `json:"first_name"`
	LastName         string `json:"last_name"`
	Department       string `json:"department"`
	EmployeeID       string `json:"employee_id"`
	ReportingManager string `json:"reporting_manager"`
	Status           string `json:"status"            validate:"omitempty,oneof=ACTIVE INACTIVE PENDING"`
	RoleID           int64  `json:"role_id"           validate:"required"`
}

type loginRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

// Response-only types owned by the transport layer. The credential hash has
// no representation here at all.

type roleResponse struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

type userResponse struct {
	ID               int64        `json:"id"`
	Username         string       `json:"username"`
	Email            string       `json:"email"`
	Phone            string       `json:"phone"`
	FirstName        string       `json:"first_name,omitempty"`
	LastName         string       `json:"last_name,omitempty"`
	Department       string       `json:"department,omitempty"`
	EmployeeID       string       `json:"employee_id,omitempty"`
	ReportingManager string       `json:"reporting_manager,omitempty"`
	Status           string       `json:"status"`
	Role             roleResponse `json:"role"`
	CreatedAt        time.Time    `json:"created_at"`
	UpdatedAt        time.Time    `json:"updated_at"`
}

type meResponse struct {
	User        userResponse `json:"user"`
	LastLoginAt *time.Time   `json:"last_login_at,omitempty"`
}

type loginResponse struct {
	Message  string `json:"message"`
	Token    string `json:"token"`
	ID       int64  `json:"id"`
	Username string `json:"username"`
	Role     string `json:"role"`
}
