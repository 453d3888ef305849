package handler

import (
	"github.com/ayurveda/iam-service/internal/core/domain"
	"github.com/ayurveda/iam-service/internal/core/ports"
)

// --- Request → Service input ---

func toUserInput(req userRequest) ports.UserInput {
	return ports.UserInput{
		Username:         req.Username,
		Password:         req.Password,
		Email:            req.Email,
		Phone:            req.Phone,
		FirstName:        req.FirstName,
		LastName:         req.LastName,
		Department:       req.Department,
		EmployeeID:       req.EmployeeID,
		ReportingManager: req.ReportingManager,
		Status:           req.Status,
		RoleID:           req.RoleID,
	}
}

// --- Domain → HTTP response ---

func toUserResponse(u *domain.User) userResponse {
	return userResponse{
		ID:               u.ID,
		Username:         u.Username,
		Email:            u.Email,
		Phone:            u.Phone,
		FirstName:        u.FirstName,
		LastName:         u.LastName,
		Department:       u.Department,
		EmployeeID:       u.EmployeeID,
		ReportingManager: u.ReportingManager,
		Status:           string(u.Status),
		Role:             roleResponse{ID: u.Role.ID, Name: u.Role.Name},
		CreatedAt:        u.CreatedAt,
		UpdatedAt:        u.UpdatedAt,
	}
}

func toUserListResponse(users []domain.User) []userResponse {
	out := make([]userResponse, 0, len(users))
	for i := range users {
		out = append(out, toUserResponse(&users[i]))
	}
	return out
}
