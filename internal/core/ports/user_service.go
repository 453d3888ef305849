package ports

import (
	"context"

	"github.com/ayurveda/iam-service/internal/core/domain"
)

// UserInput is the DTO passed from the transport layer to UserService for
// create and update operations. Password is plaintext at this point and is
// hashed before anything reaches the repository. On update an empty Password
// means "keep the existing hash".
type UserInput struct {
	Username         string
	Password         string
	Email            string
	Phone            string
	FirstName        string
	LastName         string
	Department       string
	EmployeeID       string
	ReportingManager string
	Status           string
	RoleID           int64
}

// UserService manages the identity lifecycle.
type UserService interface {
	Create(ctx context.Context, in UserInput) (*domain.User, error)
	Update(ctx context.Context, id int64, in UserInput) (*domain.User, error)
	Delete(ctx context.Context, id int64) error
	Get(ctx context.Context, id int64) (*domain.User, error)
	GetByUsername(ctx context.Context, username string) (*domain.User, error)
	List(ctx context.Context) ([]domain.User, error)
}
