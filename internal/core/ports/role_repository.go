package ports

import (
	"context"

	"github.com/ayurveda/iam-service/internal/core/domain"
)

// RoleRepository is the persistence boundary for role reference data.
type RoleRepository interface {
	FindAll(ctx context.Context) ([]domain.Role, error)
	FindByID(ctx context.Context, id int64) (*domain.Role, error)
	FindByName(ctx context.Context, name string) (*domain.Role, error)
	// Create inserts a role. Used only by bootstrap seeding.
	Create(ctx context.Context, role *domain.Role) (*domain.Role, error)
}
