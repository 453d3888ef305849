package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/rs/zerolog"

	"github.com/ayurveda/iam-service/internal/core/domain"
	"github.com/ayurveda/iam-service/internal/core/ports"
)

// UserService orchestrates the identity lifecycle: validation, duplicate
// checks, role resolution, and password hashing all happen here before
// anything reaches the repository.
type UserService struct {
	repo     ports.UserRepository
	registry *RoleRegistry
	hasher   PasswordHasher
	log      zerolog.Logger
}

func NewUserService(repo ports.UserRepository, registry *RoleRegistry, hasher PasswordHasher, log zerolog.Logger) *UserService {
	return &UserService{repo: repo, registry: registry, hasher: hasher, log: log}
}

// Create validates the request, resolves the role, hashes the password, and
// persists the new user. Username and email must both be unused; a collision
// on either fails with ErrDuplicateUser.
func (s *UserService) Create(ctx context.Context, in ports.UserInput) (*domain.User, error) {
	if err := validateInput(in, false); err != nil {
		return nil, err
	}

	if existing, err := s.repo.FindByUsername(ctx, in.Username); err == nil && existing != nil {
		return nil, domain.ErrDuplicateUser
	} else if err != nil && !errors.Is(err, domain.ErrUserNotFound) {
		return nil, err
	}
	if existing, err := s.repo.FindByEmail(ctx, in.Email); err == nil && existing != nil {
		return nil, domain.ErrDuplicateUser
	} else if err != nil && !errors.Is(err, domain.ErrUserNotFound) {
		return nil, err
	}

	role, err := s.registry.FindByID(in.RoleID)
	if err != nil {
		return nil, domain.ErrInvalidRole
	}

	hash, err := s.hasher.Hash(in.Password)
	if err != nil {
		return nil, err
	}

	user := &domain.User{
		Username:         in.Username,
		Email:            in.Email,
		PasswordHash:     hash,
		FirstName:        in.FirstName,
		LastName:         in.LastName,
		Phone:            in.Phone,
		Department:       in.Department,
		EmployeeID:       in.EmployeeID,
		ReportingManager: in.ReportingManager,
		Status:           resolveStatus(in.Status),
		Role:             *role,
	}

	created, err := s.repo.Create(ctx, user)
	if err != nil {
		s.log.Error().Err(err).Str("username", in.Username).Msg("failed to create user")
		return nil, err
	}

	s.log.Info().Str("username", created.Username).Int64("user_id", created.ID).Str("role", role.Name).Msg("user created")
	return created, nil
}

// Update applies a partial update to an existing user. The password rule is
// waived when no new password is supplied; the stored hash is kept as-is.
func (s *UserService) Update(ctx context.Context, id int64, in ports.UserInput) (*domain.User, error) {
	current, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := validateInput(in, true); err != nil {
		return nil, err
	}

	role, err := s.registry.FindByID(in.RoleID)
	if err != nil {
		return nil, domain.ErrInvalidRole
	}

	hash := current.PasswordHash
	if in.Password != "" {
		hash, err = s.hasher.Hash(in.Password)
		if err != nil {
			return nil, err
		}
	}

	user := &domain.User{
		ID:               id,
		Username:         in.Username,
		Email:            in.Email,
		PasswordHash:     hash,
		FirstName:        in.FirstName,
		LastName:         in.LastName,
		Phone:            in.Phone,
		Department:       in.Department,
		EmployeeID:       in.EmployeeID,
		ReportingManager: in.ReportingManager,
		Status:           resolveStatus(in.Status),
		Role:             *role,
		CreatedAt:        current.CreatedAt,
	}

	updated, err := s.repo.Update(ctx, user)
	if err != nil {
		s.log.Error().Err(err).Int64("user_id", id).Msg("failed to update user")
		return nil, err
	}

	s.log.Info().Int64("user_id", id).Str("username", updated.Username).Msg("user updated")
	return updated, nil
}

// Delete removes a user by id. Deleting an absent id is not an error at this
// layer: the absence is the post-condition.
func (s *UserService) Delete(ctx context.Context, id int64) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			s.log.Debug().Int64("user_id", id).Msg("delete of absent user, treated as no-op")
			return nil
		}
		s.log.Error().Err(err).Int64("user_id", id).Msg("failed to delete user")
		return err
	}
	s.log.Info().Int64("user_id", id).Msg("user deleted")
	return nil
}

func (s *UserService) Get(ctx context.Context, id int64) (*domain.User, error) {
	return s.repo.FindByID(ctx, id)
}

func (s *UserService) GetByUsername(ctx context.Context, username string) (*domain.User, error) {
	return s.repo.FindByUsername(ctx, username)
}

func (s *UserService) List(ctx context.Context) ([]domain.User, error) {
	return s.repo.FindAll(ctx)
}

// validateInput enforces the request rules. On update the password-strength
// rule applies only when a new password is supplied.
func validateInput(in ports.UserInput, isUpdate bool) error {
	if strings.TrimSpace(in.Username) == "" {
		return fmt.Errorf("%w: username is required", domain.ErrValidation)
	}
	if !isUpdate || in.Password != "" {
		if !domain.IsStrongPassword(in.Password) {
			return fmt.Errorf("%w: password must be at least %d characters and include uppercase, lowercase, digit, and symbol",
				domain.ErrValidation, domain.MinPasswordLength)
		}
	}
	if in.Email == "" || !strings.Contains(in.Email, "@") {
		return fmt.Errorf("%w: valid email is required", domain.ErrValidation)
	}
	if strings.TrimSpace(in.Phone) == "" {
		return fmt.Errorf("%w: phone is required", domain.ErrValidation)
	}
	if in.RoleID == 0 {
		return fmt.Errorf("%w: role id is required", domain.ErrValidation)
	}
	if in.Status != "" && !domain.UserStatus(in.Status).IsValid() {
		return fmt.Errorf("%w: status must be one of ACTIVE, INACTIVE, PENDING", domain.ErrValidation)
	}
	return nil
}

func resolveStatus(status string) domain.UserStatus {
	if status == "" {
		return domain.StatusActive
	}
	return domain.UserStatus(status)
}
