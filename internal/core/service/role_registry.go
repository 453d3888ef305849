package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/ayurveda/iam-service/internal/core/domain"
	"github.com/ayurveda/iam-service/internal/core/ports"
)

// RoleRegistry serves role lookups from an immutable in-process cache.
// Roles are reference data: Seed populates them once at startup, Load
// snapshots them, and nothing mutates the cache afterwards, so lookups are
// safe for concurrent use without locking.
type RoleRegistry struct {
	repo   ports.RoleRepository
	byID   map[int64]domain.Role
	byName map[string]domain.Role
	roles  []domain.Role
	log    zerolog.Logger
}

func NewRoleRegistry(repo ports.RoleRepository, log zerolog.Logger) *RoleRegistry {
	return &RoleRegistry{
		repo:   repo,
		byID:   make(map[int64]domain.Role),
		byName: make(map[string]domain.Role),
		log:    log,
	}
}

// Seed inserts the default role set, skipping names that already exist.
// Idempotent: running it twice leaves exactly one row per name. Must complete
// before the service accepts traffic.
func (r *RoleRegistry) Seed(ctx context.Context) error {
	for _, name := range domain.DefaultRoleNames {
		_, err := r.repo.FindByName(ctx, name)
		if err == nil {
			continue
		}
		if !errors.Is(err, domain.ErrRoleNotFound) {
			return fmt.Errorf("seed roles: lookup %s: %w", name, err)
		}

		created, err := r.repo.Create(ctx, &domain.Role{Name: name})
		if err != nil {
			// Lost a race with another instance seeding the same name.
			if errors.Is(err, domain.ErrDuplicateUser) {
				continue
			}
			return fmt.Errorf("seed roles: create %s: %w", name, err)
		}
		r.log.Info().Str("role", created.Name).Int64("role_id", created.ID).Msg("role seeded")
	}
	return nil
}

// Load snapshots all roles into the in-process cache.
func (r *RoleRegistry) Load(ctx context.Context) error {
	roles, err := r.repo.FindAll(ctx)
	if err != nil {
		return fmt.Errorf("load roles: %w", err)
	}

	r.roles = roles
	for _, role := range roles {
		r.byID[role.ID] = role
		r.byName[role.Name] = role
	}

	r.log.Info().Int("count", len(roles)).Msg("role cache loaded")
	return nil
}

func (r *RoleRegistry) FindByID(id int64) (*domain.Role, error) {
	role, ok := r.byID[id]
	if !ok {
		return nil, domain.ErrRoleNotFound
	}
	return &role, nil
}

func (r *RoleRegistry) FindByName(name string) (*domain.Role, error) {
	role, ok := r.byName[name]
	if !ok {
		return nil, domain.ErrRoleNotFound
	}
	return &role, nil
}

func (r *RoleRegistry) List() []domain.Role {
	out := make([]domain.Role, len(r.roles))
	copy(out, r.roles)
	return out
}
