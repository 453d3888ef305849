// Package bootstrap populates reference and demo data at process start,
// before the HTTP server accepts traffic. Both seeding steps are idempotent:
// re-running them against a populated database is a no-op.
package bootstrap

import (
	"context"
	"errors"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/ayurveda/iam-service/internal/core/domain"
	"github.com/ayurveda/iam-service/internal/core/ports"
	"github.com/ayurveda/iam-service/internal/core/service"
)

// demoAccount is a pre-provisioned account for fresh installations.
type demoAccount struct {
	username  string
	password  string
	firstName string
	lastName  string
	email     string
	phone     string
	roleName  string
}

var demoAccounts = []demoAccount{
	{"admin@ayurveda.com", "admin123", "Super", "Admin", "admin@ayurveda.com", "1234567890", domain.RoleSuperAdmin},
	{"Admin12", "Admin@123", "Admin", "Twelve", "admin12@test.com", "1234567892", domain.RoleSuperAdmin},
	{"college@ayurveda.com", "college123", "College", "Admin", "college@ayurveda.com", "1234567893", domain.RoleCollegeAdmin},
	{"admin@demo.com", "Admin@2024", "Demo", "Administrator", "admin@demo.com", "1234567894", domain.RoleCollegeAdmin},
	{"user@ayurveda.com", "user123", "Demo", "User", "user@ayurveda.com", "9876543210", domain.RoleFaculty},
	{"Anchal", "Anchal@123", "Anchal", "User", "anchal@test.com", "1234567891", domain.RoleFaculty},
	{"doctor@test.com", "Doctor@123", "Dr. Priya", "Sharma", "doctor@test.com", "9876543211", domain.RoleFaculty},
	{"analyst@test.com", "Analyst@123", "Data", "Analyst", "analyst@test.com", "9876543212", domain.RoleDataAnalyst},
	{"viewer@test.com", "Viewer@123", "Data", "Viewer", "viewer@test.com", "9876543213", domain.RoleViewer},
	{"faculty@test.com", "Faculty@123", "Faculty", "Member", "faculty@test.com", "9876543214", domain.RoleFaculty},
}

// Seeder performs the one-time startup population of roles and demo users.
type Seeder struct {
	registry *service.RoleRegistry
	users    ports.UserRepository
	hasher   service.PasswordHasher
	log      zerolog.Logger
}

func NewSeeder(registry *service.RoleRegistry, users ports.UserRepository, hasher service.PasswordHasher, log zerolog.Logger) *Seeder {
	return &Seeder{registry: registry, users: users, hasher: hasher, log: log}
}

// Run seeds roles, loads the role cache, and optionally provisions the demo
// accounts. It must complete before the service accepts traffic so that no
// login or create call can observe a half-seeded role set.
func (s *Seeder) Run(ctx context.Context, seedDemoUsers bool) error {
	if err := s.registry.Seed(ctx); err != nil {
		return err
	}
	if err := s.registry.Load(ctx); err != nil {
		return err
	}

	if !seedDemoUsers {
		return nil
	}
	return s.seedDemoUsers(ctx)
}

// seedDemoUsers provisions the demo accounts on an empty installation.
// Skipped entirely when any user already exists.
func (s *Seeder) seedDemoUsers(ctx context.Context) error {
	existing, err := s.users.FindAll(ctx)
	if err != nil {
		return fmt.Errorf("seed users: list: %w", err)
	}
	if len(existing) > 0 {
		s.log.Debug().Int("count", len(existing)).Msg("users already present, demo seeding skipped")
		return nil
	}

	for _, acc := range demoAccounts {
		role, err := s.registry.FindByName(acc.roleName)
		if err != nil {
			return fmt.Errorf("seed users: role %s: %w", acc.roleName, err)
		}

		hash, err := s.hasher.Hash(acc.password)
		if err != nil {
			return fmt.Errorf("seed users: hash for %s: %w", acc.username, err)
		}

		user := &domain.User{
			Username:     acc.username,
			Email:        acc.email,
			PasswordHash: hash,
			FirstName:    acc.firstName,
			LastName:     acc.lastName,
			Phone:        acc.phone,
			Status:       domain.StatusActive,
			Role:         *role,
		}
		if _, err := s.users.Create(ctx, user); err != nil {
			// Another instance may have seeded concurrently.
			if errors.Is(err, domain.ErrDuplicateUser) {
				continue
			}
			return fmt.Errorf("seed users: create %s: %w", acc.username, err)
		}
		s.log.Info().Str("username", acc.username).Str("role", acc.roleName).Msg("demo user seeded")
	}

	return nil
}
