package service

import (
	"context"
	"errors"
	"testing"

	"github.com/rs/zerolog"

	"github.com/ayurveda/iam-service/internal/core/domain"
)

func TestRoleRegistry_SeedIdempotent(t *testing.T) {
	repo := newStubRoleRepo()
	registry := NewRoleRegistry(repo, zerolog.Nop())

	for i := 0; i < 2; i++ {
		if err := registry.Seed(context.Background()); err != nil {
			t.Fatalf("seed run %d failed: %v", i+1, err)
		}
	}

	roles, err := repo.FindAll(context.Background())
	if err != nil {
		t.Fatalf("list roles: %v", err)
	}
	if len(roles) != len(domain.DefaultRoleNames) {
		t.Fatalf("expected %d roles after double seed, got %d", len(domain.DefaultRoleNames), len(roles))
	}
}

func TestRoleRegistry_Lookups(t *testing.T) {
	registry := newTestRegistry(t)

	role, err := registry.FindByName(domain.RoleSuperAdmin)
	if err != nil {
		t.Fatalf("find by name failed: %v", err)
	}
	if role.Name != domain.RoleSuperAdmin || role.ID == 0 {
		t.Fatalf("unexpected role: %+v", role)
	}

	byID, err := registry.FindByID(role.ID)
	if err != nil {
		t.Fatalf("find by id failed: %v", err)
	}
	if byID.Name != role.Name {
		t.Fatalf("id lookup mismatch: %+v vs %+v", byID, role)
	}

	if _, err := registry.FindByName("NOT_A_ROLE"); !errors.Is(err, domain.ErrRoleNotFound) {
		t.Fatalf("expected ErrRoleNotFound, got %v", err)
	}
	if _, err := registry.FindByID(999); !errors.Is(err, domain.ErrRoleNotFound) {
		t.Fatalf("expected ErrRoleNotFound, got %v", err)
	}

	if got := len(registry.List()); got != len(domain.DefaultRoleNames) {
		t.Fatalf("expected %d roles, got %d", len(domain.DefaultRoleNames), got)
	}
}
