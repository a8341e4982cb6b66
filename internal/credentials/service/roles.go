package service

import (
	"context"
	"errors"
	"strings"

	"github.com/aussiebroadwan/credentials/internal/credentials/domain"
	"github.com/aussiebroadwan/credentials/internal/credentials/store"
	"github.com/aussiebroadwan/credentials/pkg/slogx"
)

// RoleValidator decides whether a role name may be assigned at registration.
type RoleValidator interface {
	IsValidRole(ctx context.Context, name string) (bool, error)
}

type RolesService struct {
	Store store.Store
}

// IsValidRole reports whether name, once trimmed, is on the allow-list.
func (s *RolesService) IsValidRole(ctx context.Context, name string) (bool, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return false, nil
	}

	_, err := s.Store.Roles().GetRoleByName(ctx, name)
	if errors.Is(err, store.ErrNotFound) {
		return false, nil
	}
	if err != nil {
		return false, &PersistenceError{Op: "validating role", Err: err}
	}
	return true, nil
}

// ListAll returns all roles in the system.
func (s *RolesService) ListAll(ctx context.Context) ([]domain.Role, error) {
	return s.Store.Roles().ListAll(ctx)
}

// SeedRoles makes sure every name exists in the roles table. Names already
// present are left alone, so it is safe to run on every start. It returns how
// many roles were created.
func (s *RolesService) SeedRoles(ctx context.Context, names []string) (int, error) {
	log := slogx.FromContext(ctx)
	created := 0

	for _, name := range names {
		name = strings.TrimSpace(name)
		if name == "" {
			continue
		}

		_, err := s.Store.Roles().GetRoleByName(ctx, name)
		if err == nil {
			continue
		}
		if !errors.Is(err, store.ErrNotFound) {
			return created, &PersistenceError{Op: "seeding roles", Err: err}
		}

		// Another instance may have inserted it between the lookup and here.
		if _, err := s.Store.Roles().CreateRole(ctx, name); err != nil && !errors.Is(err, store.ErrAlreadyExists) {
			return created, &PersistenceError{Op: "seeding roles", Err: err}
		}

		log.Info("role seeded", "role_name", name)
		created++
	}

	return created, nil
}
