package service

import (
	"context"

	"github.com/aussiebroadwan/credentials/internal/credentials/domain"
	"github.com/aussiebroadwan/credentials/internal/credentials/store"
)

type UserService struct {
	Store store.Store
}

// ListUsers returns every registered user.
func (s *UserService) ListUsers(ctx context.Context) ([]domain.User, error) {
	users, err := s.Store.Users().ListUsers(ctx)
	if err != nil {
		return nil, &PersistenceError{Op: "listing users", Err: err}
	}
	return users, nil
}
