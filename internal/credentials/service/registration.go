package service

import (
	"context"
	"errors"
	"strings"

	"github.com/aussiebroadwan/credentials/internal/credentials/domain"
	"github.com/aussiebroadwan/credentials/internal/credentials/observability"
	"github.com/aussiebroadwan/credentials/internal/credentials/store"
	"github.com/aussiebroadwan/credentials/pkg/cryptox"
	"github.com/aussiebroadwan/credentials/pkg/slogx"
	"github.com/samber/oops"
)

type RegistrationService struct {
	Store   store.Store
	Roles   RoleValidator
	Hasher  *cryptox.Hasher
	Metrics *observability.Metrics
}

// Register creates a user with a hashed password. The role must be on the
// allow-list; otherwise nothing is written.
func (s *RegistrationService) Register(ctx context.Context, username, password, roleName string) (domain.User, error) {
	u, err := s.register(ctx, username, password, roleName)
	s.Metrics.RecordRegistration(registrationOutcome(err))
	return u, err
}

func (s *RegistrationService) register(ctx context.Context, username, password, roleName string) (domain.User, error) {
	log := slogx.FromContext(ctx)
	roleName = strings.TrimSpace(roleName)

	if strings.TrimSpace(username) == "" {
		return domain.User{}, &ValidationError{Field: "username", Reason: "username is required"}
	}
	if password == "" {
		return domain.User{}, &ValidationError{Field: "password", Reason: "password is required"}
	}

	ok, err := s.Roles.IsValidRole(ctx, roleName)
	if err != nil {
		return domain.User{}, err
	}
	if !ok {
		return domain.User{}, &ValidationError{Field: "role_name", Reason: "invalid role_name"}
	}

	hash, err := s.Hasher.Hash(password)
	if err != nil {
		return domain.User{}, oops.Code("PASSWORD_HASH_FAILED").In("registration").Wrap(err)
	}

	user, err := s.Store.Users().CreateUser(ctx, domain.User{
		Username:     username,
		PasswordHash: hash,
		RoleName:     roleName,
	})
	switch {
	case errors.Is(err, store.ErrAlreadyExists):
		return domain.User{}, &PersistenceError{Op: "adding user", Err: errors.Join(ErrUsernameTaken, err)}
	case errors.Is(err, store.ErrInvalidReference):
		// Role removed after the allow-list check.
		return domain.User{}, &ValidationError{Field: "role_name", Reason: "invalid role_name"}
	case err != nil:
		return domain.User{}, &PersistenceError{Op: "adding user", Err: err}
	}

	log.Info("user registered", "user_id", user.ID, "role_name", user.RoleName)
	return user, nil
}

func registrationOutcome(err error) string {
	switch {
	case err == nil:
		return observability.OutcomeSuccess
	case errors.Is(err, ErrValidation):
		return observability.OutcomeInvalid
	case errors.Is(err, ErrUsernameTaken):
		return observability.OutcomeConflict
	default:
		return observability.OutcomeError
	}
}
