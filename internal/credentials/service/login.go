package service

import (
	"context"
	"errors"
	"sync"

	"github.com/aussiebroadwan/credentials/internal/credentials/observability"
	"github.com/aussiebroadwan/credentials/internal/credentials/store"
	"github.com/aussiebroadwan/credentials/pkg/cryptox"
	"github.com/aussiebroadwan/credentials/pkg/slogx"
	"github.com/samber/oops"
)

// TokenIssuer signs session tokens for an authenticated user.
type TokenIssuer interface {
	Issue(userID int64, username, roleName string) (string, error)
}

// LoginResult is what a successful login hands back to the client.
type LoginResult struct {
	Message string
	Token   string
}

type LoginService struct {
	Store   store.Store
	Hasher  *cryptox.Hasher
	Tokens  TokenIssuer
	Metrics *observability.Metrics

	dummyOnce sync.Once
	dummyHash string
}

// Login checks the password and issues a session token. An unknown username
// and a wrong password both yield ErrInvalidCredentials, and both pay for one
// hash verification.
func (s *LoginService) Login(ctx context.Context, username, password string) (LoginResult, error) {
	res, err := s.login(ctx, username, password)
	s.Metrics.RecordLogin(loginOutcome(err))
	return res, err
}

func (s *LoginService) login(ctx context.Context, username, password string) (LoginResult, error) {
	log := slogx.FromContext(ctx)

	user, err := s.Store.Users().GetUserByUsername(ctx, username)
	if errors.Is(err, store.ErrNotFound) {
		_, _ = s.Hasher.Verify(password, s.dummy())
		return LoginResult{}, ErrInvalidCredentials
	}
	if err != nil {
		return LoginResult{}, &PersistenceError{Op: "finding user", Err: err}
	}

	ok, err := s.Hasher.Verify(password, user.PasswordHash)
	if err != nil {
		return LoginResult{}, oops.Code("PASSWORD_VERIFY_FAILED").In("login").With("user_id", user.ID).Wrap(err)
	}
	if !ok {
		log.Info("login rejected", "user_id", user.ID)
		return LoginResult{}, ErrInvalidCredentials
	}

	if s.Hasher.NeedsRehash(user.PasswordHash) {
		s.upgradeHash(ctx, user.ID, password)
	}

	token, err := s.Tokens.Issue(user.ID, user.Username, user.RoleName)
	if err != nil {
		return LoginResult{}, oops.Code("TOKEN_ISSUE_FAILED").In("login").With("user_id", user.ID).Wrap(err)
	}

	log.Info("login succeeded", "user_id", user.ID)
	return LoginResult{
		Message: user.Username + " is back!",
		Token:   token,
	}, nil
}

// upgradeHash replaces a legacy hash now that the plaintext is known. Failure
// is logged and otherwise ignored; the old hash keeps working.
func (s *LoginService) upgradeHash(ctx context.Context, userID int64, password string) {
	log := slogx.FromContext(ctx)

	hash, err := s.Hasher.Hash(password)
	if err == nil {
		err = s.Store.Users().UpdatePasswordHash(ctx, userID, hash)
	}
	if err != nil {
		log.Warn("password rehash failed", "user_id", userID, "err", err)
		return
	}

	s.Metrics.RecordRehash()
	log.Info("password rehashed", "user_id", userID)
}

// dummy returns a real hash of a throwaway password, computed once, so that
// logins for unknown users cost the same as a wrong password.
func (s *LoginService) dummy() string {
	s.dummyOnce.Do(func() {
		// A failed Hash leaves the dummy empty; Verify then errors fast, which
		// only happens if the system RNG is broken.
		s.dummyHash, _ = s.Hasher.Hash("credentials-dummy-password")
	})
	return s.dummyHash
}

func loginOutcome(err error) string {
	switch {
	case err == nil:
		return observability.OutcomeSuccess
	case errors.Is(err, ErrInvalidCredentials):
		return observability.OutcomeUnauthorized
	default:
		return observability.OutcomeError
	}
}
