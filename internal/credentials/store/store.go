package store

import (
	"context"
	"errors"

	"github.com/aussiebroadwan/credentials/internal/credentials/domain"
)

var (
	ErrNotFound      = errors.New("store: not found")
	ErrAlreadyExists = errors.New("store: already exists")

	// ErrInvalidReference is returned when a row points at a parent that does
	// not exist, e.g. a user whose role was never seeded.
	ErrInvalidReference = errors.New("store: invalid reference")
)

// Store is the root data access interface. Concrete drivers (sqlite, postgres)
// implement this and expose sub-repositories per table.
type Store interface {
	Users() Users
	Roles() Roles

	ApplyMigrations() error

	// Close releases any underlying resources.
	Close() error

	// Ping verifies the database connection is still alive.
	Ping(ctx context.Context) error
}

type Users interface {
	// CreateUser inserts a new user and returns it with the id and created_at
	// the store assigned. A taken username yields ErrAlreadyExists.
	CreateUser(ctx context.Context, u domain.User) (domain.User, error)

	// GetUserByUsername is used during login.
	GetUserByUsername(ctx context.Context, username string) (domain.User, error)

	// ListUsers returns every user ordered by id.
	ListUsers(ctx context.Context) ([]domain.User, error)

	// UpdatePasswordHash replaces a stored hash, used to upgrade legacy hashes.
	UpdatePasswordHash(ctx context.Context, userID int64, newHash string) error
}

type Roles interface {
	// GetRoleByName fetches a role by its name.
	GetRoleByName(ctx context.Context, name string) (domain.Role, error)

	// ListAll returns all roles ordered by id.
	ListAll(ctx context.Context) ([]domain.Role, error)

	// CreateRole inserts a role. An existing name yields ErrAlreadyExists.
	CreateRole(ctx context.Context, name string) (domain.Role, error)
}
