package postgres

import (
	"context"
	"errors"

	"github.com/aussiebroadwan/credentials/internal/credentials/store"
	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/samber/oops"
)

// pool is the subset of *pgxpool.Pool the repositories use. pgxmock's
// PgxPoolIface satisfies it in tests.
type pool interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
	Ping(ctx context.Context) error
	Close()
}

type Store struct {
	pool pool
	url  string
}

// NewStore connects a pgx pool to databaseURL.
func NewStore(ctx context.Context, databaseURL string) (*Store, error) {
	cfg, err := pgxpool.ParseConfig(databaseURL)
	if err != nil {
		return nil, oops.Code("POSTGRES_CONFIG_INVALID").Wrap(err)
	}

	p, err := pgxpool.NewWithConfig(ctx, cfg)
	if err != nil {
		return nil, oops.Code("POSTGRES_CONNECT_FAILED").With("host", cfg.ConnConfig.Host).Wrap(err)
	}

	return &Store{pool: p, url: databaseURL}, nil
}

// NewStoreWithPool wraps an existing pool. Migrations still connect through
// databaseURL.
func NewStoreWithPool(p pool, databaseURL string) *Store {
	return &Store{pool: p, url: databaseURL}
}

func (s *Store) Close() error {
	s.pool.Close()
	return nil
}

// Ping verifies the database connection is still alive.
func (s *Store) Ping(ctx context.Context) error {
	return s.pool.Ping(ctx)
}

// ApplyMigrations brings the schema up to date using a short-lived
// golang-migrate connection.
func (s *Store) ApplyMigrations() error {
	m, err := NewMigrator(s.url)
	if err != nil {
		return err
	}
	defer func() { _ = m.Close() }()

	return m.Up()
}

func (s *Store) Users() store.Users { return &usersRepo{pool: s.pool} }
func (s *Store) Roles() store.Roles { return &rolesRepo{pool: s.pool} }

func mapNotFound(err error) error {
	if errors.Is(err, pgx.ErrNoRows) {
		return store.ErrNotFound
	}
	return err
}

func mapConstraint(err error) error {
	var pgErr *pgconn.PgError
	if !errors.As(err, &pgErr) {
		return err
	}

	switch pgErr.Code {
	case pgerrcode.UniqueViolation:
		return errors.Join(store.ErrAlreadyExists, err)
	case pgerrcode.ForeignKeyViolation:
		return errors.Join(store.ErrInvalidReference, err)
	default:
		return err
	}
}
