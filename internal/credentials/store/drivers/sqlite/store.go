package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"strings"

	"github.com/aussiebroadwan/credentials/internal/credentials/domain"
	"github.com/aussiebroadwan/credentials/internal/credentials/store"
	"github.com/aussiebroadwan/credentials/internal/credentials/store/drivers/sqlite/gen"
	"github.com/samber/oops"
	msqlite "modernc.org/sqlite"
	sqlite3 "modernc.org/sqlite/lib"
)

type Store struct {
	db  *sql.DB
	q   *gen.Queries
	dsn string
}

func NewStore(dsn string) (*Store, error) {
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, oops.Code("SQLITE_OPEN_FAILED").With("dsn", dsn).Wrap(err)
	}

	// A single connection keeps ":memory:" databases coherent and avoids
	// SQLITE_BUSY between writers.
	db.SetMaxOpenConns(1)

	// Enforce FKs
	if _, err := db.ExecContext(context.Background(), `PRAGMA foreign_keys = ON;`); err != nil {
		_ = db.Close()
		return nil, oops.Code("SQLITE_OPEN_FAILED").With("dsn", dsn).Wrap(err)
	}

	return &Store{
		db:  db,
		q:   gen.New(db),
		dsn: dsn,
	}, nil
}

func (s *Store) Close() error { return s.db.Close() }

// Ping verifies the database connection is still alive.
func (s *Store) Ping(ctx context.Context) error {
	return s.db.PingContext(ctx)
}

func (s *Store) Users() store.Users { return &usersRepo{q: s.q} }
func (s *Store) Roles() store.Roles { return &rolesRepo{q: s.q} }

func mapNotFound(err error) error {
	if errors.Is(err, sql.ErrNoRows) {
		return store.ErrNotFound
	}
	return err
}

// mapConstraint turns sqlite constraint failures into store sentinels and
// leaves every other error untouched.
func mapConstraint(err error) error {
	var serr *msqlite.Error
	if !errors.As(err, &serr) {
		return err
	}

	switch serr.Code() {
	case sqlite3.SQLITE_CONSTRAINT_UNIQUE, sqlite3.SQLITE_CONSTRAINT_PRIMARYKEY:
		return errors.Join(store.ErrAlreadyExists, err)
	case sqlite3.SQLITE_CONSTRAINT_FOREIGNKEY:
		return errors.Join(store.ErrInvalidReference, err)
	case sqlite3.SQLITE_CONSTRAINT:
		// Extended codes disabled; fall back to the message.
		msg := serr.Error()
		if strings.Contains(msg, "UNIQUE") {
			return errors.Join(store.ErrAlreadyExists, err)
		}
		if strings.Contains(msg, "FOREIGN KEY") {
			return errors.Join(store.ErrInvalidReference, err)
		}
	}
	return err
}

func mapUser(row gen.User) domain.User {
	return domain.User{
		ID:           row.UserID,
		Username:     row.Username,
		PasswordHash: row.PasswordHash,
		RoleName:     row.RoleName,
		CreatedAt:    row.CreatedAt,
	}
}

func mapRole(row gen.Role) domain.Role {
	return domain.Role{
		ID:        row.ID,
		Name:      row.RoleName,
		CreatedAt: row.CreatedAt,
	}
}
