package postgres

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/aussiebroadwan/credentials/internal/credentials/domain"
	"github.com/aussiebroadwan/credentials/internal/credentials/store"
	"github.com/golang-migrate/migrate/v4"
	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/pashagolub/pgxmock/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var userCols = []string{"user_id", "username", "password_hash", "role_name", "created_at"}

func TestUsersRepo_CreateUser(t *testing.T) {
	created := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
	input := domain.User{Username: "anna", PasswordHash: "$argon2id$stub", RoleName: "angel"}

	tests := []struct {
		name      string
		setupMock func(mock pgxmock.PgxPoolIface)
		want      domain.User
		wantErr   error
	}{
		{
			name: "inserted",
			setupMock: func(mock pgxmock.PgxPoolIface) {
				mock.ExpectQuery(`INSERT INTO users`).
					WithArgs("anna", "$argon2id$stub", "angel").
					WillReturnRows(pgxmock.NewRows([]string{"user_id", "created_at"}).AddRow(int64(1), created))
			},
			want: domain.User{ID: 1, Username: "anna", PasswordHash: "$argon2id$stub", RoleName: "angel", CreatedAt: created},
		},
		{
			name: "username taken",
			setupMock: func(mock pgxmock.PgxPoolIface) {
				mock.ExpectQuery(`INSERT INTO users`).
					WithArgs("anna", "$argon2id$stub", "angel").
					WillReturnError(&pgconn.PgError{Code: pgerrcode.UniqueViolation})
			},
			wantErr: store.ErrAlreadyExists,
		},
		{
			name: "role missing",
			setupMock: func(mock pgxmock.PgxPoolIface) {
				mock.ExpectQuery(`INSERT INTO users`).
					WithArgs("anna", "$argon2id$stub", "angel").
					WillReturnError(&pgconn.PgError{Code: pgerrcode.ForeignKeyViolation})
			},
			wantErr: store.ErrInvalidReference,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mock, err := pgxmock.NewPool()
			require.NoError(t, err, "failed to create mock")
			defer mock.Close()

			tt.setupMock(mock)

			got, err := NewStoreWithPool(mock, "").Users().CreateUser(context.Background(), input)
			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)
			} else {
				require.NoError(t, err)
				assert.Equal(t, tt.want, got)
			}

			assert.NoError(t, mock.ExpectationsWereMet(), "unfulfilled expectations")
		})
	}
}

func TestUsersRepo_GetUserByUsername(t *testing.T) {
	created := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)

	t.Run("found", func(t *testing.T) {
		mock, err := pgxmock.NewPool()
		require.NoError(t, err)
		defer mock.Close()

		mock.ExpectQuery(`SELECT .+ FROM users WHERE username = \$1`).
			WithArgs("anna").
			WillReturnRows(pgxmock.NewRows(userCols).AddRow(int64(1), "anna", "$argon2id$stub", "angel", created))

		u, err := NewStoreWithPool(mock, "").Users().GetUserByUsername(context.Background(), "anna")
		require.NoError(t, err)
		assert.Equal(t, int64(1), u.ID)
		assert.Equal(t, "angel", u.RoleName)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("not found", func(t *testing.T) {
		mock, err := pgxmock.NewPool()
		require.NoError(t, err)
		defer mock.Close()

		mock.ExpectQuery(`SELECT .+ FROM users WHERE username = \$1`).
			WithArgs("nobody").
			WillReturnRows(pgxmock.NewRows(userCols))

		_, err = NewStoreWithPool(mock, "").Users().GetUserByUsername(context.Background(), "nobody")
		require.ErrorIs(t, err, store.ErrNotFound)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("connection error", func(t *testing.T) {
		mock, err := pgxmock.NewPool()
		require.NoError(t, err)
		defer mock.Close()

		mock.ExpectQuery(`SELECT .+ FROM users`).
			WithArgs("anna").
			WillReturnError(errors.New("connection refused"))

		_, err = NewStoreWithPool(mock, "").Users().GetUserByUsername(context.Background(), "anna")
		require.Error(t, err)
		assert.NotErrorIs(t, err, store.ErrNotFound)
		assert.Contains(t, err.Error(), "connection refused")
	})
}

func TestUsersRepo_ListUsers(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	now := time.Now().UTC()
	mock.ExpectQuery(`SELECT .+ FROM users ORDER BY user_id`).
		WillReturnRows(pgxmock.NewRows(userCols).
			AddRow(int64(1), "anna", "h1", "angel", now).
			AddRow(int64(2), "bob", "h2", "student", now))

	users, err := NewStoreWithPool(mock, "").Users().ListUsers(context.Background())
	require.NoError(t, err)
	require.Len(t, users, 2)
	assert.Equal(t, "bob", users[1].Username)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUsersRepo_UpdatePasswordHash(t *testing.T) {
	tests := []struct {
		name    string
		rows    int64
		wantErr error
	}{
		{"updated", 1, nil},
		{"missing user", 0, store.ErrNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mock, err := pgxmock.NewPool()
			require.NoError(t, err)
			defer mock.Close()

			mock.ExpectExec(`UPDATE users SET password_hash`).
				WithArgs("$argon2id$new", int64(7)).
				WillReturnResult(pgxmock.NewResult("UPDATE", tt.rows))

			err = NewStoreWithPool(mock, "").Users().UpdatePasswordHash(context.Background(), 7, "$argon2id$new")
			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)
			} else {
				require.NoError(t, err)
			}
			assert.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestRolesRepo(t *testing.T) {
	created := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)

	t.Run("create", func(t *testing.T) {
		mock, err := pgxmock.NewPool()
		require.NoError(t, err)
		defer mock.Close()

		mock.ExpectQuery(`INSERT INTO roles`).
			WithArgs("angel").
			WillReturnRows(pgxmock.NewRows([]string{"id", "created_at"}).AddRow(int64(4), created))

		r, err := NewStoreWithPool(mock, "").Roles().CreateRole(context.Background(), "angel")
		require.NoError(t, err)
		assert.Equal(t, domain.Role{ID: 4, Name: "angel", CreatedAt: created}, r)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("create duplicate", func(t *testing.T) {
		mock, err := pgxmock.NewPool()
		require.NoError(t, err)
		defer mock.Close()

		mock.ExpectQuery(`INSERT INTO roles`).
			WithArgs("angel").
			WillReturnError(&pgconn.PgError{Code: pgerrcode.UniqueViolation})

		_, err = NewStoreWithPool(mock, "").Roles().CreateRole(context.Background(), "angel")
		require.ErrorIs(t, err, store.ErrAlreadyExists)
	})

	t.Run("get by name", func(t *testing.T) {
		mock, err := pgxmock.NewPool()
		require.NoError(t, err)
		defer mock.Close()

		mock.ExpectQuery(`SELECT id, role_name, created_at FROM roles WHERE role_name = \$1`).
			WithArgs("wizard").
			WillReturnRows(pgxmock.NewRows([]string{"id", "role_name", "created_at"}))

		_, err = NewStoreWithPool(mock, "").Roles().GetRoleByName(context.Background(), "wizard")
		require.ErrorIs(t, err, store.ErrNotFound)
	})

	t.Run("list", func(t *testing.T) {
		mock, err := pgxmock.NewPool()
		require.NoError(t, err)
		defer mock.Close()

		mock.ExpectQuery(`SELECT id, role_name, created_at FROM roles ORDER BY id`).
			WillReturnRows(pgxmock.NewRows([]string{"id", "role_name", "created_at"}).
				AddRow(int64(1), "admin", created).
				AddRow(int64(2), "angel", created))

		roles, err := NewStoreWithPool(mock, "").Roles().ListAll(context.Background())
		require.NoError(t, err)
		require.Len(t, roles, 2)
		assert.Equal(t, "angel", roles[1].Name)
	})
}

func TestStore_Ping(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	mock.ExpectPing().WillReturnError(errors.New("down"))

	err = NewStoreWithPool(mock, "").Ping(context.Background())
	require.EqualError(t, err, "down")
	assert.NoError(t, mock.ExpectationsWereMet())
}

type fakeMigrate struct {
	upErr      error
	version    uint
	versionErr error
	closed     bool
}

func (f *fakeMigrate) Up() error                    { return f.upErr }
func (f *fakeMigrate) Version() (uint, bool, error) { return f.version, false, f.versionErr }
func (f *fakeMigrate) Close() (error, error) {
	f.closed = true
	return nil, nil
}

func TestMigrator(t *testing.T) {
	t.Run("no change is success", func(t *testing.T) {
		m := &Migrator{m: &fakeMigrate{upErr: migrate.ErrNoChange}}
		require.NoError(t, m.Up())
	})

	t.Run("failure carries code", func(t *testing.T) {
		m := &Migrator{m: &fakeMigrate{upErr: errors.New("syntax error")}}
		err := m.Up()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "syntax error")
	})

	t.Run("nil version is zero", func(t *testing.T) {
		m := &Migrator{m: &fakeMigrate{versionErr: migrate.ErrNilVersion}}
		v, dirty, err := m.Version()
		require.NoError(t, err)
		assert.Zero(t, v)
		assert.False(t, dirty)
	})

	t.Run("close", func(t *testing.T) {
		f := &fakeMigrate{}
		require.NoError(t, (&Migrator{m: f}).Close())
		assert.True(t, f.closed)
	})
}

func TestMigrateURL(t *testing.T) {
	assert.Equal(t, "pgx5://u:p@db:5432/creds", migrateURL("postgres://u:p@db:5432/creds"))
	assert.Equal(t, "pgx5://u:p@db:5432/creds", migrateURL("postgresql://u:p@db:5432/creds"))
	assert.Equal(t, "pgx5://db/creds", migrateURL("pgx5://db/creds"))
}
