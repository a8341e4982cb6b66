package service

import (
	"context"
	"sync"
	"time"

	"github.com/aussiebroadwan/credentials/internal/credentials/domain"
	"github.com/aussiebroadwan/credentials/internal/credentials/store"
)

// fakeStore is an in-memory store.Store that counts writes and can be told
// to fail.
type fakeStore struct {
	users *fakeUsers
	roles *fakeRoles
}

func newFakeStore(roles ...string) *fakeStore {
	fr := &fakeRoles{byName: map[string]domain.Role{}}
	for i, name := range roles {
		fr.byName[name] = domain.Role{ID: int64(i + 1), Name: name, CreatedAt: time.Now()}
	}
	return &fakeStore{
		users: &fakeUsers{byName: map[string]domain.User{}},
		roles: fr,
	}
}

func (f *fakeStore) Users() store.Users             { return f.users }
func (f *fakeStore) Roles() store.Roles             { return f.roles }
func (f *fakeStore) ApplyMigrations() error         { return nil }
func (f *fakeStore) Close() error                   { return nil }
func (f *fakeStore) Ping(ctx context.Context) error { return nil }

type fakeUsers struct {
	mu          sync.Mutex
	byName      map[string]domain.User
	nextID      int64
	createCalls int
	updateCalls int

	createErr error
	getErr    error
	updateErr error
}

func (f *fakeUsers) CreateUser(ctx context.Context, u domain.User) (domain.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.createCalls++
	if f.createErr != nil {
		return domain.User{}, f.createErr
	}
	if _, ok := f.byName[u.Username]; ok {
		return domain.User{}, store.ErrAlreadyExists
	}

	f.nextID++
	u.ID = f.nextID
	u.CreatedAt = time.Now()
	f.byName[u.Username] = u
	return u, nil
}

func (f *fakeUsers) GetUserByUsername(ctx context.Context, username string) (domain.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.getErr != nil {
		return domain.User{}, f.getErr
	}
	u, ok := f.byName[username]
	if !ok {
		return domain.User{}, store.ErrNotFound
	}
	return u, nil
}

func (f *fakeUsers) ListUsers(ctx context.Context) ([]domain.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	out := make([]domain.User, 0, len(f.byName))
	for _, u := range f.byName {
		out = append(out, u)
	}
	return out, nil
}

func (f *fakeUsers) UpdatePasswordHash(ctx context.Context, userID int64, newHash string) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.updateCalls++
	if f.updateErr != nil {
		return f.updateErr
	}
	for name, u := range f.byName {
		if u.ID == userID {
			u.PasswordHash = newHash
			f.byName[name] = u
			return nil
		}
	}
	return store.ErrNotFound
}

// put inserts a user directly, bypassing hashing.
func (f *fakeUsers) put(u domain.User) domain.User {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.nextID++
	u.ID = f.nextID
	f.byName[u.Username] = u
	return u
}

type fakeRoles struct {
	mu     sync.Mutex
	byName map[string]domain.Role
	getErr error
}

func (f *fakeRoles) GetRoleByName(ctx context.Context, name string) (domain.Role, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.getErr != nil {
		return domain.Role{}, f.getErr
	}
	r, ok := f.byName[name]
	if !ok {
		return domain.Role{}, store.ErrNotFound
	}
	return r, nil
}

func (f *fakeRoles) ListAll(ctx context.Context) ([]domain.Role, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	out := make([]domain.Role, 0, len(f.byName))
	for _, r := range f.byName {
		out = append(out, r)
	}
	return out, nil
}

func (f *fakeRoles) CreateRole(ctx context.Context, name string) (domain.Role, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if _, ok := f.byName[name]; ok {
		return domain.Role{}, store.ErrAlreadyExists
	}
	r := domain.Role{ID: int64(len(f.byName) + 1), Name: name, CreatedAt: time.Now()}
	f.byName[name] = r
	return r, nil
}
