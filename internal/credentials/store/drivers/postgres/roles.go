package postgres

import (
	"context"

	"github.com/aussiebroadwan/credentials/internal/credentials/domain"
)

type rolesRepo struct {
	pool pool
}

func (r *rolesRepo) GetRoleByName(ctx context.Context, name string) (domain.Role, error) {
	var role domain.Role
	err := r.pool.QueryRow(ctx,
		`SELECT id, role_name, created_at FROM roles WHERE role_name = $1`,
		name,
	).Scan(&role.ID, &role.Name, &role.CreatedAt)
	if err != nil {
		return domain.Role{}, mapNotFound(err)
	}
	return role, nil
}

func (r *rolesRepo) ListAll(ctx context.Context) ([]domain.Role, error) {
	rows, err := r.pool.Query(ctx, `SELECT id, role_name, created_at FROM roles ORDER BY id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var roles []domain.Role
	for rows.Next() {
		var role domain.Role
		if err := rows.Scan(&role.ID, &role.Name, &role.CreatedAt); err != nil {
			return nil, err
		}
		roles = append(roles, role)
	}
	return roles, rows.Err()
}

func (r *rolesRepo) CreateRole(ctx context.Context, name string) (domain.Role, error) {
	role := domain.Role{Name: name}
	err := r.pool.QueryRow(ctx,
		`INSERT INTO roles (role_name) VALUES ($1) RETURNING id, created_at`,
		name,
	).Scan(&role.ID, &role.CreatedAt)
	if err != nil {
		return domain.Role{}, mapConstraint(err)
	}
	return role, nil
}
