package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"go-school-records/internal/model"
)

type RoleRepository struct {
	pool *pgxpool.Pool
}

func NewRoleRepository(pool *pgxpool.Pool) *RoleRepository {
	return &RoleRepository{pool: pool}
}

func (r *RoleRepository) List(ctx context.Context) ([]model.Role, error) {
	rows, err := r.pool.Query(ctx, `SELECT id, nombre FROM roles ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("list roles: %w", err)
	}
	defer rows.Close()

	roles := make([]model.Role, 0)
	for rows.Next() {
		var role model.Role
		if err := rows.Scan(&role.ID, &role.Nombre); err != nil {
			return nil, fmt.Errorf("scan role: %w", err)
		}
		roles = append(roles, role)
	}
	return roles, rows.Err()
}

func (r *RoleRepository) FindByID(ctx context.Context, id int64) (model.Role, error) {
	var role model.Role
	err := r.pool.QueryRow(ctx, `SELECT id, nombre FROM roles WHERE id = $1`, id).
		Scan(&role.ID, &role.Nombre)

	if errors.Is(err, pgx.ErrNoRows) {
		return model.Role{}, model.ErrRoleNotFound
	}
	if err != nil {
		return model.Role{}, fmt.Errorf("find role by id: %w", err)
	}
	return role, nil
}

func (r *RoleRepository) Create(ctx context.Context, nombre string) (model.Role, error) {
	var role model.Role
	err := r.pool.QueryRow(ctx,
		`INSERT INTO roles (nombre) VALUES ($1) RETURNING id, nombre`, nombre).
		Scan(&role.ID, &role.Nombre)
	if isUniqueViolation(err) {
		return model.Role{}, model.ErrDuplicateRoleName
	}
	if err != nil {
		return model.Role{}, fmt.Errorf("create role: %w", err)
	}
	return role, nil
}

func (r *RoleRepository) Update(ctx context.Context, id int64, nombre string) error {
	tag, err := r.pool.Exec(ctx, `UPDATE roles SET nombre = $2 WHERE id = $1`, id, nombre)
	if isUniqueViolation(err) {
		return model.ErrDuplicateRoleName
	}
	if err != nil {
		return fmt.Errorf("update role: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return model.ErrRoleNotFound
	}
	return nil
}
