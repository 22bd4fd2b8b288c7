package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"go-school-records/internal/model"
)

const uniqueViolation = "23505"

type UserRepository struct {
	pool *pgxpool.Pool
}

func NewUserRepository(pool *pgxpool.Pool) *UserRepository {
	return &UserRepository{pool: pool}
}

// FindUserByUsername is an exact, case-sensitive match: "Ana" and "ana" are
// different accounts.
func (r *UserRepository) FindUserByUsername(ctx context.Context, username string) (model.User, error) {
	var u model.User
	err := r.pool.QueryRow(ctx,
		`SELECT id, username, password_hash, activo, created_at, updated_at
		 FROM usuarios WHERE username = $1`, username).
		Scan(&u.ID, &u.Username, &u.PasswordHash, &u.Active, &u.CreatedAt, &u.UpdatedAt)

	if errors.Is(err, pgx.ErrNoRows) {
		return model.User{}, model.ErrUserNotFound
	}
	if err != nil {
		return model.User{}, fmt.Errorf("find user by username: %w", err)
	}
	return u, nil
}

func (r *UserRepository) FindByID(ctx context.Context, id int64) (model.User, error) {
	var u model.User
	err := r.pool.QueryRow(ctx,
		`SELECT id, username, password_hash, activo, created_at, updated_at
		 FROM usuarios WHERE id = $1`, id).
		Scan(&u.ID, &u.Username, &u.PasswordHash, &u.Active, &u.CreatedAt, &u.UpdatedAt)

	if errors.Is(err, pgx.ErrNoRows) {
		return model.User{}, model.ErrUserNotFound
	}
	if err != nil {
		return model.User{}, fmt.Errorf("find user by id: %w", err)
	}
	return u, nil
}

func (r *UserRepository) FindRoleNamesByUserID(ctx context.Context, userID int64) ([]string, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT r.nombre
		 FROM roles r
		 JOIN usuarios_roles ur ON r.id = ur.rol_id
		 WHERE ur.usuario_id = $1`, userID)
	if err != nil {
		return nil, fmt.Errorf("find roles for user: %w", err)
	}
	defer rows.Close()

	names := make([]string, 0)
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, fmt.Errorf("scan role name: %w", err)
		}
		names = append(names, name)
	}
	return names, rows.Err()
}

func (r *UserRepository) FindRolesByUserID(ctx context.Context, userID int64) ([]model.Role, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT r.id, r.nombre
		 FROM roles r
		 JOIN usuarios_roles ur ON r.id = ur.rol_id
		 WHERE ur.usuario_id = $1
		 ORDER BY r.id`, userID)
	if err != nil {
		return nil, fmt.Errorf("find roles for user: %w", err)
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

func (r *UserRepository) Create(ctx context.Context, username string, passwordHash string) (model.User, error) {
	now := time.Now().UTC()

	var u model.User
	err := r.pool.QueryRow(ctx,
		`INSERT INTO usuarios (username, password_hash, activo, created_at, updated_at)
		 VALUES ($1, $2, TRUE, $3, $3)
		 RETURNING id, username, password_hash, activo, created_at, updated_at`,
		username, passwordHash, now).
		Scan(&u.ID, &u.Username, &u.PasswordHash, &u.Active, &u.CreatedAt, &u.UpdatedAt)
	if isUniqueViolation(err) {
		return model.User{}, model.ErrUsernameTaken
	}
	if err != nil {
		return model.User{}, fmt.Errorf("create user: %w", err)
	}
	return u, nil
}

func (r *UserRepository) Update(ctx context.Context, id int64, passwordHash *string, active *bool) error {
	tag, err := r.pool.Exec(ctx,
		`UPDATE usuarios SET
		     password_hash = COALESCE($2, password_hash),
		     activo = COALESCE($3, activo),
		     updated_at = $4
		 WHERE id = $1`,
		id, passwordHash, active, time.Now().UTC())
	if err != nil {
		return fmt.Errorf("update user: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return model.ErrUserNotFound
	}
	return nil
}

func (r *UserRepository) List(ctx context.Context) ([]model.User, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT id, username, password_hash, activo, created_at, updated_at
		 FROM usuarios ORDER BY username`)
	if err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}
	defer rows.Close()

	users := make([]model.User, 0)
	for rows.Next() {
		var u model.User
		if err := rows.Scan(&u.ID, &u.Username, &u.PasswordHash, &u.Active, &u.CreatedAt, &u.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan user: %w", err)
		}
		users = append(users, u)
	}
	return users, rows.Err()
}

func (r *UserRepository) AssignRole(ctx context.Context, userID int64, roleID int64) error {
	_, err := r.pool.Exec(ctx,
		`INSERT INTO usuarios_roles (usuario_id, rol_id) VALUES ($1, $2)
		 ON CONFLICT (usuario_id, rol_id) DO NOTHING`, userID, roleID)
	if err != nil {
		return fmt.Errorf("assign role: %w", err)
	}
	return nil
}

func (r *UserRepository) RemoveRole(ctx context.Context, userID int64, roleID int64) error {
	_, err := r.pool.Exec(ctx,
		`DELETE FROM usuarios_roles WHERE usuario_id = $1 AND rol_id = $2`, userID, roleID)
	if err != nil {
		return fmt.Errorf("remove role: %w", err)
	}
	return nil
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == uniqueViolation
}
