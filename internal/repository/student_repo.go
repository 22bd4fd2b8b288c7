package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"go-school-records/internal/model"
)

type StudentRepository struct {
	pool *pgxpool.Pool
}

func NewStudentRepository(pool *pgxpool.Pool) *StudentRepository {
	return &StudentRepository{pool: pool}
}

func (r *StudentRepository) List(ctx context.Context) ([]model.Student, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT id, nombre, apellido, dni, usuario_id FROM alumnos ORDER BY apellido, nombre`)
	if err != nil {
		return nil, fmt.Errorf("list students: %w", err)
	}
	defer rows.Close()

	students := make([]model.Student, 0)
	for rows.Next() {
		var s model.Student
		if err := rows.Scan(&s.ID, &s.Nombre, &s.Apellido, &s.DNI, &s.UserID); err != nil {
			return nil, fmt.Errorf("scan student: %w", err)
		}
		students = append(students, s)
	}
	return students, rows.Err()
}

// FindByID joins the owning account's username for the detail view.
func (r *StudentRepository) FindByID(ctx context.Context, id int64) (model.Student, error) {
	var s model.Student
	err := r.pool.QueryRow(ctx,
		`SELECT a.id, a.nombre, a.apellido, a.dni, a.usuario_id, COALESCE(u.username, '')
		 FROM alumnos a
		 LEFT JOIN usuarios u ON a.usuario_id = u.id
		 WHERE a.id = $1`, id).
		Scan(&s.ID, &s.Nombre, &s.Apellido, &s.DNI, &s.UserID, &s.Username)

	if errors.Is(err, pgx.ErrNoRows) {
		return model.Student{}, model.ErrStudentNotFound
	}
	if err != nil {
		return model.Student{}, fmt.Errorf("find student by id: %w", err)
	}
	return s, nil
}

// FindStudentIDByUserID resolves the student record linked to a login, if
// any. A user without a linked student yields (nil, nil).
func (r *StudentRepository) FindStudentIDByUserID(ctx context.Context, userID int64) (*int64, error) {
	var id int64
	err := r.pool.QueryRow(ctx,
		`SELECT id FROM alumnos WHERE usuario_id = $1`, userID).Scan(&id)

	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("find student id by user id: %w", err)
	}
	return &id, nil
}

func (r *StudentRepository) Create(ctx context.Context, s model.Student) (int64, error) {
	var id int64
	err := r.pool.QueryRow(ctx,
		`INSERT INTO alumnos (nombre, apellido, dni, usuario_id)
		 VALUES ($1, $2, $3, $4) RETURNING id`,
		s.Nombre, s.Apellido, s.DNI, s.UserID).Scan(&id)
	if isUniqueViolation(err) {
		return 0, model.ErrUserAlreadyLinked
	}
	if err != nil {
		return 0, fmt.Errorf("create student: %w", err)
	}
	return id, nil
}

func (r *StudentRepository) Update(ctx context.Context, id int64, nombre *string, apellido *string, dni *int64) error {
	tag, err := r.pool.Exec(ctx,
		`UPDATE alumnos SET
		     nombre = COALESCE($2, nombre),
		     apellido = COALESCE($3, apellido),
		     dni = COALESCE($4, dni)
		 WHERE id = $1`,
		id, nombre, apellido, dni)
	if err != nil {
		return fmt.Errorf("update student: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return model.ErrStudentNotFound
	}
	return nil
}
