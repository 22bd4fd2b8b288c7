package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"go-school-records/internal/model"
)

type SubjectRepository struct {
	pool *pgxpool.Pool
}

func NewSubjectRepository(pool *pgxpool.Pool) *SubjectRepository {
	return &SubjectRepository{pool: pool}
}

func (r *SubjectRepository) List(ctx context.Context) ([]model.Subject, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT id, nombre, codigo, anio FROM materias ORDER BY nombre`)
	if err != nil {
		return nil, fmt.Errorf("list subjects: %w", err)
	}
	defer rows.Close()

	return scanSubjects(rows)
}

func (r *SubjectRepository) FindByID(ctx context.Context, id int64) (model.Subject, error) {
	var s model.Subject
	err := r.pool.QueryRow(ctx,
		`SELECT id, nombre, codigo, anio FROM materias WHERE id = $1`, id).
		Scan(&s.ID, &s.Nombre, &s.Codigo, &s.Anio)

	if errors.Is(err, pgx.ErrNoRows) {
		return model.Subject{}, model.ErrSubjectNotFound
	}
	if err != nil {
		return model.Subject{}, fmt.Errorf("find subject by id: %w", err)
	}
	return s, nil
}

func (r *SubjectRepository) Create(ctx context.Context, s model.Subject) (int64, error) {
	var id int64
	err := r.pool.QueryRow(ctx,
		`INSERT INTO materias (nombre, codigo, anio) VALUES ($1, $2, $3) RETURNING id`,
		s.Nombre, s.Codigo, s.Anio).Scan(&id)
	if isUniqueViolation(err) {
		return 0, model.ErrDuplicateCode
	}
	if err != nil {
		return 0, fmt.Errorf("create subject: %w", err)
	}
	return id, nil
}

func (r *SubjectRepository) Update(ctx context.Context, id int64, nombre *string, codigo *string, anio *int) error {
	tag, err := r.pool.Exec(ctx,
		`UPDATE materias SET
		     nombre = COALESCE($2, nombre),
		     codigo = COALESCE($3, codigo),
		     anio = COALESCE($4, anio)
		 WHERE id = $1`,
		id, nombre, codigo, anio)
	if isUniqueViolation(err) {
		return model.ErrDuplicateCode
	}
	if err != nil {
		return fmt.Errorf("update subject: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return model.ErrSubjectNotFound
	}
	return nil
}

func (r *SubjectRepository) Delete(ctx context.Context, id int64) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM materias WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete subject: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return model.ErrSubjectNotFound
	}
	return nil
}

// ListForStudent returns the subjects a student has grades in.
func (r *SubjectRepository) ListForStudent(ctx context.Context, studentID int64) ([]model.Subject, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT DISTINCT m.id, m.nombre, m.codigo, m.anio
		 FROM materias m
		 JOIN notas n ON m.id = n.materia_id
		 WHERE n.alumno_id = $1
		 ORDER BY m.nombre`, studentID)
	if err != nil {
		return nil, fmt.Errorf("list subjects for student: %w", err)
	}
	defer rows.Close()

	return scanSubjects(rows)
}

func scanSubjects(rows pgx.Rows) ([]model.Subject, error) {
	subjects := make([]model.Subject, 0)
	for rows.Next() {
		var s model.Subject
		if err := rows.Scan(&s.ID, &s.Nombre, &s.Codigo, &s.Anio); err != nil {
			return nil, fmt.Errorf("scan subject: %w", err)
		}
		subjects = append(subjects, s)
	}
	return subjects, rows.Err()
}
