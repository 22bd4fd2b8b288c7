package repository

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"go-school-records/internal/model"
)

type GradeRepository struct {
	pool *pgxpool.Pool
}

func NewGradeRepository(pool *pgxpool.Pool) *GradeRepository {
	return &GradeRepository{pool: pool}
}

func (r *GradeRepository) ListAll(ctx context.Context) ([]model.GradeRow, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT n.id, a.nombre, a.apellido, m.nombre, m.codigo, n.nota1, n.nota2, n.nota3
		 FROM notas n
		 JOIN alumnos a ON n.alumno_id = a.id
		 JOIN materias m ON n.materia_id = m.id
		 ORDER BY a.apellido, m.nombre`)
	if err != nil {
		return nil, fmt.Errorf("list grades: %w", err)
	}
	defer rows.Close()

	return scanGradeRows(rows)
}

func (r *GradeRepository) ListByStudent(ctx context.Context, studentID int64) ([]model.GradeRow, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT n.id, a.nombre, a.apellido, m.nombre, m.codigo, n.nota1, n.nota2, n.nota3
		 FROM notas n
		 JOIN alumnos a ON n.alumno_id = a.id
		 JOIN materias m ON n.materia_id = m.id
		 WHERE n.alumno_id = $1
		 ORDER BY m.nombre`, studentID)
	if err != nil {
		return nil, fmt.Errorf("list grades by student: %w", err)
	}
	defer rows.Close()

	return scanGradeRows(rows)
}

// ListOwn is the student-facing view: each subject's notas with the average
// of whichever notas are loaded, rounded to two decimals.
func (r *GradeRepository) ListOwn(ctx context.Context, studentID int64) ([]model.StudentGrade, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT n.id, m.nombre, m.codigo, n.nota1, n.nota2, n.nota3,
		        ROUND((COALESCE(n.nota1, 0) + COALESCE(n.nota2, 0) + COALESCE(n.nota3, 0))::numeric /
		              NULLIF((n.nota1 IS NOT NULL)::int + (n.nota2 IS NOT NULL)::int + (n.nota3 IS NOT NULL)::int, 0), 2)
		 FROM notas n
		 JOIN materias m ON n.materia_id = m.id
		 WHERE n.alumno_id = $1
		 ORDER BY m.nombre`, studentID)
	if err != nil {
		return nil, fmt.Errorf("list own grades: %w", err)
	}
	defer rows.Close()

	grades := make([]model.StudentGrade, 0)
	for rows.Next() {
		var g model.StudentGrade
		if err := rows.Scan(&g.ID, &g.MateriaNombre, &g.MateriaCodigo, &g.Nota1, &g.Nota2, &g.Nota3, &g.Promedio); err != nil {
			return nil, fmt.Errorf("scan own grade: %w", err)
		}
		grades = append(grades, g)
	}
	return grades, rows.Err()
}

func (r *GradeRepository) Create(ctx context.Context, g model.Grade) (int64, error) {
	var id int64
	err := r.pool.QueryRow(ctx,
		`INSERT INTO notas (alumno_id, materia_id, nota1, nota2, nota3)
		 VALUES ($1, $2, $3, $4, $5) RETURNING id`,
		g.AlumnoID, g.MateriaID, g.Nota1, g.Nota2, g.Nota3).Scan(&id)
	if err != nil {
		return 0, fmt.Errorf("create grade: %w", err)
	}
	return id, nil
}

func (r *GradeRepository) Update(ctx context.Context, id int64, req model.UpdateGradeRequest) error {
	tag, err := r.pool.Exec(ctx,
		`UPDATE notas SET
		     alumno_id = COALESCE($2, alumno_id),
		     materia_id = COALESCE($3, materia_id),
		     nota1 = COALESCE($4, nota1),
		     nota2 = COALESCE($5, nota2),
		     nota3 = COALESCE($6, nota3)
		 WHERE id = $1`,
		id, req.AlumnoID, req.MateriaID, req.Nota1, req.Nota2, req.Nota3)
	if err != nil {
		return fmt.Errorf("update grade: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return model.ErrGradeNotFound
	}
	return nil
}

func scanGradeRows(rows pgx.Rows) ([]model.GradeRow, error) {
	grades := make([]model.GradeRow, 0)
	for rows.Next() {
		var g model.GradeRow
		if err := rows.Scan(&g.ID, &g.AlumnoNombre, &g.AlumnoApellido, &g.MateriaNombre, &g.MateriaCodigo, &g.Nota1, &g.Nota2, &g.Nota3); err != nil {
			return nil, fmt.Errorf("scan grade: %w", err)
		}
		grades = append(grades, g)
	}
	return grades, rows.Err()
}
