package service

import (
	"context"

	"go-school-records/internal/model"
)

type GradeRepo interface {
	ListAll(ctx context.Context) ([]model.GradeRow, error)
	ListByStudent(ctx context.Context, studentID int64) ([]model.GradeRow, error)
	ListOwn(ctx context.Context, studentID int64) ([]model.StudentGrade, error)
	Create(ctx context.Context, g model.Grade) (int64, error)
	Update(ctx context.Context, id int64, req model.UpdateGradeRequest) error
}

type GradeService struct {
	grades GradeRepo
}

func NewGradeService(grades GradeRepo) *GradeService {
	return &GradeService{grades: grades}
}

func (s *GradeService) ListAll(ctx context.Context) ([]model.GradeRow, error) {
	return s.grades.ListAll(ctx)
}

func (s *GradeService) ListByStudent(ctx context.Context, studentID int64) ([]model.GradeRow, error) {
	return s.grades.ListByStudent(ctx, studentID)
}

// ListOwn serves "my grades". The route is already gated on a linked
// student; the nil check here keeps the service safe to call on its own.
func (s *GradeService) ListOwn(ctx context.Context, claims *model.AuthClaims) ([]model.StudentGrade, error) {
	if claims == nil || claims.StudentID == nil {
		return nil, model.ErrStudentNotLinked
	}
	return s.grades.ListOwn(ctx, *claims.StudentID)
}

func (s *GradeService) Create(ctx context.Context, req model.CreateGradeRequest) (int64, error) {
	return s.grades.Create(ctx, model.Grade{
		AlumnoID:  req.AlumnoID,
		MateriaID: req.MateriaID,
		Nota1:     req.Nota1,
		Nota2:     req.Nota2,
		Nota3:     req.Nota3,
	})
}

func (s *GradeService) Update(ctx context.Context, id int64, req model.UpdateGradeRequest) error {
	return s.grades.Update(ctx, id, req)
}
