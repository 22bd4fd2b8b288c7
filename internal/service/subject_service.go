package service

import (
	"context"

	"go-school-records/internal/model"
)

type SubjectRepo interface {
	List(ctx context.Context) ([]model.Subject, error)
	FindByID(ctx context.Context, id int64) (model.Subject, error)
	Create(ctx context.Context, s model.Subject) (int64, error)
	Update(ctx context.Context, id int64, nombre *string, codigo *string, anio *int) error
	Delete(ctx context.Context, id int64) error
	ListForStudent(ctx context.Context, studentID int64) ([]model.Subject, error)
}

type SubjectService struct {
	subjects SubjectRepo
}

func NewSubjectService(subjects SubjectRepo) *SubjectService {
	return &SubjectService{subjects: subjects}
}

func (s *SubjectService) List(ctx context.Context) ([]model.Subject, error) {
	return s.subjects.List(ctx)
}

func (s *SubjectService) Get(ctx context.Context, id int64) (model.Subject, error) {
	return s.subjects.FindByID(ctx, id)
}

func (s *SubjectService) Create(ctx context.Context, req model.CreateSubjectRequest) (model.Subject, error) {
	subject := model.Subject{Nombre: req.Nombre, Codigo: req.Codigo, Anio: req.Anio}
	id, err := s.subjects.Create(ctx, subject)
	if err != nil {
		return model.Subject{}, err
	}
	subject.ID = id
	return subject, nil
}

func (s *SubjectService) Update(ctx context.Context, id int64, req model.UpdateSubjectRequest) error {
	return s.subjects.Update(ctx, id, req.Nombre, req.Codigo, req.Anio)
}

func (s *SubjectService) Delete(ctx context.Context, id int64) error {
	return s.subjects.Delete(ctx, id)
}

// ListOwn returns the subjects the caller's linked student has grades in.
func (s *SubjectService) ListOwn(ctx context.Context, claims *model.AuthClaims) ([]model.Subject, error) {
	if claims == nil || claims.StudentID == nil {
		return nil, model.ErrStudentNotLinked
	}
	return s.subjects.ListForStudent(ctx, *claims.StudentID)
}
