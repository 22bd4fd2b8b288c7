package service

import (
	"context"

	"go-school-records/internal/model"
)

type StudentRepo interface {
	List(ctx context.Context) ([]model.Student, error)
	FindByID(ctx context.Context, id int64) (model.Student, error)
	Create(ctx context.Context, s model.Student) (int64, error)
	Update(ctx context.Context, id int64, nombre *string, apellido *string, dni *int64) error
}

type StudentService struct {
	students StudentRepo
}

func NewStudentService(students StudentRepo) *StudentService {
	return &StudentService{students: students}
}

func (s *StudentService) List(ctx context.Context) ([]model.Student, error) {
	return s.students.List(ctx)
}

// Get fetches the record before deciding access, so a missing student is a
// not-found and never a forbidden. Only then does the ownership check run:
// admins see anyone, a linked student only themselves.
func (s *StudentService) Get(ctx context.Context, claims *model.AuthClaims, id int64) (model.Student, error) {
	student, err := s.students.FindByID(ctx, id)
	if err != nil {
		return model.Student{}, err
	}

	if !CanAccessStudent(claims, id) {
		return model.Student{}, model.ErrForbidden
	}

	return student, nil
}

func (s *StudentService) Create(ctx context.Context, req model.CreateStudentRequest) (int64, error) {
	return s.students.Create(ctx, model.Student{
		Nombre:   req.Nombre,
		Apellido: req.Apellido,
		DNI:      req.DNI,
		UserID:   &req.UsuarioID,
	})
}

func (s *StudentService) Update(ctx context.Context, id int64, req model.UpdateStudentRequest) error {
	return s.students.Update(ctx, id, req.Nombre, req.Apellido, req.DNI)
}
