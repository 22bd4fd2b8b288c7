package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"go-school-records/internal/model"
)

type stubStudentRepo struct {
	students map[int64]model.Student
	created  []model.Student
}

func (s *stubStudentRepo) List(context.Context) ([]model.Student, error) {
	out := make([]model.Student, 0, len(s.students))
	for _, st := range s.students {
		out = append(out, st)
	}
	return out, nil
}

func (s *stubStudentRepo) FindByID(_ context.Context, id int64) (model.Student, error) {
	st, ok := s.students[id]
	if !ok {
		return model.Student{}, model.ErrStudentNotFound
	}
	return st, nil
}

func (s *stubStudentRepo) Create(_ context.Context, st model.Student) (int64, error) {
	s.created = append(s.created, st)
	return int64(len(s.created)), nil
}

func (s *stubStudentRepo) Update(context.Context, int64, *string, *string, *int64) error {
	return nil
}

func newStudentFixture() *stubStudentRepo {
	return &stubStudentRepo{
		students: map[int64]model.Student{
			7: {ID: 7, Nombre: "Juan", Apellido: "Pérez", DNI: 30111222},
			9: {ID: 9, Nombre: "Lucía", Apellido: "Gómez", DNI: 28999111},
		},
	}
}

func TestStudentGetMissingRecordBeforeOwnership(t *testing.T) {
	svc := NewStudentService(newStudentFixture())
	seven := int64(7)
	claims := &model.AuthClaims{UserID: 2, Roles: model.NewRoleSet("alumno"), StudentID: &seven}

	// The record does not exist, so even a caller who would be denied
	// ownership gets a not-found, never a forbidden.
	_, err := svc.Get(context.Background(), claims, 99)
	require.ErrorIs(t, err, model.ErrStudentNotFound)
}

func TestStudentGetOwnershipDeniedOnExistingRecord(t *testing.T) {
	svc := NewStudentService(newStudentFixture())
	seven := int64(7)
	claims := &model.AuthClaims{UserID: 2, Roles: model.NewRoleSet("alumno"), StudentID: &seven}

	_, err := svc.Get(context.Background(), claims, 9)
	require.ErrorIs(t, err, model.ErrForbidden)
}

func TestStudentGetOwnRecord(t *testing.T) {
	svc := NewStudentService(newStudentFixture())
	seven := int64(7)
	claims := &model.AuthClaims{UserID: 2, Roles: model.NewRoleSet("alumno"), StudentID: &seven}

	student, err := svc.Get(context.Background(), claims, 7)
	require.NoError(t, err)
	require.Equal(t, int64(7), student.ID)
	require.Equal(t, "Juan", student.Nombre)
}

func TestStudentGetAdminSeesAnyRecord(t *testing.T) {
	svc := NewStudentService(newStudentFixture())
	claims := &model.AuthClaims{UserID: 1, Roles: model.NewRoleSet("admin")}

	student, err := svc.Get(context.Background(), claims, 9)
	require.NoError(t, err)
	require.Equal(t, int64(9), student.ID)
}

func TestStudentCreateBindsUserLink(t *testing.T) {
	repo := newStudentFixture()
	svc := NewStudentService(repo)

	_, err := svc.Create(context.Background(), model.CreateStudentRequest{
		Nombre:    "Marta",
		Apellido:  "Suárez",
		DNI:       31222333,
		UsuarioID: 4,
	})
	require.NoError(t, err)
	require.Len(t, repo.created, 1)
	require.NotNil(t, repo.created[0].UserID)
	require.Equal(t, int64(4), *repo.created[0].UserID)
}

type stubGradeRepo struct {
	own map[int64][]model.StudentGrade
}

func (s *stubGradeRepo) ListAll(context.Context) ([]model.GradeRow, error) { return nil, nil }

func (s *stubGradeRepo) ListByStudent(context.Context, int64) ([]model.GradeRow, error) {
	return nil, nil
}

func (s *stubGradeRepo) ListOwn(_ context.Context, studentID int64) ([]model.StudentGrade, error) {
	return s.own[studentID], nil
}

func (s *stubGradeRepo) Create(context.Context, model.Grade) (int64, error) { return 0, nil }

func (s *stubGradeRepo) Update(context.Context, int64, model.UpdateGradeRequest) error { return nil }

func TestGradeListOwnRequiresLink(t *testing.T) {
	svc := NewGradeService(&stubGradeRepo{})

	_, err := svc.ListOwn(context.Background(), nil)
	require.ErrorIs(t, err, model.ErrStudentNotLinked)

	_, err = svc.ListOwn(context.Background(), &model.AuthClaims{Roles: model.NewRoleSet("alumno")})
	require.ErrorIs(t, err, model.ErrStudentNotLinked)
}

func TestGradeListOwnUsesBoundStudent(t *testing.T) {
	seven := int64(7)
	repo := &stubGradeRepo{
		own: map[int64][]model.StudentGrade{
			7: {{MateriaNombre: "Matemática"}},
		},
	}
	svc := NewGradeService(repo)

	grades, err := svc.ListOwn(context.Background(), &model.AuthClaims{
		Roles:     model.NewRoleSet("alumno"),
		StudentID: &seven,
	})
	require.NoError(t, err)
	require.Len(t, grades, 1)
	require.Equal(t, "Matemática", grades[0].MateriaNombre)
}
