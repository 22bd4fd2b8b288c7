package validation

import (
	"testing"

	"github.com/stretchr/testify/require"

	"go-school-records/internal/model"
)

func TestLoginRequestRules(t *testing.T) {
	v := New()

	cases := []struct {
		name     string
		username string
		password string
		valid    bool
	}{
		{"valid credentials", "ana", "Clave123", true},
		{"empty username", "", "Clave123", false},
		{"username with spaces", "ana lopez", "Clave123", false},
		{"username too long", "abcdefghijklmnopqrstu", "Clave123", false},
		{"password too short", "ana", "Abc123", false},
		{"password without digit", "ana", "Clavemala", false},
		{"password without lowercase", "ana", "CLAVE123", false},
		{"empty password", "ana", "", false},
		{"digits-only username", "12345", "Clave123", true},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			err := v.Struct(model.LoginRequest{Username: tc.username, Password: tc.password})
			if tc.valid {
				require.NoError(t, err)
			} else {
				require.Error(t, err)
			}
		})
	}
}

func TestFieldFailedNamesTheOffendingField(t *testing.T) {
	v := New()

	err := v.Struct(model.LoginRequest{Username: "ana lopez", Password: "Clave123"})
	require.Error(t, err)
	require.True(t, FieldFailed(err, "Username"))
	require.False(t, FieldFailed(err, "Password"))

	err = v.Struct(model.LoginRequest{Username: "ana", Password: "corta"})
	require.Error(t, err)
	require.False(t, FieldFailed(err, "Username"))
	require.True(t, FieldFailed(err, "Password"))
}

func TestRoleNameRules(t *testing.T) {
	v := New()

	cases := []struct {
		name  string
		value string
		valid bool
	}{
		{"single word", "admin", true},
		{"with space", "jefe de curso", true},
		{"accented letters", "coordinación", true},
		{"digits rejected", "rol2", false},
		{"punctuation rejected", "admin!", false},
		{"empty rejected", "", false},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			err := v.Struct(model.CreateRoleRequest{Nombre: tc.value})
			if tc.valid {
				require.NoError(t, err)
			} else {
				require.Error(t, err)
			}
		})
	}
}

func TestSubjectRules(t *testing.T) {
	v := New()

	valid := model.CreateSubjectRequest{Nombre: "Matemática", Codigo: "MAT101", Anio: 2026}
	require.NoError(t, v.Struct(valid))

	tooEarly := valid
	tooEarly.Anio = 1850
	require.Error(t, v.Struct(tooEarly))

	badCode := valid
	badCode.Codigo = "MAT-101"
	require.Error(t, v.Struct(badCode))
}

func TestGradeBounds(t *testing.T) {
	v := New()

	ten := 10
	eleven := 11
	negative := -3

	require.NoError(t, v.Struct(model.CreateGradeRequest{AlumnoID: 7, MateriaID: 1, Nota1: &ten}))
	require.NoError(t, v.Struct(model.CreateGradeRequest{AlumnoID: 7, MateriaID: 1}))
	require.Error(t, v.Struct(model.CreateGradeRequest{AlumnoID: 7, MateriaID: 1, Nota2: &eleven}))
	require.Error(t, v.Struct(model.CreateGradeRequest{AlumnoID: 7, MateriaID: 1, Nota3: &negative}))
	require.Error(t, v.Struct(model.CreateGradeRequest{MateriaID: 1, Nota1: &ten}))
}
