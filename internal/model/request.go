package model

type LoginRequest struct {
	Username string `json:"username" validate:"required,alphanum,max=20"`
	Password string `json:"password" validate:"required,userpassword"`
}

type CreateUserRequest struct {
	Username string `json:"username" validate:"required,alphanum,max=20"`
	Password string `json:"password" validate:"required,userpassword"`
}

type UpdateUserRequest struct {
	Password *string `json:"password" validate:"omitempty,userpassword"`
	Active   *bool   `json:"activo"`
}

type AssignRoleRequest struct {
	RolID int64 `json:"rolId" validate:"required,gt=0"`
}

type CreateRoleRequest struct {
	Nombre string `json:"nombre" validate:"required,alphaspace,max=50"`
}

type CreateStudentRequest struct {
	Nombre    string `json:"nombre" validate:"required"`
	Apellido  string `json:"apellido" validate:"required"`
	DNI       int64  `json:"dni" validate:"required,gt=0"`
	UsuarioID int64  `json:"usuario_id" validate:"required,gt=0"`
}

type UpdateStudentRequest struct {
	Nombre   *string `json:"nombre" validate:"omitempty,min=1"`
	Apellido *string `json:"apellido" validate:"omitempty,min=1"`
	DNI      *int64  `json:"dni" validate:"omitempty,gt=0"`
}

type CreateSubjectRequest struct {
	Nombre string `json:"nombre" validate:"required,min=3,max=100"`
	Codigo string `json:"codigo" validate:"required,alphanum,max=10"`
	Anio   int    `json:"anio" validate:"required,gte=1900,lte=2099"`
}

type UpdateSubjectRequest struct {
	Nombre *string `json:"nombre" validate:"omitempty,min=3,max=100"`
	Codigo *string `json:"codigo" validate:"omitempty,alphanum,max=10"`
	Anio   *int    `json:"anio" validate:"omitempty,gte=1900,lte=2099"`
}

type CreateGradeRequest struct {
	AlumnoID  int64 `json:"alumno_id" validate:"required,gt=0"`
	MateriaID int64 `json:"materia_id" validate:"required,gt=0"`
	Nota1     *int  `json:"nota1" validate:"omitempty,gte=1,lte=10"`
	Nota2     *int  `json:"nota2" validate:"omitempty,gte=1,lte=10"`
	Nota3     *int  `json:"nota3" validate:"omitempty,gte=1,lte=10"`
}

type UpdateGradeRequest struct {
	AlumnoID  *int64 `json:"alumno_id" validate:"omitempty,gt=0"`
	MateriaID *int64 `json:"materia_id" validate:"omitempty,gt=0"`
	Nota1     *int   `json:"nota1" validate:"omitempty,gte=1,lte=10"`
	Nota2     *int   `json:"nota2" validate:"omitempty,gte=1,lte=10"`
	Nota3     *int   `json:"nota3" validate:"omitempty,gte=1,lte=10"`
}
