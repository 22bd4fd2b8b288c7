package model

type Student struct {
	ID       int64  `json:"id"`
	Nombre   string `json:"nombre"`
	Apellido string `json:"apellido"`
	DNI      int64  `json:"dni"`
	UserID   *int64 `json:"usuario_id"`
	Username string `json:"username,omitempty"`
}

type Subject struct {
	ID     int64  `json:"id"`
	Nombre string `json:"nombre"`
	Codigo string `json:"codigo"`
	Anio   int    `json:"anio"`
}

type Grade struct {
	ID        int64 `json:"id"`
	AlumnoID  int64 `json:"alumno_id"`
	MateriaID int64 `json:"materia_id"`
	Nota1     *int  `json:"nota1"`
	Nota2     *int  `json:"nota2"`
	Nota3     *int  `json:"nota3"`
}

// GradeRow is the joined listing shown to staff: grade plus the student and
// subject it belongs to.
type GradeRow struct {
	ID             int64  `json:"id"`
	AlumnoNombre   string `json:"alumno_nombre"`
	AlumnoApellido string `json:"alumno_apellido"`
	MateriaNombre  string `json:"materia_nombre"`
	MateriaCodigo  string `json:"materia_codigo"`
	Nota1          *int   `json:"nota1"`
	Nota2          *int   `json:"nota2"`
	Nota3          *int   `json:"nota3"`
}

// StudentGrade is a student's own view of one subject's grades, including
// the average of whichever notas are loaded.
type StudentGrade struct {
	ID            int64    `json:"id"`
	MateriaNombre string   `json:"materia_nombre"`
	MateriaCodigo string   `json:"materia_codigo"`
	Nota1         *int     `json:"nota1"`
	Nota2         *int     `json:"nota2"`
	Nota3         *int     `json:"nota3"`
	Promedio      *float64 `json:"promedio"`
}
