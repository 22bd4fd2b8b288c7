package model

// LoginResponse is the legacy flat shape the dashboard expects: the token
// plus a denormalized view of the identity for immediate client use.
type LoginResponse struct {
	Success  bool     `json:"success"`
	Token    string   `json:"token"`
	Username string   `json:"username"`
	Roles    []string `json:"roles"`
	AlumnoID *int64   `json:"alumno_id"`
}

// LoginErrorResponse is the 400 body for rejected logins. Unknown user and
// wrong password share the status code; only the text differs.
type LoginErrorResponse struct {
	Success bool   `json:"success"`
	Error   string `json:"error"`
}

// ErrorResponse is the deny body used by middleware and handlers.
type ErrorResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

type MeResponse struct {
	Success  bool     `json:"success"`
	UserID   int64    `json:"user_id"`
	Username string   `json:"username"`
	Roles    []string `json:"roles"`
	AlumnoID *int64   `json:"alumno_id"`
}
