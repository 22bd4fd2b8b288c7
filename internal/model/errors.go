package model

import "errors"

var (
	// Auth related errors
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrUnauthenticated    = errors.New("unauthenticated")
	ErrForbidden          = errors.New("forbidden")

	// Entity related errors
	ErrUserNotFound    = errors.New("user not found")
	ErrRoleNotFound    = errors.New("role not found")
	ErrStudentNotFound = errors.New("student not found")
	ErrSubjectNotFound = errors.New("subject not found")
	ErrGradeNotFound   = errors.New("grade not found")

	// Constraint related errors
	ErrUsernameTaken     = errors.New("username already exists")
	ErrUserAlreadyLinked = errors.New("user already linked to a student")
	ErrDuplicateCode     = errors.New("subject code already exists")
	ErrDuplicateRoleName = errors.New("role name already exists")
	ErrStudentNotLinked  = errors.New("identity has no linked student")
)
