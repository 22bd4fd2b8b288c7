package model

import (
	"sort"
	"time"
)

const (
	RoleAdmin   = "admin"
	RoleStudent = "alumno"
)

type User struct {
	ID           int64     `json:"id"`
	Username     string    `json:"username"`
	PasswordHash string    `json:"-"`
	Active       bool      `json:"activo"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

type Role struct {
	ID     int64  `json:"id"`
	Nombre string `json:"nombre"`
}

// RoleSet holds the role names of an identity. Membership is what matters;
// order and duplicates are meaningless.
type RoleSet map[string]struct{}

func NewRoleSet(names ...string) RoleSet {
	set := make(RoleSet, len(names))
	for _, name := range names {
		set[name] = struct{}{}
	}
	return set
}

func (s RoleSet) Has(name string) bool {
	_, ok := s[name]
	return ok
}

// Names returns the role names in a stable order for responses and claims.
func (s RoleSet) Names() []string {
	names := make([]string, 0, len(s))
	for name := range s {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// AuthClaims is the per-request identity context decoded from a verified
// token. It is never persisted; its lifetime is one request.
type AuthClaims struct {
	UserID    int64
	Username  string
	Roles     RoleSet
	StudentID *int64
	TokenID   string
}
