package service

import (
	"context"

	"go-school-records/internal/model"
)

type RoleRepo interface {
	List(ctx context.Context) ([]model.Role, error)
	Create(ctx context.Context, nombre string) (model.Role, error)
	Update(ctx context.Context, id int64, nombre string) error
}

type RoleService struct {
	roles RoleRepo
}

func NewRoleService(roles RoleRepo) *RoleService {
	return &RoleService{roles: roles}
}

func (s *RoleService) List(ctx context.Context) ([]model.Role, error) {
	return s.roles.List(ctx)
}

func (s *RoleService) Create(ctx context.Context, nombre string) (model.Role, error) {
	return s.roles.Create(ctx, nombre)
}

func (s *RoleService) Update(ctx context.Context, id int64, nombre string) error {
	return s.roles.Update(ctx, id, nombre)
}
