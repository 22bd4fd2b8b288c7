package service

import (
	"context"

	"go-school-records/internal/model"
)

type UserRepo interface {
	List(ctx context.Context) ([]model.User, error)
	FindByID(ctx context.Context, id int64) (model.User, error)
	FindRolesByUserID(ctx context.Context, userID int64) ([]model.Role, error)
	Create(ctx context.Context, username string, passwordHash string) (model.User, error)
	Update(ctx context.Context, id int64, passwordHash *string, active *bool) error
	AssignRole(ctx context.Context, userID int64, roleID int64) error
	RemoveRole(ctx context.Context, userID int64, roleID int64) error
}

type RoleStore interface {
	FindByID(ctx context.Context, id int64) (model.Role, error)
}

type UserService struct {
	users UserRepo
	roles RoleStore
}

func NewUserService(users UserRepo, roles RoleStore) *UserService {
	return &UserService{users: users, roles: roles}
}

func (s *UserService) List(ctx context.Context) ([]model.User, error) {
	return s.users.List(ctx)
}

func (s *UserService) Get(ctx context.Context, id int64) (model.User, error) {
	return s.users.FindByID(ctx, id)
}

func (s *UserService) Roles(ctx context.Context, userID int64) ([]model.Role, error) {
	if _, err := s.users.FindByID(ctx, userID); err != nil {
		return nil, err
	}
	return s.users.FindRolesByUserID(ctx, userID)
}

func (s *UserService) Create(ctx context.Context, req model.CreateUserRequest) (model.User, error) {
	hash, err := HashPassword(req.Password)
	if err != nil {
		return model.User{}, err
	}
	return s.users.Create(ctx, req.Username, hash)
}

func (s *UserService) Update(ctx context.Context, id int64, req model.UpdateUserRequest) error {
	var hash *string
	if req.Password != nil {
		hashed, err := HashPassword(*req.Password)
		if err != nil {
			return err
		}
		hash = &hashed
	}
	return s.users.Update(ctx, id, hash, req.Active)
}

// AssignRole validates both sides of the pair: the user must exist and the
// role id must name a role from the roles table.
func (s *UserService) AssignRole(ctx context.Context, userID int64, roleID int64) error {
	if _, err := s.users.FindByID(ctx, userID); err != nil {
		return err
	}
	if _, err := s.roles.FindByID(ctx, roleID); err != nil {
		return err
	}
	return s.users.AssignRole(ctx, userID, roleID)
}

func (s *UserService) RemoveRole(ctx context.Context, userID int64, roleID int64) error {
	if _, err := s.users.FindByID(ctx, userID); err != nil {
		return err
	}
	return s.users.RemoveRole(ctx, userID, roleID)
}
