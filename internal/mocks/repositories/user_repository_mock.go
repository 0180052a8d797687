package repositories

import (
	"context"

	"go-gin-comedy-tickets/internal/model"

	"github.com/jackc/pgx/v5"
	"github.com/stretchr/testify/mock"
)

type UserRepositoryMock struct {
	mock.Mock
}

func NewUserRepositoryMock() *UserRepositoryMock {
	return &UserRepositoryMock{}
}

func userResult(args mock.Arguments) (*model.User, error) {
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.User), args.Error(1)
}

func (m *UserRepositoryMock) FindByID(ctx context.Context, id int) (*model.User, error) {
	return userResult(m.Called(ctx, id))
}

func (m *UserRepositoryMock) FindByEmail(ctx context.Context, email string) (*model.User, error) {
	return userResult(m.Called(ctx, email))
}

func (m *UserRepositoryMock) ListByRoles(ctx context.Context, roles []model.Role) ([]*model.User, error) {
	args := m.Called(ctx, roles)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*model.User), args.Error(1)
}

func (m *UserRepositoryMock) Create(ctx context.Context, tx pgx.Tx, user *model.User) (*model.User, error) {
	return userResult(m.Called(ctx, tx, user))
}

func (m *UserRepositoryMock) FindByIDWithLock(ctx context.Context, tx pgx.Tx, id int) (*model.User, error) {
	return userResult(m.Called(ctx, tx, id))
}

func (m *UserRepositoryMock) UpdateRole(ctx context.Context, tx pgx.Tx, id int, role model.Role) (*model.User, error) {
	return userResult(m.Called(ctx, tx, id, role))
}

func (m *UserRepositoryMock) CreateApproval(ctx context.Context, tx pgx.Tx, approval *model.RoleApproval) (*model.RoleApproval, error) {
	args := m.Called(ctx, tx, approval)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.RoleApproval), args.Error(1)
}
