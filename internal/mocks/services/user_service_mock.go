package services

import (
	"context"

	"go-gin-comedy-tickets/internal/model"

	"github.com/stretchr/testify/mock"
)

type UserServiceMock struct {
	mock.Mock
}

func NewUserServiceMock() *UserServiceMock {
	return &UserServiceMock{}
}

func userResult(args mock.Arguments) (*model.User, error) {
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.User), args.Error(1)
}

func (m *UserServiceMock) RegisterUser(ctx context.Context, params model.RegisterUserParams) (*model.User, error) {
	return userResult(m.Called(ctx, params))
}

func (m *UserServiceMock) GetUser(ctx context.Context, id int) (*model.User, error) {
	return userResult(m.Called(ctx, id))
}

func (m *UserServiceMock) ApproveCreator(ctx context.Context, userID int, admin *model.Actor, note *string) (*model.User, error) {
	return userResult(m.Called(ctx, userID, admin, note))
}

func (m *UserServiceMock) RejectCreator(ctx context.Context, userID int, admin *model.Actor, note *string) (*model.User, error) {
	return userResult(m.Called(ctx, userID, admin, note))
}

func (m *UserServiceMock) ListPendingCreators(ctx context.Context, admin *model.Actor) ([]*model.User, error) {
	args := m.Called(ctx, admin)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*model.User), args.Error(1)
}
