package services

import (
	"context"

	"go-gin-comedy-tickets/internal/model"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
)

type ShowServiceMock struct {
	mock.Mock
}

func NewShowServiceMock() *ShowServiceMock {
	return &ShowServiceMock{}
}

func showResult(args mock.Arguments) (*model.Show, error) {
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Show), args.Error(1)
}

func (m *ShowServiceMock) CreateShow(ctx context.Context, actor *model.Actor, params model.CreateShowParams) (*model.Show, error) {
	return showResult(m.Called(ctx, actor, params))
}

func (m *ShowServiceMock) GetShow(ctx context.Context, showID uuid.UUID, actor *model.Actor) (*model.Show, error) {
	return showResult(m.Called(ctx, showID, actor))
}

func (m *ShowServiceMock) ListShows(ctx context.Context, actor *model.Actor, params model.ListShowsParams) ([]*model.Show, error) {
	args := m.Called(ctx, actor, params)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*model.Show), args.Error(1)
}

func (m *ShowServiceMock) UpdateShow(ctx context.Context, showID uuid.UUID, actor *model.Actor, params model.UpdateShowParams) (*model.Show, error) {
	return showResult(m.Called(ctx, showID, actor, params))
}

func (m *ShowServiceMock) DeleteShow(ctx context.Context, showID uuid.UUID, actor *model.Actor) error {
	args := m.Called(ctx, showID, actor)
	return args.Error(0)
}

func (m *ShowServiceMock) PublishShow(ctx context.Context, showID uuid.UUID, actor *model.Actor) (*model.Show, error) {
	return showResult(m.Called(ctx, showID, actor))
}

func (m *ShowServiceMock) UnpublishShow(ctx context.Context, showID uuid.UUID, actor *model.Actor) (*model.Show, error) {
	return showResult(m.Called(ctx, showID, actor))
}

func (m *ShowServiceMock) GetAvailability(ctx context.Context, showID uuid.UUID, actor *model.Actor) (model.Availability, error) {
	args := m.Called(ctx, showID, actor)
	return args.Get(0).(model.Availability), args.Error(1)
}
