package services

import (
	"context"

	"go-gin-comedy-tickets/internal/model"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
)

type FeeServiceMock struct {
	mock.Mock
}

func NewFeeServiceMock() *FeeServiceMock {
	return &FeeServiceMock{}
}

func summaryResult(args mock.Arguments) (*model.SalesSummary, error) {
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.SalesSummary), args.Error(1)
}

func (m *FeeServiceMock) GetFeeSettings(ctx context.Context) (model.FeeSettings, error) {
	args := m.Called(ctx)
	return args.Get(0).(model.FeeSettings), args.Error(1)
}

func (m *FeeServiceMock) UpdateFeeSettings(ctx context.Context, admin *model.Actor, settings model.FeeSettings) (model.FeeSettings, error) {
	args := m.Called(ctx, admin, settings)
	return args.Get(0).(model.FeeSettings), args.Error(1)
}

func (m *FeeServiceMock) SetShowPlatformFee(ctx context.Context, showID uuid.UUID, admin *model.Actor, percent *int) (*model.Show, error) {
	args := m.Called(ctx, showID, admin, percent)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Show), args.Error(1)
}

func (m *FeeServiceMock) DisburseShow(ctx context.Context, showID uuid.UUID, admin *model.Actor) (*model.SalesSummary, error) {
	return summaryResult(m.Called(ctx, showID, admin))
}

func (m *FeeServiceMock) GetSalesSummary(ctx context.Context, showID uuid.UUID, actor *model.Actor) (*model.SalesSummary, error) {
	return summaryResult(m.Called(ctx, showID, actor))
}
