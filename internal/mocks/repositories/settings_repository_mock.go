package repositories

import (
	"context"

	"go-gin-comedy-tickets/internal/model"

	"github.com/stretchr/testify/mock"
)

type SettingsRepositoryMock struct {
	mock.Mock
}

func NewSettingsRepositoryMock() *SettingsRepositoryMock {
	return &SettingsRepositoryMock{}
}

func (m *SettingsRepositoryMock) GetFeeSettings(ctx context.Context) (model.FeeSettings, error) {
	args := m.Called(ctx)
	return args.Get(0).(model.FeeSettings), args.Error(1)
}

func (m *SettingsRepositoryMock) UpdateFeeSettings(ctx context.Context, settings model.FeeSettings) (model.FeeSettings, error) {
	args := m.Called(ctx, settings)
	return args.Get(0).(model.FeeSettings), args.Error(1)
}
