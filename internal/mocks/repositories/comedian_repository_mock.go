package repositories

import (
	"context"

	"go-gin-comedy-tickets/internal/model"

	"github.com/jackc/pgx/v5"
	"github.com/stretchr/testify/mock"
)

type ComedianRepositoryMock struct {
	mock.Mock
}

func NewComedianRepositoryMock() *ComedianRepositoryMock {
	return &ComedianRepositoryMock{}
}

func idsResult(args mock.Arguments) ([]int, error) {
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]int), args.Error(1)
}

func (m *ComedianRepositoryMock) FindByUserID(ctx context.Context, userID int) (*model.ComedianProfile, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.ComedianProfile), args.Error(1)
}

func (m *ComedianRepositoryMock) ListIDsByShowID(ctx context.Context, showID int) ([]int, error) {
	return idsResult(m.Called(ctx, showID))
}

func (m *ComedianRepositoryMock) CreateProfile(ctx context.Context, tx pgx.Tx, profile *model.ComedianProfile) (*model.ComedianProfile, error) {
	args := m.Called(ctx, tx, profile)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.ComedianProfile), args.Error(1)
}

func (m *ComedianRepositoryMock) CountExisting(ctx context.Context, tx pgx.Tx, ids []int) (int, error) {
	args := m.Called(ctx, tx, ids)
	return args.Int(0), args.Error(1)
}

func (m *ComedianRepositoryMock) ReplaceLineup(ctx context.Context, tx pgx.Tx, showID int, comedianIDs []int) error {
	args := m.Called(ctx, tx, showID, comedianIDs)
	return args.Error(0)
}

func (m *ComedianRepositoryMock) ListIDsByShowIDTx(ctx context.Context, tx pgx.Tx, showID int) ([]int, error) {
	return idsResult(m.Called(ctx, tx, showID))
}
