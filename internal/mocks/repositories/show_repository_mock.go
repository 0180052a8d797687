package repositories

import (
	"context"

	"go-gin-comedy-tickets/internal/model"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/stretchr/testify/mock"
)

type ShowRepositoryMock struct {
	mock.Mock
}

func NewShowRepositoryMock() *ShowRepositoryMock {
	return &ShowRepositoryMock{}
}

func showResult(args mock.Arguments) (*model.Show, error) {
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Show), args.Error(1)
}

func (m *ShowRepositoryMock) FindByID(ctx context.Context, id int) (*model.Show, error) {
	return showResult(m.Called(ctx, id))
}

func (m *ShowRepositoryMock) FindByShowID(ctx context.Context, showID uuid.UUID) (*model.Show, error) {
	return showResult(m.Called(ctx, showID))
}

func (m *ShowRepositoryMock) List(ctx context.Context, filter model.ShowFilter, params model.ListShowsParams) ([]*model.Show, error) {
	args := m.Called(ctx, filter, params)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*model.Show), args.Error(1)
}

func (m *ShowRepositoryMock) SetCustomPlatformFee(ctx context.Context, id int, percent *int) (*model.Show, error) {
	return showResult(m.Called(ctx, id, percent))
}

func (m *ShowRepositoryMock) Create(ctx context.Context, tx pgx.Tx, show *model.Show) (*model.Show, error) {
	return showResult(m.Called(ctx, tx, show))
}

func (m *ShowRepositoryMock) FindByIDWithLock(ctx context.Context, tx pgx.Tx, id int) (*model.Show, error) {
	return showResult(m.Called(ctx, tx, id))
}

func (m *ShowRepositoryMock) Update(ctx context.Context, tx pgx.Tx, id int, params model.UpdateShowParams) (*model.Show, error) {
	return showResult(m.Called(ctx, tx, id, params))
}

func (m *ShowRepositoryMock) SetPublished(ctx context.Context, tx pgx.Tx, id int, published bool) (*model.Show, error) {
	return showResult(m.Called(ctx, tx, id, published))
}

func (m *ShowRepositoryMock) MarkDisbursed(ctx context.Context, tx pgx.Tx, id int) (*model.Show, error) {
	return showResult(m.Called(ctx, tx, id))
}

func (m *ShowRepositoryMock) Delete(ctx context.Context, tx pgx.Tx, id int) error {
	args := m.Called(ctx, tx, id)
	return args.Error(0)
}
