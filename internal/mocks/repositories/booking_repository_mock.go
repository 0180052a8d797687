package repositories

import (
	"context"

	"go-gin-comedy-tickets/internal/model"

	"github.com/jackc/pgx/v5"
	"github.com/stretchr/testify/mock"
)

type BookingRepositoryMock struct {
	mock.Mock
}

func NewBookingRepositoryMock() *BookingRepositoryMock {
	return &BookingRepositoryMock{}
}

func bookingResult(args mock.Arguments) (*model.Booking, error) {
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Booking), args.Error(1)
}

func bookingsResult(args mock.Arguments) ([]*model.Booking, error) {
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*model.Booking), args.Error(1)
}

func (m *BookingRepositoryMock) FindByID(ctx context.Context, id int) (*model.Booking, error) {
	return bookingResult(m.Called(ctx, id))
}

func (m *BookingRepositoryMock) FindByUserID(ctx context.Context, userID int) ([]*model.Booking, error) {
	return bookingsResult(m.Called(ctx, userID))
}

func (m *BookingRepositoryMock) FindByShowID(ctx context.Context, showID int) ([]*model.Booking, error) {
	return bookingsResult(m.Called(ctx, showID))
}

func (m *BookingRepositoryMock) SalesSummary(ctx context.Context, showID int) (*model.SalesSummary, error) {
	args := m.Called(ctx, showID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.SalesSummary), args.Error(1)
}

// Create 回傳值可以是 func(*model.Booking) *model.Booking，用來回傳寫入後的訂位
func (m *BookingRepositoryMock) Create(ctx context.Context, tx pgx.Tx, booking *model.Booking) (*model.Booking, error) {
	args := m.Called(ctx, tx, booking)
	if fn, ok := args.Get(0).(func(*model.Booking) *model.Booking); ok {
		return fn(booking), args.Error(1)
	}
	return bookingResult(args)
}

func (m *BookingRepositoryMock) FindByIDWithLock(ctx context.Context, tx pgx.Tx, id int) (*model.Booking, error) {
	return bookingResult(m.Called(ctx, tx, id))
}

func (m *BookingRepositoryMock) UpdateStatus(ctx context.Context, tx pgx.Tx, id int, status model.BookingStatus) (*model.Booking, error) {
	return bookingResult(m.Called(ctx, tx, id, status))
}

func (m *BookingRepositoryMock) SalesSummaryTx(ctx context.Context, tx pgx.Tx, showID int) (*model.SalesSummary, error) {
	args := m.Called(ctx, tx, showID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.SalesSummary), args.Error(1)
}

func (m *BookingRepositoryMock) StatsForShow(ctx context.Context, tx pgx.Tx, showID int) (model.BookingStats, error) {
	args := m.Called(ctx, tx, showID)
	return args.Get(0).(model.BookingStats), args.Error(1)
}
