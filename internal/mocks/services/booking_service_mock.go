package services

import (
	"context"

	"go-gin-comedy-tickets/internal/model"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
)

type BookingServiceMock struct {
	mock.Mock
}

func NewBookingServiceMock() *BookingServiceMock {
	return &BookingServiceMock{}
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

func (m *BookingServiceMock) CreateBooking(ctx context.Context, actor *model.Actor, req model.CreateBookingRequest) (*model.Booking, error) {
	return bookingResult(m.Called(ctx, actor, req))
}

func (m *BookingServiceMock) ConfirmBookingPayment(ctx context.Context, bookingID int, actor *model.Actor) (*model.Booking, error) {
	return bookingResult(m.Called(ctx, bookingID, actor))
}

func (m *BookingServiceMock) CancelBooking(ctx context.Context, bookingID int, actor *model.Actor) (*model.Booking, error) {
	return bookingResult(m.Called(ctx, bookingID, actor))
}

func (m *BookingServiceMock) ListMyBookings(ctx context.Context, actor *model.Actor) ([]*model.Booking, error) {
	return bookingsResult(m.Called(ctx, actor))
}

func (m *BookingServiceMock) GetBooking(ctx context.Context, bookingID int, actor *model.Actor) (*model.Booking, error) {
	return bookingResult(m.Called(ctx, bookingID, actor))
}

func (m *BookingServiceMock) ListShowBookings(ctx context.Context, showID uuid.UUID, actor *model.Actor) ([]*model.Booking, error) {
	return bookingsResult(m.Called(ctx, showID, actor))
}
