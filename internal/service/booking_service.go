package service

import (
	"context"
	"errors"
	"time"

	"go-gin-comedy-tickets/internal/cache"
	"go-gin-comedy-tickets/internal/database"
	"go-gin-comedy-tickets/internal/metrics"
	"go-gin-comedy-tickets/internal/model"
	"go-gin-comedy-tickets/internal/queue"
	"go-gin-comedy-tickets/internal/repository"
	apperrors "go-gin-comedy-tickets/pkg/app_errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

type BookingService interface {
	// 建立訂位：鎖庫存列 → 扣庫存 → 寫入訂位，同一個交易
	CreateBooking(ctx context.Context, actor *model.Actor, req model.CreateBookingRequest) (*model.Booking, error)
	ConfirmBookingPayment(ctx context.Context, bookingID int, actor *model.Actor) (*model.Booking, error)
	// 取消訂位並把張數還給庫存
	CancelBooking(ctx context.Context, bookingID int, actor *model.Actor) (*model.Booking, error)
	ListMyBookings(ctx context.Context, actor *model.Actor) ([]*model.Booking, error)
	GetBooking(ctx context.Context, bookingID int, actor *model.Actor) (*model.Booking, error)
	ListShowBookings(ctx context.Context, showID uuid.UUID, actor *model.Actor) ([]*model.Booking, error)
}

type BookingServiceImpl struct {
	tx                  database.Transactor
	repository          repository.BookingRepository
	showRepository      repository.ShowRepository
	inventoryRepository repository.InventoryRepository
	settingsRepository  repository.SettingsRepository
	availabilityCache   cache.AvailabilityCache
	inventoryQueue      queue.InventoryQueue
	autoConfirm         bool
}

// NewBookingService autoConfirm 為 true 時新訂位直接是 CONFIRMED（不經過付款）；
// availabilityCache 與 inventoryQueue 可為 nil
func NewBookingService(
	tx database.Transactor,
	bookingRepository repository.BookingRepository,
	showRepository repository.ShowRepository,
	inventoryRepository repository.InventoryRepository,
	settingsRepository repository.SettingsRepository,
	availabilityCache cache.AvailabilityCache,
	inventoryQueue queue.InventoryQueue,
	autoConfirm bool,
) BookingService {
	return &BookingServiceImpl{
		tx:                  tx,
		repository:          bookingRepository,
		showRepository:      showRepository,
		inventoryRepository: inventoryRepository,
		settingsRepository:  settingsRepository,
		availabilityCache:   availabilityCache,
		inventoryQueue:      inventoryQueue,
		autoConfirm:         autoConfirm,
	}
}

func (s *BookingServiceImpl) CreateBooking(ctx context.Context, actor *model.Actor, req model.CreateBookingRequest) (*model.Booking, error) {
	booking, inv, err := s.createBooking(ctx, actor, req)
	if err != nil {
		metrics.BookingFailures.WithLabelValues(failureReason(err)).Inc()
		return nil, err
	}

	metrics.BookingsCreated.WithLabelValues(string(booking.Status)).Inc()
	metrics.TicketsBooked.Add(float64(booking.Quantity))
	publishInventory(ctx, s.inventoryQueue, s.availabilityCache, inv, model.InventoryReasonBooked)
	return booking, nil
}

func (s *BookingServiceImpl) createBooking(ctx context.Context, actor *model.Actor, req model.CreateBookingRequest) (*model.Booking, *model.TicketInventory, error) {
	if actor == nil {
		return nil, nil, apperrors.ErrUnauthenticated
	}
	if !model.ValidQuantity(req.Quantity) {
		return nil, nil, apperrors.ErrInvalidQuantity
	}
	showID, err := uuid.Parse(req.ShowID)
	if err != nil {
		return nil, nil, apperrors.ErrInvalidInput
	}

	show, err := s.showRepository.FindByShowID(ctx, showID)
	if err != nil {
		return nil, nil, err
	}
	if !canView(actor, show) {
		return nil, nil, apperrors.ErrShowNotFound
	}
	if err := checkBookable(show); err != nil {
		return nil, nil, err
	}

	settings, err := s.settingsRepository.GetFeeSettings(ctx)
	if err != nil {
		return nil, nil, err
	}

	status := model.BookingStatusConfirmedUnpaid
	if s.autoConfirm {
		status = model.BookingStatusConfirmed
	}

	var (
		created *model.Booking
		inv     *model.TicketInventory
	)
	err = s.tx.WithinTx(ctx, func(tx pgx.Tx) error {
		// 1. 鎖住庫存列，同一節目的訂位在這裡排隊
		locked, err := s.inventoryRepository.FindByShowIDWithLock(ctx, tx, show.ID)
		if err != nil {
			return err
		}

		// 2. 鎖內重新確認節目狀態與票價，避免與下架、改價交錯
		current, err := s.showRepository.FindByIDWithLock(ctx, tx, show.ID)
		if err != nil {
			return err
		}
		if err := checkBookable(current); err != nil {
			return err
		}

		if !locked.HasStock(req.Quantity) {
			return apperrors.ErrInsufficientTickets
		}

		// 3. 扣庫存，SQL 也帶 available >= quantity 條件
		inv, err = s.inventoryRepository.DecrementAvailable(ctx, tx, show.ID, req.Quantity)
		if err != nil {
			return err
		}

		// 4. 寫入訂位
		charges := model.ComputeCharges(current.TicketPrice, req.Quantity, settings, current.CustomPlatformFee)
		created, err = s.repository.Create(ctx, tx, &model.Booking{
			ShowID:      current.ID,
			UserID:      actor.UserID,
			Quantity:    req.Quantity,
			UnitPrice:   current.TicketPrice,
			TotalAmount: charges.TotalAmount,
			PlatformFee: charges.PlatformFee,
			BookingFee:  charges.BookingFee,
			Status:      status,
		})
		return err
	})
	if err != nil {
		return nil, nil, err
	}

	return created, inv, nil
}

func checkBookable(show *model.Show) error {
	if !show.IsPublished {
		return apperrors.ErrShowNotPublished
	}
	if !show.IsUpcoming(time.Now()) {
		return apperrors.ErrShowInPast
	}
	return nil
}

// failureReason 轉成 metrics label
func failureReason(err error) string {
	switch {
	case errors.Is(err, apperrors.ErrInsufficientTickets):
		return "sold_out"
	case apperrors.KindOf(err) == apperrors.KindValidation:
		return "validation"
	case apperrors.KindOf(err) == apperrors.KindNotFound:
		return "not_found"
	case apperrors.KindOf(err) == apperrors.KindUnauthenticated:
		return "unauthenticated"
	}
	return "internal"
}

func (s *BookingServiceImpl) ConfirmBookingPayment(ctx context.Context, bookingID int, actor *model.Actor) (*model.Booking, error) {
	if actor == nil {
		return nil, apperrors.ErrUnauthenticated
	}
	booking, err := s.repository.FindByID(ctx, bookingID)
	if err != nil {
		return nil, err
	}
	if !booking.IsOwnedBy(actor.UserID) && !actor.IsAdmin() {
		return nil, apperrors.ErrNotBookingParty
	}

	var confirmed *model.Booking
	err = s.tx.WithinTx(ctx, func(tx pgx.Tx) error {
		locked, err := s.repository.FindByIDWithLock(ctx, tx, bookingID)
		if err != nil {
			return err
		}
		if !locked.Status.CanTransitionTo(model.BookingStatusConfirmed) {
			return apperrors.ErrInvalidBookingStatus
		}

		confirmed, err = s.repository.UpdateStatus(ctx, tx, bookingID, model.BookingStatusConfirmed)
		return err
	})
	if err != nil {
		return nil, err
	}
	return confirmed, nil
}

func (s *BookingServiceImpl) CancelBooking(ctx context.Context, bookingID int, actor *model.Actor) (*model.Booking, error) {
	if actor == nil {
		return nil, apperrors.ErrUnauthenticated
	}
	booking, err := s.repository.FindByID(ctx, bookingID)
	if err != nil {
		return nil, err
	}
	show, err := s.showRepository.FindByID(ctx, booking.ShowID)
	if err != nil {
		return nil, err
	}
	if !booking.IsOwnedBy(actor.UserID) && !actor.CanManage(show) {
		return nil, apperrors.ErrNotBookingParty
	}
	if show.IsDisbursed {
		return nil, apperrors.ErrShowDisbursed
	}

	var (
		cancelled *model.Booking
		inv       *model.TicketInventory
	)
	err = s.tx.WithinTx(ctx, func(tx pgx.Tx) error {
		// 與建立訂位相同，先鎖庫存列再鎖節目列
		if _, err := s.inventoryRepository.FindByShowIDWithLock(ctx, tx, booking.ShowID); err != nil {
			return err
		}
		lockedShow, err := s.showRepository.FindByIDWithLock(ctx, tx, booking.ShowID)
		if err != nil {
			return err
		}
		// 撥款可能在上面的檢查之後才 commit
		if lockedShow.IsDisbursed {
			return apperrors.ErrShowDisbursed
		}
		locked, err := s.repository.FindByIDWithLock(ctx, tx, bookingID)
		if err != nil {
			return err
		}
		if !locked.Status.CanTransitionTo(model.BookingStatusCancelled) {
			return apperrors.ErrInvalidBookingStatus
		}

		cancelled, err = s.repository.UpdateStatus(ctx, tx, bookingID, model.BookingStatusCancelled)
		if err != nil {
			return err
		}

		// 只有仍佔用庫存的訂位才需要還票
		if locked.Status.IsActive() {
			inv, err = s.inventoryRepository.IncrementAvailable(ctx, tx, booking.ShowID, locked.Quantity)
			if err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	metrics.BookingsCancelled.Inc()
	publishInventory(ctx, s.inventoryQueue, s.availabilityCache, inv, model.InventoryReasonCancelled)
	return cancelled, nil
}

func (s *BookingServiceImpl) ListMyBookings(ctx context.Context, actor *model.Actor) ([]*model.Booking, error) {
	if actor == nil {
		return nil, apperrors.ErrUnauthenticated
	}
	return s.repository.FindByUserID(ctx, actor.UserID)
}

func (s *BookingServiceImpl) GetBooking(ctx context.Context, bookingID int, actor *model.Actor) (*model.Booking, error) {
	if actor == nil {
		return nil, apperrors.ErrUnauthenticated
	}
	booking, err := s.repository.FindByID(ctx, bookingID)
	if err != nil {
		return nil, err
	}
	if booking.IsOwnedBy(actor.UserID) || actor.IsAdmin() {
		return booking, nil
	}

	show, err := s.showRepository.FindByID(ctx, booking.ShowID)
	if err != nil {
		return nil, err
	}
	if !actor.CanManage(show) {
		return nil, apperrors.ErrBookingNotFound
	}
	return booking, nil
}

func (s *BookingServiceImpl) ListShowBookings(ctx context.Context, showID uuid.UUID, actor *model.Actor) ([]*model.Booking, error) {
	if actor == nil {
		return nil, apperrors.ErrUnauthenticated
	}
	show, err := s.showRepository.FindByShowID(ctx, showID)
	if err != nil {
		return nil, err
	}
	if !actor.CanManage(show) {
		return nil, apperrors.ErrNotShowOwner
	}
	return s.repository.FindByShowID(ctx, show.ID)
}
