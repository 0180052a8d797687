package service

import (
	"context"
	"time"

	"go-gin-comedy-tickets/internal/database"
	"go-gin-comedy-tickets/internal/model"
	"go-gin-comedy-tickets/internal/repository"
	apperrors "go-gin-comedy-tickets/pkg/app_errors"
	"go-gin-comedy-tickets/pkg/logger"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"
)

type FeeService interface {
	GetFeeSettings(ctx context.Context) (model.FeeSettings, error)
	UpdateFeeSettings(ctx context.Context, admin *model.Actor, settings model.FeeSettings) (model.FeeSettings, error)
	// percent 為 nil 表示改回平台預設
	SetShowPlatformFee(ctx context.Context, showID uuid.UUID, admin *model.Actor, percent *int) (*model.Show, error)
	// 節目結束後撥款給建立者
	DisburseShow(ctx context.Context, showID uuid.UUID, admin *model.Actor) (*model.SalesSummary, error)
	GetSalesSummary(ctx context.Context, showID uuid.UUID, actor *model.Actor) (*model.SalesSummary, error)
}

type FeeServiceImpl struct {
	tx                  database.Transactor
	settingsRepository  repository.SettingsRepository
	showRepository      repository.ShowRepository
	inventoryRepository repository.InventoryRepository
	bookingRepository   repository.BookingRepository
}

func NewFeeService(
	tx database.Transactor,
	settingsRepository repository.SettingsRepository,
	showRepository repository.ShowRepository,
	inventoryRepository repository.InventoryRepository,
	bookingRepository repository.BookingRepository,
) FeeService {
	return &FeeServiceImpl{
		tx:                  tx,
		settingsRepository:  settingsRepository,
		showRepository:      showRepository,
		inventoryRepository: inventoryRepository,
		bookingRepository:   bookingRepository,
	}
}

func validPercent(percent int) bool {
	return percent >= 0 && percent <= 100
}

func (s *FeeServiceImpl) GetFeeSettings(ctx context.Context) (model.FeeSettings, error) {
	return s.settingsRepository.GetFeeSettings(ctx)
}

func (s *FeeServiceImpl) UpdateFeeSettings(ctx context.Context, admin *model.Actor, settings model.FeeSettings) (model.FeeSettings, error) {
	if err := requireAdmin(admin); err != nil {
		return model.FeeSettings{}, err
	}
	if !validPercent(settings.PlatformFeePercent) {
		return model.FeeSettings{}, apperrors.ErrInvalidFeePercent
	}
	if settings.BookingFeePerTicket < 0 {
		return model.FeeSettings{}, apperrors.ErrNegativeBookingFee
	}

	updated, err := s.settingsRepository.UpdateFeeSettings(ctx, settings)
	if err != nil {
		return model.FeeSettings{}, err
	}

	logger.WithComponent("service").Info("fee settings updated",
		zap.Int("admin_id", admin.UserID),
		zap.Int("platform_fee_percent", updated.PlatformFeePercent),
		zap.Int("booking_fee_per_ticket", updated.BookingFeePerTicket),
	)
	return updated, nil
}

func (s *FeeServiceImpl) SetShowPlatformFee(ctx context.Context, showID uuid.UUID, admin *model.Actor, percent *int) (*model.Show, error) {
	if err := requireAdmin(admin); err != nil {
		return nil, err
	}
	if percent != nil && !validPercent(*percent) {
		return nil, apperrors.ErrInvalidFeePercent
	}

	show, err := s.showRepository.FindByShowID(ctx, showID)
	if err != nil {
		return nil, err
	}
	if show.IsDisbursed {
		return nil, apperrors.ErrShowDisbursed
	}
	return s.showRepository.SetCustomPlatformFee(ctx, show.ID, percent)
}

func (s *FeeServiceImpl) DisburseShow(ctx context.Context, showID uuid.UUID, admin *model.Actor) (*model.SalesSummary, error) {
	if err := requireAdmin(admin); err != nil {
		return nil, err
	}
	show, err := s.showRepository.FindByShowID(ctx, showID)
	if err != nil {
		return nil, err
	}

	var summary *model.SalesSummary
	err = s.tx.WithinTx(ctx, func(tx pgx.Tx) error {
		// 鎖庫存列擋住同時進行的訂位與取消，再鎖節目列
		if _, err := s.inventoryRepository.FindByShowIDWithLock(ctx, tx, show.ID); err != nil {
			return err
		}
		locked, err := s.showRepository.FindByIDWithLock(ctx, tx, show.ID)
		if err != nil {
			return err
		}
		switch {
		case locked.IsDisbursed:
			return apperrors.ErrShowDisbursed
		case !locked.IsPublished:
			return apperrors.ErrShowNotPublished
		case locked.IsUpcoming(time.Now()):
			return apperrors.ErrShowNotFinished
		}

		summary, err = s.bookingRepository.SalesSummaryTx(ctx, tx, locked.ID)
		if err != nil {
			return err
		}
		_, err = s.showRepository.MarkDisbursed(ctx, tx, locked.ID)
		return err
	})
	if err != nil {
		return nil, err
	}
	summary.Disbursed = true

	logger.WithComponent("service").Info("show disbursed",
		zap.Int("show_id", show.ID),
		zap.Int("admin_id", admin.UserID),
		zap.Int("creator_payout", summary.CreatorPayout),
	)
	return summary, nil
}

func (s *FeeServiceImpl) GetSalesSummary(ctx context.Context, showID uuid.UUID, actor *model.Actor) (*model.SalesSummary, error) {
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

	summary, err := s.bookingRepository.SalesSummary(ctx, show.ID)
	if err != nil {
		return nil, err
	}
	summary.Disbursed = show.IsDisbursed
	return summary, nil
}
