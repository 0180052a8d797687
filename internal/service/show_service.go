package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"go-gin-comedy-tickets/internal/cache"
	"go-gin-comedy-tickets/internal/database"
	"go-gin-comedy-tickets/internal/metrics"
	"go-gin-comedy-tickets/internal/model"
	"go-gin-comedy-tickets/internal/queue"
	"go-gin-comedy-tickets/internal/repository"
	apperrors "go-gin-comedy-tickets/pkg/app_errors"
	"go-gin-comedy-tickets/pkg/logger"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"
)

type ShowService interface {
	CreateShow(ctx context.Context, actor *model.Actor, params model.CreateShowParams) (*model.Show, error)
	GetShow(ctx context.Context, showID uuid.UUID, actor *model.Actor) (*model.Show, error)
	ListShows(ctx context.Context, actor *model.Actor, params model.ListShowsParams) ([]*model.Show, error)
	UpdateShow(ctx context.Context, showID uuid.UUID, actor *model.Actor, params model.UpdateShowParams) (*model.Show, error)
	DeleteShow(ctx context.Context, showID uuid.UUID, actor *model.Actor) error
	PublishShow(ctx context.Context, showID uuid.UUID, actor *model.Actor) (*model.Show, error)
	UnpublishShow(ctx context.Context, showID uuid.UUID, actor *model.Actor) (*model.Show, error)
	// 剩餘票數：優先讀快取，miss 時回源資料庫並回填
	GetAvailability(ctx context.Context, showID uuid.UUID, actor *model.Actor) (model.Availability, error)
}

type ShowServiceImpl struct {
	tx                  database.Transactor
	showRepository      repository.ShowRepository
	inventoryRepository repository.InventoryRepository
	bookingRepository   repository.BookingRepository
	comedianRepository  repository.ComedianRepository
	availabilityCache   cache.AvailabilityCache
	inventoryQueue      queue.InventoryQueue
}

// NewShowService availabilityCache 與 inventoryQueue 可為 nil
func NewShowService(
	tx database.Transactor,
	showRepository repository.ShowRepository,
	inventoryRepository repository.InventoryRepository,
	bookingRepository repository.BookingRepository,
	comedianRepository repository.ComedianRepository,
	availabilityCache cache.AvailabilityCache,
	inventoryQueue queue.InventoryQueue,
) ShowService {
	return &ShowServiceImpl{
		tx:                  tx,
		showRepository:      showRepository,
		inventoryRepository: inventoryRepository,
		bookingRepository:   bookingRepository,
		comedianRepository:  comedianRepository,
		availabilityCache:   availabilityCache,
		inventoryQueue:      inventoryQueue,
	}
}

func (s *ShowServiceImpl) CreateShow(ctx context.Context, actor *model.Actor, params model.CreateShowParams) (*model.Show, error) {
	if actor == nil {
		return nil, apperrors.ErrUnauthenticated
	}
	if !actor.Role.IsCreator() && !actor.IsAdmin() {
		return nil, apperrors.ErrNotCreator
	}

	params.Title = strings.TrimSpace(params.Title)
	params.Venue = strings.TrimSpace(params.Venue)
	switch {
	case params.Title == "":
		return nil, apperrors.ErrTitleRequired
	case params.Venue == "":
		return nil, apperrors.ErrVenueRequired
	case params.Date.IsZero():
		return nil, apperrors.ErrDateRequired
	case !params.Date.After(time.Now()):
		return nil, apperrors.ErrShowInPast
	case params.TicketPrice <= 0:
		return nil, apperrors.ErrNonPositivePrice
	case params.TotalTickets <= 0:
		return nil, apperrors.ErrNonPositiveCapacity
	}

	mediaLinks := params.MediaLinks
	if mediaLinks == nil {
		mediaLinks = []string{}
	}

	var created *model.Show
	var lineup []int
	err := s.tx.WithinTx(ctx, func(tx pgx.Tx) error {
		show, err := s.showRepository.Create(ctx, tx, &model.Show{
			ShowID:       uuid.New(),
			Title:        params.Title,
			Description:  params.Description,
			Date:         params.Date.UTC(),
			Venue:        params.Venue,
			MapLink:      params.MapLink,
			TicketPrice:  params.TicketPrice,
			TotalTickets: params.TotalTickets,
			PosterURL:    params.PosterURL,
			MediaLinks:   mediaLinks,
			CreatedBy:    actor.UserID,
		})
		if err != nil {
			return err
		}

		if _, err := s.inventoryRepository.Create(ctx, tx, show.ID, show.TotalTickets); err != nil {
			return err
		}

		lineup, err = s.initialLineup(ctx, tx, actor, params.ComedianIDs)
		if err != nil {
			return err
		}
		if len(lineup) > 0 {
			if err := s.comedianRepository.ReplaceLineup(ctx, tx, show.ID, lineup); err != nil {
				return err
			}
		}

		created = show
		return nil
	})
	if err != nil {
		return nil, err
	}

	available := created.TotalTickets
	created.Available = &available
	created.ComedianIDs = lineup
	return created, nil
}

// initialLineup 建立者本身是喜劇演員時排在第一位，其餘依請求順序接在後面
func (s *ShowServiceImpl) initialLineup(ctx context.Context, tx pgx.Tx, actor *model.Actor, requested []int) ([]int, error) {
	lineup := make([]int, 0, len(requested)+1)
	if actor.Role.IsComedian() {
		profile, err := s.comedianRepository.FindByUserID(ctx, actor.UserID)
		switch {
		case err == nil:
			lineup = append(lineup, profile.ID)
		case !errors.Is(err, apperrors.ErrComedianNotFound):
			return nil, err
		}
	}
	lineup = dedupeIDs(append(lineup, requested...))

	if err := s.ensureComedians(ctx, tx, lineup); err != nil {
		return nil, err
	}
	return lineup, nil
}

func (s *ShowServiceImpl) ensureComedians(ctx context.Context, tx pgx.Tx, ids []int) error {
	if len(ids) == 0 {
		return nil
	}
	count, err := s.comedianRepository.CountExisting(ctx, tx, ids)
	if err != nil {
		return err
	}
	if count != len(ids) {
		return apperrors.ErrUnknownComedian
	}
	return nil
}

func (s *ShowServiceImpl) GetShow(ctx context.Context, showID uuid.UUID, actor *model.Actor) (*model.Show, error) {
	show, err := s.findVisible(ctx, showID, actor)
	if err != nil {
		return nil, err
	}

	inv, err := s.inventoryRepository.FindByShowID(ctx, show.ID)
	if err != nil {
		return nil, err
	}
	show.Available = &inv.Available

	show.ComedianIDs, err = s.comedianRepository.ListIDsByShowID(ctx, show.ID)
	if err != nil {
		return nil, err
	}
	return show, nil
}

// findVisible 看不到的節目一律回 not found，不透露草稿是否存在
func (s *ShowServiceImpl) findVisible(ctx context.Context, showID uuid.UUID, actor *model.Actor) (*model.Show, error) {
	show, err := s.showRepository.FindByShowID(ctx, showID)
	if err != nil {
		return nil, err
	}
	if !canView(actor, show) {
		return nil, apperrors.ErrShowNotFound
	}
	return show, nil
}

// findManaged 需要登入且為建立者或管理員
func (s *ShowServiceImpl) findManaged(ctx context.Context, showID uuid.UUID, actor *model.Actor) (*model.Show, error) {
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
	return show, nil
}

func (s *ShowServiceImpl) ListShows(ctx context.Context, actor *model.Actor, params model.ListShowsParams) ([]*model.Show, error) {
	if !params.Mode.IsValid() {
		return nil, apperrors.Validationf("invalid list mode %q", params.Mode)
	}
	params = params.Normalize()
	params.Search = strings.TrimSpace(params.Search)

	filter := BuildVisibilityFilter(actor, params.Mode, time.Now().UTC())
	return s.showRepository.List(ctx, filter, params)
}

func (s *ShowServiceImpl) UpdateShow(ctx context.Context, showID uuid.UUID, actor *model.Actor, params model.UpdateShowParams) (*model.Show, error) {
	found, err := s.findManaged(ctx, showID, actor)
	if err != nil {
		return nil, err
	}

	var (
		updated *model.Show
		inv     *model.TicketInventory
		resized bool
	)
	err = s.tx.WithinTx(ctx, func(tx pgx.Tx) error {
		// 鎖順序固定為 庫存 → 節目，與訂位交易一致
		locked, err := s.inventoryRepository.FindByShowIDWithLock(ctx, tx, found.ID)
		if err != nil {
			return err
		}
		inv = locked
		show, err := s.showRepository.FindByIDWithLock(ctx, tx, found.ID)
		if err != nil {
			return err
		}
		stats, err := s.bookingRepository.StatsForShow(ctx, tx, show.ID)
		if err != nil {
			return err
		}

		var current []int
		if params.SetComedians {
			current, err = s.comedianRepository.ListIDsByShowIDTx(ctx, tx, show.ID)
			if err != nil {
				return err
			}
		}

		applied, err := GuardShowUpdate(show, stats, current, params, time.Now())
		if err != nil {
			return err
		}
		if applied.Date != nil {
			utc := applied.Date.UTC()
			applied.Date = &utc
		}

		updated, err = s.showRepository.Update(ctx, tx, show.ID, applied)
		if err != nil {
			return err
		}

		if applied.TotalTickets != nil {
			inv, err = s.inventoryRepository.SetAvailable(ctx, tx, show.ID, *applied.TotalTickets-stats.Sold)
			if err != nil {
				return err
			}
			resized = true
		}

		if applied.SetComedians {
			if err := s.ensureComedians(ctx, tx, applied.ComedianIDs); err != nil {
				return err
			}
			if err := s.comedianRepository.ReplaceLineup(ctx, tx, show.ID, applied.ComedianIDs); err != nil {
				return err
			}
			updated.ComedianIDs = applied.ComedianIDs
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	if resized {
		publishInventory(ctx, s.inventoryQueue, s.availabilityCache, inv, model.InventoryReasonResized)
	}
	updated.Available = &inv.Available
	return updated, nil
}

func (s *ShowServiceImpl) DeleteShow(ctx context.Context, showID uuid.UUID, actor *model.Actor) error {
	found, err := s.findManaged(ctx, showID, actor)
	if err != nil {
		return err
	}

	err = s.tx.WithinTx(ctx, func(tx pgx.Tx) error {
		if _, err := s.inventoryRepository.FindByShowIDWithLock(ctx, tx, found.ID); err != nil {
			return err
		}
		if _, err := s.showRepository.FindByIDWithLock(ctx, tx, found.ID); err != nil {
			return err
		}
		stats, err := s.bookingRepository.StatsForShow(ctx, tx, found.ID)
		if err != nil {
			return err
		}
		if stats.HasBookings() {
			return apperrors.ErrShowHasBookingCount(stats.Count)
		}
		return s.showRepository.Delete(ctx, tx, found.ID)
	})
	if err != nil {
		return err
	}

	if s.availabilityCache != nil {
		if err := s.availabilityCache.Delete(ctx, found.ID); err != nil {
			logger.WithComponent("service").Warn("drop availability cache failed",
				zap.Int("show_id", found.ID), zap.Error(err))
		}
	}
	return nil
}

func (s *ShowServiceImpl) PublishShow(ctx context.Context, showID uuid.UUID, actor *model.Actor) (*model.Show, error) {
	found, err := s.findManaged(ctx, showID, actor)
	if err != nil {
		return nil, err
	}
	if !actor.IsAdmin() && !actor.Role.IsVerifiedCreator() {
		return nil, apperrors.ErrNotVerified
	}

	var published *model.Show
	err = s.tx.WithinTx(ctx, func(tx pgx.Tx) error {
		show, err := s.showRepository.FindByIDWithLock(ctx, tx, found.ID)
		if err != nil {
			return err
		}
		switch {
		case show.IsPublished:
			return apperrors.ErrShowAlreadyPublished
		case !show.IsUpcoming(time.Now()):
			return apperrors.ErrShowInPast
		case show.TotalTickets <= 0:
			return apperrors.ErrNonPositiveCapacity
		}

		published, err = s.showRepository.SetPublished(ctx, tx, show.ID, true)
		return err
	})
	if err != nil {
		return nil, err
	}

	metrics.ShowsPublished.Inc()
	return published, nil
}

func (s *ShowServiceImpl) UnpublishShow(ctx context.Context, showID uuid.UUID, actor *model.Actor) (*model.Show, error) {
	found, err := s.findManaged(ctx, showID, actor)
	if err != nil {
		return nil, err
	}

	var unpublished *model.Show
	err = s.tx.WithinTx(ctx, func(tx pgx.Tx) error {
		if _, err := s.inventoryRepository.FindByShowIDWithLock(ctx, tx, found.ID); err != nil {
			return err
		}
		show, err := s.showRepository.FindByIDWithLock(ctx, tx, found.ID)
		if err != nil {
			return err
		}
		if !show.IsPublished {
			return apperrors.ErrShowNotPublished
		}
		stats, err := s.bookingRepository.StatsForShow(ctx, tx, show.ID)
		if err != nil {
			return err
		}
		if stats.HasBookings() {
			return apperrors.ErrShowHasBookings
		}

		unpublished, err = s.showRepository.SetPublished(ctx, tx, show.ID, false)
		return err
	})
	if err != nil {
		return nil, err
	}
	return unpublished, nil
}

func (s *ShowServiceImpl) GetAvailability(ctx context.Context, showID uuid.UUID, actor *model.Actor) (model.Availability, error) {
	show, err := s.findVisible(ctx, showID, actor)
	if err != nil {
		return model.Availability{}, err
	}

	log := logger.WithComponent("service").With(zap.Int("show_id", show.ID))
	if s.availabilityCache != nil {
		cached, err := s.availabilityCache.Get(ctx, show.ID)
		if err == nil {
			metrics.AvailabilityCacheHits.Inc()
			return cached, nil
		}
		if !errors.Is(err, cache.ErrCacheMiss) {
			log.Warn("read availability cache failed", zap.Error(err))
		}
	}
	metrics.AvailabilityCacheMisses.Inc()

	inv, err := s.inventoryRepository.FindByShowID(ctx, show.ID)
	if err != nil {
		return model.Availability{}, err
	}

	if s.availabilityCache != nil {
		if _, err := s.availabilityCache.Set(ctx, inv.ShowID, inv.Available, inv.Version); err != nil {
			log.Warn("warm availability cache failed", zap.Error(err))
		}
	}

	return model.Availability{
		ShowID:    inv.ShowID,
		Available: inv.Available,
		Version:   inv.Version,
	}, nil
}
