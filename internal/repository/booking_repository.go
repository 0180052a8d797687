package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go-gin-comedy-tickets/internal/model"
	apperrors "go-gin-comedy-tickets/pkg/app_errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

const bookingColumns = `id, show_id, user_id, quantity, unit_price, total_amount,
		platform_fee, booking_fee, status, created_at, updated_at`

type BookingRepository interface {
	FindByID(ctx context.Context, id int) (*model.Booking, error)
	FindByUserID(ctx context.Context, userID int) ([]*model.Booking, error)
	FindByShowID(ctx context.Context, showID int) ([]*model.Booking, error)
	SalesSummary(ctx context.Context, showID int) (*model.SalesSummary, error)

	// Transaction methods
	Create(ctx context.Context, tx pgx.Tx, booking *model.Booking) (*model.Booking, error)
	FindByIDWithLock(ctx context.Context, tx pgx.Tx, id int) (*model.Booking, error)
	UpdateStatus(ctx context.Context, tx pgx.Tx, id int, status model.BookingStatus) (*model.Booking, error)
	StatsForShow(ctx context.Context, tx pgx.Tx, showID int) (model.BookingStats, error)
	SalesSummaryTx(ctx context.Context, tx pgx.Tx, showID int) (*model.SalesSummary, error)
}

// rowQuerier pgxpool.Pool 與 pgx.Tx 都滿足
type rowQuerier interface {
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

type BookingRepositoryImpl struct {
	pool *pgxpool.Pool
}

func NewBookingRepository(pool *pgxpool.Pool) BookingRepository {
	return &BookingRepositoryImpl{
		pool: pool,
	}
}

func scanBooking(row pgx.Row) (*model.Booking, error) {
	var booking model.Booking
	err := row.Scan(
		&booking.ID,
		&booking.ShowID,
		&booking.UserID,
		&booking.Quantity,
		&booking.UnitPrice,
		&booking.TotalAmount,
		&booking.PlatformFee,
		&booking.BookingFee,
		&booking.Status,
		&booking.CreatedAt,
		&booking.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrBookingNotFound
		}
		return nil, err
	}
	return &booking, nil
}

func (r *BookingRepositoryImpl) queryBookings(ctx context.Context, query string, args ...interface{}) ([]*model.Booking, error) {
	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	bookings := make([]*model.Booking, 0)
	for rows.Next() {
		booking, err := scanBooking(rows)
		if err != nil {
			return nil, err
		}
		bookings = append(bookings, booking)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return bookings, nil
}

func (r *BookingRepositoryImpl) Create(ctx context.Context, tx pgx.Tx, booking *model.Booking) (*model.Booking, error) {
	query := `
		INSERT INTO bookings (
			show_id, user_id, quantity, unit_price, total_amount,
			platform_fee, booking_fee, status
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING ` + bookingColumns

	created, err := scanBooking(tx.QueryRow(ctx, query,
		booking.ShowID, booking.UserID, booking.Quantity, booking.UnitPrice,
		booking.TotalAmount, booking.PlatformFee, booking.BookingFee, booking.Status,
	))
	if err != nil {
		return nil, fmt.Errorf("failed to create booking: %w", err)
	}

	return created, nil
}

func (r *BookingRepositoryImpl) FindByID(ctx context.Context, id int) (*model.Booking, error) {
	query := `SELECT ` + bookingColumns + ` FROM bookings WHERE id = $1`
	return scanBooking(r.pool.QueryRow(ctx, query, id))
}

func (r *BookingRepositoryImpl) FindByIDWithLock(ctx context.Context, tx pgx.Tx, id int) (*model.Booking, error) {
	query := `SELECT ` + bookingColumns + ` FROM bookings WHERE id = $1 FOR UPDATE`
	return scanBooking(tx.QueryRow(ctx, query, id))
}

func (r *BookingRepositoryImpl) FindByUserID(ctx context.Context, userID int) ([]*model.Booking, error) {
	query := `
		SELECT ` + bookingColumns + `
		FROM bookings
		WHERE user_id = $1
		ORDER BY created_at DESC, id DESC
	`
	return r.queryBookings(ctx, query, userID)
}

func (r *BookingRepositoryImpl) FindByShowID(ctx context.Context, showID int) ([]*model.Booking, error) {
	query := `
		SELECT ` + bookingColumns + `
		FROM bookings
		WHERE show_id = $1
		ORDER BY created_at DESC, id DESC
	`
	return r.queryBookings(ctx, query, showID)
}

func (r *BookingRepositoryImpl) UpdateStatus(ctx context.Context, tx pgx.Tx, id int, status model.BookingStatus) (*model.Booking, error) {
	query := `
		UPDATE bookings
		SET status = $1, updated_at = $2
		WHERE id = $3
		RETURNING ` + bookingColumns

	booking, err := scanBooking(tx.QueryRow(ctx, query, status, time.Now().UTC(), id))
	if err != nil && !errors.Is(err, apperrors.ErrBookingNotFound) {
		return nil, fmt.Errorf("failed to update booking status: %w", err)
	}
	return booking, err
}

// StatsForShow 在交易內讀取即時的訂位筆數與有效張數
func (r *BookingRepositoryImpl) StatsForShow(ctx context.Context, tx pgx.Tx, showID int) (model.BookingStats, error) {
	query := `
		SELECT COUNT(*),
		       COALESCE(SUM(quantity) FILTER (WHERE status = ANY($2)), 0)
		FROM bookings
		WHERE show_id = $1
	`

	var stats model.BookingStats
	err := tx.QueryRow(ctx, query, showID, activeStatusStrings()).Scan(&stats.Count, &stats.Sold)
	if err != nil {
		return model.BookingStats{}, err
	}

	return stats, nil
}

func (r *BookingRepositoryImpl) SalesSummary(ctx context.Context, showID int) (*model.SalesSummary, error) {
	return salesSummary(ctx, r.pool, showID)
}

// SalesSummaryTx 在交易內彙總，撥款時與標記撥款看到同一份資料
func (r *BookingRepositoryImpl) SalesSummaryTx(ctx context.Context, tx pgx.Tx, showID int) (*model.SalesSummary, error) {
	return salesSummary(ctx, tx, showID)
}

func salesSummary(ctx context.Context, q rowQuerier, showID int) (*model.SalesSummary, error) {
	query := `
		SELECT COUNT(*) FILTER (WHERE status = ANY($2)),
		       COALESCE(SUM(quantity) FILTER (WHERE status = ANY($2)), 0),
		       COALESCE(SUM(unit_price * quantity) FILTER (WHERE status = ANY($2)), 0),
		       COALESCE(SUM(platform_fee) FILTER (WHERE status = ANY($2)), 0),
		       COALESCE(SUM(booking_fee) FILTER (WHERE status = ANY($2)), 0)
		FROM bookings
		WHERE show_id = $1
	`

	summary := model.SalesSummary{ShowID: showID}
	err := q.QueryRow(ctx, query, showID, activeStatusStrings()).Scan(
		&summary.BookingCount,
		&summary.TicketsSold,
		&summary.Gross,
		&summary.PlatformFees,
		&summary.BookingFees,
	)
	if err != nil {
		return nil, err
	}
	summary.CreatorPayout = summary.Gross - summary.PlatformFees

	return &summary, nil
}

func activeStatusStrings() []string {
	statuses := make([]string, 0, len(model.ActiveBookingStatuses))
	for _, s := range model.ActiveBookingStatuses {
		statuses = append(statuses, string(s))
	}
	return statuses
}
