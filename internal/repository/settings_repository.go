package repository

import (
	"context"
	"time"

	"go-gin-comedy-tickets/internal/model"

	"github.com/jackc/pgx/v5/pgxpool"
)

type SettingsRepository interface {
	GetFeeSettings(ctx context.Context) (model.FeeSettings, error)
	UpdateFeeSettings(ctx context.Context, settings model.FeeSettings) (model.FeeSettings, error)
}

type SettingsRepositoryImpl struct {
	pool *pgxpool.Pool
}

func NewSettingsRepository(pool *pgxpool.Pool) SettingsRepository {
	return &SettingsRepositoryImpl{
		pool: pool,
	}
}

func (r *SettingsRepositoryImpl) GetFeeSettings(ctx context.Context) (model.FeeSettings, error) {
	query := `
		SELECT platform_fee_percent, booking_fee_per_ticket, updated_at
		FROM platform_settings
		WHERE id = 1
	`
	var settings model.FeeSettings
	err := r.pool.QueryRow(ctx, query).Scan(
		&settings.PlatformFeePercent,
		&settings.BookingFeePerTicket,
		&settings.UpdatedAt,
	)
	return settings, err
}

func (r *SettingsRepositoryImpl) UpdateFeeSettings(ctx context.Context, settings model.FeeSettings) (model.FeeSettings, error) {
	query := `
		INSERT INTO platform_settings (id, platform_fee_percent, booking_fee_per_ticket, updated_at)
		VALUES (1, $1, $2, $3)
		ON CONFLICT (id) DO UPDATE
		SET platform_fee_percent = EXCLUDED.platform_fee_percent,
		    booking_fee_per_ticket = EXCLUDED.booking_fee_per_ticket,
		    updated_at = EXCLUDED.updated_at
		RETURNING platform_fee_percent, booking_fee_per_ticket, updated_at
	`
	var updated model.FeeSettings
	err := r.pool.QueryRow(ctx, query,
		settings.PlatformFeePercent, settings.BookingFeePerTicket, time.Now().UTC(),
	).Scan(
		&updated.PlatformFeePercent,
		&updated.BookingFeePerTicket,
		&updated.UpdatedAt,
	)
	return updated, err
}
