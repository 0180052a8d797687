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

type InventoryRepository interface {
	FindByShowID(ctx context.Context, showID int) (*model.TicketInventory, error)

	// Transaction methods
	Create(ctx context.Context, tx pgx.Tx, showID int, available int) (*model.TicketInventory, error)
	FindByShowIDWithLock(ctx context.Context, tx pgx.Tx, showID int) (*model.TicketInventory, error)
	DecrementAvailable(ctx context.Context, tx pgx.Tx, showID int, quantity int) (*model.TicketInventory, error)
	IncrementAvailable(ctx context.Context, tx pgx.Tx, showID int, quantity int) (*model.TicketInventory, error)
	SetAvailable(ctx context.Context, tx pgx.Tx, showID int, available int) (*model.TicketInventory, error)
}

type InventoryRepositoryImpl struct {
	pool *pgxpool.Pool
}

func NewInventoryRepository(pool *pgxpool.Pool) InventoryRepository {
	return &InventoryRepositoryImpl{
		pool: pool,
	}
}

func scanInventory(row pgx.Row) (*model.TicketInventory, error) {
	var inv model.TicketInventory
	err := row.Scan(&inv.ShowID, &inv.Available, &inv.Version, &inv.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrInventoryNotFound
		}
		return nil, err
	}
	return &inv, nil
}

func (r *InventoryRepositoryImpl) Create(ctx context.Context, tx pgx.Tx, showID int, available int) (*model.TicketInventory, error) {
	query := `
		INSERT INTO ticket_inventory (show_id, available)
		VALUES ($1, $2)
		RETURNING show_id, available, version, updated_at
	`
	inv, err := scanInventory(tx.QueryRow(ctx, query, showID, available))
	if err != nil {
		return nil, fmt.Errorf("failed to create ticket inventory: %w", err)
	}
	return inv, nil
}

func (r *InventoryRepositoryImpl) FindByShowID(ctx context.Context, showID int) (*model.TicketInventory, error) {
	query := `
		SELECT show_id, available, version, updated_at
		FROM ticket_inventory
		WHERE show_id = $1
	`
	return scanInventory(r.pool.QueryRow(ctx, query, showID))
}

// FindByShowIDWithLock 鎖住庫存列；同一節目的訂位、退票、改容量都會在此排隊
func (r *InventoryRepositoryImpl) FindByShowIDWithLock(ctx context.Context, tx pgx.Tx, showID int) (*model.TicketInventory, error) {
	query := `
		SELECT show_id, available, version, updated_at
		FROM ticket_inventory
		WHERE show_id = $1
		FOR UPDATE
	`
	return scanInventory(tx.QueryRow(ctx, query, showID))
}

func (r *InventoryRepositoryImpl) DecrementAvailable(ctx context.Context, tx pgx.Tx, showID int, quantity int) (*model.TicketInventory, error) {
	query := `
		UPDATE ticket_inventory
		SET available = available - $1, version = version + 1, updated_at = $2
		WHERE show_id = $3 AND available >= $1
		RETURNING show_id, available, version, updated_at
	`

	inv, err := scanInventory(tx.QueryRow(ctx, query, quantity, time.Now().UTC(), showID))
	if errors.Is(err, apperrors.ErrInventoryNotFound) {
		return nil, apperrors.ErrInsufficientTickets
	}
	return inv, err
}

func (r *InventoryRepositoryImpl) IncrementAvailable(ctx context.Context, tx pgx.Tx, showID int, quantity int) (*model.TicketInventory, error) {
	if quantity <= 0 {
		return nil, apperrors.ErrInvalidInput
	}

	query := `
		UPDATE ticket_inventory
		SET available = available + $1, version = version + 1, updated_at = $2
		WHERE show_id = $3
		RETURNING show_id, available, version, updated_at
	`
	return scanInventory(tx.QueryRow(ctx, query, quantity, time.Now().UTC(), showID))
}

func (r *InventoryRepositoryImpl) SetAvailable(ctx context.Context, tx pgx.Tx, showID int, available int) (*model.TicketInventory, error) {
	if available < 0 {
		return nil, apperrors.ErrCapacityBelowSold
	}

	query := `
		UPDATE ticket_inventory
		SET available = $1, version = version + 1, updated_at = $2
		WHERE show_id = $3
		RETURNING show_id, available, version, updated_at
	`
	return scanInventory(tx.QueryRow(ctx, query, available, time.Now().UTC(), showID))
}
