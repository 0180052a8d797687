package repositories

import (
	"context"

	"go-gin-comedy-tickets/internal/model"

	"github.com/jackc/pgx/v5"
	"github.com/stretchr/testify/mock"
)

type InventoryRepositoryMock struct {
	mock.Mock
}

func NewInventoryRepositoryMock() *InventoryRepositoryMock {
	return &InventoryRepositoryMock{}
}

func inventoryResult(args mock.Arguments) (*model.TicketInventory, error) {
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.TicketInventory), args.Error(1)
}

func (m *InventoryRepositoryMock) FindByShowID(ctx context.Context, showID int) (*model.TicketInventory, error) {
	return inventoryResult(m.Called(ctx, showID))
}

func (m *InventoryRepositoryMock) Create(ctx context.Context, tx pgx.Tx, showID int, available int) (*model.TicketInventory, error) {
	return inventoryResult(m.Called(ctx, tx, showID, available))
}

func (m *InventoryRepositoryMock) FindByShowIDWithLock(ctx context.Context, tx pgx.Tx, showID int) (*model.TicketInventory, error) {
	return inventoryResult(m.Called(ctx, tx, showID))
}

func (m *InventoryRepositoryMock) DecrementAvailable(ctx context.Context, tx pgx.Tx, showID int, quantity int) (*model.TicketInventory, error) {
	return inventoryResult(m.Called(ctx, tx, showID, quantity))
}

func (m *InventoryRepositoryMock) IncrementAvailable(ctx context.Context, tx pgx.Tx, showID int, quantity int) (*model.TicketInventory, error) {
	return inventoryResult(m.Called(ctx, tx, showID, quantity))
}

func (m *InventoryRepositoryMock) SetAvailable(ctx context.Context, tx pgx.Tx, showID int, available int) (*model.TicketInventory, error) {
	return inventoryResult(m.Called(ctx, tx, showID, available))
}
