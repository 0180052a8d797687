package repository_test

import (
	"context"
	"testing"

	"go-gin-comedy-tickets/internal/model"
	"go-gin-comedy-tickets/internal/repository"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSettingsRepository(t *testing.T) {
	setupTestWithTruncate(t)
	repo := repository.NewSettingsRepository(testDB)
	ctx := context.Background()

	defaults, err := repo.GetFeeSettings(ctx)
	require.NoError(t, err)
	assert.Equal(t, 10, defaults.PlatformFeePercent)
	assert.Equal(t, 0, defaults.BookingFeePerTicket)

	updated, err := repo.UpdateFeeSettings(ctx, model.FeeSettings{PlatformFeePercent: 15, BookingFeePerTicket: 30})
	require.NoError(t, err)
	assert.Equal(t, 15, updated.PlatformFeePercent)
	assert.Equal(t, 30, updated.BookingFeePerTicket)

	reloaded, err := repo.GetFeeSettings(ctx)
	require.NoError(t, err)
	assert.Equal(t, updated.PlatformFeePercent, reloaded.PlatformFeePercent)
	assert.Equal(t, updated.BookingFeePerTicket, reloaded.BookingFeePerTicket)
}
