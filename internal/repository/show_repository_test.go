package repository_test

import (
	"context"
	"testing"
	"time"

	"go-gin-comedy-tickets/internal/model"
	"go-gin-comedy-tickets/internal/repository"
	apperrors "go-gin-comedy-tickets/pkg/app_errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestShowRepository_Create(t *testing.T) {
	setupTestWithTruncate(t)
	repo := repository.NewShowRepository(testDB)
	ctx := context.Background()

	orgID := createTestUser(t, "Org", "org@test.com", model.RoleOrganizerVerified)
	date := time.Now().Add(48 * time.Hour).UTC().Truncate(time.Microsecond)
	publicID := uuid.New()

	var created *model.Show
	withTx(t, func(tx pgx.Tx) {
		var err error
		created, err = repo.Create(ctx, tx, &model.Show{
			ShowID:       publicID,
			Title:        "Late Night Laughs",
			Date:         date,
			Venue:        "Club 9",
			TicketPrice:  800,
			TotalTickets: 120,
			CreatedBy:    orgID,
		})
		require.NoError(t, err)
	})

	assert.NotZero(t, created.ID)
	assert.Equal(t, publicID, created.ShowID)
	assert.Equal(t, "Late Night Laughs", created.Title)
	assert.True(t, date.Equal(created.Date))
	assert.False(t, created.IsPublished)
	assert.False(t, created.IsDisbursed)
	assert.Nil(t, created.CustomPlatformFee)
	assert.Empty(t, created.MediaLinks)

	found, err := repo.FindByShowID(ctx, publicID)
	require.NoError(t, err)
	assert.Equal(t, created.ID, found.ID)
}

func TestShowRepository_FindByID(t *testing.T) {
	repo := repository.NewShowRepository(testDB)

	t.Run("Failed - NotFound", func(t *testing.T) {
		setupTestWithTruncate(t)
		_, err := repo.FindByID(context.Background(), 123)
		assert.ErrorIs(t, err, apperrors.ErrShowNotFound)

		_, err = repo.FindByShowID(context.Background(), uuid.New())
		assert.ErrorIs(t, err, apperrors.ErrShowNotFound)
	})
}

func TestShowRepository_List(t *testing.T) {
	setupTestWithTruncate(t)
	repo := repository.NewShowRepository(testDB)
	ctx := context.Background()

	orgA := createTestUser(t, "A", "a@test.com", model.RoleOrganizerVerified)
	orgB := createTestUser(t, "B", "b@test.com", model.RoleOrganizerVerified)
	now := time.Now()

	pastPublished := createTestShow(t, orgA, testShowOptions{title: "Past Gig", date: now.Add(-48 * time.Hour), total: 5, published: true})
	soonPublished := createTestShow(t, orgB, testShowOptions{title: "Soon Gig", date: now.Add(24 * time.Hour), total: 5, published: true})
	laterDraft := createTestShow(t, orgA, testShowOptions{title: "Draft Gig", date: now.Add(72 * time.Hour), total: 5})
	otherDraft := createTestShow(t, orgB, testShowOptions{title: "Hidden Gig", date: now.Add(96 * time.Hour), total: 5})

	ids := func(shows []*model.Show) []int {
		out := make([]int, 0, len(shows))
		for _, s := range shows {
			out = append(out, s.ID)
		}
		return out
	}

	t.Run("NoFilter", func(t *testing.T) {
		shows, err := repo.List(ctx, model.ShowFilter{}, model.ListShowsParams{})
		require.NoError(t, err)
		assert.Equal(t, []int{pastPublished, soonPublished, laterDraft, otherDraft}, ids(shows))
	})

	t.Run("PublishedUpcoming", func(t *testing.T) {
		from := now
		shows, err := repo.List(ctx, model.ShowFilter{PublishedOnly: true, From: &from}, model.ListShowsParams{})
		require.NoError(t, err)
		assert.Equal(t, []int{soonPublished}, ids(shows))
	})

	t.Run("PublishedOrOwn", func(t *testing.T) {
		shows, err := repo.List(ctx, model.ShowFilter{PublishedOrCreatedBy: &orgA}, model.ListShowsParams{})
		require.NoError(t, err)
		assert.Equal(t, []int{pastPublished, soonPublished, laterDraft}, ids(shows))
	})

	t.Run("CreatedBy", func(t *testing.T) {
		shows, err := repo.List(ctx, model.ShowFilter{CreatedBy: &orgB}, model.ListShowsParams{})
		require.NoError(t, err)
		assert.Equal(t, []int{soonPublished, otherDraft}, ids(shows))
	})

	t.Run("SearchAndPaging", func(t *testing.T) {
		shows, err := repo.List(ctx, model.ShowFilter{}, model.ListShowsParams{Search: "gig", Limit: 2, Offset: 1})
		require.NoError(t, err)
		assert.Equal(t, []int{soonPublished, laterDraft}, ids(shows))

		shows, err = repo.List(ctx, model.ShowFilter{}, model.ListShowsParams{Search: "hidden"})
		require.NoError(t, err)
		assert.Equal(t, []int{otherDraft}, ids(shows))
	})
}

func TestShowRepository_Update(t *testing.T) {
	setupTestWithTruncate(t)
	repo := repository.NewShowRepository(testDB)
	ctx := context.Background()

	orgID := createTestUser(t, "Org", "org@test.com", model.RoleOrganizerVerified)
	showID := createTestShow(t, orgID, testShowOptions{total: 10, available: 10})

	title := "Renamed"
	total := 25
	withTx(t, func(tx pgx.Tx) {
		locked, err := repo.FindByIDWithLock(ctx, tx, showID)
		require.NoError(t, err)

		updated, err := repo.Update(ctx, tx, showID, model.UpdateShowParams{
			Title:        &title,
			TotalTickets: &total,
			MediaLinks:   []string{"https://example.com/clip"},
		})
		require.NoError(t, err)
		assert.Equal(t, "Renamed", updated.Title)
		assert.Equal(t, 25, updated.TotalTickets)
		assert.Equal(t, []string{"https://example.com/clip"}, updated.MediaLinks)
		assert.Equal(t, locked.Venue, updated.Venue)
		assert.True(t, updated.UpdatedAt.After(locked.UpdatedAt) || updated.UpdatedAt.Equal(locked.UpdatedAt))
	})
}

func TestShowRepository_SetPublished(t *testing.T) {
	setupTestWithTruncate(t)
	repo := repository.NewShowRepository(testDB)
	ctx := context.Background()

	orgID := createTestUser(t, "Org", "org@test.com", model.RoleOrganizerVerified)
	showID := createTestShow(t, orgID, testShowOptions{total: 10, available: 10})

	withTx(t, func(tx pgx.Tx) {
		show, err := repo.SetPublished(ctx, tx, showID, true)
		require.NoError(t, err)
		assert.True(t, show.IsPublished)

		show, err = repo.SetPublished(ctx, tx, showID, false)
		require.NoError(t, err)
		assert.False(t, show.IsPublished)
	})
}

func TestShowRepository_SetCustomPlatformFee(t *testing.T) {
	repo := repository.NewShowRepository(testDB)
	ctx := context.Background()

	t.Run("Success", func(t *testing.T) {
		setupTestWithTruncate(t)
		orgID := createTestUser(t, "Org", "org@test.com", model.RoleOrganizerVerified)
		showID := createTestShow(t, orgID, testShowOptions{total: 10, available: 10})

		percent := 5
		show, err := repo.SetCustomPlatformFee(ctx, showID, &percent)
		require.NoError(t, err)
		require.NotNil(t, show.CustomPlatformFee)
		assert.Equal(t, 5, *show.CustomPlatformFee)

		show, err = repo.SetCustomPlatformFee(ctx, showID, nil)
		require.NoError(t, err)
		assert.Nil(t, show.CustomPlatformFee)
	})

	t.Run("Failed - Disbursed", func(t *testing.T) {
		setupTestWithTruncate(t)
		orgID := createTestUser(t, "Org", "org@test.com", model.RoleOrganizerVerified)
		showID := createTestShow(t, orgID, testShowOptions{total: 10, available: 10, published: true})
		withTx(t, func(tx pgx.Tx) {
			_, err := repo.MarkDisbursed(ctx, tx, showID)
			require.NoError(t, err)
		})

		percent := 5
		_, err := repo.SetCustomPlatformFee(ctx, showID, &percent)
		assert.ErrorIs(t, err, apperrors.ErrShowDisbursed)
	})

	t.Run("Failed - NotFound", func(t *testing.T) {
		setupTestWithTruncate(t)
		_, err := repo.SetCustomPlatformFee(ctx, 77, nil)
		assert.ErrorIs(t, err, apperrors.ErrShowNotFound)
	})
}

func TestShowRepository_MarkDisbursed(t *testing.T) {
	setupTestWithTruncate(t)
	repo := repository.NewShowRepository(testDB)
	ctx := context.Background()

	orgID := createTestUser(t, "Org", "org@test.com", model.RoleOrganizerVerified)
	showID := createTestShow(t, orgID, testShowOptions{total: 10, available: 10, published: true})

	withTx(t, func(tx pgx.Tx) {
		show, err := repo.MarkDisbursed(ctx, tx, showID)
		require.NoError(t, err)
		assert.True(t, show.IsDisbursed)
		assert.NotNil(t, show.DisbursedAt)

		_, err = repo.MarkDisbursed(ctx, tx, showID)
		assert.ErrorIs(t, err, apperrors.ErrShowDisbursed)
	})
}

func TestShowRepository_Delete(t *testing.T) {
	repo := repository.NewShowRepository(testDB)
	inventory := repository.NewInventoryRepository(testDB)
	comedians := repository.NewComedianRepository(testDB)
	ctx := context.Background()

	t.Run("Success - cascades inventory and lineup", func(t *testing.T) {
		setupTestWithTruncate(t)
		orgID := createTestUser(t, "Org", "org@test.com", model.RoleOrganizerVerified)
		comUser := createTestUser(t, "Com", "com@test.com", model.RoleComedianVerified)
		comedianID := createTestComedian(t, comUser, "Funny Bones")
		showID := createTestShow(t, orgID, testShowOptions{total: 10, available: 10})

		withTx(t, func(tx pgx.Tx) {
			require.NoError(t, comedians.ReplaceLineup(ctx, tx, showID, []int{comedianID}))
		})
		withTx(t, func(tx pgx.Tx) {
			require.NoError(t, repo.Delete(ctx, tx, showID))
		})

		_, err := repo.FindByID(ctx, showID)
		assert.ErrorIs(t, err, apperrors.ErrShowNotFound)
		_, err = inventory.FindByShowID(ctx, showID)
		assert.ErrorIs(t, err, apperrors.ErrInventoryNotFound)
		lineup, err := comedians.ListIDsByShowID(ctx, showID)
		require.NoError(t, err)
		assert.Empty(t, lineup)
	})

	t.Run("Failed - NotFound", func(t *testing.T) {
		setupTestWithTruncate(t)
		withTx(t, func(tx pgx.Tx) {
			assert.ErrorIs(t, repo.Delete(ctx, tx, 555), apperrors.ErrShowNotFound)
		})
	})
}
