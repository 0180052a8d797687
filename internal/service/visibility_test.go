package service

import (
	"testing"
	"time"

	"go-gin-comedy-tickets/internal/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildVisibilityFilter(t *testing.T) {
	now := time.Date(2026, 5, 1, 20, 0, 0, 0, time.UTC)
	organizer := &model.Actor{UserID: 5, Role: model.RoleOrganizerUnverified}

	t.Run("Manage mode shows only own shows in any state", func(t *testing.T) {
		f := BuildVisibilityFilter(organizer, model.ListModeManage, now)
		require.NotNil(t, f.CreatedBy)
		assert.Equal(t, 5, *f.CreatedBy)
		assert.False(t, f.PublishedOnly)
		assert.Nil(t, f.From)
		assert.Nil(t, f.PublishedOrCreatedBy)
	})

	t.Run("Manage mode without user falls back to published upcoming", func(t *testing.T) {
		f := BuildVisibilityFilter(nil, model.ListModeManage, now)
		assert.True(t, f.PublishedOnly)
		require.NotNil(t, f.From)
		assert.Equal(t, now, *f.From)
		assert.Nil(t, f.CreatedBy)
	})

	t.Run("Discovery hides drafts even from their creator", func(t *testing.T) {
		for _, mode := range []model.ListMode{model.ListModePublic, model.ListModeDiscovery} {
			f := BuildVisibilityFilter(organizer, mode, now)
			assert.True(t, f.PublishedOnly, mode)
			assert.Nil(t, f.PublishedOrCreatedBy, mode)
		}
	})

	t.Run("Anonymous and audience", func(t *testing.T) {
		for _, actor := range []*model.Actor{nil, {UserID: 1, Role: model.RoleAudience}} {
			f := BuildVisibilityFilter(actor, model.ListModeDefault, now)
			assert.True(t, f.PublishedOnly)
			require.NotNil(t, f.From)
			assert.Equal(t, now, *f.From)
		}
	})

	t.Run("Creator sees published or own", func(t *testing.T) {
		for _, role := range []model.Role{model.RoleOrganizerVerified, model.RoleComedianUnverified, model.RoleComedianVerified} {
			f := BuildVisibilityFilter(&model.Actor{UserID: 9, Role: role}, model.ListModeDefault, now)
			require.NotNil(t, f.PublishedOrCreatedBy, role)
			assert.Equal(t, 9, *f.PublishedOrCreatedBy)
			assert.False(t, f.PublishedOnly)
			require.NotNil(t, f.From)
		}
	})

	t.Run("Admin sees all upcoming", func(t *testing.T) {
		f := BuildVisibilityFilter(&model.Actor{UserID: 1, Role: model.RoleAdmin}, model.ListModeDefault, now)
		assert.False(t, f.PublishedOnly)
		assert.Nil(t, f.PublishedOrCreatedBy)
		assert.Nil(t, f.CreatedBy)
		require.NotNil(t, f.From)
	})

	t.Run("Unknown role falls back to published upcoming", func(t *testing.T) {
		f := BuildVisibilityFilter(&model.Actor{UserID: 1, Role: model.Role("GHOST")}, model.ListModeDefault, now)
		assert.True(t, f.PublishedOnly)
	})
}
