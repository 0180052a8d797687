package service

import (
	"strings"
	"time"

	"go-gin-comedy-tickets/internal/model"
	apperrors "go-gin-comedy-tickets/pkg/app_errors"
)

// IsShowFrozen 已發佈且已有任何訂位紀錄時，票價、加開座位與演出陣容都被鎖定
func IsShowFrozen(show *model.Show, stats model.BookingStats) bool {
	return show.IsPublished && stats.HasBookings()
}

// GuardShowUpdate 檢查修改內容並回傳實際要套用的欄位。
// stats 與 currentComedians 必須是在同一個交易、鎖住庫存列之後讀到的值。
func GuardShowUpdate(
	show *model.Show,
	stats model.BookingStats,
	currentComedians []int,
	params model.UpdateShowParams,
	now time.Time,
) (model.UpdateShowParams, error) {
	frozen := IsShowFrozen(show, stats)
	applied := params

	if params.Title != nil {
		title := strings.TrimSpace(*params.Title)
		if title == "" {
			return model.UpdateShowParams{}, apperrors.ErrTitleRequired
		}
		applied.Title = &title
	}
	if params.Venue != nil {
		venue := strings.TrimSpace(*params.Venue)
		if venue == "" {
			return model.UpdateShowParams{}, apperrors.ErrVenueRequired
		}
		applied.Venue = &venue
	}

	if params.TotalTickets != nil {
		total := *params.TotalTickets
		if total <= 0 {
			return model.UpdateShowParams{}, apperrors.ErrNonPositiveCapacity
		}
		// 不論是否發佈，都不能低於已售張數
		if total < stats.Sold {
			return model.UpdateShowParams{}, apperrors.ErrCapacityBelowSold
		}
		if frozen && total > show.TotalTickets {
			return model.UpdateShowParams{}, apperrors.ErrCapacityIncreaseLocked
		}
		if total == show.TotalTickets {
			applied.TotalTickets = nil
		}
	}

	if params.TicketPrice != nil {
		price := *params.TicketPrice
		if price <= 0 {
			return model.UpdateShowParams{}, apperrors.ErrNonPositivePrice
		}
		if frozen {
			if price != show.TicketPrice {
				return model.UpdateShowParams{}, apperrors.ErrPriceLocked
			}
			applied.TicketPrice = nil
		}
	}

	if params.Date != nil {
		if frozen {
			// 已有訂位的節目不改期
			applied.Date = nil
		} else if !params.Date.After(now) {
			return model.UpdateShowParams{}, apperrors.ErrShowInPast
		}
	}

	if params.SetComedians {
		applied.ComedianIDs = dedupeIDs(params.ComedianIDs)
		if frozen && dropsAny(currentComedians, applied.ComedianIDs) {
			return model.UpdateShowParams{}, apperrors.ErrComedianRemovalLocked
		}
	}

	return applied, nil
}

// dropsAny current 中是否有任何 id 不在 next 裡
func dropsAny(current, next []int) bool {
	keep := make(map[int]struct{}, len(next))
	for _, id := range next {
		keep[id] = struct{}{}
	}
	for _, id := range current {
		if _, ok := keep[id]; !ok {
			return true
		}
	}
	return false
}

// dedupeIDs 保留第一次出現的順序
func dedupeIDs(ids []int) []int {
	seen := make(map[int]struct{}, len(ids))
	out := make([]int, 0, len(ids))
	for _, id := range ids {
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}
