package service

import (
	"time"

	"go-gin-comedy-tickets/internal/model"
)

// BuildVisibilityFilter 依身分與列表情境決定可看到哪些節目
//
//   - manage 且已登入：只看自己建立的節目（不限發佈狀態與日期）
//   - public / discovery、訪客、觀眾：已發佈且尚未開演
//   - 組織者 / 喜劇演員：尚未開演，且為已發佈或自己建立的節目
//   - 管理員：所有尚未開演的節目
func BuildVisibilityFilter(actor *model.Actor, mode model.ListMode, now time.Time) model.ShowFilter {
	publishedUpcoming := model.ShowFilter{PublishedOnly: true, From: &now}

	if mode == model.ListModeManage && actor != nil {
		userID := actor.UserID
		return model.ShowFilter{CreatedBy: &userID}
	}

	if mode == model.ListModePublic || mode == model.ListModeDiscovery || actor == nil {
		return publishedUpcoming
	}

	switch {
	case actor.Role == model.RoleAudience:
		return publishedUpcoming
	case actor.Role.IsCreator():
		userID := actor.UserID
		return model.ShowFilter{From: &now, PublishedOrCreatedBy: &userID}
	case actor.Role.IsAdmin():
		return model.ShowFilter{From: &now}
	}

	return publishedUpcoming
}

// canView 單一節目的讀取權限：未發佈的節目只有建立者與管理員看得到
func canView(actor *model.Actor, show *model.Show) bool {
	return show.IsPublished || actor.CanManage(show)
}
