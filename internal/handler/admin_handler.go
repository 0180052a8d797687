package handler

import (
	"context"
	"net/http"

	"go-gin-comedy-tickets/internal/middleware"
	"go-gin-comedy-tickets/internal/model"
	"go-gin-comedy-tickets/internal/service"

	"github.com/gin-gonic/gin"
)

// AdminHandler 角色審核、平台費率與撥款
type AdminHandler struct {
	userService service.UserService
	feeService  service.FeeService
}

func NewAdminHandler(userService service.UserService, feeService service.FeeService) *AdminHandler {
	return &AdminHandler{
		userService: userService,
		feeService:  feeService,
	}
}

func (h *AdminHandler) RegisterRoutes(r *gin.Engine) {
	r.GET("/api/v1/shows/:uuid/sales", h.GetSalesSummary)

	admin := r.Group("/api/v1/admin", middleware.RequireAdmin())
	{
		admin.GET("creators/pending", h.ListPendingCreators)
		admin.POST("users/:id/approve", h.ApproveCreator)
		admin.POST("users/:id/reject", h.RejectCreator)
		admin.GET("settings/fees", h.GetFeeSettings)
		admin.PUT("settings/fees", h.UpdateFeeSettings)
		admin.PUT("shows/:uuid/fee", h.SetShowPlatformFee)
		admin.POST("shows/:uuid/disburse", h.DisburseShow)
	}
}

type decisionRequest struct {
	Note *string `json:"note" binding:"omitempty,max=1000"`
}

type feeSettingsRequest struct {
	PlatformFeePercent  *int `json:"platform_fee_percent" binding:"required"`
	BookingFeePerTicket *int `json:"booking_fee_per_ticket" binding:"required"`
}

// showFeeRequest platform_fee_percent 傳 null 代表改回平台預設
type showFeeRequest struct {
	PlatformFeePercent *int `json:"platform_fee_percent"`
}

func (h *AdminHandler) ListPendingCreators(c *gin.Context) {
	users, err := h.userService.ListPendingCreators(c, middleware.ActorFromContext(c))
	if err != nil {
		handleError(c, err, "ListPendingCreators")
		return
	}

	handleSuccess(c, users, http.StatusOK)
}

func (h *AdminHandler) ApproveCreator(c *gin.Context) {
	h.decide(c, "ApproveCreator", h.userService.ApproveCreator)
}

func (h *AdminHandler) RejectCreator(c *gin.Context) {
	h.decide(c, "RejectCreator", h.userService.RejectCreator)
}

type decideFunc func(ctx context.Context, userID int, admin *model.Actor, note *string) (*model.User, error)

func (h *AdminHandler) decide(c *gin.Context, operation string, fn decideFunc) {
	id, ok := parseIntID(c)
	if !ok {
		return
	}
	var req decisionRequest
	if c.Request.ContentLength > 0 {
		if err := BindJson(c, &req); err != nil {
			return
		}
	}

	user, err := fn(c, id, middleware.ActorFromContext(c), req.Note)
	if err != nil {
		handleError(c, err, operation)
		return
	}

	handleSuccess(c, user, http.StatusOK)
}

func (h *AdminHandler) GetFeeSettings(c *gin.Context) {
	settings, err := h.feeService.GetFeeSettings(c)
	if err != nil {
		handleError(c, err, "GetFeeSettings")
		return
	}

	handleSuccess(c, settings, http.StatusOK)
}

func (h *AdminHandler) UpdateFeeSettings(c *gin.Context) {
	var req feeSettingsRequest
	if err := BindJson(c, &req); err != nil {
		return
	}

	settings, err := h.feeService.UpdateFeeSettings(c, middleware.ActorFromContext(c), model.FeeSettings{
		PlatformFeePercent:  *req.PlatformFeePercent,
		BookingFeePerTicket: *req.BookingFeePerTicket,
	})
	if err != nil {
		handleError(c, err, "UpdateFeeSettings")
		return
	}

	handleSuccess(c, settings, http.StatusOK)
}

func (h *AdminHandler) SetShowPlatformFee(c *gin.Context) {
	showID, ok := parseShowID(c)
	if !ok {
		return
	}
	var req showFeeRequest
	if err := BindJson(c, &req); err != nil {
		return
	}

	show, err := h.feeService.SetShowPlatformFee(c, showID, middleware.ActorFromContext(c), req.PlatformFeePercent)
	if err != nil {
		handleError(c, err, "SetShowPlatformFee")
		return
	}

	handleSuccess(c, show, http.StatusOK)
}

func (h *AdminHandler) DisburseShow(c *gin.Context) {
	showID, ok := parseShowID(c)
	if !ok {
		return
	}

	summary, err := h.feeService.DisburseShow(c, showID, middleware.ActorFromContext(c))
	if err != nil {
		handleError(c, err, "DisburseShow")
		return
	}

	handleSuccess(c, summary, http.StatusOK)
}

func (h *AdminHandler) GetSalesSummary(c *gin.Context) {
	showID, ok := parseShowID(c)
	if !ok {
		return
	}

	summary, err := h.feeService.GetSalesSummary(c, showID, middleware.ActorFromContext(c))
	if err != nil {
		handleError(c, err, "GetSalesSummary")
		return
	}

	handleSuccess(c, summary, http.StatusOK)
}
