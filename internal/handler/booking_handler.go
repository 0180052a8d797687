package handler

import (
	"net/http"

	"go-gin-comedy-tickets/internal/middleware"
	"go-gin-comedy-tickets/internal/model"
	"go-gin-comedy-tickets/internal/service"

	"github.com/gin-gonic/gin"
)

type BookingHandler struct {
	service service.BookingService
}

func NewBookingHandler(service service.BookingService) *BookingHandler {
	return &BookingHandler{service: service}
}

func (h *BookingHandler) RegisterRoutes(r *gin.Engine) {
	router := r.Group("/api/v1")
	{
		router.GET("bookings", h.ListMyBookings)
		router.GET("bookings/:id", h.GetBooking)
		router.POST("bookings", h.CreateBooking)
		router.PUT("bookings/:id/confirm", h.ConfirmBooking)
		router.PUT("bookings/:id/cancel", h.CancelBooking)
		router.GET("shows/:uuid/bookings", h.ListShowBookings)
	}
}

func (h *BookingHandler) CreateBooking(c *gin.Context) {
	var req model.CreateBookingRequest
	if err := BindJson(c, &req); err != nil {
		return
	}

	created, err := h.service.CreateBooking(c, middleware.ActorFromContext(c), req)
	if err != nil {
		handleError(c, err, "CreateBooking")
		return
	}

	handleSuccess(c, created, http.StatusCreated)
}

func (h *BookingHandler) ListMyBookings(c *gin.Context) {
	bookings, err := h.service.ListMyBookings(c, middleware.ActorFromContext(c))
	if err != nil {
		handleError(c, err, "ListMyBookings")
		return
	}

	handleSuccess(c, bookings, http.StatusOK)
}

func (h *BookingHandler) GetBooking(c *gin.Context) {
	id, ok := parseIntID(c)
	if !ok {
		return
	}

	booking, err := h.service.GetBooking(c, id, middleware.ActorFromContext(c))
	if err != nil {
		handleError(c, err, "GetBooking")
		return
	}

	handleSuccess(c, booking, http.StatusOK)
}

func (h *BookingHandler) ConfirmBooking(c *gin.Context) {
	id, ok := parseIntID(c)
	if !ok {
		return
	}

	booking, err := h.service.ConfirmBookingPayment(c, id, middleware.ActorFromContext(c))
	if err != nil {
		handleError(c, err, "ConfirmBooking")
		return
	}

	handleSuccess(c, booking, http.StatusOK)
}

func (h *BookingHandler) CancelBooking(c *gin.Context) {
	id, ok := parseIntID(c)
	if !ok {
		return
	}

	booking, err := h.service.CancelBooking(c, id, middleware.ActorFromContext(c))
	if err != nil {
		handleError(c, err, "CancelBooking")
		return
	}

	handleSuccess(c, booking, http.StatusOK)
}

func (h *BookingHandler) ListShowBookings(c *gin.Context) {
	showID, ok := parseShowID(c)
	if !ok {
		return
	}

	bookings, err := h.service.ListShowBookings(c, showID, middleware.ActorFromContext(c))
	if err != nil {
		handleError(c, err, "ListShowBookings")
		return
	}

	handleSuccess(c, bookings, http.StatusOK)
}
