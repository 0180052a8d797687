package handler_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"go-gin-comedy-tickets/internal/handler"
	"go-gin-comedy-tickets/internal/mocks/services"
	"go-gin-comedy-tickets/internal/model"
	apperrors "go-gin-comedy-tickets/pkg/app_errors"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

func setupBookingTestRouter(mockService *services.BookingServiceMock) *gin.Engine {
	return setupTestRouter(handler.NewBookingHandler(mockService).RegisterRoutes)
}

func TestCreateBooking(t *testing.T) {
	showID := uuid.New().String()

	t.Run("Success", func(t *testing.T) {
		mockService := services.NewBookingServiceMock()
		router := setupBookingTestRouter(mockService)

		mockService.On("CreateBooking", mock.Anything, actorWith(30, model.RoleAudience),
			model.CreateBookingRequest{ShowID: showID, Quantity: 2}).
			Return(&model.Booking{ID: 1, ShowID: 1, UserID: 30, Quantity: 2, Status: model.BookingStatusConfirmedUnpaid}, nil).Once()

		body := model.CreateBookingRequest{ShowID: showID, Quantity: 2}
		req := withToken(t, createJSONHTTPRequest("POST", "/api/v1/bookings", body), 30, model.RoleAudience)
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusCreated, w.Code)
		assert.Equal(t, string(model.BookingStatusConfirmedUnpaid), decodeBody(t, w.Body)["status"])
		mockService.AssertExpectations(t)
	})

	t.Run("Failed - not enough tickets", func(t *testing.T) {
		mockService := services.NewBookingServiceMock()
		router := setupBookingTestRouter(mockService)

		mockService.On("CreateBooking", mock.Anything, mock.Anything, mock.Anything).
			Return(nil, apperrors.ErrInsufficientTickets).Once()

		body := model.CreateBookingRequest{ShowID: showID, Quantity: 5}
		req := withToken(t, createJSONHTTPRequest("POST", "/api/v1/bookings", body), 30, model.RoleAudience)
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Equal(t, apperrors.ErrInsufficientTickets.Error(), decodeBody(t, w.Body)["error"])
	})

	t.Run("Failed - quantity above limit", func(t *testing.T) {
		mockService := services.NewBookingServiceMock()
		router := setupBookingTestRouter(mockService)

		mockService.On("CreateBooking", mock.Anything, mock.Anything, mock.Anything).
			Return(nil, apperrors.ErrInvalidQuantity).Once()

		body := model.CreateBookingRequest{ShowID: showID, Quantity: 11}
		req := withToken(t, createJSONHTTPRequest("POST", "/api/v1/bookings", body), 30, model.RoleAudience)
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Contains(t, decodeBody(t, w.Body)["error"], "maximum 10")
	})

	t.Run("Failed - anonymous", func(t *testing.T) {
		mockService := services.NewBookingServiceMock()
		router := setupBookingTestRouter(mockService)

		mockService.On("CreateBooking", mock.Anything, noActor(), mock.Anything).
			Return(nil, apperrors.ErrUnauthenticated).Once()

		body := model.CreateBookingRequest{ShowID: showID, Quantity: 1}
		req := createJSONHTTPRequest("POST", "/api/v1/bookings", body)
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("Failed - BindingError", func(t *testing.T) {
		mockService := services.NewBookingServiceMock()
		router := setupBookingTestRouter(mockService)

		body := map[string]interface{}{"show_id": "not-a-uuid", "quantity": 1}
		req := withToken(t, createJSONHTTPRequest("POST", "/api/v1/bookings", body), 30, model.RoleAudience)
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusBadRequest, w.Code)
		mockService.AssertNotCalled(t, "CreateBooking", mock.Anything, mock.Anything, mock.Anything)
	})
}

func TestGetBooking(t *testing.T) {
	t.Run("Success", func(t *testing.T) {
		mockService := services.NewBookingServiceMock()
		router := setupBookingTestRouter(mockService)

		mockService.On("GetBooking", mock.Anything, 123, actorWith(30, model.RoleAudience)).
			Return(&model.Booking{ID: 123, UserID: 30}, nil).Once()

		req := withToken(t, httptest.NewRequest("GET", "/api/v1/bookings/123", nil), 30, model.RoleAudience)
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
	})

	t.Run("Failed - NotFound", func(t *testing.T) {
		mockService := services.NewBookingServiceMock()
		router := setupBookingTestRouter(mockService)

		mockService.On("GetBooking", mock.Anything, 123, mock.Anything).Return(nil, apperrors.ErrBookingNotFound).Once()

		req := withToken(t, httptest.NewRequest("GET", "/api/v1/bookings/123", nil), 31, model.RoleAudience)
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusNotFound, w.Code)
	})

	t.Run("Failed - invalid id", func(t *testing.T) {
		mockService := services.NewBookingServiceMock()
		router := setupBookingTestRouter(mockService)

		req := withToken(t, httptest.NewRequest("GET", "/api/v1/bookings/abc", nil), 30, model.RoleAudience)
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Equal(t, "Invalid id", decodeBody(t, w.Body)["error"])
	})
}

func TestListMyBookings(t *testing.T) {
	mockService := services.NewBookingServiceMock()
	router := setupBookingTestRouter(mockService)

	mockService.On("ListMyBookings", mock.Anything, actorWith(30, model.RoleAudience)).
		Return([]*model.Booking{{ID: 1}, {ID: 2}}, nil).Once()

	req := withToken(t, httptest.NewRequest("GET", "/api/v1/bookings", nil), 30, model.RoleAudience)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	mockService.AssertExpectations(t)
}

func TestConfirmBooking(t *testing.T) {
	t.Run("Success", func(t *testing.T) {
		mockService := services.NewBookingServiceMock()
		router := setupBookingTestRouter(mockService)

		mockService.On("ConfirmBookingPayment", mock.Anything, 5, mock.Anything).
			Return(&model.Booking{ID: 5, Status: model.BookingStatusConfirmed}, nil).Once()

		req := withToken(t, httptest.NewRequest("PUT", "/api/v1/bookings/5/confirm", nil), 30, model.RoleAudience)
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
	})

	t.Run("Failed - invalid status", func(t *testing.T) {
		mockService := services.NewBookingServiceMock()
		router := setupBookingTestRouter(mockService)

		mockService.On("ConfirmBookingPayment", mock.Anything, 5, mock.Anything).
			Return(nil, apperrors.ErrInvalidBookingStatus).Once()

		req := withToken(t, httptest.NewRequest("PUT", "/api/v1/bookings/5/confirm", nil), 30, model.RoleAudience)
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}

func TestCancelBooking(t *testing.T) {
	t.Run("Success", func(t *testing.T) {
		mockService := services.NewBookingServiceMock()
		router := setupBookingTestRouter(mockService)

		mockService.On("CancelBooking", mock.Anything, 5, mock.Anything).
			Return(&model.Booking{ID: 5, Status: model.BookingStatusCancelled}, nil).Once()

		req := withToken(t, httptest.NewRequest("PUT", "/api/v1/bookings/5/cancel", nil), 30, model.RoleAudience)
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, string(model.BookingStatusCancelled), decodeBody(t, w.Body)["status"])
	})

	t.Run("Failed - not a party", func(t *testing.T) {
		mockService := services.NewBookingServiceMock()
		router := setupBookingTestRouter(mockService)

		mockService.On("CancelBooking", mock.Anything, 5, mock.Anything).
			Return(nil, apperrors.ErrNotBookingParty).Once()

		req := withToken(t, httptest.NewRequest("PUT", "/api/v1/bookings/5/cancel", nil), 99, model.RoleAudience)
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusForbidden, w.Code)
	})
}

func TestListShowBookings(t *testing.T) {
	mockService := services.NewBookingServiceMock()
	router := setupBookingTestRouter(mockService)
	id := uuid.New()

	mockService.On("ListShowBookings", mock.Anything, id, actorWith(10, model.RoleOrganizerVerified)).
		Return([]*model.Booking{{ID: 1}}, nil).Once()

	req := withToken(t, httptest.NewRequest("GET", "/api/v1/shows/"+id.String()+"/bookings", nil), 10, model.RoleOrganizerVerified)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	mockService.AssertExpectations(t)
}
